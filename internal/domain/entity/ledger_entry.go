package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento en el ledger de inventario.
const (
	MovementTypeInitial    = "initial"    // stock inicial al crear producto
	MovementTypeReceipt    = "receipt"    // entrada por recepción
	MovementTypeDelivery   = "delivery"   // salida por entrega
	MovementTypeTransfer   = "transfer"   // traslado entre bodegas (dos asientos)
	MovementTypeAdjustment = "adjustment" // ajuste por conteo físico
)

// LocationUnplaced ubicación centinela cuando el movimiento no indica bodega.
const LocationUnplaced = "UNPLACED"

// LedgerEntry es un asiento inmutable del kardex: un cambio de cantidad con signo.
// El ledger es la única fuente de verdad del stock; los asientos nunca se
// actualizan ni se borran (append-only).
type LedgerEntry struct {
	ID        string
	OwnerID   string          // tenant propietario; todo acceso se filtra por él
	SKU       string
	QtyChange decimal.Decimal // positivo = entrada, negativo = salida
	Location  string          // bodega; LocationUnplaced si no aplica
	Type      string          // ver constantes MovementType*
	Ref       string          // id del documento origen; vacío en asientos initial
	Reason    string          // motivo (solo ajustes)
	TS        time.Time       // instante de creación
}
