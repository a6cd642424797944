package entity

import "time"

// Product representa un producto o SKU del catálogo (multi-bodega).
// No almacena stock: el stock actual y su distribución por bodega se derivan
// del ledger (vía StockLevel) en cada lectura.
type Product struct {
	ID           string
	OwnerID      string
	SKU          string // único por tenant
	Name         string
	Category     string
	UOM          string // unidad de medida (ej: "unidad", "kg")
	ReorderLevel int64  // umbral para alerta de stock bajo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
