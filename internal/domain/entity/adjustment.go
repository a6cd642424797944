package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Adjustment representa un ajuste por conteo físico en una bodega. Al validarse
// genera, por cada línea, un asiento con delta = contado − stock actual en esa
// bodega; si el delta es cero no se escribe asiento.
type Adjustment struct {
	ID             string
	OwnerID        string
	Warehouse      string
	Reason         string
	AdjustmentDate string // fecha ISO (YYYY-MM-DD)
	Status         string // ver inventory.AdjustmentStatuses
	Items          []DocumentItem
	TotalItems     decimal.Decimal
	ValidatedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
