package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer representa un traslado entre bodegas. Al validarse genera dos
// asientos por línea (salida en origen, entrada en destino) con el mismo ref.
type Transfer struct {
	ID            string
	OwnerID       string
	FromWarehouse string
	ToWarehouse   string
	TransferDate  string // fecha ISO (YYYY-MM-DD)
	Status        string // ver inventory.TransferStatuses
	Items         []DocumentItem
	TotalItems    decimal.Decimal
	ValidatedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
