package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Delivery representa una entrega a cliente planeada. Al validarse genera
// asientos negativos en el ledger y queda inmutable.
type Delivery struct {
	ID           string
	OwnerID      string
	Customer     string
	Warehouse    string
	DeliveryDate string // fecha ISO (YYYY-MM-DD)
	Status       string // ver inventory.DeliveryStatuses
	Items        []DocumentItem
	TotalItems   decimal.Decimal
	ValidatedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
