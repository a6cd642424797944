package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt representa una recepción de mercancía planeada. Al validarse genera
// asientos positivos en el ledger (uno por línea) y queda inmutable.
type Receipt struct {
	ID           string
	OwnerID      string
	Supplier     string
	Warehouse    string
	ExpectedDate string // fecha ISO (YYYY-MM-DD)
	Status       string // ver inventory.ReceiptStatuses
	Items        []DocumentItem
	TotalItems   decimal.Decimal // recalculado en servidor desde Items
	TotalValue   decimal.Decimal // recalculado en servidor desde Items
	ValidatedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
