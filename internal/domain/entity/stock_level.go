package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel es la vista materializada del stock por (owner, sku, bodega).
// Se mantiene en la misma transacción que cada asiento del ledger, por lo que
// siempre coincide con el resultado de plegar los asientos.
type StockLevel struct {
	OwnerID   string
	SKU       string
	Location  string
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}
