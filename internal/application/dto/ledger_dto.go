package dto

import "github.com/shopspring/decimal"

// LedgerEntryDTO asiento del ledger en el API. Los nombres de campo son
// contrato: {id, sku, qty_change, location, type, ts, ref}; ts en milisegundos
// Unix.
type LedgerEntryDTO struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	QtyChange decimal.Decimal `json:"qty_change"`
	Location  string          `json:"location"`
	Type      string          `json:"type"`
	TS        int64           `json:"ts"`
	Ref       string          `json:"ref,omitempty"`
	Reason    string          `json:"reason,omitempty"`
}

// StockSummaryDTO stock agregado de un SKU.
type StockSummaryDTO struct {
	SKU        string                     `json:"sku"`
	Total      decimal.Decimal            `json:"total"`
	ByLocation map[string]decimal.Decimal `json:"byLocation"`
}

// StockUpdatePayload mensaje emitido por el canal realtime tras cada mutación
// del ledger.
type StockUpdatePayload struct {
	SKU        string                     `json:"sku"`
	Total      decimal.Decimal            `json:"total"`
	ByLocation map[string]decimal.Decimal `json:"byLocation"`
}

// DashboardResponse KPIs del tablero.
type DashboardResponse struct {
	TotalProducts      int `json:"totalProducts"`
	LowStockCount      int `json:"lowStockCount"`
	PendingReceipts    int `json:"pendingReceipts"`
	PendingDeliveries  int `json:"pendingDeliveries"`
	TransfersScheduled int `json:"transfersScheduled"`
}
