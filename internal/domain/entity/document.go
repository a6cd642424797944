package entity

import "github.com/shopspring/decimal"

// Tipos de documento de operación sobre el inventario.
const (
	DocTypeReceipt    = "receipt"
	DocTypeDelivery   = "delivery"
	DocTypeTransfer   = "transfer"
	DocTypeAdjustment = "adjustment"
)

// DocumentItem es una línea de un documento de operación. Se persiste como
// JSONB junto con el documento, de ahí los tags json en la entidad.
// CountedQty solo aplica a ajustes (cantidad contada en el inventario físico).
type DocumentItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice,omitempty"`
	CountedQty  decimal.Decimal `json:"countedQty,omitempty"`
}
