package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products. initialStock distinto de
// cero genera un asiento `initial` en el ledger en initialLocation.
type CreateProductRequest struct {
	Name            string          `json:"name" validate:"required"`
	SKU             string          `json:"sku" validate:"required"`
	Category        string          `json:"category"`
	UOM             string          `json:"uom"`
	ReorderLevel    int64           `json:"reorderLevel" validate:"min=0"`
	InitialStock    decimal.Decimal `json:"initialStock"`
	InitialLocation string          `json:"initialLocation"`
}

// UpdateProductRequest body para PUT /api/products/:sku. Campos nil no se tocan.
type UpdateProductRequest struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	UOM          *string `json:"uom"`
	ReorderLevel *int64  `json:"reorderLevel"`
}

// ProductResponse producto con su stock derivado del ledger.
// stock y byLocation nunca se almacenan: se calculan en cada lectura.
type ProductResponse struct {
	ID           string                     `json:"id"`
	SKU          string                     `json:"sku"`
	Name         string                     `json:"name"`
	Category     string                     `json:"category,omitempty"`
	UOM          string                     `json:"uom,omitempty"`
	ReorderLevel int64                      `json:"reorderLevel"`
	Stock        decimal.Decimal            `json:"stock"`
	ByLocation   map[string]decimal.Decimal `json:"byLocation"`
}
