package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentItemDTO línea de un documento de operación. countedQty solo aplica
// a ajustes.
type DocumentItemDTO struct {
	ProductID   string          `json:"productId" validate:"required"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice,omitempty"`
	CountedQty  decimal.Decimal `json:"countedQty,omitempty"`
}

// CreateReceiptRequest body para POST /api/receipts.
type CreateReceiptRequest struct {
	Supplier     string            `json:"supplier"`
	Warehouse    string            `json:"warehouse"`
	ExpectedDate string            `json:"expectedDate"`
	Status       string            `json:"status"`
	Items        []DocumentItemDTO `json:"items" validate:"required,min=1,dive"`
}

// UpdateReceiptRequest body para PUT /api/receipts/:id. Campos vacíos no se tocan.
type UpdateReceiptRequest struct {
	Supplier     string            `json:"supplier"`
	Warehouse    string            `json:"warehouse"`
	ExpectedDate string            `json:"expectedDate"`
	Items        []DocumentItemDTO `json:"items" validate:"omitempty,dive"`
}

// ReceiptResponse recepción en respuestas.
type ReceiptResponse struct {
	ID           string            `json:"id"`
	Supplier     string            `json:"supplier,omitempty"`
	Warehouse    string            `json:"warehouse"`
	ExpectedDate string            `json:"expectedDate"`
	Status       string            `json:"status"`
	Items        []DocumentItemDTO `json:"items"`
	TotalItems   decimal.Decimal   `json:"totalItems"`
	TotalValue   decimal.Decimal   `json:"totalValue"`
	ValidatedAt  *time.Time        `json:"validatedAt,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// CreateDeliveryRequest body para POST /api/deliveries.
type CreateDeliveryRequest struct {
	Customer     string            `json:"customer"`
	Warehouse    string            `json:"warehouse"`
	DeliveryDate string            `json:"deliveryDate"`
	Status       string            `json:"status"`
	Items        []DocumentItemDTO `json:"items" validate:"required,min=1,dive"`
}

// UpdateDeliveryRequest body para PUT /api/deliveries/:id.
type UpdateDeliveryRequest struct {
	Customer     string            `json:"customer"`
	Warehouse    string            `json:"warehouse"`
	DeliveryDate string            `json:"deliveryDate"`
	Items        []DocumentItemDTO `json:"items" validate:"omitempty,dive"`
}

// DeliveryResponse entrega en respuestas.
type DeliveryResponse struct {
	ID           string            `json:"id"`
	Customer     string            `json:"customer,omitempty"`
	Warehouse    string            `json:"warehouse"`
	DeliveryDate string            `json:"deliveryDate"`
	Status       string            `json:"status"`
	Items        []DocumentItemDTO `json:"items"`
	TotalItems   decimal.Decimal   `json:"totalItems"`
	ValidatedAt  *time.Time        `json:"validatedAt,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	FromWarehouse string            `json:"fromWarehouse" validate:"required"`
	ToWarehouse   string            `json:"toWarehouse" validate:"required"`
	TransferDate  string            `json:"transferDate"`
	Status        string            `json:"status"`
	Items         []DocumentItemDTO `json:"items" validate:"required,min=1,dive"`
}

// UpdateTransferRequest body para PUT /api/transfers/:id.
type UpdateTransferRequest struct {
	FromWarehouse string            `json:"fromWarehouse"`
	ToWarehouse   string            `json:"toWarehouse"`
	TransferDate  string            `json:"transferDate"`
	Items         []DocumentItemDTO `json:"items" validate:"omitempty,dive"`
}

// TransferResponse traslado en respuestas.
type TransferResponse struct {
	ID            string            `json:"id"`
	FromWarehouse string            `json:"fromWarehouse"`
	ToWarehouse   string            `json:"toWarehouse"`
	TransferDate  string            `json:"transferDate"`
	Status        string            `json:"status"`
	Items         []DocumentItemDTO `json:"items"`
	TotalItems    decimal.Decimal   `json:"totalItems"`
	ValidatedAt   *time.Time        `json:"validatedAt,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// CreateAdjustmentRequest body para POST /api/adjustments.
type CreateAdjustmentRequest struct {
	Warehouse      string            `json:"warehouse" validate:"required"`
	Reason         string            `json:"reason"`
	AdjustmentDate string            `json:"adjustmentDate"`
	Status         string            `json:"status"`
	Items          []DocumentItemDTO `json:"items" validate:"required,min=1,dive"`
}

// UpdateAdjustmentRequest body para PUT /api/adjustments/:id.
type UpdateAdjustmentRequest struct {
	Warehouse      string            `json:"warehouse"`
	Reason         string            `json:"reason"`
	AdjustmentDate string            `json:"adjustmentDate"`
	Items          []DocumentItemDTO `json:"items" validate:"omitempty,dive"`
}

// AdjustmentResponse ajuste en respuestas.
type AdjustmentResponse struct {
	ID             string            `json:"id"`
	Warehouse      string            `json:"warehouse"`
	Reason         string            `json:"reason,omitempty"`
	AdjustmentDate string            `json:"adjustmentDate"`
	Status         string            `json:"status"`
	Items          []DocumentItemDTO `json:"items"`
	TotalItems     decimal.Decimal   `json:"totalItems"`
	ValidatedAt    *time.Time        `json:"validatedAt,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// SetStatusRequest body para PATCH /api/.../:id/status.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
