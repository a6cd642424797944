package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
)

// StockHandler expone el ledger y el stock agregado (solo lectura).
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler de stock.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// ListLedger lista los asientos del tenant. Con ?sku= filtra por SKU.
func (h *StockHandler) ListLedger(c *fiber.Ctx) error {
	if sku := c.Query("sku"); sku != "" {
		out, err := h.uc.ListLedgerBySKU(GetUserID(c), sku)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "paginación inválida"))
	}
	page.DefaultPage()
	out, err := h.uc.ListLedger(GetUserID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary devuelve el stock agregado de todos los SKUs del tenant.
func (h *StockHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SummarySKU devuelve el stock agregado de un SKU. SKU sin movimientos
// responde total cero, no 404.
func (h *StockHandler) SummarySKU(c *fiber.Ctx) error {
	out, err := h.uc.SummarySKU(GetUserID(c), c.Params("sku"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
