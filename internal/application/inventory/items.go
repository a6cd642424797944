package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

func itemsFromDTO(in []dto.DocumentItemDTO) []entity.DocumentItem {
	items := make([]entity.DocumentItem, 0, len(in))
	for _, it := range in {
		items = append(items, entity.DocumentItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			CountedQty:  it.CountedQty,
		})
	}
	return items
}

func itemsToDTO(in []entity.DocumentItem) []dto.DocumentItemDTO {
	items := make([]dto.DocumentItemDTO, 0, len(in))
	for _, it := range in {
		items = append(items, dto.DocumentItemDTO{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			CountedQty:  it.CountedQty,
		})
	}
	return items
}

// totalQuantity y totalValue se recalculan siempre en servidor; nunca se
// confía en los totales enviados por el cliente.
func totalQuantity(items []entity.DocumentItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Quantity)
	}
	return sum
}

func totalValue(items []entity.DocumentItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Quantity.Mul(it.UnitPrice))
	}
	return sum
}
