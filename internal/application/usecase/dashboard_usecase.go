package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// DashboardUseCase KPIs del tablero: conteos de documentos abiertos y
// productos bajo su nivel de reorden. Todo son lecturas; no hay estado.
type DashboardUseCase struct {
	products   repository.ProductRepository
	stock      repository.StockLevelRepository
	receipts   repository.ReceiptRepository
	deliveries repository.DeliveryRepository
	transfers  repository.TransferRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	products repository.ProductRepository,
	stock repository.StockLevelRepository,
	receipts repository.ReceiptRepository,
	deliveries repository.DeliveryRepository,
	transfers repository.TransferRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		products:   products,
		stock:      stock,
		receipts:   receipts,
		deliveries: deliveries,
		transfers:  transfers,
	}
}

// Summary calcula los KPIs del tenant. Bajo stock = total por SKU menor o
// igual al nivel de reorden del producto (solo productos con nivel > 0).
func (uc *DashboardUseCase) Summary(ownerID string) (*dto.DashboardResponse, error) {
	totalProducts, err := uc.products.CountByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	pendingReceipts, err := uc.receipts.CountOpen(ownerID)
	if err != nil {
		return nil, err
	}
	pendingDeliveries, err := uc.deliveries.CountOpen(ownerID)
	if err != nil {
		return nil, err
	}
	transfersScheduled, err := uc.transfers.CountOpen(ownerID)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.lowStockCount(ownerID)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		TotalProducts:      totalProducts,
		LowStockCount:      lowStock,
		PendingReceipts:    pendingReceipts,
		PendingDeliveries:  pendingDeliveries,
		TransfersScheduled: transfersScheduled,
	}, nil
}

func (uc *DashboardUseCase) lowStockCount(ownerID string) (int, error) {
	products, err := uc.products.ListByOwner(ownerID, 0, 0)
	if err != nil {
		return 0, err
	}
	levels, err := uc.stock.ListByOwner(ownerID)
	if err != nil {
		return 0, err
	}
	totals := make(map[string]decimal.Decimal, len(levels))
	for _, lv := range levels {
		totals[lv.SKU] = totals[lv.SKU].Add(lv.Quantity)
	}
	count := 0
	for _, p := range products {
		if p.ReorderLevel <= 0 {
			continue
		}
		if totals[p.SKU].LessThanOrEqual(decimal.NewFromInt(p.ReorderLevel)) {
			count++
		}
	}
	return count, nil
}
