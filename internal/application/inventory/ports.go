package inventory

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Ledger      repository.LedgerRepository
	Stock       repository.StockLevelRepository
	Products    repository.ProductRepository
	Receipts    repository.ReceiptRepository
	Deliveries  repository.DeliveryRepository
	Transfers   repository.TransferRepository
	Adjustments repository.AdjustmentRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre el asiento del
// ledger, la vista materializada de stock y el cambio de estado del documento.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}

// Notifier publica cambios de stock después del commit. La entrega es
// fire-and-forget: un fallo de notificación nunca revierte el asiento.
type Notifier interface {
	StockChanged(ownerID, sku string)
}

// NopNotifier descarta las notificaciones (tests, workers sin realtime).
type NopNotifier struct{}

// StockChanged no hace nada.
func (NopNotifier) StockChanged(ownerID, sku string) {}
