package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// AdjustmentUseCase casos de uso de ajustes por conteo físico. El delta de
// cada línea se calcula contra el stock actual bajo bloqueo de fila, así la
// lectura y el asiento son atómicos (no hay delta obsoleto por carreras).
type AdjustmentUseCase struct {
	txRunner    TxRunner
	adjustments repository.AdjustmentRepository
	notifier    Notifier
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(txRunner TxRunner, adjustments repository.AdjustmentRepository, notifier Notifier) *AdjustmentUseCase {
	return &AdjustmentUseCase{txRunner: txRunner, adjustments: adjustments, notifier: notifier}
}

// Create crea un ajuste. Exige bodega y al menos una línea.
func (uc *AdjustmentUseCase) Create(ownerID string, in dto.CreateAdjustmentRequest) (*dto.AdjustmentResponse, error) {
	if len(in.Items) == 0 || in.Warehouse == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = inventory.StatusDraft
	}
	if !inventory.IsValidStatus(entity.DocTypeAdjustment, status) || inventory.IsTerminal(status) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	adjustmentDate := in.AdjustmentDate
	if adjustmentDate == "" {
		adjustmentDate = now.Format("2006-01-02")
	}
	items := itemsFromDTO(in.Items)
	adj := &entity.Adjustment{
		ID:             uuid.New().String(),
		OwnerID:        ownerID,
		Warehouse:      in.Warehouse,
		Reason:         in.Reason,
		AdjustmentDate: adjustmentDate,
		Status:         status,
		Items:          items,
		TotalItems:     totalQuantity(items),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.adjustments.Create(adj); err != nil {
		return nil, err
	}
	return toAdjustmentResponse(adj), nil
}

// GetByID obtiene un ajuste del tenant.
func (uc *AdjustmentUseCase) GetByID(ownerID, id string) (*dto.AdjustmentResponse, error) {
	adj, err := uc.adjustments.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	return toAdjustmentResponse(adj), nil
}

// List lista ajustes del tenant con paginación.
func (uc *AdjustmentUseCase) List(ownerID string, limit, offset int) ([]dto.AdjustmentResponse, error) {
	list, err := uc.adjustments.ListByOwner(ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AdjustmentResponse, 0, len(list))
	for _, adj := range list {
		out = append(out, *toAdjustmentResponse(adj))
	}
	return out, nil
}

// Update edita un ajuste no validado.
func (uc *AdjustmentUseCase) Update(ownerID, id string, in dto.UpdateAdjustmentRequest) (*dto.AdjustmentResponse, error) {
	adj, err := uc.adjustments.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	if inventory.IsTerminal(adj.Status) {
		return nil, domain.ErrInvalidState
	}
	if in.Warehouse != "" {
		adj.Warehouse = in.Warehouse
	}
	if in.Reason != "" {
		adj.Reason = in.Reason
	}
	if in.AdjustmentDate != "" {
		adj.AdjustmentDate = in.AdjustmentDate
	}
	if len(in.Items) > 0 {
		adj.Items = itemsFromDTO(in.Items)
		adj.TotalItems = totalQuantity(adj.Items)
	}
	adj.UpdatedAt = time.Now()
	if err := uc.adjustments.Update(adj); err != nil {
		return nil, err
	}
	return toAdjustmentResponse(adj), nil
}

// SetStatus cambia el estado entre estados no terminales de la tabla.
func (uc *AdjustmentUseCase) SetStatus(ownerID, id, status string) (*dto.AdjustmentResponse, error) {
	adj, err := uc.adjustments.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	if inventory.IsTerminal(adj.Status) {
		return nil, domain.ErrInvalidState
	}
	if !inventory.CanTransition(entity.DocTypeAdjustment, adj.Status, status) {
		return nil, domain.ErrInvalidInput
	}
	adj.Status = status
	adj.UpdatedAt = time.Now()
	if err := uc.adjustments.Update(adj); err != nil {
		return nil, err
	}
	return toAdjustmentResponse(adj), nil
}

// Validate confirma el ajuste. Por cada línea: bloquea la fila de stock de
// (sku, bodega), calcula delta = contado − actual y, solo si el delta no es
// cero, escribe el asiento. La lectura bloqueada garantiza que el delta se
// calcula sobre el stock vigente al momento del commit.
func (uc *AdjustmentUseCase) Validate(ctx context.Context, ownerID, id string) (*dto.AdjustmentResponse, error) {
	var out *entity.Adjustment
	var skus []string
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		adj, err := r.Adjustments.GetForUpdate(ownerID, id)
		if err != nil {
			return err
		}
		if adj == nil {
			return domain.ErrNotFound
		}
		if !inventory.CanValidate(adj.Status) {
			return domain.ErrAlreadyValidated
		}
		now := time.Now()
		reason := adj.Reason
		if reason == "" {
			reason = "Stock adjustment"
		}
		for _, item := range adj.Items {
			product, err := r.Products.GetByID(ownerID, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			level, err := r.Stock.GetForUpdate(ownerID, product.SKU, adj.Warehouse)
			if err != nil {
				return err
			}
			delta := item.CountedQty.Sub(level.Quantity)
			if delta.IsZero() {
				continue
			}
			entry := &entity.LedgerEntry{
				ID:        uuid.New().String(),
				OwnerID:   ownerID,
				SKU:       product.SKU,
				QtyChange: delta,
				Location:  adj.Warehouse,
				Type:      entity.MovementTypeAdjustment,
				Ref:       adj.ID,
				Reason:    reason,
				TS:        now,
			}
			if err := PostEntry(r, entry, now); err != nil {
				return err
			}
			skus = append(skus, product.SKU)
		}
		adj.Status = inventory.StatusDone
		adj.ValidatedAt = &now
		adj.UpdatedAt = now
		if err := r.Adjustments.Update(adj); err != nil {
			return err
		}
		out = adj
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, sku := range dedupe(skus) {
		uc.notifier.StockChanged(ownerID, sku)
	}
	return toAdjustmentResponse(out), nil
}

// Delete elimina un ajuste del tenant.
func (uc *AdjustmentUseCase) Delete(ownerID, id string) error {
	return uc.adjustments.Delete(ownerID, id)
}

func toAdjustmentResponse(a *entity.Adjustment) *dto.AdjustmentResponse {
	if a == nil {
		return nil
	}
	return &dto.AdjustmentResponse{
		ID:             a.ID,
		Warehouse:      a.Warehouse,
		Reason:         a.Reason,
		AdjustmentDate: a.AdjustmentDate,
		Status:         a.Status,
		Items:          itemsToDTO(a.Items),
		TotalItems:     a.TotalItems,
		ValidatedAt:    a.ValidatedAt,
		CreatedAt:      a.CreatedAt,
	}
}
