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

// DeliveryUseCase casos de uso de entregas: CRUD, cambio de estado y
// validación transaccional contra el ledger (asientos negativos).
type DeliveryUseCase struct {
	txRunner   TxRunner
	deliveries repository.DeliveryRepository
	notifier   Notifier
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(txRunner TxRunner, deliveries repository.DeliveryRepository, notifier Notifier) *DeliveryUseCase {
	return &DeliveryUseCase{txRunner: txRunner, deliveries: deliveries, notifier: notifier}
}

// Create crea una entrega. Exige al menos una línea.
func (uc *DeliveryUseCase) Create(ownerID string, in dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = inventory.StatusDraft
	}
	if !inventory.IsValidStatus(entity.DocTypeDelivery, status) || inventory.IsTerminal(status) {
		return nil, domain.ErrInvalidInput
	}
	warehouse := in.Warehouse
	if warehouse == "" {
		warehouse = DefaultWarehouse
	}
	now := time.Now()
	deliveryDate := in.DeliveryDate
	if deliveryDate == "" {
		deliveryDate = now.Format("2006-01-02")
	}
	items := itemsFromDTO(in.Items)
	del := &entity.Delivery{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		Customer:     in.Customer,
		Warehouse:    warehouse,
		DeliveryDate: deliveryDate,
		Status:       status,
		Items:        items,
		TotalItems:   totalQuantity(items),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.deliveries.Create(del); err != nil {
		return nil, err
	}
	return toDeliveryResponse(del), nil
}

// GetByID obtiene una entrega del tenant.
func (uc *DeliveryUseCase) GetByID(ownerID, id string) (*dto.DeliveryResponse, error) {
	del, err := uc.deliveries.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if del == nil {
		return nil, domain.ErrNotFound
	}
	return toDeliveryResponse(del), nil
}

// List lista entregas del tenant con paginación.
func (uc *DeliveryUseCase) List(ownerID string, limit, offset int) ([]dto.DeliveryResponse, error) {
	list, err := uc.deliveries.ListByOwner(ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeliveryResponse, 0, len(list))
	for _, del := range list {
		out = append(out, *toDeliveryResponse(del))
	}
	return out, nil
}

// Update edita una entrega no validada.
func (uc *DeliveryUseCase) Update(ownerID, id string, in dto.UpdateDeliveryRequest) (*dto.DeliveryResponse, error) {
	del, err := uc.deliveries.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if del == nil {
		return nil, domain.ErrNotFound
	}
	if inventory.IsTerminal(del.Status) {
		return nil, domain.ErrInvalidState
	}
	if in.Customer != "" {
		del.Customer = in.Customer
	}
	if in.Warehouse != "" {
		del.Warehouse = in.Warehouse
	}
	if in.DeliveryDate != "" {
		del.DeliveryDate = in.DeliveryDate
	}
	if len(in.Items) > 0 {
		del.Items = itemsFromDTO(in.Items)
		del.TotalItems = totalQuantity(del.Items)
	}
	del.UpdatedAt = time.Now()
	if err := uc.deliveries.Update(del); err != nil {
		return nil, err
	}
	return toDeliveryResponse(del), nil
}

// SetStatus cambia el estado entre estados no terminales de la tabla.
func (uc *DeliveryUseCase) SetStatus(ownerID, id, status string) (*dto.DeliveryResponse, error) {
	del, err := uc.deliveries.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if del == nil {
		return nil, domain.ErrNotFound
	}
	if inventory.IsTerminal(del.Status) {
		return nil, domain.ErrInvalidState
	}
	if !inventory.CanTransition(entity.DocTypeDelivery, del.Status, status) {
		return nil, domain.ErrInvalidInput
	}
	del.Status = status
	del.UpdatedAt = time.Now()
	if err := uc.deliveries.Update(del); err != nil {
		return nil, err
	}
	return toDeliveryResponse(del), nil
}

// Validate confirma la entrega: un asiento negativo por línea en la bodega del
// documento y estado Done, en una sola transacción. El stock puede quedar en
// negativo: el ledger registra el hecho y el tablero lo refleja como faltante.
func (uc *DeliveryUseCase) Validate(ctx context.Context, ownerID, id string) (*dto.DeliveryResponse, error) {
	var out *entity.Delivery
	var skus []string
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		del, err := r.Deliveries.GetForUpdate(ownerID, id)
		if err != nil {
			return err
		}
		if del == nil {
			return domain.ErrNotFound
		}
		if !inventory.CanValidate(del.Status) {
			return domain.ErrAlreadyValidated
		}
		now := time.Now()
		for _, item := range del.Items {
			product, err := r.Products.GetByID(ownerID, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			entry := &entity.LedgerEntry{
				ID:        uuid.New().String(),
				OwnerID:   ownerID,
				SKU:       product.SKU,
				QtyChange: item.Quantity.Neg(),
				Location:  del.Warehouse,
				Type:      entity.MovementTypeDelivery,
				Ref:       del.ID,
				TS:        now,
			}
			if err := PostEntry(r, entry, now); err != nil {
				return err
			}
			skus = append(skus, product.SKU)
		}
		del.Status = inventory.StatusDone
		del.ValidatedAt = &now
		del.UpdatedAt = now
		if err := r.Deliveries.Update(del); err != nil {
			return err
		}
		out = del
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, sku := range dedupe(skus) {
		uc.notifier.StockChanged(ownerID, sku)
	}
	return toDeliveryResponse(out), nil
}

// Delete elimina una entrega del tenant.
func (uc *DeliveryUseCase) Delete(ownerID, id string) error {
	return uc.deliveries.Delete(ownerID, id)
}

func toDeliveryResponse(d *entity.Delivery) *dto.DeliveryResponse {
	if d == nil {
		return nil
	}
	return &dto.DeliveryResponse{
		ID:           d.ID,
		Customer:     d.Customer,
		Warehouse:    d.Warehouse,
		DeliveryDate: d.DeliveryDate,
		Status:       d.Status,
		Items:        itemsToDTO(d.Items),
		TotalItems:   d.TotalItems,
		ValidatedAt:  d.ValidatedAt,
		CreatedAt:    d.CreatedAt,
	}
}
