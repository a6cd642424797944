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

// TransferUseCase casos de uso de traslados entre bodegas. La validación
// escribe dos asientos por línea (salida en origen, entrada en destino) con el
// mismo ref, así el total por SKU se conserva.
type TransferUseCase struct {
	txRunner  TxRunner
	transfers repository.TransferRepository
	notifier  Notifier
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(txRunner TxRunner, transfers repository.TransferRepository, notifier Notifier) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner, transfers: transfers, notifier: notifier}
}

// Create crea un traslado. Exige origen, destino distintos y al menos una línea.
func (uc *TransferUseCase) Create(ownerID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if len(in.Items) == 0 || in.FromWarehouse == "" || in.ToWarehouse == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.FromWarehouse == in.ToWarehouse {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = inventory.StatusDraft
	}
	if !inventory.IsValidStatus(entity.DocTypeTransfer, status) || inventory.IsTerminal(status) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	transferDate := in.TransferDate
	if transferDate == "" {
		transferDate = now.Format("2006-01-02")
	}
	items := itemsFromDTO(in.Items)
	tr := &entity.Transfer{
		ID:            uuid.New().String(),
		OwnerID:       ownerID,
		FromWarehouse: in.FromWarehouse,
		ToWarehouse:   in.ToWarehouse,
		TransferDate:  transferDate,
		Status:        status,
		Items:         items,
		TotalItems:    totalQuantity(items),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.transfers.Create(tr); err != nil {
		return nil, err
	}
	return toTransferResponse(tr), nil
}

// GetByID obtiene un traslado del tenant.
func (uc *TransferUseCase) GetByID(ownerID, id string) (*dto.TransferResponse, error) {
	tr, err := uc.transfers.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if tr == nil {
		return nil, domain.ErrNotFound
	}
	return toTransferResponse(tr), nil
}

// List lista traslados del tenant con paginación.
func (uc *TransferUseCase) List(ownerID string, limit, offset int) ([]dto.TransferResponse, error) {
	list, err := uc.transfers.ListByOwner(ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransferResponse, 0, len(list))
	for _, tr := range list {
		out = append(out, *toTransferResponse(tr))
	}
	return out, nil
}

// Update edita un traslado no validado.
func (uc *TransferUseCase) Update(ownerID, id string, in dto.UpdateTransferRequest) (*dto.TransferResponse, error) {
	tr, err := uc.transfers.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if tr == nil {
		return nil, domain.ErrNotFound
	}
	if inventory.IsTerminal(tr.Status) {
		return nil, domain.ErrInvalidState
	}
	if in.FromWarehouse != "" {
		tr.FromWarehouse = in.FromWarehouse
	}
	if in.ToWarehouse != "" {
		tr.ToWarehouse = in.ToWarehouse
	}
	if tr.FromWarehouse == tr.ToWarehouse {
		return nil, domain.ErrInvalidInput
	}
	if in.TransferDate != "" {
		tr.TransferDate = in.TransferDate
	}
	if len(in.Items) > 0 {
		tr.Items = itemsFromDTO(in.Items)
		tr.TotalItems = totalQuantity(tr.Items)
	}
	tr.UpdatedAt = time.Now()
	if err := uc.transfers.Update(tr); err != nil {
		return nil, err
	}
	return toTransferResponse(tr), nil
}

// SetStatus cambia el estado entre estados no terminales de la tabla.
func (uc *TransferUseCase) SetStatus(ownerID, id, status string) (*dto.TransferResponse, error) {
	tr, err := uc.transfers.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if tr == nil {
		return nil, domain.ErrNotFound
	}
	if inventory.IsTerminal(tr.Status) {
		return nil, domain.ErrInvalidState
	}
	if !inventory.CanTransition(entity.DocTypeTransfer, tr.Status, status) {
		return nil, domain.ErrInvalidInput
	}
	tr.Status = status
	tr.UpdatedAt = time.Now()
	if err := uc.transfers.Update(tr); err != nil {
		return nil, err
	}
	return toTransferResponse(tr), nil
}

// Validate confirma el traslado: por cada línea, −qty en la bodega origen y
// +qty en la destino, dos asientos con el mismo ref en la misma transacción.
func (uc *TransferUseCase) Validate(ctx context.Context, ownerID, id string) (*dto.TransferResponse, error) {
	var out *entity.Transfer
	var skus []string
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		tr, err := r.Transfers.GetForUpdate(ownerID, id)
		if err != nil {
			return err
		}
		if tr == nil {
			return domain.ErrNotFound
		}
		if !inventory.CanValidate(tr.Status) {
			return domain.ErrAlreadyValidated
		}
		now := time.Now()
		for _, item := range tr.Items {
			product, err := r.Products.GetByID(ownerID, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			outEntry := &entity.LedgerEntry{
				ID:        uuid.New().String(),
				OwnerID:   ownerID,
				SKU:       product.SKU,
				QtyChange: item.Quantity.Neg(),
				Location:  tr.FromWarehouse,
				Type:      entity.MovementTypeTransfer,
				Ref:       tr.ID,
				TS:        now,
			}
			if err := PostEntry(r, outEntry, now); err != nil {
				return err
			}
			inEntry := &entity.LedgerEntry{
				ID:        uuid.New().String(),
				OwnerID:   ownerID,
				SKU:       product.SKU,
				QtyChange: item.Quantity,
				Location:  tr.ToWarehouse,
				Type:      entity.MovementTypeTransfer,
				Ref:       tr.ID,
				TS:        now,
			}
			if err := PostEntry(r, inEntry, now); err != nil {
				return err
			}
			skus = append(skus, product.SKU)
		}
		tr.Status = inventory.StatusDone
		tr.ValidatedAt = &now
		tr.UpdatedAt = now
		if err := r.Transfers.Update(tr); err != nil {
			return err
		}
		out = tr
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, sku := range dedupe(skus) {
		uc.notifier.StockChanged(ownerID, sku)
	}
	return toTransferResponse(out), nil
}

// Delete elimina un traslado del tenant.
func (uc *TransferUseCase) Delete(ownerID, id string) error {
	return uc.transfers.Delete(ownerID, id)
}

func toTransferResponse(t *entity.Transfer) *dto.TransferResponse {
	if t == nil {
		return nil
	}
	return &dto.TransferResponse{
		ID:            t.ID,
		FromWarehouse: t.FromWarehouse,
		ToWarehouse:   t.ToWarehouse,
		TransferDate:  t.TransferDate,
		Status:        t.Status,
		Items:         itemsToDTO(t.Items),
		TotalItems:    t.TotalItems,
		ValidatedAt:   t.ValidatedAt,
		CreatedAt:     t.CreatedAt,
	}
}
