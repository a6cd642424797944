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

// DefaultWarehouse bodega por defecto cuando el documento no indica una.
const DefaultWarehouse = "Main Warehouse"

// ReceiptUseCase casos de uso de recepciones: CRUD, cambio de estado y
// validación transaccional contra el ledger.
type ReceiptUseCase struct {
	txRunner TxRunner
	receipts repository.ReceiptRepository
	notifier Notifier
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(txRunner TxRunner, receipts repository.ReceiptRepository, notifier Notifier) *ReceiptUseCase {
	return &ReceiptUseCase{txRunner: txRunner, receipts: receipts, notifier: notifier}
}

// Create crea una recepción. Exige al menos una línea; los totales se
// recalculan en servidor.
func (uc *ReceiptUseCase) Create(ownerID string, in dto.CreateReceiptRequest) (*dto.ReceiptResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = inventory.StatusDraft
	}
	if !inventory.IsValidStatus(entity.DocTypeReceipt, status) || inventory.IsTerminal(status) {
		return nil, domain.ErrInvalidInput
	}
	warehouse := in.Warehouse
	if warehouse == "" {
		warehouse = DefaultWarehouse
	}
	now := time.Now()
	expectedDate := in.ExpectedDate
	if expectedDate == "" {
		expectedDate = now.Format("2006-01-02")
	}
	items := itemsFromDTO(in.Items)
	rec := &entity.Receipt{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		Supplier:     in.Supplier,
		Warehouse:    warehouse,
		ExpectedDate: expectedDate,
		Status:       status,
		Items:        items,
		TotalItems:   totalQuantity(items),
		TotalValue:   totalValue(items),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.receipts.Create(rec); err != nil {
		return nil, err
	}
	return toReceiptResponse(rec), nil
}

// GetByID obtiene una recepción del tenant.
func (uc *ReceiptUseCase) GetByID(ownerID, id string) (*dto.ReceiptResponse, error) {
	rec, err := uc.receipts.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return toReceiptResponse(rec), nil
}

// List lista recepciones del tenant con paginación.
func (uc *ReceiptUseCase) List(ownerID string, limit, offset int) ([]dto.ReceiptResponse, error) {
	list, err := uc.receipts.ListByOwner(ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReceiptResponse, 0, len(list))
	for _, rec := range list {
		out = append(out, *toReceiptResponse(rec))
	}
	return out, nil
}

// Update edita una recepción no validada. Campos vacíos conservan su valor.
func (uc *ReceiptUseCase) Update(ownerID, id string, in dto.UpdateReceiptRequest) (*dto.ReceiptResponse, error) {
	rec, err := uc.receipts.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	if inventory.IsTerminal(rec.Status) {
		return nil, domain.ErrInvalidState
	}
	if in.Supplier != "" {
		rec.Supplier = in.Supplier
	}
	if in.Warehouse != "" {
		rec.Warehouse = in.Warehouse
	}
	if in.ExpectedDate != "" {
		rec.ExpectedDate = in.ExpectedDate
	}
	if len(in.Items) > 0 {
		rec.Items = itemsFromDTO(in.Items)
		rec.TotalItems = totalQuantity(rec.Items)
		rec.TotalValue = totalValue(rec.Items)
	}
	rec.UpdatedAt = time.Now()
	if err := uc.receipts.Update(rec); err != nil {
		return nil, err
	}
	return toReceiptResponse(rec), nil
}

// SetStatus cambia el estado libremente entre estados no terminales de la
// tabla. Done solo se alcanza vía Validate.
func (uc *ReceiptUseCase) SetStatus(ownerID, id, status string) (*dto.ReceiptResponse, error) {
	rec, err := uc.receipts.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	if inventory.IsTerminal(rec.Status) {
		return nil, domain.ErrInvalidState
	}
	if !inventory.CanTransition(entity.DocTypeReceipt, rec.Status, status) {
		return nil, domain.ErrInvalidInput
	}
	rec.Status = status
	rec.UpdatedAt = time.Now()
	if err := uc.receipts.Update(rec); err != nil {
		return nil, err
	}
	return toReceiptResponse(rec), nil
}

// Validate confirma la recepción: un asiento positivo por línea en la bodega
// del documento y estado Done, todo en una transacción. La fila del documento
// se bloquea (SELECT FOR UPDATE) para que dos validaciones concurrentes del
// mismo id no dupliquen asientos. Un producto inexistente rechaza el validate
// completo.
func (uc *ReceiptUseCase) Validate(ctx context.Context, ownerID, id string) (*dto.ReceiptResponse, error) {
	var out *entity.Receipt
	var skus []string
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		rec, err := r.Receipts.GetForUpdate(ownerID, id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		if !inventory.CanValidate(rec.Status) {
			return domain.ErrAlreadyValidated
		}
		now := time.Now()
		for _, item := range rec.Items {
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
				QtyChange: item.Quantity,
				Location:  rec.Warehouse,
				Type:      entity.MovementTypeReceipt,
				Ref:       rec.ID,
				TS:        now,
			}
			if err := PostEntry(r, entry, now); err != nil {
				return err
			}
			skus = append(skus, product.SKU)
		}
		rec.Status = inventory.StatusDone
		rec.ValidatedAt = &now
		rec.UpdatedAt = now
		if err := r.Receipts.Update(rec); err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Notificación post-commit, nunca dentro de la transacción
	for _, sku := range dedupe(skus) {
		uc.notifier.StockChanged(ownerID, sku)
	}
	return toReceiptResponse(out), nil
}

// Delete elimina una recepción del tenant.
func (uc *ReceiptUseCase) Delete(ownerID, id string) error {
	return uc.receipts.Delete(ownerID, id)
}

func toReceiptResponse(r *entity.Receipt) *dto.ReceiptResponse {
	if r == nil {
		return nil
	}
	return &dto.ReceiptResponse{
		ID:           r.ID,
		Supplier:     r.Supplier,
		Warehouse:    r.Warehouse,
		ExpectedDate: r.ExpectedDate,
		Status:       r.Status,
		Items:        itemsToDTO(r.Items),
		TotalItems:   r.TotalItems,
		TotalValue:   r.TotalValue,
		ValidatedAt:  r.ValidatedAt,
		CreatedAt:    r.CreatedAt,
	}
}
