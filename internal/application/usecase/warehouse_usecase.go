package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas. Las bodegas son catálogo:
// los documentos referencian la bodega por nombre y el ledger no depende de
// que la bodega exista.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea una bodega.
func (uc *WarehouseUseCase) Create(ownerID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	wh := &entity.Warehouse{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      in.Name,
		Address:   in.Address,
		Type:      in.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(wh); err != nil {
		return nil, err
	}
	return toWarehouseResponse(wh), nil
}

// GetByID obtiene una bodega del tenant.
func (uc *WarehouseUseCase) GetByID(ownerID, id string) (*dto.WarehouseResponse, error) {
	wh, err := uc.repo.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	return toWarehouseResponse(wh), nil
}

// List lista bodegas del tenant.
func (uc *WarehouseUseCase) List(ownerID string) ([]dto.WarehouseResponse, error) {
	list, err := uc.repo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(list))
	for _, wh := range list {
		out = append(out, *toWarehouseResponse(wh))
	}
	return out, nil
}

// Update actualiza una bodega. Campos nil no se tocan.
func (uc *WarehouseUseCase) Update(ownerID, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	wh, err := uc.repo.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		wh.Name = *in.Name
	}
	if in.Address != nil {
		wh.Address = *in.Address
	}
	if in.Type != nil {
		wh.Type = *in.Type
	}
	wh.UpdatedAt = time.Now()
	if err := uc.repo.Update(wh); err != nil {
		return nil, err
	}
	return toWarehouseResponse(wh), nil
}

// Delete elimina una bodega del tenant.
func (uc *WarehouseUseCase) Delete(ownerID, id string) error {
	return uc.repo.Delete(ownerID, id)
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Address:   w.Address,
		Type:      w.Type,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
