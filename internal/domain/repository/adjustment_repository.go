package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// AdjustmentRepository define el puerto de persistencia para ajustes.
type AdjustmentRepository interface {
	Create(adjustment *entity.Adjustment) error
	GetByID(ownerID, id string) (*entity.Adjustment, error)
	GetForUpdate(ownerID, id string) (*entity.Adjustment, error)
	Update(adjustment *entity.Adjustment) error
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Adjustment, error)
	Delete(ownerID, id string) error
}
