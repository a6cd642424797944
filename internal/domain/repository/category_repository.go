package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(ownerID, id string) (*entity.Category, error)
	Update(category *entity.Category) error
	ListByOwner(ownerID string) ([]*entity.Category, error)
	Delete(ownerID, id string) error
}
