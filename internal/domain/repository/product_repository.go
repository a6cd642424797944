package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todas las operaciones están acotadas por tenant.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(ownerID, id string) (*entity.Product, error)
	GetBySKU(ownerID, sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Product, error)
	CountByOwner(ownerID string) (int, error)
	DeleteBySKU(ownerID, sku string) error
}
