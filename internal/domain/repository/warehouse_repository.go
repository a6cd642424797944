package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para bodegas.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(ownerID, id string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	ListByOwner(ownerID string) ([]*entity.Warehouse, error)
	Delete(ownerID, id string) error
}
