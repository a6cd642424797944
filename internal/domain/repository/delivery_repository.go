package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// DeliveryRepository define el puerto de persistencia para entregas.
type DeliveryRepository interface {
	Create(delivery *entity.Delivery) error
	GetByID(ownerID, id string) (*entity.Delivery, error)
	GetForUpdate(ownerID, id string) (*entity.Delivery, error)
	Update(delivery *entity.Delivery) error
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Delivery, error)
	CountOpen(ownerID string) (int, error)
	Delete(ownerID, id string) error
}
