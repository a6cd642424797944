package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// TransferRepository define el puerto de persistencia para traslados.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(ownerID, id string) (*entity.Transfer, error)
	GetForUpdate(ownerID, id string) (*entity.Transfer, error)
	Update(transfer *entity.Transfer) error
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Transfer, error)
	CountOpen(ownerID string) (int, error)
	Delete(ownerID, id string) error
}
