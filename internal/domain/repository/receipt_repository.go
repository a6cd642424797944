package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// ReceiptRepository define el puerto de persistencia para recepciones.
type ReceiptRepository interface {
	Create(receipt *entity.Receipt) error
	GetByID(ownerID, id string) (*entity.Receipt, error)
	// GetForUpdate bloquea la fila del documento (SELECT FOR UPDATE) para
	// serializar validaciones concurrentes sobre el mismo id.
	GetForUpdate(ownerID, id string) (*entity.Receipt, error)
	Update(receipt *entity.Receipt) error
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Receipt, error)
	CountOpen(ownerID string) (int, error)
	Delete(ownerID, id string) error
}
