package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// StockLevelRepository define el puerto de la vista materializada de stock por
// (owner, sku, bodega). Se actualiza en la misma transacción que el ledger.
type StockLevelRepository interface {
	Get(ownerID, sku, location string) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para lecturas
	// read-modify-write como el delta de un ajuste.
	GetForUpdate(ownerID, sku, location string) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
	ListBySKU(ownerID, sku string) ([]*entity.StockLevel, error)
	ListByOwner(ownerID string) ([]*entity.StockLevel, error)
}
