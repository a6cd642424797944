package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// LedgerRepository define el puerto de persistencia del ledger (append-only).
// No existe Update ni Delete: los asientos son hechos inmutables.
type LedgerRepository interface {
	Append(entry *entity.LedgerEntry) error
	ListByOwner(ownerID string, limit, offset int) ([]*entity.LedgerEntry, error)
	ListBySKU(ownerID, sku string) ([]*entity.LedgerEntry, error)
	ListByRef(ownerID, ref string) ([]*entity.LedgerEntry, error)
}
