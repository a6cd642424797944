package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación de LedgerRepository sobre PostgreSQL (usable con
// pool o tx). La tabla es append-only: no hay UPDATE ni DELETE.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Append persiste un asiento del ledger.
func (r *LedgerRepo) Append(entry *entity.LedgerEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Location == "" {
		entry.Location = entity.LocationUnplaced
	}
	query := `
		INSERT INTO ledger_entries (id, owner_id, sku, qty_change, location, type, ref, reason, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	ref := (*string)(nil)
	if entry.Ref != "" {
		ref = &entry.Ref
	}
	reason := (*string)(nil)
	if entry.Reason != "" {
		reason = &entry.Reason
	}
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.OwnerID, entry.SKU, entry.QtyChange, entry.Location,
		entry.Type, ref, reason, entry.TS,
	)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// ListByOwner lista asientos del tenant, más recientes primero. limit <= 0
// devuelve todos.
func (r *LedgerRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, owner_id, sku, qty_change, location, type, ref, reason, ts
		FROM ledger_entries WHERE owner_id = $1
		ORDER BY ts DESC, id`
	args := []any{ownerID}
	if limit > 0 {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger by owner: %w", err)
	}
	defer rows.Close()
	return scanLedgerEntries(rows)
}

// ListBySKU lista los asientos de un SKU del tenant, más recientes primero.
func (r *LedgerRepo) ListBySKU(ownerID, sku string) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, owner_id, sku, qty_change, location, type, ref, reason, ts
		FROM ledger_entries WHERE owner_id = $1 AND sku = $2
		ORDER BY ts DESC, id`
	rows, err := r.q.Query(context.Background(), query, ownerID, sku)
	if err != nil {
		return nil, fmt.Errorf("list ledger by sku: %w", err)
	}
	defer rows.Close()
	return scanLedgerEntries(rows)
}

// ListByRef lista los asientos generados por un documento (ref).
func (r *LedgerRepo) ListByRef(ownerID, ref string) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, owner_id, sku, qty_change, location, type, ref, reason, ts
		FROM ledger_entries WHERE owner_id = $1 AND ref = $2
		ORDER BY ts, id`
	rows, err := r.q.Query(context.Background(), query, ownerID, ref)
	if err != nil {
		return nil, fmt.Errorf("list ledger by ref: %w", err)
	}
	defer rows.Close()
	return scanLedgerEntries(rows)
}

func scanLedgerEntries(rows pgx.Rows) ([]*entity.LedgerEntry, error) {
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		var ref, reason *string
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.SKU, &e.QtyChange, &e.Location,
			&e.Type, &ref, &reason, &e.TS); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		if ref != nil {
			e.Ref = *ref
		}
		if reason != nil {
			e.Reason = *reason
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
