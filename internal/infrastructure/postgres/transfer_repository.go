package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de traslados. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, owner_id, from_warehouse, to_warehouse, transfer_date, status, items, total_items, validated_at, created_at, updated_at`

// Create persiste un traslado.
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	items, err := marshalItems(transfer.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(context.Background(), query,
		transfer.ID, transfer.OwnerID, transfer.FromWarehouse, transfer.ToWarehouse,
		transfer.TransferDate, transfer.Status, items, transfer.TotalItems,
		transfer.ValidatedAt, transfer.CreatedAt, transfer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID dentro del tenant.
func (r *TransferRepo) GetByID(ownerID, id string) (*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers WHERE owner_id = $1 AND id = $2`
	return scanTransfer(r.q.QueryRow(context.Background(), query, ownerID, id))
}

// GetForUpdate obtiene el traslado y bloquea su fila (SELECT FOR UPDATE).
func (r *TransferRepo) GetForUpdate(ownerID, id string) (*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers WHERE owner_id = $1 AND id = $2
		FOR UPDATE`
	return scanTransfer(r.q.QueryRow(context.Background(), query, ownerID, id))
}

// Update actualiza un traslado completo.
func (r *TransferRepo) Update(transfer *entity.Transfer) error {
	items, err := marshalItems(transfer.Items)
	if err != nil {
		return err
	}
	query := `
		UPDATE transfers
		SET from_warehouse = $3, to_warehouse = $4, transfer_date = $5, status = $6,
		    items = $7, total_items = $8, validated_at = $9, updated_at = $10
		WHERE owner_id = $1 AND id = $2`
	_, err = r.q.Exec(context.Background(), query,
		transfer.OwnerID, transfer.ID, transfer.FromWarehouse, transfer.ToWarehouse,
		transfer.TransferDate, transfer.Status, items, transfer.TotalItems,
		transfer.ValidatedAt, transfer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	return nil
}

// ListByOwner lista traslados del tenant, más recientes primero. limit <= 0
// devuelve todos.
func (r *TransferRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers WHERE owner_id = $1
		ORDER BY created_at DESC`
	args := []any{ownerID}
	if limit > 0 {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		tr, err := scanTransferRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, tr)
	}
	return list, rows.Err()
}

// CountOpen cuenta traslados no terminales ni cancelados.
func (r *TransferRepo) CountOpen(ownerID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM transfers WHERE owner_id = $1`+openStatusFilter, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count open transfers: %w", err)
	}
	return count, nil
}

// Delete elimina un traslado del tenant.
func (r *TransferRepo) Delete(ownerID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM transfers WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete transfer: %w", err)
	}
	return nil
}

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	tr, err := scanTransferRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return tr, nil
}

func scanTransferRow(row pgx.Row) (*entity.Transfer, error) {
	var tr entity.Transfer
	var rawItems []byte
	if err := row.Scan(&tr.ID, &tr.OwnerID, &tr.FromWarehouse, &tr.ToWarehouse,
		&tr.TransferDate, &tr.Status, &rawItems, &tr.TotalItems,
		&tr.ValidatedAt, &tr.CreatedAt, &tr.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan transfer: %w", err)
	}
	items, err := unmarshalItems(rawItems)
	if err != nil {
		return nil, err
	}
	tr.Items = items
	return &tr, nil
}
