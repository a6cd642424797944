package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementación de AdjustmentRepository sobre PostgreSQL (usable con pool o tx).
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador de ajustes. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

const adjustmentColumns = `id, owner_id, warehouse, reason, adjustment_date, status, items, total_items, validated_at, created_at, updated_at`

// Create persiste un ajuste.
func (r *AdjustmentRepo) Create(adjustment *entity.Adjustment) error {
	items, err := marshalItems(adjustment.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(context.Background(), query,
		adjustment.ID, adjustment.OwnerID, adjustment.Warehouse, adjustment.Reason,
		adjustment.AdjustmentDate, adjustment.Status, items, adjustment.TotalItems,
		adjustment.ValidatedAt, adjustment.CreatedAt, adjustment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create adjustment: %w", err)
	}
	return nil
}

// GetByID obtiene un ajuste por ID dentro del tenant.
func (r *AdjustmentRepo) GetByID(ownerID, id string) (*entity.Adjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM adjustments WHERE owner_id = $1 AND id = $2`
	return scanAdjustment(r.q.QueryRow(context.Background(), query, ownerID, id))
}

// GetForUpdate obtiene el ajuste y bloquea su fila (SELECT FOR UPDATE).
func (r *AdjustmentRepo) GetForUpdate(ownerID, id string) (*entity.Adjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM adjustments WHERE owner_id = $1 AND id = $2
		FOR UPDATE`
	return scanAdjustment(r.q.QueryRow(context.Background(), query, ownerID, id))
}

// Update actualiza un ajuste completo.
func (r *AdjustmentRepo) Update(adjustment *entity.Adjustment) error {
	items, err := marshalItems(adjustment.Items)
	if err != nil {
		return err
	}
	query := `
		UPDATE adjustments
		SET warehouse = $3, reason = $4, adjustment_date = $5, status = $6,
		    items = $7, total_items = $8, validated_at = $9, updated_at = $10
		WHERE owner_id = $1 AND id = $2`
	_, err = r.q.Exec(context.Background(), query,
		adjustment.OwnerID, adjustment.ID, adjustment.Warehouse, adjustment.Reason,
		adjustment.AdjustmentDate, adjustment.Status, items, adjustment.TotalItems,
		adjustment.ValidatedAt, adjustment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update adjustment: %w", err)
	}
	return nil
}

// ListByOwner lista ajustes del tenant, más recientes primero. limit <= 0
// devuelve todos.
func (r *AdjustmentRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Adjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM adjustments WHERE owner_id = $1
		ORDER BY created_at DESC`
	args := []any{ownerID}
	if limit > 0 {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Adjustment
	for rows.Next() {
		adj, err := scanAdjustmentRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, adj)
	}
	return list, rows.Err()
}

// Delete elimina un ajuste del tenant.
func (r *AdjustmentRepo) Delete(ownerID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM adjustments WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete adjustment: %w", err)
	}
	return nil
}

func scanAdjustment(row pgx.Row) (*entity.Adjustment, error) {
	adj, err := scanAdjustmentRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return adj, nil
}

func scanAdjustmentRow(row pgx.Row) (*entity.Adjustment, error) {
	var adj entity.Adjustment
	var rawItems []byte
	if err := row.Scan(&adj.ID, &adj.OwnerID, &adj.Warehouse, &adj.Reason,
		&adj.AdjustmentDate, &adj.Status, &rawItems, &adj.TotalItems,
		&adj.ValidatedAt, &adj.CreatedAt, &adj.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan adjustment: %w", err)
	}
	items, err := unmarshalItems(rawItems)
	if err != nil {
		return nil, err
	}
	adj.Items = items
	return &adj, nil
}
