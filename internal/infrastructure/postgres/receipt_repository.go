package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementación de ReceiptRepository sobre PostgreSQL (usable con pool o tx).
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador de recepciones. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

const receiptColumns = `id, owner_id, supplier, warehouse, expected_date, status, items, total_items, total_value, validated_at, created_at, updated_at`

// Create persiste una recepción.
func (r *ReceiptRepo) Create(receipt *entity.Receipt) error {
	items, err := marshalItems(receipt.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(context.Background(), query,
		receipt.ID, receipt.OwnerID, receipt.Supplier, receipt.Warehouse,
		receipt.ExpectedDate, receipt.Status, items, receipt.TotalItems,
		receipt.TotalValue, receipt.ValidatedAt, receipt.CreatedAt, receipt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create receipt: %w", err)
	}
	return nil
}

// GetByID obtiene una recepción por ID dentro del tenant.
func (r *ReceiptRepo) GetByID(ownerID, id string) (*entity.Receipt, error) {
	query := `
		SELECT ` + receiptColumns + `
		FROM receipts WHERE owner_id = $1 AND id = $2`
	return scanReceipt(r.q.QueryRow(context.Background(), query, ownerID, id))
}

// GetForUpdate obtiene la recepción y bloquea su fila (SELECT FOR UPDATE).
func (r *ReceiptRepo) GetForUpdate(ownerID, id string) (*entity.Receipt, error) {
	query := `
		SELECT ` + receiptColumns + `
		FROM receipts WHERE owner_id = $1 AND id = $2
		FOR UPDATE`
	return scanReceipt(r.q.QueryRow(context.Background(), query, ownerID, id))
}

// Update actualiza una recepción completa (incluye items y totales).
func (r *ReceiptRepo) Update(receipt *entity.Receipt) error {
	items, err := marshalItems(receipt.Items)
	if err != nil {
		return err
	}
	query := `
		UPDATE receipts
		SET supplier = $3, warehouse = $4, expected_date = $5, status = $6,
		    items = $7, total_items = $8, total_value = $9, validated_at = $10, updated_at = $11
		WHERE owner_id = $1 AND id = $2`
	_, err = r.q.Exec(context.Background(), query,
		receipt.OwnerID, receipt.ID, receipt.Supplier, receipt.Warehouse,
		receipt.ExpectedDate, receipt.Status, items, receipt.TotalItems,
		receipt.TotalValue, receipt.ValidatedAt, receipt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update receipt: %w", err)
	}
	return nil
}

// ListByOwner lista recepciones del tenant, más recientes primero. limit <= 0
// devuelve todas.
func (r *ReceiptRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Receipt, error) {
	query := `
		SELECT ` + receiptColumns + `
		FROM receipts WHERE owner_id = $1
		ORDER BY created_at DESC`
	args := []any{ownerID}
	if limit > 0 {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Receipt
	for rows.Next() {
		rec, err := scanReceiptRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// CountOpen cuenta recepciones no terminales ni canceladas.
func (r *ReceiptRepo) CountOpen(ownerID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM receipts WHERE owner_id = $1`+openStatusFilter, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count open receipts: %w", err)
	}
	return count, nil
}

// Delete elimina una recepción del tenant.
func (r *ReceiptRepo) Delete(ownerID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM receipts WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete receipt: %w", err)
	}
	return nil
}

func scanReceipt(row pgx.Row) (*entity.Receipt, error) {
	rec, err := scanReceiptRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func scanReceiptRow(row pgx.Row) (*entity.Receipt, error) {
	var rec entity.Receipt
	var rawItems []byte
	if err := row.Scan(&rec.ID, &rec.OwnerID, &rec.Supplier, &rec.Warehouse,
		&rec.ExpectedDate, &rec.Status, &rawItems, &rec.TotalItems,
		&rec.TotalValue, &rec.ValidatedAt, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan receipt: %w", err)
	}
	items, err := unmarshalItems(rawItems)
	if err != nil {
		return nil, err
	}
	rec.Items = items
	return &rec, nil
}
