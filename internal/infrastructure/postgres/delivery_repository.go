package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo implementación de DeliveryRepository sobre PostgreSQL (usable con pool o tx).
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador de entregas. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

const deliveryColumns = `id, owner_id, customer, warehouse, delivery_date, status, items, total_items, validated_at, created_at, updated_at`

// Create persiste una entrega.
func (r *DeliveryRepo) Create(delivery *entity.Delivery) error {
	items, err := marshalItems(delivery.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO deliveries (` + deliveryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(context.Background(), query,
		delivery.ID, delivery.OwnerID, delivery.Customer, delivery.Warehouse,
		delivery.DeliveryDate, delivery.Status, items, delivery.TotalItems,
		delivery.ValidatedAt, delivery.CreatedAt, delivery.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create delivery: %w", err)
	}
	return nil
}

// GetByID obtiene una entrega por ID dentro del tenant.
func (r *DeliveryRepo) GetByID(ownerID, id string) (*entity.Delivery, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries WHERE owner_id = $1 AND id = $2`
	return scanDelivery(r.q.QueryRow(context.Background(), query, ownerID, id))
}

// GetForUpdate obtiene la entrega y bloquea su fila (SELECT FOR UPDATE).
func (r *DeliveryRepo) GetForUpdate(ownerID, id string) (*entity.Delivery, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries WHERE owner_id = $1 AND id = $2
		FOR UPDATE`
	return scanDelivery(r.q.QueryRow(context.Background(), query, ownerID, id))
}

// Update actualiza una entrega completa.
func (r *DeliveryRepo) Update(delivery *entity.Delivery) error {
	items, err := marshalItems(delivery.Items)
	if err != nil {
		return err
	}
	query := `
		UPDATE deliveries
		SET customer = $3, warehouse = $4, delivery_date = $5, status = $6,
		    items = $7, total_items = $8, validated_at = $9, updated_at = $10
		WHERE owner_id = $1 AND id = $2`
	_, err = r.q.Exec(context.Background(), query,
		delivery.OwnerID, delivery.ID, delivery.Customer, delivery.Warehouse,
		delivery.DeliveryDate, delivery.Status, items, delivery.TotalItems,
		delivery.ValidatedAt, delivery.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}
	return nil
}

// ListByOwner lista entregas del tenant, más recientes primero. limit <= 0
// devuelve todas.
func (r *DeliveryRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Delivery, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries WHERE owner_id = $1
		ORDER BY created_at DESC`
	args := []any{ownerID}
	if limit > 0 {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Delivery
	for rows.Next() {
		del, err := scanDeliveryRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, del)
	}
	return list, rows.Err()
}

// CountOpen cuenta entregas no terminales ni canceladas.
func (r *DeliveryRepo) CountOpen(ownerID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM deliveries WHERE owner_id = $1`+openStatusFilter, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count open deliveries: %w", err)
	}
	return count, nil
}

// Delete elimina una entrega del tenant.
func (r *DeliveryRepo) Delete(ownerID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM deliveries WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete delivery: %w", err)
	}
	return nil
}

func scanDelivery(row pgx.Row) (*entity.Delivery, error) {
	del, err := scanDeliveryRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return del, nil
}

func scanDeliveryRow(row pgx.Row) (*entity.Delivery, error) {
	var del entity.Delivery
	var rawItems []byte
	if err := row.Scan(&del.ID, &del.OwnerID, &del.Customer, &del.Warehouse,
		&del.DeliveryDate, &del.Status, &rawItems, &del.TotalItems,
		&del.ValidatedAt, &del.CreatedAt, &del.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan delivery: %w", err)
	}
	items, err := unmarshalItems(rawItems)
	if err != nil {
		return nil, err
	}
	del.Items = items
	return &del, nil
}
