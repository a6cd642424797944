package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL
// (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador de niveles de stock. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// Get obtiene el nivel de stock de (sku, bodega). Sin fila devuelve cantidad
// cero, no error: un SKU nunca movido tiene stock 0.
func (r *StockLevelRepo) Get(ownerID, sku, location string) (*entity.StockLevel, error) {
	query := `
		SELECT owner_id, sku, location, quantity, updated_at
		FROM stock_levels WHERE owner_id = $1 AND sku = $2 AND location = $3`
	var s entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, ownerID, sku, location).Scan(
		&s.OwnerID, &s.SKU, &s.Location, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{OwnerID: ownerID, SKU: sku, Location: location, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el nivel y bloquea la fila (SELECT FOR UPDATE). Si la
// fila no existe se materializa primero en cero: sin fila no habría nada que
// bloquear y dos transacciones concurrentes sobre un (sku, bodega) nuevo
// leerían ambas cero y se pisarían el delta.
func (r *StockLevelRepo) GetForUpdate(ownerID, sku, location string) (*entity.StockLevel, error) {
	insert := `
		INSERT INTO stock_levels (owner_id, sku, location, quantity, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (owner_id, sku, location) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, ownerID, sku, location); err != nil {
		return nil, fmt.Errorf("materialize stock level: %w", err)
	}
	query := `
		SELECT owner_id, sku, location, quantity, updated_at
		FROM stock_levels WHERE owner_id = $1 AND sku = $2 AND location = $3
		FOR UPDATE`
	var s entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, ownerID, sku, location).Scan(
		&s.OwnerID, &s.SKU, &s.Location, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad de (owner, sku, bodega).
func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (owner_id, sku, location, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (owner_id, sku, location)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, level.OwnerID, level.SKU, level.Location, level.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// ListBySKU lista los niveles de un SKU del tenant.
func (r *StockLevelRepo) ListBySKU(ownerID, sku string) ([]*entity.StockLevel, error) {
	query := `
		SELECT owner_id, sku, location, quantity, updated_at
		FROM stock_levels WHERE owner_id = $1 AND sku = $2
		ORDER BY location`
	rows, err := r.q.Query(context.Background(), query, ownerID, sku)
	if err != nil {
		return nil, fmt.Errorf("list stock levels by sku: %w", err)
	}
	defer rows.Close()
	return scanStockLevels(rows)
}

// ListByOwner lista todos los niveles del tenant.
func (r *StockLevelRepo) ListByOwner(ownerID string) ([]*entity.StockLevel, error) {
	query := `
		SELECT owner_id, sku, location, quantity, updated_at
		FROM stock_levels WHERE owner_id = $1
		ORDER BY sku, location`
	rows, err := r.q.Query(context.Background(), query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list stock levels by owner: %w", err)
	}
	defer rows.Close()
	return scanStockLevels(rows)
}

func scanStockLevels(rows pgx.Rows) ([]*entity.StockLevel, error) {
	var list []*entity.StockLevel
	for rows.Next() {
		var s entity.StockLevel
		if err := rows.Scan(&s.OwnerID, &s.SKU, &s.Location, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
