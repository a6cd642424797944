package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto. SKU repetido en el tenant devuelve ErrDuplicate.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, owner_id, sku, name, category, uom, reorder_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.OwnerID, product.SKU, product.Name, product.Category,
		product.UOM, product.ReorderLevel, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID dentro del tenant.
func (r *ProductRepo) GetByID(ownerID, id string) (*entity.Product, error) {
	query := `
		SELECT id, owner_id, sku, name, category, uom, reorder_level, created_at, updated_at
		FROM products WHERE owner_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, ownerID, id))
}

// GetBySKU obtiene un producto por SKU dentro del tenant.
func (r *ProductRepo) GetBySKU(ownerID, sku string) (*entity.Product, error) {
	query := `
		SELECT id, owner_id, sku, name, category, uom, reorder_level, created_at, updated_at
		FROM products WHERE owner_id = $1 AND sku = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, ownerID, sku))
}

// Update actualiza los metadatos de un producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $3, category = $4, uom = $5, reorder_level = $6, updated_at = $7
		WHERE owner_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		product.OwnerID, product.ID, product.Name, product.Category,
		product.UOM, product.ReorderLevel, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ListByOwner lista productos del tenant con paginación. limit <= 0 devuelve todos.
func (r *ProductRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, owner_id, sku, name, category, uom, reorder_level, created_at, updated_at
		FROM products WHERE owner_id = $1
		ORDER BY name`
	args := []any{ownerID}
	if limit > 0 {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.SKU, &p.Name, &p.Category,
			&p.UOM, &p.ReorderLevel, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CountByOwner cuenta los productos del tenant.
func (r *ProductRepo) CountByOwner(ownerID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE owner_id = $1`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// DeleteBySKU elimina un producto por SKU dentro del tenant.
func (r *ProductRepo) DeleteBySKU(ownerID, sku string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM products WHERE owner_id = $1 AND sku = $2`, ownerID, sku)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.OwnerID, &p.SKU, &p.Name, &p.Category,
		&p.UOM, &p.ReorderLevel, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}
