package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/infrastructure/postgres"
)

// Requiere una base real con el esquema de migrations/ aplicado; se salta si
// TEST_DATABASE_URL no está definido.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	cfg, err := pgxpool.ParseConfig(url)
	require.NoError(t, err)
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	ctx := context.Background()
	id := uuid.New().String()
	_, err := pool.Exec(ctx, `
		INSERT INTO users (id, email, name, password_hash)
		VALUES ($1, $2, 'test', 'x')`, id, id+"@test.local")
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	})
	return id
}

// Dos transacciones concurrentes sobre un (sku, bodega) sin fila previa no
// deben perder ningún delta: GetForUpdate materializa la fila en cero y la
// bloquea, así la segunda transacción espera a la primera y lee su cantidad
// ya commiteada en vez de cero.
func TestStockLevelRepo_GetForUpdate_SerializaFilaNueva(t *testing.T) {
	pool := testPool(t)
	owner := createTestUser(t, pool)
	sku := "SKU-" + uuid.New().String()[:8]
	const location = "Main"
	ctx := context.Background()

	apply := func(delta int64) error {
		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)
		repo := postgres.NewStockLevelRepository(tx)
		level, err := repo.GetForUpdate(owner, sku, location)
		if err != nil {
			return err
		}
		level.Quantity = level.Quantity.Add(decimal.NewFromInt(delta))
		if err := repo.Upsert(level); err != nil {
			return err
		}
		return tx.Commit(ctx)
	}

	deltas := []int64{5, 3}
	errs := make([]error, len(deltas))
	var wg sync.WaitGroup
	for i, d := range deltas {
		wg.Add(1)
		go func(i int, d int64) {
			defer wg.Done()
			errs[i] = apply(d)
		}(i, d)
	}
	wg.Wait()
	for i, err := range errs {
		require.NoError(t, err, "transacción %d", i)
	}

	level, err := postgres.NewStockLevelRepository(pool).Get(owner, sku, location)
	require.NoError(t, err)
	assert.True(t, level.Quantity.Equal(decimal.NewFromInt(8)),
		"se perdió un delta: quedó %s, esperado 8", level.Quantity)
}

// GetForUpdate sobre una fila nueva devuelve cantidad cero pero deja la fila
// creada, lista para el Upsert dentro de la misma transacción.
func TestStockLevelRepo_GetForUpdate_FilaNuevaEnCero(t *testing.T) {
	pool := testPool(t)
	owner := createTestUser(t, pool)
	sku := "SKU-" + uuid.New().String()[:8]
	ctx := context.Background()

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	repo := postgres.NewStockLevelRepository(tx)
	level, err := repo.GetForUpdate(owner, sku, "Annex")
	require.NoError(t, err)
	assert.True(t, level.Quantity.IsZero())
	assert.Equal(t, "Annex", level.Location)
}
