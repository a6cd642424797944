package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
)

// Ciclo de vida completo de un SKU: stock inicial, recepción, traslado y
// ajuste por conteo, verificando el agregado del ledger en cada paso.
func TestKardex_CicloCompletoDeUnSKU(t *testing.T) {
	e := newTestEnv()
	e.addProduct(testOwner, "prod-1", "SR-001", "Silla de ruedas")
	require.NoError(t, e.postInitial(testOwner, "SR-001", decimal.NewFromInt(10)))

	receiptUC := newReceiptUC(e)
	transferUC := newTransferUC(e)
	adjustmentUC := newAdjustmentUC(e)

	// Stock inicial: 10 en UNPLACED.
	s := inventory.AggregateSKU(e.entriesBySKU(testOwner, "SR-001"), "SR-001")
	assert.True(t, s.Total.Equal(decimal.NewFromInt(10)))
	assert.True(t, s.ByLocation[entity.LocationUnplaced].Equal(decimal.NewFromInt(10)))

	// Recepción de 5 en Main: total 15.
	rec, err := receiptUC.Create(testOwner, dto.CreateReceiptRequest{
		Warehouse: "Main",
		Items:     []dto.DocumentItemDTO{docItem("prod-1", 5)},
	})
	require.NoError(t, err)
	_, err = receiptUC.Validate(context.Background(), testOwner, rec.ID)
	require.NoError(t, err)

	s = inventory.AggregateSKU(e.entriesBySKU(testOwner, "SR-001"), "SR-001")
	assert.True(t, s.Total.Equal(decimal.NewFromInt(15)))
	assert.True(t, s.ByLocation["Main"].Equal(decimal.NewFromInt(5)))

	_, err = receiptUC.Validate(context.Background(), testOwner, rec.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyValidated)

	// Traslado de 3 de Main a Annex: el total no cambia.
	tr, err := transferUC.Create(testOwner, dto.CreateTransferRequest{
		FromWarehouse: "Main",
		ToWarehouse:   "Annex",
		Items:         []dto.DocumentItemDTO{docItem("prod-1", 3)},
	})
	require.NoError(t, err)
	_, err = transferUC.Validate(context.Background(), testOwner, tr.ID)
	require.NoError(t, err)

	s = inventory.AggregateSKU(e.entriesBySKU(testOwner, "SR-001"), "SR-001")
	assert.True(t, s.Total.Equal(decimal.NewFromInt(15)))
	assert.True(t, s.ByLocation[entity.LocationUnplaced].Equal(decimal.NewFromInt(10)))
	assert.True(t, s.ByLocation["Main"].Equal(decimal.NewFromInt(2)))
	assert.True(t, s.ByLocation["Annex"].Equal(decimal.NewFromInt(3)))

	// Conteo físico en Main encuentra 0 (hay 2): asiento de -2, total 13.
	adj, err := adjustmentUC.Create(testOwner, dto.CreateAdjustmentRequest{
		Warehouse: "Main",
		Items:     []dto.DocumentItemDTO{countItem("prod-1", 0)},
	})
	require.NoError(t, err)
	_, err = adjustmentUC.Validate(context.Background(), testOwner, adj.ID)
	require.NoError(t, err)

	byRef, err := (&fakeLedgerRepo{e.store}).ListByRef(testOwner, adj.ID)
	require.NoError(t, err)
	require.Len(t, byRef, 1)
	assert.True(t, byRef[0].QtyChange.Equal(decimal.NewFromInt(-2)))
	assert.Equal(t, "Main", byRef[0].Location)

	s = inventory.AggregateSKU(e.entriesBySKU(testOwner, "SR-001"), "SR-001")
	assert.True(t, s.Total.Equal(decimal.NewFromInt(13)))
	assert.True(t, s.ByLocation["Main"].IsZero())

	// La vista materializada coincide con el plegado del ledger.
	for loc, want := range s.ByLocation {
		assert.True(t, e.stockAt(testOwner, "SR-001", loc).Equal(want),
			"stock_levels desincronizado en %s", loc)
	}
}

// Los documentos y asientos de un tenant son invisibles para otro.
func TestKardex_AislamientoEntreTenants(t *testing.T) {
	e := newTestEnv()
	e.addProduct("owner-a", "prod-1", "SR-001", "Silla")
	uc := newReceiptUC(e)

	rec, err := uc.Create("owner-a", dto.CreateReceiptRequest{
		Warehouse: "Main",
		Items:     []dto.DocumentItemDTO{docItem("prod-1", 5)},
	})
	require.NoError(t, err)
	_, err = uc.Validate(context.Background(), "owner-a", rec.ID)
	require.NoError(t, err)

	_, err = uc.GetByID("owner-b", rec.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, e.entriesBySKU("owner-b", "SR-001"))
	assert.True(t, e.stockAt("owner-b", "SR-001", "Main").IsZero())
}
