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
)

func newTransferUC(e *testEnv) *TransferUseCase {
	return NewTransferUseCase(e.runner, &fakeTransferRepo{e.store}, e.notifier)
}

func TestTransferCreate_MismaBodega_Falla(t *testing.T) {
	e := newTestEnv()
	uc := newTransferUC(e)

	_, err := uc.Create(testOwner, dto.CreateTransferRequest{
		FromWarehouse: "Main",
		ToWarehouse:   "Main",
		Items:         []dto.DocumentItemDTO{docItem("prod-1", 1)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un traslado validado escribe dos asientos por línea con el mismo ref:
// salida en origen y entrada en destino.
func TestTransferValidate_DosAsientosMismoRef(t *testing.T) {
	e := newTestEnv()
	e.addProduct(testOwner, "prod-1", "SR-001", "Silla")
	require.NoError(t, e.postInitial(testOwner, "SR-001", decimal.NewFromInt(10)))
	uc := newTransferUC(e)

	tr, err := uc.Create(testOwner, dto.CreateTransferRequest{
		FromWarehouse: entity.LocationUnplaced,
		ToWarehouse:   "Annex",
		Items:         []dto.DocumentItemDTO{docItem("prod-1", 3)},
	})
	require.NoError(t, err)

	_, err = uc.Validate(context.Background(), testOwner, tr.ID)
	require.NoError(t, err)

	byRef, err := (&fakeLedgerRepo{e.store}).ListByRef(testOwner, tr.ID)
	require.NoError(t, err)
	require.Len(t, byRef, 2)

	var outQty, inQty decimal.Decimal
	for _, en := range byRef {
		assert.Equal(t, entity.MovementTypeTransfer, en.Type)
		switch en.Location {
		case entity.LocationUnplaced:
			outQty = en.QtyChange
		case "Annex":
			inQty = en.QtyChange
		default:
			t.Fatalf("ubicación inesperada %q", en.Location)
		}
	}
	assert.True(t, outQty.Equal(decimal.NewFromInt(-3)))
	assert.True(t, inQty.Equal(decimal.NewFromInt(3)))

	assert.True(t, e.stockAt(testOwner, "SR-001", entity.LocationUnplaced).Equal(decimal.NewFromInt(7)))
	assert.True(t, e.stockAt(testOwner, "SR-001", "Annex").Equal(decimal.NewFromInt(3)))
}

// Propiedad: un traslado conserva el total por SKU.
func TestTransferValidate_ConservaElTotal(t *testing.T) {
	e := newTestEnv()
	e.addProduct(testOwner, "prod-1", "SR-001", "Silla")
	require.NoError(t, e.postInitial(testOwner, "SR-001", decimal.NewFromInt(10)))
	uc := newTransferUC(e)

	totalBefore := sumEntries(e.entriesBySKU(testOwner, "SR-001"))

	tr, err := uc.Create(testOwner, dto.CreateTransferRequest{
		FromWarehouse: entity.LocationUnplaced,
		ToWarehouse:   "Main",
		Items:         []dto.DocumentItemDTO{docItem("prod-1", 6)},
	})
	require.NoError(t, err)
	_, err = uc.Validate(context.Background(), testOwner, tr.ID)
	require.NoError(t, err)

	totalAfter := sumEntries(e.entriesBySKU(testOwner, "SR-001"))
	assert.True(t, totalBefore.Equal(totalAfter), "antes=%s después=%s", totalBefore, totalAfter)
}

func sumEntries(entries []*entity.LedgerEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, en := range entries {
		sum = sum.Add(en.QtyChange)
	}
	return sum
}

func TestTransferUpdate_NoPermiteIgualarBodegas(t *testing.T) {
	e := newTestEnv()
	uc := newTransferUC(e)

	tr, err := uc.Create(testOwner, dto.CreateTransferRequest{
		FromWarehouse: "Main",
		ToWarehouse:   "Annex",
		Items:         []dto.DocumentItemDTO{docItem("prod-1", 1)},
	})
	require.NoError(t, err)

	_, err = uc.Update(testOwner, tr.ID, dto.UpdateTransferRequest{ToWarehouse: "Main"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
