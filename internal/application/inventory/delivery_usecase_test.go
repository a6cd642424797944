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

func newDeliveryUC(e *testEnv) *DeliveryUseCase {
	return NewDeliveryUseCase(e.runner, &fakeDeliveryRepo{e.store}, e.notifier)
}

func TestDeliveryValidate_EscribeAsientoNegativo(t *testing.T) {
	e := newTestEnv()
	e.addProduct(testOwner, "prod-1", "SR-001", "Silla")
	require.NoError(t, e.postInitial(testOwner, "SR-001", decimal.NewFromInt(10)))
	uc := newDeliveryUC(e)

	del, err := uc.Create(testOwner, dto.CreateDeliveryRequest{
		Customer:  "Cliente",
		Warehouse: entity.LocationUnplaced,
		Items:     []dto.DocumentItemDTO{docItem("prod-1", 4)},
	})
	require.NoError(t, err)

	out, err := uc.Validate(context.Background(), testOwner, del.ID)
	require.NoError(t, err)
	assert.Equal(t, inventory.StatusDone, out.Status)

	entries := e.entriesBySKU(testOwner, "SR-001")
	require.Len(t, entries, 2)
	last := entries[len(entries)-1]
	assert.True(t, last.QtyChange.Equal(decimal.NewFromInt(-4)), "la salida resta del stock")
	assert.Equal(t, entity.MovementTypeDelivery, last.Type)
	assert.Equal(t, del.ID, last.Ref)

	assert.True(t, e.stockAt(testOwner, "SR-001", entity.LocationUnplaced).Equal(decimal.NewFromInt(6)))
}

// Las entregas no exigen stock disponible: el saldo puede quedar negativo y se
// corrige después con un ajuste.
func TestDeliveryValidate_PermiteStockNegativo(t *testing.T) {
	e := newTestEnv()
	e.addProduct(testOwner, "prod-1", "SR-001", "Silla")
	uc := newDeliveryUC(e)

	del, err := uc.Create(testOwner, dto.CreateDeliveryRequest{
		Warehouse: "Main",
		Items:     []dto.DocumentItemDTO{docItem("prod-1", 5)},
	})
	require.NoError(t, err)

	_, err = uc.Validate(context.Background(), testOwner, del.ID)
	require.NoError(t, err)

	assert.True(t, e.stockAt(testOwner, "SR-001", "Main").Equal(decimal.NewFromInt(-5)))
}

func TestDeliveryCreate_SinItems_Falla(t *testing.T) {
	e := newTestEnv()
	uc := newDeliveryUC(e)

	_, err := uc.Create(testOwner, dto.CreateDeliveryRequest{Customer: "Cliente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Varias líneas del mismo SKU generan una sola notificación.
func TestDeliveryValidate_NotificaSKUsSinDuplicar(t *testing.T) {
	e := newTestEnv()
	e.addProduct(testOwner, "prod-1", "SR-001", "Silla")
	e.addProduct(testOwner, "prod-2", "SR-002", "Mesa")
	uc := newDeliveryUC(e)

	del, err := uc.Create(testOwner, dto.CreateDeliveryRequest{
		Warehouse: "Main",
		Items: []dto.DocumentItemDTO{
			docItem("prod-1", 1),
			docItem("prod-1", 2),
			docItem("prod-2", 3),
		},
	})
	require.NoError(t, err)

	_, err = uc.Validate(context.Background(), testOwner, del.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"SR-001", "SR-002"}, e.notifier.notified)
}
