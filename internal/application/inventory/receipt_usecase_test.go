package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
)

const testOwner = "owner-1"

func newReceiptUC(e *testEnv) *ReceiptUseCase {
	return NewReceiptUseCase(e.runner, &fakeReceiptRepo{e.store}, e.notifier)
}

func docItem(productID string, qty int64) dto.DocumentItemDTO {
	return dto.DocumentItemDTO{ProductID: productID, Quantity: decimal.NewFromInt(qty)}
}

func TestReceiptCreate_Defaults(t *testing.T) {
	e := newTestEnv()
	uc := newReceiptUC(e)

	item := docItem("prod-1", 5)
	item.UnitPrice = decimal.RequireFromString("2.5")
	out, err := uc.Create(testOwner, dto.CreateReceiptRequest{
		Supplier: "ACME",
		Items:    []dto.DocumentItemDTO{item},
	})
	require.NoError(t, err)

	assert.Equal(t, inventory.StatusDraft, out.Status)
	assert.Equal(t, DefaultWarehouse, out.Warehouse)
	assert.Equal(t, time.Now().Format("2006-01-02"), out.ExpectedDate)
	assert.True(t, out.TotalItems.Equal(decimal.NewFromInt(5)))
	assert.True(t, out.TotalValue.Equal(decimal.RequireFromString("12.5")), "el total se recalcula en servidor")
}

func TestReceiptCreate_SinItems_Falla(t *testing.T) {
	e := newTestEnv()
	uc := newReceiptUC(e)

	_, err := uc.Create(testOwner, dto.CreateReceiptRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReceiptCreate_EstadoTerminal_Falla(t *testing.T) {
	e := newTestEnv()
	uc := newReceiptUC(e)

	_, err := uc.Create(testOwner, dto.CreateReceiptRequest{
		Status: inventory.StatusDone,
		Items:  []dto.DocumentItemDTO{docItem("prod-1", 1)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "Done solo se alcanza vía validate")
}

func TestReceiptValidate_EscribeAsientoYActualizaStock(t *testing.T) {
	e := newTestEnv()
	e.addProduct(testOwner, "prod-1", "SR-001", "Silla")
	uc := newReceiptUC(e)

	rec, err := uc.Create(testOwner, dto.CreateReceiptRequest{
		Warehouse: "Main",
		Items:     []dto.DocumentItemDTO{docItem("prod-1", 5)},
	})
	require.NoError(t, err)

	out, err := uc.Validate(context.Background(), testOwner, rec.ID)
	require.NoError(t, err)

	assert.Equal(t, inventory.StatusDone, out.Status)
	require.NotNil(t, out.ValidatedAt)

	entries := e.entriesBySKU(testOwner, "SR-001")
	require.Len(t, entries, 1)
	assert.True(t, entries[0].QtyChange.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "Main", entries[0].Location)
	assert.Equal(t, entity.MovementTypeReceipt, entries[0].Type)
	assert.Equal(t, rec.ID, entries[0].Ref)

	assert.True(t, e.stockAt(testOwner, "SR-001", "Main").Equal(decimal.NewFromInt(5)))
	assert.Equal(t, []string{"SR-001"}, e.notifier.notified, "notifica una vez por SKU tras el commit")
}

func TestReceiptValidate_DosVeces_Falla(t *testing.T) {
	e := newTestEnv()
	e.addProduct(testOwner, "prod-1", "SR-001", "Silla")
	uc := newReceiptUC(e)

	rec, err := uc.Create(testOwner, dto.CreateReceiptRequest{
		Warehouse: "Main",
		Items:     []dto.DocumentItemDTO{docItem("prod-1", 5)},
	})
	require.NoError(t, err)

	_, err = uc.Validate(context.Background(), testOwner, rec.ID)
	require.NoError(t, err)

	_, err = uc.Validate(context.Background(), testOwner, rec.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyValidated)
	assert.Len(t, e.entriesBySKU(testOwner, "SR-001"), 1, "el segundo validate no duplica asientos")
}

// Un producto inexistente en cualquier línea revierte el validate completo:
// ni asientos parciales ni cambio de estado.
func TestReceiptValidate_ProductoInexistente_RevierteTodo(t *testing.T) {
	e := newTestEnv()
	e.addProduct(testOwner, "prod-1", "SR-001", "Silla")
	uc := newReceiptUC(e)

	rec, err := uc.Create(testOwner, dto.CreateReceiptRequest{
		Warehouse: "Main",
		Items: []dto.DocumentItemDTO{
			docItem("prod-1", 5),
			docItem("prod-fantasma", 3),
		},
	})
	require.NoError(t, err)

	_, err = uc.Validate(context.Background(), testOwner, rec.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, e.entriesBySKU(testOwner, "SR-001"))
	assert.True(t, e.stockAt(testOwner, "SR-001", "Main").IsZero())
	assert.Empty(t, e.notifier.notified)

	got, err := uc.GetByID(testOwner, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, inventory.StatusDraft, got.Status)
	assert.Nil(t, got.ValidatedAt)
}

func TestReceiptUpdate_Validada_Falla(t *testing.T) {
	e := newTestEnv()
	e.addProduct(testOwner, "prod-1", "SR-001", "Silla")
	uc := newReceiptUC(e)

	rec, err := uc.Create(testOwner, dto.CreateReceiptRequest{
		Warehouse: "Main",
		Items:     []dto.DocumentItemDTO{docItem("prod-1", 5)},
	})
	require.NoError(t, err)
	_, err = uc.Validate(context.Background(), testOwner, rec.ID)
	require.NoError(t, err)

	_, err = uc.Update(testOwner, rec.ID, dto.UpdateReceiptRequest{Supplier: "Otro"})
	assert.ErrorIs(t, err, domain.ErrInvalidState, "un documento Done es inmutable")
}

func TestReceiptSetStatus_NoAlcanzaDone(t *testing.T) {
	e := newTestEnv()
	uc := newReceiptUC(e)

	rec, err := uc.Create(testOwner, dto.CreateReceiptRequest{
		Items: []dto.DocumentItemDTO{docItem("prod-1", 1)},
	})
	require.NoError(t, err)

	_, err = uc.SetStatus(testOwner, rec.ID, inventory.StatusDone)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReceiptSetStatus_DesdeDone_Falla(t *testing.T) {
	e := newTestEnv()
	e.addProduct(testOwner, "prod-1", "SR-001", "Silla")
	uc := newReceiptUC(e)

	rec, err := uc.Create(testOwner, dto.CreateReceiptRequest{
		Items: []dto.DocumentItemDTO{docItem("prod-1", 1)},
	})
	require.NoError(t, err)
	_, err = uc.Validate(context.Background(), testOwner, rec.ID)
	require.NoError(t, err)

	_, err = uc.SetStatus(testOwner, rec.ID, inventory.StatusDraft)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// Canceled no es terminal: una recepción cancelada todavía puede validarse.
func TestReceiptValidate_Cancelada_EsValidable(t *testing.T) {
	e := newTestEnv()
	e.addProduct(testOwner, "prod-1", "SR-001", "Silla")
	uc := newReceiptUC(e)

	rec, err := uc.Create(testOwner, dto.CreateReceiptRequest{
		Warehouse: "Main",
		Items:     []dto.DocumentItemDTO{docItem("prod-1", 2)},
	})
	require.NoError(t, err)

	_, err = uc.SetStatus(testOwner, rec.ID, inventory.StatusCanceled)
	require.NoError(t, err)

	out, err := uc.Validate(context.Background(), testOwner, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, inventory.StatusDone, out.Status)
}

func TestReceiptGetByID_Inexistente_Retorna404(t *testing.T) {
	e := newTestEnv()
	uc := newReceiptUC(e)

	_, err := uc.GetByID(testOwner, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
