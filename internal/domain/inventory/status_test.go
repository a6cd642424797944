package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
)

func TestIsValidStatus_PorTipoDeDocumento(t *testing.T) {
	assert.True(t, inventory.IsValidStatus(entity.DocTypeReceipt, inventory.StatusWaiting))
	assert.True(t, inventory.IsValidStatus(entity.DocTypeDelivery, inventory.StatusPicking))
	assert.True(t, inventory.IsValidStatus(entity.DocTypeTransfer, inventory.StatusInTransit))
	assert.True(t, inventory.IsValidStatus(entity.DocTypeAdjustment, inventory.StatusPendingReview))

	// Estados de un tipo no valen para otro
	assert.False(t, inventory.IsValidStatus(entity.DocTypeReceipt, inventory.StatusPicking))
	assert.False(t, inventory.IsValidStatus(entity.DocTypeAdjustment, inventory.StatusCanceled))
	// Sensible a mayúsculas
	assert.False(t, inventory.IsValidStatus(entity.DocTypeReceipt, "draft"))
	assert.False(t, inventory.IsValidStatus(entity.DocTypeTransfer, "in transit"))
}

func TestIsTerminal_SoloDone(t *testing.T) {
	assert.True(t, inventory.IsTerminal(inventory.StatusDone))
	assert.False(t, inventory.IsTerminal(inventory.StatusCanceled))
	assert.False(t, inventory.IsTerminal(inventory.StatusDraft))
}

func TestCanTransition_RechazaSalidasDeDone(t *testing.T) {
	for _, to := range inventory.ReceiptStatuses {
		assert.False(t, inventory.CanTransition(entity.DocTypeReceipt, inventory.StatusDone, to),
			"un documento Done no admite transición a %s", to)
	}
}

func TestCanTransition_DoneSoloViaValidate(t *testing.T) {
	assert.False(t, inventory.CanTransition(entity.DocTypeReceipt, inventory.StatusDraft, inventory.StatusDone),
		"Done no se alcanza por PATCH de estado")
}

func TestCanTransition_EntreEstadosNoTerminales(t *testing.T) {
	assert.True(t, inventory.CanTransition(entity.DocTypeReceipt, inventory.StatusDraft, inventory.StatusWaiting))
	assert.True(t, inventory.CanTransition(entity.DocTypeReceipt, inventory.StatusWaiting, inventory.StatusCanceled))
	assert.True(t, inventory.CanTransition(entity.DocTypeDelivery, inventory.StatusPicking, inventory.StatusPacking))
	assert.True(t, inventory.CanTransition(entity.DocTypeTransfer, inventory.StatusCanceled, inventory.StatusDraft))

	assert.False(t, inventory.CanTransition(entity.DocTypeReceipt, inventory.StatusDraft, "Destruido"),
		"estado fuera de la tabla debe rechazarse")
}

func TestCanValidate_PrecondicionEstadoNoTerminal(t *testing.T) {
	assert.True(t, inventory.CanValidate(inventory.StatusDraft))
	assert.True(t, inventory.CanValidate(inventory.StatusCanceled),
		"un documento cancelado aún admite validate (precondición: status distinto de Done)")
	assert.False(t, inventory.CanValidate(inventory.StatusDone))
}
