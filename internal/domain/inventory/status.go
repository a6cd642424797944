package inventory

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// Estados de documento. Los strings viajan tal cual por el API, sensibles a
// mayúsculas; el único estado terminal es Done.
const (
	StatusDraft         = "Draft"
	StatusWaiting       = "Waiting"
	StatusReady         = "Ready"
	StatusPicking       = "Picking"
	StatusPacking       = "Packing"
	StatusInTransit     = "In Transit"
	StatusPendingReview = "Pending Review"
	StatusDone          = "Done"
	StatusCanceled      = "Canceled"
)

// Conjuntos de estados válidos por tipo de documento (máquina de estados
// dirigida por tabla, no por comparaciones sueltas de strings).
var (
	ReceiptStatuses    = []string{StatusDraft, StatusWaiting, StatusReady, StatusDone, StatusCanceled}
	DeliveryStatuses   = []string{StatusDraft, StatusPicking, StatusPacking, StatusDone, StatusCanceled}
	TransferStatuses   = []string{StatusDraft, StatusInTransit, StatusDone, StatusCanceled}
	AdjustmentStatuses = []string{StatusDraft, StatusPendingReview, StatusDone}
)

var statusTable = map[string][]string{
	entity.DocTypeReceipt:    ReceiptStatuses,
	entity.DocTypeDelivery:   DeliveryStatuses,
	entity.DocTypeTransfer:   TransferStatuses,
	entity.DocTypeAdjustment: AdjustmentStatuses,
}

// IsValidStatus indica si status pertenece al conjunto del tipo de documento.
func IsValidStatus(docType, status string) bool {
	for _, s := range statusTable[docType] {
		if s == status {
			return true
		}
	}
	return false
}

// IsTerminal indica si el estado congela el documento. Canceled no es terminal:
// un documento cancelado aún puede validarse o reactivarse.
func IsTerminal(status string) bool {
	return status == StatusDone
}

// CanTransition valida un cambio de estado libre (PATCH status): el destino
// debe existir en la tabla del tipo y el origen no puede ser terminal. Done
// solo se alcanza vía validate, nunca por cambio libre.
func CanTransition(docType, from, to string) bool {
	if IsTerminal(from) {
		return false
	}
	if to == StatusDone {
		return false
	}
	return IsValidStatus(docType, to)
}

// CanValidate indica si el documento admite la acción validate (única vía que
// escribe asientos en el ledger y lo lleva a Done).
func CanValidate(status string) bool {
	return !IsTerminal(status)
}
