package inventory

import (
	"sort"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// StockUseCase consultas de solo lectura sobre el ledger y el stock agregado.
// El agregado por SKU se calcula con el fold puro sobre los asientos, no con
// la vista materializada: el ledger es la fuente de verdad y este endpoint
// sirve también para auditar que la vista no haya divergido.
type StockUseCase struct {
	ledger repository.LedgerRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(ledger repository.LedgerRepository) *StockUseCase {
	return &StockUseCase{ledger: ledger}
}

// ListLedger lista los asientos del tenant, más recientes primero.
func (uc *StockUseCase) ListLedger(ownerID string, limit, offset int) ([]dto.LedgerEntryDTO, error) {
	entries, err := uc.ledger.ListByOwner(ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LedgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLedgerEntryDTO(e))
	}
	return out, nil
}

// ListLedgerBySKU lista los asientos de un SKU del tenant.
func (uc *StockUseCase) ListLedgerBySKU(ownerID, sku string) ([]dto.LedgerEntryDTO, error) {
	entries, err := uc.ledger.ListBySKU(ownerID, sku)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LedgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLedgerEntryDTO(e))
	}
	return out, nil
}

// Summary agrega todos los asientos del tenant y devuelve el stock por SKU,
// ordenado por SKU para que la respuesta sea estable.
func (uc *StockUseCase) Summary(ownerID string) ([]dto.StockSummaryDTO, error) {
	entries, err := uc.ledger.ListByOwner(ownerID, 0, 0)
	if err != nil {
		return nil, err
	}
	agg := inventory.Aggregate(entries)
	out := make([]dto.StockSummaryDTO, 0, len(agg))
	for sku, s := range agg {
		out = append(out, dto.StockSummaryDTO{SKU: sku, Total: s.Total, ByLocation: s.ByLocation})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

// SummarySKU agrega los asientos de un SKU. Un SKU sin asientos devuelve cero,
// no error.
func (uc *StockUseCase) SummarySKU(ownerID, sku string) (*dto.StockSummaryDTO, error) {
	entries, err := uc.ledger.ListBySKU(ownerID, sku)
	if err != nil {
		return nil, err
	}
	s := inventory.AggregateSKU(entries, sku)
	return &dto.StockSummaryDTO{SKU: sku, Total: s.Total, ByLocation: s.ByLocation}, nil
}

func toLedgerEntryDTO(e *entity.LedgerEntry) dto.LedgerEntryDTO {
	return dto.LedgerEntryDTO{
		ID:        e.ID,
		SKU:       e.SKU,
		QtyChange: e.QtyChange,
		Location:  e.Location,
		Type:      e.Type,
		TS:        e.TS.UnixMilli(),
		Ref:       e.Ref,
		Reason:    e.Reason,
	}
}
