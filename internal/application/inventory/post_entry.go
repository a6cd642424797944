package inventory

import (
	"time"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// PostEntry escribe un asiento en el ledger y actualiza la vista materializada
// de stock dentro de la misma transacción. La fila de stock se bloquea
// (SELECT FOR UPDATE) antes de sumarle el delta, así dos validaciones
// concurrentes sobre el mismo (owner, sku, bodega) se serializan.
func PostEntry(r TxRepos, e *entity.LedgerEntry, now time.Time) error {
	if e.Location == "" {
		e.Location = entity.LocationUnplaced
	}
	level, err := r.Stock.GetForUpdate(e.OwnerID, e.SKU, e.Location)
	if err != nil {
		return err
	}
	level.Quantity = level.Quantity.Add(e.QtyChange)
	level.UpdatedAt = now
	if err := r.Stock.Upsert(level); err != nil {
		return err
	}
	return r.Ledger.Append(e)
}

// dedupe elimina SKUs repetidos preservando el orden de aparición.
func dedupe(skus []string) []string {
	seen := make(map[string]struct{}, len(skus))
	out := skus[:0]
	for _, s := range skus {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
