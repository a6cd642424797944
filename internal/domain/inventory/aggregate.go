package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// Summary es el stock agregado de un SKU: total y distribución por bodega.
// Invariante: Total == suma de ByLocation (por construcción del plegado).
type Summary struct {
	Total      decimal.Decimal
	ByLocation map[string]decimal.Decimal
}

// Aggregate pliega los asientos del ledger y devuelve el stock actual por SKU
// (servicio de dominio, función pura). La suma es conmutativa, así que el
// resultado no depende del orden de los asientos. Nunca falla: un SKU sin
// asientos simplemente no aparece en el mapa.
func Aggregate(entries []*entity.LedgerEntry) map[string]Summary {
	totals := make(map[string]Summary)
	for _, e := range entries {
		s, ok := totals[e.SKU]
		if !ok {
			s = Summary{Total: decimal.Zero, ByLocation: make(map[string]decimal.Decimal)}
		}
		loc := e.Location
		if loc == "" {
			loc = entity.LocationUnplaced
		}
		s.Total = s.Total.Add(e.QtyChange)
		s.ByLocation[loc] = s.ByLocation[loc].Add(e.QtyChange)
		totals[e.SKU] = s
	}
	return totals
}

// AggregateSKU pliega solo los asientos de un SKU. Devuelve un Summary en cero
// si el SKU no tiene asientos.
func AggregateSKU(entries []*entity.LedgerEntry, sku string) Summary {
	s := Summary{Total: decimal.Zero, ByLocation: make(map[string]decimal.Decimal)}
	for _, e := range entries {
		if e.SKU != sku {
			continue
		}
		loc := e.Location
		if loc == "" {
			loc = entity.LocationUnplaced
		}
		s.Total = s.Total.Add(e.QtyChange)
		s.ByLocation[loc] = s.ByLocation[loc].Add(e.QtyChange)
	}
	return s
}
