package inventory_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
)

func entry(sku string, qty int64, loc string) *entity.LedgerEntry {
	return &entity.LedgerEntry{SKU: sku, QtyChange: decimal.NewFromInt(qty), Location: loc}
}

func TestAggregate_SumaPorSKUYBodega(t *testing.T) {
	entries := []*entity.LedgerEntry{
		entry("SR-001", 10, "UNPLACED"),
		entry("SR-001", 5, "Main"),
		entry("SR-001", -3, "Main"),
		entry("SR-002", 7, "Annex"),
	}
	totals := inventory.Aggregate(entries)

	require.Contains(t, totals, "SR-001")
	assert.True(t, totals["SR-001"].Total.Equal(decimal.NewFromInt(12)))
	assert.True(t, totals["SR-001"].ByLocation["UNPLACED"].Equal(decimal.NewFromInt(10)))
	assert.True(t, totals["SR-001"].ByLocation["Main"].Equal(decimal.NewFromInt(2)))
	assert.True(t, totals["SR-002"].Total.Equal(decimal.NewFromInt(7)))
}

func TestAggregate_SKUAusenteNoAparece(t *testing.T) {
	totals := inventory.Aggregate(nil)
	assert.Empty(t, totals)

	s := inventory.AggregateSKU(nil, "NO-EXISTE")
	assert.True(t, s.Total.IsZero(), "SKU sin asientos debe agregar a cero")
	assert.Empty(t, s.ByLocation)
}

func TestAggregate_UbicacionVaciaCaeEnUnplaced(t *testing.T) {
	totals := inventory.Aggregate([]*entity.LedgerEntry{entry("SR-001", 4, "")})
	assert.True(t, totals["SR-001"].ByLocation[entity.LocationUnplaced].Equal(decimal.NewFromInt(4)))
}

// Propiedad: el resultado es invariante ante cualquier permutación de los
// asientos (la suma es conmutativa).
func TestAggregate_ConmutatividadBajoPermutaciones(t *testing.T) {
	base := []*entity.LedgerEntry{
		entry("SR-001", 10, "UNPLACED"),
		entry("SR-001", 5, "Main"),
		entry("SR-001", -3, "Main"),
		entry("SR-001", 3, "Annex"),
		entry("SR-002", 7, "Annex"),
		entry("SR-002", -7, "Annex"),
		entry("SR-003", 1, "Main"),
	}
	want := inventory.Aggregate(base)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := make([]*entity.LedgerEntry, len(base))
		copy(shuffled, base)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := inventory.Aggregate(shuffled)
		require.Len(t, got, len(want))
		for sku, ws := range want {
			gs, ok := got[sku]
			require.True(t, ok, "falta SKU %s tras permutar", sku)
			assert.True(t, ws.Total.Equal(gs.Total), "total de %s cambió con el orden", sku)
			require.Len(t, gs.ByLocation, len(ws.ByLocation))
			for loc, q := range ws.ByLocation {
				assert.True(t, q.Equal(gs.ByLocation[loc]), "byLocation[%s][%s] cambió con el orden", sku, loc)
			}
		}
	}
}

// Propiedad: para todo SKU, Total == suma de ByLocation.
func TestAggregate_TotalIgualASumaPorBodega(t *testing.T) {
	entries := []*entity.LedgerEntry{
		entry("SR-001", 10, "UNPLACED"),
		entry("SR-001", 5, "Main"),
		entry("SR-001", -2, "Main"),
		entry("SR-001", 3, "Annex"),
		entry("SR-002", -4, "Main"),
	}
	for sku, s := range inventory.Aggregate(entries) {
		sum := decimal.Zero
		for _, q := range s.ByLocation {
			sum = sum.Add(q)
		}
		assert.True(t, s.Total.Equal(sum), "invariante roto para %s: total=%s suma=%s", sku, s.Total, sum)
	}
}
