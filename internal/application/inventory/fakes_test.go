package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// memStore estado compartido en memoria para los fakes de repositorio.
type memStore struct {
	ledger      []*entity.LedgerEntry
	stock       map[string]*entity.StockLevel
	products    map[string]*entity.Product
	receipts    map[string]*entity.Receipt
	deliveries  map[string]*entity.Delivery
	transfers   map[string]*entity.Transfer
	adjustments map[string]*entity.Adjustment
}

func newMemStore() *memStore {
	return &memStore{
		stock:       make(map[string]*entity.StockLevel),
		products:    make(map[string]*entity.Product),
		receipts:    make(map[string]*entity.Receipt),
		deliveries:  make(map[string]*entity.Delivery),
		transfers:   make(map[string]*entity.Transfer),
		adjustments: make(map[string]*entity.Adjustment),
	}
}

func stockKey(ownerID, sku, location string) string {
	return fmt.Sprintf("%s|%s|%s", ownerID, sku, location)
}

// clone copia profunda del estado, para simular rollback transaccional.
func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.ledger = append([]*entity.LedgerEntry(nil), s.ledger...)
	for k, v := range s.stock {
		cp := *v
		c.stock[k] = &cp
	}
	for k, v := range s.products {
		cp := *v
		c.products[k] = &cp
	}
	for k, v := range s.receipts {
		cp := *v
		c.receipts[k] = &cp
	}
	for k, v := range s.deliveries {
		cp := *v
		c.deliveries[k] = &cp
	}
	for k, v := range s.transfers {
		cp := *v
		c.transfers[k] = &cp
	}
	for k, v := range s.adjustments {
		cp := *v
		c.adjustments[k] = &cp
	}
	return c
}

func (s *memStore) restore(from *memStore) {
	*s = *from
}

// fakeTxRunner ejecuta fn sobre el store y restaura el snapshot si fn falla,
// imitando el rollback de una transacción real.
type fakeTxRunner struct {
	store *memStore
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(TxRepos) error) error {
	snapshot := r.store.clone()
	err := fn(reposFor(r.store))
	if err != nil {
		r.store.restore(snapshot)
		return err
	}
	return nil
}

func reposFor(s *memStore) TxRepos {
	return TxRepos{
		Ledger:      &fakeLedgerRepo{s},
		Stock:       &fakeStockRepo{s},
		Products:    &fakeProductRepo{s},
		Receipts:    &fakeReceiptRepo{s},
		Deliveries:  &fakeDeliveryRepo{s},
		Transfers:   &fakeTransferRepo{s},
		Adjustments: &fakeAdjustmentRepo{s},
	}
}

type fakeLedgerRepo struct{ s *memStore }

func (r *fakeLedgerRepo) Append(entry *entity.LedgerEntry) error {
	cp := *entry
	r.s.ledger = append(r.s.ledger, &cp)
	return nil
}

func (r *fakeLedgerRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.s.ledger {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeLedgerRepo) ListBySKU(ownerID, sku string) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.s.ledger {
		if e.OwnerID == ownerID && e.SKU == sku {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeLedgerRepo) ListByRef(ownerID, ref string) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.s.ledger {
		if e.OwnerID == ownerID && e.Ref == ref {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeStockRepo struct{ s *memStore }

func (r *fakeStockRepo) Get(ownerID, sku, location string) (*entity.StockLevel, error) {
	if lv, ok := r.s.stock[stockKey(ownerID, sku, location)]; ok {
		cp := *lv
		return &cp, nil
	}
	return &entity.StockLevel{OwnerID: ownerID, SKU: sku, Location: location, Quantity: decimal.Zero}, nil
}

// GetForUpdate materializa la fila en cero si no existe, igual que el
// repositorio real.
func (r *fakeStockRepo) GetForUpdate(ownerID, sku, location string) (*entity.StockLevel, error) {
	key := stockKey(ownerID, sku, location)
	if _, ok := r.s.stock[key]; !ok {
		r.s.stock[key] = &entity.StockLevel{OwnerID: ownerID, SKU: sku, Location: location, Quantity: decimal.Zero}
	}
	cp := *r.s.stock[key]
	return &cp, nil
}

func (r *fakeStockRepo) Upsert(level *entity.StockLevel) error {
	cp := *level
	r.s.stock[stockKey(level.OwnerID, level.SKU, level.Location)] = &cp
	return nil
}

func (r *fakeStockRepo) ListBySKU(ownerID, sku string) ([]*entity.StockLevel, error) {
	var out []*entity.StockLevel
	for _, lv := range r.s.stock {
		if lv.OwnerID == ownerID && lv.SKU == sku {
			out = append(out, lv)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) ListByOwner(ownerID string) ([]*entity.StockLevel, error) {
	var out []*entity.StockLevel
	for _, lv := range r.s.stock {
		if lv.OwnerID == ownerID {
			out = append(out, lv)
		}
	}
	return out, nil
}

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(product *entity.Product) error {
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(ownerID, id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok && p.OwnerID == ownerID {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) GetBySKU(ownerID, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.OwnerID == ownerID && p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(product *entity.Product) error {
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) CountByOwner(ownerID string) (int, error) {
	list, _ := r.ListByOwner(ownerID, 0, 0)
	return len(list), nil
}

func (r *fakeProductRepo) DeleteBySKU(ownerID, sku string) error {
	for id, p := range r.s.products {
		if p.OwnerID == ownerID && p.SKU == sku {
			delete(r.s.products, id)
		}
	}
	return nil
}

type fakeReceiptRepo struct{ s *memStore }

func (r *fakeReceiptRepo) Create(receipt *entity.Receipt) error {
	cp := *receipt
	r.s.receipts[receipt.ID] = &cp
	return nil
}

func (r *fakeReceiptRepo) GetByID(ownerID, id string) (*entity.Receipt, error) {
	if rec, ok := r.s.receipts[id]; ok && rec.OwnerID == ownerID {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeReceiptRepo) GetForUpdate(ownerID, id string) (*entity.Receipt, error) {
	return r.GetByID(ownerID, id)
}

func (r *fakeReceiptRepo) Update(receipt *entity.Receipt) error {
	cp := *receipt
	r.s.receipts[receipt.ID] = &cp
	return nil
}

func (r *fakeReceiptRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Receipt, error) {
	var out []*entity.Receipt
	for _, rec := range r.s.receipts {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeReceiptRepo) CountOpen(ownerID string) (int, error) {
	count := 0
	for _, rec := range r.s.receipts {
		if rec.OwnerID == ownerID && rec.Status != "Done" && rec.Status != "Canceled" {
			count++
		}
	}
	return count, nil
}

func (r *fakeReceiptRepo) Delete(ownerID, id string) error {
	delete(r.s.receipts, id)
	return nil
}

type fakeDeliveryRepo struct{ s *memStore }

func (r *fakeDeliveryRepo) Create(delivery *entity.Delivery) error {
	cp := *delivery
	r.s.deliveries[delivery.ID] = &cp
	return nil
}

func (r *fakeDeliveryRepo) GetByID(ownerID, id string) (*entity.Delivery, error) {
	if del, ok := r.s.deliveries[id]; ok && del.OwnerID == ownerID {
		cp := *del
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeDeliveryRepo) GetForUpdate(ownerID, id string) (*entity.Delivery, error) {
	return r.GetByID(ownerID, id)
}

func (r *fakeDeliveryRepo) Update(delivery *entity.Delivery) error {
	cp := *delivery
	r.s.deliveries[delivery.ID] = &cp
	return nil
}

func (r *fakeDeliveryRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Delivery, error) {
	var out []*entity.Delivery
	for _, del := range r.s.deliveries {
		if del.OwnerID == ownerID {
			out = append(out, del)
		}
	}
	return out, nil
}

func (r *fakeDeliveryRepo) CountOpen(ownerID string) (int, error) {
	count := 0
	for _, del := range r.s.deliveries {
		if del.OwnerID == ownerID && del.Status != "Done" && del.Status != "Canceled" {
			count++
		}
	}
	return count, nil
}

func (r *fakeDeliveryRepo) Delete(ownerID, id string) error {
	delete(r.s.deliveries, id)
	return nil
}

type fakeTransferRepo struct{ s *memStore }

func (r *fakeTransferRepo) Create(transfer *entity.Transfer) error {
	cp := *transfer
	r.s.transfers[transfer.ID] = &cp
	return nil
}

func (r *fakeTransferRepo) GetByID(ownerID, id string) (*entity.Transfer, error) {
	if tr, ok := r.s.transfers[id]; ok && tr.OwnerID == ownerID {
		cp := *tr
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeTransferRepo) GetForUpdate(ownerID, id string) (*entity.Transfer, error) {
	return r.GetByID(ownerID, id)
}

func (r *fakeTransferRepo) Update(transfer *entity.Transfer) error {
	cp := *transfer
	r.s.transfers[transfer.ID] = &cp
	return nil
}

func (r *fakeTransferRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	for _, tr := range r.s.transfers {
		if tr.OwnerID == ownerID {
			out = append(out, tr)
		}
	}
	return out, nil
}

func (r *fakeTransferRepo) CountOpen(ownerID string) (int, error) {
	count := 0
	for _, tr := range r.s.transfers {
		if tr.OwnerID == ownerID && tr.Status != "Done" && tr.Status != "Canceled" {
			count++
		}
	}
	return count, nil
}

func (r *fakeTransferRepo) Delete(ownerID, id string) error {
	delete(r.s.transfers, id)
	return nil
}

type fakeAdjustmentRepo struct{ s *memStore }

func (r *fakeAdjustmentRepo) Create(adjustment *entity.Adjustment) error {
	cp := *adjustment
	r.s.adjustments[adjustment.ID] = &cp
	return nil
}

func (r *fakeAdjustmentRepo) GetByID(ownerID, id string) (*entity.Adjustment, error) {
	if adj, ok := r.s.adjustments[id]; ok && adj.OwnerID == ownerID {
		cp := *adj
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeAdjustmentRepo) GetForUpdate(ownerID, id string) (*entity.Adjustment, error) {
	return r.GetByID(ownerID, id)
}

func (r *fakeAdjustmentRepo) Update(adjustment *entity.Adjustment) error {
	cp := *adjustment
	r.s.adjustments[adjustment.ID] = &cp
	return nil
}

func (r *fakeAdjustmentRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Adjustment, error) {
	var out []*entity.Adjustment
	for _, adj := range r.s.adjustments {
		if adj.OwnerID == ownerID {
			out = append(out, adj)
		}
	}
	return out, nil
}

func (r *fakeAdjustmentRepo) Delete(ownerID, id string) error {
	delete(r.s.adjustments, id)
	return nil
}

// recordNotifier registra los SKUs notificados tras cada commit.
type recordNotifier struct {
	notified []string
}

func (n *recordNotifier) StockChanged(ownerID, sku string) {
	n.notified = append(n.notified, sku)
}

// testEnv entorno compartido para los tests de casos de uso.
type testEnv struct {
	store    *memStore
	runner   *fakeTxRunner
	notifier *recordNotifier
}

func newTestEnv() *testEnv {
	s := newMemStore()
	return &testEnv{
		store:    s,
		runner:   &fakeTxRunner{store: s},
		notifier: &recordNotifier{},
	}
}

func (e *testEnv) addProduct(ownerID, id, sku, name string) {
	e.store.products[id] = &entity.Product{
		ID:      id,
		OwnerID: ownerID,
		SKU:     sku,
		Name:    name,
	}
}

// postInitial registra stock inicial para un SKU en la ubicación UNPLACED.
func (e *testEnv) postInitial(ownerID, sku string, qty decimal.Decimal) error {
	now := time.Now()
	return PostEntry(reposFor(e.store), &entity.LedgerEntry{
		ID:        fmt.Sprintf("initial-%s", sku),
		OwnerID:   ownerID,
		SKU:       sku,
		QtyChange: qty,
		Location:  entity.LocationUnplaced,
		Type:      entity.MovementTypeInitial,
		Reason:    "Initial stock",
		TS:        now,
	}, now)
}

func (e *testEnv) entriesBySKU(ownerID, sku string) []*entity.LedgerEntry {
	out, _ := (&fakeLedgerRepo{e.store}).ListBySKU(ownerID, sku)
	return out
}

func (e *testEnv) stockAt(ownerID, sku, location string) decimal.Decimal {
	lv, _ := (&fakeStockRepo{e.store}).Get(ownerID, sku, location)
	return lv.Quantity
}
