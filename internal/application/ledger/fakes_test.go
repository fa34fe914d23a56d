package ledger_test

import (
	"context"
	"sync"

	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los puertos del kardex. El fakeTxRunner toma un
// snapshot antes de ejecutar y lo restaura si fn falla, imitando el
// Commit/Rollback de una transacción real; un mutex serializa las
// transacciones como lo harían los bloqueos de fila.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu      sync.Mutex
	records map[string]*entity.StockRecord // por item_id
	entries []*entity.AuditEntry
	seq     int64

	// Errores inyectables para simular fallas del colaborador de persistencia
	upsertErr error
	appendErr error

	// Fila rival que "otra transacción" confirma entre la lectura que no
	// encontró el registro y el intento de insert (carrera de primeras
	// entradas concurrentes).
	pendingRival *entity.StockRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]*entity.StockRecord)}
}

func cloneRecord(r *entity.StockRecord) *entity.StockRecord {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

func (s *fakeStore) snapshot() map[string]*entity.StockRecord {
	snap := make(map[string]*entity.StockRecord, len(s.records))
	for k, v := range s.records {
		snap[k] = cloneRecord(v)
	}
	return snap
}

// seed inserta un registro directamente (estado inicial del test).
func (s *fakeStore) seed(r *entity.StockRecord) {
	s.records[r.ItemID()] = cloneRecord(r)
}

func (s *fakeStore) get(itemID string) *entity.StockRecord {
	return cloneRecord(s.records[itemID])
}

type fakeStockRepo struct{ store *fakeStore }

var _ repository.StockRecordRepository = (*fakeStockRepo)(nil)

func (f *fakeStockRepo) Get(_ context.Context, productID, variantID string) (*entity.StockRecord, error) {
	for _, r := range f.store.records {
		if r.ProductID == productID && r.VariantID == variantID {
			return cloneRecord(r), nil
		}
	}
	return nil, nil
}

func (f *fakeStockRepo) GetByItem(_ context.Context, itemID string) (*entity.StockRecord, error) {
	return cloneRecord(f.store.records[itemID]), nil
}

func (f *fakeStockRepo) GetByItemForUpdate(_ context.Context, itemID string) (*entity.StockRecord, error) {
	return cloneRecord(f.store.records[itemID]), nil
}

func (f *fakeStockRepo) Upsert(_ context.Context, record *entity.StockRecord) error {
	if f.store.upsertErr != nil {
		return f.store.upsertErr
	}
	f.store.records[record.ItemID()] = cloneRecord(record)
	return nil
}

func (f *fakeStockRepo) CreateIfAbsent(_ context.Context, record *entity.StockRecord) (bool, error) {
	if f.store.upsertErr != nil {
		return false, f.store.upsertErr
	}
	itemID := record.ItemID()
	if _, ok := f.store.records[itemID]; ok {
		return false, nil
	}
	if rival := f.store.pendingRival; rival != nil && rival.ItemID() == itemID {
		// La transacción rival confirma primero: su fila gana el insert
		f.store.records[itemID] = cloneRecord(rival)
		f.store.pendingRival = nil
		return false, nil
	}
	f.store.records[itemID] = cloneRecord(record)
	return true, nil
}

func (f *fakeStockRepo) ListLowStock(_ context.Context, threshold int64, limit, offset int) ([]*entity.StockRecord, error) {
	var out []*entity.StockRecord
	for _, r := range f.store.records {
		low := r.IsLow()
		if threshold >= 0 {
			low = r.Sellable <= threshold
		}
		if low {
			out = append(out, cloneRecord(r))
		}
	}
	return out, nil
}

func (f *fakeStockRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockRecord, error) {
	var out []*entity.StockRecord
	for _, r := range f.store.records {
		if r.ProductID == productID {
			out = append(out, cloneRecord(r))
		}
	}
	return out, nil
}

type fakeAuditRepo struct{ store *fakeStore }

var _ repository.AuditLogRepository = (*fakeAuditRepo)(nil)

func (f *fakeAuditRepo) Append(_ context.Context, entry *entity.AuditEntry) (int64, error) {
	if f.store.appendErr != nil {
		return 0, f.store.appendErr
	}
	f.store.seq++
	entry.Seq = f.store.seq
	c := *entry
	f.store.entries = append(f.store.entries, &c)
	return entry.Seq, nil
}

func (f *fakeAuditRepo) ListByItem(_ context.Context, itemID string, limit, offset int) ([]*entity.AuditEntry, error) {
	var out []*entity.AuditEntry
	for _, e := range f.store.entries {
		if e.ItemID == itemID || e.FromVariantID == itemID || e.ToVariantID == itemID {
			c := *e
			out = append(out, &c)
		}
	}
	if limit > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
		if len(out) > limit {
			out = out[:limit]
		}
	}
	return out, nil
}

type fakeTxRunner struct{ store *fakeStore }

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRecordRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	snapRecords := f.store.snapshot()
	snapEntries := len(f.store.entries)
	snapSeq := f.store.seq

	err := fn(&fakeStockRepo{store: f.store}, &fakeAuditRepo{store: f.store})
	if err != nil {
		// Rollback: nada de la transacción sobrevive
		f.store.records = snapRecords
		f.store.entries = f.store.entries[:snapEntries]
		f.store.seq = snapSeq
		return err
	}
	return nil
}

type fakeCatalog struct {
	mu       sync.Mutex
	products map[string]string // item_id -> product_id
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: make(map[string]string)}
}

func (c *fakeCatalog) register(itemID, productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[itemID] = productID
}

func (c *fakeCatalog) ProductOf(_ context.Context, itemID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.products[itemID], nil
}

func (c *fakeCatalog) VariantsOfProduct(_ context.Context, productID string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for item, prod := range c.products {
		if prod == productID {
			out = append(out, item)
		}
	}
	return out, nil
}
