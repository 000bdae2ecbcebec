package transfer_test

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/Almacen-api/internal/application/alerts"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con semántica transaccional: cada Run trabaja sobre una
// copia del estado y solo al terminar sin error se vuelca sobre el original
// (commit). Un mutex serializa las transacciones, igual que lo harían los
// bloqueos de fila en PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	warehouses map[string]*entity.Warehouse
	items      map[string]*entity.InventoryItem
	stock      map[string]*entity.Stock
	transfers  map[string]*entity.StockTransfer
}

func newMemState() *memState {
	return &memState{
		warehouses: map[string]*entity.Warehouse{},
		items:      map[string]*entity.InventoryItem{},
		stock:      map[string]*entity.Stock{},
		transfers:  map[string]*entity.StockTransfer{},
	}
}

func stockKey(warehouseID, itemID string) string {
	return warehouseID + "|" + itemID
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.warehouses {
		w := *v
		c.warehouses[k] = &w
	}
	for k, v := range s.items {
		it := *v
		c.items[k] = &it
	}
	for k, v := range s.stock {
		st := *v
		c.stock[k] = &st
	}
	for k, v := range s.transfers {
		t := *v
		c.transfers[k] = &t
	}
	return c
}

type memTxRunner struct {
	mu    sync.Mutex
	store *memState
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	warehouseRepo repository.WarehouseRepository,
	itemRepo repository.InventoryItemRepository,
	stockRepo repository.StockRepository,
	transferRepo repository.StockTransferRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	work := r.store.clone()
	err := fn(
		&memWarehouseRepo{s: work},
		&memItemRepo{s: work},
		&memStockRepo{s: work},
		&memTransferRepo{s: work},
	)
	if err != nil {
		return err
	}
	*r.store = *work
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memWarehouseRepo struct{ s *memState }

func (r *memWarehouseRepo) Create(w *entity.Warehouse) error {
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *memWarehouseRepo) GetByIDForUpdate(id string) (*entity.Warehouse, error) {
	return r.GetByID(id)
}

func (r *memWarehouseRepo) Update(w *entity.Warehouse) error {
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *memWarehouseRepo) List(filter repository.WarehouseFilter, limit, offset int) ([]*entity.Warehouse, int64, error) {
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		if filter.IsActive != nil && w.IsActive != *filter.IsActive {
			continue
		}
		if filter.Search != "" && !strings.Contains(w.Name, filter.Search) {
			continue
		}
		cp := *w
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *memWarehouseRepo) Delete(id string) error {
	delete(r.s.warehouses, id)
	return nil
}

type memItemRepo struct{ s *memState }

func (r *memItemRepo) Create(it *entity.InventoryItem) error {
	cp := *it
	r.s.items[it.ID] = &cp
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *memItemRepo) GetBySKU(sku string) (*entity.InventoryItem, error) {
	for _, it := range r.s.items {
		if it.SKU == sku {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) Update(it *entity.InventoryItem) error {
	cp := *it
	r.s.items[it.ID] = &cp
	return nil
}

func (r *memItemRepo) List(search string, limit, offset int) ([]*entity.InventoryItem, int64, error) {
	var out []*entity.InventoryItem
	for _, it := range r.s.items {
		if search != "" && !strings.Contains(it.Name, search) && !strings.Contains(it.SKU, search) {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *memItemRepo) Delete(id string) error {
	delete(r.s.items, id)
	return nil
}

type memStockRepo struct{ s *memState }

func (r *memStockRepo) Get(warehouseID, itemID string) (*entity.Stock, error) {
	st, ok := r.s.stock[stockKey(warehouseID, itemID)]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (r *memStockRepo) GetForUpdate(warehouseID, itemID string) (*entity.Stock, error) {
	return r.Get(warehouseID, itemID)
}

func (r *memStockRepo) Ensure(warehouseID, itemID string) error {
	key := stockKey(warehouseID, itemID)
	if _, ok := r.s.stock[key]; !ok {
		r.s.stock[key] = &entity.Stock{WarehouseID: warehouseID, InventoryItemID: itemID}
	}
	return nil
}

func (r *memStockRepo) Adjust(warehouseID, itemID string, delta int64) (*entity.Stock, error) {
	st, ok := r.s.stock[stockKey(warehouseID, itemID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if st.Quantity+delta < 0 {
		return nil, domain.ErrNegativeStock
	}
	st.Quantity += delta
	cp := *st
	return &cp, nil
}

func (r *memStockRepo) TotalByWarehouse(warehouseID string) (int64, error) {
	var total int64
	for _, st := range r.s.stock {
		if st.WarehouseID == warehouseID {
			total += st.Quantity
		}
	}
	return total, nil
}

func (r *memStockRepo) TotalByItem(itemID string) (int64, error) {
	var total int64
	for _, st := range r.s.stock {
		if st.InventoryItemID == itemID {
			total += st.Quantity
		}
	}
	return total, nil
}

func (r *memStockRepo) CountWarehousesByItem(itemID string) (int64, error) {
	var n int64
	for _, st := range r.s.stock {
		if st.InventoryItemID == itemID {
			n++
		}
	}
	return n, nil
}

func (r *memStockRepo) ListLowStockByItem(itemID string) ([]*entity.ItemWarehouseStock, error) {
	it := r.s.items[itemID]
	if it == nil {
		return nil, nil
	}
	var out []*entity.ItemWarehouseStock
	for _, st := range r.s.stock {
		if st.InventoryItemID != itemID || st.Quantity >= it.MinStockLevel {
			continue
		}
		ls := &entity.ItemWarehouseStock{
			WarehouseID:   st.WarehouseID,
			Quantity:      st.Quantity,
			MinStockLevel: it.MinStockLevel,
		}
		if w := r.s.warehouses[st.WarehouseID]; w != nil {
			ls.WarehouseName = w.Name
		}
		out = append(out, ls)
	}
	return out, nil
}

func (r *memStockRepo) HasNonZeroByItem(itemID string) (bool, error) {
	for _, st := range r.s.stock {
		if st.InventoryItemID == itemID && st.Quantity != 0 {
			return true, nil
		}
	}
	return false, nil
}

func (r *memStockRepo) HasNonZeroByWarehouse(warehouseID string) (bool, error) {
	for _, st := range r.s.stock {
		if st.WarehouseID == warehouseID && st.Quantity != 0 {
			return true, nil
		}
	}
	return false, nil
}

func (r *memStockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.WarehouseStock, error) {
	var out []*entity.WarehouseStock
	for _, st := range r.s.stock {
		if st.WarehouseID != warehouseID {
			continue
		}
		it := r.s.items[st.InventoryItemID]
		ws := &entity.WarehouseStock{
			WarehouseID:     st.WarehouseID,
			InventoryItemID: st.InventoryItemID,
			Quantity:        st.Quantity,
			UpdatedAt:       st.UpdatedAt,
		}
		if it != nil {
			ws.ItemName = it.Name
			ws.ItemSKU = it.SKU
			ws.MinStockLevel = it.MinStockLevel
		}
		out = append(out, ws)
	}
	return out, nil
}

type memTransferRepo struct{ s *memState }

func (r *memTransferRepo) Create(t *entity.StockTransfer) error {
	cp := *t
	r.s.transfers[t.ID] = &cp
	return nil
}

func (r *memTransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	t, ok := r.s.transfers[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memTransferRepo) GetByIDForUpdate(id string) (*entity.StockTransfer, error) {
	return r.GetByID(id)
}

func (r *memTransferRepo) MarkCancelled(t *entity.StockTransfer) error {
	existing, ok := r.s.transfers[t.ID]
	if !ok || existing.Status != entity.TransferStatusCompleted {
		return domain.ErrNotCancellable
	}
	cp := *t
	r.s.transfers[t.ID] = &cp
	return nil
}

func (r *memTransferRepo) List(filter repository.TransferFilter, limit, offset int) ([]*entity.StockTransfer, int64, error) {
	var out []*entity.StockTransfer
	for _, t := range r.s.transfers {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.FromWarehouseID != "" && t.FromWarehouseID != filter.FromWarehouseID {
			continue
		}
		if filter.ToWarehouseID != "" && t.ToWarehouseID != filter.ToWarehouseID {
			continue
		}
		if filter.InventoryItemID != "" && t.InventoryItemID != filter.InventoryItemID {
			continue
		}
		if filter.TransferredBy != "" && t.TransferredBy != filter.TransferredBy {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *memTransferRepo) CountByItem(itemID string) (int64, error) {
	var n int64
	for _, t := range r.s.transfers {
		if t.InventoryItemID == itemID {
			n++
		}
	}
	return n, nil
}

func (r *memTransferRepo) Stats() (*repository.TransferStats, error) {
	s := &repository.TransferStats{}
	for _, t := range r.s.transfers {
		s.TotalTransfers++
		switch t.Status {
		case entity.TransferStatusCompleted:
			s.CompletedTransfers++
			s.TotalQuantityTransferred += t.Quantity
		case entity.TransferStatusCancelled:
			s.CancelledTransfers++
		case entity.TransferStatusPending:
			s.PendingTransfers++
		}
	}
	return s, nil
}

func (r *memTransferRepo) Delete(id string) error {
	delete(r.s.transfers, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de los puertos de efectos secundarios
// ──────────────────────────────────────────────────────────────────────────────

type fakeCache struct {
	mu          sync.Mutex
	invalidated []string
}

func (c *fakeCache) InvalidateWarehouseInventory(_ context.Context, warehouseID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, warehouseID)
	return nil
}

func (c *fakeCache) calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.invalidated...)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []alerts.AlertEvent
}

func (p *fakePublisher) Publish(event alerts.AlertEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *fakePublisher) published() []alerts.AlertEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]alerts.AlertEvent(nil), p.events...)
}

type fakeStatsCache struct {
	mu    sync.Mutex
	stats *repository.TransferStats
	gets  int
	sets  int
}

func (c *fakeStatsCache) GetTransferStats(_ context.Context) (*repository.TransferStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.stats == nil {
		return nil, nil
	}
	cp := *c.stats
	return &cp, nil
}

func (c *fakeStatsCache) SetTransferStats(_ context.Context, stats *repository.TransferStats) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	cp := *stats
	c.stats = &cp
	return nil
}
