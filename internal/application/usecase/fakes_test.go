package usecase_test

import (
	"context"
	"strings"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Dobles en memoria para los casos de uso CRUD. Sin semántica
// transaccional: los casos de uso de este paquete no la necesitan.

type fakeItemRepo struct {
	items    map[string]*entity.InventoryItem
	order    []string
	bySKUErr error
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[string]*entity.InventoryItem{}}
}

func (r *fakeItemRepo) Create(it *entity.InventoryItem) error {
	cp := *it
	r.items[it.ID] = &cp
	r.order = append(r.order, it.ID)
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetBySKU(sku string) (*entity.InventoryItem, error) {
	if r.bySKUErr != nil {
		return nil, r.bySKUErr
	}
	for _, it := range r.items {
		if it.SKU == sku {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) Update(it *entity.InventoryItem) error {
	cp := *it
	r.items[it.ID] = &cp
	return nil
}

func (r *fakeItemRepo) List(search string, limit, offset int) ([]*entity.InventoryItem, int64, error) {
	var matched []*entity.InventoryItem
	for _, id := range r.order {
		it := r.items[id]
		if search != "" && !strings.Contains(it.Name, search) && !strings.Contains(it.SKU, search) {
			continue
		}
		cp := *it
		matched = append(matched, &cp)
	}
	total := int64(len(matched))
	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *fakeItemRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

type stockRow struct {
	warehouseID   string
	warehouseName string
	itemID        string
	quantity      int64
	minLevel      int64
}

type fakeStockRepo struct {
	rows []stockRow
}

func (r *fakeStockRepo) Get(warehouseID, itemID string) (*entity.Stock, error) {
	for _, row := range r.rows {
		if row.warehouseID == warehouseID && row.itemID == itemID {
			return &entity.Stock{WarehouseID: warehouseID, InventoryItemID: itemID, Quantity: row.quantity}, nil
		}
	}
	return nil, nil
}

func (r *fakeStockRepo) GetForUpdate(warehouseID, itemID string) (*entity.Stock, error) {
	return r.Get(warehouseID, itemID)
}

func (r *fakeStockRepo) Ensure(warehouseID, itemID string) error { return nil }

func (r *fakeStockRepo) Adjust(warehouseID, itemID string, delta int64) (*entity.Stock, error) {
	return nil, nil
}

func (r *fakeStockRepo) TotalByWarehouse(warehouseID string) (int64, error) {
	var total int64
	for _, row := range r.rows {
		if row.warehouseID == warehouseID {
			total += row.quantity
		}
	}
	return total, nil
}

func (r *fakeStockRepo) TotalByItem(itemID string) (int64, error) {
	var total int64
	for _, row := range r.rows {
		if row.itemID == itemID {
			total += row.quantity
		}
	}
	return total, nil
}

func (r *fakeStockRepo) CountWarehousesByItem(itemID string) (int64, error) {
	var n int64
	for _, row := range r.rows {
		if row.itemID == itemID {
			n++
		}
	}
	return n, nil
}

func (r *fakeStockRepo) ListLowStockByItem(itemID string) ([]*entity.ItemWarehouseStock, error) {
	var out []*entity.ItemWarehouseStock
	for _, row := range r.rows {
		if row.itemID != itemID || row.quantity >= row.minLevel {
			continue
		}
		out = append(out, &entity.ItemWarehouseStock{
			WarehouseID:   row.warehouseID,
			WarehouseName: row.warehouseName,
			Quantity:      row.quantity,
			MinStockLevel: row.minLevel,
		})
	}
	return out, nil
}

func (r *fakeStockRepo) HasNonZeroByItem(itemID string) (bool, error) {
	for _, row := range r.rows {
		if row.itemID == itemID && row.quantity != 0 {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeStockRepo) HasNonZeroByWarehouse(warehouseID string) (bool, error) {
	for _, row := range r.rows {
		if row.warehouseID == warehouseID && row.quantity != 0 {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeStockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.WarehouseStock, error) {
	var out []*entity.WarehouseStock
	for _, row := range r.rows {
		if row.warehouseID != warehouseID {
			continue
		}
		out = append(out, &entity.WarehouseStock{
			WarehouseID:     row.warehouseID,
			InventoryItemID: row.itemID,
			Quantity:        row.quantity,
			MinStockLevel:   row.minLevel,
		})
	}
	return out, nil
}

type fakeTransferCountRepo struct {
	byItem map[string]int64
}

func (r *fakeTransferCountRepo) Create(*entity.StockTransfer) error { return nil }

func (r *fakeTransferCountRepo) GetByID(string) (*entity.StockTransfer, error) { return nil, nil }

func (r *fakeTransferCountRepo) GetByIDForUpdate(string) (*entity.StockTransfer, error) {
	return nil, nil
}

func (r *fakeTransferCountRepo) MarkCancelled(*entity.StockTransfer) error { return nil }

func (r *fakeTransferCountRepo) List(repository.TransferFilter, int, int) ([]*entity.StockTransfer, int64, error) {
	return nil, 0, nil
}

func (r *fakeTransferCountRepo) CountByItem(itemID string) (int64, error) {
	return r.byItem[itemID], nil
}

func (r *fakeTransferCountRepo) Stats() (*repository.TransferStats, error) {
	return &repository.TransferStats{}, nil
}

func (r *fakeTransferCountRepo) Delete(string) error { return nil }

type fakeWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
	order      []string
}

func newFakeWarehouseRepo() *fakeWarehouseRepo {
	return &fakeWarehouseRepo{warehouses: map[string]*entity.Warehouse{}}
}

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	cp := *w
	r.warehouses[w.ID] = &cp
	r.order = append(r.order, w.ID)
	return nil
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWarehouseRepo) GetByIDForUpdate(id string) (*entity.Warehouse, error) {
	return r.GetByID(id)
}

func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error {
	cp := *w
	r.warehouses[w.ID] = &cp
	return nil
}

func (r *fakeWarehouseRepo) List(filter repository.WarehouseFilter, limit, offset int) ([]*entity.Warehouse, int64, error) {
	var matched []*entity.Warehouse
	for _, id := range r.order {
		w := r.warehouses[id]
		if filter.IsActive != nil && w.IsActive != *filter.IsActive {
			continue
		}
		if filter.Search != "" && !strings.Contains(w.Name, filter.Search) {
			continue
		}
		cp := *w
		matched = append(matched, &cp)
	}
	total := int64(len(matched))
	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *fakeWarehouseRepo) Delete(id string) error {
	delete(r.warehouses, id)
	return nil
}

type noopCache struct{}

func (noopCache) GetWarehouseInventory(context.Context, string) ([]entity.WarehouseStock, error) {
	return nil, nil
}

func (noopCache) SetWarehouseInventory(context.Context, string, []entity.WarehouseStock) error {
	return nil
}

func (noopCache) InvalidateWarehouseInventory(context.Context, string) error { return nil }
