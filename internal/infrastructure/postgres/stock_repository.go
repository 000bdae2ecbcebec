package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del libro de stock sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la fila de stock de un artículo en una bodega (nil si no existe).
func (r *StockRepo) Get(warehouseID, itemID string) (*entity.Stock, error) {
	query := `
		SELECT warehouse_id, inventory_item_id, quantity, updated_at
		FROM stock WHERE warehouse_id = $1 AND inventory_item_id = $2`
	return r.scanOne(query, warehouseID, itemID)
}

// GetForUpdate obtiene la fila y la bloquea para update (SELECT FOR UPDATE).
// Nil si no existe: el motor decide si la ausencia es error.
func (r *StockRepo) GetForUpdate(warehouseID, itemID string) (*entity.Stock, error) {
	query := `
		SELECT warehouse_id, inventory_item_id, quantity, updated_at
		FROM stock WHERE warehouse_id = $1 AND inventory_item_id = $2
		FOR UPDATE`
	return r.scanOne(query, warehouseID, itemID)
}

// Ensure crea la fila en 0 si no existe (creación perezosa; nunca se borra).
func (r *StockRepo) Ensure(warehouseID, itemID string) error {
	query := `
		INSERT INTO stock (warehouse_id, inventory_item_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (warehouse_id, inventory_item_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), query, warehouseID, itemID); err != nil {
		return fmt.Errorf("ensure stock: %w", err)
	}
	return nil
}

// Adjust suma delta a la cantidad bajo el bloqueo de fila que ya sostiene el
// caller. La guarda en el WHERE impide dejar la cantidad en negativo aunque
// un caller futuro se salte las pre-verificaciones del motor:
// domain.ErrNegativeStock en ese caso.
func (r *StockRepo) Adjust(warehouseID, itemID string, delta int64) (*entity.Stock, error) {
	query := `
		UPDATE stock
		SET quantity = quantity + $3, updated_at = now()
		WHERE warehouse_id = $1 AND inventory_item_id = $2 AND quantity + $3 >= 0
		RETURNING warehouse_id, inventory_item_id, quantity, updated_at`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, warehouseID, itemID, delta).Scan(
		&s.WarehouseID, &s.InventoryItemID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, gerr := r.Get(warehouseID, itemID)
			if gerr != nil {
				return nil, gerr
			}
			if existing == nil {
				return nil, domain.ErrNotFound
			}
			return nil, domain.ErrNegativeStock
		}
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	return &s, nil
}

// TotalByWarehouse suma las unidades almacenadas en la bodega.
func (r *StockRepo) TotalByWarehouse(warehouseID string) (int64, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock WHERE warehouse_id = $1`
	var total int64
	if err := r.q.QueryRow(context.Background(), query, warehouseID).Scan(&total); err != nil {
		return 0, fmt.Errorf("total stock by warehouse: %w", err)
	}
	return total, nil
}

// TotalByItem suma las unidades del artículo en todas las bodegas.
func (r *StockRepo) TotalByItem(itemID string) (int64, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock WHERE inventory_item_id = $1`
	var total int64
	if err := r.q.QueryRow(context.Background(), query, itemID).Scan(&total); err != nil {
		return 0, fmt.Errorf("total stock by item: %w", err)
	}
	return total, nil
}

// CountWarehousesByItem cuenta las bodegas con fila de stock del artículo.
func (r *StockRepo) CountWarehousesByItem(itemID string) (int64, error) {
	query := `SELECT count(DISTINCT warehouse_id) FROM stock WHERE inventory_item_id = $1`
	var n int64
	if err := r.q.QueryRow(context.Background(), query, itemID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count warehouses by item: %w", err)
	}
	return n, nil
}

// ListLowStockByItem devuelve las bodegas donde el artículo está por debajo
// de su nivel mínimo.
func (r *StockRepo) ListLowStockByItem(itemID string) ([]*entity.ItemWarehouseStock, error) {
	query := `
		SELECT s.warehouse_id, w.name, s.quantity, i.min_stock_level
		FROM stock s
		JOIN warehouses w ON w.id = s.warehouse_id
		JOIN inventory_items i ON i.id = s.inventory_item_id
		WHERE s.inventory_item_id = $1 AND s.quantity < i.min_stock_level
		ORDER BY s.quantity ASC`
	rows, err := r.q.Query(context.Background(), query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list low stock by item: %w", err)
	}
	defer rows.Close()
	var list []*entity.ItemWarehouseStock
	for rows.Next() {
		var ls entity.ItemWarehouseStock
		if err := rows.Scan(&ls.WarehouseID, &ls.WarehouseName, &ls.Quantity, &ls.MinStockLevel); err != nil {
			return nil, fmt.Errorf("scan item warehouse stock: %w", err)
		}
		list = append(list, &ls)
	}
	return list, rows.Err()
}

// HasNonZeroByItem indica si alguna bodega conserva unidades del artículo.
func (r *StockRepo) HasNonZeroByItem(itemID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM stock WHERE inventory_item_id = $1 AND quantity <> 0)`
	var held bool
	if err := r.q.QueryRow(context.Background(), query, itemID).Scan(&held); err != nil {
		return false, fmt.Errorf("stock held by item: %w", err)
	}
	return held, nil
}

// HasNonZeroByWarehouse indica si la bodega conserva unidades de algún artículo.
func (r *StockRepo) HasNonZeroByWarehouse(warehouseID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM stock WHERE warehouse_id = $1 AND quantity <> 0)`
	var held bool
	if err := r.q.QueryRow(context.Background(), query, warehouseID).Scan(&held); err != nil {
		return false, fmt.Errorf("stock held by warehouse: %w", err)
	}
	return held, nil
}

// ListByWarehouse devuelve la vista de inventario de la bodega (stock + artículo).
func (r *StockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.WarehouseStock, error) {
	query := `
		SELECT s.warehouse_id, s.inventory_item_id, i.name, i.sku, s.quantity, i.min_stock_level, s.updated_at
		FROM stock s
		JOIN inventory_items i ON i.id = s.inventory_item_id
		WHERE s.warehouse_id = $1
		ORDER BY i.name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock by warehouse: %w", err)
	}
	defer rows.Close()
	var list []*entity.WarehouseStock
	for rows.Next() {
		var ws entity.WarehouseStock
		if err := rows.Scan(&ws.WarehouseID, &ws.InventoryItemID, &ws.ItemName, &ws.ItemSKU, &ws.Quantity, &ws.MinStockLevel, &ws.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse stock: %w", err)
		}
		list = append(list, &ws)
	}
	return list, rows.Err()
}

func (r *StockRepo) scanOne(query string, warehouseID, itemID string) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, warehouseID, itemID).Scan(
		&s.WarehouseID, &s.InventoryItemID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}
