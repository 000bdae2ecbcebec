package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// StockRepository define el puerto del libro de stock por (bodega, artículo).
// Get/GetForUpdate devuelven nil cuando la fila no existe. Adjust debe
// ejecutarse con la fila ya bloqueada por el caller y falla con
// domain.ErrNegativeStock si la cantidad resultante sería negativa.
type StockRepository interface {
	Get(warehouseID, itemID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(warehouseID, itemID string) (*entity.Stock, error)
	// Ensure crea la fila en 0 si no existe (creación perezosa).
	Ensure(warehouseID, itemID string) error
	Adjust(warehouseID, itemID string, delta int64) (*entity.Stock, error)
	// TotalByWarehouse suma las unidades almacenadas en la bodega (chequeo de capacidad).
	TotalByWarehouse(warehouseID string) (int64, error)
	// TotalByItem suma las unidades del artículo en todas las bodegas.
	TotalByItem(itemID string) (int64, error)
	// CountWarehousesByItem cuenta las bodegas con fila de stock del artículo.
	CountWarehousesByItem(itemID string) (int64, error)
	// ListLowStockByItem devuelve las bodegas donde el artículo está por
	// debajo de su nivel mínimo.
	ListLowStockByItem(itemID string) ([]*entity.ItemWarehouseStock, error)
	HasNonZeroByItem(itemID string) (bool, error)
	HasNonZeroByWarehouse(warehouseID string) (bool, error)
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.WarehouseStock, error)
}
