package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// CreateInventoryItemRequest entrada para crear un artículo.
type CreateInventoryItemRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	SKU           string          `json:"sku" validate:"required,min=1,max=100"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	MinStockLevel int64           `json:"min_stock_level" validate:"min=0"`
}

// UpdateInventoryItemRequest entrada para actualizar un artículo (campos opcionales).
type UpdateInventoryItemRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU           *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	MinStockLevel *int64           `json:"min_stock_level" validate:"omitempty,min=0"`
}

// InventoryItemResponse salida de un artículo.
type InventoryItemResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	MinStockLevel int64           `json:"min_stock_level"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InventoryItemListResponse lista paginada de artículos.
type InventoryItemListResponse struct {
	Items []InventoryItemResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// InventoryItemStatsResponse resumen de un artículo a través de las bodegas:
// unidades totales, bodegas con fila de stock, bodegas bajo el mínimo y
// traslados que lo involucran.
type InventoryItemStatsResponse struct {
	TotalQuantity      int64                       `json:"total_quantity"`
	WarehousesCount    int64                       `json:"warehouses_count"`
	LowStockWarehouses []entity.ItemWarehouseStock `json:"low_stock_warehouses"`
	TransfersCount     int64                       `json:"transfers_count"`
}
