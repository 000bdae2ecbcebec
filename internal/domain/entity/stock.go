package entity

import "time"

// Stock representa la cantidad de un artículo en una bodega.
// Única por (warehouse_id, inventory_item_id). Quantity nunca es negativa;
// la fila se crea perezosamente en 0 y nunca se borra, solo se pone en cero.
type Stock struct {
	WarehouseID     string
	InventoryItemID string
	Quantity        int64
	UpdatedAt       time.Time
}

// ItemWarehouseStock es la vista por artículo: su stock en una bodega
// concreta (usada para reportar bodegas bajo el mínimo).
type ItemWarehouseStock struct {
	WarehouseID   string `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	Quantity      int64  `json:"quantity"`
	MinStockLevel int64  `json:"min_stock_level"`
}

// WarehouseStock es la vista de inventario de una bodega (stock + datos del artículo).
type WarehouseStock struct {
	WarehouseID     string    `json:"warehouse_id"`
	InventoryItemID string    `json:"inventory_item_id"`
	ItemName        string    `json:"item_name"`
	ItemSKU         string    `json:"item_sku"`
	Quantity        int64     `json:"quantity"`
	MinStockLevel   int64     `json:"min_stock_level"`
	UpdatedAt       time.Time `json:"updated_at"`
}
