package alerts

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// AlertEvent es el payload de una alerta de bajo stock. Se emite cuando la
// cantidad de un artículo en una bodega queda por debajo de su umbral mínimo
// tras un traslado. La política de envío se decide sobre este payload, no en
// el motor de traslados.
type AlertEvent struct {
	InventoryItemID string    `json:"inventory_item_id"`
	ItemName        string    `json:"item_name"`
	ItemSKU         string    `json:"item_sku"`
	WarehouseID     string    `json:"warehouse_id"`
	WarehouseName   string    `json:"warehouse_name"`
	CurrentStock    int64     `json:"current_quantity"`
	MinStockLevel   int64     `json:"min_required"`
	Shortage        int64     `json:"shortage"`
	TriggeredAt     time.Time `json:"triggered_at"`
}

// Detect compara la cantidad post-mutación contra el umbral del artículo.
// Devuelve nil si no hay quiebre. Debe invocarse sobre las DOS filas de stock
// tocadas por un traslado (origen y destino); un traslado puede producir
// cero, una o dos alertas.
func Detect(stock *entity.Stock, item *entity.InventoryItem, warehouse *entity.Warehouse) *AlertEvent {
	if stock == nil || item == nil || warehouse == nil {
		return nil
	}
	if stock.Quantity >= item.MinStockLevel {
		return nil
	}
	return &AlertEvent{
		InventoryItemID: item.ID,
		ItemName:        item.Name,
		ItemSKU:         item.SKU,
		WarehouseID:     warehouse.ID,
		WarehouseName:   warehouse.Name,
		CurrentStock:    stock.Quantity,
		MinStockLevel:   item.MinStockLevel,
		Shortage:        item.MinStockLevel - stock.Quantity,
		TriggeredAt:     time.Now(),
	}
}
