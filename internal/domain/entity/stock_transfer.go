package entity

import "time"

// Estados de un traslado. La única transición válida es completed -> cancelled.
// pending está reservado en el modelo pero la ruta síncrona no lo produce.
const (
	TransferStatusPending   = "pending"
	TransferStatusCompleted = "completed"
	TransferStatusCancelled = "cancelled"
)

// StockTransfer registra el movimiento de una cantidad de un artículo entre dos
// bodegas. Inmutable una vez completado salvo la cancelación (movimiento inverso).
// Es la fuente de verdad para auditoría e historial.
type StockTransfer struct {
	ID              string
	FromWarehouseID string
	ToWarehouseID   string
	InventoryItemID string
	Quantity        int64
	Status          string
	Notes           string
	TransferredBy   string
	CancelledBy     string
	CreatedAt       time.Time
	CompletedAt     *time.Time
	CancelledAt     *time.Time
}
