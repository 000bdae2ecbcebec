package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// TransferFilter filtros de listado de traslados.
type TransferFilter struct {
	FromWarehouseID string
	ToWarehouseID   string
	InventoryItemID string
	Status          string
	TransferredBy   string
	DateFrom        *time.Time
	DateTo          *time.Time
}

// WarehouseActivity bodega con más traslados (entrantes + salientes).
type WarehouseActivity struct {
	WarehouseID    string `json:"warehouse_id"`
	Name           string `json:"name"`
	TotalTransfers int64  `json:"total_transfers"`
}

// TransferStats agregados sobre el historial de traslados.
type TransferStats struct {
	TotalTransfers           int64              `json:"total_transfers"`
	CompletedTransfers       int64              `json:"completed_transfers"`
	CancelledTransfers       int64              `json:"cancelled_transfers"`
	PendingTransfers         int64              `json:"pending_transfers"`
	TotalQuantityTransferred int64              `json:"total_quantity_transferred"`
	TransfersToday           int64              `json:"transfers_today"`
	MostActiveWarehouse      *WarehouseActivity `json:"most_active_warehouse"`
}

// StockTransferRepository define el puerto de persistencia para StockTransfer.
// Las filas de traslado son la fuente de verdad del historial; solo el motor
// de traslados las escribe.
type StockTransferRepository interface {
	Create(transfer *entity.StockTransfer) error
	GetByID(id string) (*entity.StockTransfer, error)
	// GetByIDForUpdate bloquea la fila del traslado durante la cancelación.
	GetByIDForUpdate(id string) (*entity.StockTransfer, error)
	// MarkCancelled persiste la transición completed -> cancelled.
	MarkCancelled(transfer *entity.StockTransfer) error
	List(filter TransferFilter, limit, offset int) ([]*entity.StockTransfer, int64, error)
	// CountByItem cuenta los traslados que involucran al artículo.
	CountByItem(itemID string) (int64, error)
	Stats() (*TransferStats, error)
	Delete(id string) error
}
