package transfer

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/alerts"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// traslados: o la función completa y se hace Commit, o todo se revierte.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		warehouseRepo repository.WarehouseRepository,
		itemRepo repository.InventoryItemRepository,
		stockRepo repository.StockRepository,
		transferRepo repository.StockTransferRepository,
	) error) error
}

// CacheInvalidator invalida la vista de inventario cacheada de una bodega.
// Se invoca estrictamente DESPUÉS del commit, nunca antes.
type CacheInvalidator interface {
	InvalidateWarehouseInventory(ctx context.Context, warehouseID string) error
}

// AlertPublisher encola eventos de bajo stock para entrega asíncrona.
type AlertPublisher interface {
	Publish(event alerts.AlertEvent)
}

// StatsCache cachea los agregados de traslados (TTL corto).
// GetTransferStats devuelve (nil, nil) en cache miss.
type StatsCache interface {
	GetTransferStats(ctx context.Context) (*repository.TransferStats, error)
	SetTransferStats(ctx context.Context, stats *repository.TransferStats) error
}
