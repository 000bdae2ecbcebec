package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Almacen-api/internal/application/transfer"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

const (
	inventoryKeyTTL = time.Hour
	statsKey        = "stock-transfers-stats"
	statsKeyTTL     = 5 * time.Minute
)

var (
	_ usecase.InventoryCache    = (*RedisCache)(nil)
	_ transfer.CacheInvalidator = (*RedisCache)(nil)
	_ transfer.StatsCache       = (*RedisCache)(nil)
)

// RedisCache cachea la vista de inventario por bodega y las estadísticas de
// traslados. Los valores van serializados en JSON; un miss se reporta como
// (nil, nil) para que el caso de uso recargue desde la BD.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache construye el adaptador de caché.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func inventoryKey(warehouseID string) string {
	return fmt.Sprintf("warehouse-%s-inventory", warehouseID)
}

// GetWarehouseInventory lee la vista de inventario cacheada (nil en miss).
func (c *RedisCache) GetWarehouseInventory(ctx context.Context, warehouseID string) ([]entity.WarehouseStock, error) {
	raw, err := c.client.Get(ctx, inventoryKey(warehouseID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse inventory cache: %w", err)
	}
	var items []entity.WarehouseStock
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode warehouse inventory cache: %w", err)
	}
	return items, nil
}

// SetWarehouseInventory cachea la vista de inventario con TTL de una hora.
func (c *RedisCache) SetWarehouseInventory(ctx context.Context, warehouseID string, items []entity.WarehouseStock) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode warehouse inventory cache: %w", err)
	}
	if err := c.client.Set(ctx, inventoryKey(warehouseID), raw, inventoryKeyTTL).Err(); err != nil {
		return fmt.Errorf("set warehouse inventory cache: %w", err)
	}
	return nil
}

// InvalidateWarehouseInventory borra la vista cacheada de la bodega.
func (c *RedisCache) InvalidateWarehouseInventory(ctx context.Context, warehouseID string) error {
	if err := c.client.Del(ctx, inventoryKey(warehouseID)).Err(); err != nil {
		return fmt.Errorf("invalidate warehouse inventory cache: %w", err)
	}
	return nil
}

// GetTransferStats lee las estadísticas cacheadas (nil en miss).
func (c *RedisCache) GetTransferStats(ctx context.Context) (*repository.TransferStats, error) {
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer stats cache: %w", err)
	}
	var stats repository.TransferStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("decode transfer stats cache: %w", err)
	}
	return &stats, nil
}

// SetTransferStats cachea las estadísticas con TTL de 5 minutos.
func (c *RedisCache) SetTransferStats(ctx context.Context, stats *repository.TransferStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode transfer stats cache: %w", err)
	}
	if err := c.client.Set(ctx, statsKey, raw, statsKeyTTL).Err(); err != nil {
		return fmt.Errorf("set transfer stats cache: %w", err)
	}
	return nil
}
