package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// InventoryCache caché de la vista de inventario por bodega.
// GetWarehouseInventory devuelve (nil, nil) en cache miss.
type InventoryCache interface {
	GetWarehouseInventory(ctx context.Context, warehouseID string) ([]entity.WarehouseStock, error)
	SetWarehouseInventory(ctx context.Context, warehouseID string, items []entity.WarehouseStock) error
	InvalidateWarehouseInventory(ctx context.Context, warehouseID string) error
}

// WarehouseUseCase casos de uso CRUD para bodegas más la vista de inventario
// cacheada. Cualquier actualización de la bodega invalida su caché de
// inventario; el borrado está prohibido mientras la bodega tenga stock.
type WarehouseUseCase struct {
	repo      repository.WarehouseRepository
	stockRepo repository.StockRepository
	cache     InventoryCache
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, stockRepo repository.StockRepository, cache InventoryCache) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, stockRepo: stockRepo, cache: cache}
}

// Create crea una nueva bodega (activa por defecto).
func (uc *WarehouseUseCase) Create(in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Capacity != nil && *in.Capacity < 0 {
		return nil, domain.ErrInvalidInput
	}
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Location:  in.Location,
		Capacity:  in.Capacity,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID (nil si no existe).
func (uc *WarehouseUseCase) GetByID(id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza una bodega e invalida su caché de inventario.
func (uc *WarehouseUseCase) Update(ctx context.Context, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Location != nil {
		warehouse.Location = *in.Location
	}
	if in.Capacity != nil {
		if *in.Capacity < 0 {
			return nil, domain.ErrInvalidInput
		}
		warehouse.Capacity = in.Capacity
	}
	if in.IsActive != nil {
		warehouse.IsActive = *in.IsActive
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(warehouse); err != nil {
		return nil, err
	}
	_ = uc.cache.InvalidateWarehouseInventory(ctx, id)
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas con filtros y paginación.
func (uc *WarehouseUseCase) List(filter repository.WarehouseFilter, limit, offset int) (*dto.WarehouseListResponse, error) {
	list, total, err := uc.repo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Delete elimina una bodega. Falla con ErrStockStillHeld si aún tiene stock.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id string) error {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	held, err := uc.stockRepo.HasNonZeroByWarehouse(id)
	if err != nil {
		return err
	}
	if held {
		return domain.ErrStockStillHeld
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	_ = uc.cache.InvalidateWarehouseInventory(ctx, id)
	return nil
}

// GetInventory devuelve la vista de inventario de la bodega, con lectura a
// través de la caché (clave warehouse-{id}-inventory).
func (uc *WarehouseUseCase) GetInventory(ctx context.Context, warehouseID string) (*dto.WarehouseInventoryResponse, error) {
	warehouse, err := uc.repo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}

	if cached, err := uc.cache.GetWarehouseInventory(ctx, warehouseID); err == nil && cached != nil {
		return &dto.WarehouseInventoryResponse{WarehouseID: warehouseID, Items: cached}, nil
	}

	stocks, err := uc.stockRepo.ListByWarehouse(warehouseID, 1000, 0)
	if err != nil {
		return nil, err
	}
	items := make([]entity.WarehouseStock, 0, len(stocks))
	for _, s := range stocks {
		items = append(items, *s)
	}
	_ = uc.cache.SetWarehouseInventory(ctx, warehouseID, items)
	return &dto.WarehouseInventoryResponse{WarehouseID: warehouseID, Items: items}, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Location:  w.Location,
		Capacity:  w.Capacity,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
