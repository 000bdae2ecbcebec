package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// InventoryItemUseCase casos de uso CRUD para artículos de inventario.
// El borrado está prohibido mientras exista stock distinto de cero del artículo.
type InventoryItemUseCase struct {
	repo         repository.InventoryItemRepository
	stockRepo    repository.StockRepository
	transferRepo repository.StockTransferRepository
}

// NewInventoryItemUseCase construye el caso de uso.
func NewInventoryItemUseCase(repo repository.InventoryItemRepository, stockRepo repository.StockRepository, transferRepo repository.StockTransferRepository) *InventoryItemUseCase {
	return &InventoryItemUseCase{repo: repo, stockRepo: stockRepo, transferRepo: transferRepo}
}

// Create crea un artículo. El SKU es único: ErrDuplicate si ya existe.
func (uc *InventoryItemUseCase) Create(in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	if in.Name == "" || in.SKU == "" || in.MinStockLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:            uuid.New().String(),
		Name:          in.Name,
		SKU:           in.SKU,
		Description:   in.Description,
		Price:         in.Price,
		MinStockLevel: in.MinStockLevel,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toInventoryItemResponse(item), nil
}

// GetByID obtiene un artículo por ID (nil si no existe).
func (uc *InventoryItemUseCase) GetByID(id string) (*dto.InventoryItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toInventoryItemResponse(item), nil
}

// Update actualiza un artículo (solo los campos presentes).
func (uc *InventoryItemUseCase) Update(id string, in dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.SKU != nil && *in.SKU != item.SKU {
		existing, err := uc.repo.GetBySKU(*in.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		item.SKU = *in.SKU
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.MinStockLevel != nil {
		if *in.MinStockLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.MinStockLevel = *in.MinStockLevel
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toInventoryItemResponse(item), nil
}

// List lista artículos con búsqueda y paginación.
func (uc *InventoryItemUseCase) List(search string, limit, offset int) (*dto.InventoryItemListResponse, error) {
	list, total, err := uc.repo.List(search, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toInventoryItemResponse(it))
	}
	return &dto.InventoryItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Stats resume el artículo a través de las bodegas: unidades totales,
// bodegas con stock registrado, bodegas bajo el mínimo y traslados.
func (uc *InventoryItemUseCase) Stats(id string) (*dto.InventoryItemStatsResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	total, err := uc.stockRepo.TotalByItem(id)
	if err != nil {
		return nil, err
	}
	warehouses, err := uc.stockRepo.CountWarehousesByItem(id)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.stockRepo.ListLowStockByItem(id)
	if err != nil {
		return nil, err
	}
	transfers, err := uc.transferRepo.CountByItem(id)
	if err != nil {
		return nil, err
	}
	low := make([]entity.ItemWarehouseStock, 0, len(lowStock))
	for _, ls := range lowStock {
		low = append(low, *ls)
	}
	return &dto.InventoryItemStatsResponse{
		TotalQuantity:      total,
		WarehousesCount:    warehouses,
		LowStockWarehouses: low,
		TransfersCount:     transfers,
	}, nil
}

// Delete elimina un artículo. Falla con ErrStockStillHeld si alguna bodega
// aún tiene unidades del artículo.
func (uc *InventoryItemUseCase) Delete(id string) error {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	held, err := uc.stockRepo.HasNonZeroByItem(id)
	if err != nil {
		return err
	}
	if held {
		return domain.ErrStockStillHeld
	}
	return uc.repo.Delete(id)
}

func toInventoryItemResponse(it *entity.InventoryItem) *dto.InventoryItemResponse {
	if it == nil {
		return nil
	}
	return &dto.InventoryItemResponse{
		ID:            it.ID,
		Name:          it.Name,
		SKU:           it.SKU,
		Description:   it.Description,
		Price:         it.Price,
		MinStockLevel: it.MinStockLevel,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}
