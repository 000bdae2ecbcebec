package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// InventoryItemRepository define el puerto de persistencia para InventoryItem (DIP).
type InventoryItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetBySKU(sku string) (*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	// List devuelve la página y el total de filas que calzan con la búsqueda.
	List(search string, limit, offset int) ([]*entity.InventoryItem, int64, error)
	Delete(id string) error
}
