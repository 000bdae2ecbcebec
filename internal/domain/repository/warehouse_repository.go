package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// WarehouseFilter filtros de listado de bodegas.
type WarehouseFilter struct {
	Search   string // busca en name y location
	IsActive *bool
}

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	// GetByIDForUpdate bloquea la fila de la bodega (SELECT FOR UPDATE).
	GetByIDForUpdate(id string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	// List devuelve la página y el total de filas que calzan con el filtro.
	List(filter WarehouseFilter, limit, offset int) ([]*entity.Warehouse, int64, error)
	Delete(id string) error
}
