package dto

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// CreateWarehouseRequest entrada para crear una bodega.
// Capacity nil = sin tope de unidades. IsActive nil = activa por defecto.
type CreateWarehouseRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Location string `json:"location"`
	Capacity *int64 `json:"capacity" validate:"omitempty,min=0"`
	IsActive *bool  `json:"is_active"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega.
type UpdateWarehouseRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Location *string `json:"location"`
	Capacity *int64  `json:"capacity" validate:"omitempty,min=0"`
	IsActive *bool   `json:"is_active"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Capacity  *int64    `json:"capacity"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// WarehouseInventoryResponse vista de inventario de una bodega (cacheable).
type WarehouseInventoryResponse struct {
	WarehouseID string                  `json:"warehouse_id"`
	Items       []entity.WarehouseStock `json:"items"`
}
