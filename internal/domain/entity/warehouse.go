package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario.
// Capacity es el tope de unidades totales que puede contener (nil = sin límite).
// Solo bodegas activas pueden participar en traslados.
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	Capacity  *int64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCapacityFor indica si la bodega puede recibir quantity unidades adicionales
// dado su total actual. Sin límite configurado siempre acepta.
func (w *Warehouse) HasCapacityFor(currentTotal, quantity int64) bool {
	if w.Capacity == nil {
		return true
	}
	return currentTotal+quantity <= *w.Capacity
}
