package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un artículo o SKU del inventario.
// MinStockLevel es el umbral de alerta de bajo stock (0 = sin umbral).
type InventoryItem struct {
	ID            string
	Name          string
	SKU           string // código único
	Description   string
	Price         decimal.Decimal
	MinStockLevel int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
