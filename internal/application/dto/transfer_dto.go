package dto

import "time"

// CreateTransferRequest body para POST /api/stock-transfers.
type CreateTransferRequest struct {
	FromWarehouseID string `json:"from_warehouse_id" validate:"required,uuid"`
	ToWarehouseID   string `json:"to_warehouse_id" validate:"required,uuid"`
	InventoryItemID string `json:"inventory_item_id" validate:"required,uuid"`
	Quantity        int64  `json:"quantity" validate:"required,min=1"`
	Notes           string `json:"notes"`
}

// TransferResponse salida de un traslado.
type TransferResponse struct {
	ID              string     `json:"id"`
	FromWarehouseID string     `json:"from_warehouse_id"`
	ToWarehouseID   string     `json:"to_warehouse_id"`
	InventoryItemID string     `json:"inventory_item_id"`
	Quantity        int64      `json:"quantity"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes,omitempty"`
	TransferredBy   string     `json:"transferred_by"`
	CancelledBy     string     `json:"cancelled_by,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
}

// TransferListResponse lista paginada de traslados.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
