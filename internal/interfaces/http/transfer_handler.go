package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/transfer"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TransferHandler maneja las peticiones HTTP para traslados de stock (protegido).
type TransferHandler struct {
	uc *transfer.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfer.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

func actorFrom(c *fiber.Ctx) transfer.Actor {
	return transfer.Actor{ID: GetUserID(c), Role: GetRole(c)}
}

// Create godoc
// @Summary      Ejecutar traslado de stock entre bodegas
// @Tags         stock-transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "Datos del traslado"
// @Success      201   {object}  dto.APIResponse
// @Failure      422   {object}  dto.APIResponse
// @Router       /api/stock-transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.FromWarehouseID == "" || in.ToWarehouseID == "" || in.InventoryItemID == "" {
		return validationError(c, "from_warehouse_id, to_warehouse_id e inventory_item_id son requeridos")
	}
	if in.Quantity <= 0 {
		return validationError(c, "quantity debe ser mayor que cero")
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return validationError(c, "las bodegas de origen y destino deben ser distintas")
	}
	out, err := h.uc.Execute(c.UserContext(), transfer.TransferInput{
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		InventoryItemID: in.InventoryItemID,
		Quantity:        in.Quantity,
		Notes:           in.Notes,
		Actor:           actorFrom(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, "traslado completado", toTransferResponse(out))
}

// Cancel godoc
// @Summary      Cancelar un traslado completado (revierte el stock)
// @Tags         stock-transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.APIResponse
// @Failure      422  {object}  dto.APIResponse
// @Router       /api/stock-transfers/{id}/cancel [post]
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.UserContext(), c.Params("id"), actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "traslado cancelado", toTransferResponse(out))
}

// GetByID godoc
// @Summary      Obtener traslado por ID
// @Tags         stock-transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/stock-transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "traslado no encontrado")
	}
	return ok(c, fiber.StatusOK, "", toTransferResponse(out))
}

// List godoc
// @Summary      Listar traslados con filtros
// @Tags         stock-transfers
// @Security     Bearer
// @Produce      json
// @Param        from_warehouse_id  query  string  false  "Bodega de origen"
// @Param        to_warehouse_id    query  string  false  "Bodega de destino"
// @Param        inventory_item_id  query  string  false  "Artículo"
// @Param        status             query  string  false  "Estado (pending|completed|cancelled)"
// @Param        transferred_by     query  string  false  "Usuario que ejecutó"
// @Param        date_from          query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        date_to            query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Param        limit              query  int     false  "Límite"   default(20)
// @Param        offset             query  int     false  "Offset"   default(0)
// @Success      200                {object}  dto.APIResponse
// @Router       /api/stock-transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	filter := repository.TransferFilter{
		FromWarehouseID: c.Query("from_warehouse_id"),
		ToWarehouseID:   c.Query("to_warehouse_id"),
		InventoryItemID: c.Query("inventory_item_id"),
		Status:          c.Query("status"),
		TransferredBy:   c.Query("transferred_by"),
	}
	var err error
	if filter.DateFrom, err = parseDateParam(c.Query("date_from")); err != nil {
		return validationError(c, "date_from inválida")
	}
	if filter.DateTo, err = parseDateParam(c.Query("date_to")); err != nil {
		return validationError(c, "date_to inválida")
	}
	limit, offset := pageParams(c)
	list, total, err := h.uc.List(c.UserContext(), filter, limit, offset)
	if err != nil {
		return fail(c, err)
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransferResponse(t))
	}
	return ok(c, fiber.StatusOK, "", dto.TransferListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	})
}

// Stats godoc
// @Summary      Estadísticas de traslados (admin/manager)
// @Tags         stock-transfers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse
// @Failure      403  {object}  dto.APIResponse
// @Router       /api/stock-transfers/stats [get]
func (h *TransferHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "", out)
}

// Delete godoc
// @Summary      Eliminar el registro de un traslado cancelado (solo admin)
// @Tags         stock-transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.APIResponse
// @Failure      403  {object}  dto.APIResponse
// @Router       /api/stock-transfers/{id} [delete]
func (h *TransferHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id"), actorFrom(c)); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "traslado eliminado", nil)
}

func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toTransferResponse(t *entity.StockTransfer) *dto.TransferResponse {
	if t == nil {
		return nil
	}
	return &dto.TransferResponse{
		ID:              t.ID,
		FromWarehouseID: t.FromWarehouseID,
		ToWarehouseID:   t.ToWarehouseID,
		InventoryItemID: t.InventoryItemID,
		Quantity:        t.Quantity,
		Status:          t.Status,
		Notes:           t.Notes,
		TransferredBy:   t.TransferredBy,
		CancelledBy:     t.CancelledBy,
		CreatedAt:       t.CreatedAt,
		CompletedAt:     t.CompletedAt,
		CancelledAt:     t.CancelledAt,
	}
}
