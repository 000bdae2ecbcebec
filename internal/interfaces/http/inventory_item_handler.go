package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// InventoryItemHandler maneja las peticiones HTTP para artículos (protegido).
type InventoryItemHandler struct {
	uc *usecase.InventoryItemUseCase
}

// NewInventoryItemHandler construye el handler.
func NewInventoryItemHandler(uc *usecase.InventoryItemUseCase) *InventoryItemHandler {
	return &InventoryItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear artículo
// @Tags         inventory-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.APIResponse
// @Failure      422   {object}  dto.APIResponse
// @Router       /api/inventory [post]
func (h *InventoryItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" || in.SKU == "" {
		return validationError(c, "name y sku son requeridos")
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, "artículo creado", out)
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         inventory-items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "artículo no encontrado")
	}
	return ok(c, fiber.StatusOK, "", out)
}

// List godoc
// @Summary      Listar artículos
// @Tags         inventory-items
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Búsqueda por nombre o SKU"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.APIResponse
// @Router       /api/inventory [get]
func (h *InventoryItemHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Query("search"), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "", out)
}

// Update godoc
// @Summary      Actualizar artículo
// @Tags         inventory-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID del artículo"
// @Param        body  body  dto.UpdateInventoryItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "artículo no encontrado")
	}
	return ok(c, fiber.StatusOK, "artículo actualizado", out)
}

// GetStats godoc
// @Summary      Resumen del artículo a través de las bodegas
// @Tags         inventory-items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/inventory/{id}/stats [get]
func (h *InventoryItemHandler) GetStats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "artículo no encontrado")
	}
	return ok(c, fiber.StatusOK, "", out)
}

// Delete godoc
// @Summary      Eliminar artículo
// @Tags         inventory-items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.APIResponse
// @Failure      422  {object}  dto.APIResponse
// @Router       /api/inventory/{id} [delete]
func (h *InventoryItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "artículo eliminado", nil)
}

// pageParams normaliza limit/offset de query (límite máximo 100).
func pageParams(c *fiber.Ctx) (int, int) {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
