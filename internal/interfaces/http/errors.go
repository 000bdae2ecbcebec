package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// statusFor mapea errores de dominio a códigos HTTP: 404 para ausencias,
// 401/403 para auth, 422 para validación y reglas de negocio, 500 para el resto.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrWarehouseInactive),
		errors.Is(err, domain.ErrStockNotFound),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrNegativeStock),
		errors.Is(err, domain.ErrAlreadyCancelled),
		errors.Is(err, domain.ErrNotCancellable),
		errors.Is(err, domain.ErrInsufficientStockForReversal),
		errors.Is(err, domain.ErrNotDeletable),
		errors.Is(err, domain.ErrStockStillHeld):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// fail responde el sobre de error. Los errores internos no exponen su detalle.
func fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.APIResponse{Success: false, Message: msg})
}

func ok(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.APIResponse{Success: true, Message: message, Data: data})
}

func validationError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.APIResponse{Success: false, Message: message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{Success: false, Message: message})
}

// badBody responde 422: un cuerpo malformado es un error de validación,
// igual que un campo faltante.
func badBody(c *fiber.Ctx) error {
	return validationError(c, "cuerpo inválido")
}
