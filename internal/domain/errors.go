package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El Transfer Engine falla con el error específico de cada precondición,
// nunca con uno genérico; la capa HTTP los traduce a códigos de estado.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Reglas de negocio de traslados.
	ErrWarehouseInactive = errors.New("la bodega no está activa")
	ErrStockNotFound     = errors.New("el artículo no existe en la bodega de origen")
	ErrInsufficientStock = errors.New("stock insuficiente en la bodega de origen")
	ErrCapacityExceeded  = errors.New("la bodega de destino alcanzó su capacidad máxima")
	ErrNegativeStock     = errors.New("la operación dejaría el stock en negativo")

	// Reglas de cancelación.
	ErrAlreadyCancelled             = errors.New("el traslado ya fue cancelado")
	ErrNotCancellable               = errors.New("solo se puede cancelar un traslado completado")
	ErrInsufficientStockForReversal = errors.New("la cantidad no está disponible en la bodega de destino para revertir")
	ErrNotDeletable                 = errors.New("solo se puede eliminar un traslado cancelado")

	// Guardas de borrado.
	ErrStockStillHeld = errors.New("no se puede eliminar mientras exista stock distinto de cero")
)
