package transfer

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// CancellationWindow plazo máximo para cancelar un traslado desde su creación.
const CancellationWindow = 48 * time.Hour

// Actor identifica explícitamente al usuario que ejecuta una operación.
// Las operaciones del motor nunca leen un "usuario actual" ambiente.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) isPrivileged() bool {
	return a.Role == entity.RoleAdmin || a.Role == entity.RoleManager
}

// CanCreate autoriza la creación de traslados: solo admin y manager.
func CanCreate(actor Actor) bool {
	return actor.isPrivileged()
}

// CanCancel autoriza la cancelación: el actor original o admin/manager,
// y solo dentro de la ventana de 48 horas desde la creación.
func CanCancel(actor Actor, t *entity.StockTransfer, now time.Time) bool {
	if !actor.isPrivileged() && actor.ID != t.TransferredBy {
		return false
	}
	return now.Sub(t.CreatedAt) <= CancellationWindow
}

// CanDelete autoriza el borrado del registro histórico: solo admin.
// Que el traslado esté cancelado es regla de negocio, no de autorización.
func CanDelete(actor Actor) bool {
	return actor.Role == entity.RoleAdmin
}

// CanViewStats autoriza la consulta de estadísticas: admin y manager.
func CanViewStats(actor Actor) bool {
	return actor.isPrivileged()
}
