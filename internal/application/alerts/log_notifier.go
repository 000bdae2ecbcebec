package alerts

import (
	"context"

	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// LogNotifier entrega las alertas al log estructurado (entrega simulada).
// Reemplazable por un notificador real (correo, webhook) sin tocar el dispatcher.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador de log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify registra la alerta como enviada.
func (n *LogNotifier) Notify(_ context.Context, event AlertEvent) error {
	n.log.Info().
		Str("item", event.ItemName).
		Str("sku", event.ItemSKU).
		Str("warehouse", event.WarehouseName).
		Int64("current_stock", event.CurrentStock).
		Int64("min_stock_level", event.MinStockLevel).
		Int64("shortage", event.Shortage).
		Msg("notificación de bajo stock enviada (simulada)")
	return nil
}
