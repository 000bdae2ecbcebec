package alerts

import "time"

// Política de envío de alertas: solo se entregan quiebres de 5 o más
// unidades, y el retraso depende de la severidad del quiebre.
const (
	forwardThreshold = 5
	urgentShortage   = 20
	highShortage     = 10

	highDelay   = 300 * time.Second
	normalDelay = 900 * time.Second
)

// ShouldForward indica si la alerta debe entregarse al notificador.
func ShouldForward(e AlertEvent) bool {
	return e.Shortage >= forwardThreshold
}

// ForwardDelay devuelve el retraso de entrega según severidad:
// quiebre >= 20 inmediato, >= 10 espera 300s, el resto 900s.
func ForwardDelay(e AlertEvent) time.Duration {
	switch {
	case e.Shortage >= urgentShortage:
		return 0
	case e.Shortage >= highShortage:
		return highDelay
	default:
		return normalDelay
	}
}
