package alerts

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// spyNotifier registra las entregas y puede fallar las primeras n veces.
type spyNotifier struct {
	mu        sync.Mutex
	failFirst int
	calls     int
	delivered []AlertEvent
}

func (n *spyNotifier) Notify(_ context.Context, event AlertEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	if n.calls <= n.failFirst {
		return errors.New("entrega fallida")
	}
	n.delivered = append(n.delivered, event)
	return nil
}

func (n *spyNotifier) snapshot() (int, []AlertEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls, append([]AlertEvent(nil), n.delivered...)
}

// newTestDispatcher arma un dispatcher con timers inmediatos para no
// esperar los retrasos reales de la política. Devuelve los retrasos
// programados y los backoffs de reintento observados.
func newTestDispatcher(notifier Notifier) (*Dispatcher, *[]time.Duration, *[]time.Duration) {
	d := NewDispatcher(notifier, logger.Nop())
	var mu sync.Mutex
	var scheduled, slept []time.Duration
	d.after = func(dur time.Duration, fn func()) *time.Timer {
		mu.Lock()
		scheduled = append(scheduled, dur)
		mu.Unlock()
		return time.AfterFunc(0, fn)
	}
	d.sleep = func(dur time.Duration) {
		mu.Lock()
		slept = append(slept, dur)
		mu.Unlock()
	}
	return d, &scheduled, &slept
}

func forwardableEvent(shortage int64) AlertEvent {
	return AlertEvent{
		InventoryItemID: "item-1",
		WarehouseID:     "wh-1",
		CurrentStock:    0,
		MinStockLevel:   shortage,
		Shortage:        shortage,
		TriggeredAt:     time.Now(),
	}
}

func TestDispatcher_EntregaEventoSobreElUmbral(t *testing.T) {
	notifier := &spyNotifier{}
	d, _, _ := newTestDispatcher(notifier)

	d.Publish(forwardableEvent(25))
	d.Close()

	calls, delivered := notifier.snapshot()
	assert.Equal(t, 1, calls)
	require.Len(t, delivered, 1)
	assert.Equal(t, int64(25), delivered[0].Shortage)
}

func TestDispatcher_FiltraQuiebresMenores(t *testing.T) {
	notifier := &spyNotifier{}
	d, _, _ := newTestDispatcher(notifier)

	d.Publish(forwardableEvent(3))
	d.Close()

	calls, _ := notifier.snapshot()
	assert.Equal(t, 0, calls, "quiebre menor a 5 no llega al notificador")
}

func TestDispatcher_ProgramaElRetrasoDeLaPolitica(t *testing.T) {
	notifier := &spyNotifier{}
	d, scheduled, _ := newTestDispatcher(notifier)

	d.Publish(forwardableEvent(12))
	d.Close()

	require.NotEmpty(t, *scheduled)
	assert.Equal(t, 300*time.Second, (*scheduled)[0], "quiebre de 12 se programa con 300s de retraso")
	calls, _ := notifier.snapshot()
	assert.Equal(t, 1, calls)
}

func TestDispatcher_SinRetrasoParaQuiebreUrgente(t *testing.T) {
	notifier := &spyNotifier{}
	d, scheduled, _ := newTestDispatcher(notifier)

	d.Publish(forwardableEvent(20))
	d.Close()

	calls, _ := notifier.snapshot()
	assert.Equal(t, 1, calls)
	assert.Empty(t, *scheduled, "quiebre >= 20 se entrega sin timer")
}

func TestDispatcher_ReintentaHastaTresVeces(t *testing.T) {
	notifier := &spyNotifier{failFirst: 2}
	d, _, slept := newTestDispatcher(notifier)

	d.Publish(forwardableEvent(20))
	d.Close()

	calls, delivered := notifier.snapshot()
	assert.Equal(t, 3, calls, "dos fallos y una entrega exitosa")
	assert.Len(t, delivered, 1)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *slept)
}

func TestDispatcher_AgotaReintentosSinPanico(t *testing.T) {
	notifier := &spyNotifier{failFirst: 10}
	d, _, _ := newTestDispatcher(notifier)

	d.Publish(forwardableEvent(20))
	d.Close()

	calls, delivered := notifier.snapshot()
	assert.Equal(t, 3, calls, "se rinde tras el tercer intento")
	assert.Empty(t, delivered)
}

func TestDispatcher_CloseDrenaLaCola(t *testing.T) {
	notifier := &spyNotifier{}
	d, _, _ := newTestDispatcher(notifier)

	for i := 0; i < 10; i++ {
		d.Publish(forwardableEvent(20))
	}
	d.Close()

	calls, _ := notifier.snapshot()
	assert.Equal(t, 10, calls, "Close espera a que el worker procese todo lo encolado")
}

// El retraso corre en un timer por evento: una alerta de severidad baja
// pendiente no frena la entrega de una urgente publicada después.
func TestDispatcher_RetrasoNoBloqueaEventosUrgentes(t *testing.T) {
	notifier := &spyNotifier{}
	d := NewDispatcher(notifier, logger.Nop())

	d.Publish(forwardableEvent(7))  // 900s de retraso
	d.Publish(forwardableEvent(20)) // inmediato

	require.Eventually(t, func() bool {
		_, delivered := notifier.snapshot()
		return len(delivered) == 1 && delivered[0].Shortage == 20
	}, 2*time.Second, 10*time.Millisecond, "la urgente se entrega mientras la retrasada sigue en espera")

	d.Close()
	_, delivered := notifier.snapshot()
	assert.Len(t, delivered, 2, "Close adelanta la entrega retrasada")
}

// Close no espera los retrasos de la política: detiene los timers
// pendientes y entrega esas alertas de inmediato.
func TestDispatcher_CierreAdelantaEntregasRetrasadas(t *testing.T) {
	notifier := &spyNotifier{}
	d := NewDispatcher(notifier, logger.Nop())

	d.Publish(forwardableEvent(7)) // 900s de retraso

	start := time.Now()
	d.Close()
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 5*time.Second, "el apagado no espera el timer de 900s")
	calls, delivered := notifier.snapshot()
	assert.Equal(t, 1, calls)
	require.Len(t, delivered, 1)
	assert.Equal(t, int64(7), delivered[0].Shortage)
}
