package alerts

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// Notifier entrega una alerta de bajo stock a su canal de salida
// (correo, webhook, etc.). El dispatcher reintenta ante error.
type Notifier interface {
	Notify(ctx context.Context, event AlertEvent) error
}

const (
	dispatchBuffer  = 64
	deliveryRetries = 3
)

// Dispatcher consume alertas de forma asíncrona mediante un canal y un
// worker. El motor de traslados solo garantiza encolar un evento bien
// formado después del commit; entrega, reintentos y backoff son asunto
// de este componente.
//
// El retraso por severidad corre en un timer por evento, nunca en el
// worker: una alerta retrasada no frena a las que vienen detrás ni
// bloquea Publish.
type Dispatcher struct {
	ch       chan AlertEvent
	notifier Notifier
	log      *logger.Logger
	workerWg sync.WaitGroup
	inflight sync.WaitGroup
	sleep    func(time.Duration)
	after    func(time.Duration, func()) *time.Timer

	mu      sync.Mutex
	pending map[*time.Timer]AlertEvent
}

// NewDispatcher construye el dispatcher y arranca el worker.
func NewDispatcher(notifier Notifier, log *logger.Logger) *Dispatcher {
	d := &Dispatcher{
		ch:       make(chan AlertEvent, dispatchBuffer),
		notifier: notifier,
		log:      log,
		sleep:    time.Sleep,
		after:    time.AfterFunc,
		pending:  map[*time.Timer]AlertEvent{},
	}
	d.workerWg.Add(1)
	go d.worker()
	return d
}

// Publish encola una alerta. Bloquea si el buffer está lleno: el evento
// nunca se descarta una vez emitido.
func (d *Dispatcher) Publish(event AlertEvent) {
	d.ch <- event
}

// Close cierra la cola, espera a que el worker drene lo encolado,
// adelanta las entregas retrasadas pendientes y espera a que terminen.
// El apagado no espera los retrasos de la política.
func (d *Dispatcher) Close() {
	close(d.ch)
	d.workerWg.Wait()

	d.mu.Lock()
	pending := d.pending
	d.pending = map[*time.Timer]AlertEvent{}
	d.mu.Unlock()
	for timer, event := range pending {
		if timer.Stop() {
			go func(ev AlertEvent) {
				defer d.inflight.Done()
				d.deliver(ev)
			}(event)
		}
	}
	d.inflight.Wait()
}

func (d *Dispatcher) worker() {
	defer d.workerWg.Done()
	for event := range d.ch {
		d.process(event)
	}
}

func (d *Dispatcher) process(event AlertEvent) {
	d.log.Warn().
		Str("inventory_item_id", event.InventoryItemID).
		Str("warehouse_id", event.WarehouseID).
		Int64("current_stock", event.CurrentStock).
		Int64("min_stock_level", event.MinStockLevel).
		Int64("shortage", event.Shortage).
		Msg("bajo stock detectado")

	if !ShouldForward(event) {
		d.log.Debug().
			Str("inventory_item_id", event.InventoryItemID).
			Int64("shortage", event.Shortage).
			Msg("alerta por debajo del umbral de envío, no se notifica")
		return
	}

	delay := ForwardDelay(event)
	d.inflight.Add(1)
	if delay == 0 {
		go func() {
			defer d.inflight.Done()
			d.deliver(event)
		}()
		return
	}

	d.mu.Lock()
	var timer *time.Timer
	timer = d.after(delay, func() {
		defer d.inflight.Done()
		d.mu.Lock()
		delete(d.pending, timer)
		d.mu.Unlock()
		d.deliver(event)
	})
	d.pending[timer] = event
	d.mu.Unlock()
}

func (d *Dispatcher) deliver(event AlertEvent) {
	var err error
	for attempt := 1; attempt <= deliveryRetries; attempt++ {
		if err = d.notifier.Notify(context.Background(), event); err == nil {
			return
		}
		d.log.Warn().Err(err).
			Int("attempt", attempt).
			Str("inventory_item_id", event.InventoryItemID).
			Msg("fallo al entregar la notificación, reintentando")
		d.sleep(time.Duration(attempt) * time.Second)
	}
	d.log.Error().Err(err).
		Str("inventory_item_id", event.InventoryItemID).
		Str("warehouse_id", event.WarehouseID).
		Msg("no se pudo entregar la notificación de bajo stock")
}
