package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/alerts"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// TransferUseCase es el motor de traslados: debita la bodega de origen,
// acredita la de destino y registra el traslado en una sola transacción con
// bloqueo de filas (SELECT FOR UPDATE). La detección de bajo stock corre
// dentro de la transacción sobre los valores post-mutación; la invalidación
// de caché y la publicación de alertas ocurren solo después del commit.
type TransferUseCase struct {
	txRunner     TxRunner
	transferRepo repository.StockTransferRepository
	cache        CacheInvalidator
	alertsOut    AlertPublisher
	statsCache   StatsCache
	log          *logger.Logger
	now          func() time.Time
}

// NewTransferUseCase construye el motor. transferRepo va atado al pool
// (lecturas fuera de transacción); las escrituras pasan por txRunner.
func NewTransferUseCase(
	txRunner TxRunner,
	transferRepo repository.StockTransferRepository,
	cache CacheInvalidator,
	alertsOut AlertPublisher,
	statsCache StatsCache,
	log *logger.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:     txRunner,
		transferRepo: transferRepo,
		cache:        cache,
		alertsOut:    alertsOut,
		statsCache:   statsCache,
		log:          log,
		now:          time.Now,
	}
}

// TransferInput entrada para ejecutar un traslado. Actor es explícito:
// el motor no lee el usuario de ningún contexto ambiente.
type TransferInput struct {
	FromWarehouseID string
	ToWarehouseID   string
	InventoryItemID string
	Quantity        int64
	Notes           string
	Actor           Actor
}

// Execute mueve Quantity unidades del artículo entre las dos bodegas.
//
// Orden dentro de la transacción: bloqueo de las dos filas de bodega en orden
// ascendente de id (evita ciclos de deadlock entre traslados opuestos), carga
// del artículo, validación de bodegas activas, bloqueo del stock de origen,
// chequeos de stock suficiente y capacidad de destino, débito/crédito vía el
// libro de stock, inserción del registro completed y detección de bajo stock
// sobre las filas resultantes. Cualquier fallo revierte todo; ninguna
// mutación parcial es observable y no se emite ningún efecto secundario.
func (uc *TransferUseCase) Execute(ctx context.Context, in TransferInput) (*entity.StockTransfer, error) {
	if !CanCreate(in.Actor) {
		return nil, domain.ErrForbidden
	}
	if in.FromWarehouseID == "" || in.ToWarehouseID == "" || in.InventoryItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.FromWarehouseID == in.ToWarehouseID || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	var (
		created *entity.StockTransfer
		events  []alerts.AlertEvent
	)

	err := uc.txRunner.Run(ctx, func(
		warehouseRepo repository.WarehouseRepository,
		itemRepo repository.InventoryItemRepository,
		stockRepo repository.StockRepository,
		transferRepo repository.StockTransferRepository,
	) error {
		from, to, err := lockWarehousePair(warehouseRepo, in.FromWarehouseID, in.ToWarehouseID)
		if err != nil {
			return err
		}

		item, err := itemRepo.GetByID(in.InventoryItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		if !from.IsActive || !to.IsActive {
			return domain.ErrWarehouseInactive
		}

		source, err := stockRepo.GetForUpdate(from.ID, item.ID)
		if err != nil {
			return err
		}
		if source == nil {
			return domain.ErrStockNotFound
		}
		if source.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}

		destTotal, err := stockRepo.TotalByWarehouse(to.ID)
		if err != nil {
			return err
		}
		if !to.HasCapacityFor(destTotal, in.Quantity) {
			return domain.ErrCapacityExceeded
		}

		sourceAfter, err := stockRepo.Adjust(from.ID, item.ID, -in.Quantity)
		if err != nil {
			return err
		}
		// Creación perezosa del destino en 0; el UPDATE de Adjust toma el bloqueo de fila.
		if err := stockRepo.Ensure(to.ID, item.ID); err != nil {
			return err
		}
		destAfter, err := stockRepo.Adjust(to.ID, item.ID, in.Quantity)
		if err != nil {
			return err
		}

		completedAt := now
		created = &entity.StockTransfer{
			ID:              uuid.New().String(),
			FromWarehouseID: from.ID,
			ToWarehouseID:   to.ID,
			InventoryItemID: item.ID,
			Quantity:        in.Quantity,
			Status:          entity.TransferStatusCompleted,
			Notes:           in.Notes,
			TransferredBy:   in.Actor.ID,
			CreatedAt:       now,
			CompletedAt:     &completedAt,
		}
		if err := transferRepo.Create(created); err != nil {
			return err
		}

		// Detección sobre los valores post-mutación de ambas filas.
		if ev := alerts.Detect(sourceAfter, item, from); ev != nil {
			events = append(events, *ev)
		}
		if ev := alerts.Detect(destAfter, item, to); ev != nil {
			events = append(events, *ev)
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).
			Str("from_warehouse_id", in.FromWarehouseID).
			Str("to_warehouse_id", in.ToWarehouseID).
			Str("inventory_item_id", in.InventoryItemID).
			Int64("quantity", in.Quantity).
			Str("user_id", in.Actor.ID).
			Msg("traslado de stock fallido")
		return nil, err
	}

	// Efectos secundarios estrictamente después del commit: nunca se señala
	// un cambio que luego podría revertirse.
	uc.invalidateWarehouses(ctx, created.FromWarehouseID, created.ToWarehouseID)
	for _, ev := range events {
		uc.alertsOut.Publish(ev)
	}

	uc.log.Info().
		Str("transfer_id", created.ID).
		Str("from_warehouse_id", created.FromWarehouseID).
		Str("to_warehouse_id", created.ToWarehouseID).
		Str("inventory_item_id", created.InventoryItemID).
		Int64("quantity", created.Quantity).
		Str("user_id", in.Actor.ID).
		Msg("traslado de stock completado")

	return created, nil
}

// Cancel revierte un traslado completado: devuelve la cantidad al origen y la
// descuenta del destino, en una transacción con ambas filas de stock
// bloqueadas. No se re-ejecuta la detección de bajo stock al cancelar.
func (uc *TransferUseCase) Cancel(ctx context.Context, transferID string, actor Actor) (*entity.StockTransfer, error) {
	now := uc.now()
	var cancelled *entity.StockTransfer

	err := uc.txRunner.Run(ctx, func(
		_ repository.WarehouseRepository,
		_ repository.InventoryItemRepository,
		stockRepo repository.StockRepository,
		transferRepo repository.StockTransferRepository,
	) error {
		t, err := transferRepo.GetByIDForUpdate(transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.Status == entity.TransferStatusCancelled {
			return domain.ErrAlreadyCancelled
		}
		if t.Status != entity.TransferStatusCompleted {
			return domain.ErrNotCancellable
		}
		if !CanCancel(actor, t, now) {
			return domain.ErrForbidden
		}

		// Mismo orden de bloqueo que en Execute: id de bodega ascendente.
		if err := lockStockPair(stockRepo, t); err != nil {
			return err
		}

		dest, err := stockRepo.Get(t.ToWarehouseID, t.InventoryItemID)
		if err != nil {
			return err
		}
		if dest == nil || dest.Quantity < t.Quantity {
			// Traslados posteriores pudieron consumir el destino.
			return domain.ErrInsufficientStockForReversal
		}

		if _, err := stockRepo.Adjust(t.ToWarehouseID, t.InventoryItemID, -t.Quantity); err != nil {
			return err
		}
		if _, err := stockRepo.Adjust(t.FromWarehouseID, t.InventoryItemID, t.Quantity); err != nil {
			return err
		}

		cancelledAt := now
		t.Status = entity.TransferStatusCancelled
		t.CancelledAt = &cancelledAt
		t.CancelledBy = actor.ID
		if err := transferRepo.MarkCancelled(t); err != nil {
			return err
		}
		cancelled = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateWarehouses(ctx, cancelled.FromWarehouseID, cancelled.ToWarehouseID)

	uc.log.Info().
		Str("transfer_id", cancelled.ID).
		Str("user_id", actor.ID).
		Msg("traslado de stock cancelado")

	return cancelled, nil
}

// GetByID obtiene un traslado por id (nil si no existe).
func (uc *TransferUseCase) GetByID(_ context.Context, id string) (*entity.StockTransfer, error) {
	return uc.transferRepo.GetByID(id)
}

// List lista traslados con filtros y paginación.
func (uc *TransferUseCase) List(_ context.Context, filter repository.TransferFilter, limit, offset int) ([]*entity.StockTransfer, int64, error) {
	return uc.transferRepo.List(filter, limit, offset)
}

// Stats devuelve los agregados de traslados, cacheados con TTL corto.
func (uc *TransferUseCase) Stats(ctx context.Context, actor Actor) (*repository.TransferStats, error) {
	if !CanViewStats(actor) {
		return nil, domain.ErrForbidden
	}
	if uc.statsCache != nil {
		if stats, err := uc.statsCache.GetTransferStats(ctx); err == nil && stats != nil {
			return stats, nil
		}
	}
	stats, err := uc.transferRepo.Stats()
	if err != nil {
		return nil, err
	}
	if uc.statsCache != nil {
		if err := uc.statsCache.SetTransferStats(ctx, stats); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo cachear stats de traslados")
		}
	}
	return stats, nil
}

// Delete elimina el registro histórico de un traslado cancelado (solo admin).
func (uc *TransferUseCase) Delete(_ context.Context, transferID string, actor Actor) error {
	if !CanDelete(actor) {
		return domain.ErrForbidden
	}
	t, err := uc.transferRepo.GetByID(transferID)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	if t.Status != entity.TransferStatusCancelled {
		return domain.ErrNotDeletable
	}
	return uc.transferRepo.Delete(transferID)
}

// lockWarehousePair bloquea las dos bodegas en orden ascendente de id y
// devuelve (from, to) ya mapeadas. ErrNotFound si alguna no existe.
func lockWarehousePair(repo repository.WarehouseRepository, fromID, toID string) (from, to *entity.Warehouse, err error) {
	firstID, secondID := fromID, toID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}
	first, err := repo.GetByIDForUpdate(firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := repo.GetByIDForUpdate(secondID)
	if err != nil {
		return nil, nil, err
	}
	if first == nil || second == nil {
		return nil, nil, domain.ErrNotFound
	}
	if first.ID == fromID {
		return first, second, nil
	}
	return second, first, nil
}

// lockStockPair bloquea las filas de stock del traslado en orden ascendente
// de id de bodega. Filas ausentes no son error aquí: la verificación de
// cantidad decide después.
func lockStockPair(repo repository.StockRepository, t *entity.StockTransfer) error {
	firstWh, secondWh := t.FromWarehouseID, t.ToWarehouseID
	if secondWh < firstWh {
		firstWh, secondWh = secondWh, firstWh
	}
	if _, err := repo.GetForUpdate(firstWh, t.InventoryItemID); err != nil {
		return err
	}
	_, err := repo.GetForUpdate(secondWh, t.InventoryItemID)
	return err
}

func (uc *TransferUseCase) invalidateWarehouses(ctx context.Context, warehouseIDs ...string) {
	for _, id := range warehouseIDs {
		if err := uc.cache.InvalidateWarehouseInventory(ctx, id); err != nil {
			uc.log.Warn().Err(err).Str("warehouse_id", id).Msg("no se pudo invalidar la caché de inventario")
		}
	}
}
