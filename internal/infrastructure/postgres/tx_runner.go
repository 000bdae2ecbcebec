package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Almacen-api/internal/application/transfer"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Ensure TxRunner implements transfer.TxRunner.
var _ transfer.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Los bloqueos de fila (SELECT FOR UPDATE) tomados por fn
// viven hasta el final de la transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(
	warehouseRepo repository.WarehouseRepository,
	itemRepo repository.InventoryItemRepository,
	stockRepo repository.StockRepository,
	transferRepo repository.StockTransferRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	warehouseRepo := NewWarehouseRepository(tx)
	itemRepo := NewInventoryItemRepository(tx)
	stockRepo := NewStockRepository(tx)
	transferRepo := NewStockTransferRepository(tx)

	if err := fn(warehouseRepo, itemRepo, stockRepo, transferRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
