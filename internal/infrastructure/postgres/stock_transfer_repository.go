package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockTransferRepository = (*StockTransferRepo)(nil)

// StockTransferRepo implementación del puerto StockTransferRepository sobre PostgreSQL.
type StockTransferRepo struct {
	q Querier
}

// NewStockTransferRepository construye el adaptador de persistencia para traslados.
func NewStockTransferRepository(q Querier) *StockTransferRepo {
	return &StockTransferRepo{q: q}
}

const transferColumns = `id, from_warehouse_id, to_warehouse_id, inventory_item_id, quantity,
	status, notes, transferred_by, COALESCE(cancelled_by, ''), created_at, completed_at, cancelled_at`

// Create persiste el registro de un traslado.
func (r *StockTransferRepo) Create(t *entity.StockTransfer) error {
	query := `
		INSERT INTO stock_transfers
			(id, from_warehouse_id, to_warehouse_id, inventory_item_id, quantity,
			 status, notes, transferred_by, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.FromWarehouseID, t.ToWarehouseID, t.InventoryItemID, t.Quantity,
		t.Status, t.Notes, t.TransferredBy, t.CreatedAt, t.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID (nil si no existe).
func (r *StockTransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM stock_transfers WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByIDForUpdate obtiene el traslado y bloquea su fila durante la cancelación,
// de modo que dos cancelaciones concurrentes se serialicen.
func (r *StockTransferRepo) GetByIDForUpdate(id string) (*entity.StockTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM stock_transfers WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// MarkCancelled persiste la transición completed -> cancelled.
func (r *StockTransferRepo) MarkCancelled(t *entity.StockTransfer) error {
	query := `
		UPDATE stock_transfers
		SET status = $2, cancelled_at = $3, cancelled_by = $4
		WHERE id = $1 AND status = 'completed'`
	cmd, err := r.q.Exec(context.Background(), query, t.ID, t.Status, t.CancelledAt, t.CancelledBy)
	if err != nil {
		return fmt.Errorf("cancel stock transfer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("cancel stock transfer: fila no actualizada")
	}
	return nil
}

// List lista traslados con filtros y paginación; devuelve también el total.
func (r *StockTransferRepo) List(filter repository.TransferFilter, limit, offset int) ([]*entity.StockTransfer, int64, error) {
	where := ` FROM stock_transfers WHERE 1=1`
	args := []any{}
	add := func(cond string, v any) {
		args = append(args, v)
		where += fmt.Sprintf(" AND "+cond, len(args))
	}
	if filter.FromWarehouseID != "" {
		add("from_warehouse_id = $%d", filter.FromWarehouseID)
	}
	if filter.ToWarehouseID != "" {
		add("to_warehouse_id = $%d", filter.ToWarehouseID)
	}
	if filter.InventoryItemID != "" {
		add("inventory_item_id = $%d", filter.InventoryItemID)
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.TransferredBy != "" {
		add("transferred_by = $%d", filter.TransferredBy)
	}
	if filter.DateFrom != nil {
		add("created_at >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add("created_at <= $%d", *filter.DateTo)
	}

	var total int64
	if err := r.q.QueryRow(context.Background(), `SELECT count(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock transfers: %w", err)
	}

	args = append(args, limit, offset)
	query := `SELECT ` + transferColumns + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

// CountByItem cuenta los traslados que involucran al artículo.
func (r *StockTransferRepo) CountByItem(itemID string) (int64, error) {
	query := `SELECT count(*) FROM stock_transfers WHERE inventory_item_id = $1`
	var n int64
	if err := r.q.QueryRow(context.Background(), query, itemID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stock transfers by item: %w", err)
	}
	return n, nil
}

// Stats calcula los agregados del historial de traslados.
func (r *StockTransferRepo) Stats() (*repository.TransferStats, error) {
	query := `
		SELECT
			count(*),
			count(*) FILTER (WHERE status = 'completed'),
			count(*) FILTER (WHERE status = 'cancelled'),
			count(*) FILTER (WHERE status = 'pending'),
			COALESCE(SUM(quantity) FILTER (WHERE status = 'completed'), 0),
			count(*) FILTER (WHERE created_at::date = now()::date)
		FROM stock_transfers`
	var s repository.TransferStats
	err := r.q.QueryRow(context.Background(), query).Scan(
		&s.TotalTransfers, &s.CompletedTransfers, &s.CancelledTransfers,
		&s.PendingTransfers, &s.TotalQuantityTransferred, &s.TransfersToday,
	)
	if err != nil {
		return nil, fmt.Errorf("stock transfer stats: %w", err)
	}

	mostActive := `
		SELECT w.id, w.name, count(t.id) AS total
		FROM warehouses w
		JOIN stock_transfers t ON t.from_warehouse_id = w.id OR t.to_warehouse_id = w.id
		GROUP BY w.id, w.name
		ORDER BY total DESC
		LIMIT 1`
	var wa repository.WarehouseActivity
	err = r.q.QueryRow(context.Background(), mostActive).Scan(&wa.WarehouseID, &wa.Name, &wa.TotalTransfers)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("most active warehouse: %w", err)
		}
	} else {
		s.MostActiveWarehouse = &wa
	}
	return &s, nil
}

// Delete elimina el registro de un traslado.
func (r *StockTransferRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_transfers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock transfer: %w", err)
	}
	return nil
}

func (r *StockTransferRepo) scanOne(query, id string) (*entity.StockTransfer, error) {
	t, err := scanTransfer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func scanTransfer(row pgx.Row) (*entity.StockTransfer, error) {
	var t entity.StockTransfer
	err := row.Scan(
		&t.ID, &t.FromWarehouseID, &t.ToWarehouseID, &t.InventoryItemID, &t.Quantity,
		&t.Status, &t.Notes, &t.TransferredBy, &t.CancelledBy, &t.CreatedAt, &t.CompletedAt, &t.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan stock transfer: %w", err)
	}
	return &t, nil
}
