package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación del puerto InventoryItemRepository sobre PostgreSQL.
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador de persistencia para artículos.
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

// Create persiste un nuevo artículo. ErrDuplicate si el SKU ya existe (23505).
func (r *InventoryItemRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, name, sku, description, price, min_stock_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.SKU, item.Description, item.Price,
		item.MinStockLevel, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID (nil si no existe).
func (r *InventoryItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `
		SELECT id, name, sku, description, price, min_stock_level, created_at, updated_at
		FROM inventory_items WHERE id = $1`
	return r.scanOne(query, id)
}

// GetBySKU obtiene un artículo por SKU (nil si no existe).
func (r *InventoryItemRepo) GetBySKU(sku string) (*entity.InventoryItem, error) {
	query := `
		SELECT id, name, sku, description, price, min_stock_level, created_at, updated_at
		FROM inventory_items WHERE sku = $1`
	return r.scanOne(query, sku)
}

// Update actualiza un artículo existente. ErrDuplicate si el nuevo SKU choca.
func (r *InventoryItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, sku = $3, description = $4, price = $5, min_stock_level = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.SKU, item.Description, item.Price,
		item.MinStockLevel, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// List lista artículos con búsqueda por nombre/SKU y paginación; devuelve
// también el total de filas que calzan con la búsqueda.
func (r *InventoryItemRepo) List(search string, limit, offset int) ([]*entity.InventoryItem, int64, error) {
	where := ` FROM inventory_items WHERE 1=1`
	args := []any{}
	if search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (name ILIKE $%d OR sku ILIKE $%d)", n, n)
	}

	var total int64
	if err := r.q.QueryRow(context.Background(), `SELECT count(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inventory items: %w", err)
	}

	args = append(args, limit, offset)
	query := `SELECT id, name, sku, description, price, min_stock_level, created_at, updated_at` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(&it.ID, &it.Name, &it.SKU, &it.Description, &it.Price, &it.MinStockLevel, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, &it)
	}
	return list, total, rows.Err()
}

// Delete elimina un artículo por ID.
func (r *InventoryItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return nil
}

func (r *InventoryItemRepo) scanOne(query, arg string) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&it.ID, &it.Name, &it.SKU, &it.Description, &it.Price, &it.MinStockLevel, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return &it, nil
}
