package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/capsule/retail-inventory/internal/core/domain"
)

const itemColumns = "id, name, quantity, price, COALESCE(category, ''), COALESCE(supplier, '')"

type InventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO inventory (name, quantity, price, category, supplier) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		item.Name, item.Quantity, item.Price, item.Category, item.Supplier,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}
	item.ID = id
	return id, nil
}

func (r *InventoryRepository) FindByID(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	var it domain.InventoryItem
	err := r.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM inventory WHERE id = $1", id,
	).Scan(&it.ID, &it.Name, &it.Quantity, &it.Price, &it.Category, &it.Supplier)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}
	return &it, nil
}

// Delete removes the row and reports how many rows were affected.
func (r *InventoryRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM inventory WHERE id = $1", id)
	if err != nil {
		return 0, fmt.Errorf("delete item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete item: rows affected: %w", err)
	}
	return n, nil
}

func (r *InventoryRepository) List(ctx context.Context) ([]domain.InventoryItem, error) {
	return r.queryItems(ctx, "SELECT "+itemColumns+" FROM inventory ORDER BY id")
}

func (r *InventoryRepository) ListBelow(ctx context.Context, quantity int) ([]domain.InventoryItem, error) {
	return r.queryItems(ctx, "SELECT "+itemColumns+" FROM inventory WHERE quantity < $1 ORDER BY id", quantity)
}

func (r *InventoryRepository) ListAbove(ctx context.Context, quantity int) ([]domain.InventoryItem, error) {
	return r.queryItems(ctx, "SELECT "+itemColumns+" FROM inventory WHERE quantity > $1 ORDER BY id", quantity)
}

func (r *InventoryRepository) Names(ctx context.Context) ([]string, error) {
	return r.queryStrings(ctx, "SELECT name FROM inventory ORDER BY id")
}

func (r *InventoryRepository) DistinctSuppliers(ctx context.Context) ([]string, error) {
	return r.queryStrings(ctx,
		"SELECT DISTINCT supplier FROM inventory WHERE supplier IS NOT NULL AND supplier <> '' ORDER BY supplier")
}

func (r *InventoryRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	return r.queryStrings(ctx,
		"SELECT DISTINCT category FROM inventory WHERE category IS NOT NULL AND category <> '' ORDER BY category")
}

func (r *InventoryRepository) queryItems(ctx context.Context, query string, args ...any) ([]domain.InventoryItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	out := []domain.InventoryItem{}
	for rows.Next() {
		var it domain.InventoryItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Quantity, &it.Price, &it.Category, &it.Supplier); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return out, nil
}

func (r *InventoryRepository) queryStrings(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory: %w", err)
	}
	return out, nil
}
