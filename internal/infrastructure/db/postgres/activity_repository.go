package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/capsule/retail-inventory/internal/core/domain"
)

type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Append(ctx context.Context, rec domain.ActivityRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO user_activity (user_id, activity_type, activity_description) VALUES ($1, $2, $3)",
		rec.UserID, string(rec.Type), rec.Description,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) AppendInventoryLog(ctx context.Context, userID, inventoryID int64, action string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO inventory_logs (user_id, inventory_id, action) VALUES ($1, $2, $3)",
		userID, inventoryID, action,
	)
	if err != nil {
		return fmt.Errorf("insert inventory log: %w", err)
	}
	return nil
}

// Recent returns the newest activity records joined with their username.
func (r *ActivityRepository) Recent(ctx context.Context, limit int) ([]domain.ActivityRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT ua.id, ua.user_id, ua.activity_type, COALESCE(ua.activity_description, ''), ua.created_at, u.username
FROM user_activity ua
JOIN users u ON ua.user_id = u.id
ORDER BY ua.created_at DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	out := []domain.ActivityRecord{}
	for rows.Next() {
		var (
			rec          domain.ActivityRecord
			activityType string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &activityType, &rec.Description, &rec.CreatedAt, &rec.Username); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		rec.Type = domain.ActivityType(activityType)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}
	return out, nil
}

// RecentInventoryLogs returns the newest inventory log rows. Items deleted
// since have a nil ItemName.
func (r *ActivityRepository) RecentInventoryLogs(ctx context.Context, limit int) ([]domain.InventoryLog, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT il.id, il.user_id, il.inventory_id, il.action, il.created_at, u.username, i.name
FROM inventory_logs il
JOIN users u ON il.user_id = u.id
LEFT JOIN inventory i ON il.inventory_id = i.id
ORDER BY il.created_at DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query inventory logs: %w", err)
	}
	defer rows.Close()

	out := []domain.InventoryLog{}
	for rows.Next() {
		var (
			l           domain.InventoryLog
			inventoryID sql.NullInt64
			itemName    sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.UserID, &inventoryID, &l.Action, &l.CreatedAt, &l.Username, &itemName); err != nil {
			return nil, fmt.Errorf("scan inventory log: %w", err)
		}
		if inventoryID.Valid {
			id := inventoryID.Int64
			l.InventoryID = &id
		}
		if itemName.Valid {
			name := itemName.String
			l.ItemName = &name
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory logs: %w", err)
	}
	return out, nil
}
