package ports

import (
	"context"

	"github.com/capsule/retail-inventory/internal/core/domain"
)

// ActivityRepository persists audit data. Append writes one user_activity row;
// AppendInventoryLog writes one inventory_logs row.
type ActivityRepository interface {
	Append(ctx context.Context, rec domain.ActivityRecord) error
	AppendInventoryLog(ctx context.Context, userID, inventoryID int64, action string) error
	Recent(ctx context.Context, limit int) ([]domain.ActivityRecord, error)
	RecentInventoryLogs(ctx context.Context, limit int) ([]domain.InventoryLog, error)
}

// ActivityRecorder is the fire-and-forget side channel used by services. It
// never reports failure to the caller.
type ActivityRecorder interface {
	Record(ctx context.Context, rec domain.ActivityRecord)
}
