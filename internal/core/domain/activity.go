package domain

import "time"

// ActivityType enumerates the user actions that are audited.
type ActivityType string

const (
	ActivityRegistration    ActivityType = "REGISTRATION"
	ActivityLogin           ActivityType = "LOGIN"
	ActivityLogout          ActivityType = "LOGOUT"
	ActivityInventoryAdd    ActivityType = "INVENTORY_ADD"
	ActivityInventoryDelete ActivityType = "INVENTORY_DELETE"
)

// ActivityRecord is an append-only audit entry. When InventoryID is set the
// record also produces an inventory_logs row.
type ActivityRecord struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"user_id"`
	Type        ActivityType `json:"activity_type"`
	Description string       `json:"activity_description"`
	CreatedAt   time.Time    `json:"created_at"`
	Username    string       `json:"username,omitempty"`
	InventoryID *int64       `json:"-"`
}

// InventoryAction maps inventory activity types to the inventory_logs action
// column. Other types return "".
func (t ActivityType) InventoryAction() string {
	switch t {
	case ActivityInventoryAdd:
		return "ADD"
	case ActivityInventoryDelete:
		return "DELETE"
	}
	return ""
}
