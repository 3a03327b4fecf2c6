package domain

import "github.com/shopspring/decimal"

type UserStats struct {
	Total  int64 `json:"total"`
	Recent int64 `json:"recent"`
	Active int64 `json:"active"`
}

type InventoryStats struct {
	Total      int64           `json:"total"`
	LowStock   int64           `json:"lowStock"`
	TotalValue decimal.Decimal `json:"totalValue" swaggertype:"string"`
}

type LoginStats struct {
	Today int64 `json:"today"`
	Week  int64 `json:"week"`
}

// DashboardStats is the admin overview. It is only ever returned whole.
type DashboardStats struct {
	Users     UserStats        `json:"users"`
	Inventory InventoryStats   `json:"inventory"`
	Activity  []ActivityRecord `json:"activity"`
	Logins    LoginStats       `json:"logins"`
}
