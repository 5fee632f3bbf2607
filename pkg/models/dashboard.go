package models

import "time"

type DashboardStats struct {
	TotalAssets      int `json:"totalAssets" db:"total_assets"`
	AvailableAssets  int `json:"availableAssets" db:"available_assets"`
	BorrowedAssets   int `json:"borrowedAssets" db:"borrowed_assets"`
	UnderMaintenance int `json:"underMaintenance" db:"under_maintenance"`
	OverdueReturns   int `json:"overdueReturns" db:"overdue_returns"`
}

// ActivityEntry is one row of the merged recent-activity feed built from
// borrowing request lifecycle events and asset registrations.
type ActivityEntry struct {
	EventTime time.Time `json:"event_time" db:"event_time"`
	Date      string    `json:"date" db:"date"`
	Action    string    `json:"action" db:"action"`
	AssetTag  *string   `json:"asset,omitempty" db:"asset"`
	Actor     *string   `json:"user,omitempty" db:"actor"`
}
