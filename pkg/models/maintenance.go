package models

import "time"

// MaintenanceLog is the maintenance row joined with its asset and reporter.
type MaintenanceLog struct {
	ID             int        `json:"id" db:"id"`
	AssetID        int        `json:"asset_id" db:"asset_id"`
	AssetTag       *string    `json:"asset_tag,omitempty" db:"asset_tag"`
	AssetName      *string    `json:"asset_name,omitempty" db:"asset_name"`
	Issue          string     `json:"issue" db:"issue"`
	Priority       string     `json:"priority" db:"priority"`
	Status         string     `json:"status" db:"status"`
	ReportedBy     *int       `json:"reported_by,omitempty" db:"reported_by"`
	ReportedByName *string    `json:"reported_by_name,omitempty" db:"reported_by_name"`
	AssignedTo     *int       `json:"assigned_to,omitempty" db:"assigned_to"`
	ReportedAt     time.Time  `json:"reported_at" db:"reported_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	Notes          *string    `json:"notes,omitempty" db:"notes"`
}

func (m *MaintenanceLog) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   m.ID,
		ResourceType: "maintenance_log",
	}
}

type MaintenanceCreate struct {
	AssetID  int    `json:"asset_id"`
	Issue    string `json:"issue"`
	Priority string `json:"priority"`
}

type MaintenanceStatusPatch struct {
	Status     string  `json:"status"`
	Notes      *string `json:"notes"`
	AssignedTo *int    `json:"assigned_to"`
}
