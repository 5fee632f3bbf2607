package metadata

import (
	"strings"

	custom_error "assetdesk/pkg/errors"
)

type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "pending"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
)

// NewMaintenanceStatus collapses accepted synonyms to the canonical value:
// "open" and "pending" become pending, "complete" and "completed" become
// completed. Anything else is rejected.
func NewMaintenanceStatus(value string) (MaintenanceStatus, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "open", "pending":
		return MaintenancePending, nil
	case "in_progress":
		return MaintenanceInProgress, nil
	case "complete", "completed":
		return MaintenanceCompleted, nil
	default:
		return "", custom_error.NewValidationError("invalid maintenance status: " + value)
	}
}

// IsActive reports whether the record still blocks new maintenance on the asset.
func (s MaintenanceStatus) IsActive() bool {
	return s == MaintenancePending || s == MaintenanceInProgress
}

func (s MaintenanceStatus) String() string {
	return string(s)
}
