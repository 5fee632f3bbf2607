package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMaintenanceStatus(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected MaintenanceStatus
		wantErr  bool
	}{
		{name: "Pending", value: "pending", expected: MaintenancePending},
		{name: "Open collapses to pending", value: "open", expected: MaintenancePending},
		{name: "In progress", value: "in_progress", expected: MaintenanceInProgress},
		{name: "Completed", value: "completed", expected: MaintenanceCompleted},
		{name: "Complete collapses to completed", value: "Complete", expected: MaintenanceCompleted},
		{name: "Whitespace trimmed", value: "  PENDING ", expected: MaintenancePending},
		{name: "Unknown rejected", value: "broken", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := NewMaintenanceStatus(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestMaintenanceStatusIsActive(t *testing.T) {
	assert.True(t, MaintenancePending.IsActive())
	assert.True(t, MaintenanceInProgress.IsActive())
	assert.False(t, MaintenanceCompleted.IsActive())
}
