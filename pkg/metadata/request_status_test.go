package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRequestStatus(t *testing.T) {
	status, err := NewRequestStatus("approved")
	assert.NoError(t, err)
	assert.Equal(t, RequestApproved, status)

	status, err = NewRequestStatus("  RETURNED_DAMAGED ")
	assert.NoError(t, err)
	assert.True(t, status.IsReturned())

	_, err = NewRequestStatus("LOST")
	assert.Error(t, err)
}

func TestRequestStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    RequestStatus
		to      RequestStatus
		allowed bool
	}{
		{name: "Pending to approved", from: RequestPending, to: RequestApproved, allowed: true},
		{name: "Pending to rejected", from: RequestPending, to: RequestRejected, allowed: true},
		{name: "Pending to cancelled", from: RequestPending, to: RequestCancelled, allowed: true},
		{name: "Pending straight to issued", from: RequestPending, to: RequestIssued, allowed: false},
		{name: "Approved to issued", from: RequestApproved, to: RequestIssued, allowed: true},
		{name: "Approved to cancelled", from: RequestApproved, to: RequestCancelled, allowed: false},
		{name: "Issued to returned", from: RequestIssued, to: RequestReturned, allowed: true},
		{name: "Issued to returned damaged", from: RequestIssued, to: RequestStatus("RETURNED_DAMAGED"), allowed: true},
		{name: "Issued back to pending", from: RequestIssued, to: RequestPending, allowed: false},
		{name: "Returned is terminal", from: RequestReturned, to: RequestIssued, allowed: false},
		{name: "Rejected is terminal", from: RequestRejected, to: RequestApproved, allowed: false},
		{name: "Cancelled is terminal", from: RequestCancelled, to: RequestApproved, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestRequestStatusTerminal(t *testing.T) {
	assert.True(t, RequestRejected.IsTerminal())
	assert.True(t, RequestCancelled.IsTerminal())
	assert.True(t, RequestStatus("RETURNED_LATE").IsTerminal())
	assert.False(t, RequestPending.IsTerminal())
	assert.False(t, RequestApproved.IsTerminal())
	assert.False(t, RequestIssued.IsTerminal())
}
