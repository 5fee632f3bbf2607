package metadata

import (
	"strings"

	custom_error "assetdesk/pkg/errors"
)

// RequestStatus models the borrowing request lifecycle:
//
//	PENDING -> APPROVED -> ISSUED -> RETURNED*
//	PENDING -> REJECTED
//	PENDING -> CANCELLED
//
// Any status beginning with RETURNED is treated as one terminal family so
// qualifiers like RETURNED_DAMAGED remain valid.
type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestApproved  RequestStatus = "APPROVED"
	RequestRejected  RequestStatus = "REJECTED"
	RequestIssued    RequestStatus = "ISSUED"
	RequestReturned  RequestStatus = "RETURNED"
	RequestCancelled RequestStatus = "CANCELLED"
)

func NewRequestStatus(value string) (RequestStatus, error) {
	status := RequestStatus(strings.ToUpper(strings.TrimSpace(value)))
	if !status.isValid() {
		return "", custom_error.NewValidationError("invalid request status: " + value)
	}
	return status, nil
}

func (s RequestStatus) isValid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected, RequestIssued, RequestCancelled:
		return true
	}
	return s.IsReturned()
}

// IsReturned reports whether the status belongs to the RETURNED terminal family.
func (s RequestStatus) IsReturned() bool {
	return strings.HasPrefix(string(s), string(RequestReturned))
}

// IsTerminal reports whether no further transitions are allowed.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestRejected || s == RequestCancelled || s.IsReturned()
}

// CanTransitionTo validates a single transition against the lifecycle above.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch s {
	case RequestPending:
		return next == RequestApproved || next == RequestRejected || next == RequestCancelled
	case RequestApproved:
		return next == RequestIssued
	case RequestIssued:
		return next.IsReturned()
	default:
		return false
	}
}

func (s RequestStatus) String() string {
	return string(s)
}
