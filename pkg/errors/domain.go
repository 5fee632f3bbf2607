package custom_error

import "errors"

// Domain sentinels shared across feature packages so the HTTP layer can map
// them to response codes in one place.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidTransition  = errors.New("status transition not allowed")
	ErrActiveMaintenance  = errors.New("asset already has an active maintenance record")
	ErrAssetInUse         = errors.New("asset has open borrowing or maintenance records")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries a field-specific message for a 400 response.
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{message: message}
}
