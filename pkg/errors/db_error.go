package custom_error

import "fmt"

type CustomError interface {
	Error() string
}

type UniqueViolationError struct {
	message string
	code    string // PostgreSQL error code "23505"
}

type ForeignKeyViolationError struct {
	message string
	code    string // PostgreSQL error code "23503"
}

func (e *UniqueViolationError) Error() string {
	return e.message
}

func (f *ForeignKeyViolationError) Error() string {
	return f.message
}

// WrapDBError converts a raw PostgreSQL error code into a typed error carrying
// a client-facing message. Unrecognized codes fall through as plain errors.
func WrapDBError(message, code string) CustomError {
	switch code {
	case "23505":
		return &UniqueViolationError{
			message: message,
			code:    code,
		}
	case "23503":
		return &ForeignKeyViolationError{
			message: message,
			code:    code,
		}
	default:
		return fmt.Errorf("uncategorized database error (code %s): %s", code, message)
	}
}
