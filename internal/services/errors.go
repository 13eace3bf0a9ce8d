package services

import (
	"errors"
	"fmt"
	"time"
)

const QueryTimeout = 30 * time.Second

// Callers match these with errors.Is; the wrapped message carries the detail.
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrForbidden     = errors.New("forbidden")
	ErrDatabaseQuery = errors.New("database query failed")

	ErrProductNotFound      = fmt.Errorf("product %w", ErrNotFound)
	ErrSellerNotFound       = fmt.Errorf("seller %w", ErrNotFound)
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrAnnouncementNotFound = fmt.Errorf("announcement %w", ErrNotFound)
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
