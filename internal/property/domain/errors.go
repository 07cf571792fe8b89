package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all operations. Handlers map the base errors
// to HTTP status codes; anything outside this list is reported as an
// internal failure.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ErrMissingFields is the validation case for a draft without the
// required title, description, and positive price.
var ErrMissingFields = fmt.Errorf("title, description, and price are required: %w", ErrValidation)

// Entity-specific errors wrap the base taxonomy so callers can match
// either the broad class or the concrete case with errors.Is.
var (
	ErrPropertyNotFound = fmt.Errorf("property: %w", ErrNotFound)
	ErrFavoriteNotFound = fmt.Errorf("favorite: %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user: %w", ErrNotFound)
)
