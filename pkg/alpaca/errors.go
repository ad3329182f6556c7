package alpaca

import (
	"errors"

	internalTypes "github.com/centsible/centsible-go/internal/types"
)

var (
	// ErrNotAuthenticated is returned when credentials are missing or invalid
	ErrNotAuthenticated = internalTypes.ErrNotAuthenticated

	// ErrNotFound is returned when a symbol or order does not exist
	ErrNotFound = internalTypes.ErrNotFound

	// ErrRateLimited is returned when rate limited
	ErrRateLimited = internalTypes.ErrRateLimited

	// ErrTimeout is returned on timeout
	ErrTimeout = internalTypes.ErrTimeout

	// ErrServerError is returned for server errors
	ErrServerError = internalTypes.ErrServerError

	// ErrOrderNotFilled is returned when an order fails to fill in time
	ErrOrderNotFilled = errors.New("order not filled")
)

// Error represents an Alpaca API error
type Error = internalTypes.Error

// IsRetryable checks if error is retryable
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrServerError) {
		return true
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == 429
	}

	return false
}
