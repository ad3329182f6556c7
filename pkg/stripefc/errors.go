package stripefc

import (
	"errors"
	"fmt"

	internalTypes "github.com/centsible/centsible-go/internal/types"
)

var (
	// ErrNotAuthenticated is returned when the API key is missing or invalid
	ErrNotAuthenticated = internalTypes.ErrNotAuthenticated

	// ErrNotFound is returned when a session, account, or transaction does not exist
	ErrNotFound = internalTypes.ErrNotFound

	// ErrRateLimited is returned when rate limited
	ErrRateLimited = internalTypes.ErrRateLimited

	// ErrTimeout is returned on timeout
	ErrTimeout = internalTypes.ErrTimeout

	// ErrServerError is returned for server errors
	ErrServerError = internalTypes.ErrServerError

	// ErrRefreshFailed is returned when Stripe reports a failed transaction refresh
	ErrRefreshFailed = errors.New("transaction refresh failed")

	// ErrInsufficientFunds is returned when a transfer exceeds the source balance
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Error represents a Stripe API error
type Error = internalTypes.Error

// InsufficientFundsError describes a transfer rejected for lack of funds
type InsufficientFundsError struct {
	AccountID   string  `json:"accountId"`
	AccountName string  `json:"accountName,omitempty"`
	Available   float64 `json:"available"`
	Requested   float64 `json:"requested"`
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	name := e.AccountName
	if name == "" {
		name = e.AccountID
	}
	return fmt.Sprintf("insufficient funds: %s has $%.2f, need $%.2f", name, e.Available, e.Requested)
}

// Is reports ErrInsufficientFunds so callers can match with errors.Is
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

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
