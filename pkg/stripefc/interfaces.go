package stripefc

import "context"

// AccountService handles Financial Connections account operations
type AccountService interface {
	// List retrieves all bank accounts linked to a Financial Connections session
	List(ctx context.Context, sessionID string) ([]*Account, error)

	// Get retrieves a single bank account by ID
	Get(ctx context.Context, accountID string) (*Account, error)

	// GetBalance retrieves the current balance for an account, in dollars
	GetBalance(ctx context.Context, accountID string) (float64, error)
}

// TransactionService handles Financial Connections transaction operations
type TransactionService interface {
	// List retrieves recent transactions for an account, going back the
	// given number of days (default 30 when days <= 0).
	List(ctx context.Context, accountID string, days int) ([]*Transaction, error)
}

// TransferService handles ACH transfers between linked accounts
type TransferService interface {
	// Create initiates a transfer between two linked accounts
	Create(ctx context.Context, fromAccountID, toAccountID string, amount float64, description string) (*Transfer, error)
}
