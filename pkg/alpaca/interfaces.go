package alpaca

import (
	"context"
	"time"
)

// MarketDataService handles market data operations
type MarketDataService interface {
	// GetLatestQuote fetches the latest quote for a symbol
	GetLatestQuote(ctx context.Context, symbol string) (*Quote, error)
}

// OrderService handles order operations
type OrderService interface {
	// Place places a fractional order by USD notional amount
	Place(ctx context.Context, params *PlaceOrderParams) (*Order, error)

	// Get retrieves an order by ID
	Get(ctx context.Context, orderID string) (*Order, error)

	// WaitForFill polls an order until it fills, fails, or the timeout passes
	WaitForFill(ctx context.Context, orderID string, timeout time.Duration) (*Order, error)
}

// AccountService handles trading account operations
type AccountService interface {
	// Get retrieves the trading account, including buying power
	Get(ctx context.Context) (*Account, error)
}
