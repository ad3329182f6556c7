package alpaca

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// marketDataService implements the MarketDataService interface
type marketDataService struct {
	client *Client
}

// GetLatestQuote fetches the latest quote for a symbol from the Market Data
// v2 API.
func (s *marketDataService) GetLatestQuote(ctx context.Context, symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, &Error{
			Code:    "missing_symbol",
			Message: "a stock symbol is required",
		}
	}

	path := fmt.Sprintf("/v2/stocks/%s/quotes/latest", symbol)

	var envelope apiQuoteEnvelope
	if err := s.client.do(ctx, s.client.data, http.MethodGet, path, nil, nil, &envelope); err != nil {
		return nil, errors.Wrapf(err, "failed to get quote for %s", symbol)
	}

	raw := envelope.Quote
	lastPrice := raw.LastPrice
	if lastPrice == 0 {
		// Quotes don't always carry a last trade; the ask is the next
		// best estimate.
		lastPrice = raw.AskPrice
	}

	return &Quote{
		Symbol:    symbol,
		BidPrice:  raw.BidPrice,
		BidSize:   raw.BidSize,
		AskPrice:  raw.AskPrice,
		AskSize:   raw.AskSize,
		LastPrice: lastPrice,
		LastSize:  raw.LastSize,
		Timestamp: raw.Timestamp,
	}, nil
}
