package alpaca

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// accountService implements the AccountService interface
type accountService struct {
	client *Client
}

// Get retrieves the trading account, including buying power
func (s *accountService) Get(ctx context.Context) (*Account, error) {
	var raw apiAccount
	if err := s.client.do(ctx, s.client.trading, http.MethodGet, "/v2/account", nil, nil, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to get account")
	}

	return &Account{
		ID:             raw.ID,
		Status:         raw.Status,
		Currency:       raw.Currency,
		Cash:           parseAmount(raw.Cash),
		BuyingPower:    parseAmount(raw.BuyingPower),
		PortfolioValue: parseAmount(raw.PortfolioValue),
	}, nil
}
