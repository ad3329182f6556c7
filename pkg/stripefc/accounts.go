package stripefc

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

const (
	sessionsPath = "/v1/financial_connections/sessions/"
	accountsPath = "/v1/financial_connections/accounts/"
)

// accountService implements the AccountService interface
type accountService struct {
	client *Client
}

// List retrieves all bank accounts linked to a Financial Connections session
func (s *accountService) List(ctx context.Context, sessionID string) ([]*Account, error) {
	if sessionID == "" {
		return nil, &Error{
			Code:    "missing_session",
			Message: "a Financial Connections session ID is required",
		}
	}

	var session apiSession
	if err := s.client.do(ctx, http.MethodGet, sessionsPath+sessionID, nil, nil, &session); err != nil {
		return nil, errors.Wrap(err, "failed to get session")
	}

	accounts := make([]*Account, 0, len(session.Accounts.Data))
	for _, ref := range session.Accounts.Data {
		account, err := s.Get(ctx, ref.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get account %s", ref.ID)
		}
		accounts = append(accounts, account)
	}

	if l := s.client.logger(); l != nil {
		l.Info("Retrieved linked accounts", "session", sessionID, "count", len(accounts))
	}

	return accounts, nil
}

// Get retrieves a single bank account by ID
func (s *accountService) Get(ctx context.Context, accountID string) (*Account, error) {
	raw, err := s.raw(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.convert(raw), nil
}

// GetBalance retrieves the current balance for an account, in dollars
func (s *accountService) GetBalance(ctx context.Context, accountID string) (float64, error) {
	raw, err := s.raw(ctx, accountID)
	if err != nil {
		return 0, err
	}
	balance, _ := balanceDollars(raw)
	return balance, nil
}

// raw fetches the wire-format account
func (s *accountService) raw(ctx context.Context, accountID string) (*apiAccount, error) {
	var account apiAccount
	if err := s.client.do(ctx, http.MethodGet, accountsPath+accountID, nil, nil, &account); err != nil {
		return nil, errors.Wrap(err, "failed to get account")
	}
	return &account, nil
}

// convert builds the simplified account from the wire format
func (s *accountService) convert(raw *apiAccount) *Account {
	accountType := simplifyAccountType(raw.Subcategory)
	balance, currency := balanceDollars(raw)

	name := raw.DisplayName
	if name == "" {
		name = fallbackAccountName(accountType)
	}

	return &Account{
		ID:              raw.ID,
		Name:            name,
		Type:            accountType,
		Balance:         balance,
		Currency:        currency,
		InstitutionName: raw.InstitutionName,
		LastFour:        raw.Last4,
	}
}

// balanceDollars extracts the current USD balance from the nested balance
// structure, converting from cents. Accounts without a usable balance report 0.
func balanceDollars(raw *apiAccount) (float64, string) {
	if raw.Balance == nil || raw.Balance.Current == nil {
		return 0, "USD"
	}
	cents, ok := raw.Balance.Current["usd"]
	if !ok {
		return 0, "USD"
	}
	return float64(cents) / 100, "USD"
}
