package stripefc

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const (
	transactionsPath = "/v1/financial_connections/transactions"

	// defaultDays of history when the caller does not say
	defaultDays = 30

	// pageLimit is Stripe's max page size
	pageLimit = 100

	// subscribeSettleWait gives a new transactions subscription time to process
	subscribeSettleWait = 3 * time.Second

	// refreshPendingWait gives a pending transaction refresh time to finish
	refreshPendingWait = 2 * time.Second
)

// transactionService implements the TransactionService interface
type transactionService struct {
	client *Client
}

// List retrieves recent transactions for an account. The account is
// subscribed to the transactions feature on first use; Stripe then refreshes
// transaction history asynchronously, so the first call may need to wait for
// the refresh before any data comes back.
func (s *transactionService) List(ctx context.Context, accountID string, days int) ([]*Transaction, error) {
	if days <= 0 {
		days = defaultDays
	}

	account, err := s.ensureSubscribed(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if account.TransactionRefresh != nil {
		switch account.TransactionRefresh.Status {
		case "pending":
			if l := s.client.logger(); l != nil {
				l.Info("Transaction refresh pending, waiting", "account", accountID)
			}
			if err := s.client.sleep(ctx, refreshPendingWait); err != nil {
				return nil, err
			}
		case "failed":
			return nil, errors.Wrapf(ErrRefreshFailed, "account %s", accountID)
		}
	}

	cutoff := s.client.now().AddDate(0, 0, -days).Unix()
	return s.fetchSince(ctx, accountID, cutoff)
}

// ensureSubscribed fetches the account, subscribing it to the transactions
// feature if it is not already. Returns the freshest account state.
func (s *transactionService) ensureSubscribed(ctx context.Context, accountID string) (*apiAccount, error) {
	var account apiAccount
	if err := s.client.do(ctx, http.MethodGet, accountsPath+accountID, nil, nil, &account); err != nil {
		return nil, errors.Wrap(err, "failed to get account")
	}

	if containsString(account.Subscriptions, "transactions") {
		return &account, nil
	}

	if l := s.client.logger(); l != nil {
		l.Info("Subscribing to transactions", "account", accountID)
	}

	form := url.Values{"features[]": {"transactions"}}
	err := s.client.do(ctx, http.MethodPost, accountsPath+accountID+"/subscribe", nil, form, nil)
	if err != nil {
		// A failed subscription attempt is not fatal: the account may
		// already have history available from a prior session.
		if l := s.client.logger(); l != nil {
			l.Warn("Subscription attempt failed", "account", accountID, "error", err)
		}
		return &account, nil
	}

	if err := s.client.sleep(ctx, subscribeSettleWait); err != nil {
		return nil, err
	}

	if err := s.client.do(ctx, http.MethodGet, accountsPath+accountID, nil, nil, &account); err != nil {
		return nil, errors.Wrap(err, "failed to refetch account")
	}
	return &account, nil
}

// fetchSince pages through the transaction history, newest first, keeping
// everything transacted at or after the cutoff.
func (s *transactionService) fetchSince(ctx context.Context, accountID string, cutoff int64) ([]*Transaction, error) {
	var (
		transactions  []*Transaction
		startingAfter string
	)

	for {
		query := url.Values{
			"account": {accountID},
			"limit":   {strconv.Itoa(pageLimit)},
		}
		if startingAfter != "" {
			query.Set("starting_after", startingAfter)
		}

		var page apiTransactionList
		if err := s.client.do(ctx, http.MethodGet, transactionsPath, query, nil, &page); err != nil {
			return nil, errors.Wrap(err, "failed to list transactions")
		}

		for _, txn := range page.Data {
			if txn.TransactedAt < cutoff {
				continue
			}
			transactions = append(transactions, convertTransaction(txn, accountID))
		}

		if !page.HasMore || len(page.Data) == 0 {
			break
		}
		startingAfter = page.Data[len(page.Data)-1].ID
	}

	if l := s.client.logger(); l != nil {
		l.Info("Retrieved transactions", "account", accountID, "count", len(transactions))
	}

	return transactions, nil
}

func convertTransaction(txn *apiTransaction, accountID string) *Transaction {
	description := txn.Description
	if description == "" {
		description = "Unknown transaction"
	}

	return &Transaction{
		ID:          txn.ID,
		AccountID:   accountID,
		Date:        time.Unix(txn.TransactedAt, 0).UTC(),
		Description: description,
		// Stripe has no separate merchant field; the description is the
		// closest thing.
		MerchantName: description,
		Amount:       float64(txn.Amount) / 100,
		Pending:      txn.Status == "pending",
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
