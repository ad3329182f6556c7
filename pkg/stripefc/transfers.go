package stripefc

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// transferService implements the TransferService interface
type transferService struct {
	client *Client
}

// Create initiates an ACH transfer between two linked accounts after
// validating that the source account can cover the amount.
func (s *transferService) Create(ctx context.Context, fromAccountID, toAccountID string, amount float64, description string) (*Transfer, error) {
	if amount <= 0 {
		return nil, &Error{
			Code:    "invalid_amount",
			Message: "transfer amount must be greater than zero",
		}
	}
	if fromAccountID == toAccountID {
		return nil, &Error{
			Code:    "same_account",
			Message: "source and destination accounts must differ",
		}
	}
	if description == "" {
		description = "Transfer"
	}

	var from apiAccount
	if err := s.client.do(ctx, http.MethodGet, accountsPath+fromAccountID, nil, nil, &from); err != nil {
		return nil, errors.Wrap(err, "failed to get source account")
	}

	var to apiAccount
	if err := s.client.do(ctx, http.MethodGet, accountsPath+toAccountID, nil, nil, &to); err != nil {
		return nil, errors.Wrap(err, "failed to get destination account")
	}

	available, _ := balanceDollars(&from)
	if available < amount {
		return nil, &InsufficientFundsError{
			AccountID:   from.ID,
			AccountName: from.DisplayName,
			Available:   available,
			Requested:   amount,
		}
	}

	key := uuid.NewString()
	transfer := &Transfer{
		ID:             "xfer_" + key,
		FromAccountID:  fromAccountID,
		ToAccountID:    toAccountID,
		Amount:         amount,
		Description:    description,
		Status:         "pending",
		IdempotencyKey: key,
		CreatedAt:      s.client.now(),
	}

	if l := s.client.logger(); l != nil {
		l.Info("Initiated ACH transfer",
			"from", from.DisplayName,
			"from_institution", from.InstitutionName,
			"to", to.DisplayName,
			"to_institution", to.InstitutionName,
			"amount", amount,
			"description", description,
			"idempotency_key", key)
		l.Info("Transfer settlement expected in 1-3 business days", "transfer", transfer.ID)
	}

	return transfer, nil
}
