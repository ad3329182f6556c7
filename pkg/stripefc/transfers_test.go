package stripefc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTransferService_Create(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	fromResponse := `{
		"id": "fca_checking",
		"display_name": "Everyday Checking",
		"institution_name": "Test Bank",
		"balance": {"current": {"usd": 200000}}
	}`
	toResponse := `{
		"id": "fca_savings",
		"display_name": "Rainy Day",
		"institution_name": "Test Bank",
		"balance": {"current": {"usd": 50000}}
	}`

	mockTransport.On("Do", mock.Anything, "GET", "/v1/financial_connections/accounts/fca_checking",
		mock.Anything, mock.Anything, mock.Anything).Return(fromResponse, nil)
	mockTransport.On("Do", mock.Anything, "GET", "/v1/financial_connections/accounts/fca_savings",
		mock.Anything, mock.Anything, mock.Anything).Return(toResponse, nil)

	transfer, err := client.Transfers.Create(context.Background(), "fca_checking", "fca_savings", 500, "Emergency fund top-up")

	require.NoError(t, err)
	assert.Equal(t, "fca_checking", transfer.FromAccountID)
	assert.Equal(t, "fca_savings", transfer.ToAccountID)
	assert.Equal(t, 500.0, transfer.Amount)
	assert.Equal(t, "pending", transfer.Status)
	assert.Equal(t, "Emergency fund top-up", transfer.Description)
	assert.NotEmpty(t, transfer.ID)
	assert.NotEmpty(t, transfer.IdempotencyKey)
	assert.False(t, transfer.CreatedAt.IsZero())

	mockTransport.AssertExpectations(t)
}

func TestTransferService_Create_InsufficientFunds(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	fromResponse := `{
		"id": "fca_checking",
		"display_name": "Everyday Checking",
		"balance": {"current": {"usd": 10000}}
	}`
	toResponse := `{"id": "fca_savings", "display_name": "Rainy Day"}`

	mockTransport.On("Do", mock.Anything, "GET", "/v1/financial_connections/accounts/fca_checking",
		mock.Anything, mock.Anything, mock.Anything).Return(fromResponse, nil)
	mockTransport.On("Do", mock.Anything, "GET", "/v1/financial_connections/accounts/fca_savings",
		mock.Anything, mock.Anything, mock.Anything).Return(toResponse, nil)

	_, err := client.Transfers.Create(context.Background(), "fca_checking", "fca_savings", 500, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	var fundsErr *InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)
	assert.Equal(t, 100.0, fundsErr.Available)
	assert.Equal(t, 500.0, fundsErr.Requested)
	assert.Contains(t, fundsErr.Error(), "Everyday Checking")
}

func TestTransferService_Create_Validation(t *testing.T) {
	client := newTestClient(new(MockTransport))
	ctx := context.Background()

	_, err := client.Transfers.Create(ctx, "fca_a", "fca_b", 0, "")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid_amount", apiErr.Code)

	_, err = client.Transfers.Create(ctx, "fca_a", "fca_a", 100, "")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "same_account", apiErr.Code)
}
