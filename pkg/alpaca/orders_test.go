package alpaca

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderService_Place(t *testing.T) {
	mockTrading := new(MockTransport)
	client := newTestClient(mockTrading, new(MockTransport))

	response := `{
		"id": "order-123",
		"symbol": "SPY",
		"side": "buy",
		"type": "market",
		"status": "accepted",
		"notional": "250",
		"filled_qty": "0",
		"created_at": "2026-08-29T15:31:00Z",
		"updated_at": "2026-08-29T15:31:00Z"
	}`
	mockTrading.On("Do", mock.Anything, "POST", "/v2/orders", mock.Anything,
		mock.MatchedBy(func(body interface{}) bool {
			m, ok := body.(map[string]interface{})
			return ok &&
				m["symbol"] == "SPY" &&
				m["side"] == "buy" &&
				m["notional"] == "250" &&
				m["time_in_force"] == "day"
		}), mock.Anything).Return(response, nil)

	order, err := client.Orders.Place(context.Background(), &PlaceOrderParams{
		Symbol:   "spy",
		Side:     SideBuy,
		Notional: 250,
	})

	require.NoError(t, err)
	assert.Equal(t, "order-123", order.ID)
	assert.Equal(t, SideBuy, order.Side)
	assert.Equal(t, 250.0, order.Notional)
	assert.Equal(t, "accepted", order.Status)
	assert.False(t, order.IsFilled())

	mockTrading.AssertExpectations(t)
}

func TestOrderService_Place_Validation(t *testing.T) {
	client := newTestClient(new(MockTransport), new(MockTransport))
	ctx := context.Background()

	tests := []struct {
		name   string
		params *PlaceOrderParams
		code   string
	}{
		{"nil params", nil, "missing_params"},
		{"no symbol", &PlaceOrderParams{Side: SideBuy, Notional: 100}, "missing_symbol"},
		{"bad side", &PlaceOrderParams{Symbol: "SPY", Side: "hold", Notional: 100}, "invalid_side"},
		{"zero notional", &PlaceOrderParams{Symbol: "SPY", Side: SideBuy}, "invalid_notional"},
		{
			"limit without price",
			&PlaceOrderParams{Symbol: "SPY", Side: SideBuy, Notional: 100, Type: OrderTypeLimit},
			"missing_limit_price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Orders.Place(ctx, tt.params)
			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}
}

func TestOrderService_WaitForFill(t *testing.T) {
	mockTrading := new(MockTransport)
	client := newTestClient(mockTrading, new(MockTransport))

	pending := `{
		"id": "order-123",
		"symbol": "SPY",
		"side": "buy",
		"type": "market",
		"status": "accepted",
		"notional": "250",
		"created_at": "2026-08-29T15:31:00Z",
		"updated_at": "2026-08-29T15:31:00Z"
	}`
	filled := `{
		"id": "order-123",
		"symbol": "SPY",
		"side": "buy",
		"type": "market",
		"status": "filled",
		"notional": "250",
		"filled_qty": "0.4948",
		"filled_avg_price": "505.25",
		"created_at": "2026-08-29T15:31:00Z",
		"updated_at": "2026-08-29T15:31:03Z"
	}`

	mockTrading.On("Do", mock.Anything, "GET", "/v2/orders/order-123",
		mock.Anything, mock.Anything, mock.Anything).Return(pending, nil).Twice()
	mockTrading.On("Do", mock.Anything, "GET", "/v2/orders/order-123",
		mock.Anything, mock.Anything, mock.Anything).Return(filled, nil).Once()

	order, err := client.Orders.WaitForFill(context.Background(), "order-123", time.Second)

	require.NoError(t, err)
	assert.True(t, order.IsFilled())
	assert.Equal(t, 0.4948, order.FilledQty)
	assert.Equal(t, 505.25, order.FilledAvgPrice)

	mockTrading.AssertExpectations(t)
}

func TestOrderService_WaitForFill_Rejected(t *testing.T) {
	mockTrading := new(MockTransport)
	client := newTestClient(mockTrading, new(MockTransport))

	rejected := `{
		"id": "order-456",
		"symbol": "SPY",
		"side": "buy",
		"type": "market",
		"status": "rejected",
		"notional": "250",
		"created_at": "2026-08-29T15:31:00Z",
		"updated_at": "2026-08-29T15:31:01Z"
	}`
	mockTrading.On("Do", mock.Anything, "GET", "/v2/orders/order-456",
		mock.Anything, mock.Anything, mock.Anything).Return(rejected, nil).Once()

	order, err := client.Orders.WaitForFill(context.Background(), "order-456", time.Second)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOrderNotFilled)
	require.NotNil(t, order, "the terminal order state comes back with the error")
	assert.Equal(t, "rejected", order.Status)

	mockTrading.AssertExpectations(t)
}

func TestOrderService_WaitForFill_Timeout(t *testing.T) {
	mockTrading := new(MockTransport)
	client := newTestClient(mockTrading, new(MockTransport))

	pending := `{
		"id": "order-789",
		"symbol": "SPY",
		"side": "buy",
		"type": "market",
		"status": "new",
		"notional": "250",
		"created_at": "2026-08-29T15:31:00Z",
		"updated_at": "2026-08-29T15:31:00Z"
	}`
	mockTrading.On("Do", mock.Anything, "GET", "/v2/orders/order-789",
		mock.Anything, mock.Anything, mock.Anything).Return(pending, nil)

	order, err := client.Orders.WaitForFill(context.Background(), "order-789", 5*time.Millisecond)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOrderNotFilled)
	assert.Equal(t, "new", order.Status)
}

func TestOrder_Summary(t *testing.T) {
	order := &Order{
		ID:             "order-123",
		Symbol:         "SPY",
		Side:           SideBuy,
		Notional:       250,
		Type:           OrderTypeMarket,
		Status:         "filled",
		FilledQty:      0.4948,
		FilledAvgPrice: 505.25,
	}

	summary := order.Summary()
	assert.Contains(t, summary, "order-123")
	assert.Contains(t, summary, "Notional: $250.00")
	assert.Contains(t, summary, "0.4948 shares @ $505.25")
}
