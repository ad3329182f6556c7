package alpaca

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTransport is a mock implementation of the Transport interface
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Do(ctx context.Context, method, path string, query url.Values, body interface{}, result interface{}) error {
	args := m.Called(ctx, method, path, query, body, result)

	// If mock provides result data, unmarshal it
	if args.Get(0) != nil && result != nil {
		resultJSON := args.Get(0).(string)
		if err := json.Unmarshal([]byte(resultJSON), result); err != nil {
			return err
		}
	}

	return args.Error(1)
}

// newTestClient builds a client with mocked trading and data transports and
// a fast fill-poll interval.
func newTestClient(trading, data Transport) *Client {
	c := &Client{
		trading:          trading,
		data:             data,
		options:          &ClientOptions{},
		fillPollInterval: time.Millisecond,
	}
	c.initServices()
	return c
}

func TestMarketDataService_GetLatestQuote(t *testing.T) {
	mockData := new(MockTransport)
	client := newTestClient(new(MockTransport), mockData)

	response := `{
		"symbol": "SPY",
		"quote": {
			"bp": 505.10,
			"bs": 2,
			"ap": 505.30,
			"as": 3,
			"p": 505.21,
			"s": 100,
			"t": "2026-08-29T15:30:00Z"
		}
	}`
	mockData.On("Do", mock.Anything, "GET", "/v2/stocks/SPY/quotes/latest",
		mock.Anything, mock.Anything, mock.Anything).Return(response, nil)

	quote, err := client.MarketData.GetLatestQuote(context.Background(), "spy")

	require.NoError(t, err)
	assert.Equal(t, "SPY", quote.Symbol)
	assert.Equal(t, 505.10, quote.BidPrice)
	assert.Equal(t, 505.30, quote.AskPrice)
	assert.Equal(t, 505.21, quote.LastPrice)
	assert.InDelta(t, 0.20, quote.Spread(), 1e-9)
	assert.InDelta(t, 505.20, quote.MidPrice(), 1e-9)
	assert.Equal(t, time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC), quote.Timestamp)

	mockData.AssertExpectations(t)
}

func TestMarketDataService_GetLatestQuote_NoLastTrade(t *testing.T) {
	mockData := new(MockTransport)
	client := newTestClient(new(MockTransport), mockData)

	response := `{
		"symbol": "AAPL",
		"quote": {"bp": 230.00, "ap": 230.10, "t": "2026-08-29T15:30:00Z"}
	}`
	mockData.On("Do", mock.Anything, "GET", "/v2/stocks/AAPL/quotes/latest",
		mock.Anything, mock.Anything, mock.Anything).Return(response, nil)

	quote, err := client.MarketData.GetLatestQuote(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Equal(t, 230.10, quote.LastPrice, "falls back to the ask price")
}

func TestMarketDataService_GetLatestQuote_RequiresSymbol(t *testing.T) {
	client := newTestClient(new(MockTransport), new(MockTransport))

	_, err := client.MarketData.GetLatestQuote(context.Background(), "  ")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "missing_symbol", apiErr.Code)
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(&ClientOptions{APIKey: "key-only"})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "missing_credentials", apiErr.Code)
}
