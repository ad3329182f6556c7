// Package alpaca is a client for the Alpaca Market Data v2 and Trading APIs.
// It uses the paper trading environment unless told otherwise.
package alpaca

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/centsible/centsible-go/internal/transport"
	internalTypes "github.com/centsible/centsible-go/internal/types"
)

const (
	// DefaultPaperBaseURL is the paper trading API base URL
	DefaultPaperBaseURL = "https://paper-api.alpaca.markets"

	// DefaultLiveBaseURL is the live trading API base URL
	DefaultLiveBaseURL = "https://api.alpaca.markets"

	// DefaultDataBaseURL is the market data API base URL
	DefaultDataBaseURL = "https://data.alpaca.markets"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second
)

// Client is the main Alpaca client
type Client struct {
	// Service interfaces
	MarketData MarketDataService
	Orders     OrderService
	Account    AccountService

	// Internal fields
	trading Transport
	data    Transport
	options *ClientOptions

	// fillPollInterval is how often WaitForFill checks order status
	fillPollInterval time.Duration
}

// ClientOptions configures the client
type ClientOptions struct {
	// APIKey is the Alpaca API key ID. Required.
	APIKey string

	// APISecret is the Alpaca API secret key. Required.
	APISecret string

	// Live switches to the live trading environment. Defaults to paper.
	Live bool

	// BaseURL overrides the trading API base URL
	BaseURL string

	// DataBaseURL overrides the market data API base URL
	DataBaseURL string

	// HTTPClient allows using a custom HTTP client
	HTTPClient *http.Client

	// Timeout sets the HTTP client timeout
	Timeout time.Duration

	// Logger for debug logging
	Logger Logger

	// RetryConfig configures retry behavior
	RetryConfig *internalTypes.RetryConfig

	// RateLimiter for rate limiting
	RateLimiter RateLimiter

	// Hooks for observability
	Hooks *internalTypes.Hooks
}

// Logger interface for logging
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// RateLimiter interface for rate limiting
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// Transport handles REST communication with the Alpaca APIs
type Transport interface {
	Do(ctx context.Context, method, path string, query url.Values, body interface{}, result interface{}) error
}

// NewClient creates a new Alpaca client
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		opts = &ClientOptions{}
	}

	if opts.APIKey == "" || opts.APISecret == "" {
		return nil, &Error{
			Code:    "missing_credentials",
			Message: "Alpaca API key and secret are required",
		}
	}

	// Set defaults
	if opts.BaseURL == "" {
		if opts.Live {
			opts.BaseURL = DefaultLiveBaseURL
		} else {
			opts.BaseURL = DefaultPaperBaseURL
		}
	}

	if opts.DataBaseURL == "" {
		opts.DataBaseURL = DefaultDataBaseURL
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: DefaultTimeout,
		}
	}

	if opts.Timeout > 0 {
		opts.HTTPClient.Timeout = opts.Timeout
	}

	headers := map[string]string{
		"APCA-API-KEY-ID":     opts.APIKey,
		"APCA-API-SECRET-KEY": opts.APISecret,
	}

	c := &Client{
		trading: transport.New(&transport.Options{
			BaseURL:     opts.BaseURL,
			HTTPClient:  opts.HTTPClient,
			Headers:     headers,
			RetryConfig: opts.RetryConfig,
			Logger:      opts.Logger,
			Hooks:       opts.Hooks,
		}),
		data: transport.New(&transport.Options{
			BaseURL:     opts.DataBaseURL,
			HTTPClient:  opts.HTTPClient,
			Headers:     headers,
			RetryConfig: opts.RetryConfig,
			Logger:      opts.Logger,
			Hooks:       opts.Hooks,
		}),
		options:          opts,
		fillPollInterval: defaultFillPollInterval,
	}

	c.initServices()

	if opts.Logger != nil {
		opts.Logger.Info("Alpaca client initialized", "paper", !opts.Live)
	}

	return c, nil
}

// initServices initializes all service implementations
func (c *Client) initServices() {
	c.MarketData = &marketDataService{client: c}
	c.Orders = &orderService{client: c}
	c.Account = &accountService{client: c}
}

// do executes a REST call through the given transport, honoring the rate
// limiter when one is configured.
func (c *Client) do(ctx context.Context, trans Transport, method, path string, query url.Values, body interface{}, result interface{}) error {
	if c.options.RateLimiter != nil {
		if err := c.options.RateLimiter.Wait(ctx); err != nil {
			return &Error{
				Code:    "rate_limiter",
				Message: "rate limiter wait failed",
				Err:     err,
			}
		}
	}
	return trans.Do(ctx, method, path, query, body, result)
}

// logger returns the configured logger, which may be nil
func (c *Client) logger() Logger {
	return c.options.Logger
}
