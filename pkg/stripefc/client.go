// Package stripefc is a client for Stripe Financial Connections: linked bank
// accounts, their balances and transactions, and transfers between them.
package stripefc

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/centsible/centsible-go/internal/transport"
	internalTypes "github.com/centsible/centsible-go/internal/types"
)

const (
	// DefaultBaseURL is the default Stripe API base URL
	DefaultBaseURL = "https://api.stripe.com"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second

	// apiVersion pins the Stripe API version for every request
	apiVersion = "2024-06-20"
)

// Client is the main Stripe Financial Connections client
type Client struct {
	// Service interfaces
	Accounts     AccountService
	Transactions TransactionService
	Transfers    TransferService

	// Internal fields
	baseURL   string
	transport Transport
	options   *ClientOptions

	// Injectable for tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// ClientOptions configures the client
type ClientOptions struct {
	// APIKey is the Stripe secret key. Required.
	APIKey string

	// BaseURL overrides the default API base URL
	BaseURL string

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

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions
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

// Transport handles REST communication with the Stripe API
type Transport interface {
	Do(ctx context.Context, method, path string, query url.Values, body interface{}, result interface{}) error
	SetBearerToken(token string)
}

// NewClient creates a new Stripe Financial Connections client
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		opts = &ClientOptions{}
	}

	if opts.APIKey == "" {
		return nil, &Error{
			Code:    "missing_api_key",
			Message: "Stripe API key is required",
		}
	}

	// Initialize Sentry if DSN is provided
	if opts.SentryDSN != "" || opts.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}

		if opts.SentryOptions != nil {
			sentryOpts = *opts.SentryOptions
		}

		if opts.SentryDSN != "" {
			sentryOpts.Dsn = opts.SentryDSN
		}

		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}

		if err := sentry.Init(sentryOpts); err != nil {
			// Log error but don't fail client creation
			if opts.Logger != nil {
				opts.Logger.Error("Failed to initialize Sentry", "error", err)
			}
		}
	}

	// Set defaults
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: DefaultTimeout,
		}
	}

	if opts.Timeout > 0 {
		opts.HTTPClient.Timeout = opts.Timeout
	}

	trans := transport.New(&transport.Options{
		BaseURL:    opts.BaseURL,
		HTTPClient: opts.HTTPClient,
		Headers: map[string]string{
			"Stripe-Version": apiVersion,
		},
		RetryConfig: opts.RetryConfig,
		Logger:      opts.Logger,
		Hooks:       opts.Hooks,
	})
	trans.SetBearerToken(opts.APIKey)

	c := &Client{
		baseURL:   opts.BaseURL,
		transport: trans,
		options:   opts,
		now:       time.Now,
		sleep:     sleepCtx,
	}

	c.initServices()

	return c, nil
}

// initServices initializes all service implementations
func (c *Client) initServices() {
	c.Accounts = &accountService{client: c}
	c.Transactions = &transactionService{client: c}
	c.Transfers = &transferService{client: c}
}

// do executes a REST call with rate limiting and Sentry capture
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, result interface{}) error {
	if c.options.RateLimiter != nil {
		if err := c.options.RateLimiter.Wait(ctx); err != nil {
			captureError(ctx, err)
			return &Error{
				Code:    "rate_limiter",
				Message: "rate limiter wait failed",
				Err:     err,
			}
		}
	}

	start := time.Now()
	err := c.transport.Do(ctx, method, path, query, body, result)
	duration := time.Since(start)

	if err != nil {
		captureRequestError(ctx, err, method, path, duration)
	}

	return err
}

// logger returns the configured logger, which may be nil
func (c *Client) logger() Logger {
	return c.options.Logger
}

// Close flushes any pending Sentry events and performs cleanup
func (c *Client) Close() {
	sentry.Flush(2 * time.Second)
}

func captureError(ctx context.Context, err error) {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}

func captureRequestError(ctx context.Context, err error, method, path string, duration time.Duration) {
	capture := func(scope *sentry.Scope) {
		scope.SetTag("stripe.path", path)
		scope.SetContext("request", map[string]interface{}{
			"method":   method,
			"path":     path,
			"duration": duration.String(),
		})
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			capture(scope)
			hub.CaptureException(err)
		})
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		capture(scope)
		sentry.CaptureException(err)
	})
}

// sleepCtx sleeps for d or until the context is done
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
