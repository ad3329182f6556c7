package config

import (
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// StripeAPIKey authenticates against Stripe Financial Connections.
	// Environment variable: STRIPE_API_KEY
	StripeAPIKey string `koanf:"STRIPE_API_KEY"`

	// StripeSessionID is the Financial Connections session holding the
	// user's linked bank accounts.
	// Environment variable: STRIPE_SESSION_ID
	StripeSessionID string `koanf:"STRIPE_SESSION_ID"`

	// AlpacaAPIKey / AlpacaAPISecret authenticate against Alpaca.
	// Environment variables: ALPACA_API_KEY, ALPACA_API_SECRET
	AlpacaAPIKey    string `koanf:"ALPACA_API_KEY"`
	AlpacaAPISecret string `koanf:"ALPACA_API_SECRET"`

	// SentryDSN enables error reporting when set.
	// Environment variable: SENTRY_DSN
	SentryDSN string `koanf:"SENTRY_DSN"`

	// BudgetDBPath is the sqlite file for persisted monthly budgets.
	// Environment variable: BUDGET_DB_PATH
	BudgetDBPath string `koanf:"BUDGET_DB_PATH"`

	// MonthlyIncome is the user's stated monthly income.
	// Environment variable: MONTHLY_INCOME
	MonthlyIncome float64 `koanf:"MONTHLY_INCOME"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load environment")
	}

	cfg := &Config{
		BudgetDBPath: "data/budgets.db",
	}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	return cfg, nil
}
