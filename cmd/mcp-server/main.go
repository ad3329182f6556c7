package main

import (
	"context"
	"log"
	"os"

	"github.com/centsible/centsible-go/pkg/alpaca"
	"github.com/centsible/centsible-go/pkg/budget"
	"github.com/centsible/centsible-go/pkg/budgetstore"
	"github.com/centsible/centsible-go/pkg/stripefc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	// Budget storage is the only hard requirement; the bank and brokerage
	// tools degrade gracefully when their credentials are missing.
	dbPath := os.Getenv("BUDGET_DB_PATH")
	if dbPath == "" {
		dbPath = "data/budgets.db"
	}

	store, err := budgetstore.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open budget store: %v", err)
	}
	defer store.Close()

	tools := &advisorTools{
		store:     store,
		engine:    budget.NewEngine(),
		sessionID: os.Getenv("STRIPE_SESSION_ID"),
	}

	if apiKey := os.Getenv("STRIPE_API_KEY"); apiKey != "" {
		bank, err := stripefc.NewClient(&stripefc.ClientOptions{
			APIKey:    apiKey,
			SentryDSN: os.Getenv("SENTRY_DSN"),
		})
		if err != nil {
			log.Fatalf("failed to initialize bank client: %v", err)
		}
		defer bank.Close()
		tools.bank = bank
	}

	if key, secret := os.Getenv("ALPACA_API_KEY"), os.Getenv("ALPACA_API_SECRET"); key != "" && secret != "" {
		broker, err := alpaca.NewClient(&alpaca.ClientOptions{
			APIKey:    key,
			APISecret: secret,
		})
		if err != nil {
			log.Fatalf("failed to initialize brokerage client: %v", err)
		}
		tools.broker = broker
	}

	// Create MCP server with v1.0.0 API
	impl := &mcp.Implementation{
		Name:    "budget-advisor",
		Version: "1.0.0",
	}

	server := mcp.NewServer(impl, nil)

	// Register all tools
	registerTools(server, tools)

	// Run server over stdio transport (for Claude Desktop)
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func registerTools(server *mcp.Server, tools *advisorTools) {
	// Register all tools using v1.0.0 API
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_budget",
		Description: "Create a monthly budget from income using the 50/30/20 rule. Essentials keep their actual spending, the emergency fund builds toward three months of income, retirement gets 5%, and savings goals are funded before discretionary spending. Returns the full plan with per-category amounts and any warnings.",
	}, tools.CreateBudget)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "view_budget",
		Description: "View a saved monthly budget: per-category budgeted, spent, and remaining amounts, group totals, savings goal progress, and whether the month follows the 50/30/20 split.",
	}, tools.ViewBudget)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "record_spend",
		Description: "Record spending against a budget category for a month. Returns the updated category with remaining budget and an overspend flag.",
	}, tools.RecordSpend)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_savings_goal",
		Description: "Add a savings goal (e.g. a trip or a down payment) to a monthly budget. The required monthly contribution is computed from the target amount and target date.",
	}, tools.AddSavingsGoal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_accounts",
		Description: "Get linked bank accounts from Stripe Financial Connections with their current balances and types. Requires STRIPE_API_KEY and a session ID.",
	}, tools.GetAccounts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_quote",
		Description: "Get the latest stock quote for a symbol from Alpaca: bid, ask, last trade, spread, and mid price. Requires ALPACA_API_KEY and ALPACA_API_SECRET.",
	}, tools.GetQuote)
}
