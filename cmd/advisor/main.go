// Command advisor pulls linked bank activity, analyzes spending, and produces
// a recommended monthly budget, persisting the result locally. With -invest it
// also proposes parking budget surplus into an index fund via Alpaca paper
// trading.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/centsible/centsible-go/internal/config"
	"github.com/centsible/centsible-go/internal/logger"
	internalTypes "github.com/centsible/centsible-go/internal/types"
	"github.com/centsible/centsible-go/pkg/alpaca"
	"github.com/centsible/centsible-go/pkg/budget"
	"github.com/centsible/centsible-go/pkg/budgetstore"
	"github.com/centsible/centsible-go/pkg/stripefc"
)

type advisorFlags struct {
	Month  string
	Days   int
	Income float64
	DBPath string
	Invest string
}

func main() {
	// Pick up a local .env when present; real environments set vars directly.
	_ = godotenv.Load()

	flags := parseFlags()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if flags.Income > 0 {
		cfg.MonthlyIncome = flags.Income
	}
	if flags.DBPath != "" {
		cfg.BudgetDBPath = flags.DBPath
	}

	advisor, err := newAdvisor(cfg, flags)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer advisor.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := advisor.Run(ctx); err != nil {
		log.Fatalf("Advisor run failed: %v", err)
	}
}

func parseFlags() *advisorFlags {
	flags := &advisorFlags{}

	flag.StringVar(&flags.Month, "month", time.Now().Format("2006-01"), "Budget month (YYYY-MM)")
	flag.IntVar(&flags.Days, "days", 90, "Days of transaction history to analyze")
	flag.Float64Var(&flags.Income, "income", 0, "Monthly income override (defaults to MONTHLY_INCOME)")
	flag.StringVar(&flags.DBPath, "db", "", "Budget database path (defaults to BUDGET_DB_PATH)")
	flag.StringVar(&flags.Invest, "invest", "", "Symbol to propose investing budget surplus into (e.g. SPY)")
	flag.Parse()

	return flags
}

// Advisor wires the banking client, the allocation engine, and the budget
// store together for one run.
type Advisor struct {
	cfg   *config.Config
	flags *advisorFlags
	log   *logger.Logger
	bank  *stripefc.Client
	store *budgetstore.Store
}

func newAdvisor(cfg *config.Config, flags *advisorFlags) (*Advisor, error) {
	structured := logger.New()

	bank, err := stripefc.NewClient(&stripefc.ClientOptions{
		APIKey:    cfg.StripeAPIKey,
		SentryDSN: cfg.SentryDSN,
		Logger:    structured,
		RetryConfig: &internalTypes.RetryConfig{
			MaxRetries: 3,
			RetryWait:  time.Second,
			MaxWait:    10 * time.Second,
		},
	})
	if err != nil {
		return nil, err
	}

	store, err := budgetstore.Open(cfg.BudgetDBPath, budgetstore.WithLogger(structured))
	if err != nil {
		bank.Close()
		return nil, err
	}

	return &Advisor{
		cfg:   cfg,
		flags: flags,
		log:   structured,
		bank:  bank,
		store: store,
	}, nil
}

// Close releases the advisor's clients
func (a *Advisor) Close() {
	a.store.Close()
	a.bank.Close()
}

// Run executes one advisory pass: pull accounts and history, recommend a
// budget, persist it, and print the plan.
func (a *Advisor) Run(ctx context.Context) error {
	accounts, err := a.bank.Accounts.List(ctx, a.cfg.StripeSessionID)
	if err != nil {
		return err
	}

	var (
		emergencyBalance float64
		transactions     []*budget.Transaction
	)
	for _, account := range accounts {
		switch account.Type {
		case stripefc.AccountTypeSavings:
			emergencyBalance += account.Balance
		case stripefc.AccountTypeChecking, stripefc.AccountTypeCreditCard:
			history, err := a.bank.Transactions.List(ctx, account.ID, a.flags.Days)
			if err != nil {
				return err
			}
			for _, txn := range history {
				transactions = append(transactions, convertTransaction(txn))
			}
		}
	}

	a.log.Info("Pulled bank activity",
		"accounts", len(accounts),
		"transactions", len(transactions),
		"emergency_balance", emergencyBalance)

	months := a.flags.Days / 30
	if months < 1 {
		months = 1
	}
	avgSpending := budget.AnalyzeSpendingWithLogger(transactions, months, a.log)

	income := a.cfg.MonthlyIncome
	if income <= 0 {
		income = estimateIncome(transactions, months)
		a.log.Warn("MONTHLY_INCOME not set, estimated from deposits", "income", income)
	}

	// Goals already attached to this month's budget survive a re-plan.
	goals := a.existingGoals(ctx)

	engine := budget.NewEngine()
	rec := engine.Recommend(income, avgSpending, goals, emergencyBalance)

	ledger := budget.NewLedger(a.flags.Month, income, rec, goals)
	a.recordMonthSpend(ledger, transactions)

	snapshot := ledger.Snapshot()
	if err := a.store.Save(ctx, snapshot); err != nil {
		return err
	}

	fmt.Println(rec.Explanation)
	for _, warning := range rec.Warnings {
		fmt.Printf("\nNote: %s\n", warning)
	}

	if a.flags.Invest != "" {
		if err := a.proposeInvestment(ctx, snapshot); err != nil {
			// A failed proposal doesn't invalidate the budget run.
			a.log.Warn("Investment proposal failed", "error", err)
		}
	}

	return nil
}

// existingGoals loads the goals from any previously saved budget for the
// target month.
func (a *Advisor) existingGoals(ctx context.Context) []*budget.SavingsGoal {
	previous, err := a.store.Load(ctx, a.flags.Month)
	if err != nil {
		return nil
	}
	return previous.SavingsGoals
}

// recordMonthSpend replays this month's transactions into the ledger
func (a *Advisor) recordMonthSpend(ledger *budget.Ledger, transactions []*budget.Transaction) {
	for _, txn := range transactions {
		if !txn.IsExpense() || txn.Date.Format("2006-01") != a.flags.Month {
			continue
		}
		if err := ledger.RecordSpend(txn.Category, -txn.Amount); err != nil {
			a.log.Warn("Could not record spend", "transaction", txn.ID, "error", err)
		}
	}
}

// proposeInvestment prints a paper-trading proposal for the month's budget
// surplus.
func (a *Advisor) proposeInvestment(ctx context.Context, b *budget.MonthlyBudget) error {
	surplus := b.TotalRemaining()
	if surplus <= 0 {
		a.log.Info("No budget surplus to invest this month")
		return nil
	}

	broker, err := alpaca.NewClient(&alpaca.ClientOptions{
		APIKey:    a.cfg.AlpacaAPIKey,
		APISecret: a.cfg.AlpacaAPISecret,
		Logger:    a.log,
	})
	if err != nil {
		return err
	}

	account, err := broker.Account.Get(ctx)
	if err != nil {
		return err
	}

	proposal, err := broker.NewTradeProposal(ctx, &alpaca.ProposalParams{
		Symbol:         a.flags.Invest,
		Side:           alpaca.SideBuy,
		USDAmount:      surplus,
		Rationale:      fmt.Sprintf("Invest %s budget surplus", b.Month),
		AvailableFunds: account.BuyingPower,
	})
	if err != nil {
		return err
	}

	fmt.Println(proposal.Summary())
	return nil
}

// convertTransaction maps a bank transaction into the budget domain,
// classifying it by merchant and description.
func convertTransaction(txn *stripefc.Transaction) *budget.Transaction {
	return &budget.Transaction{
		ID:           txn.ID,
		AccountID:    txn.AccountID,
		Date:         txn.Date,
		Description:  txn.Description,
		MerchantName: txn.MerchantName,
		Amount:       txn.Amount,
		Category:     budget.Classify(txn.MerchantName, txn.Description),
		Pending:      txn.Pending,
	}
}

// estimateIncome derives monthly income from deposits when none is configured
func estimateIncome(transactions []*budget.Transaction, months int) float64 {
	var deposits float64
	for _, txn := range transactions {
		if txn.Amount > 0 {
			deposits += txn.Amount
		}
	}
	if months < 1 {
		months = 1
	}
	income := deposits / float64(months)
	if income <= 0 {
		fmt.Fprintln(os.Stderr, "No income information available; set MONTHLY_INCOME or -income")
	}
	return income
}
