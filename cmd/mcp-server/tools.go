package main

import (
	"context"
	"fmt"
	"time"

	"github.com/centsible/centsible-go/pkg/alpaca"
	"github.com/centsible/centsible-go/pkg/budget"
	"github.com/centsible/centsible-go/pkg/budgetstore"
	"github.com/centsible/centsible-go/pkg/stripefc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"
)

// advisorTools holds the budget store and optional bank/brokerage clients
// and implements all tool handlers. bank and broker are nil when their
// credentials are not configured.
type advisorTools struct {
	store     *budgetstore.Store
	engine    *budget.Engine
	bank      *stripefc.Client
	broker    *alpaca.Client
	sessionID string
}

// CategoryEntry is one category's slice of a monthly budget
type CategoryEntry struct {
	Category   string  `json:"category" jsonschema:"Budget category name"`
	Group      string  `json:"group" jsonschema:"Budget group: needs, wants, or savings"`
	Budgeted   float64 `json:"budgeted" jsonschema:"Budgeted amount for this category"`
	Spent      float64 `json:"spent" jsonschema:"Actual amount spent"`
	Remaining  float64 `json:"remaining" jsonschema:"Remaining budget amount"`
	Percentage float64 `json:"percentage" jsonschema:"Percentage of budget used, capped at 100"`
	Overspent  bool    `json:"overspent" jsonschema:"Whether spending exceeded the budget"`
}

// GoalEntry is a savings goal with its computed progress
type GoalEntry struct {
	ID                  string  `json:"id" jsonschema:"Goal ID"`
	Name                string  `json:"name" jsonschema:"Goal name"`
	TargetAmount        float64 `json:"targetAmount" jsonschema:"Total amount to save"`
	TargetDate          string  `json:"targetDate" jsonschema:"Target date in YYYY-MM-DD format"`
	CurrentSaved        float64 `json:"currentSaved" jsonschema:"Amount saved so far"`
	MonthlyContribution float64 `json:"monthlyContribution" jsonschema:"Monthly contribution toward the goal"`
	Progress            float64 `json:"progress" jsonschema:"Progress percentage, 0-100"`
}

// CreateBudget tool - builds and saves a monthly budget from income
type CreateBudgetInput struct {
	Month            string  `json:"month" jsonschema:"Month in YYYY-MM format (e.g. 2026-08)"`
	MonthlyIncome    float64 `json:"monthlyIncome" jsonschema:"Monthly take-home income in dollars"`
	EmergencyBalance float64 `json:"emergencyBalance,omitempty" jsonschema:"Current emergency fund balance in dollars (optional)"`
}

type CreateBudgetOutput struct {
	Month       string          `json:"month" jsonschema:"Month the budget was created for"`
	Explanation string          `json:"explanation" jsonschema:"Human-readable budget breakdown"`
	Warnings    []string        `json:"warnings,omitempty" jsonschema:"Warnings about infeasible allocations"`
	Needs       float64         `json:"needs" jsonschema:"Total allocated to essentials"`
	Wants       float64         `json:"wants" jsonschema:"Total allocated to discretionary spending"`
	Savings     float64         `json:"savings" jsonschema:"Total allocated to savings and goals"`
	Categories  []CategoryEntry `json:"categories" jsonschema:"Per-category allocations"`
}

func (t *advisorTools) CreateBudget(ctx context.Context, req *mcp.CallToolRequest, input CreateBudgetInput) (*mcp.CallToolResult, CreateBudgetOutput, error) {
	if _, err := time.Parse("2006-01", input.Month); err != nil {
		return nil, CreateBudgetOutput{}, fmt.Errorf("invalid month format (expected YYYY-MM): %w", err)
	}
	if input.MonthlyIncome <= 0 {
		return nil, CreateBudgetOutput{}, fmt.Errorf("monthlyIncome must be positive")
	}

	// Creating over an existing month keeps its savings goals
	var goals []*budget.SavingsGoal
	if existing, err := t.store.Load(ctx, input.Month); err == nil {
		goals = existing.SavingsGoals
	} else if !errors.Is(err, budget.ErrNoBudget) {
		return nil, CreateBudgetOutput{}, fmt.Errorf("failed to load existing budget: %w", err)
	}

	rec := t.engine.Recommend(input.MonthlyIncome, nil, goals, input.EmergencyBalance)
	ledger := budget.NewLedger(input.Month, input.MonthlyIncome, rec, goals)
	snapshot := ledger.Snapshot()

	if err := t.store.Save(ctx, snapshot); err != nil {
		return nil, CreateBudgetOutput{}, fmt.Errorf("failed to save budget: %w", err)
	}

	return nil, CreateBudgetOutput{
		Month:       input.Month,
		Explanation: rec.Explanation,
		Warnings:    rec.Warnings,
		Needs:       rec.NeedsTotal(),
		Wants:       rec.WantsTotal(),
		Savings:     rec.SavingsTotal(),
		Categories:  categoryEntries(snapshot),
	}, nil
}

// ViewBudget tool - retrieves a saved monthly budget
type ViewBudgetInput struct {
	Month string `json:"month,omitempty" jsonschema:"Month in YYYY-MM format (defaults to the current month)"`
}

type ViewBudgetOutput struct {
	Month          string          `json:"month" jsonschema:"Month of the budget"`
	MonthlyIncome  float64         `json:"monthlyIncome" jsonschema:"Monthly income the budget was built from"`
	TotalBudgeted  float64         `json:"totalBudgeted" jsonschema:"Total budgeted across all categories"`
	TotalSpent     float64         `json:"totalSpent" jsonschema:"Total spent across all categories"`
	TotalRemaining float64         `json:"totalRemaining" jsonschema:"Total remaining across all categories"`
	Follows503020  bool            `json:"follows503020" jsonschema:"Whether the budget follows the 50/30/20 split"`
	Categories     []CategoryEntry `json:"categories" jsonschema:"Per-category budget entries"`
	Goals          []GoalEntry     `json:"goals,omitempty" jsonschema:"Savings goals attached to this month"`
}

func (t *advisorTools) ViewBudget(ctx context.Context, req *mcp.CallToolRequest, input ViewBudgetInput) (*mcp.CallToolResult, ViewBudgetOutput, error) {
	month := input.Month
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, ViewBudgetOutput{}, fmt.Errorf("invalid month format (expected YYYY-MM): %w", err)
	}

	b, err := t.store.Load(ctx, month)
	if err != nil {
		if errors.Is(err, budget.ErrNoBudget) {
			return nil, ViewBudgetOutput{}, fmt.Errorf("no budget exists for %s; use create_budget first", month)
		}
		return nil, ViewBudgetOutput{}, fmt.Errorf("failed to load budget: %w", err)
	}

	out := ViewBudgetOutput{
		Month:          b.Month,
		MonthlyIncome:  b.MonthlyIncome,
		TotalBudgeted:  b.TotalBudgeted(),
		TotalSpent:     b.TotalSpent(),
		TotalRemaining: b.TotalRemaining(),
		Follows503020:  b.Follows503020(),
		Categories:     categoryEntries(b),
	}
	for _, g := range b.SavingsGoals {
		out.Goals = append(out.Goals, goalEntry(g))
	}

	return nil, out, nil
}

// RecordSpend tool - records spending against a budget category
type RecordSpendInput struct {
	Month    string  `json:"month" jsonschema:"Month in YYYY-MM format"`
	Category string  `json:"category" jsonschema:"Budget category name (e.g. Groceries, Eating Out)"`
	Amount   float64 `json:"amount" jsonschema:"Amount spent in dollars"`
}

type RecordSpendOutput struct {
	Category  string  `json:"category" jsonschema:"Category the spend was recorded against"`
	Budgeted  float64 `json:"budgeted" jsonschema:"Budgeted amount for the category"`
	Spent     float64 `json:"spent" jsonschema:"Total spent in the category this month"`
	Remaining float64 `json:"remaining" jsonschema:"Remaining budget in the category"`
	Overspent bool    `json:"overspent" jsonschema:"Whether the category is now overspent"`
}

func (t *advisorTools) RecordSpend(ctx context.Context, req *mcp.CallToolRequest, input RecordSpendInput) (*mcp.CallToolResult, RecordSpendOutput, error) {
	if input.Amount <= 0 {
		return nil, RecordSpendOutput{}, fmt.Errorf("amount must be positive")
	}

	category := budget.Category(input.Category)
	if !category.Valid() {
		return nil, RecordSpendOutput{}, fmt.Errorf("unknown category %q", input.Category)
	}

	b, err := t.store.Load(ctx, input.Month)
	if err != nil {
		if errors.Is(err, budget.ErrNoBudget) {
			return nil, RecordSpendOutput{}, fmt.Errorf("no budget exists for %s; use create_budget first", input.Month)
		}
		return nil, RecordSpendOutput{}, fmt.Errorf("failed to load budget: %w", err)
	}

	ledger := budget.NewLedgerFromBudget(b)
	if err := ledger.RecordSpend(category, input.Amount); err != nil {
		return nil, RecordSpendOutput{}, fmt.Errorf("failed to record spend: %w", err)
	}

	snapshot := ledger.Snapshot()
	if err := t.store.Save(ctx, snapshot); err != nil {
		return nil, RecordSpendOutput{}, fmt.Errorf("failed to save budget: %w", err)
	}

	cat := snapshot.Categories[category]
	return nil, RecordSpendOutput{
		Category:  string(category),
		Budgeted:  cat.BudgetedAmount,
		Spent:     cat.SpentAmount,
		Remaining: cat.Remaining(),
		Overspent: cat.IsOverspent(),
	}, nil
}

// AddSavingsGoal tool - attaches a savings goal to a monthly budget
type AddSavingsGoalInput struct {
	Month        string  `json:"month" jsonschema:"Month in YYYY-MM format"`
	Name         string  `json:"name" jsonschema:"What the goal is for (e.g. Trip to Hawaii)"`
	TargetAmount float64 `json:"targetAmount" jsonschema:"Total amount to save in dollars"`
	TargetDate   string  `json:"targetDate" jsonschema:"Target date in YYYY-MM-DD format, must be in the future"`
}

type AddSavingsGoalOutput struct {
	Goal           GoalEntry `json:"goal" jsonschema:"The created savings goal"`
	SavingsBudget  float64   `json:"savingsBudget" jsonschema:"Updated budgeted amount for the savings goals category"`
	MonthsToTarget int       `json:"monthsToTarget" jsonschema:"Whole months until the target date"`
}

func (t *advisorTools) AddSavingsGoal(ctx context.Context, req *mcp.CallToolRequest, input AddSavingsGoalInput) (*mcp.CallToolResult, AddSavingsGoalOutput, error) {
	b, err := t.store.Load(ctx, input.Month)
	if err != nil {
		if errors.Is(err, budget.ErrNoBudget) {
			return nil, AddSavingsGoalOutput{}, fmt.Errorf("no budget exists for %s; use create_budget first", input.Month)
		}
		return nil, AddSavingsGoalOutput{}, fmt.Errorf("failed to load budget: %w", err)
	}

	tracker := budget.NewGoalTracker()
	goal, err := tracker.AddGoal(input.Name, input.TargetAmount, input.TargetDate)
	if err != nil {
		return nil, AddSavingsGoalOutput{}, fmt.Errorf("failed to add goal: %w", err)
	}

	// The new contribution joins the combined goals bucket
	b.SavingsGoals = append(b.SavingsGoals, goal)
	ledger := budget.NewLedgerFromBudget(b)
	snapshot := ledger.Snapshot()
	if cat, ok := snapshot.Categories[budget.CategorySavingsGoals]; ok {
		cat.BudgetedAmount += goal.MonthlyContribution
	}

	if err := t.store.Save(ctx, snapshot); err != nil {
		return nil, AddSavingsGoalOutput{}, fmt.Errorf("failed to save budget: %w", err)
	}

	var savingsBudget float64
	if cat, ok := snapshot.Categories[budget.CategorySavingsGoals]; ok {
		savingsBudget = cat.BudgetedAmount
	}

	return nil, AddSavingsGoalOutput{
		Goal:           goalEntry(goal),
		SavingsBudget:  savingsBudget,
		MonthsToTarget: goal.MonthsUntilTarget(time.Now()),
	}, nil
}

// GetAccounts tool - retrieves linked bank accounts
type GetAccountsInput struct {
	SessionID string `json:"sessionId,omitempty" jsonschema:"Financial Connections session ID (defaults to STRIPE_SESSION_ID)"`
}

type AccountEntry struct {
	ID          string  `json:"id" jsonschema:"Account ID"`
	Name        string  `json:"name" jsonschema:"Account display name"`
	Type        string  `json:"type" jsonschema:"Account type (e.g. checking, savings, credit_card)"`
	Balance     float64 `json:"balance" jsonschema:"Current balance in dollars"`
	Institution string  `json:"institution,omitempty" jsonschema:"Financial institution name"`
}

type GetAccountsOutput struct {
	Accounts []AccountEntry `json:"accounts" jsonschema:"List of linked bank accounts"`
	Count    int            `json:"count" jsonschema:"Number of accounts"`
}

func (t *advisorTools) GetAccounts(ctx context.Context, req *mcp.CallToolRequest, input GetAccountsInput) (*mcp.CallToolResult, GetAccountsOutput, error) {
	if t.bank == nil {
		return nil, GetAccountsOutput{}, fmt.Errorf("bank access is not configured; set STRIPE_API_KEY")
	}

	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = t.sessionID
	}
	if sessionID == "" {
		return nil, GetAccountsOutput{}, fmt.Errorf("no session ID provided; set STRIPE_SESSION_ID or pass sessionId")
	}

	accounts, err := t.bank.Accounts.List(ctx, sessionID)
	if err != nil {
		return nil, GetAccountsOutput{}, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	var entries []AccountEntry
	for _, acc := range accounts {
		entries = append(entries, AccountEntry{
			ID:          acc.ID,
			Name:        acc.Name,
			Type:        string(acc.Type),
			Balance:     acc.Balance,
			Institution: acc.InstitutionName,
		})
	}

	return nil, GetAccountsOutput{
		Accounts: entries,
		Count:    len(entries),
	}, nil
}

// GetQuote tool - retrieves the latest stock quote
type GetQuoteInput struct {
	Symbol string `json:"symbol" jsonschema:"Stock ticker symbol (e.g. VOO, AAPL)"`
}

type GetQuoteOutput struct {
	Symbol    string  `json:"symbol" jsonschema:"Stock ticker symbol"`
	BidPrice  float64 `json:"bidPrice" jsonschema:"Best bid price"`
	AskPrice  float64 `json:"askPrice" jsonschema:"Best ask price"`
	LastPrice float64 `json:"lastPrice" jsonschema:"Last trade price (falls back to the ask)"`
	Spread    float64 `json:"spread" jsonschema:"Bid-ask spread"`
	MidPrice  float64 `json:"midPrice" jsonschema:"Midpoint between bid and ask"`
}

func (t *advisorTools) GetQuote(ctx context.Context, req *mcp.CallToolRequest, input GetQuoteInput) (*mcp.CallToolResult, GetQuoteOutput, error) {
	if t.broker == nil {
		return nil, GetQuoteOutput{}, fmt.Errorf("brokerage access is not configured; set ALPACA_API_KEY and ALPACA_API_SECRET")
	}

	quote, err := t.broker.MarketData.GetLatestQuote(ctx, input.Symbol)
	if err != nil {
		return nil, GetQuoteOutput{}, fmt.Errorf("failed to fetch quote: %w", err)
	}

	return nil, GetQuoteOutput{
		Symbol:    quote.Symbol,
		BidPrice:  quote.BidPrice,
		AskPrice:  quote.AskPrice,
		LastPrice: quote.LastPrice,
		Spread:    quote.Spread(),
		MidPrice:  quote.MidPrice(),
	}, nil
}

// categoryEntries flattens a budget's categories in the fixed display order
func categoryEntries(b *budget.MonthlyBudget) []CategoryEntry {
	var entries []CategoryEntry
	for _, cat := range budget.AllCategories() {
		cb, ok := b.Categories[cat]
		if !ok {
			continue
		}
		entries = append(entries, CategoryEntry{
			Category:   string(cat),
			Group:      categoryGroup(cat),
			Budgeted:   cb.BudgetedAmount,
			Spent:      cb.SpentAmount,
			Remaining:  cb.Remaining(),
			Percentage: cb.PercentageUsed(),
			Overspent:  cb.IsOverspent(),
		})
	}
	return entries
}

func categoryGroup(c budget.Category) string {
	for _, cat := range budget.EssentialCategories() {
		if cat == c {
			return "needs"
		}
	}
	for _, cat := range budget.SavingsCategories() {
		if cat == c {
			return "savings"
		}
	}
	return "wants"
}

func goalEntry(g *budget.SavingsGoal) GoalEntry {
	return GoalEntry{
		ID:                  g.ID,
		Name:                g.Name,
		TargetAmount:        g.TargetAmount,
		TargetDate:          g.TargetDate.String(),
		CurrentSaved:        g.CurrentSaved,
		MonthlyContribution: g.MonthlyContribution,
		Progress:            g.ProgressPercentage(),
	}
}
