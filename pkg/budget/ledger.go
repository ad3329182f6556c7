package budget

import (
	"time"

	"github.com/pkg/errors"
)

// Ledger is the single-owner mutable record of the active month's budget.
// It tracks spend against the plan; one ledger per session, no sharing.
type Ledger struct {
	budget *MonthlyBudget
	now    func() time.Time
}

// NewLedger materializes a recommendation into a tracked monthly budget.
// month uses the "YYYY-MM" format.
func NewLedger(month string, income float64, rec *Recommendation, goals []*SavingsGoal) *Ledger {
	return newLedger(month, income, rec, goals, time.Now)
}

// NewLedgerWithClock is NewLedger with an injected clock for tests
func NewLedgerWithClock(month string, income float64, rec *Recommendation, goals []*SavingsGoal, now func() time.Time) *Ledger {
	return newLedger(month, income, rec, goals, now)
}

func newLedger(month string, income float64, rec *Recommendation, goals []*SavingsGoal, now func() time.Time) *Ledger {
	ts := now()
	categories := make(map[Category]*CategoryBudget, len(allCategories))

	if rec != nil {
		for _, cat := range allCategories {
			amount := rec.RecommendedBudget[cat]
			categories[cat] = &CategoryBudget{
				Category:       cat,
				BudgetedAmount: amount,
				LastUpdated:    ts,
			}
		}
	}

	return &Ledger{
		budget: &MonthlyBudget{
			Month:         month,
			MonthlyIncome: income,
			Categories:    categories,
			SavingsGoals:  goals,
			CreatedAt:     ts,
			LastUpdated:   ts,
		},
		now: now,
	}
}

// NewLedgerFromBudget wraps an already-loaded monthly budget
func NewLedgerFromBudget(b *MonthlyBudget) *Ledger {
	if b.Categories == nil {
		b.Categories = make(map[Category]*CategoryBudget)
	}
	return &Ledger{budget: b, now: time.Now}
}

// RecordSpend adds spend to a category and bumps its timestamp
func (l *Ledger) RecordSpend(category Category, amount float64) error {
	if !category.Valid() {
		return errors.Wrapf(ErrInvalidCategory, "%q", category)
	}

	ts := l.now()
	cat, ok := l.budget.Categories[category]
	if !ok {
		cat = &CategoryBudget{Category: category}
		l.budget.Categories[category] = cat
	}

	cat.SpentAmount += amount
	cat.LastUpdated = ts
	l.budget.LastUpdated = ts
	return nil
}

// Snapshot returns a deep-copied read-only view of the budget
func (l *Ledger) Snapshot() *MonthlyBudget {
	out := &MonthlyBudget{
		Month:         l.budget.Month,
		MonthlyIncome: l.budget.MonthlyIncome,
		Categories:    make(map[Category]*CategoryBudget, len(l.budget.Categories)),
		SavingsGoals:  make([]*SavingsGoal, len(l.budget.SavingsGoals)),
		CreatedAt:     l.budget.CreatedAt,
		LastUpdated:   l.budget.LastUpdated,
	}

	for cat, cb := range l.budget.Categories {
		copied := *cb
		out.Categories[cat] = &copied
	}
	for i, goal := range l.budget.SavingsGoals {
		copied := *goal
		out.SavingsGoals[i] = &copied
	}

	return out
}
