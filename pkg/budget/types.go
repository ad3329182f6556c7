package budget

import (
	"math"
	"time"
)

// Transaction is an immutable bank transaction record. Negative amounts are
// expenses, positive amounts income.
type Transaction struct {
	ID           string    `json:"id"`
	AccountID    string    `json:"accountId"`
	Date         time.Time `json:"date"`
	Description  string    `json:"description"`
	MerchantName string    `json:"merchantName,omitempty"`
	Amount       float64   `json:"amount"`
	Category     Category  `json:"category,omitempty"`
	Pending      bool      `json:"pending"`
}

// IsExpense reports whether the transaction is money out
func (t *Transaction) IsExpense() bool {
	return t.Amount < 0
}

// CategoryBudget tracks budgeted versus actual spend for one category within
// one monthly budget.
type CategoryBudget struct {
	Category       Category  `json:"category"`
	BudgetedAmount float64   `json:"budgetedAmount"`
	SpentAmount    float64   `json:"spentAmount"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

// Remaining returns the unspent budget; negative when overspent
func (c *CategoryBudget) Remaining() float64 {
	return c.BudgetedAmount - c.SpentAmount
}

// IsOverspent reports whether spending exceeded the budgeted amount
func (c *CategoryBudget) IsOverspent() bool {
	return c.SpentAmount > c.BudgetedAmount
}

// PercentageUsed returns how much of the budget is used, capped at 100.
// A zero budget reports 0%.
func (c *CategoryBudget) PercentageUsed() float64 {
	if c.BudgetedAmount == 0 {
		return 0
	}
	return math.Min(100, c.SpentAmount/c.BudgetedAmount*100)
}

// MonthlyBudget is the complete budget for one calendar month. A budget is
// owned by a single session; concurrent mutation is the caller's problem.
type MonthlyBudget struct {
	Month         string                       `json:"month"` // "2025-11" format
	MonthlyIncome float64                      `json:"monthlyIncome"`
	Categories    map[Category]*CategoryBudget `json:"categories"`
	SavingsGoals  []*SavingsGoal               `json:"savingsGoals"`
	CreatedAt     time.Time                    `json:"createdAt"`
	LastUpdated   time.Time                    `json:"lastUpdated"`
}

// TotalBudgeted returns the total amount budgeted across all categories
func (b *MonthlyBudget) TotalBudgeted() float64 {
	var total float64
	for _, cat := range b.Categories {
		total += cat.BudgetedAmount
	}
	return total
}

// TotalSpent returns the total amount spent across all categories
func (b *MonthlyBudget) TotalSpent() float64 {
	var total float64
	for _, cat := range b.Categories {
		total += cat.SpentAmount
	}
	return total
}

// TotalRemaining returns the total budget remaining
func (b *MonthlyBudget) TotalRemaining() float64 {
	return b.TotalBudgeted() - b.TotalSpent()
}

// TotalGoalContributions returns the sum of monthly contributions across goals
func (b *MonthlyBudget) TotalGoalContributions() float64 {
	var total float64
	for _, goal := range b.SavingsGoals {
		total += goal.MonthlyContribution
	}
	return total
}

// OverspentCategories returns the categories that are over budget, in the
// taxonomy's fixed order.
func (b *MonthlyBudget) OverspentCategories() []*CategoryBudget {
	var out []*CategoryBudget
	for _, c := range allCategories {
		if cat, ok := b.Categories[c]; ok && cat.IsOverspent() {
			out = append(out, cat)
		}
	}
	return out
}

// NeedsTotal returns the total budgeted for essential needs
func (b *MonthlyBudget) NeedsTotal() float64 {
	return b.sumGroup(EssentialCategories())
}

// WantsTotal returns the total budgeted for wants
func (b *MonthlyBudget) WantsTotal() float64 {
	return b.sumGroup(WantsCategories())
}

// SavingsTotal returns the total budgeted for savings categories plus goal
// contributions.
func (b *MonthlyBudget) SavingsTotal() float64 {
	return b.sumGroup(SavingsCategories()) + b.TotalGoalContributions()
}

func (b *MonthlyBudget) sumGroup(group []Category) float64 {
	var total float64
	for _, c := range group {
		if cat, ok := b.Categories[c]; ok {
			total += cat.BudgetedAmount
		}
	}
	return total
}

// Follows503020 reports whether the budget roughly follows the 50/30/20
// rule, allowing 10% variance per bucket. A zero-income budget never does.
func (b *MonthlyBudget) Follows503020() bool {
	if b.MonthlyIncome == 0 {
		return false
	}

	needsPct := b.NeedsTotal() / b.MonthlyIncome * 100
	wantsPct := b.WantsTotal() / b.MonthlyIncome * 100
	savingsPct := b.SavingsTotal() / b.MonthlyIncome * 100

	return needsPct >= 40 && needsPct <= 60 &&
		wantsPct >= 20 && wantsPct <= 40 &&
		savingsPct >= 10 && savingsPct <= 30
}

// Recommendation is the allocation engine's output: a complete
// category-by-category monthly plan plus the trade-offs made to reach it.
type Recommendation struct {
	RecommendedBudget map[Category]float64 `json:"recommendedBudget"`
	TotalAllocated    float64              `json:"totalAllocated"`
	MeetsGoals        bool                 `json:"meetsGoals"`
	Explanation       string               `json:"explanation"`
	AdjustmentsMade   []string             `json:"adjustmentsMade,omitempty"`
	Warnings          []string             `json:"warnings,omitempty"`
}

// NeedsTotal returns the recommended total for essential categories
func (r *Recommendation) NeedsTotal() float64 {
	return r.sumGroup(EssentialCategories())
}

// WantsTotal returns the recommended total for wants categories
func (r *Recommendation) WantsTotal() float64 {
	return r.sumGroup(WantsCategories())
}

// SavingsTotal returns the recommended total for savings categories
func (r *Recommendation) SavingsTotal() float64 {
	return r.sumGroup(SavingsCategories())
}

func (r *Recommendation) sumGroup(group []Category) float64 {
	var total float64
	for _, c := range group {
		total += r.RecommendedBudget[c]
	}
	return total
}

// round2 rounds to the 2-decimal currency convention used throughout
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
