package budget

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryBudget_PercentageUsed(t *testing.T) {
	tests := []struct {
		name     string
		budgeted float64
		spent    float64
		expected float64
	}{
		{"half used", 200, 100, 50},
		{"overspent caps at 100", 200, 500, 100},
		{"zero budget is 0%", 0, 100, 0},
		{"untouched", 200, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := &CategoryBudget{BudgetedAmount: tt.budgeted, SpentAmount: tt.spent}
			assert.Equal(t, tt.expected, cb.PercentageUsed())
		})
	}
}

func budgetWith(income float64, amounts map[Category]float64) *MonthlyBudget {
	categories := make(map[Category]*CategoryBudget)
	for cat, amount := range amounts {
		categories[cat] = &CategoryBudget{Category: cat, BudgetedAmount: amount}
	}
	return &MonthlyBudget{
		Month:         "2026-08",
		MonthlyIncome: income,
		Categories:    categories,
	}
}

func TestMonthlyBudget_Follows503020(t *testing.T) {
	balanced := budgetWith(3000, map[Category]float64{
		CategoryHousing:       1200,
		CategoryGroceries:     300,  // needs 1500 = 50%
		CategoryEatingOut:     600,
		CategoryShopping:      300,  // wants 900 = 30%
		CategoryEmergencyFund: 300,
		CategoryRetirement:    300,  // savings 600 = 20%
	})
	assert.True(t, balanced.Follows503020())

	topHeavy := budgetWith(3000, map[Category]float64{
		CategoryHousing: 2400, // needs 80%
	})
	assert.False(t, topHeavy.Follows503020())

	zeroIncome := budgetWith(0, nil)
	assert.False(t, zeroIncome.Follows503020(), "zero income never follows the rule")
}

func TestMonthlyBudget_SavingsTotalIncludesGoalContributions(t *testing.T) {
	b := budgetWith(3000, map[Category]float64{
		CategoryEmergencyFund: 300,
	})
	b.SavingsGoals = []*SavingsGoal{
		{Name: "Trip", TargetAmount: 1000, MonthlyContribution: 150},
		{Name: "Car", TargetAmount: 5000, MonthlyContribution: 250},
	}

	assert.Equal(t, 700.0, b.SavingsTotal())
	assert.Equal(t, 400.0, b.TotalGoalContributions())
}

func TestMonthlyBudget_JSONRoundTrip(t *testing.T) {
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	original := budgetWith(3000, map[Category]float64{
		CategoryHousing:      1234.56,
		CategoryEatingOut:    78.90,
		CategorySavingsGoals: 166.67,
	})
	original.CreatedAt = created
	original.LastUpdated = created
	original.SavingsGoals = []*SavingsGoal{{
		ID:                  "goal-1",
		Name:                "Trip to Hawaii",
		TargetAmount:        1000,
		TargetDate:          NewDate(2027, time.February, 15),
		CurrentSaved:        250.25,
		MonthlyContribution: 166.67,
		Priority:            1,
		CreatedAt:           created,
	}}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var restored MonthlyBudget
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, original.Month, restored.Month)
	assert.Equal(t, original.MonthlyIncome, restored.MonthlyIncome)
	require.Len(t, restored.Categories, len(original.Categories))
	for cat, cb := range original.Categories {
		got, ok := restored.Categories[cat]
		require.True(t, ok, "category key %q must survive the round trip", cat)
		assert.Equal(t, cb.BudgetedAmount, got.BudgetedAmount)
		assert.Equal(t, cb.SpentAmount, got.SpentAmount)
	}

	require.Len(t, restored.SavingsGoals, 1)
	goal := restored.SavingsGoals[0]
	assert.Equal(t, "2027-02-15", goal.TargetDate.String())
	assert.Equal(t, 166.67, goal.MonthlyContribution)
}
