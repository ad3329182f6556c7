package budget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func expense(merchant, description string, amount float64) *Transaction {
	return &Transaction{
		ID:           "txn-" + merchant,
		AccountID:    "acct-1",
		Date:         time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
		Description:  description,
		MerchantName: merchant,
		Amount:       amount,
	}
}

func TestAnalyzeSpending_AveragesOverMonths(t *testing.T) {
	txns := []*Transaction{
		expense("Trader Joe's", "Groceries", -150.00),
		expense("Safeway", "grocery run", -150.00),
		expense("Starbucks", "Coffee", -30.00),
	}

	result := AnalyzeSpending(txns, 3)

	assert.InDelta(t, 100.00, result[CategoryGroceries], 0.001)
	assert.InDelta(t, 10.00, result[CategoryEatingOut], 0.001)
}

func TestAnalyzeSpending_IgnoresIncome(t *testing.T) {
	txns := []*Transaction{
		expense("Employer", "Payroll deposit", 5000.00),
		expense("Starbucks", "Coffee", -12.50),
	}

	result := AnalyzeSpending(txns, 1)

	assert.Len(t, result, 1)
	assert.InDelta(t, 12.50, result[CategoryEatingOut], 0.001)
}

func TestAnalyzeSpending_ZeroSpendCategoriesAbsent(t *testing.T) {
	result := AnalyzeSpending([]*Transaction{
		expense("Netflix", "streaming", -15.99),
	}, 1)

	assert.Len(t, result, 1)
	_, hasGroceries := result[CategoryGroceries]
	assert.False(t, hasGroceries, "zero-spend categories must be absent, not zero")
}

func TestAnalyzeSpending_RoundsToTwoDecimals(t *testing.T) {
	result := AnalyzeSpending([]*Transaction{
		expense("Landlord", "rent", -1000.00),
	}, 3)

	assert.Equal(t, 333.33, result[CategoryHousing])
}

func TestAnalyzeSpending_FallsBackToDescription(t *testing.T) {
	txn := expense("", "uber trip downtown", -18.00)

	result := AnalyzeSpending([]*Transaction{txn}, 1)

	assert.InDelta(t, 18.00, result[CategoryTransportation], 0.001)
}

func TestAnalyzeSpending_SkipsMalformedRecords(t *testing.T) {
	txns := []*Transaction{
		nil,
		expense("Starbucks", "Coffee", -10.00),
	}

	assert.NotPanics(t, func() {
		result := AnalyzeSpending(txns, 1)
		assert.InDelta(t, 10.00, result[CategoryEatingOut], 0.001)
	})
}

func TestAnalyzeSpending_EmptyInput(t *testing.T) {
	result := AnalyzeSpending(nil, 3)
	assert.Empty(t, result)
}
