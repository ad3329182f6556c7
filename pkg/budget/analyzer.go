package budget

import (
	"github.com/centsible/centsible-go/internal/types"
)

// AnalyzeSpending aggregates transaction history into average monthly spend
// per category over the trailing window. Only expenses count; income and
// pending zero-amount records are ignored. Categories with no spend are
// absent from the result.
func AnalyzeSpending(transactions []*Transaction, months int) map[Category]float64 {
	return analyzeSpending(transactions, months, nil)
}

// AnalyzeSpendingWithLogger is AnalyzeSpending with skip logging for
// malformed records.
func AnalyzeSpendingWithLogger(transactions []*Transaction, months int, log types.Logger) map[Category]float64 {
	return analyzeSpending(transactions, months, log)
}

func analyzeSpending(transactions []*Transaction, months int, log types.Logger) map[Category]float64 {
	if months < 1 {
		months = 1
	}

	totals := make(map[Category]float64)

	for _, txn := range transactions {
		if txn == nil {
			if log != nil {
				log.Warn("skipping nil transaction record")
			}
			continue
		}
		if !txn.IsExpense() {
			continue
		}

		merchant := txn.MerchantName
		if merchant == "" {
			merchant = txn.Description
		}

		category := Classify(merchant, txn.Description)
		totals[category] += -txn.Amount
	}

	averages := make(map[Category]float64, len(totals))
	for category, total := range totals {
		averages[category] = round2(total / float64(months))
	}

	return averages
}
