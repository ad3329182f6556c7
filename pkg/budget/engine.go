package budget

import (
	"fmt"
	"strings"
)

// Engine produces budget recommendations from income, spending history, and
// savings goals. It performs no I/O; infeasible budgets come back as
// warnings on a still-complete recommendation, never as errors.
type Engine struct{}

// NewEngine creates an allocation engine
func NewEngine() *Engine {
	return &Engine{}
}

// Recommend builds a complete monthly budget from the 50/30/20 rule:
//
//   - essential categories get their actual average spend (warned, not
//     scaled, when they exceed the 50% pool)
//   - the emergency fund builds toward 3 months of income, capped at 10% of
//     income per month and spread over 6 months
//   - retirement gets a flat 5% of income
//   - goal contributions are honored even when savings exceed the 20% pool
//   - wants absorb whatever income remains, scaled down proportionally when
//     history exceeds the headroom
//
// The same inputs always produce the same recommendation.
func (e *Engine) Recommend(income float64, avgSpending map[Category]float64, goals []*SavingsGoal, emergencyBalance float64) *Recommendation {
	if avgSpending == nil {
		avgSpending = map[Category]float64{}
	}

	needsBudget := income * needsShare
	savingsBudget := income * savingsShare

	recommended := make(map[Category]float64, len(allCategories))
	var adjustments []string
	var warnings []string

	// 1. Needs: use actual average spend. The 50% pool is a ceiling check,
	// not a floor to fill.
	essentials := EssentialCategories()
	var totalEssentials float64
	for _, cat := range essentials {
		totalEssentials += avgSpending[cat]
	}

	if totalEssentials > needsBudget {
		warnings = append(warnings, fmt.Sprintf(
			"Your essential expenses ($%.2f) are more than 50%% of your income. This leaves less for wants and savings.",
			totalEssentials,
		))
		adjustments = append(adjustments, "Used actual spending for essentials (they're over 50%)")
	}
	for _, cat := range essentials {
		recommended[cat] = avgSpending[cat]
	}

	// 2. Emergency fund: build toward 3 months of income
	emergencyTarget := income * 3
	if emergencyBalance < emergencyTarget {
		monthly := income * 0.10
		if gap := (emergencyTarget - emergencyBalance) / 6; gap < monthly {
			monthly = gap
		}
		recommended[CategoryEmergencyFund] = round2(monthly)
		adjustments = append(adjustments, fmt.Sprintf("Building emergency fund: $%.2f/month", monthly))
	} else {
		recommended[CategoryEmergencyFund] = 0
	}

	// 3. Retirement: flat 5% of income
	recommended[CategoryRetirement] = round2(income * 0.05)

	// 4. User goals land in a single combined bucket; the explanation
	// itemizes them.
	var totalGoalSavings float64
	for _, goal := range goals {
		totalGoalSavings += goal.MonthlyContribution
	}
	recommended[CategorySavingsGoals] = round2(totalGoalSavings)

	// 5. Savings commitments are honored over the nominal 20% target
	var totalSavingsAllocated float64
	for _, cat := range SavingsCategories() {
		totalSavingsAllocated += recommended[cat]
	}
	totalSavingsAllocated += totalGoalSavings

	if totalSavingsAllocated > savingsBudget {
		warnings = append(warnings, fmt.Sprintf(
			"Your savings goals ($%.2f) exceed 20%% of income. You may need to adjust timelines or reduce spending elsewhere.",
			totalSavingsAllocated,
		))
	}

	// 6. Wants get whatever is left after needs and savings
	wants := WantsCategories()
	var totalWants float64
	for _, cat := range wants {
		totalWants += avgSpending[cat]
	}

	var needsAllocated float64
	for _, cat := range essentials {
		needsAllocated += recommended[cat]
	}
	availableForWants := income - needsAllocated - totalSavingsAllocated

	if totalWants > availableForWants {
		scale := 1.0
		if totalWants > 0 {
			scale = availableForWants / totalWants
		}
		// Needs plus savings can exceed income outright; wants floor at
		// zero rather than going negative.
		if scale < 0 {
			scale = 0
			warnings = append(warnings, "Essentials and savings commitments use up your entire income, leaving nothing for non-essential spending.")
		}
		for _, cat := range wants {
			recommended[cat] = round2(avgSpending[cat] * scale)
		}
		adjustments = append(adjustments, fmt.Sprintf(
			"Reduced non-essential spending by %.0f%% to fit budget", (1-scale)*100,
		))
	} else {
		for _, cat := range wants {
			recommended[cat] = avgSpending[cat]
		}
	}

	// 7. Anything not yet assigned defaults to its historical average
	for _, cat := range allCategories {
		if _, ok := recommended[cat]; !ok {
			recommended[cat] = avgSpending[cat]
		}
	}

	var totalAllocated float64
	for _, cat := range allCategories {
		totalAllocated += recommended[cat]
	}

	meetsGoals := totalSavingsAllocated >= totalGoalSavings

	rec := &Recommendation{
		RecommendedBudget: recommended,
		TotalAllocated:    round2(totalAllocated),
		MeetsGoals:        meetsGoals,
		AdjustmentsMade:   adjustments,
		Warnings:          warnings,
	}
	rec.Explanation = buildExplanation(income, rec, goals)

	return rec
}

// buildExplanation renders the human-readable breakdown shown to the user
func buildExplanation(income float64, rec *Recommendation, goals []*SavingsGoal) string {
	needs := rec.NeedsTotal()
	wants := rec.WantsTotal()
	savings := rec.SavingsTotal()

	var needsPct, wantsPct, savingsPct float64
	if income > 0 {
		needsPct = needs / income * 100
		wantsPct = wants / income * 100
		savingsPct = savings / income * 100
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your Monthly Budget ($%.2f income):\n\n", income)
	b.WriteString("Budget Breakdown:\n")
	fmt.Fprintf(&b, "  - Needs (essentials): $%.2f (%.0f%%)\n", needs, needsPct)
	fmt.Fprintf(&b, "  - Wants (fun stuff): $%.2f (%.0f%%)\n", wants, wantsPct)
	fmt.Fprintf(&b, "  - Savings & Goals: $%.2f (%.0f%%)\n", savings, savingsPct)
	b.WriteString("\nYour Savings Goals:\n")

	if len(goals) > 0 {
		for _, goal := range goals {
			fmt.Fprintf(&b, "  - %s: $%.2f / $%.2f (%.0f%%)\n",
				goal.Name, goal.CurrentSaved, goal.TargetAmount, goal.ProgressPercentage())
			fmt.Fprintf(&b, "    Saving $%.2f/month, target %s\n",
				goal.MonthlyContribution, goal.TargetDate.Format("January 2006"))
		}
	} else {
		b.WriteString("  (No specific goals set yet)\n")
	}

	if rec.MeetsGoals {
		b.WriteString("\nThis budget will help you reach your goals on time!")
	} else {
		b.WriteString("\nTo meet your goals, you may need to earn more or adjust your timeline.")
	}

	return b.String()
}
