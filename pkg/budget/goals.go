package budget

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// SavingsGoal is a specific thing the user is saving for, with a deadline
type SavingsGoal struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"` // "Trip to Hawaii", "New Car", etc.
	TargetAmount        float64   `json:"targetAmount"`
	TargetDate          Date      `json:"targetDate"`
	CurrentSaved        float64   `json:"currentSaved"`
	MonthlyContribution float64   `json:"monthlyContribution"`
	Priority            int       `json:"priority"` // 1 = highest, 5 = lowest
	CreatedAt           time.Time `json:"createdAt"`
}

// RemainingAmount returns how much more needs to be saved
func (g *SavingsGoal) RemainingAmount() float64 {
	return math.Max(0, g.TargetAmount-g.CurrentSaved)
}

// MonthsUntilTarget returns whole calendar months until the target date,
// never less than 1 so contribution math cannot divide by zero. Goals due
// this month (or already past due) count as one month out.
func (g *SavingsGoal) MonthsUntilTarget(now time.Time) int {
	months := (g.TargetDate.Year()-now.Year())*12 + int(g.TargetDate.Month()) - int(now.Month())
	if months < 1 {
		return 1
	}
	return months
}

// RecommendedMonthly returns the contribution needed per month to hit the
// goal by its target date, assuming linear accumulation.
func (g *SavingsGoal) RecommendedMonthly(now time.Time) float64 {
	return g.RemainingAmount() / float64(g.MonthsUntilTarget(now))
}

// IsAchievable reports whether the current contribution keeps the goal on track
func (g *SavingsGoal) IsAchievable(now time.Time) bool {
	return g.MonthlyContribution >= g.RecommendedMonthly(now)
}

// ProgressPercentage returns progress toward the goal, clamped to [0, 100].
// A zero target counts as complete.
func (g *SavingsGoal) ProgressPercentage() float64 {
	if g.TargetAmount == 0 {
		return 100
	}
	pct := g.CurrentSaved / g.TargetAmount * 100
	return math.Max(0, math.Min(100, pct))
}

// GoalTracker owns the set of active savings goals for a session. Goals are
// never expired automatically; a passed target date is the caller's concern.
type GoalTracker struct {
	goals []*SavingsGoal
	now   func() time.Time
}

// NewGoalTracker creates an empty tracker
func NewGoalTracker() *GoalTracker {
	return &GoalTracker{now: time.Now}
}

// NewGoalTrackerWithClock creates a tracker with an injected clock for tests
func NewGoalTrackerWithClock(now func() time.Time) *GoalTracker {
	return &GoalTracker{now: now}
}

// AddGoal validates and registers a new savings goal. The monthly
// contribution starts at the recommended amount for the target date; the
// caller may edit it afterwards.
func (t *GoalTracker) AddGoal(name string, targetAmount float64, targetDate string) (*SavingsGoal, error) {
	if targetAmount <= 0 {
		return nil, &GoalValidationError{
			Field:   "targetAmount",
			Message: "must be greater than zero",
			Value:   targetAmount,
		}
	}

	date, err := ParseDate(targetDate)
	if err != nil {
		return nil, &GoalValidationError{
			Field:   "targetDate",
			Message: "expected YYYY-MM-DD",
			Value:   targetDate,
		}
	}

	now := t.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return nil, &GoalValidationError{
			Field:   "targetDate",
			Message: "must not be in the past",
			Value:   targetDate,
		}
	}

	goal := &SavingsGoal{
		ID:           uuid.NewString(),
		Name:         name,
		TargetAmount: targetAmount,
		TargetDate:   date,
		Priority:     1,
		CreatedAt:    now,
	}
	goal.MonthlyContribution = round2(goal.RecommendedMonthly(now))

	t.goals = append(t.goals, goal)
	return goal, nil
}

// Goals returns the active goals in insertion order
func (t *GoalTracker) Goals() []*SavingsGoal {
	out := make([]*SavingsGoal, len(t.goals))
	copy(out, t.goals)
	return out
}

// Get returns the goal with the given ID
func (t *GoalTracker) Get(id string) (*SavingsGoal, error) {
	for _, g := range t.goals {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, ErrGoalNotFound
}

// SetContribution overrides a goal's monthly contribution
func (t *GoalTracker) SetContribution(id string, amount float64) error {
	goal, err := t.Get(id)
	if err != nil {
		return err
	}
	if amount < 0 {
		return &GoalValidationError{
			Field:   "monthlyContribution",
			Message: "must not be negative",
			Value:   amount,
		}
	}
	goal.MonthlyContribution = amount
	return nil
}

// RecordContribution adds to a goal's saved balance
func (t *GoalTracker) RecordContribution(id string, amount float64) error {
	goal, err := t.Get(id)
	if err != nil {
		return err
	}
	goal.CurrentSaved += amount
	return nil
}
