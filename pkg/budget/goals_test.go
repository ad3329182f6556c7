package budget

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 10, 0, 0, 0, time.UTC)
	}
}

func TestGoalTracker_AddGoal(t *testing.T) {
	tracker := NewGoalTrackerWithClock(fixedClock(2026, time.August, 29))

	goal, err := tracker.AddGoal("Trip to Hawaii", 1000, "2027-02-15")
	require.NoError(t, err)

	assert.NotEmpty(t, goal.ID)
	assert.Equal(t, "Trip to Hawaii", goal.Name)
	assert.Equal(t, 1000.0, goal.TargetAmount)
	// Six months out: 1000 / 6, rounded to the cent
	assert.Equal(t, 166.67, goal.MonthlyContribution)
	assert.Len(t, tracker.Goals(), 1)
}

func TestGoalTracker_AddGoal_Validation(t *testing.T) {
	tracker := NewGoalTrackerWithClock(fixedClock(2026, time.August, 29))

	tests := []struct {
		name   string
		amount float64
		date   string
	}{
		{"zero amount", 0, "2027-01-01"},
		{"negative amount", -50, "2027-01-01"},
		{"garbage date", 500, "next spring"},
		{"past date", 500, "2025-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tracker.AddGoal("goal", tt.amount, tt.date)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidGoal)

			var verr *GoalValidationError
			assert.True(t, errors.As(err, &verr))
		})
	}
	assert.Empty(t, tracker.Goals())
}

func TestSavingsGoal_MonthsUntilTarget(t *testing.T) {
	now := time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		target   Date
		expected int
	}{
		{"six months out", NewDate(2027, time.February, 15), 6},
		{"next month", NewDate(2026, time.September, 1), 1},
		{"same month", NewDate(2026, time.August, 31), 1},
		{"already passed", NewDate(2026, time.March, 1), 1},
		{"multi-year", NewDate(2028, time.August, 1), 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := &SavingsGoal{TargetAmount: 1200, TargetDate: tt.target}
			assert.Equal(t, tt.expected, goal.MonthsUntilTarget(now))
			assert.GreaterOrEqual(t, goal.MonthsUntilTarget(now), 1)
		})
	}
}

func TestSavingsGoal_RecommendedMonthly(t *testing.T) {
	now := time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)
	goal := &SavingsGoal{
		TargetAmount: 1200,
		CurrentSaved: 200,
		TargetDate:   NewDate(2027, time.April, 1), // 8 months out
	}

	assert.InDelta(t, 125.0, goal.RecommendedMonthly(now), 0.001)
	assert.Equal(t, 1000.0, goal.RemainingAmount())
}

func TestSavingsGoal_RemainingAmount_NeverNegative(t *testing.T) {
	goal := &SavingsGoal{TargetAmount: 100, CurrentSaved: 250}
	assert.Equal(t, 0.0, goal.RemainingAmount())
}

func TestSavingsGoal_IsAchievable(t *testing.T) {
	now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	goal := &SavingsGoal{
		TargetAmount: 600,
		TargetDate:   NewDate(2027, time.February, 1), // 6 months
	}

	goal.MonthlyContribution = 100
	assert.True(t, goal.IsAchievable(now))

	goal.MonthlyContribution = 50
	assert.False(t, goal.IsAchievable(now))
}

func TestSavingsGoal_ProgressPercentage(t *testing.T) {
	tests := []struct {
		name     string
		target   float64
		saved    float64
		expected float64
	}{
		{"halfway", 1000, 500, 50},
		{"over-saved clamps", 1000, 1500, 100},
		{"zero target is complete", 0, 0, 100},
		{"nothing saved", 1000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := &SavingsGoal{TargetAmount: tt.target, CurrentSaved: tt.saved}
			assert.Equal(t, tt.expected, goal.ProgressPercentage())
		})
	}
}

func TestGoalTracker_SetContribution(t *testing.T) {
	tracker := NewGoalTrackerWithClock(fixedClock(2026, time.August, 29))
	goal, err := tracker.AddGoal("New Car", 6000, "2027-08-01")
	require.NoError(t, err)

	require.NoError(t, tracker.SetContribution(goal.ID, 400))
	assert.Equal(t, 400.0, goal.MonthlyContribution)

	assert.Error(t, tracker.SetContribution(goal.ID, -1))
	assert.ErrorIs(t, tracker.SetContribution("nope", 100), ErrGoalNotFound)
}

func TestGoalTracker_RecordContribution(t *testing.T) {
	tracker := NewGoalTrackerWithClock(fixedClock(2026, time.August, 29))
	goal, err := tracker.AddGoal("Emergency cushion", 3000, "2027-08-01")
	require.NoError(t, err)

	require.NoError(t, tracker.RecordContribution(goal.ID, 250))
	require.NoError(t, tracker.RecordContribution(goal.ID, 250))
	assert.Equal(t, 500.0, goal.CurrentSaved)
}
