package budget

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCategory is returned for category values outside the fixed set
	ErrInvalidCategory = errors.New("invalid budget category")

	// ErrInvalidGoal is returned when a savings goal fails validation
	ErrInvalidGoal = errors.New("invalid savings goal")

	// ErrGoalNotFound is returned when a goal ID does not exist
	ErrGoalNotFound = errors.New("savings goal not found")

	// ErrNoBudget is returned when no monthly budget has been created yet
	ErrNoBudget = errors.New("no budget set")
)

// GoalValidationError describes why a savings goal was rejected
type GoalValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (e *GoalValidationError) Error() string {
	return fmt.Sprintf("invalid savings goal: %s: %s", e.Field, e.Message)
}

// Is reports ErrInvalidGoal so callers can match with errors.Is
func (e *GoalValidationError) Is(target error) bool {
	return target == ErrInvalidGoal
}
