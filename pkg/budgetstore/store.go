// Package budgetstore persists monthly budgets and their savings goals in a
// local sqlite database, one record set per calendar month.
package budgetstore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/centsible/centsible-go/internal/types"
	"github.com/centsible/centsible-go/pkg/budget"
)

const schema = `
CREATE TABLE IF NOT EXISTS budgets (
	month          TEXT PRIMARY KEY,
	monthly_income REAL NOT NULL,
	created_at     TEXT NOT NULL,
	last_updated   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS category_budgets (
	month           TEXT NOT NULL REFERENCES budgets(month) ON DELETE CASCADE,
	category        TEXT NOT NULL,
	budgeted_amount REAL NOT NULL,
	spent_amount    REAL NOT NULL,
	last_updated    TEXT NOT NULL,
	PRIMARY KEY (month, category)
);

CREATE TABLE IF NOT EXISTS savings_goals (
	id                   TEXT PRIMARY KEY,
	month                TEXT NOT NULL REFERENCES budgets(month) ON DELETE CASCADE,
	name                 TEXT NOT NULL,
	target_amount        REAL NOT NULL,
	target_date          TEXT NOT NULL,
	current_saved        REAL NOT NULL,
	monthly_contribution REAL NOT NULL,
	priority             INTEGER NOT NULL,
	created_at           TEXT NOT NULL
);
`

// Store is a sqlite-backed budget repository. It is safe for use from a
// single session; database/sql handles connection-level locking.
type Store struct {
	db     *sql.DB
	logger types.Logger
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for store operations
func WithLogger(l types.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open opens (creating if needed) the budget database at dbPath and ensures
// the schema exists. Use ":memory:" for an ephemeral store.
func Open(dbPath string, opts ...Option) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, errors.Wrap(err, "create db directory")
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite database")
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping database")
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "enable foreign keys")
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create schema")
	}

	s := &Store{db: db, logger: noopLogger{}}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save writes the budget for its month, replacing any existing record set.
// Category budgets and goals are rewritten wholesale inside one transaction.
func (s *Store) Save(ctx context.Context, b *budget.MonthlyBudget) error {
	if b == nil || b.Month == "" {
		return errors.New("budget with a month is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO budgets (month, monthly_income, created_at, last_updated)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(month) DO UPDATE SET
			monthly_income = excluded.monthly_income,
			last_updated   = excluded.last_updated`,
		b.Month, b.MonthlyIncome, fmtTime(b.CreatedAt), fmtTime(b.LastUpdated))
	if err != nil {
		return errors.Wrap(err, "upsert budget")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM category_budgets WHERE month = ?`, b.Month); err != nil {
		return errors.Wrap(err, "clear category budgets")
	}
	for _, c := range budget.AllCategories() {
		cb, ok := b.Categories[c]
		if !ok {
			continue
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO category_budgets (month, category, budgeted_amount, spent_amount, last_updated)
			VALUES (?, ?, ?, ?, ?)`,
			b.Month, string(cb.Category), cb.BudgetedAmount, cb.SpentAmount, fmtTime(cb.LastUpdated))
		if err != nil {
			return errors.Wrapf(err, "insert category budget %q", cb.Category)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM savings_goals WHERE month = ?`, b.Month); err != nil {
		return errors.Wrap(err, "clear savings goals")
	}
	for _, g := range b.SavingsGoals {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO savings_goals
				(id, month, name, target_amount, target_date, current_saved, monthly_contribution, priority, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			g.ID, b.Month, g.Name, g.TargetAmount, g.TargetDate.String(),
			g.CurrentSaved, g.MonthlyContribution, g.Priority, fmtTime(g.CreatedAt))
		if err != nil {
			return errors.Wrapf(err, "insert savings goal %q", g.Name)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit")
	}

	s.logger.Info("budget saved",
		"month", b.Month,
		"categories", len(b.Categories),
		"goals", len(b.SavingsGoals))
	return nil
}

// Load reads the budget for the given month ("YYYY-MM"). Returns
// budget.ErrNoBudget when no record exists for that month.
func (s *Store) Load(ctx context.Context, month string) (*budget.MonthlyBudget, error) {
	b := &budget.MonthlyBudget{
		Month:      month,
		Categories: make(map[budget.Category]*budget.CategoryBudget),
	}

	var createdAt, lastUpdated string
	err := s.db.QueryRowContext(ctx, `
		SELECT monthly_income, created_at, last_updated
		FROM budgets WHERE month = ?`, month).
		Scan(&b.MonthlyIncome, &createdAt, &lastUpdated)
	if err == sql.ErrNoRows {
		return nil, budget.ErrNoBudget
	}
	if err != nil {
		return nil, errors.Wrap(err, "query budget")
	}
	b.CreatedAt = parseTime(createdAt)
	b.LastUpdated = parseTime(lastUpdated)

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, budgeted_amount, spent_amount, last_updated
		FROM category_budgets WHERE month = ?`, month)
	if err != nil {
		return nil, errors.Wrap(err, "query category budgets")
	}
	defer rows.Close()
	for rows.Next() {
		var (
			cat     string
			cb      budget.CategoryBudget
			updated string
		)
		if err := rows.Scan(&cat, &cb.BudgetedAmount, &cb.SpentAmount, &updated); err != nil {
			return nil, errors.Wrap(err, "scan category budget")
		}
		cb.Category = budget.Category(cat)
		cb.LastUpdated = parseTime(updated)
		b.Categories[cb.Category] = &cb
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate category budgets")
	}

	goals, err := s.loadGoals(ctx, month)
	if err != nil {
		return nil, err
	}
	b.SavingsGoals = goals

	return b, nil
}

func (s *Store) loadGoals(ctx context.Context, month string) ([]*budget.SavingsGoal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, target_amount, target_date, current_saved, monthly_contribution, priority, created_at
		FROM savings_goals WHERE month = ? ORDER BY created_at, id`, month)
	if err != nil {
		return nil, errors.Wrap(err, "query savings goals")
	}
	defer rows.Close()

	var goals []*budget.SavingsGoal
	for rows.Next() {
		var (
			g          budget.SavingsGoal
			targetDate string
			createdAt  string
		)
		err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount, &targetDate,
			&g.CurrentSaved, &g.MonthlyContribution, &g.Priority, &createdAt)
		if err != nil {
			return nil, errors.Wrap(err, "scan savings goal")
		}
		if targetDate != "" {
			d, err := budget.ParseDate(targetDate)
			if err != nil {
				return nil, errors.Wrapf(err, "goal %s target date", g.ID)
			}
			g.TargetDate = d
		}
		g.CreatedAt = parseTime(createdAt)
		goals = append(goals, &g)
	}
	return goals, rows.Err()
}

// Delete removes the budget for the given month, cascading to its category
// budgets and goals. Deleting a month that was never saved is not an error.
func (s *Store) Delete(ctx context.Context, month string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE month = ?`, month); err != nil {
		return errors.Wrap(err, "delete budget")
	}
	s.logger.Info("budget deleted", "month", month)
	return nil
}

// Months returns the months with a saved budget, oldest first
func (s *Store) Months(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT month FROM budgets ORDER BY month`)
	if err != nil {
		return nil, errors.Wrap(err, "query months")
	}
	defer rows.Close()

	var months []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, errors.Wrap(err, "scan month")
		}
		months = append(months, m)
	}
	return months, rows.Err()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
