package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/tally/internal/model"
)

const budgetColumns = `SELECT id, period, amount, start_date, end_date FROM budgets`

// SaveBudget upserts a budget keyed on (period, start_date): an existing row
// with the same key has its amount and end date replaced, otherwise a new row
// is inserted. Budgets with different start dates may overlap.
func (s *SQLiteStorage) SaveBudget(ctx context.Context, budget *model.Budget) error {
	db, err := s.begin(ctx)
	if err != nil {
		return err
	}
	if err := validateBudget(budget); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	start, end := formatDate(budget.StartDate), formatDate(budget.EndDate)
	amount := budget.Amount.InexactFloat64()

	var existingID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM budgets WHERE period = ? AND start_date = ?`,
		string(budget.Period), start,
	).Scan(&existingID)

	switch {
	case err == nil:
		if _, err := tx.ExecContext(ctx,
			`UPDATE budgets SET amount = ?, end_date = ? WHERE id = ?`,
			amount, end, existingID,
		); err != nil {
			return fmt.Errorf("failed to update budget: %w", err)
		}
		budget.ID = int(existingID)
		slog.Debug("updated budget", "id", existingID, "period", budget.Period)
	case errors.Is(err, sql.ErrNoRows):
		result, err := tx.ExecContext(ctx,
			`INSERT INTO budgets (period, amount, start_date, end_date) VALUES (?, ?, ?, ?)`,
			string(budget.Period), amount, start, end,
		)
		if err != nil {
			return fmt.Errorf("failed to insert budget: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get budget ID: %w", err)
		}
		budget.ID = int(id)
		slog.Debug("inserted budget", "id", id, "period", budget.Period)
	default:
		return fmt.Errorf("failed to check existing budget: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit budget: %w", err)
	}
	return nil
}

// GetActiveBudget returns the latest-starting budget of period whose range
// contains day, or nil when none does.
func (s *SQLiteStorage) GetActiveBudget(ctx context.Context, period model.Period, day time.Time) (*model.Budget, error) {
	db, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	d := formatDate(day)
	row := db.QueryRowContext(ctx, budgetColumns+`
		WHERE period = ? AND start_date <= ? AND end_date >= ?
		ORDER BY start_date DESC, id DESC
		LIMIT 1`, string(period), d, d)

	budget, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query active budget: %w", err)
	}
	return &budget, nil
}

// GetBudgets returns every budget, latest start date first.
func (s *SQLiteStorage) GetBudgets(ctx context.Context) ([]model.Budget, error) {
	db, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, budgetColumns+` ORDER BY start_date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []model.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

func scanBudget(row rowScanner) (model.Budget, error) {
	var (
		budget     model.Budget
		period     string
		amount     float64
		start, end string
	)
	if err := row.Scan(&budget.ID, &period, &amount, &start, &end); err != nil {
		return model.Budget{}, err
	}

	var err error
	if budget.StartDate, err = parseDate(start); err != nil {
		return model.Budget{}, err
	}
	if budget.EndDate, err = parseDate(end); err != nil {
		return model.Budget{}, err
	}
	if budget.Amount, err = toAmount(amount); err != nil {
		return model.Budget{}, fmt.Errorf("budget %d: %w", budget.ID, err)
	}
	budget.Period = model.Period(period)
	return budget, nil
}
