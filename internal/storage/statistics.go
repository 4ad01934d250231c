package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/tally/internal/model"
)

// periodFilter restricts a date column to a calendar year and optionally a
// month of it. A month without a year is ignored.
func periodFilter(column string, year, month int) ([]string, []any) {
	if year <= 0 {
		return nil, nil
	}
	conditions := []string{fmt.Sprintf("strftime('%%Y', %s) = ?", column)}
	args := []any{fmt.Sprintf("%04d", year)}
	if month >= 1 && month <= 12 {
		conditions = append(conditions, fmt.Sprintf("strftime('%%m', %s) = ?", column))
		args = append(args, fmt.Sprintf("%02d", month))
	}
	return conditions, args
}

// ExpenseByCategory totals expenses per category, largest first. Zero totals
// are dropped. year and month are optional (zero means unset).
func (s *SQLiteStorage) ExpenseByCategory(ctx context.Context, year, month int) ([]model.CategoryTotal, error) {
	db, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	conditions := []string{"r.type = 'expense'"}
	args := []any{model.UncategorizedLabel}
	periodConds, periodArgs := periodFilter("r.date", year, month)
	conditions = append(conditions, periodConds...)
	args = append(args, periodArgs...)

	query := `
		SELECT COALESCE(c.name, ?) AS category, SUM(r.amount) AS total
		FROM records r
		LEFT JOIN categories c ON r.category_id = c.id
		WHERE ` + strings.Join(conditions, " AND ") + `
		GROUP BY r.category_id
		HAVING total > 0
		ORDER BY total DESC, category`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense by category: %w", err)
	}
	defer rows.Close()

	var totals []model.CategoryTotal
	for rows.Next() {
		var (
			name  string
			total float64
		)
		if err := rows.Scan(&name, &total); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		amount, err := toAmount(total)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", name, err)
		}
		totals = append(totals, model.CategoryTotal{Category: name, Total: amount})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category totals: %w", err)
	}
	return totals, nil
}

// ExpenseTrend totals expenses per calendar month, oldest first.
func (s *SQLiteStorage) ExpenseTrend(ctx context.Context) ([]model.MonthlyTotal, error) {
	db, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT CAST(strftime('%Y', date) AS INTEGER) AS year,
			CAST(strftime('%m', date) AS INTEGER) AS month,
			SUM(amount) AS total
		FROM records
		WHERE type = 'expense'
		GROUP BY year, month
		ORDER BY year, month`)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense trend: %w", err)
	}
	defer rows.Close()

	var trend []model.MonthlyTotal
	for rows.Next() {
		var (
			point model.MonthlyTotal
			total float64
		)
		if err := rows.Scan(&point.Year, &point.Month, &total); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		if point.Total, err = toAmount(total); err != nil {
			return nil, fmt.Errorf("month %04d-%02d: %w", point.Year, point.Month, err)
		}
		trend = append(trend, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense trend: %w", err)
	}
	return trend, nil
}

// IncomeVsExpense totals records per type. year and month are optional.
func (s *SQLiteStorage) IncomeVsExpense(ctx context.Context, year, month int) ([]model.TypeTotal, error) {
	db, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT type, SUM(amount) AS total FROM records`
	conditions, args := periodFilter("date", year, month)
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` GROUP BY type ORDER BY type DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query income vs expense: %w", err)
	}
	defer rows.Close()

	var totals []model.TypeTotal
	for rows.Next() {
		var (
			recordType string
			total      float64
		)
		if err := rows.Scan(&recordType, &total); err != nil {
			return nil, fmt.Errorf("failed to scan type total: %w", err)
		}
		amount, err := toAmount(total)
		if err != nil {
			return nil, fmt.Errorf("%s total: %w", recordType, err)
		}
		totals = append(totals, model.TypeTotal{Type: model.RecordType(recordType), Total: amount})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating type totals: %w", err)
	}
	return totals, nil
}
