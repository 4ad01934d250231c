// Package stats produces the expense aggregates behind the chart screens.
package stats

import (
	"context"
	"fmt"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
	"github.com/shopspring/decimal"
)

// Service reads aggregates from storage.
type Service struct {
	store service.StatisticsStore
}

// NewService creates a statistics service over store.
func NewService(store service.StatisticsStore) *Service {
	return &Service{store: store}
}

// Filter narrows aggregates to a calendar year and optionally one of its months.
// Zero fields are unset.
type Filter struct {
	Year  int
	Month int
}

func (f Filter) validate() error {
	if f.Month < 0 || f.Month > 12 {
		return fmt.Errorf("%w: month %d", common.ErrInvalidDate, f.Month)
	}
	if f.Month > 0 && f.Year <= 0 {
		return fmt.Errorf("%w: month requires a year", common.ErrInvalidDate)
	}
	return nil
}

func (s *Service) ready() error {
	if s == nil || s.store == nil {
		return common.ErrNoConnection
	}
	return nil
}

// ExpenseByCategory returns per-category spend, largest first.
func (s *Service) ExpenseByCategory(ctx context.Context, f Filter) ([]model.CategoryTotal, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return s.store.ExpenseByCategory(ctx, f.Year, f.Month)
}

// ExpenseTrend returns spend per month, oldest first.
func (s *Service) ExpenseTrend(ctx context.Context) ([]model.MonthlyTotal, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.store.ExpenseTrend(ctx)
}

// IncomeVsExpense returns the income and expense totals.
func (s *Service) IncomeVsExpense(ctx context.Context, f Filter) ([]model.TypeTotal, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return s.store.IncomeVsExpense(ctx, f.Year, f.Month)
}

// Share is a category's fraction of total spend.
type Share struct {
	Category string
	Total    decimal.Decimal
	Percent  decimal.Decimal
}

// Shares converts category totals to percentages of their sum, rounded to one
// decimal place. It returns nil when the sum is not positive.
func Shares(totals []model.CategoryTotal) []Share {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Total)
	}
	if !sum.IsPositive() {
		return nil
	}

	hundred := decimal.NewFromInt(100)
	shares := make([]Share, 0, len(totals))
	for _, t := range totals {
		shares = append(shares, Share{
			Category: t.Category,
			Total:    t.Total,
			Percent:  t.Total.Mul(hundred).Div(sum).Round(1),
		})
	}
	return shares
}
