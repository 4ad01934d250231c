// Package budget tracks spending against monthly and yearly budgets.
package budget

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
	"github.com/shopspring/decimal"
)

// Service is the budget engine.
type Service struct {
	store     service.BudgetStore
	now       func() time.Time
	threshold float64
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithThreshold sets the ratio at which Status reports a budget as near its limit.
func WithThreshold(threshold float64) Option {
	return func(s *Service) {
		s.threshold = threshold
	}
}

// NewService creates a budget engine over store.
func NewService(store service.BudgetStore, opts ...Option) *Service {
	s := &Service{
		store:     store,
		now:       time.Now,
		threshold: config.DefaultThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Threshold returns the configured alert threshold.
func (s *Service) Threshold() float64 {
	return s.threshold
}

func (s *Service) today() time.Time {
	return model.Day(s.now())
}

func (s *Service) ready() error {
	if s == nil || s.store == nil {
		return common.ErrNoConnection
	}
	return nil
}

// Save derives the end date of a budget starting at start and upserts it on
// (period, start date).
func (s *Service) Save(ctx context.Context, period model.Period, amount decimal.Decimal, start time.Time) (*model.Budget, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if _, err := model.ParsePeriod(string(period)); err != nil {
		return nil, common.NewUserError("budget period must be month or year", err)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: budget must be greater than zero", common.ErrInvalidAmount)
	}
	if start.IsZero() {
		start = s.today()
	}

	budget := model.NewBudget(period, amount, start)
	if err := s.store.SaveBudget(ctx, &budget); err != nil {
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	slog.Info("saved budget",
		"period", budget.Period,
		"amount", budget.Amount.StringFixed(2),
		"start", budget.StartDate.Format(model.DateLayout),
		"end", budget.EndDate.Format(model.DateLayout))
	return &budget, nil
}

// CurrentBudget returns the most recently started budget of period covering
// today, or nil when there is none.
func (s *Service) CurrentBudget(ctx context.Context, period model.Period) (*model.Budget, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	budget, err := s.store.GetActiveBudget(ctx, period, s.today())
	if err != nil {
		return nil, fmt.Errorf("failed to load %s budget: %w", period, err)
	}
	return budget, nil
}

// CurrentExpense returns the spending counted against the current budget of
// period. Monthly spend is summed over the active budget's range, yearly
// spend over today's calendar year. It is zero when no budget is active.
func (s *Service) CurrentExpense(ctx context.Context, period model.Period) (decimal.Decimal, error) {
	budget, err := s.CurrentBudget(ctx, period)
	if err != nil {
		return decimal.Zero, err
	}
	if budget == nil {
		return decimal.Zero, nil
	}
	return s.expenseFor(ctx, budget)
}

func (s *Service) expenseFor(ctx context.Context, budget *model.Budget) (decimal.Decimal, error) {
	start, end := budget.StartDate, budget.EndDate
	if budget.Period == model.PeriodYear {
		year := s.today().Year()
		start = model.Date(year, time.January, 1)
		end = model.Date(year, time.December, 31)
	}

	total, err := s.store.SumExpenses(ctx, start, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total, nil
}

// CheckAlert measures the current monthly budget against threshold.
func (s *Service) CheckAlert(ctx context.Context, threshold float64) (*Alert, error) {
	budget, err := s.CurrentBudget(ctx, model.PeriodMonth)
	if err != nil || budget == nil {
		return nil, err
	}

	expense, err := s.expenseFor(ctx, budget)
	if err != nil {
		return nil, err
	}

	alert := ClassifyAlert(expense, budget.Amount, threshold)
	if alert != nil {
		slog.Debug("budget alert", "kind", alert.Kind, "ratio", alert.Ratio.StringFixed(4))
	}
	return alert, nil
}

// Status summarizes one period's budget for display.
type Status struct {
	Budget  *model.Budget
	Expense decimal.Decimal
	Ratio   decimal.Decimal
	State   State
}

// Remaining is the budget left to spend, negative once exceeded.
func (st Status) Remaining() decimal.Decimal {
	if st.Budget == nil {
		return decimal.Zero
	}
	return st.Budget.Amount.Sub(st.Expense)
}

// Status reports the current budget of period against the configured threshold.
func (s *Service) Status(ctx context.Context, period model.Period) (Status, error) {
	budget, err := s.CurrentBudget(ctx, period)
	if err != nil {
		return Status{}, err
	}
	if budget == nil {
		return Status{State: StateNone}, nil
	}

	expense, err := s.expenseFor(ctx, budget)
	if err != nil {
		return Status{}, err
	}

	status := Status{Budget: budget, Expense: expense, State: StateNormal}
	if budget.Amount.IsPositive() {
		status.Ratio = expense.Div(budget.Amount)
		status.State = stateFor(ClassifyAlert(expense, budget.Amount, s.threshold))
	}
	return status, nil
}

// List returns every budget, latest start date first.
func (s *Service) List(ctx context.Context) ([]model.Budget, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.store.GetBudgets(ctx)
}
