// Package service defines the storage contracts consumed by the ledger services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// CategoryStore reads and writes categories.
type CategoryStore interface {
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	CreateCategory(ctx context.Context, name, keywords string) (*model.Category, error)
	SeedCategories(ctx context.Context, seeds []model.Category) (int, error)
}

// RecordStore persists records and reads them joined to category names.
type RecordStore interface {
	SaveRecord(ctx context.Context, record *model.Record) error
	GetRecordByID(ctx context.Context, id int) (*model.Record, error)
	GetRecords(ctx context.Context) ([]model.Record, error)
	GetRecordsByDateRange(ctx context.Context, start, end time.Time) ([]model.Record, error)
	GetRecordsByCategory(ctx context.Context, categoryName string) ([]model.Record, error)
	GetExpenseSummary(ctx context.Context, period model.Period) ([]model.PeriodTotal, error)
}

// BudgetStore persists budgets and the expense sums they are measured against.
type BudgetStore interface {
	SaveBudget(ctx context.Context, budget *model.Budget) error
	GetActiveBudget(ctx context.Context, period model.Period, day time.Time) (*model.Budget, error)
	GetBudgets(ctx context.Context) ([]model.Budget, error)
	SumExpenses(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
}

// SearchStore runs multi-criteria record searches.
type SearchStore interface {
	SearchRecords(ctx context.Context, criteria model.SearchCriteria) ([]model.Record, error)
}

// StatisticsStore produces the pre-aggregated shapes charts consume.
type StatisticsStore interface {
	ExpenseByCategory(ctx context.Context, year, month int) ([]model.CategoryTotal, error)
	ExpenseTrend(ctx context.Context) ([]model.MonthlyTotal, error)
	IncomeVsExpense(ctx context.Context, year, month int) ([]model.TypeTotal, error)
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	CategoryStore
	RecordStore
	BudgetStore
	SearchStore
	StatisticsStore

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
