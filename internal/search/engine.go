// Package search runs multi-criteria record searches and summarizes results.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
	"github.com/shopspring/decimal"
)

// Engine runs record searches against storage.
type Engine struct {
	store service.SearchStore
}

// NewEngine creates a search engine over store.
func NewEngine(store service.SearchStore) *Engine {
	return &Engine{store: store}
}

// Search returns records matching every set criterion, ordered by the
// criteria's sort (newest first by default).
func (e *Engine) Search(ctx context.Context, criteria model.SearchCriteria) ([]model.Record, error) {
	if e == nil || e.store == nil {
		return nil, common.ErrNoConnection
	}

	records, err := e.store.SearchRecords(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	slog.Debug("search completed",
		"filtered", !criteria.IsEmpty(),
		"sort_by", criteria.SortBy,
		"results", len(records))
	return records, nil
}

// QuickSearch matches keyword against descriptions.
func (e *Engine) QuickSearch(ctx context.Context, keyword string) ([]model.Record, error) {
	return e.Search(ctx, model.SearchCriteria{Keyword: strings.TrimSpace(keyword)})
}

// ByDateRange returns records dated within [start, end].
func (e *Engine) ByDateRange(ctx context.Context, start, end time.Time) ([]model.Record, error) {
	start, end = model.Day(start), model.Day(end)
	return e.Search(ctx, model.SearchCriteria{StartDate: &start, EndDate: &end})
}

// ByCategory returns records in the named category.
func (e *Engine) ByCategory(ctx context.Context, name string) ([]model.Record, error) {
	return e.Search(ctx, model.SearchCriteria{Category: name})
}

// ExpensesOver returns expenses of at least amount, largest first.
func (e *Engine) ExpensesOver(ctx context.Context, amount decimal.Decimal) ([]model.Record, error) {
	return e.Search(ctx, model.SearchCriteria{
		Type:      model.RecordTypeExpense,
		MinAmount: &amount,
		SortBy:    model.SortByAmount,
		SortOrder: model.SortDescending,
	})
}

// Summary aggregates a result set.
type Summary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Net          decimal.Decimal
	Count        int
}

// Summarize totals records by type.
func Summarize(records []model.Record) Summary {
	var s Summary
	for _, r := range records {
		switch r.Type {
		case model.RecordTypeIncome:
			s.TotalIncome = s.TotalIncome.Add(r.Amount)
		case model.RecordTypeExpense:
			s.TotalExpense = s.TotalExpense.Add(r.Amount)
		}
	}
	s.Count = len(records)
	s.Net = s.TotalIncome.Sub(s.TotalExpense)
	return s
}
