// Package record creates ledger entries with their auto-assigned category.
package record

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/tally/internal/category"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
	"github.com/shopspring/decimal"
)

// Store is what the record service needs from storage.
type Store interface {
	category.Lister
	service.RecordStore
}

// Service records income and expense entries.
type Service struct {
	store   Store
	matcher *category.Matcher
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the source of "today" for undated entries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a record service over store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
	}
	if store != nil {
		s.matcher = category.NewMatcher(store)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Entry is the user input for a new record.
type Entry struct {
	// Date defaults to today when zero.
	Date        time.Time
	Amount      decimal.Decimal
	Type        model.RecordType
	Description string
}

// Add stores entry, assigning the first category whose keywords match the
// description. The category is fixed at creation.
func (s *Service) Add(ctx context.Context, entry Entry) (*model.Record, error) {
	if s == nil || s.store == nil {
		return nil, common.ErrNoConnection
	}

	record := model.Record{
		Type:        entry.Type,
		Amount:      entry.Amount,
		Description: strings.TrimSpace(entry.Description),
		Date:        entry.Date,
		Category:    model.UncategorizedLabel,
	}
	if record.Date.IsZero() {
		record.Date = model.Day(s.now())
	}

	match, err := s.matcher.FindByKeyword(ctx, record.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to match category: %w", err)
	}
	if match != nil {
		id := match.ID
		record.CategoryID = &id
		record.Category = match.Name
	}

	if err := s.store.SaveRecord(ctx, &record); err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}

	slog.Info("recorded entry",
		"id", record.ID,
		"type", record.Type,
		"amount", record.Amount.StringFixed(2),
		"category", record.Category)
	return &record, nil
}

// List returns every record, newest first.
func (s *Service) List(ctx context.Context) ([]model.Record, error) {
	if s == nil || s.store == nil {
		return nil, common.ErrNoConnection
	}
	return s.store.GetRecords(ctx)
}
