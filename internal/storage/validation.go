package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/tally/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidRecord    = errors.New("invalid record")
	ErrInvalidBudget    = errors.New("invalid budget")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrCorruptAmount    = errors.New("stored amount is not a finite number")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateRecord(record *model.Record) error {
	if record == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if _, err := model.ParseRecordType(string(record.Type)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if record.Amount.IsNegative() {
		return fmt.Errorf("%w: amount %s is negative", ErrInvalidRecord, record.Amount)
	}
	if record.Amount.GreaterThan(model.MaxAmount) {
		return fmt.Errorf("%w: amount %s exceeds %s", ErrInvalidRecord, record.Amount, model.MaxAmount)
	}
	if record.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidRecord)
	}
	return nil
}

func validateBudget(budget *model.Budget) error {
	if budget == nil {
		return fmt.Errorf("%w: budget", ErrNilParameter)
	}
	if _, err := model.ParsePeriod(string(budget.Period)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBudget, err)
	}
	if budget.Amount.IsNegative() || budget.Amount.GreaterThan(model.MaxAmount) {
		return fmt.Errorf("%w: amount %s is out of range", ErrInvalidBudget, budget.Amount)
	}
	if budget.StartDate.IsZero() {
		return fmt.Errorf("%w: missing start date", ErrInvalidBudget)
	}
	if budget.EndDate.Before(budget.StartDate) {
		return fmt.Errorf("%w: %w", ErrInvalidBudget, ErrInvalidDateRange)
	}
	return nil
}

func validateDateRange(start, end string) error {
	if end < start {
		return fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidDateRange, end, start)
	}
	return nil
}
