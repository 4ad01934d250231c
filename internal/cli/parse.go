package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// ParseAmount parses a non-negative money amount no larger than model.MaxAmount.
func ParseAmount(input string) (decimal.Decimal, error) {
	input = strings.TrimSpace(input)
	amount, err := decimal.NewFromString(input)
	if err != nil {
		slog.Warn("rejected amount", "input", input, "error", err)
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", common.ErrInvalidAmount, input)
	}
	if amount.IsNegative() {
		slog.Warn("rejected amount", "input", input, "reason", "negative")
		return decimal.Zero, fmt.Errorf("%w: amount cannot be negative", common.ErrInvalidAmount)
	}
	if amount.GreaterThan(model.MaxAmount) {
		slog.Warn("rejected amount", "input", input, "reason", "too large")
		return decimal.Zero, fmt.Errorf("%w: amount cannot exceed %s", common.ErrInvalidAmount, model.MaxAmount)
	}
	return amount, nil
}

// ParseDate parses a YYYY-MM-DD date. Blank input means today.
func ParseDate(input string, today time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return model.Day(today), nil
	}

	t, err := time.Parse(model.DateLayout, input)
	if err != nil {
		slog.Warn("rejected date", "input", input, "error", err)
		return time.Time{}, fmt.Errorf("%w: %q, use YYYY-MM-DD", common.ErrInvalidDate, input)
	}
	return t, nil
}

// ParseOptionalDate parses a YYYY-MM-DD date where blank input means unset.
func ParseOptionalDate(input string) (*time.Time, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	t, err := ParseDate(input, time.Time{})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseOptionalAmount parses a non-negative amount where blank input means unset.
func ParseOptionalAmount(input string) (*decimal.Decimal, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	amount, err := ParseAmount(input)
	if err != nil {
		return nil, err
	}
	return &amount, nil
}

// ParseOptionalNumber parses a whole number in [low, high]. Blank input is 0.
func ParseOptionalNumber(input string, low, high int) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(input)
	if err != nil || n < low || n > high {
		slog.Warn("rejected number", "input", input, "low", low, "high", high)
		return 0, common.NewUserError(fmt.Sprintf("enter a number from %d to %d, or leave blank", low, high), err)
	}
	return n, nil
}

// ParseType accepts "income"/"expense" in any case, or their menu numbers 1 and 2.
func ParseType(input string) (model.RecordType, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "1", string(model.RecordTypeIncome):
		return model.RecordTypeIncome, nil
	case "2", string(model.RecordTypeExpense):
		return model.RecordTypeExpense, nil
	default:
		slog.Warn("rejected record type", "input", input)
		return "", common.NewUserError("type must be income or expense", nil)
	}
}
