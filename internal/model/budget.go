package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Period is a budget's recurrence unit.
type Period string

const (
	// PeriodMonth budgets run to the end of the start date's month.
	PeriodMonth Period = "month"
	// PeriodYear budgets run to December 31 of the start date's year.
	PeriodYear Period = "year"
)

// ParsePeriod validates a user supplied period.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodMonth, PeriodYear:
		return Period(s), nil
	default:
		return "", fmt.Errorf("period must be %q or %q, got %q", PeriodMonth, PeriodYear, s)
	}
}

// Budget is a spending limit over a period starting at StartDate.
type Budget struct {
	StartDate time.Time
	EndDate   time.Time
	Amount    decimal.Decimal
	Period    Period
	ID        int
}

// NewBudget creates a budget with its end date derived from the period.
func NewBudget(period Period, amount decimal.Decimal, start time.Time) Budget {
	start = Day(start)
	return Budget{
		Period:    period,
		Amount:    amount,
		StartDate: start,
		EndDate:   EndDate(period, start),
	}
}

// Contains reports whether day falls within [StartDate, EndDate].
func (b Budget) Contains(day time.Time) bool {
	day = Day(day)
	return !day.Before(b.StartDate) && !day.After(b.EndDate)
}

// EndDate returns the last day covered by a budget of period starting at start.
// Month periods end on the true last calendar day of start's month, whatever
// day of the month start falls on.
func EndDate(period Period, start time.Time) time.Time {
	y, m, _ := start.Date()
	if period == PeriodYear {
		return Date(y, time.December, 31)
	}
	// Day zero of the next month normalizes to the last day of this one.
	return Date(y, m+1, 0)
}
