package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the on-disk and user-facing calendar date format.
const DateLayout = "2006-01-02"

// MaxAmount is the largest amount a record or budget may carry. Amounts are
// stored as REAL, so anything larger loses cents or overflows.
var MaxAmount = decimal.New(1, 12)

// RecordType distinguishes money coming in from money going out.
type RecordType string

const (
	// RecordTypeIncome marks money received.
	RecordTypeIncome RecordType = "income"
	// RecordTypeExpense marks money spent.
	RecordTypeExpense RecordType = "expense"
)

// ParseRecordType validates a user supplied record type.
func ParseRecordType(s string) (RecordType, error) {
	switch RecordType(s) {
	case RecordTypeIncome, RecordTypeExpense:
		return RecordType(s), nil
	default:
		return "", fmt.Errorf("record type must be %q or %q, got %q", RecordTypeIncome, RecordTypeExpense, s)
	}
}

// Record is a single income or expense entry.
type Record struct {
	Date        time.Time
	Amount      decimal.Decimal
	CategoryID  *int
	Type        RecordType
	Description string
	// Category is the display name of the linked category, or UncategorizedLabel.
	Category string
	ID       int
}

// IsCategorized reports whether the record links to a category.
func (r Record) IsCategorized() bool {
	return r.CategoryID != nil
}

// Day truncates t to a calendar date in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds a calendar date in UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
