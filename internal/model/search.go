package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sort fields accepted by record searches.
const (
	SortByDate     = "date"
	SortByAmount   = "amount"
	SortByType     = "type"
	SortByCategory = "category"
)

// Sort orders accepted by record searches.
const (
	SortDescending = "DESC"
	SortAscending  = "ASC"
)

// SearchCriteria holds the optional filters of a record search.
// Zero values mean "no constraint".
type SearchCriteria struct {
	StartDate *time.Time
	EndDate   *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Keyword   string
	Category  string
	Type      RecordType
	SortBy    string
	SortOrder string
}

// IsEmpty reports whether no filter is set. Sorting is not a filter.
func (c SearchCriteria) IsEmpty() bool {
	return c.StartDate == nil && c.EndDate == nil &&
		c.MinAmount == nil && c.MaxAmount == nil &&
		c.Keyword == "" && c.Category == "" && c.Type == ""
}
