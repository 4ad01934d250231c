package storage

import (
	"context"
	"strings"

	"github.com/Veraticus/tally/internal/model"
)

// sortColumns is the whitelist of sortable fields.
var sortColumns = map[string]string{
	model.SortByDate:     "r.date",
	model.SortByAmount:   "r.amount",
	model.SortByType:     "r.type",
	model.SortByCategory: "c.name",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchRecords returns records matching every set criterion.
func (s *SQLiteStorage) SearchRecords(ctx context.Context, criteria model.SearchCriteria) ([]model.Record, error) {
	db, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	query, args := buildSearchQuery(criteria)
	return queryRecords(ctx, db, query, args...)
}

// buildSearchQuery assembles the parameterized search statement. Each set
// criterion contributes exactly one AND predicate.
func buildSearchQuery(criteria model.SearchCriteria) (string, []any) {
	var conditions []string
	args := []any{model.UncategorizedLabel}

	if criteria.Keyword != "" {
		conditions = append(conditions, `unicode_lower(r.description) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(criteria.Keyword))+"%")
	}
	if criteria.Category != "" {
		conditions = append(conditions, "c.name = ?")
		args = append(args, criteria.Category)
	}
	if criteria.Type != "" {
		conditions = append(conditions, "r.type = ?")
		args = append(args, string(criteria.Type))
	}
	if criteria.MinAmount != nil {
		conditions = append(conditions, "r.amount >= ?")
		args = append(args, criteria.MinAmount.InexactFloat64())
	}
	if criteria.MaxAmount != nil {
		conditions = append(conditions, "r.amount <= ?")
		args = append(args, criteria.MaxAmount.InexactFloat64())
	}
	if criteria.StartDate != nil {
		conditions = append(conditions, "r.date >= ?")
		args = append(args, formatDate(*criteria.StartDate))
	}
	if criteria.EndDate != nil {
		conditions = append(conditions, "r.date <= ?")
		args = append(args, formatDate(*criteria.EndDate))
	}

	var b strings.Builder
	b.WriteString(recordColumns)
	if len(conditions) > 0 {
		b.WriteString("\n\t\tWHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}

	column, direction := resolveSort(criteria.SortBy, criteria.SortOrder)
	b.WriteString("\n\t\tORDER BY ")
	b.WriteString(column + " " + direction + ", r.id " + direction)

	return b.String(), args
}

// resolveSort maps a requested sort onto the whitelist. Unknown fields fall
// back to date; any order other than DESC (case-insensitive) is ascending,
// and an empty order means descending.
func resolveSort(sortBy, sortOrder string) (string, string) {
	column, ok := sortColumns[strings.ToLower(strings.TrimSpace(sortBy))]
	if !ok {
		column = sortColumns[model.SortByDate]
	}

	order := strings.TrimSpace(sortOrder)
	if order == "" || strings.EqualFold(order, model.SortDescending) {
		return column, model.SortDescending
	}
	return column, model.SortAscending
}
