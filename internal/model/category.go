// Package model defines the bookkeeping domain types shared across packages.
package model

import "strings"

// UncategorizedLabel is shown for records without a linked category.
const UncategorizedLabel = "Uncategorized"

// Category groups records and carries the keywords used to auto-assign them.
type Category struct {
	Name string
	// RawKeywords is the comma-separated keyword list as stored.
	RawKeywords string
	ID          int
}

// Keywords returns the trimmed, non-empty keywords of the category in order.
func (c Category) Keywords() []string {
	if c.RawKeywords == "" {
		return nil
	}

	parts := strings.Split(c.RawKeywords, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if kw := strings.TrimSpace(part); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}
