// Package category assigns categories to free-text descriptions by keyword.
package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

// Lister supplies categories in storage order.
type Lister interface {
	GetCategories(ctx context.Context) ([]model.Category, error)
}

// FindByKeyword returns the first category, in the given order, having a
// keyword that contains word case-insensitively. Categories without keywords
// are skipped and a blank word never matches.
func FindByKeyword(categories []model.Category, word string) (model.Category, bool) {
	needle := strings.ToLower(strings.TrimSpace(word))
	if needle == "" {
		return model.Category{}, false
	}

	for _, cat := range categories {
		for _, kw := range cat.Keywords() {
			if strings.Contains(strings.ToLower(kw), needle) {
				return cat, true
			}
		}
	}
	return model.Category{}, false
}

// Matcher looks categories up from storage on each call.
type Matcher struct {
	store Lister
}

// NewMatcher creates a matcher over store.
func NewMatcher(store Lister) *Matcher {
	return &Matcher{store: store}
}

// FindByKeyword loads the current categories and returns the first match, or
// nil when nothing matches.
func (m *Matcher) FindByKeyword(ctx context.Context, word string) (*model.Category, error) {
	if m == nil || m.store == nil {
		return nil, common.ErrNoConnection
	}

	categories, err := m.store.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	cat, ok := FindByKeyword(categories, word)
	if !ok {
		return nil, nil
	}
	return &cat, nil
}
