package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/tally/internal/model"
)

// GetCategories returns all categories in storage order (ascending id).
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	db, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, keywords
		FROM categories
		ORDER BY id`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.RawKeywords); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategoryByName returns a category by its name, or nil if none exists.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	db, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, keywords
		FROM categories
		WHERE name = ?`

	var cat model.Category
	err = db.QueryRowContext(ctx, query, name).Scan(&cat.ID, &cat.Name, &cat.RawKeywords)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &cat, nil
}

// CreateCategory creates a new category. Names are unique.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, name, keywords string) (*model.Category, error) {
	db, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	return createCategory(ctx, db, name, keywords)
}

// SeedCategories inserts seeds when the category table is empty and reports
// how many were created. A populated table is left untouched.
func (s *SQLiteStorage) SeedCategories(ctx context.Context, seeds []model.Category) (int, error) {
	db, err := s.begin(ctx)
	if err != nil {
		return 0, err
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	created := 0
	for _, seed := range seeds {
		if _, err := createCategory(ctx, db, seed.Name, seed.RawKeywords); err != nil {
			return created, fmt.Errorf("failed to seed category %q: %w", seed.Name, err)
		}
		created++
	}

	slog.Info("seeded categories", "count", created)
	return created, nil
}

func createCategory(ctx context.Context, db *sql.DB, name, keywords string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidCategory)
	}

	var exists int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories WHERE name = ?`, name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing category: %w", err)
	}
	if exists > 0 {
		return nil, fmt.Errorf("%w: category %q already exists", ErrInvalidCategory, name)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO categories (name, keywords) VALUES (?, ?)`, name, keywords)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category ID: %w", err)
	}

	slog.Info("created new category", "name", name, "id", id)
	return &model.Category{
		ID:          int(id),
		Name:        name,
		RawKeywords: keywords,
	}, nil
}
