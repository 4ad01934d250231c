// Package testutil provides test helpers for storage-backed packages.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/shopspring/decimal"
)

// TestDB is a migrated in-memory database with its seeded categories.
type TestDB struct {
	Storage    *storage.SQLiteStorage
	t          *testing.T
	Categories []model.Category
}

// BasicCategories is a small keyword set shared across tests.
func BasicCategories() []model.Category {
	return []model.Category{
		{Name: "Dining", RawKeywords: "starbucks,mcdonalds,milk tea,food"},
		{Name: "Transport", RawKeywords: "subway,bus,taxi"},
		{Name: "Shopping", RawKeywords: "taobao,jd,supermarket"},
	}
}

// SetupTestDB creates a new in-memory test database with the given categories.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.BasicCategories()...)
func SetupTestDB(t *testing.T, cats ...model.Category) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	seeded := make([]model.Category, 0, len(cats))
	for _, cat := range cats {
		created, err := store.CreateCategory(ctx, cat.Name, cat.RawKeywords)
		if err != nil {
			t.Fatalf("failed to seed category %q: %v", cat.Name, err)
		}
		seeded = append(seeded, *created)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage:    store,
		Categories: seeded,
		t:          t,
	}
}

// MustGetCategory returns the seeded category with the given name or fails the test.
func (db *TestDB) MustGetCategory(name string) model.Category {
	db.t.Helper()
	for _, cat := range db.Categories {
		if cat.Name == name {
			return cat
		}
	}
	db.t.Fatalf("category %q was not seeded", name)
	return model.Category{}
}

// AddRecord stores a record directly, bypassing keyword matching.
// An empty categoryName leaves the record uncategorized.
func (db *TestDB) AddRecord(rt model.RecordType, amount float64, description string, date time.Time, categoryName string) model.Record {
	db.t.Helper()

	record := model.Record{
		Type:        rt,
		Amount:      decimal.NewFromFloat(amount),
		Description: description,
		Date:        date,
	}
	if categoryName != "" {
		cat := db.MustGetCategory(categoryName)
		record.CategoryID = &cat.ID
	}

	if err := db.Storage.SaveRecord(context.Background(), &record); err != nil {
		db.t.Fatalf("failed to save record %q: %v", description, err)
	}
	return record
}

// FixedClock returns a clock function that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
