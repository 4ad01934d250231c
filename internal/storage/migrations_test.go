package storage

import (
	"context"
	"testing"
)

func TestMigrate_ReachesExpectedVersion(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	version, err := store.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("Failed to read schema version: %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("Schema version = %d, want %d", version, ExpectedSchemaVersion)
	}

	// Running again is a no-op.
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Second migrate failed: %v", err)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	for _, name := range []string{"idx_records_date", "idx_records_type", "idx_budgets_period_start"} {
		var count int
		err := store.db.QueryRow(`
			SELECT COUNT(*) FROM sqlite_master
			WHERE type='index' AND name=?`, name).Scan(&count)
		if err != nil {
			t.Fatalf("Failed to check index %s: %v", name, err)
		}
		if count != 1 {
			t.Errorf("Index %s was not created", name)
		}
	}
}

func TestMigrate_SchemaRejectsBadRows(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.db.Exec(`INSERT INTO records (type, amount, description, date) VALUES ('transfer', 1, '', '2024-01-01')`)
	if err == nil {
		t.Error("Expected CHECK constraint to reject unknown record type")
	}

	_, err = store.db.Exec(`INSERT INTO budgets (period, amount, start_date, end_date) VALUES ('week', 1, '2024-01-01', '2024-01-07')`)
	if err == nil {
		t.Error("Expected CHECK constraint to reject unknown budget period")
	}
}
