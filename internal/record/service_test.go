package record

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/Veraticus/tally/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Add(t *testing.T) {
	db := testutil.SetupTestDB(t, testutil.BasicCategories()...)
	today := time.Date(2024, 5, 20, 15, 4, 5, 0, time.UTC)
	svc := NewService(db.Storage, WithClock(testutil.FixedClock(today)))
	ctx := context.Background()

	tests := []struct {
		name         string
		entry        Entry
		wantCategory string
		wantDate     time.Time
	}{
		{
			name:         "matched by keyword",
			entry:        Entry{Type: model.RecordTypeExpense, Amount: decimal.NewFromInt(30), Description: "Starbucks"},
			wantCategory: "Dining",
			wantDate:     model.Date(2024, 5, 20),
		},
		{
			name:         "partial keyword",
			entry:        Entry{Type: model.RecordTypeExpense, Amount: decimal.NewFromInt(3), Description: "sub"},
			wantCategory: "Transport",
			wantDate:     model.Date(2024, 5, 20),
		},
		{
			name:         "no match is uncategorized",
			entry:        Entry{Type: model.RecordTypeIncome, Amount: decimal.NewFromInt(5000), Description: "salary", Date: model.Date(2024, 5, 1)},
			wantCategory: model.UncategorizedLabel,
			wantDate:     model.Date(2024, 5, 1),
		},
		{
			name:         "padded description is trimmed before matching",
			entry:        Entry{Type: model.RecordTypeExpense, Amount: decimal.NewFromInt(12), Description: "  taxi  "},
			wantCategory: "Transport",
			wantDate:     model.Date(2024, 5, 20),
		},
		{
			name:         "blank description is uncategorized",
			entry:        Entry{Type: model.RecordTypeExpense, Amount: decimal.NewFromInt(2), Description: " \t "},
			wantCategory: model.UncategorizedLabel,
			wantDate:     model.Date(2024, 5, 20),
		},
		{
			name:         "empty description is uncategorized",
			entry:        Entry{Type: model.RecordTypeExpense, Amount: decimal.NewFromInt(1)},
			wantCategory: model.UncategorizedLabel,
			wantDate:     model.Date(2024, 5, 20),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := svc.Add(ctx, tt.entry)
			require.NoError(t, err)
			assert.NotZero(t, rec.ID)
			assert.Equal(t, tt.wantCategory, rec.Category)
			assert.Equal(t, tt.wantDate, rec.Date)

			stored, err := db.Storage.GetRecordByID(ctx, rec.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCategory, stored.Category)
			assert.Equal(t, rec.IsCategorized(), stored.IsCategorized())
		})
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(tests))
}

func TestService_AddRejectsNegativeAmount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewService(db.Storage)

	_, err := svc.Add(context.Background(), Entry{
		Type:   model.RecordTypeExpense,
		Amount: decimal.NewFromInt(-5),
	})
	assert.Error(t, err)
}

func TestService_AddRejectsOversizedAmount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewService(db.Storage)
	ctx := context.Background()

	_, err := svc.Add(ctx, Entry{
		Type:   model.RecordTypeExpense,
		Amount: decimal.RequireFromString("1e400"),
	})
	require.ErrorIs(t, err, storage.ErrInvalidRecord)

	records, err := svc.List(ctx)
	require.NoError(t, err, "a rejected amount leaves the ledger readable")
	assert.Empty(t, records)
}

func TestService_NoStorage(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.Add(context.Background(), Entry{Type: model.RecordTypeExpense, Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, common.ErrNoConnection)

	_, err = svc.List(context.Background())
	assert.ErrorIs(t, err, common.ErrNoConnection)
}
