package budget

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, today time.Time) (*Service, *testutil.TestDB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewService(db.Storage, WithClock(testutil.FixedClock(today))), db
}

func TestService_Save(t *testing.T) {
	svc, db := newTestService(t, model.Date(2024, 2, 10))
	ctx := context.Background()

	b, err := svc.Save(ctx, model.PeriodMonth, decimal.NewFromInt(3000), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, model.Date(2024, 2, 10), b.StartDate)
	assert.Equal(t, model.Date(2024, 2, 29), b.EndDate)

	// Same period and start date replaces the amount.
	again, err := svc.Save(ctx, model.PeriodMonth, decimal.NewFromInt(2500), model.Date(2024, 2, 10))
	require.NoError(t, err)
	assert.Equal(t, b.ID, again.ID)

	budgets, err := db.Storage.GetBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, "2500.00", budgets[0].Amount.StringFixed(2))
}

func TestService_SaveRejectsInvalidInput(t *testing.T) {
	svc, _ := newTestService(t, model.Date(2024, 2, 10))
	ctx := context.Background()

	_, err := svc.Save(ctx, model.PeriodMonth, decimal.Zero, time.Time{})
	assert.ErrorIs(t, err, common.ErrInvalidAmount)

	_, err = svc.Save(ctx, model.Period("week"), decimal.NewFromInt(10), time.Time{})
	assert.Error(t, err)
}

func TestService_CurrentBudget(t *testing.T) {
	svc, _ := newTestService(t, model.Date(2024, 3, 15))
	ctx := context.Background()

	got, err := svc.CurrentBudget(ctx, model.PeriodMonth)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = svc.Save(ctx, model.PeriodMonth, decimal.NewFromInt(1000), model.Date(2024, 3, 1))
	require.NoError(t, err)
	_, err = svc.Save(ctx, model.PeriodMonth, decimal.NewFromInt(800), model.Date(2024, 3, 10))
	require.NoError(t, err)
	_, err = svc.Save(ctx, model.PeriodMonth, decimal.NewFromInt(500), model.Date(2024, 4, 1))
	require.NoError(t, err)

	got, err = svc.CurrentBudget(ctx, model.PeriodMonth)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.Date(2024, 3, 10), got.StartDate)
	assert.Equal(t, "800.00", got.Amount.StringFixed(2))

	yearly, err := svc.CurrentBudget(ctx, model.PeriodYear)
	require.NoError(t, err)
	assert.Nil(t, yearly)
}

func TestService_CurrentExpense(t *testing.T) {
	svc, db := newTestService(t, model.Date(2024, 3, 15))
	ctx := context.Background()

	db.AddRecord(model.RecordTypeExpense, 100, "in range", model.Date(2024, 3, 5), "")
	db.AddRecord(model.RecordTypeExpense, 50.5, "in range too", model.Date(2024, 3, 31), "")
	db.AddRecord(model.RecordTypeExpense, 70, "last month", model.Date(2024, 2, 20), "")
	db.AddRecord(model.RecordTypeIncome, 9000, "salary", model.Date(2024, 3, 1), "")

	expense, err := svc.CurrentExpense(ctx, model.PeriodMonth)
	require.NoError(t, err)
	assert.True(t, expense.IsZero(), "no budget means zero expense")

	_, err = svc.Save(ctx, model.PeriodMonth, decimal.NewFromInt(1000), model.Date(2024, 3, 1))
	require.NoError(t, err)
	expense, err = svc.CurrentExpense(ctx, model.PeriodMonth)
	require.NoError(t, err)
	assert.Equal(t, "150.50", expense.StringFixed(2))

	// Yearly spend covers the whole calendar year regardless of start date.
	_, err = svc.Save(ctx, model.PeriodYear, decimal.NewFromInt(20000), model.Date(2024, 3, 1))
	require.NoError(t, err)
	expense, err = svc.CurrentExpense(ctx, model.PeriodYear)
	require.NoError(t, err)
	assert.Equal(t, "220.50", expense.StringFixed(2))
}

func TestService_CheckAlert(t *testing.T) {
	tests := []struct {
		name     string
		budget   int64
		spent    float64
		wantKind AlertKind
		wantNil  bool
	}{
		{name: "normal", budget: 1000, spent: 200, wantNil: true},
		{name: "warning", budget: 1000, spent: 850, wantKind: AlertWarning},
		{name: "exceeded", budget: 1000, spent: 1200, wantKind: AlertExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, db := newTestService(t, model.Date(2024, 6, 20))
			ctx := context.Background()

			_, err := svc.Save(ctx, model.PeriodMonth, decimal.NewFromInt(tt.budget), model.Date(2024, 6, 1))
			require.NoError(t, err)
			db.AddRecord(model.RecordTypeExpense, tt.spent, "spending", model.Date(2024, 6, 10), "")

			alert, err := svc.CheckAlert(ctx, 0.8)
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, alert)
				return
			}
			require.NotNil(t, alert)
			assert.Equal(t, tt.wantKind, alert.Kind)
		})
	}
}

func TestService_CheckAlertWithoutBudget(t *testing.T) {
	svc, db := newTestService(t, model.Date(2024, 6, 20))
	db.AddRecord(model.RecordTypeExpense, 99999, "huge", model.Date(2024, 6, 10), "")

	alert, err := svc.CheckAlert(context.Background(), 0.8)
	require.NoError(t, err)
	assert.Nil(t, alert)
}

func TestService_Status(t *testing.T) {
	svc, db := newTestService(t, model.Date(2024, 6, 20))
	ctx := context.Background()

	status, err := svc.Status(ctx, model.PeriodMonth)
	require.NoError(t, err)
	assert.Equal(t, StateNone, status.State)
	assert.Nil(t, status.Budget)

	_, err = svc.Save(ctx, model.PeriodMonth, decimal.NewFromInt(1000), model.Date(2024, 6, 1))
	require.NoError(t, err)
	db.AddRecord(model.RecordTypeExpense, 900, "rent", model.Date(2024, 6, 2), "")

	status, err = svc.Status(ctx, model.PeriodMonth)
	require.NoError(t, err)
	assert.Equal(t, StateNear, status.State)
	assert.Equal(t, "0.90", status.Ratio.StringFixed(2))
	assert.Equal(t, "100.00", status.Remaining().StringFixed(2))

	strict := NewService(db.Storage, WithClock(testutil.FixedClock(model.Date(2024, 6, 20))), WithThreshold(0.95))
	status, err = strict.Status(ctx, model.PeriodMonth)
	require.NoError(t, err)
	assert.Equal(t, StateNormal, status.State)
}

func TestService_NoStorage(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	_, err := svc.CurrentBudget(ctx, model.PeriodMonth)
	assert.ErrorIs(t, err, common.ErrNoConnection)

	_, err = svc.CurrentExpense(ctx, model.PeriodMonth)
	assert.ErrorIs(t, err, common.ErrNoConnection)

	_, err = svc.CheckAlert(ctx, 0.8)
	assert.ErrorIs(t, err, common.ErrNoConnection)

	_, err = svc.Save(ctx, model.PeriodMonth, decimal.NewFromInt(1), time.Time{})
	assert.ErrorIs(t, err, common.ErrNoConnection)
}

func TestService_ClosedStorage(t *testing.T) {
	svc, db := newTestService(t, model.Date(2024, 6, 20))
	require.NoError(t, db.Storage.Close())

	_, err := svc.CheckAlert(context.Background(), 0.8)
	assert.ErrorIs(t, err, common.ErrNoConnection)
}
