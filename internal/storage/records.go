package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// recordColumns selects a record joined to its category display name. The
// first placeholder is the label used for uncategorized records.
const recordColumns = `
		SELECT r.id, r.type, r.amount, r.category_id,
			COALESCE(c.name, ?) AS category,
			r.description, r.date
		FROM records r
		LEFT JOIN categories c ON r.category_id = c.id`

// SaveRecord inserts a record and sets its ID. The category must already be
// resolved by the caller.
func (s *SQLiteStorage) SaveRecord(ctx context.Context, record *model.Record) error {
	db, err := s.begin(ctx)
	if err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}

	var categoryID sql.NullInt64
	if record.CategoryID != nil {
		categoryID = sql.NullInt64{Int64: int64(*record.CategoryID), Valid: true}
	}

	result, err := db.ExecContext(ctx, `
		INSERT INTO records (type, amount, category_id, description, date)
		VALUES (?, ?, ?, ?, ?)`,
		string(record.Type),
		record.Amount.InexactFloat64(),
		categoryID,
		record.Description,
		formatDate(record.Date),
	)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get record ID: %w", err)
	}
	record.ID = int(id)

	slog.Debug("saved record", "id", id, "type", record.Type, "category_id", record.CategoryID)
	return nil
}

// GetRecordByID returns one record, or common.ErrNotFound.
func (s *SQLiteStorage) GetRecordByID(ctx context.Context, id int) (*model.Record, error) {
	db, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx, recordColumns+` WHERE r.id = ?`, model.UncategorizedLabel, id)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("record %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetRecords returns every record, newest first.
func (s *SQLiteStorage) GetRecords(ctx context.Context) ([]model.Record, error) {
	db, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	return queryRecords(ctx, db, recordColumns+` ORDER BY r.date DESC, r.id DESC`, model.UncategorizedLabel)
}

// GetRecordsByDateRange returns records dated within [start, end], newest first.
func (s *SQLiteStorage) GetRecordsByDateRange(ctx context.Context, start, end time.Time) ([]model.Record, error) {
	db, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	from, to := formatDate(start), formatDate(end)
	if err := validateDateRange(from, to); err != nil {
		return nil, err
	}

	query := recordColumns + `
		WHERE r.date BETWEEN ? AND ?
		ORDER BY r.date DESC, r.id DESC`
	return queryRecords(ctx, db, query, model.UncategorizedLabel, from, to)
}

// GetRecordsByCategory returns records linked to the named category, newest first.
func (s *SQLiteStorage) GetRecordsByCategory(ctx context.Context, categoryName string) ([]model.Record, error) {
	db, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateString(categoryName, "categoryName"); err != nil {
		return nil, err
	}

	query := recordColumns + `
		WHERE c.name = ?
		ORDER BY r.date DESC, r.id DESC`
	return queryRecords(ctx, db, query, model.UncategorizedLabel, categoryName)
}

// SumExpenses totals expense records dated within [start, end].
func (s *SQLiteStorage) SumExpenses(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	db, err := s.begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	var total float64
	err = db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM records
		WHERE type = 'expense' AND date >= ? AND date <= ?`,
		formatDate(start), formatDate(end),
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return toAmount(total)
}

// GetExpenseSummary totals expenses per month ("2006-01") or per year ("2006"),
// oldest first.
func (s *SQLiteStorage) GetExpenseSummary(ctx context.Context, period model.Period) ([]model.PeriodTotal, error) {
	db, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	var format string
	switch period {
	case model.PeriodMonth:
		format = "%Y-%m"
	case model.PeriodYear:
		format = "%Y"
	default:
		return nil, fmt.Errorf("unsupported summary period %q", period)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT strftime(?, date) AS period, SUM(amount) AS total
		FROM records
		WHERE type = 'expense'
		GROUP BY period
		ORDER BY period`, format)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense summary: %w", err)
	}
	defer rows.Close()

	var totals []model.PeriodTotal
	for rows.Next() {
		var (
			label string
			total float64
		)
		if err := rows.Scan(&label, &total); err != nil {
			return nil, fmt.Errorf("failed to scan expense summary: %w", err)
		}
		amount, err := toAmount(total)
		if err != nil {
			return nil, fmt.Errorf("expense summary %s: %w", label, err)
		}
		totals = append(totals, model.PeriodTotal{Period: label, Total: amount})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense summary: %w", err)
	}
	return totals, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (model.Record, error) {
	var (
		record     model.Record
		recordType string
		amount     float64
		categoryID sql.NullInt64
		date       string
	)

	if err := row.Scan(&record.ID, &recordType, &amount, &categoryID,
		&record.Category, &record.Description, &date); err != nil {
		return model.Record{}, err
	}

	parsed, err := parseDate(date)
	if err != nil {
		return model.Record{}, fmt.Errorf("record %d: %w", record.ID, err)
	}

	if record.Amount, err = toAmount(amount); err != nil {
		return model.Record{}, fmt.Errorf("record %d: %w", record.ID, err)
	}
	record.Type = model.RecordType(recordType)
	record.Date = parsed
	if categoryID.Valid {
		id := int(categoryID.Int64)
		record.CategoryID = &id
	}
	return record, nil
}

func queryRecords(ctx context.Context, db *sql.DB, query string, args ...any) ([]model.Record, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}

	slog.Debug("retrieved records", "count", len(records))
	return records, nil
}

func formatDate(t time.Time) string {
	return t.Format(model.DateLayout)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored date %q: %w", s, err)
	}
	return t, nil
}

// toAmount converts a stored REAL to a decimal rounded to cents.
func toAmount(f float64) (decimal.Decimal, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrCorruptAmount, f)
	}
	return decimal.NewFromFloat(f).Round(2), nil
}
