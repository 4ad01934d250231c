package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestChart_CategoryShare(t *testing.T) {
	var buf bytes.Buffer
	chart := NewChart(&buf, "¥")

	ok := chart.CategoryShare([]model.CategoryTotal{
		{Category: "Dining", Total: decimal.NewFromInt(75)},
		{Category: "Transport", Total: decimal.NewFromInt(25)},
	})

	assert.True(t, ok)
	out := buf.String()
	assert.Contains(t, out, "Expense by category")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "25.0%")
	assert.Contains(t, out, "¥75.00")
	assert.Equal(t, defaultBarWidth+defaultBarWidth/3, strings.Count(out, barGlyph))
}

func TestChart_NoData(t *testing.T) {
	tests := []struct {
		name string
		draw func(*Chart) bool
	}{
		{name: "share", draw: func(c *Chart) bool { return c.CategoryShare(nil) }},
		{name: "trend", draw: func(c *Chart) bool { return c.Trend(nil) }},
		{name: "type", draw: func(c *Chart) bool {
			return c.IncomeVsExpense([]model.TypeTotal{{Type: model.RecordTypeIncome, Total: decimal.Zero}})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.False(t, tt.draw(NewChart(&buf, "¥")))
			assert.Contains(t, buf.String(), "no data to display")
			assert.NotContains(t, buf.String(), barGlyph)
		})
	}
}

func TestChart_Trend(t *testing.T) {
	var buf bytes.Buffer
	ok := NewChart(&buf, "$").Trend([]model.MonthlyTotal{
		{Year: 2024, Month: 1, Total: decimal.NewFromInt(10)},
		{Year: 2024, Month: 2, Total: decimal.NewFromInt(20)},
	})

	assert.True(t, ok)
	out := buf.String()
	assert.Less(t, strings.Index(out, "2024-01"), strings.Index(out, "2024-02"))
	assert.Contains(t, out, "$20.00")
}

func TestChart_IncomeVsExpense(t *testing.T) {
	var buf bytes.Buffer
	ok := NewChart(&buf, "$").IncomeVsExpense([]model.TypeTotal{
		{Type: model.RecordTypeIncome, Total: decimal.NewFromInt(5000)},
		{Type: model.RecordTypeExpense, Total: decimal.NewFromInt(1200)},
	})

	assert.True(t, ok)
	assert.Contains(t, buf.String(), "income")
	assert.Contains(t, buf.String(), "$1,200.00")
}

func TestBarLength(t *testing.T) {
	tests := []struct {
		name    string
		value   int64
		largest int64
		want    int
	}{
		{name: "largest fills width", value: 50, largest: 50, want: 30},
		{name: "half", value: 25, largest: 50, want: 15},
		{name: "tiny still visible", value: 1, largest: 1000, want: 1},
		{name: "zero", value: 0, largest: 50, want: 0},
		{name: "no largest", value: 5, largest: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, barLength(decimal.NewFromInt(tt.value), decimal.NewFromInt(tt.largest), 30))
		})
	}
}
