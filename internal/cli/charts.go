package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/stats"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const (
	defaultBarWidth = 30
	barGlyph        = "█"
)

// Chart draws horizontal bar charts of expense aggregates.
type Chart struct {
	w        io.Writer
	currency string
	width    int
}

// NewChart creates a chart renderer writing to w.
func NewChart(w io.Writer, currency string) *Chart {
	return &Chart{w: w, currency: currency, width: defaultBarWidth}
}

type bar struct {
	label string
	value decimal.Decimal
	note  string
	style lipgloss.Style
}

// CategoryShare draws each category's share of spending. It reports false
// when there is nothing to draw.
func (c *Chart) CategoryShare(totals []model.CategoryTotal) bool {
	shares := stats.Shares(totals)
	if len(shares) == 0 {
		return c.noData("Expense by category")
	}

	bars := make([]bar, 0, len(shares))
	for _, s := range shares {
		bars = append(bars, bar{
			label: s.Category,
			value: s.Percent,
			note:  fmt.Sprintf("%5s%%  %s", s.Percent.StringFixed(1), FormatCurrency(c.currency, s.Total)),
			style: ExpenseStyle,
		})
	}
	c.draw("Expense by category", bars)
	return true
}

// Trend draws spending per month, oldest first.
func (c *Chart) Trend(trend []model.MonthlyTotal) bool {
	bars := make([]bar, 0, len(trend))
	for _, m := range trend {
		bars = append(bars, bar{
			label: fmt.Sprintf("%04d-%02d", m.Year, m.Month),
			value: m.Total,
			note:  FormatCurrency(c.currency, m.Total),
			style: ExpenseStyle,
		})
	}
	if !hasPositive(bars) {
		return c.noData("Monthly expense trend")
	}
	c.draw("Monthly expense trend", bars)
	return true
}

// IncomeVsExpense draws income and expense totals side by side.
func (c *Chart) IncomeVsExpense(totals []model.TypeTotal) bool {
	bars := make([]bar, 0, len(totals))
	for _, t := range totals {
		style := ExpenseStyle
		if t.Type == model.RecordTypeIncome {
			style = IncomeStyle
		}
		bars = append(bars, bar{
			label: string(t.Type),
			value: t.Total,
			note:  FormatCurrency(c.currency, t.Total),
			style: style,
		})
	}
	if !hasPositive(bars) {
		return c.noData("Income vs expense")
	}
	c.draw("Income vs expense", bars)
	return true
}

func hasPositive(bars []bar) bool {
	for _, b := range bars {
		if b.value.IsPositive() {
			return true
		}
	}
	return false
}

func (c *Chart) noData(title string) bool {
	fmt.Fprintln(c.w, FormatInfo(title+": no data to display."))
	return false
}

// draw scales bars against the largest value.
func (c *Chart) draw(title string, bars []bar) {
	largest := decimal.Zero
	labelWidth := 0
	for _, b := range bars {
		if b.value.GreaterThan(largest) {
			largest = b.value
		}
		if n := lipgloss.Width(b.label); n > labelWidth {
			labelWidth = n
		}
	}

	label := lipgloss.NewStyle().Width(labelWidth + 2)
	rows := make([]string, 0, len(bars)+1)
	rows = append(rows, TitleStyle.Render(ChartIcon+" "+title))
	for _, b := range bars {
		n := barLength(b.value, largest, c.width)
		rows = append(rows, label.Render(b.label)+
			b.style.Render(strings.Repeat(barGlyph, n))+
			strings.Repeat(" ", c.width-n+1)+
			b.note)
	}
	fmt.Fprintln(c.w, lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// barLength scales value to width. Any positive value gets at least one cell.
func barLength(value, largest decimal.Decimal, width int) int {
	if !value.IsPositive() || !largest.IsPositive() {
		return 0
	}
	n := int(value.Mul(decimal.NewFromInt(int64(width))).Div(largest).IntPart())
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return n
}
