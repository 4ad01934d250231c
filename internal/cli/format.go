package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/search"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatCurrency renders amount with two decimals, digit grouping and the
// currency symbol, e.g. "¥1,234.50" or "-¥12.00".
func FormatCurrency(symbol string, amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	return sign + symbol + amountPrinter.Sprintf("%.2f", amount.Abs().Round(2).InexactFloat64())
}

// FormatAmount colors a record amount by its type.
func FormatAmount(symbol string, r model.Record) string {
	text := FormatCurrency(symbol, r.Amount)
	if r.Type == model.RecordTypeIncome {
		return IncomeStyle.Render("+" + text)
	}
	return ExpenseStyle.Render("-" + text)
}

// RenderRecords writes records as an aligned table.
func RenderRecords(w io.Writer, symbol string, records []model.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No records found."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
		TableHeaderStyle.Render("ID"),
		TableHeaderStyle.Render("Date"),
		TableHeaderStyle.Render("Type"),
		TableHeaderStyle.Render("Amount"),
		TableHeaderStyle.Render("Category"),
		TableHeaderStyle.Render("Description"))
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 4),
		strings.Repeat("-", 10),
		strings.Repeat("-", 7),
		strings.Repeat("-", 12),
		strings.Repeat("-", 14),
		strings.Repeat("-", 24))

	for _, r := range records {
		category := r.Category
		if !r.IsCategorized() {
			category = SubtleStyle.Render(model.UncategorizedLabel)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			r.Date.Format(model.DateLayout),
			r.Type,
			FormatAmount(symbol, r),
			category,
			r.Description)
	}
	return tw.Flush()
}

// RenderSummary formats the totals of a result set.
func RenderSummary(symbol string, s search.Summary) string {
	net := FormatCurrency(symbol, s.Net)
	if s.Net.IsNegative() {
		net = ExpenseStyle.Render(net)
	} else {
		net = IncomeStyle.Render(net)
	}

	return fmt.Sprintf("%s records  •  income %s  •  expense %s  •  net %s",
		BoldStyle.Render(fmt.Sprintf("%d", s.Count)),
		IncomeStyle.Render(FormatCurrency(symbol, s.TotalIncome)),
		ExpenseStyle.Render(FormatCurrency(symbol, s.TotalExpense)),
		net)
}
