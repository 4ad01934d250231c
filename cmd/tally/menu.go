package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/record"
	"github.com/Veraticus/tally/internal/stats"
	"github.com/Veraticus/tally/internal/tui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// chooser picks one of options and returns its index.
type chooser func(ctx context.Context, title string, options []string) (int, error)

// console is the interactive menu flow.
type console struct {
	app      *app
	prompter *cli.Prompter
	choose   chooser
}

func menuCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Start the interactive console",
		Long: `Start the interactive console: add records, browse and search them,
view charts and manage budgets from a menu.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			handler := cli.NewInterruptHandler(a.out)
			ctx, stop := handler.HandleInterrupts(cmd.Context(), "Records saved so far are kept.")
			defer stop()

			c := newConsole(a, cmd.InOrStdin())
			err = c.run(ctx)
			if handler.WasInterrupted() {
				return nil
			}
			return err
		},
	}
}

func newConsole(a *app, in io.Reader) *console {
	c := &console{
		app:      a,
		prompter: cli.NewPrompter(in, a.out),
	}
	c.choose = c.prompter.Choose

	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) && isTerminal(a.out) {
		c.choose = func(ctx context.Context, title string, options []string) (int, error) {
			return tui.Select(ctx, f, a.out, title, options)
		}
	}
	return c
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// errBack leaves a submenu.
var errBack = errors.New("back")

type menuItem struct {
	label  string
	action func(ctx context.Context) error
}

// loop shows items until one returns errBack. Action errors other than
// input failures are reported and the menu is shown again.
func (c *console) loop(ctx context.Context, title string, items []menuItem) error {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.label
	}

	for {
		idx, err := c.choose(ctx, title, labels)
		if errors.Is(err, tui.ErrQuit) {
			return errBack
		}
		if err != nil {
			return err
		}

		err = items[idx].action(ctx)
		switch {
		case err == nil:
		case errors.Is(err, errBack):
			return errBack
		case isInputError(err):
			return err
		default:
			common.LogError(err, "Menu action failed", common.Fields{"menu": title, "action": items[idx].label})
			fmt.Fprintln(c.app.out, cli.FormatError(common.UserMessage(err)))
		}
	}
}

func isInputError(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, cli.ErrInputCancelled) ||
		errors.Is(err, context.Canceled)
}

func back(context.Context) error { return errBack }

func (c *console) run(ctx context.Context) error {
	fmt.Fprintln(c.app.out, cli.FormatTitle("tally: personal bookkeeping"))

	err := c.loop(ctx, "Main menu", []menuItem{
		{label: "Add record", action: c.addRecord},
		{label: "View all records", action: c.viewRecords},
		{label: "Statistics", action: c.statisticsMenu},
		{label: "Search records", action: c.searchMenu},
		{label: "Budget management", action: c.budgetMenu},
		{label: "Exit", action: c.exit},
	})
	if errors.Is(err, errBack) || errors.Is(err, io.EOF) {
		fmt.Fprintln(c.app.out, cli.FormatInfo("Goodbye!"))
		return nil
	}
	return err
}

func (c *console) exit(ctx context.Context) error {
	ok, err := c.prompter.Confirm(ctx, "Exit tally?")
	if err != nil {
		return err
	}
	if ok {
		return errBack
	}
	return nil
}

func (c *console) addRecord(ctx context.Context) error {
	rt, err := c.prompter.AskType(ctx)
	if err != nil {
		return err
	}
	amount, err := c.prompter.AskAmount(ctx, "Amount")
	if err != nil {
		return err
	}
	description, err := c.prompter.Ask(ctx, "Description")
	if err != nil {
		return err
	}
	day, err := c.prompter.AskDate(ctx, "Date", c.app.now())
	if err != nil {
		return err
	}

	return c.app.addRecord(ctx, record.Entry{
		Type:        rt,
		Amount:      amount,
		Description: description,
		Date:        day,
	})
}

func (c *console) viewRecords(ctx context.Context) error {
	records, err := c.app.records.List(ctx)
	if err != nil {
		return err
	}
	return c.app.printRecords(records)
}

func (c *console) statisticsMenu(ctx context.Context) error {
	chart := cli.NewChart(c.app.out, c.app.cfg.Currency)

	err := c.loop(ctx, "Statistics", []menuItem{
		{label: "Expense by category", action: func(ctx context.Context) error {
			filter, err := c.askFilter(ctx)
			if err != nil {
				return err
			}
			totals, err := c.app.stats.ExpenseByCategory(ctx, filter)
			if err != nil {
				return err
			}
			chart.CategoryShare(totals)
			return nil
		}},
		{label: "Monthly expense trend", action: func(ctx context.Context) error {
			trend, err := c.app.stats.ExpenseTrend(ctx)
			if err != nil {
				return err
			}
			chart.Trend(trend)
			return nil
		}},
		{label: "Income vs expense", action: func(ctx context.Context) error {
			filter, err := c.askFilter(ctx)
			if err != nil {
				return err
			}
			totals, err := c.app.stats.IncomeVsExpense(ctx, filter)
			if err != nil {
				return err
			}
			chart.IncomeVsExpense(totals)
			return nil
		}},
		{label: "Back", action: back},
	})
	return ignoreBack(err)
}

// askFilter asks for an optional year and, when one is given, an optional month.
func (c *console) askFilter(ctx context.Context) (stats.Filter, error) {
	var filter stats.Filter
	var err error
	if filter.Year, err = c.prompter.AskOptionalNumber(ctx, "Year (blank for all years)", 1, 9999); err != nil {
		return filter, err
	}
	if filter.Year == 0 {
		return filter, nil
	}
	filter.Month, err = c.prompter.AskOptionalNumber(ctx, "Month 1-12 (blank for the whole year)", 1, 12)
	return filter, err
}

func (c *console) searchMenu(ctx context.Context) error {
	err := c.loop(ctx, "Search", []menuItem{
		{label: "Quick search by keyword", action: c.quickSearch},
		{label: "Search by date range", action: c.searchByDateRange},
		{label: "Search by category", action: c.searchByCategory},
		{label: "Advanced search", action: c.advancedSearch},
		{label: "Back", action: back},
	})
	return ignoreBack(err)
}

func (c *console) quickSearch(ctx context.Context) error {
	keyword, err := c.prompter.Ask(ctx, "Keyword")
	if err != nil {
		return err
	}
	records, err := c.app.search.QuickSearch(ctx, keyword)
	if err != nil {
		return err
	}
	return c.app.printRecords(records)
}

func (c *console) searchByDateRange(ctx context.Context) error {
	today := c.app.now()
	start, err := c.prompter.AskDate(ctx, "From", today)
	if err != nil {
		return err
	}
	end, err := c.prompter.AskDate(ctx, "To", today)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return common.NewUserError("the end date is before the start date", nil)
	}

	records, err := c.app.search.ByDateRange(ctx, start, end)
	if err != nil {
		return err
	}
	return c.app.printRecords(records)
}

func (c *console) searchByCategory(ctx context.Context) error {
	categories, err := c.app.store.GetCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}
	if len(categories) == 0 {
		fmt.Fprintln(c.app.out, cli.FormatInfo("No categories found."))
		return nil
	}

	names := make([]string, len(categories))
	for i, cat := range categories {
		names[i] = cat.Name
	}
	idx, err := c.choose(ctx, "Categories", names)
	if errors.Is(err, tui.ErrQuit) {
		return nil
	}
	if err != nil {
		return err
	}

	records, err := c.app.search.ByCategory(ctx, names[idx])
	if err != nil {
		return err
	}
	return c.app.printRecords(records)
}

func (c *console) advancedSearch(ctx context.Context) error {
	p := c.prompter

	var criteria model.SearchCriteria
	var err error
	if criteria.Keyword, err = p.Ask(ctx, "Keyword (blank to skip)"); err != nil {
		return err
	}
	if criteria.Category, err = p.Ask(ctx, "Category (blank to skip)"); err != nil {
		return err
	}
	typeAnswer, err := p.Ask(ctx, "Type: income/expense (blank to skip)")
	if err != nil {
		return err
	}
	if typeAnswer != "" {
		if criteria.Type, err = cli.ParseType(typeAnswer); err != nil {
			return err
		}
	}
	if criteria.MinAmount, err = p.AskOptionalAmount(ctx, "Minimum amount"); err != nil {
		return err
	}
	if criteria.MaxAmount, err = p.AskOptionalAmount(ctx, "Maximum amount"); err != nil {
		return err
	}
	if criteria.StartDate, err = p.AskOptionalDate(ctx, "From"); err != nil {
		return err
	}
	if criteria.EndDate, err = p.AskOptionalDate(ctx, "To"); err != nil {
		return err
	}
	if criteria.SortBy, err = p.Ask(ctx, "Sort by date/amount/type/category (blank for date)"); err != nil {
		return err
	}
	if criteria.SortOrder, err = p.Ask(ctx, "Order asc/desc (blank for desc)"); err != nil {
		return err
	}

	records, err := c.app.search.Search(ctx, criteria)
	if err != nil {
		return err
	}
	return c.app.printRecords(records)
}

func (c *console) budgetMenu(ctx context.Context) error {
	setBudget := func(period model.Period) func(context.Context) error {
		return func(ctx context.Context) error {
			amount, err := c.prompter.AskAmount(ctx, "Budget amount")
			if err != nil {
				return err
			}
			start, err := c.prompter.AskDate(ctx, "Start date", c.app.now())
			if err != nil {
				return err
			}
			return c.app.setBudget(ctx, period, amount, start)
		}
	}

	err := c.loop(ctx, "Budget management", []menuItem{
		{label: "Set monthly budget", action: setBudget(model.PeriodMonth)},
		{label: "Set yearly budget", action: setBudget(model.PeriodYear)},
		{label: "Budget status", action: func(ctx context.Context) error {
			if err := c.app.showBudgetStatus(ctx, model.PeriodMonth); err != nil {
				return err
			}
			return c.app.showBudgetStatus(ctx, model.PeriodYear)
		}},
		{label: "List budgets", action: c.app.listBudgets},
		{label: "Back", action: back},
	})
	return ignoreBack(err)
}

func ignoreBack(err error) error {
	if errors.Is(err, errBack) {
		return nil
	}
	return err
}
