package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Veraticus/tally/internal/budget"
	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func budgetCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Set and monitor budgets",
		Long: `Set monthly or yearly budgets and see how much of them is spent.

A monthly budget runs from its start date to the last day of that month; a
yearly budget runs to December 31. Setting a budget again with the same
period and start date replaces its amount.`,
	}

	cmd.AddCommand(budgetSetCmd(v))
	cmd.AddCommand(budgetStatusCmd(v))
	cmd.AddCommand(budgetListCmd(v))

	return cmd
}

func budgetSetCmd(v *viper.Viper) *cobra.Command {
	var period, start string

	cmd := &cobra.Command{
		Use:   "set <amount>",
		Short: "Set a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := model.ParsePeriod(period)
			if err != nil {
				return err
			}
			amount, err := cli.ParseAmount(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			startDate, err := cli.ParseDate(start, a.now())
			if err != nil {
				return err
			}
			return a.setBudget(cmd.Context(), p, amount, startDate)
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", string(model.PeriodMonth), "budget period (month, year)")
	cmd.Flags().StringVar(&start, "start", "", "start date as YYYY-MM-DD (default: today)")

	return cmd
}

func (a *app) setBudget(ctx context.Context, period model.Period, amount decimal.Decimal, start time.Time) error {
	b, err := a.budgets.Save(ctx, period, amount, start)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Set %s budget of %s for %s to %s",
		b.Period,
		cli.FormatCurrency(a.cfg.Currency, b.Amount),
		b.StartDate.Format(model.DateLayout),
		b.EndDate.Format(model.DateLayout))))
	return nil
}

func budgetStatusCmd(v *viper.Viper) *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show spending against the current budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			periods := []model.Period{model.PeriodMonth, model.PeriodYear}
			if period != "" {
				p, err := model.ParsePeriod(period)
				if err != nil {
					return err
				}
				periods = []model.Period{p}
			}

			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			for _, p := range periods {
				if err := a.showBudgetStatus(cmd.Context(), p); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", "", "only this period (month, year)")

	return cmd
}

func (a *app) showBudgetStatus(ctx context.Context, period model.Period) error {
	status, err := a.budgets.Status(ctx, period)
	if err != nil {
		return err
	}
	renderBudgetStatus(a.out, a.cfg.Currency, period, status)
	return nil
}

func renderBudgetStatus(w io.Writer, currency string, period model.Period, status budget.Status) {
	title := fmt.Sprintf("%s %sly budget", cli.BudgetIcon, period)
	if status.Budget == nil {
		fmt.Fprintln(w, cli.RenderBox(title, cli.SubtleStyle.Render("No active budget.")))
		return
	}

	var state string
	switch status.State {
	case budget.StateExceeded:
		state = cli.ErrorStyle.Render("exceeded")
	case budget.StateNear:
		state = cli.WarningStyle.Render("near limit")
	default:
		state = cli.SuccessStyle.Render("normal")
	}

	content := fmt.Sprintf("Period:    %s to %s\nBudget:    %s\nSpent:     %s (%s%%)\nRemaining: %s\nStatus:    %s",
		status.Budget.StartDate.Format(model.DateLayout),
		status.Budget.EndDate.Format(model.DateLayout),
		cli.FormatCurrency(currency, status.Budget.Amount),
		cli.FormatCurrency(currency, status.Expense),
		status.Ratio.Shift(2).StringFixed(1),
		cli.FormatCurrency(currency, status.Remaining()),
		state)
	fmt.Fprintln(w, cli.RenderBox(title, content))
}

func budgetListCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all budgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.listBudgets(cmd.Context())
		},
	}
}

func (a *app) listBudgets(ctx context.Context) error {
	budgets, err := a.budgets.List(ctx)
	if err != nil {
		return err
	}
	if len(budgets) == 0 {
		fmt.Fprintln(a.out, cli.FormatInfo("No budgets set. Use 'tally budget set' to create one."))
		return nil
	}

	tw := newTable(a.out, "ID", "Period", "Amount", "Start", "End")
	for _, b := range budgets {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			b.ID, b.Period,
			cli.FormatCurrency(a.cfg.Currency, b.Amount),
			b.StartDate.Format(model.DateLayout),
			b.EndDate.Format(model.DateLayout))
	}
	return tw.Flush()
}
