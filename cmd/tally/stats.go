package main

import (
	"fmt"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/stats"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func statsCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Chart where the money went",
	}

	var filter stats.Filter
	addFilterFlags := func(c *cobra.Command) {
		c.Flags().IntVar(&filter.Year, "year", 0, "only this year")
		c.Flags().IntVar(&filter.Month, "month", 0, "only this month of --year (1-12)")
	}

	category := &cobra.Command{
		Use:   "category",
		Short: "Expense share per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			totals, err := a.stats.ExpenseByCategory(cmd.Context(), filter)
			if err != nil {
				return err
			}
			cli.NewChart(a.out, a.cfg.Currency).CategoryShare(totals)
			return nil
		},
	}
	addFilterFlags(category)

	trend := &cobra.Command{
		Use:   "trend",
		Short: "Expense per month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			points, err := a.stats.ExpenseTrend(cmd.Context())
			if err != nil {
				return err
			}
			cli.NewChart(a.out, a.cfg.Currency).Trend(points)
			return nil
		},
	}

	compare := &cobra.Command{
		Use:   "compare",
		Short: "Income against expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			totals, err := a.stats.IncomeVsExpense(cmd.Context(), filter)
			if err != nil {
				return err
			}
			cli.NewChart(a.out, a.cfg.Currency).IncomeVsExpense(totals)
			return nil
		},
	}
	addFilterFlags(compare)

	var period string
	summary := &cobra.Command{
		Use:   "summary",
		Short: "Expense totals per month or year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := model.ParsePeriod(period)
			if err != nil {
				return err
			}

			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			totals, err := a.store.GetExpenseSummary(cmd.Context(), p)
			if err != nil {
				return err
			}
			if len(totals) == 0 {
				fmt.Fprintln(a.out, cli.FormatInfo("No expenses recorded."))
				return nil
			}

			tw := newTable(a.out, "Period", "Expense")
			for _, t := range totals {
				fmt.Fprintf(tw, "%s\t%s\n", t.Period, cli.FormatCurrency(a.cfg.Currency, t.Total))
			}
			return tw.Flush()
		},
	}
	summary.Flags().StringVarP(&period, "period", "p", string(model.PeriodMonth), "group by month or year")

	cmd.AddCommand(category, trend, compare, summary)
	return cmd
}
