package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/tally/internal/budget"
	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/record"
	"github.com/Veraticus/tally/internal/search"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func addCmd(v *viper.Viper) *cobra.Command {
	var (
		recordType  string
		amount      string
		description string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income or expense",
		Long: `Record an income or expense. The category is picked from the first
category whose keywords contain the description.

Examples:
  tally add --amount 32 --description starbucks
  tally add --type income --amount 8000 --description salary --date 2024-03-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := cli.ParseType(recordType)
			if err != nil {
				return err
			}
			value, err := cli.ParseAmount(amount)
			if err != nil {
				return err
			}

			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			day, err := cli.ParseDate(date, a.now())
			if err != nil {
				return err
			}

			return a.addRecord(cmd.Context(), record.Entry{
				Type:        rt,
				Amount:      value,
				Description: description,
				Date:        day,
			})
		},
	}

	cmd.Flags().StringVarP(&recordType, "type", "t", string(model.RecordTypeExpense), "record type (income, expense)")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount, must not be negative")
	cmd.Flags().StringVarP(&description, "description", "d", "", "description, matched against category keywords")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

// addRecord saves entry and, for expenses, reports the monthly budget alert.
func (a *app) addRecord(ctx context.Context, entry record.Entry) error {
	rec, err := a.records.Add(ctx, entry)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Recorded %s %s (%s)",
		rec.Type, cli.FormatCurrency(a.cfg.Currency, rec.Amount), rec.Category)))

	if rec.Type != model.RecordTypeExpense {
		return nil
	}
	alert, err := a.budgets.CheckAlert(ctx, a.cfg.Threshold)
	if err != nil {
		return fmt.Errorf("failed to check budget: %w", err)
	}
	if alert != nil {
		fmt.Fprintln(a.out, formatAlert(alert))
	}
	return nil
}

func formatAlert(alert *budget.Alert) string {
	pct := alert.Ratio.Shift(2).StringFixed(1) + "%"
	if alert.Kind == budget.AlertExceeded {
		return cli.FormatError("Monthly budget exceeded: " + pct + " spent")
	}
	return cli.FormatWarning("Monthly budget nearly used: " + pct + " spent")
}

func listCmd(v *viper.Viper) *cobra.Command {
	var (
		categoryName string
		from, to     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, err := cli.ParseOptionalDate(from)
			if err != nil {
				return err
			}
			end, err := cli.ParseOptionalDate(to)
			if err != nil {
				return err
			}

			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			var records []model.Record
			switch {
			case categoryName != "":
				records, err = a.store.GetRecordsByCategory(ctx, categoryName)
			case start != nil || end != nil:
				records, err = a.store.GetRecordsByDateRange(ctx, dateOr(start, model.Date(1, 1, 1)), dateOr(end, model.Date(9999, 12, 31)))
			default:
				records, err = a.records.List(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to list records: %w", err)
			}

			return a.printRecords(records)
		},
	}

	cmd.Flags().StringVarP(&categoryName, "category", "c", "", "only records in this category")
	cmd.Flags().StringVar(&from, "from", "", "first date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last date (YYYY-MM-DD)")

	return cmd
}

func (a *app) printRecords(records []model.Record) error {
	if err := cli.RenderRecords(a.out, a.cfg.Currency, records); err != nil {
		return err
	}
	if len(records) > 0 {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, cli.RenderSummary(a.cfg.Currency, search.Summarize(records)))
	}
	return nil
}

func searchCmd(v *viper.Viper) *cobra.Command {
	var (
		keyword, categoryName, recordType string
		minAmount, maxAmount              string
		from, to                          string
		sortBy, sortOrder                 string
	)

	cmd := &cobra.Command{
		Use:   "search [keyword]",
		Short: "Search records by several criteria",
		Long: `Search records. Every flag given narrows the result; with no flags all
records are listed newest first.

Examples:
  tally search coffee
  tally search --category Dining --from 2024-03-01 --to 2024-03-31
  tally search --type expense --min 100 --sort amount --order desc`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				keyword = args[0]
			}

			criteria, err := buildCriteria(keyword, categoryName, recordType, minAmount, maxAmount, from, to)
			if err != nil {
				return err
			}
			criteria.SortBy = sortBy
			criteria.SortOrder = sortOrder

			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := a.search.Search(cmd.Context(), criteria)
			if err != nil {
				return err
			}
			return a.printRecords(records)
		},
	}

	cmd.Flags().StringVarP(&keyword, "keyword", "k", "", "text contained in the description")
	cmd.Flags().StringVarP(&categoryName, "category", "c", "", "exact category name")
	cmd.Flags().StringVarP(&recordType, "type", "t", "", "income or expense")
	cmd.Flags().StringVar(&minAmount, "min", "", "minimum amount")
	cmd.Flags().StringVar(&maxAmount, "max", "", "maximum amount")
	cmd.Flags().StringVar(&from, "from", "", "first date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sortBy, "sort", model.SortByDate, "sort by date, amount, type or category")
	cmd.Flags().StringVar(&sortOrder, "order", model.SortDescending, "sort order (asc, desc)")

	return cmd
}

// buildCriteria parses the textual search inputs. Blank inputs stay unset.
func buildCriteria(keyword, categoryName, recordType, minAmount, maxAmount, from, to string) (model.SearchCriteria, error) {
	criteria := model.SearchCriteria{
		Keyword:  strings.TrimSpace(keyword),
		Category: strings.TrimSpace(categoryName),
	}

	var err error
	if strings.TrimSpace(recordType) != "" {
		if criteria.Type, err = cli.ParseType(recordType); err != nil {
			return criteria, err
		}
	}
	if criteria.MinAmount, err = cli.ParseOptionalAmount(minAmount); err != nil {
		return criteria, err
	}
	if criteria.MaxAmount, err = cli.ParseOptionalAmount(maxAmount); err != nil {
		return criteria, err
	}
	if criteria.StartDate, err = cli.ParseOptionalDate(from); err != nil {
		return criteria, err
	}
	if criteria.EndDate, err = cli.ParseOptionalDate(to); err != nil {
		return criteria, err
	}
	return criteria, nil
}

func categoriesCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
		Long:  `List and add the categories records are filed into by keyword.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			categories, err := a.store.GetCategories(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}
			return renderCategories(a.out, categories)
		},
	})

	var keywords string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Long: `Add a category. Keywords are a comma separated list; a record whose
description is contained in one of them is filed into the category.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			existing, err := a.store.GetCategoryByName(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to check existing category: %w", err)
			}
			if existing != nil {
				return fmt.Errorf("category %q already exists", args[0])
			}

			cat, err := a.store.CreateCategory(cmd.Context(), args[0], keywords)
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}
			fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Created category %q (ID: %d)", cat.Name, cat.ID)))
			return nil
		},
	}
	add.Flags().StringVarP(&keywords, "keywords", "k", "", "comma separated keywords")
	cmd.AddCommand(add)

	return cmd
}

func renderCategories(w io.Writer, categories []model.Category) error {
	if len(categories) == 0 {
		_, err := fmt.Fprintln(w, cli.FormatInfo("No categories found. Use 'tally categories add' to create one."))
		return err
	}

	tw := newTable(w, "ID", "Name", "Keywords")
	for _, cat := range categories {
		kw := strings.Join(cat.Keywords(), ", ")
		if kw == "" {
			kw = cli.SubtleStyle.Render("(no keywords)")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", cat.ID, cat.Name, kw)
	}
	return tw.Flush()
}
