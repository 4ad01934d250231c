package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/ofx"
	"github.com/Veraticus/tally/internal/record"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func importOFXCmd(v *viper.Viper) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import records from OFX/QFX statements",
		Long: `Import records from OFX or QFX (Quicken) statements exported from your bank.
Debits become expenses and credits become income; categories are matched
from the description as for any new record.

Examples:
  tally import-ofx ~/Downloads/statement.qfx
  tally import-ofx --dry-run ~/Downloads/*.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			records, err := parseStatements(cmd.Context(), files)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No records found in the given files."))
				return nil
			}

			if dryRun {
				cfg, err := config.Load(v)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d records would be imported.", len(records))))
				return cli.RenderRecords(out, cfg.Currency, records)
			}

			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			saved, err := a.importRecords(cmd.Context(), records)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d of %d records", saved, len(records))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview import without saving")

	return cmd
}

// expandFiles resolves glob patterns, keeping plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			files = append(files, pattern)
		} else {
			slog.Warn("No files found matching pattern", "pattern", pattern)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to import")
	}
	return files, nil
}

func parseStatements(ctx context.Context, files []string) ([]model.Record, error) {
	parser := ofx.NewParser()

	var records []model.Record
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}

		parsed, err := parser.ParseFile(ctx, f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}

		common.LogInfo("Processed file", common.Fields{"file": filepath.Base(path), "records": len(parsed)})
		records = append(records, parsed...)
	}
	return records, nil
}

// importRecords saves records through the record service so each gets its
// keyword-matched category. It stops at the first failure and reports how
// many were saved.
func (a *app) importRecords(ctx context.Context, records []model.Record) (int, error) {
	bar := newProgressBar(a.out, len(records))

	saved := 0
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return saved, err
		}

		if _, err := a.records.Add(ctx, record.Entry{
			Date:        r.Date,
			Amount:      r.Amount,
			Type:        r.Type,
			Description: r.Description,
		}); err != nil {
			common.LogError(err, "Failed to import record", common.Fields{
				"description": r.Description,
				"date":        r.Date.Format(model.DateLayout),
				"saved":       saved,
			})
			return saved, fmt.Errorf("failed to import %q: %w", r.Description, err)
		}
		saved++

		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}
	return saved, nil
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing records...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}
