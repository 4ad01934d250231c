package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Veraticus/tally/internal/cli"
)

// newTable starts an aligned table with a styled header row.
func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	styled := make([]string, len(headers))
	rules := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = cli.TableHeaderStyle.Render(h)
		rules[i] = strings.Repeat("-", len(h)+4)
	}
	fmt.Fprintln(tw, strings.Join(styled, "\t"))
	fmt.Fprintln(tw, strings.Join(rules, "\t"))
	return tw
}

func dateOr(t *time.Time, fallback time.Time) time.Time {
	if t == nil {
		return fallback
	}
	return *t
}
