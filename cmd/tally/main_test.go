package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/tally/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `display:
  currency: "$"
logging:
  level: error
budget:
  threshold: 0.8
`

type testEnv struct {
	t      *testing.T
	dir    string
	dbPath string
	cfg    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(testConfig), 0o600))
	return &testEnv{t: t, dir: dir, dbPath: filepath.Join(dir, "tally.db"), cfg: cfg}
}

// run executes one tally invocation against the environment's database.
func (e *testEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()

	root := newRootCmd(viper.New())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", e.cfg, "--db", e.dbPath}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run("", args...)
	require.NoError(e.t, err, out)
	return out
}

func TestAddAndList(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("add", "--amount", "32", "--description", "Starbucks", "--date", "2024-03-01")
	assert.Contains(t, out, "Recorded expense $32.00 (Dining)")

	out = env.mustRun("add", "-t", "income", "-a", "8000", "-d", "salary", "--date", "2024-03-05")
	assert.Contains(t, out, "Recorded income $8,000.00 (Uncategorized)")

	out = env.mustRun("list")
	assert.Less(t, strings.Index(out, "salary"), strings.Index(out, "Starbucks"), "newest first")
	assert.Contains(t, out, "2 records")
	assert.Contains(t, out, "net $7,968.00")

	out = env.mustRun("list", "--category", "Dining")
	assert.Contains(t, out, "Starbucks")
	assert.NotContains(t, out, "salary")

	out = env.mustRun("list", "--from", "2024-03-02")
	assert.Contains(t, out, "salary")
	assert.NotContains(t, out, "Starbucks")
}

func TestAddRejectsInvalidInput(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "negative amount", args: []string{"add", "--amount", "-3"}},
		{name: "bad date", args: []string{"add", "--amount", "3", "--date", "03/01/2024"}},
		{name: "bad type", args: []string{"add", "--amount", "3", "--type", "transfer"}},
		{name: "missing amount", args: []string{"add"}},
		{name: "amount overflows storage", args: []string{"add", "--amount", "1e400"}},
		{name: "amount above maximum", args: []string{"add", "--amount", "1000000000000.01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run("", tt.args...)
			assert.Error(t, err)
		})
	}

	out := env.mustRun("list")
	assert.Contains(t, out, "No records found.")
}

func TestBudgetAlertAfterExpense(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("budget", "set", "100")
	assert.Contains(t, out, "Set month budget of $100.00")

	out = env.mustRun("add", "--amount", "85", "--description", "groceries")
	assert.Contains(t, out, "Monthly budget nearly used: 85.0% spent")

	out = env.mustRun("add", "--amount", "20", "--description", "taxi")
	assert.Contains(t, out, "Monthly budget exceeded: 105.0% spent")

	out = env.mustRun("budget", "status", "--period", "month")
	assert.Contains(t, out, "exceeded")
	assert.Contains(t, out, "-$5.00")

	out = env.mustRun("budget", "status")
	assert.Contains(t, out, "No active budget.")

	out = env.mustRun("budget", "list")
	assert.Contains(t, out, time.Now().Format(model.DateLayout))
}

func TestBudgetSetRejectsZero(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("", "budget", "set", "0")
	assert.Error(t, err)

	_, err = env.run("", "budget", "set", "10", "--period", "week")
	assert.Error(t, err)
}

func TestSearchCommand(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("add", "-a", "35", "-d", "starbucks latte", "--date", "2024-03-01")
	env.mustRun("add", "-a", "520", "-d", "taobao order", "--date", "2024-03-08")
	env.mustRun("add", "-a", "4", "-d", "subway", "--date", "2024-03-02")

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{name: "keyword argument", args: []string{"search", "LATTE"}, want: []string{"starbucks latte"}, notWant: []string{"subway"}},
		{name: "amount range", args: []string{"search", "--min", "10", "--max", "100"}, want: []string{"starbucks latte"}, notWant: []string{"taobao", "subway"}},
		{name: "category", args: []string{"search", "--category", "Transport"}, want: []string{"subway"}, notWant: []string{"taobao"}},
		{name: "wildcards are literal", args: []string{"search", "%"}, want: []string{"No records found."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := env.mustRun(tt.args...)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, out, nw)
			}
		})
	}

	out := env.mustRun("search", "--sort", "amount", "--order", "asc")
	assert.Less(t, strings.Index(out, "subway"), strings.Index(out, "taobao order"))
}

func TestCategoriesCommands(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("categories", "list")
	assert.Contains(t, out, "Dining")
	assert.Contains(t, out, "Entertainment")

	out = env.mustRun("categories", "add", "Housing", "--keywords", "rent, water bill")
	assert.Contains(t, out, `Created category "Housing"`)

	_, err := env.run("", "categories", "add", "Housing")
	assert.Error(t, err)

	out = env.mustRun("add", "-a", "3000", "-d", "rent")
	assert.Contains(t, out, "(Housing)")
}

func TestStatsCommands(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("stats", "category")
	assert.Contains(t, out, "no data to display")

	env.mustRun("add", "-a", "75", "-d", "restaurant", "--date", "2024-01-10")
	env.mustRun("add", "-a", "25", "-d", "bus", "--date", "2024-02-10")
	env.mustRun("add", "-t", "income", "-a", "500", "-d", "bonus", "--date", "2024-02-11")

	out = env.mustRun("stats", "category")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "Transport")

	out = env.mustRun("stats", "category", "--year", "2024", "--month", "2")
	assert.NotContains(t, out, "Dining")

	out = env.mustRun("stats", "trend")
	assert.Contains(t, out, "2024-01")
	assert.Contains(t, out, "2024-02")

	out = env.mustRun("stats", "compare")
	assert.Contains(t, out, "$500.00")

	out = env.mustRun("stats", "summary", "--period", "year")
	assert.Contains(t, out, "2024")
	assert.Contains(t, out, "$100.00")
}

func TestMigrateStatus(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("migrate", "--status")
	assert.Contains(t, out, "Current version: 0")

	out = env.mustRun("migrate")
	assert.Contains(t, out, "schema version 2")

	out = env.mustRun("migrate", "--status")
	assert.Contains(t, out, "Current version: 2")
}

func TestVersion(t *testing.T) {
	out := newTestEnv(t).mustRun("version")
	assert.Contains(t, out, "tally dev")
}

func TestBuildCriteria(t *testing.T) {
	criteria, err := buildCriteria(" tea ", "Dining", "expense", "10", "", "2024-01-01", "")
	require.NoError(t, err)
	assert.Equal(t, "tea", criteria.Keyword)
	assert.Equal(t, "Dining", criteria.Category)
	assert.Equal(t, model.RecordTypeExpense, criteria.Type)
	require.NotNil(t, criteria.MinAmount)
	assert.Equal(t, "10", criteria.MinAmount.String())
	assert.Nil(t, criteria.MaxAmount)
	require.NotNil(t, criteria.StartDate)
	assert.Nil(t, criteria.EndDate)

	empty, err := buildCriteria("", "", "", "", "", "", "")
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	_, err = buildCriteria("", "", "", "-1", "", "", "")
	assert.Error(t, err)
}
