package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/Veraticus/tally/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewPrompter(strings.NewReader(input), &out), &out
}

func TestPrompter_AskAmountRepromptsOnInvalid(t *testing.T) {
	p, out := newTestPrompter("abc\n-5\n12.50\n")

	amount, err := p.AskAmount(context.Background(), "Amount")
	require.NoError(t, err)
	assert.Equal(t, "12.50", amount.StringFixed(2))
	assert.Equal(t, 3, strings.Count(out.String(), "Amount"))
	assert.Contains(t, out.String(), "amount cannot be negative")
}

func TestPrompter_AskDate(t *testing.T) {
	today := model.Date(2024, 7, 4)

	p, out := newTestPrompter("07/04/2024\n\n")
	got, err := p.AskDate(context.Background(), "Date", today)
	require.NoError(t, err)
	assert.Equal(t, today, got)
	assert.Contains(t, out.String(), "use YYYY-MM-DD")
}

func TestPrompter_AskOptional(t *testing.T) {
	p, _ := newTestPrompter("\n\n2024-01-31\n100\n")
	ctx := context.Background()

	d, err := p.AskOptionalDate(ctx, "From")
	require.NoError(t, err)
	assert.Nil(t, d)

	a, err := p.AskOptionalAmount(ctx, "Min")
	require.NoError(t, err)
	assert.Nil(t, a)

	d, err = p.AskOptionalDate(ctx, "To")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, model.Date(2024, 1, 31), *d)

	a, err = p.AskOptionalAmount(ctx, "Max")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "100", a.String())
}

func TestPrompter_AskType(t *testing.T) {
	p, _ := newTestPrompter("3\nEXPENSE\n1\n")
	ctx := context.Background()

	rt, err := p.AskType(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.RecordTypeExpense, rt)

	rt, err = p.AskType(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.RecordTypeIncome, rt)
}

func TestPrompter_AskOptionalNumber(t *testing.T) {
	p, out := newTestPrompter("13\n3\n\n")
	ctx := context.Background()

	month, err := p.AskOptionalNumber(ctx, "Month", 1, 12)
	require.NoError(t, err)
	assert.Equal(t, 3, month)
	assert.Contains(t, out.String(), "enter a number from 1 to 12")

	month, err = p.AskOptionalNumber(ctx, "Month", 1, 12)
	require.NoError(t, err)
	assert.Zero(t, month)
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "maybe\ny\n", want: true},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			p, _ := newTestPrompter(tt.input)
			got, err := p.Confirm(context.Background(), "Exit?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrompter_Choose(t *testing.T) {
	p, out := newTestPrompter("0\nfour\n2\n")

	idx, err := p.Choose(context.Background(), "Menu", []string{"Add", "List", "Exit"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Contains(t, out.String(), "[3] Exit")
	assert.Contains(t, out.String(), "enter a number from 1 to 3")

	_, err = p.Choose(context.Background(), "Empty", nil)
	assert.ErrorIs(t, err, ErrNoChoice)
}

func TestPrompter_EndOfInput(t *testing.T) {
	p, _ := newTestPrompter("bad\n")

	_, err := p.AskAmount(context.Background(), "Amount")
	assert.ErrorIs(t, err, io.EOF)
}

func TestPrompter_Cancelled(t *testing.T) {
	p, _ := newTestPrompter("1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Ask(ctx, "Anything")
	assert.ErrorIs(t, err, ErrInputCancelled)
}
