package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// ErrNoChoice is returned by Choose when there are no options.
var ErrNoChoice = errors.New("no options to choose from")

// Prompter asks questions on a line-oriented terminal. Invalid answers are
// reported and asked again.
type Prompter struct {
	reader LineReader
	writer io.Writer
}

// NewPrompter creates a prompter reading answers from reader.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// Writer returns the prompter's output.
func (p *Prompter) Writer() io.Writer {
	return p.writer
}

// Ask prints label and returns the trimmed answer.
func (p *Prompter) Ask(ctx context.Context, label string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(label)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	return p.reader.ReadLine(ctx)
}

// ask repeats a question until parse accepts the answer.
func ask[T any](ctx context.Context, p *Prompter, label string, parse func(string) (T, error)) (T, error) {
	for {
		answer, err := p.Ask(ctx, label)
		if err != nil {
			var zero T
			return zero, err
		}

		value, err := parse(answer)
		if err == nil {
			return value, nil
		}
		fmt.Fprintln(p.writer, FormatError(common.UserMessage(err)))
	}
}

// AskAmount asks for a non-negative amount.
func (p *Prompter) AskAmount(ctx context.Context, label string) (decimal.Decimal, error) {
	return ask(ctx, p, label, ParseAmount)
}

// AskOptionalAmount asks for an amount that may be left blank.
func (p *Prompter) AskOptionalAmount(ctx context.Context, label string) (*decimal.Decimal, error) {
	return ask(ctx, p, label+" (blank to skip)", ParseOptionalAmount)
}

// AskDate asks for a date, defaulting to today.
func (p *Prompter) AskDate(ctx context.Context, label string, today time.Time) (time.Time, error) {
	return ask(ctx, p, label+" (YYYY-MM-DD, blank for today)", func(s string) (time.Time, error) {
		return ParseDate(s, today)
	})
}

// AskOptionalDate asks for a date that may be left blank.
func (p *Prompter) AskOptionalDate(ctx context.Context, label string) (*time.Time, error) {
	return ask(ctx, p, label+" (YYYY-MM-DD, blank to skip)", ParseOptionalDate)
}

// AskOptionalNumber asks for a whole number in [low, high]; blank answers 0.
func (p *Prompter) AskOptionalNumber(ctx context.Context, label string, low, high int) (int, error) {
	return ask(ctx, p, label, func(s string) (int, error) {
		return ParseOptionalNumber(s, low, high)
	})
}

// AskType asks whether a record is income or expense.
func (p *Prompter) AskType(ctx context.Context) (model.RecordType, error) {
	return ask(ctx, p, "Type [1] income [2] expense", ParseType)
}

// Confirm asks a yes/no question. Blank means no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	return ask(ctx, p, question+" [y/N]", func(s string) (bool, error) {
		switch strings.ToLower(s) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		default:
			return false, common.NewUserError("please answer y or n", nil)
		}
	})
}

// Choose prints numbered options and returns the zero-based index picked.
func (p *Prompter) Choose(ctx context.Context, title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, ErrNoChoice
	}

	fmt.Fprintln(p.writer, FormatTitle(title))
	for i, opt := range options {
		fmt.Fprintf(p.writer, "  [%d] %s\n", i+1, opt)
	}

	return ask(ctx, p, "Choice", func(s string) (int, error) {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > len(options) {
			return 0, common.NewUserError(fmt.Sprintf("enter a number from 1 to %d", len(options)), nil)
		}
		return n - 1, nil
	})
}
