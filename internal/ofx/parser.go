// Package ofx reads OFX/QFX bank and credit card statements into ledger records.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tags at end of line missing their closing bracket.
	unclosedTagRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Bank-inserted prefixes stripped from descriptions.
var descriptionPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"ACH CREDIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return unclosedTagRegex.ReplaceAllString(content, "$1>")
}

// ParseFile parses an OFX/QFX statement. Debits become expenses and credits
// become income, both with a non-negative amount. Records are uncategorized;
// categories are assigned when they are saved.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.Record, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var (
		records           []model.Record
		bankStmts, ccStmts int
	)

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		bankStmts++
		recs, err := p.convertAll(ctx, stmt.BankTranList.Transactions)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		ccStmts++
		recs, err := p.convertAll(ctx, stmt.BankTranList.Transactions)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}

	slog.Info("Parsed OFX file",
		"records", len(records),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return records, nil
}

func (p *Parser) convertAll(ctx context.Context, txns []ofxgo.Transaction) ([]model.Record, error) {
	records := make([]model.Record, 0, len(txns))
	for _, tx := range txns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := p.convertTransaction(tx)
		if err != nil {
			common.LogError(err, "Skipping OFX transaction", common.Fields{"fitid": string(tx.FiTID)})
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// convertTransaction maps one statement line to a record. OFX signs debits
// negative.
func (p *Parser) convertTransaction(tx ofxgo.Transaction) (model.Record, error) {
	amount, err := decimal.NewFromString(tx.TrnAmt.FloatString(2))
	if err != nil {
		return model.Record{}, fmt.Errorf("invalid amount: %w", err)
	}

	recordType := model.RecordTypeIncome
	if amount.IsNegative() {
		recordType = model.RecordTypeExpense
	}

	return model.Record{
		Type:        recordType,
		Amount:      amount.Abs(),
		Description: p.description(tx),
		Date:        model.Day(tx.DtPosted.Time),
		Category:    model.UncategorizedLabel,
	}, nil
}

// description uses NAME, falling back to MEMO, with bank prefixes removed.
func (p *Parser) description(tx ofxgo.Transaction) string {
	name := strings.TrimSpace(string(tx.Name))
	if name == "" {
		name = strings.TrimSpace(string(tx.Memo))
	}

	upper := strings.ToUpper(name)
	for _, prefix := range descriptionPrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = strings.TrimSpace(name[len(prefix):])
			break
		}
	}

	// Leading "MM/DD " posting dates.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}
	return name
}
