// Package ofx reads bank statements in OFX/QFX format.
package ofx

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tags at end of line that are missing their closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

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
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

func (p *Parser) parse(reader io.Reader) (*ofxgo.Response, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// ParseFile parses an OFX/QFX file and returns its bank and credit card
// transactions. Positive OFX amounts become credits, the rest debits.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.Transaction, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		bankStmts++
		transactions = append(transactions, p.convertAll(stmt.BankTranList.Transactions, string(stmt.BankAcctFrom.AcctID))...)
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		ccStmts++
		transactions = append(transactions, p.convertAll(stmt.BankTranList.Transactions, string(stmt.CCAcctFrom.AcctID))...)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	common.LogInfo("Parsed OFX file", common.Fields{
		"total_transactions": len(transactions),
		"bank_statements":    bankStmts,
		"cc_statements":      ccStmts,
	})

	return transactions, nil
}

func (p *Parser) convertAll(txns []ofxgo.Transaction, accountID string) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, ofxTx := range txns {
		out = append(out, p.convertTransaction(ofxTx, accountID))
	}
	return out
}

// convertTransaction converts an OFX transaction to our model.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, accountID string) model.Transaction {
	amount := decimal.RequireFromString(ofxTx.TrnAmt.FloatString(2))
	direction := model.DirectionDebit
	if amount.IsPositive() {
		direction = model.DirectionCredit
	}

	tx := model.Transaction{
		ID:          string(ofxTx.FiTID),
		Date:        ofxTx.DtPosted.Time,
		Description: description(ofxTx),
		Amount:      amount.Abs(),
		Direction:   direction,
		AccountID:   accountID,
		CheckNumber: string(ofxTx.CheckNum),
	}
	tx.Hash = tx.GenerateHash()
	return tx
}

// description joins NAME and MEMO into the statement line the classifier
// sees. A generic NAME is replaced by MEMO.
func description(tx ofxgo.Transaction) string {
	name := strings.TrimSpace(string(tx.Name))
	if name == "" && tx.Payee != nil {
		name = strings.TrimSpace(string(tx.Payee.Name))
	}
	memo := strings.TrimSpace(string(tx.Memo))

	switch {
	case memo == "":
		return name
	case name == "" || isGenericDescription(name):
		return memo
	case strings.Contains(strings.ToUpper(name), strings.ToUpper(memo)):
		return name
	default:
		return name + " " + memo
	}
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"DEPOSIT",
		"PAYMENT",
		"ACH CREDIT",
		"ACH DEBIT",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}

// GetAccounts extracts unique account IDs from the OFX file.
func (p *Parser) GetAccounts(_ context.Context, reader io.Reader) ([]string, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var accounts []string
	add := func(id ofxgo.String) {
		if id != "" && !seen[string(id)] {
			seen[string(id)] = true
			accounts = append(accounts, string(id))
		}
	}

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			add(stmt.BankAcctFrom.AcctID)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			add(stmt.CCAcctFrom.AcctID)
		}
	}

	return accounts, nil
}
