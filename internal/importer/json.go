package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/shopspring/decimal"
)

// jsonRecord is one transaction in a JSON statement. Amount may be a
// number or a string; a negative amount with no type is a debit.
type jsonRecord struct {
	Amount      *decimal.Decimal `json:"amount"`
	Date        string           `json:"date"`
	Description string           `json:"description"`
	Type        string           `json:"type"`
	ID          string           `json:"id"`
	AccountID   string           `json:"account_id"`
	CheckNumber string           `json:"check_number"`
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "01/02/2006"}

// ReadJSON decodes a JSON array of transactions. Records with an
// unparseable date, amount or type are returned as DataErrors; records
// with a missing date or amount are passed through for the engines to
// reject.
func ReadJSON(r io.Reader) ([]model.Transaction, []*common.DataError, error) {
	var records []json.RawMessage
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	txns := make([]model.Transaction, 0, len(records))
	var dataErrs []*common.DataError
	for i, raw := range records {
		var rec jsonRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			dataErrs = append(dataErrs, common.NewDataError(i, "", err))
			continue
		}
		txn, err := rec.transaction()
		if err != nil {
			dataErrs = append(dataErrs, common.NewDataError(i, rec.Description, err))
			continue
		}
		txns = append(txns, txn)
	}
	return txns, dataErrs, nil
}

func (rec jsonRecord) transaction() (model.Transaction, error) {
	txn := model.Transaction{
		ID:          rec.ID,
		Description: strings.TrimSpace(rec.Description),
		AccountID:   rec.AccountID,
		CheckNumber: rec.CheckNumber,
	}

	if rec.Date != "" {
		date, err := parseDate(rec.Date)
		if err != nil {
			return model.Transaction{}, err
		}
		txn.Date = date
	}

	amount := decimal.Zero
	if rec.Amount != nil {
		amount = *rec.Amount
	}

	switch dir := model.Direction(strings.ToLower(strings.TrimSpace(rec.Type))); {
	case dir == "":
		txn.Direction = model.DirectionCredit
		if amount.IsNegative() {
			txn.Direction = model.DirectionDebit
		}
	case dir.IsValid():
		txn.Direction = dir
	default:
		return model.Transaction{}, fmt.Errorf("unknown transaction type %q", rec.Type)
	}
	txn.Amount = amount.Abs()
	txn.Hash = txn.GenerateHash()
	return txn, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
