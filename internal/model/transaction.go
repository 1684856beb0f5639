package model

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Direction tells whether money entered or left the account.
type Direction string

// Direction constants.
const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// IsValid reports whether d is a known direction.
func (d Direction) IsValid() bool {
	return d == DirectionCredit || d == DirectionDebit
}

// Transaction represents a single bank-statement ledger line.
type Transaction struct {
	Date        time.Time       `json:"date"`
	ID          string          `json:"id,omitempty"`
	Description string          `json:"description"`
	AccountID   string          `json:"account_id,omitempty"`
	CheckNumber string          `json:"check_number,omitempty"`
	Hash        string          `json:"hash,omitempty"`
	Direction   Direction       `json:"type"`
	Amount      decimal.Decimal `json:"amount"` // Always non-negative; Direction carries the sign.
}

// IsCredit reports whether the transaction deposited money.
func (t Transaction) IsCredit() bool {
	return t.Direction == DirectionCredit
}

// IsDebit reports whether the transaction withdrew money.
func (t Transaction) IsDebit() bool {
	return t.Direction == DirectionDebit
}

// MonthKey returns the calendar month of the transaction as YYYY-MM.
func (t Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount.StringFixed(2),
		t.Direction,
		t.Description,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
