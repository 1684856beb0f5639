package testutil

import (
	"testing"
	"time"

	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/shopspring/decimal"
)

// Ledger builds transaction fixtures with a fluent API.
//
// Example:
//
//	txns := testutil.NewLedger(t).
//		On("2024-01-05").Credit("SQUARE INC DEPOSIT", "5000").
//		On("2024-01-06").Debit("ONDECK DAILY PMT", "150").
//		Build()
type Ledger struct {
	t    testing.TB
	date time.Time
	txns []model.Transaction
}

// NewLedger starts a ledger dated 2024-01-02.
func NewLedger(t testing.TB) *Ledger {
	t.Helper()
	return &Ledger{
		t:    t,
		date: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
	}
}

// On sets the date (YYYY-MM-DD) for subsequent entries.
func (l *Ledger) On(date string) *Ledger {
	l.t.Helper()
	l.date = Date(l.t, date)
	return l
}

// Credit appends a deposit.
func (l *Ledger) Credit(description, amount string) *Ledger {
	l.t.Helper()
	return l.add(model.DirectionCredit, description, amount)
}

// Debit appends a withdrawal.
func (l *Ledger) Debit(description, amount string) *Ledger {
	l.t.Helper()
	return l.add(model.DirectionDebit, description, amount)
}

// DailyDebits appends one debit per weekday from the current date, days
// business days long, and leaves the date after the last one.
func (l *Ledger) DailyDebits(description, amount string, days int) *Ledger {
	l.t.Helper()
	for added := 0; added < days; {
		if wd := l.date.Weekday(); wd != time.Saturday && wd != time.Sunday {
			l.add(model.DirectionDebit, description, amount)
			added++
		}
		l.date = l.date.AddDate(0, 0, 1)
	}
	return l
}

// Build returns the transactions in insertion order.
func (l *Ledger) Build() []model.Transaction {
	out := make([]model.Transaction, len(l.txns))
	copy(out, l.txns)
	return out
}

func (l *Ledger) add(dir model.Direction, description, amount string) *Ledger {
	l.t.Helper()
	txn := model.Transaction{
		Date:        l.date,
		Description: description,
		Direction:   dir,
		Amount:      Money(l.t, amount),
	}
	txn.Hash = txn.GenerateHash()
	l.txns = append(l.txns, txn)
	return l
}

// Credit returns a single credit dated date.
func Credit(t testing.TB, date, description, amount string) model.Transaction {
	t.Helper()
	return NewLedger(t).On(date).Credit(description, amount).Build()[0]
}

// Debit returns a single debit dated date.
func Debit(t testing.TB, date, description, amount string) model.Transaction {
	t.Helper()
	return NewLedger(t).On(date).Debit(description, amount).Build()[0]
}

// Money parses a decimal or fails the test.
func Money(t testing.TB, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid amount %q: %v", s, err)
	}
	return d
}

// Date parses YYYY-MM-DD as UTC or fails the test.
func Date(t testing.TB, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("invalid date %q: %v", s, err)
	}
	return d
}
