package position

import (
	"testing"
	"time"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/config"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/Veraticus/true-revenue/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDetector(t *testing.T) *Detector {
	t.Helper()
	d, err := NewDetector(config.Default())
	require.NoError(t, err)
	return d
}

func TestDetectTwoFunders(t *testing.T) {
	txns := testutil.NewLedger(t).
		On("2024-01-02").Debit("ONDECK PAYMENT", "500").Debit("KABBAGE DAILY", "300").
		On("2024-01-03").Debit("ONDECK PAYMENT", "500").Debit("KABBAGE DAILY", "300").
		On("2024-01-03").Debit("OFFICE DEPOT", "120").Credit("SQUARE INC DEPOSIT", "5000").
		Build()

	info, errs := newTestDetector(t).Detect(txns)
	require.Empty(t, errs)

	assert.Equal(t, 2, info.ActivePositions)
	assert.Equal(t, "800.00", info.TotalDailyPayment.StringFixed(2))
	assert.Equal(t, "17336.00", info.TotalMonthlyPayment.StringFixed(2))

	require.Len(t, info.Funders, 2)
	ondeck := info.Funders[0]
	assert.Equal(t, "OnDeck", ondeck.Funder)
	assert.Equal(t, 2, ondeck.PaymentCount)
	assert.Equal(t, 2, ondeck.PaymentDays)
	assert.Equal(t, "1000.00", ondeck.TotalAmount.StringFixed(2))
	assert.Equal(t, "500.00", ondeck.AveragePayment.StringFixed(2))
	assert.Equal(t, "500.00", ondeck.EstimatedDailyPayment.StringFixed(2))
	assert.Equal(t, testutil.Date(t, "2024-01-02"), ondeck.FirstSeen)
	assert.Equal(t, testutil.Date(t, "2024-01-03"), ondeck.LastSeen)

	assert.Equal(t, "Kabbage", info.Funders[1].Funder)
	assert.Equal(t, "300.00", info.Funders[1].EstimatedDailyPayment.StringFixed(2))
}

func TestDetectDailyPaymentUsesDistinctDays(t *testing.T) {
	// Two payments on one day and one on the next: 900 over 2 days.
	txns := testutil.NewLedger(t).
		On("2024-02-05").Debit("CREDIBLY ACH", "300").Debit("CREDIBLY ACH", "300").
		On("2024-02-06").Debit("CREDIBLY ACH", "300").
		Build()

	info, errs := newTestDetector(t).Detect(txns)
	require.Empty(t, errs)
	assert.Equal(t, 1, info.ActivePositions)
	assert.Equal(t, "450.00", info.TotalDailyPayment.StringFixed(2))
	require.Len(t, info.Funders, 1)
	assert.Equal(t, 3, info.Funders[0].PaymentCount)
	assert.Equal(t, 2, info.Funders[0].PaymentDays)
	assert.Equal(t, "300.00", info.Funders[0].AveragePayment.StringFixed(2))
}

func TestDetectNoPositions(t *testing.T) {
	tests := []struct {
		name string
		txns []model.Transaction
	}{
		{name: "empty"},
		{
			name: "only unrelated debits",
			txns: testutil.NewLedger(t).Debit("PAYROLL ADP", "8000").Debit("RENT", "3000").Build(),
		},
		{
			name: "funder credits are not payments",
			txns: testutil.NewLedger(t).Credit("ONDECK CAPITAL FUNDING", "25000").Build(),
		},
	}

	d := newTestDetector(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, errs := d.Detect(tt.txns)
			assert.Empty(t, errs)
			assert.Equal(t, 0, info.ActivePositions)
			assert.True(t, info.TotalDailyPayment.IsZero())
			assert.Empty(t, info.Funders)
		})
	}
}

func TestDetectUnknownMCA(t *testing.T) {
	txns := testutil.NewLedger(t).DailyDebits("ACH MCA PMT 88213", "250", 5).Build()

	info, errs := newTestDetector(t).Detect(txns)
	require.Empty(t, errs)
	require.Len(t, info.Funders, 1)
	assert.Equal(t, "Unknown MCA", info.Funders[0].Funder)
	assert.Equal(t, "250.00", info.TotalDailyPayment.StringFixed(2))
}

func TestDetectSkipsUndatedPayments(t *testing.T) {
	undated := testutil.Debit(t, "2024-01-02", "ONDECK PAYMENT", "500")
	undated.Date = time.Time{}
	txns := []model.Transaction{
		testutil.Debit(t, "2024-01-02", "ONDECK PAYMENT", "500"),
		undated,
	}

	info, errs := newTestDetector(t).Detect(txns)
	require.Len(t, errs, 1)
	assert.Equal(t, 1, errs[0].Index)
	assert.ErrorIs(t, errs[0], common.ErrMissingDate)
	assert.Equal(t, 1, info.ActivePositions)
	assert.Equal(t, "500.00", info.TotalDailyPayment.StringFixed(2))
}

func TestNewDetectorRejectsBadConfig(t *testing.T) {
	tests := []struct {
		mutate func(*config.Config)
		name   string
	}{
		{name: "no funders", mutate: func(c *config.Config) { c.Funders = nil }},
		{name: "bad regex", mutate: func(c *config.Config) { c.Funders[0].Pattern = "(" }},
		{name: "empty pattern", mutate: func(c *config.Config) { c.Funders[0].Pattern = "" }},
		{name: "zero business days", mutate: func(c *config.Config) { c.BusinessDaysPerMonth = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			_, err := NewDetector(cfg)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}
