package underwriting

import (
	"testing"

	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestValidateOfferTerms(t *testing.T) {
	valid := model.OfferTerms{
		FactorRate:         dec("1.30"),
		TermMonths:         6,
		DailyPayment:       dec("500"),
		HoldbackPercentage: dec("0.15"),
	}

	tests := []struct {
		name       string
		mutate     func(*model.OfferTerms)
		wantErrors []string
	}{
		{name: "valid terms", mutate: func(*model.OfferTerms) {}},
		{
			name:       "factor rate too low",
			mutate:     func(o *model.OfferTerms) { o.FactorRate = dec("1.05") },
			wantErrors: []string{"factor rate 1.0500 outside valid range (1.10 - 1.75)"},
		},
		{
			name:       "factor rate too high",
			mutate:     func(o *model.OfferTerms) { o.FactorRate = dec("1.80") },
			wantErrors: []string{"factor rate 1.8000 outside valid range (1.10 - 1.75)"},
		},
		{
			name:       "term too long",
			mutate:     func(o *model.OfferTerms) { o.TermMonths = 24 },
			wantErrors: []string{"term 24 months outside valid range (2 - 18)"},
		},
		{
			name:       "daily payment too small",
			mutate:     func(o *model.OfferTerms) { o.DailyPayment = dec("25") },
			wantErrors: []string{"daily payment 25.00 outside valid range (50.00 - 50000.00)"},
		},
		{
			name:       "holdback too high",
			mutate:     func(o *model.OfferTerms) { o.HoldbackPercentage = dec("0.35") },
			wantErrors: []string{"holdback 0.3500 outside valid range (0.05 - 0.30)"},
		},
		{
			name:       "funding amount checked when present",
			mutate:     func(o *model.OfferTerms) { o.FundingAmount = dec("1000") },
			wantErrors: []string{"funding amount 1000.00 outside valid range (5000.00 - 500000.00)"},
		},
		{
			name: "every violation reported",
			mutate: func(o *model.OfferTerms) {
				o.FactorRate = dec("2")
				o.TermMonths = 1
				o.DailyPayment = dec("60000")
				o.HoldbackPercentage = dec("0.01")
			},
			wantErrors: []string{
				"factor rate 2.0000 outside valid range (1.10 - 1.75)",
				"term 1 months outside valid range (2 - 18)",
				"daily payment 60000.00 outside valid range (50.00 - 50000.00)",
				"holdback 0.0100 outside valid range (0.05 - 0.30)",
			},
		},
		{
			name: "bounds are inclusive",
			mutate: func(o *model.OfferTerms) {
				o.FactorRate = dec("1.10")
				o.TermMonths = 18
				o.DailyPayment = dec("50")
				o.HoldbackPercentage = dec("0.30")
			},
		},
	}

	calc := newTestCalculator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := valid
			tt.mutate(&terms)
			got := calc.ValidateOfferTerms(terms)
			assert.Equal(t, len(tt.wantErrors) == 0, got.Valid)
			assert.Equal(t, tt.wantErrors, got.Errors)
		})
	}
}

func TestValidateOfferTermsLowFactorScenario(t *testing.T) {
	calc := newTestCalculator(t)
	got := calc.ValidateOfferTerms(model.OfferTerms{
		FactorRate:         dec("1.05"),
		TermMonths:         6,
		DailyPayment:       dec("500"),
		HoldbackPercentage: dec("0.15"),
	})
	assert.False(t, got.Valid)
	if assert.Len(t, got.Errors, 1) {
		assert.Contains(t, got.Errors[0], "factor rate")
	}
}
