package underwriting

import (
	"fmt"

	"github.com/Veraticus/true-revenue/internal/model"
)

// ValidateOfferTerms checks externally supplied terms against the hard
// bounds and reports every violation.
func (c *Calculator) ValidateOfferTerms(terms model.OfferTerms) model.ValidationResult {
	b := c.p.validation
	var errs []string

	if terms.FactorRate.LessThan(b.minFactor) || terms.FactorRate.GreaterThan(b.maxFactor) {
		errs = append(errs, fmt.Sprintf("factor rate %s outside valid range (%s - %s)",
			terms.FactorRate.StringFixed(4), b.minFactor.StringFixed(2), b.maxFactor.StringFixed(2)))
	}
	if terms.TermMonths < b.minTerm || terms.TermMonths > b.maxTerm {
		errs = append(errs, fmt.Sprintf("term %d months outside valid range (%d - %d)",
			terms.TermMonths, b.minTerm, b.maxTerm))
	}
	if terms.DailyPayment.LessThan(b.minDaily) || terms.DailyPayment.GreaterThan(b.maxDaily) {
		errs = append(errs, fmt.Sprintf("daily payment %s outside valid range (%s - %s)",
			terms.DailyPayment.StringFixed(2), b.minDaily.StringFixed(2), b.maxDaily.StringFixed(2)))
	}
	if terms.HoldbackPercentage.LessThan(b.minHoldback) || terms.HoldbackPercentage.GreaterThan(b.maxHoldback) {
		errs = append(errs, fmt.Sprintf("holdback %s outside valid range (%s - %s)",
			terms.HoldbackPercentage.StringFixed(4), b.minHoldback.StringFixed(2), b.maxHoldback.StringFixed(2)))
	}
	if !terms.FundingAmount.IsZero() {
		if terms.FundingAmount.LessThan(c.p.minFunding) || terms.FundingAmount.GreaterThan(c.p.maxFunding) {
			errs = append(errs, fmt.Sprintf("funding amount %s outside valid range (%s - %s)",
				terms.FundingAmount.StringFixed(2), c.p.minFunding.StringFixed(2), c.p.maxFunding.StringFixed(2)))
		}
	}

	return model.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
