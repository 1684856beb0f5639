package classification

import (
	"fmt"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/shopspring/decimal"
)

// Heuristic rule identifiers.
const (
	RuleLargeDeposit   = "heuristic_large_deposit"
	RuleSuspiciousLoan = "heuristic_suspicious_loan_amount"
	RuleRoundNumber    = "heuristic_round_number"
	RuleDefault        = "heuristic_default"
)

// apply classifies a credit that no rule matched.
func (h Heuristics) apply(amount decimal.Decimal) model.ClassificationResult {
	if amount.GreaterThanOrEqual(h.LargeDepositThreshold) {
		return model.ClassificationResult{
			Category:   model.CategoryNeedsReview,
			Reason:     fmt.Sprintf("Large deposit (>$%s) requires manual review", common.FormatWhole(h.LargeDepositThreshold)),
			RuleID:     RuleLargeDeposit,
			Source:     model.SourceRule,
			Confidence: 0.5,
		}
	}

	if h.isSuspiciousLoanAmount(amount) {
		return model.ClassificationResult{
			Category:   model.CategoryNeedsReview,
			Reason:     "Deposit matches common loan amount - may be funding",
			RuleID:     RuleSuspiciousLoan,
			Source:     model.SourceRule,
			Confidence: 0.6,
		}
	}

	if h.isVeryRound(amount) {
		return model.ClassificationResult{
			Category:   model.CategoryNeedsReview,
			Reason:     "Round number deposit - may be transfer, loan, or capital injection",
			RuleID:     RuleRoundNumber,
			Source:     model.SourceRule,
			Confidence: 0.6,
		}
	}

	return model.ClassificationResult{
		Category:   model.CategoryRevenue,
		Reason:     "Default classification - no pattern match",
		RuleID:     RuleDefault,
		Source:     model.SourceRule,
		Confidence: h.DefaultConfidence,
	}
}

func (h Heuristics) isSuspiciousLoanAmount(amount decimal.Decimal) bool {
	for _, s := range h.SuspiciousLoanAmounts {
		if amount.Sub(s).Abs().LessThanOrEqual(h.SuspiciousTolerance) {
			return true
		}
	}
	return false
}

// isVeryRound: at or above the round threshold, an exact multiple of the
// round unit, and also an exact multiple of the very-round unit.
func (h Heuristics) isVeryRound(amount decimal.Decimal) bool {
	if amount.LessThan(h.RoundNumberThreshold) || !amount.Mod(h.RoundNumberUnit).IsZero() {
		return false
	}
	return amount.GreaterThanOrEqual(h.VeryRoundUnit) && amount.Mod(h.VeryRoundUnit).IsZero()
}
