package underwriting

import (
	"fmt"
	"strings"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/shopspring/decimal"
)

func pct(d decimal.Decimal, places int32) string {
	return d.StringFixed(places) + "%"
}

func invalidRevenueExplanation() string {
	return "Cannot calculate offer without valid monthly True Revenue."
}

func tooManyPositionsExplanation(position, maxPositions int) string {
	return fmt.Sprintf("Position %d exceeds maximum allowed positions (%d).", position, maxPositions)
}

func atCapacityExplanation(c capacity) string {
	return fmt.Sprintf("Merchant is at maximum withhold capacity. Current withhold: %s of %s maximum.",
		pct(c.currentPercent(), 1), pct(c.maxWithhold.Mul(hundred), 1))
}

func lowRiskExplanation(score, minimum int) string {
	return fmt.Sprintf("Risk score %d is below the minimum of %d.", score, minimum)
}

func belowMinimumExplanation(amount, minimum decimal.Decimal) string {
	return fmt.Sprintf("Calculated funding amount %s is below minimum threshold of %s.",
		common.FormatMoney(amount), common.FormatMoney(minimum))
}

func capBelowMinimumExplanation(c capacity, amount decimal.Decimal) string {
	return fmt.Sprintf("After applying %s withhold cap, funding amount %s is below minimum.",
		pct(c.maxWithhold.Mul(hundred), 0), common.FormatMoney(amount))
}

func invalidTermsExplanation(errs []string) string {
	return "Calculated offer fails term validation: " + strings.Join(errs, "; ") + "."
}

func capWarning(c capacity) string {
	return fmt.Sprintf("Offer reduced to comply with %s maximum withhold cap", pct(c.maxWithhold.Mul(hundred), 0))
}

func offerExplanation(status model.DecisionStatus, offer *model.Offer, c capacity, requested decimal.Decimal) string {
	var lines []string
	if status == model.StatusApproved {
		lines = append(lines, fmt.Sprintf("APPROVED: %s at %s factor for %d months.",
			common.FormatMoney(offer.FundingAmount), offer.FactorRate.StringFixed(2), offer.TermMonths))
	} else {
		lines = append(lines, fmt.Sprintf("APPROVED (REDUCED): %s of %s requested (%s).",
			common.FormatMoney(offer.FundingAmount), common.FormatMoney(requested),
			pct(percentOf(offer.FundingAmount, requested), 0)))
	}

	wb := offer.WithholdBreakdown
	lines = append(lines,
		fmt.Sprintf("Daily payment: %s (%s of daily revenue).",
			common.FormatMoney(offer.DailyPayment), pct(wb.NewWithholdPercent, 1)),
		fmt.Sprintf("Total withhold after this position: %s of %s maximum.",
			pct(wb.TotalWithholdPercent, 1), pct(c.maxWithhold.Mul(hundred), 1)),
		fmt.Sprintf("Remaining capacity: %s/day (%s).",
			common.FormatMoney(wb.RemainingCapacityAfter), pct(wb.RemainingPercentAfter, 1)),
	)
	return strings.Join(lines, " ")
}
