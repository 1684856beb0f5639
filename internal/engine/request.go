package engine

import (
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/shopspring/decimal"
)

// MonthlyTrueRevenue is the average True Revenue per analyzed month, or the
// statement total when no month could be bucketed.
func MonthlyTrueRevenue(a *model.Analysis) decimal.Decimal {
	if len(a.Months) == 0 {
		return a.Summary.TrueRevenue
	}
	sum := decimal.Zero
	for _, m := range a.Months {
		sum = sum.Add(m.TrueRevenue)
	}
	return sum.Div(decimal.NewFromInt(int64(len(a.Months)))).Round(2)
}

// RequestFromAnalysis fills the revenue-derived fields of base that the
// caller left unset: monthly True Revenue, the existing daily payment and
// position from detected funders, and the volatility level.
func RequestFromAnalysis(a *model.Analysis, base model.UnderwritingRequest) model.UnderwritingRequest {
	req := base
	if req.MonthlyTrueRevenue.IsZero() {
		req.MonthlyTrueRevenue = MonthlyTrueRevenue(a)
	}
	if req.ExistingDailyPayment.IsZero() {
		req.ExistingDailyPayment = a.Positions.TotalDailyPayment
	}
	if req.Position == 0 {
		req.Position = a.Positions.ActivePositions + 1
	}
	if req.VolatilityLevel == "" && a.Volatility.HasData {
		req.VolatilityLevel = a.Volatility.Level
	}
	if req.Industry == "" {
		req.Industry = a.Industry
	}
	return req
}
