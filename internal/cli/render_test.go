package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleAnalysis() *model.Analysis {
	jan := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &model.Analysis{
		ID:           "a-1",
		Source:       "jan.ofx",
		Industry:     "restaurant",
		Transactions: 6,
		Summary: model.RevenueSummary{
			TrueRevenue:       d("60000"),
			ExcludedAmount:    d("25000"),
			NeedsReviewAmount: d("0"),
			TotalCredits:      d("85000"),
			RevenueRatio:      d("70.59"),
			Counts:            model.CategoryCounts{Total: 4, Revenue: 2, Excluded: 1, NeedsReview: 1},
		},
		Months: []model.MonthlyBucket{
			{
				MonthKey:         "2024-01",
				MonthName:        "January 2024",
				TrueRevenue:      d("30000"),
				Excluded:         d("25000"),
				TotalCredits:     d("55000"),
				DailyTrueRevenue: d("1363.64"),
				RevenueRatio:     d("54.5"),
				TransactionCount: 2,
				ExcludedItems: []model.LineItem{
					{Date: jan.AddDate(0, 0, 9), Description: "ONDECK CAPITAL FUNDING", Reason: "MCA funding", Amount: d("25000")},
				},
			},
		},
		Reasons: []model.ReasonSummary{
			{Category: model.CategoryRevenue, Reason: "Card processor deposit", Source: model.SourceRule, Total: d("60000"), Count: 2},
		},
		Positions: model.PositionInfo{
			ActivePositions:     1,
			TotalDailyPayment:   d("500"),
			TotalMonthlyPayment: d("11000"),
			Funders: []model.FunderPosition{
				{Funder: "OnDeck", PaymentCount: 2, AveragePayment: d("500"), EstimatedDailyPayment: d("500"), EstimatedMonthlyPayment: d("11000"), FirstSeen: jan, LastSeen: jan.AddDate(0, 0, 1)},
			},
		},
		Skipped: []string{"record 5: missing date"},
	}
}

func TestRenderAnalysis(t *testing.T) {
	tests := []struct {
		analysis    *model.Analysis
		name        string
		contains    []string
		notContains []string
	}{
		{
			name:     "nil analysis",
			contains: []string{"No analysis available"},
		},
		{
			name:     "complete analysis",
			analysis: sampleAnalysis(),
			contains: []string{
				"True Revenue Summary",
				"$60,000.00",
				"70.59%",
				"January 2024",
				"ONDECK CAPITAL FUNDING",
				"MCA funding",
				"Card processor deposit",
				"OnDeck",
				"Skipped Records (1)",
				"Not enough months",
			},
		},
		{
			name: "no positions",
			analysis: &model.Analysis{
				Volatility: model.VolatilityMetrics{HasData: true, Level: model.VolatilityHigh, MonthsAnalyzed: 3, Trend: model.TrendDecreasing},
			},
			contains:    []string{"No existing positions detected", "high", "decreasing"},
			notContains: []string{"Skipped Records", "Monthly Breakdown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderAnalysis(tt.analysis)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestRenderMonthsLimitsAuditItems(t *testing.T) {
	month := model.MonthlyBucket{MonthName: "March 2024"}
	for i := 0; i < maxAuditItems+2; i++ {
		month.NeedsReviewItems = append(month.NeedsReviewItems, model.LineItem{
			Description: "ZELLE FROM CUSTOMER",
			Reason:      "Needs review",
			Amount:      decimal.NewFromInt(int64(100 + i)),
		})
	}

	out := RenderMonths([]model.MonthlyBucket{month})
	assert.Equal(t, maxAuditItems, strings.Count(out, "ZELLE FROM CUSTOMER"))
	assert.Contains(t, out, "... and 2 more")
	assert.Contains(t, out, "$106.00")
	assert.NotContains(t, out, "$100.00")
}

func TestTableAlignsColumns(t *testing.T) {
	out := table([]string{"A", "Value"}, [][]string{{"long name", "1"}, {"x", "22"}})
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, strings.Index(lines[0], "Value"), strings.Index(lines[2], "1"))
	assert.Equal(t, strings.Index(lines[0], "Value"), strings.Index(lines[3], "22"))
}

func TestRenderDecision(t *testing.T) {
	offer := &model.Offer{
		FundingAmount:      d("50000"),
		FactorRate:         d("1.35"),
		PaybackAmount:      d("67500"),
		DailyPayment:       d("511.36"),
		HoldbackPercentage: d("0.10"),
		TermMonths:         6,
		TermBusinessDays:   132,
		Position:           2,
		MathBreakdown: []model.MathStep{
			{Step: "Daily True Revenue", Formula: "monthly / 22", Values: []model.NamedValue{{Name: "daily", Value: d("2272.73")}}},
		},
	}

	tests := []struct {
		name        string
		result      model.DecisionResult
		showMath    bool
		contains    []string
		notContains []string
	}{
		{
			name:     "approved with math",
			result:   model.Funded(model.StatusApproved, offer, "APPROVED: $50,000.00"),
			showMath: true,
			contains: []string{"APPROVED", "$67,500.00", "1.35", "10.0%", "6 months (132 business days)", "Daily True Revenue", "monthly / 22"},
		},
		{
			name:        "approved without math",
			result:      model.Funded(model.StatusApproved, offer, ""),
			contains:    []string{"$50,000.00"},
			notContains: []string{"Calculation"},
		},
		{
			name: "reduced with warnings",
			result: func() model.DecisionResult {
				r := model.Funded(model.StatusApprovedReduced, offer, "")
				r.Warnings = []string{"Offer reduced to comply with 20% maximum withhold cap"}
				return r
			}(),
			contains: []string{"APPROVED (REDUCED)", "20% maximum withhold cap"},
		},
		{
			name:        "declined",
			result:      model.Declined(model.DeclineAtCapacity, "Merchant is at maximum withhold capacity."),
			contains:    []string{"DECLINED DECLINE_AT_CAPACITY", "Merchant is at maximum withhold capacity."},
			notContains: []string{"Offer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderDecision(tt.result, tt.showMath)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestRenderCapacity(t *testing.T) {
	snap := model.CapacitySnapshot{
		MonthlyTrueRevenue:     d("50000"),
		DailyTrueRevenue:       d("2272.73"),
		MaxWithholdPercent:     d("20"),
		MaxDailyPayment:        d("454.55"),
		ExistingDailyPayment:   d("500"),
		CurrentWithholdPercent: d("22"),
		AtCapacity:             true,
	}
	out := RenderCapacity(snap)
	assert.Contains(t, out, "$454.55")
	assert.Contains(t, out, "20.0%")
	assert.Contains(t, out, "At maximum withhold capacity")

	snap.AtCapacity = false
	assert.Contains(t, RenderCapacity(snap), "Can take a new position")
}

func TestRenderValidation(t *testing.T) {
	assert.Contains(t, RenderValidation(model.ValidationResult{Valid: true}), "Offer terms are valid")

	out := RenderValidation(model.ValidationResult{Errors: []string{"Factor rate 1.60 above maximum 1.49", "Term 24 months above maximum 18"}})
	assert.Contains(t, out, "2 problem(s)")
	assert.Contains(t, out, "- Factor rate 1.60 above maximum 1.49")
}

func TestRenderScenarios(t *testing.T) {
	out := RenderScenarios(map[string]model.DecisionResult{
		"zeta":  model.Declined(model.DeclineLowRisk, ""),
		"alpha": model.Funded(model.StatusApproved, &model.Offer{FundingAmount: d("40000"), FactorRate: d("1.30"), DailyPayment: d("393.94"), TermMonths: 6}, ""),
	})
	assert.Less(t, strings.Index(out, "alpha"), strings.Index(out, "zeta"))
	assert.Contains(t, out, "$40,000.00")
	assert.Contains(t, out, "DECLINE_LOW_RISK")
}

func TestRenderHistory(t *testing.T) {
	assert.Contains(t, RenderDecisions(nil), "No decisions recorded.")
	assert.Contains(t, RenderAnalyses(nil), "No analyses recorded.")
	assert.Contains(t, RenderPatterns(nil), "No learned patterns.")

	out := RenderDecisions([]model.Decision{{
		ID:      "d-1",
		Request: model.UnderwritingRequest{RequestedAmount: d("75000")},
		Result:  model.Funded(model.StatusApprovedReduced, &model.Offer{FundingAmount: d("50000")}, ""),
	}})
	assert.Contains(t, out, "d-1")
	assert.Contains(t, out, "$75,000.00")
	assert.Contains(t, out, "approved_reduced")

	out = RenderPatterns([]model.LearnedPattern{{ID: 7, NormalizedDescription: "zelle from acme", Category: model.CategoryExcluded, Confidence: 100, Occurrences: 2, ManualOverride: true}})
	assert.Contains(t, out, "zelle from acme")
	assert.Contains(t, out, CheckIcon)
}
