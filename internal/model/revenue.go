package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryCounts holds per-category transaction counts.
type CategoryCounts struct {
	Total       int `json:"total"`
	Revenue     int `json:"revenue"`
	Excluded    int `json:"excluded"`
	NeedsReview int `json:"needs_review"`
}

// RevenueSummary aggregates a classified credit set.
type RevenueSummary struct {
	TrueRevenue       decimal.Decimal `json:"true_revenue"`
	ExcludedAmount    decimal.Decimal `json:"excluded_amount"`
	NeedsReviewAmount decimal.Decimal `json:"needs_review_amount"`
	TotalCredits      decimal.Decimal `json:"total_credits"`
	RevenueRatio      decimal.Decimal `json:"revenue_ratio"` // Percent, 0-100.
	Counts            CategoryCounts  `json:"counts"`
}

// LineItem is a non-revenue credit surfaced for audit in a month bucket.
type LineItem struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Reason      string          `json:"reason"`
	Amount      decimal.Decimal `json:"amount"`
}

// MonthlyBucket summarizes one calendar month.
type MonthlyBucket struct {
	MonthKey         string          `json:"month_key"`
	MonthName        string          `json:"month_name"`
	TrueRevenue      decimal.Decimal `json:"true_revenue"`
	Excluded         decimal.Decimal `json:"excluded"`
	NeedsReview      decimal.Decimal `json:"needs_review"`
	TotalCredits     decimal.Decimal `json:"total_credits"`
	DailyTrueRevenue decimal.Decimal `json:"daily_true_revenue"`
	RevenueRatio     decimal.Decimal `json:"revenue_ratio"`
	BusinessDays     decimal.Decimal `json:"business_days"`
	ExcludedItems    []LineItem      `json:"excluded_items,omitempty"`
	NeedsReviewItems []LineItem      `json:"needs_review_items,omitempty"`
	CalendarDays     int             `json:"calendar_days"`
	TransactionCount int             `json:"transaction_count"`
}

// VolatilityLevel buckets the coefficient of variation of monthly revenue.
type VolatilityLevel string

// Volatility level constants.
const (
	VolatilityLow    VolatilityLevel = "low"
	VolatilityMedium VolatilityLevel = "medium"
	VolatilityHigh   VolatilityLevel = "high"
)

// IsValid reports whether v is a known volatility level.
func (v VolatilityLevel) IsValid() bool {
	switch v {
	case VolatilityLow, VolatilityMedium, VolatilityHigh:
		return true
	}
	return false
}

// TrendDirection describes how revenue moved across the analyzed months.
type TrendDirection string

// Trend direction constants.
const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendFlat       TrendDirection = "flat"
)

// VolatilityMetrics describes month-over-month revenue stability.
type VolatilityMetrics struct {
	Level                  VolatilityLevel `json:"volatility_level,omitempty"`
	Trend                  TrendDirection  `json:"trend,omitempty"`
	Mean                   decimal.Decimal `json:"average_revenue"`
	Min                    decimal.Decimal `json:"min_revenue"`
	Max                    decimal.Decimal `json:"max_revenue"`
	StdDev                 decimal.Decimal `json:"std_deviation"`
	Variance               decimal.Decimal `json:"variance"`
	CoefficientOfVariation decimal.Decimal `json:"coefficient_of_variation"`
	MonthlyChange          decimal.Decimal `json:"monthly_change"`     // Least-squares slope per month.
	TrendPercentage        decimal.Decimal `json:"percentage_change"` // Slope relative to the mean.
	MonthsAnalyzed         int             `json:"months_analyzed"`
	HasData                bool            `json:"has_data"`
}

// ReasonSummary groups classified credits sharing a category and reason.
type ReasonSummary struct {
	Category Category        `json:"category"`
	Reason   string          `json:"reason"`
	Source   Source          `json:"source"`
	Total    decimal.Decimal `json:"total_amount"`
	Count    int             `json:"count"`
}
