// Package revenue aggregates classified credits into True Revenue totals,
// calendar-month buckets and volatility metrics.
package revenue

import (
	"sort"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/config"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Aggregator turns classified credits into summaries. It holds no state
// beyond its configuration and is safe for concurrent use.
type Aggregator struct {
	businessDays decimal.Decimal
	lowBelow     decimal.Decimal
	highAbove    decimal.Decimal
}

// NewAggregator creates an aggregator from cfg.
func NewAggregator(cfg *config.Config) (*Aggregator, error) {
	if cfg == nil {
		return nil, common.NewConfigError("config", "%w", common.ErrMissingConfig)
	}
	if cfg.BusinessDaysPerMonth <= 0 {
		return nil, common.NewConfigError("business_days_per_month",
			"must be positive, got %v", cfg.BusinessDaysPerMonth)
	}
	if cfg.Volatility.LowBelow > cfg.Volatility.HighAbove {
		return nil, common.NewConfigError("volatility",
			"low_below %v exceeds high_above %v", cfg.Volatility.LowBelow, cfg.Volatility.HighAbove)
	}

	return &Aggregator{
		businessDays: decimal.NewFromFloat(cfg.BusinessDaysPerMonth),
		lowBelow:     decimal.NewFromFloat(cfg.Volatility.LowBelow),
		highAbove:    decimal.NewFromFloat(cfg.Volatility.HighAbove),
	}, nil
}

// BusinessDaysPerMonth returns the divisor used for daily figures.
func (a *Aggregator) BusinessDaysPerMonth() decimal.Decimal {
	return a.businessDays
}

// Summarize totals classified credits by category.
func (a *Aggregator) Summarize(classified []model.ClassifiedTransaction) model.RevenueSummary {
	var t totals
	for _, ct := range classified {
		t.add(ct)
	}

	summary := model.RevenueSummary{
		TrueRevenue:       t.revenue.Round(2),
		ExcludedAmount:    t.excluded.Round(2),
		NeedsReviewAmount: t.needsReview.Round(2),
		TotalCredits:      t.total().Round(2),
		RevenueRatio:      t.ratio(),
		Counts:            t.counts,
	}

	common.LogDebug("Summarized credits", common.Fields{
		"credits":      summary.Counts.Total,
		"true_revenue": summary.TrueRevenue.String(),
		"ratio":        summary.RevenueRatio.String(),
	})
	return summary
}

// DailyTrueRevenue divides a monthly figure by the configured business days.
func (a *Aggregator) DailyTrueRevenue(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Div(a.businessDays)
}

// SummarizeByReason groups classified credits by category and reason,
// largest total first.
func SummarizeByReason(classified []model.ClassifiedTransaction) []model.ReasonSummary {
	type key struct {
		category model.Category
		reason   string
	}

	index := make(map[key]int)
	var out []model.ReasonSummary
	for _, ct := range classified {
		k := key{category: ct.Result.Category, reason: ct.Result.Reason}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, model.ReasonSummary{
				Category: k.category,
				Reason:   k.reason,
				Source:   ct.Result.Source,
			})
		}
		out[i].Count++
		out[i].Total = out[i].Total.Add(ct.Transaction.Amount)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Reason < out[j].Reason
	})
	for i := range out {
		out[i].Total = out[i].Total.Round(2)
	}
	return out
}

type totals struct {
	revenue     decimal.Decimal
	excluded    decimal.Decimal
	needsReview decimal.Decimal
	counts      model.CategoryCounts
}

func (t *totals) add(ct model.ClassifiedTransaction) {
	amount := ct.Transaction.Amount
	t.counts.Total++
	switch ct.Result.Category {
	case model.CategoryRevenue:
		t.revenue = t.revenue.Add(amount)
		t.counts.Revenue++
	case model.CategoryExcluded:
		t.excluded = t.excluded.Add(amount)
		t.counts.Excluded++
	case model.CategoryNeedsReview:
		t.needsReview = t.needsReview.Add(amount)
		t.counts.NeedsReview++
	}
}

func (t *totals) total() decimal.Decimal {
	return t.revenue.Add(t.excluded).Add(t.needsReview)
}

// ratio is revenue over revenue plus excluded; needs-review credits are
// left out until they are resolved.
func (t *totals) ratio() decimal.Decimal {
	return ratio(t.revenue, t.revenue.Add(t.excluded))
}

// ratio returns part/whole as a percentage rounded to two places, or zero
// when whole is zero.
func ratio(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}
