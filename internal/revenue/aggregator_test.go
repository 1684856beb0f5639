package revenue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/true-revenue/internal/classification"
	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/config"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/Veraticus/true-revenue/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAggregator(t *testing.T) *Aggregator {
	t.Helper()
	agg, err := NewAggregator(config.Default())
	require.NoError(t, err)
	return agg
}

func classified(t *testing.T, date, description, amount string, category model.Category) model.ClassifiedTransaction {
	t.Helper()
	return model.ClassifiedTransaction{
		Transaction: testutil.Credit(t, date, description, amount),
		Result: model.ClassificationResult{
			Category: category,
			Reason:   string(category) + " reason",
			Source:   model.SourceRule,
		},
	}
}

func TestNewAggregatorRejectsBadConfig(t *testing.T) {
	tests := []struct {
		mutate func(*config.Config)
		name   string
	}{
		{name: "zero business days", mutate: func(c *config.Config) { c.BusinessDaysPerMonth = 0 }},
		{name: "negative business days", mutate: func(c *config.Config) { c.BusinessDaysPerMonth = -1 }},
		{name: "inverted volatility", mutate: func(c *config.Config) { c.Volatility.LowBelow = 40 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			_, err := NewAggregator(cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
			var cfgErr *common.ConfigError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}

	_, err := NewAggregator(nil)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name        string
		txns        []model.ClassifiedTransaction
		wantRevenue string
		wantExclude string
		wantReview  string
		wantRatio   string
		wantCounts  model.CategoryCounts
	}{
		{
			name:        "empty",
			wantRevenue: "0",
			wantExclude: "0",
			wantReview:  "0",
			wantRatio:   "0",
		},
		{
			name: "eighty percent",
			txns: []model.ClassifiedTransaction{
				classified(t, "2024-01-03", "SQUARE", "8000", model.CategoryRevenue),
				classified(t, "2024-01-04", "LOAN", "2000", model.CategoryExcluded),
			},
			wantRevenue: "8000",
			wantExclude: "2000",
			wantReview:  "0",
			wantRatio:   "80",
			wantCounts:  model.CategoryCounts{Total: 2, Revenue: 1, Excluded: 1},
		},
		{
			name: "rounds ratio to two places",
			txns: []model.ClassifiedTransaction{
				classified(t, "2024-01-03", "SALES", "100000", model.CategoryRevenue),
				classified(t, "2024-01-04", "TRANSFER", "30000", model.CategoryExcluded),
			},
			wantRevenue: "100000",
			wantExclude: "30000",
			wantReview:  "0",
			wantRatio:   "76.92",
			wantCounts:  model.CategoryCounts{Total: 2, Revenue: 1, Excluded: 1},
		},
		{
			name: "needs review stays out of the ratio",
			txns: []model.ClassifiedTransaction{
				classified(t, "2024-01-03", "SQUARE INC DEPOSIT", "5000", model.CategoryRevenue),
				classified(t, "2024-01-04", "WIRE TRANSFER", "60000", model.CategoryNeedsReview),
			},
			wantRevenue: "5000",
			wantExclude: "0",
			wantReview:  "60000",
			wantRatio:   "100",
			wantCounts:  model.CategoryCounts{Total: 2, Revenue: 1, NeedsReview: 1},
		},
		{
			name: "needs review with exclusions",
			txns: []model.ClassifiedTransaction{
				classified(t, "2024-01-03", "SALES", "6000", model.CategoryRevenue),
				classified(t, "2024-01-04", "LOAN", "2000", model.CategoryExcluded),
				classified(t, "2024-01-05", "UNKNOWN", "4000", model.CategoryNeedsReview),
			},
			wantRevenue: "6000",
			wantExclude: "2000",
			wantReview:  "4000",
			wantRatio:   "75",
			wantCounts:  model.CategoryCounts{Total: 3, Revenue: 1, Excluded: 1, NeedsReview: 1},
		},
		{
			name: "all excluded",
			txns: []model.ClassifiedTransaction{
				classified(t, "2024-01-04", "ONDECK", "25000", model.CategoryExcluded),
			},
			wantRevenue: "0",
			wantExclude: "25000",
			wantReview:  "0",
			wantRatio:   "0",
			wantCounts:  model.CategoryCounts{Total: 1, Excluded: 1},
		},
	}

	agg := newTestAggregator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := agg.Summarize(tt.txns)
			assert.True(t, got.TrueRevenue.Equal(testutil.Money(t, tt.wantRevenue)), "true revenue %s", got.TrueRevenue)
			assert.True(t, got.ExcludedAmount.Equal(testutil.Money(t, tt.wantExclude)), "excluded %s", got.ExcludedAmount)
			assert.True(t, got.NeedsReviewAmount.Equal(testutil.Money(t, tt.wantReview)), "needs review %s", got.NeedsReviewAmount)
			assert.True(t, got.RevenueRatio.Equal(testutil.Money(t, tt.wantRatio)), "ratio %s", got.RevenueRatio)
			assert.True(t, got.TotalCredits.Equal(got.TrueRevenue.Add(got.ExcludedAmount).Add(got.NeedsReviewAmount)))
			assert.Equal(t, tt.wantCounts, got.Counts)
		})
	}
}

func TestSummarizeClassifiedStatement(t *testing.T) {
	cfg := config.Default()
	rules, err := classification.NewRuleSet(cfg.Classification)
	require.NoError(t, err)
	classifier := classification.NewClassifier(rules)

	txns := testutil.NewLedger(t).
		Credit("SQUARE INC DEPOSIT", "5000").
		Credit("ONDECK CAPITAL FUNDING", "25000").
		Build()

	batch, err := classifier.ClassifyBatch(context.Background(), txns, "")
	require.NoError(t, err)
	require.Empty(t, batch.Errors)

	agg := newTestAggregator(t)
	summary := agg.Summarize(batch.Classified)
	assert.True(t, summary.TrueRevenue.Equal(decimal.NewFromInt(5000)))
	assert.True(t, summary.ExcludedAmount.Equal(decimal.NewFromInt(25000)))
	assert.Equal(t, "16.67", summary.RevenueRatio.StringFixed(2))

	again := agg.Summarize(batch.Classified)
	assert.Equal(t, summary, again)
}

func TestMonthlyBreakdown(t *testing.T) {
	txns := []model.ClassifiedTransaction{
		classified(t, "2024-02-20", "SALES", "12000", model.CategoryRevenue),
		classified(t, "2024-01-05", "SALES", "10000", model.CategoryRevenue),
		classified(t, "2024-01-18", "SALES", "5000", model.CategoryRevenue),
		classified(t, "2024-02-07", "LOAN PROCEEDS", "25000", model.CategoryExcluded),
		classified(t, "2024-02-09", "UNKNOWN DEPOSIT", "3000", model.CategoryNeedsReview),
	}

	agg := newTestAggregator(t)
	buckets, errs := agg.MonthlyBreakdown(txns)
	require.Empty(t, errs)
	require.Len(t, buckets, 2)

	jan, feb := buckets[0], buckets[1]
	assert.Equal(t, "2024-01", jan.MonthKey)
	assert.Equal(t, "January 2024", jan.MonthName)
	assert.True(t, jan.TrueRevenue.Equal(decimal.NewFromInt(15000)))
	assert.True(t, jan.Excluded.IsZero())
	assert.Equal(t, 31, jan.CalendarDays)
	assert.Equal(t, 2, jan.TransactionCount)
	assert.Equal(t, "100.00", jan.RevenueRatio.StringFixed(2))
	assert.Empty(t, jan.ExcludedItems)

	assert.Equal(t, "2024-02", feb.MonthKey)
	assert.Equal(t, "February 2024", feb.MonthName)
	assert.True(t, feb.TrueRevenue.Equal(decimal.NewFromInt(12000)))
	assert.True(t, feb.Excluded.Equal(decimal.NewFromInt(25000)))
	assert.True(t, feb.NeedsReview.Equal(decimal.NewFromInt(3000)))
	assert.True(t, feb.TotalCredits.Equal(decimal.NewFromInt(40000)))
	assert.Equal(t, "32.43", feb.RevenueRatio.StringFixed(2))
	assert.Equal(t, 29, feb.CalendarDays)
	require.Len(t, feb.ExcludedItems, 1)
	assert.Equal(t, "LOAN PROCEEDS", feb.ExcludedItems[0].Description)
	require.Len(t, feb.NeedsReviewItems, 1)
	assert.Equal(t, "UNKNOWN DEPOSIT", feb.NeedsReviewItems[0].Description)
}

func TestMonthlyBreakdownDailyRevenue(t *testing.T) {
	agg := newTestAggregator(t)
	buckets, errs := agg.MonthlyBreakdown([]model.ClassifiedTransaction{
		classified(t, "2024-03-01", "SALES", "21670", model.CategoryRevenue),
	})
	require.Empty(t, errs)
	require.Len(t, buckets, 1)
	assert.Equal(t, "1000.00", buckets[0].DailyTrueRevenue.StringFixed(2))
	assert.Equal(t, "21.67", buckets[0].BusinessDays.String())
}

func TestMonthlyBreakdownSkipsUndated(t *testing.T) {
	undated := classified(t, "2024-01-05", "SALES", "100", model.CategoryRevenue)
	undated.Transaction.Date = time.Time{}

	agg := newTestAggregator(t)
	buckets, errs := agg.MonthlyBreakdown([]model.ClassifiedTransaction{
		classified(t, "2024-01-05", "SALES", "500", model.CategoryRevenue),
		undated,
	})
	require.Len(t, errs, 1)
	assert.Equal(t, 1, errs[0].Index)
	assert.ErrorIs(t, errs[0], common.ErrMissingDate)
	require.Len(t, buckets, 1)
	assert.True(t, buckets[0].TrueRevenue.Equal(decimal.NewFromInt(500)))
}

func TestSummarizeByReason(t *testing.T) {
	txns := []model.ClassifiedTransaction{
		classified(t, "2024-01-03", "SQUARE", "100", model.CategoryRevenue),
		classified(t, "2024-01-04", "LOAN", "5000", model.CategoryExcluded),
		classified(t, "2024-01-05", "SQUARE", "250.50", model.CategoryRevenue),
		classified(t, "2024-01-06", "ODD", "50", model.CategoryNeedsReview),
	}

	got := SummarizeByReason(txns)
	require.Len(t, got, 3)
	assert.Equal(t, model.CategoryExcluded, got[0].Category)
	assert.Equal(t, 1, got[0].Count)
	assert.Equal(t, model.CategoryRevenue, got[1].Category)
	assert.Equal(t, 2, got[1].Count)
	assert.Equal(t, "350.50", got[1].Total.StringFixed(2))
	assert.Equal(t, model.CategoryNeedsReview, got[2].Category)

	assert.Empty(t, SummarizeByReason(nil))
}
