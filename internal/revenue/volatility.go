package revenue

import (
	"math"

	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// minVolatilityMonths is the fewest buckets that yield meaningful metrics.
const minVolatilityMonths = 2

// Volatility measures month-over-month stability of True Revenue. Buckets
// must be in chronological order, as MonthlyBreakdown returns them.
func (a *Aggregator) Volatility(buckets []model.MonthlyBucket) model.VolatilityMetrics {
	metrics := model.VolatilityMetrics{MonthsAnalyzed: len(buckets)}
	if len(buckets) < minVolatilityMonths {
		return metrics
	}

	values := make([]float64, len(buckets))
	index := make([]float64, len(buckets))
	sum := decimal.Zero
	lo, hi := buckets[0].TrueRevenue, buckets[0].TrueRevenue
	for i, b := range buckets {
		values[i] = b.TrueRevenue.InexactFloat64()
		index[i] = float64(i)
		sum = sum.Add(b.TrueRevenue)
		lo = decimal.Min(lo, b.TrueRevenue)
		hi = decimal.Max(hi, b.TrueRevenue)
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(buckets))))

	_, variance := stat.PopMeanVariance(values, nil)
	variance = math.Max(variance, 0)
	stdDev := decimal.NewFromFloat(math.Sqrt(variance))
	_, slope := stat.LinearRegression(index, values, nil, false)

	var cv, trendPct decimal.Decimal
	if mean.IsPositive() {
		cv = stdDev.Div(mean).Mul(hundred)
		trendPct = decimal.NewFromFloat(slope).Div(mean).Mul(hundred)
	}

	metrics.HasData = true
	metrics.Mean = mean.Round(2)
	metrics.Min = lo
	metrics.Max = hi
	metrics.StdDev = stdDev.Round(2)
	metrics.Variance = decimal.NewFromFloat(variance).Round(2)
	metrics.CoefficientOfVariation = cv.Round(2)
	metrics.MonthlyChange = decimal.NewFromFloat(slope).Round(2)
	metrics.TrendPercentage = trendPct.Round(2)
	metrics.Level = a.level(cv)
	metrics.Trend = trend(buckets[0].TrueRevenue, buckets[len(buckets)-1].TrueRevenue)
	return metrics
}

func (a *Aggregator) level(cv decimal.Decimal) model.VolatilityLevel {
	switch {
	case cv.LessThan(a.lowBelow):
		return model.VolatilityLow
	case cv.LessThanOrEqual(a.highAbove):
		return model.VolatilityMedium
	default:
		return model.VolatilityHigh
	}
}

func trend(first, last decimal.Decimal) model.TrendDirection {
	switch last.Cmp(first) {
	case 1:
		return model.TrendIncreasing
	case -1:
		return model.TrendDecreasing
	default:
		return model.TrendFlat
	}
}
