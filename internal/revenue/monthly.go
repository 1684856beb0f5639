package revenue

import (
	"sort"
	"time"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/model"
)

// MonthlyBreakdown buckets classified credits by calendar month, oldest
// first. Credits without a date are reported and skipped.
func (a *Aggregator) MonthlyBreakdown(classified []model.ClassifiedTransaction) ([]model.MonthlyBucket, []*common.DataError) {
	type month struct {
		first  time.Time
		bucket model.MonthlyBucket
		totals totals
	}

	months := make(map[string]*month)
	var errs []*common.DataError
	for i, ct := range classified {
		txn := ct.Transaction
		if txn.Date.IsZero() {
			errs = append(errs, common.NewDataError(i, txn.Description, common.ErrMissingDate))
			continue
		}

		key := txn.MonthKey()
		m, ok := months[key]
		if !ok {
			m = &month{first: time.Date(txn.Date.Year(), txn.Date.Month(), 1, 0, 0, 0, 0, time.UTC)}
			months[key] = m
		}
		m.totals.add(ct)

		switch ct.Result.Category {
		case model.CategoryExcluded:
			m.bucket.ExcludedItems = append(m.bucket.ExcludedItems, lineItem(ct))
		case model.CategoryNeedsReview:
			m.bucket.NeedsReviewItems = append(m.bucket.NeedsReviewItems, lineItem(ct))
		}
	}

	buckets := make([]model.MonthlyBucket, 0, len(months))
	for key, m := range months {
		b := m.bucket
		b.MonthKey = key
		b.MonthName = m.first.Format("January 2006")
		b.TrueRevenue = m.totals.revenue.Round(2)
		b.Excluded = m.totals.excluded.Round(2)
		b.NeedsReview = m.totals.needsReview.Round(2)
		b.TotalCredits = m.totals.total().Round(2)
		b.DailyTrueRevenue = a.DailyTrueRevenue(m.totals.revenue).Round(2)
		b.RevenueRatio = m.totals.ratio()
		b.BusinessDays = a.businessDays
		b.CalendarDays = m.first.AddDate(0, 1, -1).Day()
		b.TransactionCount = m.totals.counts.Total
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].MonthKey < buckets[j].MonthKey
	})

	if len(errs) > 0 {
		common.LogDebug("Skipped undated credits", common.Fields{"count": len(errs)})
	}
	return buckets, errs
}

func lineItem(ct model.ClassifiedTransaction) model.LineItem {
	return model.LineItem{
		Date:        ct.Transaction.Date,
		Description: ct.Transaction.Description,
		Reason:      ct.Result.Reason,
		Amount:      ct.Transaction.Amount,
	}
}
