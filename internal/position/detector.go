// Package position infers existing cash-advance obligations from the debit
// side of a statement.
package position

import (
	"regexp"
	"sort"
	"time"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/config"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/shopspring/decimal"
)

type funder struct {
	re   *regexp.Regexp
	name string
}

// Detector matches debits against known funder patterns.
type Detector struct {
	businessDays decimal.Decimal
	funders      []funder
}

// NewDetector compiles the configured funder list.
func NewDetector(cfg *config.Config) (*Detector, error) {
	if cfg == nil {
		return nil, common.NewConfigError("config", "%w", common.ErrMissingConfig)
	}
	if cfg.BusinessDaysPerMonth <= 0 {
		return nil, common.NewConfigError("business_days_per_month",
			"must be positive, got %v", cfg.BusinessDaysPerMonth)
	}
	if len(cfg.Funders) == 0 {
		return nil, common.NewConfigError("funders", "at least one funder pattern is required")
	}

	d := &Detector{
		businessDays: decimal.NewFromFloat(cfg.BusinessDaysPerMonth),
		funders:      make([]funder, 0, len(cfg.Funders)),
	}
	for i, f := range cfg.Funders {
		re, err := common.CompileInsensitive(f.Pattern)
		if err != nil {
			return nil, common.NewConfigError("funders", "funder %d (%s): %w", i, f.Name, err)
		}
		if re == nil {
			return nil, common.NewConfigError("funders", "funder %d (%s) has an empty pattern", i, f.Name)
		}
		d.funders = append(d.funders, funder{name: f.Name, re: re})
	}

	common.LogDebug("Compiled funder patterns", common.Fields{"count": len(d.funders)})
	return d, nil
}

// Funder returns the name of the first funder whose pattern matches
// description.
func (d *Detector) Funder(description string) (string, bool) {
	for _, f := range d.funders {
		if f.re.MatchString(description) {
			return f.name, true
		}
	}
	return "", false
}

type funderTally struct {
	first, last time.Time
	days        map[string]struct{}
	total       decimal.Decimal
	count       int
}

// Detect scans the debits in txns for funder payments. Credits are ignored.
// Undated debits that match a funder are reported and skipped.
func (d *Detector) Detect(txns []model.Transaction) (model.PositionInfo, []*common.DataError) {
	tallies := make(map[string]*funderTally)
	allDays := make(map[string]struct{})
	matched := decimal.Zero
	var errs []*common.DataError

	for i, txn := range txns {
		if !txn.IsDebit() {
			continue
		}
		name, ok := d.Funder(txn.Description)
		if !ok {
			continue
		}
		if txn.Date.IsZero() {
			errs = append(errs, common.NewDataError(i, txn.Description, common.ErrMissingDate))
			continue
		}

		amount := txn.Amount.Abs()
		day := txn.Date.Format("2006-01-02")

		tally, ok := tallies[name]
		if !ok {
			tally = &funderTally{first: txn.Date, last: txn.Date, days: make(map[string]struct{})}
			tallies[name] = tally
		}
		tally.count++
		tally.total = tally.total.Add(amount)
		tally.days[day] = struct{}{}
		if txn.Date.Before(tally.first) {
			tally.first = txn.Date
		}
		if txn.Date.After(tally.last) {
			tally.last = txn.Date
		}

		allDays[day] = struct{}{}
		matched = matched.Add(amount)
	}

	info := model.PositionInfo{
		ActivePositions:     len(tallies),
		TotalDailyPayment:   decimal.Zero,
		TotalMonthlyPayment: decimal.Zero,
	}
	if len(allDays) > 0 {
		daily := matched.Div(decimal.NewFromInt(int64(len(allDays))))
		info.TotalDailyPayment = daily.Round(2)
		info.TotalMonthlyPayment = daily.Mul(d.businessDays).Round(2)
	}

	for name, tally := range tallies {
		daily := tally.total.Div(decimal.NewFromInt(int64(len(tally.days))))
		info.Funders = append(info.Funders, model.FunderPosition{
			Funder:                  name,
			PaymentCount:            tally.count,
			PaymentDays:             len(tally.days),
			TotalAmount:             tally.total.Round(2),
			AveragePayment:          tally.total.Div(decimal.NewFromInt(int64(tally.count))).Round(2),
			EstimatedDailyPayment:   daily.Round(2),
			EstimatedMonthlyPayment: daily.Mul(d.businessDays).Round(2),
			FirstSeen:               tally.first,
			LastSeen:                tally.last,
		})
	}
	sort.Slice(info.Funders, func(i, j int) bool {
		a, b := info.Funders[i], info.Funders[j]
		if !a.EstimatedDailyPayment.Equal(b.EstimatedDailyPayment) {
			return a.EstimatedDailyPayment.GreaterThan(b.EstimatedDailyPayment)
		}
		return a.Funder < b.Funder
	})

	common.LogDebug("Detected funder positions", common.Fields{
		"positions":     info.ActivePositions,
		"daily_payment": info.TotalDailyPayment.String(),
	})
	return info, errs
}
