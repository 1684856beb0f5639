package underwriting

import (
	"github.com/Veraticus/true-revenue/internal/config"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/shopspring/decimal"
)

// capacity holds full-precision intermediates; Snapshot rounds for output.
type capacity struct {
	monthly     decimal.Decimal
	daily       decimal.Decimal
	maxWithhold decimal.Decimal // Fraction.
	maxDaily    decimal.Decimal
	existing    decimal.Decimal
	remaining   decimal.Decimal
	atCapacity  bool
}

// currentPercent is the existing withhold as a percentage of daily revenue.
func (c capacity) currentPercent() decimal.Decimal {
	return percentOf(c.existing, c.daily)
}

func (c capacity) snapshot() model.CapacitySnapshot {
	maxPct := c.maxWithhold.Mul(hundred)
	return model.CapacitySnapshot{
		MonthlyTrueRevenue:       c.monthly.Round(2),
		DailyTrueRevenue:         c.daily.Round(2),
		MaxWithholdPercent:       maxPct.Round(2),
		MaxDailyPayment:          c.maxDaily.Round(2),
		ExistingDailyPayment:     c.existing.Round(2),
		CurrentWithholdPercent:   c.currentPercent().Round(2),
		RemainingDailyCapacity:   c.remaining.Round(2),
		RemainingWithholdPercent: decimal.Max(decimal.Zero, maxPct.Sub(c.currentPercent())).Round(2),
		AtCapacity:               c.atCapacity,
		CanTakePosition:          !c.atCapacity,
	}
}

// CapacityCalculator computes withhold headroom under the hard cap.
type CapacityCalculator struct {
	p *params
}

// NewCapacityCalculator creates a calculator from cfg.
func NewCapacityCalculator(cfg *config.Config) (*CapacityCalculator, error) {
	p, err := newParams(cfg)
	if err != nil {
		return nil, err
	}
	return &CapacityCalculator{p: p}, nil
}

// Calculate returns the capacity snapshot for a merchant with the given
// monthly True Revenue and existing daily advance payments.
func (c *CapacityCalculator) Calculate(monthly, existingDaily decimal.Decimal, industry string) model.CapacitySnapshot {
	return c.p.capacity(monthly, existingDaily, industry).snapshot()
}

// MaxWithhold returns the effective withhold cap for industry as a fraction.
func (c *CapacityCalculator) MaxWithhold(industry string) decimal.Decimal {
	return c.p.maxWithholdFor(industry)
}

func (p *params) capacity(monthly, existing decimal.Decimal, industry string) capacity {
	monthly = decimal.Max(monthly, decimal.Zero)
	existing = decimal.Max(existing, decimal.Zero)

	daily := monthly.Div(p.businessDays)
	maxWithhold := p.maxWithholdFor(industry)
	maxDaily := daily.Mul(maxWithhold)
	remaining := decimal.Max(decimal.Zero, maxDaily.Sub(existing))

	return capacity{
		monthly:     monthly,
		daily:       daily,
		maxWithhold: maxWithhold,
		maxDaily:    maxDaily,
		existing:    existing,
		remaining:   remaining,
		atCapacity:  remaining.LessThanOrEqual(p.epsilon),
	}
}

// percentOf returns part/whole*100, or zero when whole is not positive.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
