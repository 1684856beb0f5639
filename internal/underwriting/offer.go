package underwriting

import (
	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/config"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/shopspring/decimal"
)

var daysPerWeek = decimal.NewFromInt(5)

// Calculator turns an underwriting request into a funding decision. It is
// immutable after construction and safe for concurrent use.
type Calculator struct {
	p        *params
	capacity *CapacityCalculator
	pricer   *RiskPricer
}

// NewCalculator creates a calculator from cfg. Invalid configuration is
// reported as a *common.ConfigError.
func NewCalculator(cfg *config.Config) (*Calculator, error) {
	p, err := newParams(cfg)
	if err != nil {
		return nil, err
	}

	common.LogDebug("Underwriting calculator ready", common.Fields{
		"tiers":         len(p.tiers),
		"max_withhold":  p.maxWithhold.String(),
		"max_positions": p.maxPositions,
	})
	return &Calculator{
		p:        p,
		capacity: &CapacityCalculator{p: p},
		pricer:   &RiskPricer{p: p},
	}, nil
}

// Capacity returns the calculator's capacity component.
func (c *Calculator) Capacity() *CapacityCalculator {
	return c.capacity
}

// Pricer returns the calculator's pricing component.
func (c *Calculator) Pricer() *RiskPricer {
	return c.pricer
}

// CheckCapacity reports withhold headroom without pricing an offer.
func (c *Calculator) CheckCapacity(monthly, existingDaily decimal.Decimal, industry string) model.CapacitySnapshot {
	return c.capacity.Calculate(monthly, existingDaily, industry)
}

// CalculateOffer prices req. Declines are returned as results, never as
// errors.
func (c *Calculator) CalculateOffer(req model.UnderwritingRequest) model.DecisionResult {
	result := c.calculate(req)
	if !result.CanFund {
		common.LogDebug("Offer declined", common.Fields{
			"reason":   string(result.DeclineReason),
			"position": req.Position,
			"industry": req.Industry,
		})
	}
	return result
}

func (c *Calculator) calculate(req model.UnderwritingRequest) model.DecisionResult {
	p := c.p

	if !req.MonthlyTrueRevenue.IsPositive() {
		return model.Declined(model.DeclineInvalidRevenue, invalidRevenueExplanation())
	}

	position := max(req.Position, 1)
	if position > p.maxPositions {
		return model.Declined(model.DeclineTooManyPositions, tooManyPositionsExplanation(position, p.maxPositions))
	}

	capc := p.capacity(req.MonthlyTrueRevenue, req.ExistingDailyPayment, req.Industry)
	snapshot := capc.snapshot()
	if capc.atCapacity {
		result := model.Declined(model.DeclineAtCapacity, atCapacityExplanation(capc))
		result.Capacity = &snapshot
		return result
	}

	riskScore := p.defaultRiskScore
	if req.RiskScore != nil {
		riskScore = *req.RiskScore
	}
	if riskScore < p.minRiskScore {
		result := model.Declined(model.DeclineLowRisk, lowRiskExplanation(riskScore, p.minRiskScore))
		result.Capacity = &snapshot
		return result
	}

	pricing, warnings := p.price(PricingInput{
		RequestedFactor: req.FactorRate,
		Industry:        req.Industry,
		Volatility:      req.VolatilityLevel,
		RiskScore:       riskScore,
		CreditScore:     req.CreditScore,
		Position:        position,
	})
	decline := func(reason model.DeclineReason, explanation string) model.DecisionResult {
		result := model.Declined(reason, explanation)
		result.Capacity = &snapshot
		result.Pricing = &pricing
		result.Warnings = warnings
		return result
	}

	factor := pricing.FactorRate
	term := p.term(req.TermMonths, pricing)
	termDays := p.businessDays.Mul(decimal.NewFromInt(int64(term)))

	maxPayback := capc.remaining.Mul(termDays)
	maxByCapacity := decimal.Min(maxPayback.Div(factor), p.maxFunding)
	maxByApproval := req.RequestedAmount.Mul(pricing.ApprovalPercentage)
	approved := decimal.Min(maxByCapacity, maxByApproval)
	if approved.LessThan(p.minFunding) {
		return decline(model.DeclineBelowMinimum, belowMinimumExplanation(approved, p.minFunding))
	}

	funding, payback, daily := roundTerms(approved, factor, termDays)

	// Cent rounding may push the new payment over the cap; pull funding
	// down to the largest amount whose rounded daily payment fits.
	dailyCap := capc.maxDaily.Sub(capc.existing).RoundFloor(2)
	if daily.GreaterThan(dailyCap) {
		funding, payback, daily = roundTerms(dailyCap.Mul(termDays).Div(factor).RoundFloor(2), factor, termDays)
		if funding.LessThan(p.minFunding) {
			return decline(model.DeclineAtCapacity, capBelowMinimumExplanation(capc, funding))
		}
		warnings = append(warnings, capWarning(capc))
	}

	offer := &model.Offer{
		FundingAmount:      funding,
		FactorRate:         factor,
		PaybackAmount:      payback,
		DailyPayment:       daily,
		WeeklyPayment:      daily.Mul(daysPerWeek).Round(2),
		MonthlyPayment:     daily.Mul(p.businessDays).Round(2),
		HoldbackPercentage: p.holdback(riskScore, position),
		CostOfCapital:      payback.Sub(funding),
		CostPercentage:     payback.Div(funding).Sub(one).Mul(hundred).Round(2),
		TermMonths:         term,
		TermBusinessDays:   int(termDays.Round(0).IntPart()),
		Position:           position,
		WithholdBreakdown:  withholdBreakdown(capc, daily),
	}
	if v := c.ValidateOfferTerms(offer.Terms()); !v.Valid {
		return decline(model.DeclineInvalidTerms, invalidTermsExplanation(v.Errors))
	}

	offer.MathBreakdown = mathBreakdown(mathInputs{
		capc:          capc,
		businessDays:  p.businessDays,
		termDays:      termDays,
		factor:        factor,
		requested:     req.RequestedAmount,
		approval:      pricing.ApprovalPercentage,
		maxPayback:    maxPayback,
		maxByCapacity: maxByCapacity,
		maxByApproval: maxByApproval,
		approved:      approved,
		offer:         offer,
	})

	status := model.StatusApproved
	if funding.LessThan(req.RequestedAmount.Mul(p.approvedThreshold)) {
		status = model.StatusApprovedReduced
	}

	result := model.Funded(status, offer, offerExplanation(status, offer, capc, req.RequestedAmount))
	result.Capacity = &snapshot
	result.Pricing = &pricing
	result.Warnings = warnings
	return result
}

// roundTerms rounds funding to cents and derives payback and daily payment so
// that payback is exactly funding times factor, rounded to cents.
func roundTerms(approved, factor, termDays decimal.Decimal) (funding, payback, daily decimal.Decimal) {
	funding = approved.Round(2)
	payback = funding.Mul(factor).Round(2)
	daily = payback.Div(termDays).Round(2)
	return funding, payback, daily
}

func withholdBreakdown(c capacity, daily decimal.Decimal) model.WithholdBreakdown {
	total := c.existing.Add(daily)
	totalPct := percentOf(total, c.daily)
	return model.WithholdBreakdown{
		ExistingDailyPayment:    c.existing.Round(2),
		ExistingWithholdPercent: c.currentPercent().Round(2),
		NewDailyPayment:         daily,
		NewWithholdPercent:      percentOf(daily, c.daily).Round(2),
		TotalDailyPayment:       total.Round(2),
		TotalWithholdPercent:    totalPct.Round(2),
		RemainingCapacityAfter:  decimal.Max(decimal.Zero, c.maxDaily.Sub(total)).Round(2),
		RemainingPercentAfter:   decimal.Max(decimal.Zero, c.maxWithhold.Mul(hundred).Sub(totalPct)).Round(2),
	}
}

type mathInputs struct {
	offer         *model.Offer
	capc          capacity
	businessDays  decimal.Decimal
	termDays      decimal.Decimal
	factor        decimal.Decimal
	requested     decimal.Decimal
	approval      decimal.Decimal
	maxPayback    decimal.Decimal
	maxByCapacity decimal.Decimal
	maxByApproval decimal.Decimal
	approved      decimal.Decimal
}

func nv(name string, value decimal.Decimal) model.NamedValue {
	return model.NamedValue{Name: name, Value: value}
}

func mathBreakdown(in mathInputs) []model.MathStep {
	days := in.termDays.Round(0)
	return []model.MathStep{
		{
			Step:    "step_1_revenue",
			Formula: "Monthly Revenue ÷ Business Days",
			Values: []model.NamedValue{
				nv("monthly_true_revenue", in.capc.monthly.Round(2)),
				nv("business_days_per_month", in.businessDays),
				nv("daily_true_revenue", in.capc.daily.Round(2)),
			},
		},
		{
			Step:    "step_2_capacity",
			Formula: "Daily Revenue × Max Withhold % - Existing Payments",
			Values: []model.NamedValue{
				nv("max_withhold_percent", in.capc.maxWithhold.Mul(hundred).Round(2)),
				nv("max_daily_payment", in.capc.maxDaily.Round(2)),
				nv("existing_daily_payment", in.capc.existing.Round(2)),
				nv("remaining_daily_capacity", in.capc.remaining.Round(2)),
			},
		},
		{
			Step:    "step_3_max_funding",
			Formula: "Remaining Capacity × Term Days ÷ Factor Rate",
			Values: []model.NamedValue{
				nv("remaining_daily_capacity", in.capc.remaining.Round(2)),
				nv("term_business_days", days),
				nv("factor_rate", in.factor),
				nv("max_payback", in.maxPayback.Round(2)),
				nv("max_funding", in.maxByCapacity.Round(2)),
			},
		},
		{
			Step:    "step_4_approved",
			Formula: "MIN(Capacity Max, Request × Approval %)",
			Values: []model.NamedValue{
				nv("requested_amount", in.requested.Round(2)),
				nv("max_by_capacity", in.maxByCapacity.Round(2)),
				nv("approval_percentage", in.approval.Mul(hundred).Round(2)),
				nv("max_by_approval", in.maxByApproval.Round(2)),
				nv("approved_amount", in.approved.Round(2)),
			},
		},
		{
			Step:    "step_5_final",
			Formula: "Funded × Factor Rate ÷ Term Days",
			Values: []model.NamedValue{
				nv("approved_amount", in.offer.FundingAmount),
				nv("factor_rate", in.factor),
				nv("payback_amount", in.offer.PaybackAmount),
				nv("term_business_days", days),
				nv("daily_payment", in.offer.DailyPayment),
			},
		},
	}
}
