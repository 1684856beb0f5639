package underwriting

import (
	"fmt"
	"strings"

	"github.com/Veraticus/true-revenue/internal/config"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/shopspring/decimal"
)

// Adjustment types recorded in the pricing audit trail.
const (
	AdjustPosition   = "position"
	AdjustCredit     = "credit_score"
	AdjustIndustry   = "industry"
	AdjustVolatility = "volatility"
)

var (
	minApproval = decimal.NewFromFloat(0.1)
	maxApproval = decimal.NewFromInt(1)
)

// PricingInput is the part of a request that drives pricing.
type PricingInput struct {
	RequestedFactor *decimal.Decimal
	Industry        string
	Volatility      model.VolatilityLevel
	RiskScore       int
	CreditScore     int
	Position        int
}

// RiskPricer derives factor rate, term and approval percentage from the
// applicant's risk attributes.
type RiskPricer struct {
	p *params
}

// NewRiskPricer creates a pricer from cfg.
func NewRiskPricer(cfg *config.Config) (*RiskPricer, error) {
	p, err := newParams(cfg)
	if err != nil {
		return nil, err
	}
	return &RiskPricer{p: p}, nil
}

// Price returns the pricing for in and any warnings raised while honoring
// the requested factor. A position beyond the stacking limit sets Declined.
func (r *RiskPricer) Price(in PricingInput) (model.Pricing, []string) {
	return r.p.price(in)
}

// Term returns the final term for a requested term, zero selecting the
// configured default, capped by the adjusted maximum in pricing.
func (r *RiskPricer) Term(requested int, pricing model.Pricing) int {
	return r.p.term(requested, pricing)
}

func (p *params) price(in PricingInput) (model.Pricing, []string) {
	if in.Position < 1 {
		in.Position = 1
	}
	if in.Volatility == "" {
		in.Volatility = model.VolatilityMedium
	}

	t := p.tierFor(in.RiskScore)
	band := p.bandFor(in.CreditScore)
	pricing := model.Pricing{
		TierID:            t.id,
		TierName:          t.name,
		CreditBand:        band.id,
		BaseFactorRate:    t.base,
		TierMaxTermMonths: t.maxTerm,
	}
	if ind, ok := p.industries[in.Industry]; ok && ind.override != nil {
		override := decimal.Min(p.maxWithhold, *ind.override)
		pricing.MaxWithholdOverride = &override
	}
	if in.Position > p.maxPositions {
		pricing.Declined = model.DeclineTooManyPositions
		return pricing, nil
	}

	var warnings []string
	pricing.FactorAdjustments = p.factorAdjustments(in, band)
	pricing.MaxFactorRate = decimal.Min(t.max, p.validation.maxFactor)
	factor := t.base.Add(sumAdjustments(pricing.FactorAdjustments))
	factor = clamp(factor, p.validation.minFactor, pricing.MaxFactorRate).Round(4)
	if in.RequestedFactor != nil {
		requested := *in.RequestedFactor
		if requested.GreaterThanOrEqual(p.validation.minFactor) && requested.LessThanOrEqual(pricing.MaxFactorRate) {
			factor = requested
		} else {
			warnings = append(warnings, fmt.Sprintf(
				"Requested factor rate %s adjusted to %s (valid range: %s - %s)",
				requested.StringFixed(2), factor.StringFixed(2),
				p.validation.minFactor.StringFixed(2), pricing.MaxFactorRate.StringFixed(2)))
		}
	}
	pricing.FactorRate = factor

	pricing.TermAdjustments = p.termAdjustments(in, band)
	termDelta := 0
	for _, adj := range pricing.TermAdjustments {
		termDelta += int(adj.Value.IntPart())
	}
	pricing.MaxTermMonths = clampInt(t.maxTerm+termDelta, p.validation.minTerm, p.validation.maxTerm)

	pricing.ApprovalAdjustments = p.approvalAdjustments(in, band)
	posMod := p.position(in.Position).approval
	boost := decimal.Zero
	for _, adj := range pricing.ApprovalAdjustments {
		if adj.Type != AdjustPosition {
			boost = boost.Add(adj.Value)
		}
	}
	pricing.ApprovalPercentage = clamp(t.approval.Mul(posMod).Add(boost), minApproval, maxApproval).Round(4)

	return pricing, warnings
}

// term returns the final term for a requested term under pricing.
func (p *params) term(requested int, pricing model.Pricing) int {
	if requested <= 0 {
		requested = p.defaultTerm
	}
	return clampInt(requested, p.validation.minTerm, pricing.MaxTermMonths)
}

func (p *params) factorAdjustments(in PricingInput, band creditBand) []model.Adjustment {
	var adjs []model.Adjustment
	if f := p.position(in.Position).factor; !f.IsZero() {
		adjs = append(adjs, model.Adjustment{
			Type:        AdjustPosition,
			Description: fmt.Sprintf("Position %d adjustment", in.Position),
			Value:       f,
		})
	}
	if !band.factor.IsZero() {
		adjs = append(adjs, model.Adjustment{
			Type:        AdjustCredit,
			Description: fmt.Sprintf("%s credit (%d)", band.id, in.CreditScore),
			Value:       band.factor,
		})
	}
	if ind, ok := p.industries[in.Industry]; ok && !ind.factor.IsZero() {
		adjs = append(adjs, model.Adjustment{
			Type:        AdjustIndustry,
			Description: humanize(in.Industry),
			Value:       ind.factor,
		})
	}
	if v, ok := p.volatility[string(in.Volatility)]; ok && !v.factor.IsZero() {
		adjs = append(adjs, model.Adjustment{
			Type:        AdjustVolatility,
			Description: humanize(string(in.Volatility)) + " volatility",
			Value:       v.factor,
		})
	}
	return adjs
}

func (p *params) termAdjustments(in PricingInput, band creditBand) []model.Adjustment {
	var adjs []model.Adjustment
	if band.term != 0 {
		adjs = append(adjs, model.Adjustment{
			Type:        AdjustCredit,
			Description: band.id + " credit",
			Value:       decimal.NewFromInt(int64(band.term)),
		})
	}
	if ind, ok := p.industries[in.Industry]; ok && ind.term != 0 {
		adjs = append(adjs, model.Adjustment{
			Type:        AdjustIndustry,
			Description: humanize(in.Industry),
			Value:       decimal.NewFromInt(int64(ind.term)),
		})
	}
	if v, ok := p.volatility[string(in.Volatility)]; ok && v.term != 0 {
		adjs = append(adjs, model.Adjustment{
			Type:        AdjustVolatility,
			Description: humanize(string(in.Volatility)) + " volatility",
			Value:       decimal.NewFromInt(int64(v.term)),
		})
	}
	return adjs
}

// approvalAdjustments records the position modifier as its delta from 1.
func (p *params) approvalAdjustments(in PricingInput, band creditBand) []model.Adjustment {
	var adjs []model.Adjustment
	if mod := p.position(in.Position).approval; !mod.Equal(one) {
		adjs = append(adjs, model.Adjustment{
			Type:        AdjustPosition,
			Description: fmt.Sprintf("Position %d", in.Position),
			Value:       mod.Sub(one),
		})
	}
	if !band.approval.IsZero() {
		adjs = append(adjs, model.Adjustment{
			Type:        AdjustCredit,
			Description: band.id + " credit",
			Value:       band.approval,
		})
	}
	if v, ok := p.volatility[string(in.Volatility)]; ok && !v.approval.IsZero() {
		adjs = append(adjs, model.Adjustment{
			Type:        AdjustVolatility,
			Description: humanize(string(in.Volatility)) + " volatility",
			Value:       v.approval,
		})
	}
	return adjs
}

func sumAdjustments(adjs []model.Adjustment) decimal.Decimal {
	total := decimal.Zero
	for _, adj := range adjs {
		total = total.Add(adj.Value)
	}
	return total
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	return decimal.Max(lo, decimal.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// humanize turns "auto_repair" into "Auto repair".
func humanize(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
