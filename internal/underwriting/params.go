// Package underwriting computes withhold capacity, risk-based pricing and
// cash-advance offers from a monthly True Revenue figure.
package underwriting

import (
	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/config"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

type tier struct {
	id, name string
	base     decimal.Decimal
	max      decimal.Decimal
	approval decimal.Decimal
	minScore int
	maxTerm  int
}

type creditBand struct {
	id       string
	factor   decimal.Decimal
	approval decimal.Decimal
	minScore int
	term     int
}

type industryAdj struct {
	override  *decimal.Decimal
	name      string
	riskLevel string
	factor    decimal.Decimal
	term      int
}

type positionAdj struct {
	factor   decimal.Decimal
	approval decimal.Decimal
}

type volatilityAdj struct {
	factor   decimal.Decimal
	approval decimal.Decimal
	term     int
}

type holdbackRisk struct {
	level    string
	adj      decimal.Decimal
	minScore int
}

type bounds struct {
	minFactor, maxFactor     decimal.Decimal
	minDaily, maxDaily       decimal.Decimal
	minHoldback, maxHoldback decimal.Decimal
	minTerm, maxTerm         int
}

// params is the decimal form of config.UnderwritingConfig, shared read-only
// by the calculators built from one configuration.
type params struct {
	industries        map[string]industryAdj
	volatility        map[string]volatilityAdj
	positions         map[int]positionAdj
	tiers             []tier
	bands             []creditBand
	holdbackRisk      []holdbackRisk
	validation        bounds
	businessDays      decimal.Decimal
	maxWithhold       decimal.Decimal
	minWithhold       decimal.Decimal
	minFunding        decimal.Decimal
	maxFunding        decimal.Decimal
	approvedThreshold decimal.Decimal
	epsilon           decimal.Decimal
	premium           decimal.Decimal
	holdbackBase      decimal.Decimal
	holdbackPer       decimal.Decimal
	holdbackMin       decimal.Decimal
	holdbackMax       decimal.Decimal
	maxPositions      int
	defaultTerm       int
	defaultRiskScore  int
	minRiskScore      int
}

func newParams(cfg *config.Config) (*params, error) {
	if cfg == nil {
		return nil, common.NewConfigError("config", "%w", common.ErrMissingConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	u := cfg.Underwriting
	p := &params{
		industries:        make(map[string]industryAdj, len(u.Industries)),
		volatility:        make(map[string]volatilityAdj, len(u.VolatilityAdjustments)),
		positions:         make(map[int]positionAdj, len(u.Stacking.Positions)),
		businessDays:      decimal.NewFromFloat(cfg.BusinessDaysPerMonth),
		maxWithhold:       decimal.NewFromFloat(u.MaxWithholdPercentage),
		minWithhold:       decimal.NewFromFloat(u.MinWithholdPercentage),
		minFunding:        decimal.NewFromFloat(u.MinFundingAmount),
		maxFunding:        decimal.NewFromFloat(u.MaxFundingAmount),
		approvedThreshold: decimal.NewFromFloat(u.ApprovedThreshold),
		epsilon:           decimal.NewFromFloat(u.CapacityEpsilon),
		premium:           decimal.NewFromFloat(u.Stacking.PremiumPerPosition),
		holdbackBase:      decimal.NewFromFloat(u.Holdback.Base),
		holdbackPer:       decimal.NewFromFloat(u.Holdback.PerPosition),
		holdbackMin:       decimal.NewFromFloat(u.Holdback.Min),
		holdbackMax:       decimal.NewFromFloat(u.Holdback.Max),
		maxPositions:      u.Stacking.MaxPositions,
		defaultTerm:       u.DefaultTermMonths,
		defaultRiskScore:  u.DefaultRiskScore,
		minRiskScore:      u.MinRiskScore,
		validation: bounds{
			minFactor:   decimal.NewFromFloat(u.Validation.MinFactorRate),
			maxFactor:   decimal.NewFromFloat(u.Validation.MaxFactorRate),
			minDaily:    decimal.NewFromFloat(u.Validation.MinDailyPayment),
			maxDaily:    decimal.NewFromFloat(u.Validation.MaxDailyPayment),
			minHoldback: decimal.NewFromFloat(u.Validation.MinHoldback),
			maxHoldback: decimal.NewFromFloat(u.Validation.MaxHoldback),
			minTerm:     u.Validation.MinTermMonths,
			maxTerm:     u.Validation.MaxTermMonths,
		},
	}

	for _, t := range u.RiskTiers {
		p.tiers = append(p.tiers, tier{
			id:       t.ID,
			name:     t.Name,
			minScore: t.MinRiskScore,
			base:     decimal.NewFromFloat(t.BaseFactorRate),
			max:      decimal.NewFromFloat(t.MaxFactorRate),
			maxTerm:  t.MaxTermMonths,
			approval: decimal.NewFromFloat(t.ApprovalPercentage),
		})
	}
	for _, b := range u.CreditBands {
		p.bands = append(p.bands, creditBand{
			id:       b.ID,
			minScore: b.MinScore,
			factor:   decimal.NewFromFloat(b.FactorAdjustment),
			term:     b.TermAdjustment,
			approval: decimal.NewFromFloat(b.ApprovalAdjustment),
		})
	}
	for _, ind := range u.Industries {
		adj := industryAdj{
			name:      ind.Industry,
			riskLevel: ind.RiskLevel,
			factor:    decimal.NewFromFloat(ind.FactorAdjustment),
			term:      ind.TermAdjustment,
		}
		if ind.MaxWithholdOverride != nil {
			override := decimal.NewFromFloat(*ind.MaxWithholdOverride)
			adj.override = &override
		}
		p.industries[ind.Industry] = adj
	}
	for _, v := range u.VolatilityAdjustments {
		p.volatility[v.Level] = volatilityAdj{
			factor:   decimal.NewFromFloat(v.FactorAdjustment),
			term:     v.TermAdjustment,
			approval: decimal.NewFromFloat(v.ApprovalAdjustment),
		}
	}
	for _, pos := range u.Stacking.Positions {
		p.positions[pos.Position] = positionAdj{
			factor:   decimal.NewFromFloat(pos.FactorAdjustment),
			approval: decimal.NewFromFloat(pos.ApprovalModifier),
		}
	}
	for _, h := range u.Holdback.RiskAdjustments {
		p.holdbackRisk = append(p.holdbackRisk, holdbackRisk{
			level:    h.Level,
			minScore: h.MinRiskScore,
			adj:      decimal.NewFromFloat(h.Adjustment),
		})
	}

	return p, nil
}

// tierFor returns the first tier whose minimum the score meets, or the last
// tier. Tiers are ordered by descending minimum.
func (p *params) tierFor(riskScore int) tier {
	for _, t := range p.tiers {
		if riskScore >= t.minScore {
			return t
		}
	}
	return p.tiers[len(p.tiers)-1]
}

func (p *params) bandFor(creditScore int) creditBand {
	for _, b := range p.bands {
		if creditScore >= b.minScore {
			return b
		}
	}
	return p.bands[len(p.bands)-1]
}

// position returns the stacking adjustment for position. Positions missing
// from the table pay the flat premium per stacked position.
func (p *params) position(position int) positionAdj {
	if adj, ok := p.positions[position]; ok {
		return adj
	}
	return positionAdj{
		factor:   p.premium.Mul(decimal.NewFromInt(int64(position - 1))),
		approval: one,
	}
}

// maxWithholdFor applies an industry override, which may only tighten the
// global cap and never below the withhold floor.
func (p *params) maxWithholdFor(industry string) decimal.Decimal {
	if adj, ok := p.industries[industry]; ok && adj.override != nil {
		return clamp(*adj.override, p.minWithhold, p.maxWithhold)
	}
	return p.maxWithhold
}
