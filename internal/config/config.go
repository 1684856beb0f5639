// Package config holds the injected tables and thresholds the revenue and
// underwriting engines run on.
package config

import (
	"fmt"
	"sort"

	"github.com/Veraticus/true-revenue/internal/common"
)

// Config is the full engine configuration. It is built once and treated as
// read-only afterwards.
type Config struct {
	Logging              LoggingConfig        `mapstructure:"logging"`
	Database             DatabaseConfig       `mapstructure:"database"`
	Funders              []FunderPattern      `mapstructure:"funders"`
	Classification       ClassificationConfig `mapstructure:"classification"`
	Learning             LearningConfig       `mapstructure:"learning"`
	Underwriting         UnderwritingConfig   `mapstructure:"underwriting"`
	Volatility           VolatilityThresholds `mapstructure:"volatility"`
	BusinessDaysPerMonth float64              `mapstructure:"business_days_per_month"`
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig locates the audit store.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// PatternRule is one classification rule. Unless, when set, vetoes a match.
type PatternRule struct {
	ID      string `mapstructure:"id"`
	Pattern string `mapstructure:"pattern"`
	Unless  string `mapstructure:"unless"`
	Label   string `mapstructure:"label"`
}

// IndustryPatterns are revenue rules that only apply to one industry.
type IndustryPatterns struct {
	Industry string        `mapstructure:"industry"`
	Rules    []PatternRule `mapstructure:"rules"`
}

// Heuristics drive classification of credits no rule matched.
type Heuristics struct {
	SuspiciousLoanAmounts []float64 `mapstructure:"suspicious_loan_amounts"`
	LargeDepositThreshold float64   `mapstructure:"large_deposit_threshold"`
	RoundNumberThreshold  float64   `mapstructure:"round_number_threshold"`
	RoundNumberUnit       float64   `mapstructure:"round_number_unit"`
	VeryRoundUnit         float64   `mapstructure:"very_round_unit"`
	SuspiciousTolerance   float64   `mapstructure:"suspicious_tolerance"`
	DefaultConfidence     float64   `mapstructure:"default_confidence"`
}

// ClassificationConfig is the ordered rule tables plus heuristics.
type ClassificationConfig struct {
	ExcludePatterns  []PatternRule      `mapstructure:"exclude_patterns"`
	RevenuePatterns  []PatternRule      `mapstructure:"revenue_patterns"`
	IndustryPatterns []IndustryPatterns `mapstructure:"industry_patterns"`
	Heuristics       Heuristics         `mapstructure:"heuristics"`
}

// FunderPattern maps a debit description pattern to a funder name.
type FunderPattern struct {
	Name    string `mapstructure:"name"`
	Pattern string `mapstructure:"pattern"`
}

// LearningConfig tunes learned-pattern matching.
type LearningConfig struct {
	MatchThreshold          float64 `mapstructure:"match_threshold"`
	MinConfidence           int     `mapstructure:"min_confidence"`
	BaseConfidence          int     `mapstructure:"base_confidence"`
	ConfidencePerOccurrence int     `mapstructure:"confidence_per_occurrence"`
	Enabled                 bool    `mapstructure:"enabled"`
}

// VolatilityThresholds bucket the coefficient of variation (percent).
type VolatilityThresholds struct {
	LowBelow  float64 `mapstructure:"low_below"`
	HighAbove float64 `mapstructure:"high_above"`
}

// RiskTier is one pricing tier, selected by minimum risk score.
type RiskTier struct {
	ID                 string  `mapstructure:"id"`
	Name               string  `mapstructure:"name"`
	MinRiskScore       int     `mapstructure:"min_risk_score"`
	BaseFactorRate     float64 `mapstructure:"base_factor_rate"`
	MaxFactorRate      float64 `mapstructure:"max_factor_rate"`
	MaxTermMonths      int     `mapstructure:"max_term_months"`
	ApprovalPercentage float64 `mapstructure:"approval_percentage"`
}

// CreditBand adjusts pricing by credit score.
type CreditBand struct {
	ID                 string  `mapstructure:"id"`
	MinScore           int     `mapstructure:"min_score"`
	FactorAdjustment   float64 `mapstructure:"factor_adjustment"`
	TermAdjustment     int     `mapstructure:"term_adjustment"`
	ApprovalAdjustment float64 `mapstructure:"approval_adjustment"`
}

// IndustryAdjustment adjusts pricing by industry. MaxWithholdOverride can
// only tighten the global withhold cap.
type IndustryAdjustment struct {
	MaxWithholdOverride *float64 `mapstructure:"max_withhold_override"`
	Industry            string   `mapstructure:"industry"`
	RiskLevel           string   `mapstructure:"risk_level"`
	FactorAdjustment    float64  `mapstructure:"factor_adjustment"`
	TermAdjustment      int      `mapstructure:"term_adjustment"`
}

// PositionAdjustment prices one stacking position.
type PositionAdjustment struct {
	Position         int     `mapstructure:"position"`
	FactorAdjustment float64 `mapstructure:"factor_adjustment"`
	ApprovalModifier float64 `mapstructure:"approval_modifier"`
}

// StackingConfig prices stacked positions.
type StackingConfig struct {
	Positions          []PositionAdjustment `mapstructure:"positions"`
	MaxPositions       int                  `mapstructure:"max_positions"`
	PremiumPerPosition float64              `mapstructure:"premium_per_position"`
}

// VolatilityAdjustment adjusts pricing by revenue volatility level.
type VolatilityAdjustment struct {
	Level              string  `mapstructure:"level"`
	FactorAdjustment   float64 `mapstructure:"factor_adjustment"`
	TermAdjustment     int     `mapstructure:"term_adjustment"`
	ApprovalAdjustment float64 `mapstructure:"approval_adjustment"`
}

// HoldbackRiskAdjustment applies to risk scores at or above MinRiskScore.
type HoldbackRiskAdjustment struct {
	Level        string  `mapstructure:"level"`
	MinRiskScore int     `mapstructure:"min_risk_score"`
	Adjustment   float64 `mapstructure:"adjustment"`
}

// HoldbackConfig drives the holdback percentage attached to offers.
type HoldbackConfig struct {
	RiskAdjustments []HoldbackRiskAdjustment `mapstructure:"risk_adjustments"`
	Base            float64                  `mapstructure:"base"`
	PerPosition     float64                  `mapstructure:"per_position"`
	Min             float64                  `mapstructure:"min"`
	Max             float64                  `mapstructure:"max"`
}

// ValidationBounds are the hard limits any offer must respect.
type ValidationBounds struct {
	MinFactorRate   float64 `mapstructure:"min_factor_rate"`
	MaxFactorRate   float64 `mapstructure:"max_factor_rate"`
	MinDailyPayment float64 `mapstructure:"min_daily_payment"`
	MaxDailyPayment float64 `mapstructure:"max_daily_payment"`
	MinHoldback     float64 `mapstructure:"min_holdback"`
	MaxHoldback     float64 `mapstructure:"max_holdback"`
	MinTermMonths   int     `mapstructure:"min_term_months"`
	MaxTermMonths   int     `mapstructure:"max_term_months"`
}

// UnderwritingConfig holds capacity and pricing parameters.
type UnderwritingConfig struct {
	RiskTiers             []RiskTier             `mapstructure:"risk_tiers"`
	CreditBands           []CreditBand           `mapstructure:"credit_bands"`
	Industries            []IndustryAdjustment   `mapstructure:"industries"`
	VolatilityAdjustments []VolatilityAdjustment `mapstructure:"volatility_adjustments"`
	Stacking              StackingConfig         `mapstructure:"stacking"`
	Holdback              HoldbackConfig         `mapstructure:"holdback"`
	Validation            ValidationBounds       `mapstructure:"validation"`
	MaxWithholdPercentage float64                `mapstructure:"max_withhold_percentage"`
	MinWithholdPercentage float64                `mapstructure:"min_withhold_percentage"`
	MinFundingAmount      float64                `mapstructure:"min_funding_amount"`
	MaxFundingAmount      float64                `mapstructure:"max_funding_amount"`
	ApprovedThreshold     float64                `mapstructure:"approved_threshold"`
	CapacityEpsilon       float64                `mapstructure:"capacity_epsilon"`
	DefaultTermMonths     int                    `mapstructure:"default_term_months"`
	DefaultRiskScore      int                    `mapstructure:"default_risk_score"`
	MinRiskScore          int                    `mapstructure:"min_risk_score"`
}

// Industry returns the adjustment for industry, if configured.
func (u UnderwritingConfig) Industry(industry string) (IndustryAdjustment, bool) {
	for _, adj := range u.Industries {
		if adj.Industry == industry {
			return adj, true
		}
	}
	return IndustryAdjustment{}, false
}

// Validate checks the configuration. The engines refuse to start on error.
func (c *Config) Validate() error {
	if c.BusinessDaysPerMonth <= 0 {
		return common.NewConfigError("business_days_per_month", "must be positive, got %v", c.BusinessDaysPerMonth)
	}
	if err := c.Classification.validate(); err != nil {
		return err
	}
	if len(c.Funders) == 0 {
		return common.NewConfigError("funders", "at least one funder pattern is required")
	}
	for i, f := range c.Funders {
		if f.Name == "" || f.Pattern == "" {
			return common.NewConfigError(fmt.Sprintf("funders[%d]", i), "name and pattern are required")
		}
		if _, err := common.CompileInsensitive(f.Pattern); err != nil {
			return common.NewConfigError(fmt.Sprintf("funders[%d]", i), "%v", err)
		}
	}
	if c.Volatility.LowBelow <= 0 || c.Volatility.HighAbove < c.Volatility.LowBelow {
		return common.NewConfigError("volatility", "thresholds must satisfy 0 < low_below <= high_above")
	}
	if c.Learning.MatchThreshold <= 0 || c.Learning.MatchThreshold > 1 {
		return common.NewConfigError("learning.match_threshold", "must be in (0, 1], got %v", c.Learning.MatchThreshold)
	}
	return c.Underwriting.validate()
}

func (c ClassificationConfig) validate() error {
	tables := []struct {
		key   string
		rules []PatternRule
	}{
		{"classification.exclude_patterns", c.ExcludePatterns},
		{"classification.revenue_patterns", c.RevenuePatterns},
	}
	for _, ip := range c.IndustryPatterns {
		if ip.Industry == "" {
			return common.NewConfigError("classification.industry_patterns", "industry name is required")
		}
		tables = append(tables, struct {
			key   string
			rules []PatternRule
		}{"classification.industry_patterns." + ip.Industry, ip.Rules})
	}

	seen := make(map[string]bool)
	for _, table := range tables {
		for i, rule := range table.rules {
			key := fmt.Sprintf("%s[%d]", table.key, i)
			if rule.ID == "" || rule.Pattern == "" || rule.Label == "" {
				return common.NewConfigError(key, "id, pattern and label are required")
			}
			if seen[rule.ID] {
				return common.NewConfigError(key, "duplicate rule id %q", rule.ID)
			}
			seen[rule.ID] = true
			if _, err := common.CompileInsensitive(rule.Pattern); err != nil {
				return common.NewConfigError(key, "pattern: %v", err)
			}
			if _, err := common.CompileInsensitive(rule.Unless); err != nil {
				return common.NewConfigError(key, "unless: %v", err)
			}
		}
	}

	h := c.Heuristics
	if h.LargeDepositThreshold <= 0 {
		return common.NewConfigError("classification.heuristics.large_deposit_threshold", "must be positive")
	}
	if h.RoundNumberUnit <= 0 || h.VeryRoundUnit <= 0 {
		return common.NewConfigError("classification.heuristics", "round number units must be positive")
	}
	if h.SuspiciousTolerance < 0 {
		return common.NewConfigError("classification.heuristics.suspicious_tolerance", "must not be negative")
	}
	if h.DefaultConfidence < 0 || h.DefaultConfidence > 1 {
		return common.NewConfigError("classification.heuristics.default_confidence", "must be in [0, 1]")
	}
	return nil
}

func (u UnderwritingConfig) validate() error {
	if len(u.RiskTiers) == 0 {
		return common.NewConfigError("underwriting.risk_tiers", "at least one tier is required")
	}
	if !sort.SliceIsSorted(u.RiskTiers, func(i, j int) bool {
		return u.RiskTiers[i].MinRiskScore > u.RiskTiers[j].MinRiskScore
	}) {
		return common.NewConfigError("underwriting.risk_tiers", "tiers must be ordered by descending min_risk_score")
	}
	for i, tier := range u.RiskTiers {
		key := fmt.Sprintf("underwriting.risk_tiers[%d]", i)
		if tier.BaseFactorRate <= 1 || tier.MaxFactorRate < tier.BaseFactorRate {
			return common.NewConfigError(key, "factor rates must satisfy 1 < base <= max")
		}
		if tier.MaxTermMonths <= 0 {
			return common.NewConfigError(key, "max_term_months must be positive")
		}
		if tier.ApprovalPercentage <= 0 || tier.ApprovalPercentage > 1 {
			return common.NewConfigError(key, "approval_percentage must be in (0, 1]")
		}
	}
	if len(u.CreditBands) == 0 {
		return common.NewConfigError("underwriting.credit_bands", "at least one band is required")
	}
	if !sort.SliceIsSorted(u.CreditBands, func(i, j int) bool {
		return u.CreditBands[i].MinScore > u.CreditBands[j].MinScore
	}) {
		return common.NewConfigError("underwriting.credit_bands", "bands must be ordered by descending min_score")
	}

	if u.MaxWithholdPercentage <= 0 || u.MaxWithholdPercentage > 1 {
		return common.NewConfigError("underwriting.max_withhold_percentage", "must be in (0, 1], got %v", u.MaxWithholdPercentage)
	}
	if u.MinWithholdPercentage < 0 || u.MinWithholdPercentage > u.MaxWithholdPercentage {
		return common.NewConfigError("underwriting.min_withhold_percentage", "must be in [0, max_withhold_percentage]")
	}
	for _, ind := range u.Industries {
		if ind.MaxWithholdOverride == nil {
			continue
		}
		if *ind.MaxWithholdOverride > u.MaxWithholdPercentage {
			return common.NewConfigError("underwriting.industries."+ind.Industry,
				"max_withhold_override %v may only tighten the %v cap", *ind.MaxWithholdOverride, u.MaxWithholdPercentage)
		}
		if *ind.MaxWithholdOverride <= 0 || *ind.MaxWithholdOverride < u.MinWithholdPercentage {
			return common.NewConfigError("underwriting.industries."+ind.Industry,
				"max_withhold_override %v is below the %v withhold floor", *ind.MaxWithholdOverride, u.MinWithholdPercentage)
		}
	}

	if u.MinFundingAmount <= 0 || u.MaxFundingAmount < u.MinFundingAmount {
		return common.NewConfigError("underwriting", "funding bounds must satisfy 0 < min <= max")
	}
	if u.Stacking.MaxPositions <= 0 {
		return common.NewConfigError("underwriting.stacking.max_positions", "must be positive")
	}
	if u.DefaultTermMonths <= 0 {
		return common.NewConfigError("underwriting.default_term_months", "must be positive")
	}
	if u.ApprovedThreshold <= 0 || u.ApprovedThreshold > 1 {
		return common.NewConfigError("underwriting.approved_threshold", "must be in (0, 1]")
	}
	if u.CapacityEpsilon < 0 {
		return common.NewConfigError("underwriting.capacity_epsilon", "must not be negative")
	}

	h := u.Holdback
	if h.Min > h.Max || h.Base < 0 {
		return common.NewConfigError("underwriting.holdback", "bounds must satisfy 0 <= min <= max")
	}

	v := u.Validation
	switch {
	case v.MinFactorRate <= 0 || v.MaxFactorRate < v.MinFactorRate:
		return common.NewConfigError("underwriting.validation", "factor rate bounds are inverted")
	case v.MinTermMonths <= 0 || v.MaxTermMonths < v.MinTermMonths:
		return common.NewConfigError("underwriting.validation", "term bounds are inverted")
	case v.MinDailyPayment < 0 || v.MaxDailyPayment < v.MinDailyPayment:
		return common.NewConfigError("underwriting.validation", "daily payment bounds are inverted")
	case v.MinHoldback < 0 || v.MaxHoldback < v.MinHoldback:
		return common.NewConfigError("underwriting.validation", "holdback bounds are inverted")
	}
	return nil
}
