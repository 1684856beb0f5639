// Package classification separates genuine business revenue from transfers,
// loans, refunds and advance funding using ordered pattern rules and
// amount heuristics.
package classification

import (
	"fmt"
	"regexp"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/config"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/shopspring/decimal"
)

// RuleKind identifies the table a rule came from.
type RuleKind string

// Rule kinds, in evaluation order.
const (
	RuleKindExclude  RuleKind = "exclude"
	RuleKindRevenue  RuleKind = "revenue"
	RuleKindIndustry RuleKind = "industry"
)

// Rule is a compiled classification rule.
type Rule struct {
	match    *regexp.Regexp
	unless   *regexp.Regexp
	ID       string
	Label    string
	Kind     RuleKind
	Industry string
}

// Matches reports whether description hits the rule and not its guard.
func (r Rule) Matches(description string) bool {
	if !r.match.MatchString(description) {
		return false
	}
	return r.unless == nil || !r.unless.MatchString(description)
}

// Category is the classification a match on this rule produces.
func (r Rule) Category() model.Category {
	if r.Kind == RuleKindExclude {
		return model.CategoryExcluded
	}
	return model.CategoryRevenue
}

// Heuristics are the decimal form of config.Heuristics.
type Heuristics struct {
	SuspiciousLoanAmounts []decimal.Decimal
	LargeDepositThreshold decimal.Decimal
	RoundNumberThreshold  decimal.Decimal
	RoundNumberUnit       decimal.Decimal
	VeryRoundUnit         decimal.Decimal
	SuspiciousTolerance   decimal.Decimal
	DefaultConfidence     float64
}

// RuleSet is the immutable, ordered rule table. It is safe for concurrent use.
type RuleSet struct {
	industry   map[string][]Rule
	exclude    []Rule
	revenue    []Rule
	heuristics Heuristics
}

// NewRuleSet compiles cfg. Any malformed rule is a configuration error.
func NewRuleSet(cfg config.ClassificationConfig) (*RuleSet, error) {
	exclude, err := compileRules(cfg.ExcludePatterns, RuleKindExclude, "")
	if err != nil {
		return nil, err
	}
	revenue, err := compileRules(cfg.RevenuePatterns, RuleKindRevenue, "")
	if err != nil {
		return nil, err
	}

	industry := make(map[string][]Rule, len(cfg.IndustryPatterns))
	for _, ip := range cfg.IndustryPatterns {
		rules, err := compileRules(ip.Rules, RuleKindIndustry, ip.Industry)
		if err != nil {
			return nil, err
		}
		industry[ip.Industry] = append(industry[ip.Industry], rules...)
	}

	h := cfg.Heuristics
	suspicious := make([]decimal.Decimal, 0, len(h.SuspiciousLoanAmounts))
	for _, amt := range h.SuspiciousLoanAmounts {
		suspicious = append(suspicious, decimal.NewFromFloat(amt))
	}
	if h.RoundNumberUnit <= 0 || h.VeryRoundUnit <= 0 {
		return nil, common.NewConfigError("classification.heuristics", "round number units must be positive")
	}

	rs := &RuleSet{
		exclude:  exclude,
		revenue:  revenue,
		industry: industry,
		heuristics: Heuristics{
			LargeDepositThreshold: decimal.NewFromFloat(h.LargeDepositThreshold),
			RoundNumberThreshold:  decimal.NewFromFloat(h.RoundNumberThreshold),
			RoundNumberUnit:       decimal.NewFromFloat(h.RoundNumberUnit),
			VeryRoundUnit:         decimal.NewFromFloat(h.VeryRoundUnit),
			SuspiciousLoanAmounts: suspicious,
			SuspiciousTolerance:   decimal.NewFromFloat(h.SuspiciousTolerance),
			DefaultConfidence:     h.DefaultConfidence,
		},
	}

	common.LogDebug("Compiled classification rules", common.Fields{
		"exclude":    len(exclude),
		"revenue":    len(revenue),
		"industries": len(industry),
	})

	return rs, nil
}

func compileRules(rules []config.PatternRule, kind RuleKind, industry string) ([]Rule, error) {
	compiled := make([]Rule, 0, len(rules))
	for i, r := range rules {
		key := fmt.Sprintf("%s rule %d (%s)", kind, i, r.ID)
		if r.Pattern == "" {
			return nil, common.NewConfigError(key, "empty pattern")
		}
		match, err := common.CompileInsensitive(r.Pattern)
		if err != nil {
			return nil, common.NewConfigError(key, "%v", err)
		}
		unless, err := common.CompileInsensitive(r.Unless)
		if err != nil {
			return nil, common.NewConfigError(key, "%v", err)
		}
		label := r.Label
		if label == "" {
			label = r.ID
		}
		compiled = append(compiled, Rule{
			ID:       r.ID,
			Label:    label,
			Kind:     kind,
			Industry: industry,
			match:    match,
			unless:   unless,
		})
	}
	return compiled, nil
}

// Match returns the first rule description hits: exclude rules, then
// revenue rules, then the rules for industry.
func (rs *RuleSet) Match(description, industry string) (Rule, bool) {
	if r, ok := rs.MatchExclude(description); ok {
		return r, true
	}
	return rs.MatchRevenue(description, industry)
}

// MatchExclude returns the first exclude rule description hits.
func (rs *RuleSet) MatchExclude(description string) (Rule, bool) {
	return firstMatch(rs.exclude, description)
}

// MatchRevenue returns the first revenue rule description hits, then the
// first rule for industry.
func (rs *RuleSet) MatchRevenue(description, industry string) (Rule, bool) {
	if r, ok := firstMatch(rs.revenue, description); ok {
		return r, true
	}
	if industry == "" {
		return Rule{}, false
	}
	return firstMatch(rs.industry[industry], description)
}

func firstMatch(rules []Rule, description string) (Rule, bool) {
	for _, r := range rules {
		if r.Matches(description) {
			return r, true
		}
	}
	return Rule{}, false
}

// Heuristics returns the amount thresholds.
func (rs *RuleSet) Heuristics() Heuristics {
	return rs.heuristics
}

// Len returns the number of compiled rules across all tables.
func (rs *RuleSet) Len() int {
	n := len(rs.exclude) + len(rs.revenue)
	for _, rules := range rs.industry {
		n += len(rules)
	}
	return n
}
