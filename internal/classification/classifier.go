package classification

import (
	"fmt"
	"strings"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/model"
)

// Rule match confidences.
const (
	RuleConfidence     = 0.95
	IndustryConfidence = 0.90
)

// LearnedPatterns looks up a confident learned classification for a
// description. Implementations must be safe for concurrent use.
type LearnedPatterns interface {
	Lookup(description string) (model.LearnedPattern, bool)
}

// Classifier classifies credit transactions against a RuleSet.
type Classifier struct {
	rules   *RuleSet
	learned LearnedPatterns
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLearnedPatterns consults learned after the exclude rules and before
// the revenue rules.
func WithLearnedPatterns(learned LearnedPatterns) Option {
	return func(c *Classifier) {
		c.learned = learned
	}
}

// NewClassifier creates a classifier over rules.
func NewClassifier(rules *RuleSet, opts ...Option) *Classifier {
	c := &Classifier{rules: rules}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rules returns the rule set the classifier evaluates.
func (c *Classifier) Rules() *RuleSet {
	return c.rules
}

// Classify classifies one credit for a business in industry (may be empty).
// Malformed transactions are rejected with an error wrapping
// common.ErrInvalidTransaction.
func (c *Classifier) Classify(txn model.Transaction, industry string) (model.ClassificationResult, error) {
	if err := ValidateCredit(txn); err != nil {
		return model.ClassificationResult{}, fmt.Errorf("%w: %w", common.ErrInvalidTransaction, err)
	}
	return c.classify(txn, industry), nil
}

func (c *Classifier) classify(txn model.Transaction, industry string) model.ClassificationResult {
	if rule, ok := c.rules.MatchExclude(txn.Description); ok {
		return ruleResult(rule)
	}

	if c.learned != nil {
		if lp, ok := c.learned.Lookup(txn.Description); ok {
			return learnedResult(lp)
		}
	}

	if rule, ok := c.rules.MatchRevenue(txn.Description, industry); ok {
		return ruleResult(rule)
	}

	return c.rules.heuristics.apply(txn.Amount)
}

func ruleResult(rule Rule) model.ClassificationResult {
	result := model.ClassificationResult{
		Category:   rule.Category(),
		Reason:     rule.Label,
		RuleID:     rule.ID,
		Source:     model.SourceRule,
		Confidence: RuleConfidence,
	}
	if rule.Kind == RuleKindIndustry {
		result.Reason += " (industry-specific)"
		result.Confidence = IndustryConfidence
	}
	return result
}

// ValidateCredit checks that txn is a classifiable credit.
func ValidateCredit(txn model.Transaction) error {
	switch {
	case strings.TrimSpace(txn.Description) == "":
		return common.ErrMissingDescription
	case txn.Amount.IsNegative():
		return common.ErrNegativeAmount
	case txn.Amount.IsZero():
		return common.ErrMissingAmount
	case !txn.IsCredit():
		return common.ErrNotCredit
	case txn.Date.IsZero():
		return common.ErrMissingDate
	}
	return nil
}

func learnedResult(lp model.LearnedPattern) model.ClassificationResult {
	source := model.SourceLearned
	if lp.ManualOverride {
		source = model.SourceManual
	}
	return model.ClassificationResult{
		Category:   lp.Category,
		Reason:     "Learned pattern: " + lp.OriginalDescription,
		RuleID:     fmt.Sprintf("learned_%d", lp.ID),
		Source:     source,
		Confidence: float64(lp.Confidence) / 100,
	}
}
