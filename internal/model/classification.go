// Package model defines the core domain models used throughout the application.
package model

// Category is the outcome bucket for a classified credit.
type Category string

// Category constants.
const (
	CategoryRevenue     Category = "revenue"
	CategoryExcluded    Category = "excluded"
	CategoryNeedsReview Category = "needs_review"
)

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	switch c {
	case CategoryRevenue, CategoryExcluded, CategoryNeedsReview:
		return true
	}
	return false
}

// Source indicates what produced a classification.
type Source string

// Classification source constants.
const (
	SourceRule    Source = "rule"
	SourceLearned Source = "learned"
	SourceManual  Source = "manual"
)

// ClassificationResult is the outcome for one credit transaction.
type ClassificationResult struct {
	Category   Category `json:"category"`
	Reason     string   `json:"reason"`
	RuleID     string   `json:"rule_id,omitempty"`
	Source     Source   `json:"source"`
	Confidence float64  `json:"confidence"`
}

// ClassifiedTransaction pairs a credit with its classification.
type ClassifiedTransaction struct {
	Result      ClassificationResult `json:"result"`
	Transaction Transaction          `json:"transaction"`
}
