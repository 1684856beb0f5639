// Package pattern learns credit classifications from confirmed descriptions
// and matches new descriptions against them.
package pattern

import (
	"context"

	"github.com/Veraticus/true-revenue/internal/model"
)

// Store persists learned patterns keyed by normalized description.
type Store interface {
	// LearnedPatterns returns every stored pattern.
	LearnedPatterns(ctx context.Context) ([]model.LearnedPattern, error)
	// LearnedPattern returns the pattern for a normalized description, or
	// common.ErrNotFound.
	LearnedPattern(ctx context.Context, normalized string) (*model.LearnedPattern, error)
	// SaveLearnedPattern inserts or updates a pattern.
	SaveLearnedPattern(ctx context.Context, p *model.LearnedPattern) error
}
