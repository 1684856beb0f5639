package pattern

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/config"
	"github.com/Veraticus/true-revenue/internal/model"
)

const (
	manualConfidence = 100
	maxConfidence    = 100
	// maxOriginalLength bounds the stored original description.
	maxOriginalLength = 500
)

// Learner records confirmed classifications as learned patterns.
type Learner struct {
	store Store
	cfg   config.LearningConfig
	now   func() time.Time
}

// NewLearner creates a learner backed by store.
func NewLearner(store Store, cfg config.LearningConfig) *Learner {
	return &Learner{store: store, cfg: cfg, now: time.Now}
}

// Learn records that description belongs to category. Manual confirmations
// always win and pin the pattern at full confidence; repeat observations of
// an automatic pattern raise its confidence.
func (l *Learner) Learn(ctx context.Context, description string, category model.Category, manual bool) (*model.LearnedPattern, error) {
	if strings.TrimSpace(description) == "" {
		return nil, common.ErrMissingDescription
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("unknown category %q: %w", category, common.ErrInvalidTransaction)
	}

	normalized := Normalize(description)
	existing, err := l.store.LearnedPattern(ctx, normalized)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to load learned pattern: %w", err)
	}

	p := Observe(existing, description, category, manual, l.cfg, l.now())
	if err := l.store.SaveLearnedPattern(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save learned pattern: %w", err)
	}

	common.LogDebug("Learned pattern", common.Fields{
		"pattern":     p.NormalizedDescription,
		"category":    string(p.Category),
		"confidence":  p.Confidence,
		"occurrences": p.Occurrences,
	})
	return p, nil
}

// Observe applies one observation to existing, which may be nil, and returns
// the resulting pattern. existing is not modified.
func Observe(existing *model.LearnedPattern, description string, category model.Category, manual bool, cfg config.LearningConfig, now time.Time) *model.LearnedPattern {
	if existing == nil {
		p := &model.LearnedPattern{
			NormalizedDescription: Normalize(description),
			OriginalDescription:   truncate(description, maxOriginalLength),
			Category:              category,
			Source:                model.SourceLearned,
			Occurrences:           1,
			Confidence:            cfg.BaseConfidence,
			CreatedAt:             now,
			UpdatedAt:             now,
		}
		if manual {
			p.Source = model.SourceManual
			p.ManualOverride = true
			p.Confidence = manualConfidence
		}
		return p
	}

	p := *existing
	switch {
	case manual:
		p.Category = category
		p.Source = model.SourceManual
		p.ManualOverride = true
		p.Occurrences++
		p.Confidence = manualConfidence
		p.UpdatedAt = now
	case !p.ManualOverride:
		p.Occurrences++
		p.Confidence = min(maxConfidence, cfg.BaseConfidence+p.Occurrences*cfg.ConfidencePerOccurrence)
		p.UpdatedAt = now
	}
	return &p
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
