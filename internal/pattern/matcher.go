package pattern

import (
	"sort"
	"strings"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/config"
	"github.com/Veraticus/true-revenue/internal/model"
)

// Match scores.
const (
	ScoreExact       = 1.0
	ScoreContainment = 0.9
)

// Matcher looks up learned patterns for a description. It is immutable and
// safe for concurrent use.
type Matcher struct {
	patterns  []model.LearnedPattern
	threshold float64
}

// NewMatcher creates a matcher over patterns. Patterns below the configured
// minimum confidence are ignored. Manual overrides are tried first, then
// the most frequently seen.
func NewMatcher(cfg config.LearningConfig, patterns []model.LearnedPattern) *Matcher {
	m := &Matcher{
		threshold: cfg.MatchThreshold,
	}
	for _, p := range patterns {
		if p.Confidence >= cfg.MinConfidence && p.NormalizedDescription != "" {
			m.patterns = append(m.patterns, p)
		}
	}
	sort.SliceStable(m.patterns, func(i, j int) bool {
		a, b := m.patterns[i], m.patterns[j]
		if a.ManualOverride != b.ManualOverride {
			return a.ManualOverride
		}
		if a.Occurrences != b.Occurrences {
			return a.Occurrences > b.Occurrences
		}
		return a.Confidence > b.Confidence
	})

	common.LogDebug("Loaded learned patterns", common.Fields{
		"usable": len(m.patterns),
		"total":  len(patterns),
	})
	return m
}

// Len returns the number of usable patterns.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// Lookup returns the first usable pattern matching description.
func (m *Matcher) Lookup(description string) (model.LearnedPattern, bool) {
	normalized := Normalize(description)
	if normalized == "" {
		return model.LearnedPattern{}, false
	}
	for _, p := range m.patterns {
		if Score(normalized, p.NormalizedDescription) >= m.threshold {
			return p, true
		}
	}
	return model.LearnedPattern{}, false
}

// Score compares a normalized description with a normalized learned
// pattern. Exact matches score 1 and containment either way scores 0.9.
// Otherwise the score is the fraction of the pattern's significant words
// present as whole words in the description, or 0 when the pattern has
// fewer than two.
func Score(description, learned string) float64 {
	switch {
	case description == "" || learned == "":
		return 0
	case description == learned:
		return ScoreExact
	case strings.Contains(description, learned), strings.Contains(learned, description):
		return ScoreContainment
	}

	words := significantWords(learned)
	if len(words) < 2 {
		return 0
	}
	present := make(map[string]bool)
	for _, w := range strings.Fields(description) {
		present[w] = true
	}
	found := 0
	for _, w := range words {
		if present[w] {
			found++
		}
	}
	return float64(found) / float64(len(words))
}
