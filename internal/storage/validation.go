// Package storage persists analyses, underwriting decisions and learned
// patterns in SQLite.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/true-revenue/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidPattern = errors.New("invalid learned pattern")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateLearnedPattern(p *model.LearnedPattern) error {
	if p == nil {
		return fmt.Errorf("%w: learned pattern", ErrNilParameter)
	}
	if strings.TrimSpace(p.NormalizedDescription) == "" {
		return fmt.Errorf("%w: missing normalized description", ErrInvalidPattern)
	}
	if !p.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidPattern, p.Category)
	}
	if p.Confidence < 0 || p.Confidence > 100 {
		return fmt.Errorf("%w: confidence %d outside 0-100", ErrInvalidPattern, p.Confidence)
	}
	return nil
}
