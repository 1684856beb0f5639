package engine

import (
	"context"

	"github.com/Veraticus/true-revenue/internal/model"
)

// Recorder persists analyses and decisions for audit.
type Recorder interface {
	SaveAnalysis(ctx context.Context, a *model.Analysis) error
	SaveDecision(ctx context.Context, d *model.Decision) error
}
