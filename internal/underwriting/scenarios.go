package underwriting

import (
	"context"
	"runtime"
	"sync"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/model"
	"golang.org/x/sync/errgroup"
)

// CalculateScenarios prices base with each named override applied. Scenarios
// are independent and run on a bounded worker group; the result is the same
// as running them one by one.
func (c *Calculator) CalculateScenarios(ctx context.Context, base model.UnderwritingRequest, scenarios map[string]model.RequestOverride) (map[string]model.DecisionResult, error) {
	results := make(map[string]model.DecisionResult, len(scenarios))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for name, override := range scenarios {
		name, override := name, override
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result := c.CalculateOffer(override.Apply(base))

			mu.Lock()
			results[name] = result
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	common.LogDebug("Calculated scenarios", common.Fields{"count": len(results)})
	return results, nil
}
