package underwriting

import (
	"github.com/shopspring/decimal"
)

// holdback returns the holdback fraction for a risk score and position:
// base, plus the risk-level delta, plus a fixed amount per stacked position,
// clamped to the configured range.
func (p *params) holdback(riskScore, position int) decimal.Decimal {
	h := p.holdbackBase
	for _, r := range p.holdbackRisk {
		if riskScore >= r.minScore {
			h = h.Add(r.adj)
			break
		}
	}
	if position > 1 {
		h = h.Add(p.holdbackPer.Mul(decimal.NewFromInt(int64(position - 1))))
	}
	return clamp(h, p.holdbackMin, p.holdbackMax).Round(4)
}
