package model

import "time"

// Analysis is the full True Revenue result for one statement.
type Analysis struct {
	CreatedAt    time.Time         `json:"created_at"`
	ID           string            `json:"id,omitempty"`
	Source       string            `json:"source,omitempty"` // Imported file or other origin.
	Industry     string            `json:"industry,omitempty"`
	Months       []MonthlyBucket   `json:"monthly_breakdown"`
	Reasons      []ReasonSummary   `json:"classification_summary"`
	Skipped      []string          `json:"skipped,omitempty"` // Data errors for records left out.
	Positions    PositionInfo      `json:"positions"`
	Volatility   VolatilityMetrics `json:"volatility"`
	Summary      RevenueSummary    `json:"summary"`
	Transactions int               `json:"transaction_count"`
}

// Decision records one underwriting request and its outcome.
type Decision struct {
	CreatedAt  time.Time           `json:"created_at"`
	ID         string              `json:"id,omitempty"`
	AnalysisID string              `json:"analysis_id,omitempty"`
	Request    UnderwritingRequest `json:"request"`
	Result     DecisionResult      `json:"result"`
}
