package model

import (
	"github.com/shopspring/decimal"
)

// DecisionStatus is the top-level outcome tag of an underwriting decision.
type DecisionStatus string

// Decision status constants.
const (
	StatusApproved        DecisionStatus = "approved"
	StatusApprovedReduced DecisionStatus = "approved_reduced"
	StatusDeclined        DecisionStatus = "declined"
)

// DeclineReason names why a request cannot be funded.
type DeclineReason string

// Decline reason constants.
const (
	DeclineNone             DeclineReason = ""
	DeclineAtCapacity       DeclineReason = "DECLINE_AT_CAPACITY"
	DeclineTooManyPositions DeclineReason = "DECLINE_TOO_MANY_POSITIONS"
	DeclineBelowMinimum     DeclineReason = "DECLINE_BELOW_MINIMUM"
	DeclineLowRisk          DeclineReason = "DECLINE_LOW_RISK"
	DeclineInvalidRevenue   DeclineReason = "DECLINE_INVALID_REVENUE"
	DeclineInvalidTerms     DeclineReason = "DECLINE_INVALID_TERMS"
)

// UnderwritingRequest is the input to an offer calculation.
type UnderwritingRequest struct {
	FactorRate           *decimal.Decimal `json:"factor_rate,omitempty"` // Desired factor; computed when nil.
	RiskScore            *int             `json:"risk_score,omitempty"`  // 0-100, higher is safer.
	Industry             string           `json:"industry"`
	VolatilityLevel      VolatilityLevel  `json:"volatility_level,omitempty"`
	MonthlyTrueRevenue   decimal.Decimal  `json:"monthly_true_revenue"`
	RequestedAmount      decimal.Decimal  `json:"requested_amount"`
	ExistingDailyPayment decimal.Decimal  `json:"existing_daily_payment"`
	Position             int              `json:"position"`
	CreditScore          int              `json:"credit_score"`
	TimeInBusinessMonths int              `json:"time_in_business_months"`
	TermMonths           int              `json:"term_months,omitempty"` // Desired term; default when zero.
}

// RequestOverride replaces selected request fields for a named scenario.
// Nil fields keep the base request value.
type RequestOverride struct {
	MonthlyTrueRevenue   *decimal.Decimal
	RequestedAmount      *decimal.Decimal
	ExistingDailyPayment *decimal.Decimal
	FactorRate           *decimal.Decimal
	Position             *int
	CreditScore          *int
	TimeInBusinessMonths *int
	RiskScore            *int
	TermMonths           *int
	Industry             *string
	VolatilityLevel      *VolatilityLevel
}

// Apply returns a copy of base with the override's non-nil fields set.
func (o RequestOverride) Apply(base UnderwritingRequest) UnderwritingRequest {
	req := base
	if o.MonthlyTrueRevenue != nil {
		req.MonthlyTrueRevenue = *o.MonthlyTrueRevenue
	}
	if o.RequestedAmount != nil {
		req.RequestedAmount = *o.RequestedAmount
	}
	if o.ExistingDailyPayment != nil {
		req.ExistingDailyPayment = *o.ExistingDailyPayment
	}
	if o.FactorRate != nil {
		rate := *o.FactorRate
		req.FactorRate = &rate
	}
	if o.Position != nil {
		req.Position = *o.Position
	}
	if o.CreditScore != nil {
		req.CreditScore = *o.CreditScore
	}
	if o.TimeInBusinessMonths != nil {
		req.TimeInBusinessMonths = *o.TimeInBusinessMonths
	}
	if o.RiskScore != nil {
		score := *o.RiskScore
		req.RiskScore = &score
	}
	if o.TermMonths != nil {
		req.TermMonths = *o.TermMonths
	}
	if o.Industry != nil {
		req.Industry = *o.Industry
	}
	if o.VolatilityLevel != nil {
		req.VolatilityLevel = *o.VolatilityLevel
	}
	return req
}

// CapacitySnapshot is withhold headroom at a point in time.
type CapacitySnapshot struct {
	MonthlyTrueRevenue       decimal.Decimal `json:"monthly_true_revenue"`
	DailyTrueRevenue         decimal.Decimal `json:"daily_true_revenue"`
	MaxWithholdPercent       decimal.Decimal `json:"max_withhold_percent"`
	MaxDailyPayment          decimal.Decimal `json:"max_daily_payment"`
	ExistingDailyPayment     decimal.Decimal `json:"existing_daily_payment"`
	CurrentWithholdPercent   decimal.Decimal `json:"current_withhold_percent"`
	RemainingDailyCapacity   decimal.Decimal `json:"remaining_daily_capacity"`
	RemainingWithholdPercent decimal.Decimal `json:"remaining_withhold_percent"`
	AtCapacity               bool            `json:"at_capacity"`
	CanTakePosition          bool            `json:"can_take_position"`
}

// Adjustment is one applied pricing delta, kept for audit.
type Adjustment struct {
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

// Pricing is the outcome of risk-based pricing.
type Pricing struct {
	MaxWithholdOverride *decimal.Decimal `json:"max_withhold_override,omitempty"`
	TierID              string           `json:"tier_id"`
	TierName            string           `json:"tier_name"`
	CreditBand          string           `json:"credit_band"`
	Declined            DeclineReason    `json:"declined,omitempty"`
	FactorAdjustments   []Adjustment     `json:"factor_adjustments,omitempty"`
	TermAdjustments     []Adjustment     `json:"term_adjustments,omitempty"`
	ApprovalAdjustments []Adjustment     `json:"approval_adjustments,omitempty"`
	BaseFactorRate      decimal.Decimal  `json:"base_factor_rate"`
	MaxFactorRate       decimal.Decimal  `json:"max_factor_rate"`
	FactorRate          decimal.Decimal  `json:"factor_rate"`
	ApprovalPercentage  decimal.Decimal  `json:"approval_percentage"` // Fraction, 0.1-1.0.
	TierMaxTermMonths   int              `json:"tier_max_term_months"`
	MaxTermMonths       int              `json:"max_term_months"`
}

// WithholdBreakdown shows how the new payment stacks on existing ones.
type WithholdBreakdown struct {
	ExistingDailyPayment    decimal.Decimal `json:"existing_daily_payment"`
	ExistingWithholdPercent decimal.Decimal `json:"existing_withhold_percent"`
	NewDailyPayment         decimal.Decimal `json:"new_daily_payment"`
	NewWithholdPercent      decimal.Decimal `json:"new_withhold_percent"`
	TotalDailyPayment       decimal.Decimal `json:"total_daily_payment"`
	TotalWithholdPercent    decimal.Decimal `json:"total_withhold_percent"`
	RemainingCapacityAfter  decimal.Decimal `json:"remaining_capacity_after"`
	RemainingPercentAfter   decimal.Decimal `json:"remaining_percent_after"`
}

// NamedValue is one labelled intermediate value.
type NamedValue struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// MathStep records the intermediate values of one calculation step.
type MathStep struct {
	Step    string       `json:"step"`
	Formula string       `json:"formula"`
	Values  []NamedValue `json:"values"`
}

// Value returns the named value of the step, or zero and false.
func (s MathStep) Value(name string) (decimal.Decimal, bool) {
	for _, v := range s.Values {
		if v.Name == name {
			return v.Value, true
		}
	}
	return decimal.Zero, false
}

// Offer is a priced funding proposal.
type Offer struct {
	MathBreakdown      []MathStep        `json:"math_breakdown"`
	WithholdBreakdown  WithholdBreakdown `json:"withhold_breakdown"`
	FundingAmount      decimal.Decimal   `json:"funding_amount"`
	FactorRate         decimal.Decimal   `json:"factor_rate"`
	PaybackAmount      decimal.Decimal   `json:"payback_amount"`
	DailyPayment       decimal.Decimal   `json:"daily_payment"`
	WeeklyPayment      decimal.Decimal   `json:"weekly_payment"`
	MonthlyPayment     decimal.Decimal   `json:"monthly_payment"`
	HoldbackPercentage decimal.Decimal   `json:"holdback_percentage"` // Fraction, e.g. 0.10.
	CostOfCapital      decimal.Decimal   `json:"cost_of_capital"`
	CostPercentage     decimal.Decimal   `json:"cost_percentage"`
	TermMonths         int               `json:"term_months"`
	TermBusinessDays   int               `json:"term_business_days"`
	Position           int               `json:"position"`
}

// Terms returns the offer's terms in the form ValidateOfferTerms checks.
func (o *Offer) Terms() OfferTerms {
	return OfferTerms{
		FundingAmount:      o.FundingAmount,
		FactorRate:         o.FactorRate,
		DailyPayment:       o.DailyPayment,
		HoldbackPercentage: o.HoldbackPercentage,
		TermMonths:         o.TermMonths,
	}
}

// DecisionResult is the top-level underwriting outcome. Offer is set exactly
// when CanFund is true; DeclineReason is set exactly when it is false.
type DecisionResult struct {
	Offer         *Offer            `json:"offer,omitempty"`
	Capacity      *CapacitySnapshot `json:"capacity,omitempty"`
	Pricing       *Pricing          `json:"pricing,omitempty"`
	Status        DecisionStatus    `json:"status"`
	DeclineReason DeclineReason     `json:"decline_reason,omitempty"`
	Explanation   string            `json:"explanation"`
	Warnings      []string          `json:"warnings,omitempty"`
	CanFund       bool              `json:"can_fund"`
}

// Declined builds a declined result.
func Declined(reason DeclineReason, explanation string) DecisionResult {
	return DecisionResult{
		Status:        StatusDeclined,
		DeclineReason: reason,
		Explanation:   explanation,
	}
}

// Funded builds an approved or approved_reduced result.
func Funded(status DecisionStatus, offer *Offer, explanation string) DecisionResult {
	return DecisionResult{
		CanFund:     true,
		Status:      status,
		Offer:       offer,
		Explanation: explanation,
	}
}

// OfferTerms are externally supplied terms to validate.
type OfferTerms struct {
	FundingAmount      decimal.Decimal `json:"funding_amount"`
	FactorRate         decimal.Decimal `json:"factor_rate"`
	DailyPayment       decimal.Decimal `json:"daily_payment"`
	HoldbackPercentage decimal.Decimal `json:"holdback_percentage"`
	TermMonths         int             `json:"term_months"`
}

// ValidationResult accumulates every violated bound.
type ValidationResult struct {
	Errors []string `json:"errors"`
	Valid  bool     `json:"valid"`
}
