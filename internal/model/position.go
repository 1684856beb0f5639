package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FunderPosition is one inferred advance obligation.
type FunderPosition struct {
	FirstSeen               time.Time       `json:"first_seen"`
	LastSeen                time.Time       `json:"last_seen"`
	Funder                  string          `json:"funder"`
	TotalAmount             decimal.Decimal `json:"total_amount"`
	AveragePayment          decimal.Decimal `json:"average_payment"`
	EstimatedDailyPayment   decimal.Decimal `json:"estimated_daily_payment"`
	EstimatedMonthlyPayment decimal.Decimal `json:"estimated_monthly_payment"`
	PaymentCount            int             `json:"payment_count"`
	PaymentDays             int             `json:"payment_days"`
}

// PositionInfo summarizes existing advance obligations found in debits.
type PositionInfo struct {
	TotalDailyPayment   decimal.Decimal  `json:"total_daily_payment"`
	TotalMonthlyPayment decimal.Decimal  `json:"total_monthly_payment"`
	Funders             []FunderPosition `json:"by_funder"`
	ActivePositions     int              `json:"active_positions"`
}
