package types

import (
	"github.com/shopspring/decimal"
)

type RiskEventType string

const (
	RiskPositionStopLoss  RiskEventType = "position_stop_loss"
	RiskMaintenanceMargin RiskEventType = "maintenance_margin"
)

// PositionRiskEvent records a forced position close. Append-only; one entry
// per trigger.
type PositionRiskEvent struct {
	Type                 RiskEventType   `json:"type"`
	Date                 string          `json:"date"`
	TradeId              string          `json:"tradeId"`
	TriggerPrice         decimal.Decimal `json:"triggerPrice"`
	BarLow               decimal.Decimal `json:"barLow"`
	RemainingCapital     decimal.Decimal `json:"remainingCapital"`
	ThresholdPct         decimal.Decimal `json:"thresholdPct"`
	PositionDropPct      decimal.Decimal `json:"positionDropPct"`
	MarginRatioAtTrigger decimal.Decimal `json:"marginRatioAtTrigger"`
}
