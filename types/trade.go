package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type ExitReason string

const (
	ExitReasonScheduled         ExitReason = "scheduled"
	ExitReasonPositionStopLoss  ExitReason = "position_stop_loss"
	ExitReasonMarginLiquidation ExitReason = "margin_liquidation"
)

// TradeIntent is a proposed trade produced by an external strategy evaluator.
// The simulator treats it as read-only input; Context is opaque and carried
// through to the executed trade untouched.
type TradeIntent struct {
	Id         string          `json:"id"`
	EntryDate  string          `json:"entryDate"`
	EntryPrice decimal.Decimal `json:"entryPrice"`
	ExitDate   string          `json:"exitDate"`
	ExitPrice  decimal.Decimal `json:"exitPrice"`
	ExitReason ExitReason      `json:"exitReason,omitempty"`
	Context    json.RawMessage `json:"context,omitempty"`
}

// ExecutedTrade is a TradeIntent as it actually played out in the simulation.
type ExecutedTrade struct {
	Id         string          `json:"id"`
	EntryDate  string          `json:"entryDate"`
	EntryPrice decimal.Decimal `json:"entryPrice"`
	Quantity   decimal.Decimal `json:"quantity"`
	ExitDate   string          `json:"exitDate"`
	ExitPrice  decimal.Decimal `json:"exitPrice"`
	PnL        decimal.Decimal `json:"pnl"`
	PnLPercent decimal.Decimal `json:"pnlPercent"`
	// Duration is in trading days between entry and exit.
	Duration   int          `json:"duration"`
	ExitReason ExitReason   `json:"exitReason"`
	Context    TradeContext `json:"context"`
}

// TradeContext carries the intent's opaque strategy context plus the margin
// bookkeeping of the executed trade.
type TradeContext struct {
	Strategy        json.RawMessage `json:"strategy,omitempty"`
	Leverage        decimal.Decimal `json:"leverage"`
	MarginUsed      decimal.Decimal `json:"marginUsed"`
	Borrowed        decimal.Decimal `json:"borrowed"`
	GrossInvestment decimal.Decimal `json:"grossInvestment"`
	CashAfterExit   decimal.Decimal `json:"cashAfterExit"`
	// Liquidation is set only when the trade was closed by a risk trigger.
	Liquidation *LiquidationContext `json:"liquidation,omitempty"`
}

type LiquidationContext struct {
	Trigger              RiskEventType   `json:"trigger"`
	StopLossPct          decimal.Decimal `json:"stopLossPct"`
	MaintenanceMarginPct decimal.Decimal `json:"maintenanceMarginPct"`
	MarginRatioAtTrigger decimal.Decimal `json:"marginRatioAtTrigger"`
}
