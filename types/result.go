package types

import (
	"github.com/shopspring/decimal"
)

// EquityPoint is the mark-to-market value of the whole account after one bar.
// Drawdown is the percentage retracement from the running peak.
type EquityPoint struct {
	Date     string          `json:"date"`
	Value    decimal.Decimal `json:"value"`
	Drawdown decimal.Decimal `json:"drawdown"`
}

// SimulationResult is the full output of one simulator run.
type SimulationResult struct {
	Equity                       []EquityPoint       `json:"equity"`
	Trades                       []ExecutedTrade     `json:"trades"`
	MaxDrawdown                  decimal.Decimal     `json:"maxDrawdown"`
	FinalValue                   decimal.Decimal     `json:"finalValue"`
	PositionStopEvents           []PositionRiskEvent `json:"positionStopEvents"`
	MaintenanceLiquidationEvents []PositionRiskEvent `json:"maintenanceLiquidationEvents"`
	// LiquidationEvent is the maintenance event, if any, that can terminate
	// the run early.
	LiquidationEvent *PositionRiskEvent `json:"liquidationEvent"`
}

// TradeStats is the pure reduction over a list of executed trades.
type TradeStats struct {
	TotalTrades int             `json:"totalTrades"`
	Wins        int             `json:"wins"`
	Losses      int             `json:"losses"`
	Breakeven   int             `json:"breakeven"`
	TotalPnL    decimal.Decimal `json:"totalPnL"`
	WinRate     decimal.Decimal `json:"winRate"`
	AvgDuration decimal.Decimal `json:"avgDuration"`
}
