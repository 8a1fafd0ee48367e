package engine

import (
	"github.com/shopspring/decimal"

	"marginsim/types"
)

// pnlEpsilon absorbs floating-point noise around zero when classifying a
// trade as win or loss.
var pnlEpsilon = decimal.NewFromFloat(0.01)

// CalculateTradeStats reduces a list of executed trades to summary counters.
// A missing or empty list yields all-zero stats.
func CalculateTradeStats(trades []types.ExecutedTrade) types.TradeStats {
	stats := types.TradeStats{
		TotalTrades: len(trades),
		TotalPnL:    decimal.Zero,
		WinRate:     decimal.Zero,
		AvgDuration: decimal.Zero,
	}
	if len(trades) == 0 {
		return stats
	}

	totalDuration := 0
	for _, trade := range trades {
		stats.TotalPnL = stats.TotalPnL.Add(trade.PnL)
		totalDuration += trade.Duration

		switch {
		case trade.PnL.GreaterThan(pnlEpsilon):
			stats.Wins++
		case trade.PnL.LessThan(pnlEpsilon.Neg()):
			stats.Losses++
		}
	}

	total := decimal.NewFromInt(int64(stats.TotalTrades))
	stats.Breakeven = stats.TotalTrades - stats.Wins - stats.Losses
	stats.WinRate = decimal.NewFromInt(int64(stats.Wins)).Div(total).Mul(hundred)
	stats.AvgDuration = decimal.NewFromInt(int64(totalDuration)).Div(total)
	return stats
}
