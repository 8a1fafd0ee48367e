package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"marginsim/types"
)

func statTrade(pnl float64, duration int) types.ExecutedTrade {
	return types.ExecutedTrade{
		PnL:      decimal.NewFromFloat(pnl),
		Duration: duration,
	}
}

func TestCalculateTradeStats(t *testing.T) {
	tests := []struct {
		name          string
		trades        []types.ExecutedTrade
		wantWins      int
		wantLosses    int
		wantBreakeven int
		wantTotalPnL  decimal.Decimal
		wantWinRate   decimal.Decimal
		wantAvgDur    decimal.Decimal
	}{
		{
			name:         "empty list",
			trades:       nil,
			wantTotalPnL: decimal.Zero,
			wantWinRate:  decimal.Zero,
			wantAvgDur:   decimal.Zero,
		},
		{
			name: "epsilon separates wins, losses and breakeven",
			trades: []types.ExecutedTrade{
				statTrade(5, 3),
				statTrade(-0.005, 1),
				statTrade(-2, 2),
			},
			wantWins:      1,
			wantLosses:    1,
			wantBreakeven: 1,
			wantTotalPnL:  decimal.NewFromFloat(2.995),
			wantWinRate:   decimal.NewFromInt(1).Div(decimal.NewFromInt(3)).Mul(decimal.NewFromInt(100)),
			wantAvgDur:    decimal.NewFromInt(2),
		},
		{
			name: "all wins",
			trades: []types.ExecutedTrade{
				statTrade(10, 4),
				statTrade(0.02, 6),
			},
			wantWins:     2,
			wantTotalPnL: decimal.NewFromFloat(10.02),
			wantWinRate:  decimal.NewFromInt(100),
			wantAvgDur:   decimal.NewFromInt(5),
		},
		{
			name: "pnl exactly at the epsilon counts as breakeven",
			trades: []types.ExecutedTrade{
				statTrade(0.01, 1),
				statTrade(-0.01, 3),
			},
			wantBreakeven: 2,
			wantTotalPnL:  decimal.Zero,
			wantWinRate:   decimal.Zero,
			wantAvgDur:    decimal.NewFromInt(2),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := CalculateTradeStats(tt.trades)

			if stats.TotalTrades != len(tt.trades) {
				t.Errorf("total trades got = %d, want %d", stats.TotalTrades, len(tt.trades))
			}
			if stats.Wins != tt.wantWins {
				t.Errorf("wins got = %d, want %d", stats.Wins, tt.wantWins)
			}
			if stats.Losses != tt.wantLosses {
				t.Errorf("losses got = %d, want %d", stats.Losses, tt.wantLosses)
			}
			if stats.Breakeven != tt.wantBreakeven {
				t.Errorf("breakeven got = %d, want %d", stats.Breakeven, tt.wantBreakeven)
			}
			if !stats.TotalPnL.Equal(tt.wantTotalPnL) {
				t.Errorf("total pnl got = %v, want %v", stats.TotalPnL, tt.wantTotalPnL)
			}
			if !stats.WinRate.Equal(tt.wantWinRate) {
				t.Errorf("win rate got = %v, want %v", stats.WinRate, tt.wantWinRate)
			}
			if !stats.AvgDuration.Equal(tt.wantAvgDur) {
				t.Errorf("avg duration got = %v, want %v", stats.AvgDuration, tt.wantAvgDur)
			}
		})
	}
}

func TestCalculateTradeStatsBreakevenIsDerived(t *testing.T) {
	trades := []types.ExecutedTrade{
		statTrade(3, 1),
		statTrade(-3, 1),
		statTrade(0, 1),
		statTrade(0.009, 1),
	}

	stats := CalculateTradeStats(trades)

	if got := stats.Wins + stats.Losses + stats.Breakeven; got != stats.TotalTrades {
		t.Errorf("wins+losses+breakeven = %d, want total %d", got, stats.TotalTrades)
	}
	if stats.Breakeven != 2 {
		t.Errorf("breakeven got = %d, want 2", stats.Breakeven)
	}
}
