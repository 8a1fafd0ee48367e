package engine

import (
	"fmt"

	"marginsim/types"
)

func printReport(scenario Scenario, result types.SimulationResult, stats types.TradeStats) {

	fmt.Println("===== Margin Simulation Report =====")
	fmt.Printf("Scenario:              %s\n", scenario.Name)
	fmt.Printf("Leverage:              %sx\n", scenario.Leverage)
	fmt.Printf("Bars Processed:        %d\n", len(result.Equity))
	fmt.Printf("Final Value:           %s\n", result.FinalValue)
	fmt.Printf("Max Drawdown:          %s%%\n", result.MaxDrawdown.StringFixed(2))

	fmt.Println("\n-- Trades --")
	fmt.Printf("Total Trades:          %d\n", stats.TotalTrades)
	fmt.Printf("Wins / Losses / Flat:  %d / %d / %d\n", stats.Wins, stats.Losses, stats.Breakeven)
	fmt.Printf("Win Rate:              %s%%\n", stats.WinRate.StringFixed(2))
	fmt.Printf("Total PnL:             %s\n", stats.TotalPnL)
	fmt.Printf("Avg Duration:          %s trading days\n", stats.AvgDuration.StringFixed(1))

	fmt.Println("\n-- Risk Events --")
	fmt.Printf("Position Stops:        %d\n", len(result.PositionStopEvents))
	fmt.Printf("Margin Liquidations:   %d\n", len(result.MaintenanceLiquidationEvents))
	if result.LiquidationEvent != nil {
		fmt.Printf("Last Liquidation:      %s at %s (margin ratio %s)\n",
			result.LiquidationEvent.Date,
			result.LiquidationEvent.TriggerPrice,
			result.LiquidationEvent.MarginRatioAtTrigger.StringFixed(4))
	}

	fmt.Println("====================================")
}
