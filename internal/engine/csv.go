package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"marginsim/types"
)

// writeTradesCSVFile writes executed trades to a CSV file at the given path.
func writeTradesCSVFile(path string, trades []types.ExecutedTrade) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trades file: %w", err)
	}
	defer f.Close()

	return writeTradesCSV(f, trades)
}

// writeTradesCSV writes trades to any io.Writer as CSV.
// You can pass os.Stdout for debugging, or a file.
func writeTradesCSV(w io.Writer, trades []types.ExecutedTrade) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"trade_id",
		"entry_date",
		"entry_price",
		"quantity",
		"exit_date",
		"exit_price",
		"exit_reason",
		"pnl",
		"pnl_percent",
		"duration_days",
		"leverage",
		"margin_used",
		"borrowed",
		"gross_investment",
		"cash_after_exit",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, t := range trades {
		record := []string{
			t.Id,
			t.EntryDate,
			t.EntryPrice.String(),
			t.Quantity.String(),
			t.ExitDate,
			t.ExitPrice.String(),
			string(t.ExitReason),
			t.PnL.String(),
			t.PnLPercent.String(),
			strconv.Itoa(t.Duration),
			t.Context.Leverage.String(),
			t.Context.MarginUsed.String(),
			t.Context.Borrowed.String(),
			t.Context.GrossInvestment.String(),
			t.Context.CashAfterExit.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// writeEquityCSVFile writes the equity curve to a CSV file at the given path.
func writeEquityCSVFile(path string, equity []types.EquityPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create equity file: %w", err)
	}
	defer f.Close()

	return writeEquityCSV(f, equity)
}

func writeEquityCSV(w io.Writer, equity []types.EquityPoint) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"date", "value", "drawdown_pct"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, point := range equity {
		record := []string{point.Date, point.Value.String(), point.Drawdown.String()}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
