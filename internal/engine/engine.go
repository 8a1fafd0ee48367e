package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marginsim/types"
)

type dataStore interface {
	GetAssetByTicker(ctx context.Context, ticker string) (*types.Asset, error)
	GetDailyBars(ctx context.Context, assetID int, start, end time.Time) ([]types.PriceBar, error)
}

// Scenario is one simulator run over the same market data.
type Scenario struct {
	Name           string
	InitialCapital decimal.Decimal
	Leverage       decimal.Decimal
	Options        Options
}

// Engine loads market data and runs every configured scenario against it.
type Engine struct {
	db  dataStore
	log *zap.Logger
}

func NewEngine(db dataStore, log *zap.Logger) *Engine {
	return &Engine{
		db:  db,
		log: log,
	}
}

// RunInput bundles everything one engine run needs. Intents come from the
// external strategy evaluator; the engine does not generate signals.
type RunInput struct {
	Ticker    string
	Start     time.Time
	End       time.Time
	Intents   []types.TradeIntent
	Scenarios []Scenario
	// ReportDir receives per-scenario trade and equity CSVs when set.
	ReportDir string
}

func (e *Engine) Run(ctx context.Context, in RunInput) error {
	asset, err := e.db.GetAssetByTicker(ctx, in.Ticker)
	if err != nil {
		return fmt.Errorf("load asset %s: %w", in.Ticker, err)
	}
	bars, err := e.db.GetDailyBars(ctx, asset.Id, in.Start, in.End)
	if err != nil {
		return fmt.Errorf("load bars for %s: %w", in.Ticker, err)
	}
	e.log.Info("market data loaded",
		zap.String("ticker", asset.Ticker),
		zap.Int("bars", len(bars)),
		zap.Int("intents", len(in.Intents)),
		zap.Int("scenarios", len(in.Scenarios)),
	)

	bar := initProgressBar(len(in.Scenarios))
	for _, scenario := range in.Scenarios {
		result := SimulateMarginByTrades(bars, in.Intents, scenario.InitialCapital, scenario.Leverage, &scenario.Options)
		stats := CalculateTradeStats(result.Trades)
		bar.Add(1)

		printReport(scenario, result, stats)
		e.log.Info("scenario simulated",
			zap.String("scenario", scenario.Name),
			zap.Int("trades", stats.TotalTrades),
			zap.Int("positionStops", len(result.PositionStopEvents)),
			zap.Int("marginLiquidations", len(result.MaintenanceLiquidationEvents)),
		)

		if in.ReportDir == "" {
			continue
		}
		prefix := filepath.Join(in.ReportDir, scenarioFileName(scenario.Name))
		if err := writeTradesCSVFile(prefix+"_trades.csv", result.Trades); err != nil {
			return fmt.Errorf("write trades csv: %w", err)
		}
		if err := writeEquityCSVFile(prefix+"_equity.csv", result.Equity); err != nil {
			return fmt.Errorf("write equity csv: %w", err)
		}
	}
	return nil
}

func scenarioFileName(name string) string {
	clean := strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(clean, " ", "_")
}

func initProgressBar(scenarios int) *progressbar.ProgressBar {
	return progressbar.NewOptions(scenarios,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Simulating margin scenarios..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
