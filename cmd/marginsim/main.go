package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marginsim/internal/config"
	"marginsim/internal/engine"
	"marginsim/internal/repository"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the run configuration file")
	flag.Parse()

	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	must(err)
	defer logger.Sync()

	cfg, err := config.LoadConfig(*configPath)
	must(err)

	dbURL := cfg.DatabaseURL
	if v := os.Getenv("DATABASE_URL"); v != "" {
		dbURL = v
	}

	ctx := context.Background()
	db, err := repository.NewDatabase(ctx, dbURL)
	must(err)
	defer db.Close()

	intents, err := config.LoadIntents(cfg.IntentsFile)
	must(err)

	if cfg.ReportDir != "" {
		must(os.MkdirAll(cfg.ReportDir, 0o755))
	}

	start, end := cfg.Window()
	eng := engine.NewEngine(db, logger)
	must(eng.Run(ctx, engine.RunInput{
		Ticker:    cfg.Ticker,
		Start:     start,
		End:       end,
		Intents:   intents,
		Scenarios: buildScenarios(cfg),
		ReportDir: cfg.ReportDir,
	}))
}

func buildScenarios(cfg *config.Config) []engine.Scenario {
	opts := engine.Options{
		PositionStopLossPct:             decimal.NewFromFloat(cfg.Risk.PositionStopLossPct),
		MaintenanceMarginPct:            decimal.NewFromFloat(cfg.Risk.MaintenanceMarginPct),
		StopAfterMaintenanceLiquidation: cfg.Risk.StopAfterMaintenanceLiquidation,
		CapitalUsagePct:                 decimal.NewFromFloat(cfg.Risk.CapitalUsagePct),
	}

	scenarios := make([]engine.Scenario, 0, len(cfg.Scenarios))
	for _, s := range cfg.Scenarios {
		scenarios = append(scenarios, engine.Scenario{
			Name:           s.Name,
			InitialCapital: decimal.NewFromFloat(cfg.InitialCapital),
			Leverage:       decimal.NewFromFloat(s.Leverage),
			Options:        opts,
		})
	}
	return scenarios
}
