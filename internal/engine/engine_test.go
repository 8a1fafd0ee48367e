package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marginsim/types"
)

type mockDataStore struct {
	asset    *types.Asset
	bars     []types.PriceBar
	assetErr error
	barsErr  error
}

func (m *mockDataStore) GetAssetByTicker(_ context.Context, ticker string) (*types.Asset, error) {
	if m.assetErr != nil {
		return nil, m.assetErr
	}
	return m.asset, nil
}

func (m *mockDataStore) GetDailyBars(_ context.Context, assetID int, start, end time.Time) ([]types.PriceBar, error) {
	if m.barsErr != nil {
		return nil, m.barsErr
	}
	return m.bars, nil
}

func TestEngineRunWritesReports(t *testing.T) {
	db := &mockDataStore{
		asset: &types.Asset{Id: 1, Ticker: "AAPL"},
		bars: []types.PriceBar{
			flatBar("2024-03-04", 100),
			flatBar("2024-03-05", 100),
			flatBar("2024-03-06", 100),
		},
	}
	reportDir := t.TempDir()
	eng := NewEngine(db, zap.NewNop())

	err := eng.Run(context.Background(), RunInput{
		Ticker:  "AAPL",
		Start:   time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		End:     time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
		Intents: []types.TradeIntent{newIntent("t-1", "2024-03-04", 100, "2024-03-06", 110)},
		Scenarios: []Scenario{
			{Name: "2x long", InitialCapital: decimal.NewFromInt(1000), Leverage: decimal.NewFromInt(2), Options: DefaultOptions()},
		},
		ReportDir: reportDir,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, name := range []string{"2x_long_trades.csv", "2x_long_equity.csv"} {
		if _, err := os.Stat(filepath.Join(reportDir, name)); err != nil {
			t.Errorf("expected report file %s: %v", name, err)
		}
	}
}

func TestEngineRunPropagatesStoreErrors(t *testing.T) {
	wantErr := errors.New("datasource down")
	tests := []struct {
		name string
		db   *mockDataStore
	}{
		{"asset lookup fails", &mockDataStore{assetErr: wantErr}},
		{"bar lookup fails", &mockDataStore{asset: &types.Asset{Id: 1, Ticker: "AAPL"}, barsErr: wantErr}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := NewEngine(tt.db, zap.NewNop())
			err := eng.Run(context.Background(), RunInput{Ticker: "AAPL"})
			if !errors.Is(err, wantErr) {
				t.Errorf("Run() error = %v, want wrapped %v", err, wantErr)
			}
		})
	}
}
