package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"marginsim/types"
)

const dateLayout = "2006-01-02"

// GetDailyBars returns the daily bars for an asset between start and end,
// ascending by date.
func (db *Database) GetDailyBars(ctx context.Context, assetID int, start, end time.Time) ([]types.PriceBar, error) {
	query := `
		SELECT bucket, open, high, low, close, volume
		FROM daily_bars
		WHERE asset_id = $1 AND bucket >= $2 AND bucket <= $3
		ORDER BY bucket
	`

	rows, err := db.pool.Query(ctx, query, assetID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query daily bars: %w", err)
	}
	defer rows.Close()

	var bars []types.PriceBar
	for rows.Next() {
		var bucket time.Time
		var open, high, low, closePrice, volume decimal.Decimal
		if err := rows.Scan(&bucket, &open, &high, &low, &closePrice, &volume); err != nil {
			return nil, fmt.Errorf("scan daily bar: %w", err)
		}
		bars = append(bars, barFromRow(bucket, open, high, low, closePrice, volume))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read daily bars: %w", err)
	}
	if len(bars) == 0 {
		return nil, ErrNoBars
	}
	return bars, nil
}

func barFromRow(bucket time.Time, open, high, low, closePrice, volume decimal.Decimal) types.PriceBar {
	return types.PriceBar{
		Date:   bucket.Format(dateLayout),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
	}
}
