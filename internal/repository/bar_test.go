package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestBarFromRow(t *testing.T) {
	bucket := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	bar := barFromRow(bucket,
		decimal.NewFromInt(100),
		decimal.NewFromInt(105),
		decimal.NewFromInt(98),
		decimal.NewFromInt(102),
		decimal.NewFromInt(1000000),
	)

	if bar.Date != "2024-03-04" {
		t.Errorf("barFromRow date got = %v, want 2024-03-04", bar.Date)
	}
	if !bar.High.Equal(decimal.NewFromInt(105)) {
		t.Errorf("barFromRow high got = %v, want 105", bar.High)
	}
	if !bar.Close.Equal(decimal.NewFromInt(102)) {
		t.Errorf("barFromRow close got = %v, want 102", bar.Close)
	}
}

func TestBarFromRowDateIsChronologicallySortable(t *testing.T) {
	earlier := barFromRow(time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC),
		decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero)
	later := barFromRow(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
		decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero)

	if !(earlier.Date < later.Date) {
		t.Errorf("expected %q < %q lexicographically", earlier.Date, later.Date)
	}
}
