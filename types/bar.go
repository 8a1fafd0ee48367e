package types

import (
	"github.com/shopspring/decimal"
)

// PriceBar is one daily OHLCV bar. Date is ISO-8601 (YYYY-MM-DD), so
// lexicographic order is chronological order. Bars are immutable once loaded.
type PriceBar struct {
	Date   string          `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume decimal.Decimal `json:"volume"`
}
