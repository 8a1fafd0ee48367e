package engine

import (
	"github.com/shopspring/decimal"
)

var (
	defaultPositionStopLossPct  = decimal.NewFromInt(20)
	defaultMaintenanceMarginPct = decimal.NewFromInt(25)
	defaultCapitalUsagePct      = decimal.NewFromInt(100)

	minThresholdPct = decimal.NewFromInt(1)
	maxThresholdPct = decimal.NewFromInt(95)
)

// Options configures one simulator run. All percentages are clamped to safe
// ranges before use: capital usage to [0,100], both risk thresholds to [1,95].
type Options struct {
	PositionStopLossPct             decimal.Decimal
	MaintenanceMarginPct            decimal.Decimal
	StopAfterMaintenanceLiquidation bool
	CapitalUsagePct                 decimal.Decimal
}

// DefaultOptions returns the standard configuration: 20% position stop loss,
// 25% maintenance margin, full capital usage, no early stop.
func DefaultOptions() Options {
	return Options{
		PositionStopLossPct:  defaultPositionStopLossPct,
		MaintenanceMarginPct: defaultMaintenanceMarginPct,
		CapitalUsagePct:      defaultCapitalUsagePct,
	}
}

func (o Options) normalized() Options {
	o.PositionStopLossPct = clampDecimal(o.PositionStopLossPct, minThresholdPct, maxThresholdPct)
	o.MaintenanceMarginPct = clampDecimal(o.MaintenanceMarginPct, minThresholdPct, maxThresholdPct)
	o.CapitalUsagePct = clampDecimal(o.CapitalUsagePct, decimal.Zero, defaultCapitalUsagePct)
	return o
}

func clampDecimal(v, min, max decimal.Decimal) decimal.Decimal {
	if v.LessThan(min) {
		return min
	}
	if v.GreaterThan(max) {
		return max
	}
	return v
}
