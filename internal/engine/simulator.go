package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"marginsim/internal/calendar"
	"marginsim/types"
)

var hundred = decimal.NewFromInt(100)

// activePosition is the transient state while a position is open. At most one
// exists at any point in the bar loop.
type activePosition struct {
	intent          types.TradeIntent
	entryDate       string
	entryPrice      decimal.Decimal
	quantity        decimal.Decimal
	marginUsed      decimal.Decimal
	borrowed        decimal.Decimal
	plannedExitDate string
}

type marginSimulator struct {
	bars     []types.PriceBar
	intents  []types.TradeIntent
	leverage decimal.Decimal
	opts     Options

	cash      decimal.Decimal
	peakValue decimal.Decimal
	intentIdx int
	position  *activePosition
	halt      bool

	equity            []types.EquityPoint
	trades            []types.ExecutedTrade
	stopEvents        []types.PositionRiskEvent
	maintenanceEvents []types.PositionRiskEvent
	liquidationEvent  *types.PositionRiskEvent
}

// SimulateMarginByTrades replays pre-computed trade intents against a daily
// bar stream under leverage, tracking cash, debt and forced liquidations.
// Inputs are never mutated; bars and intents may arrive in any order. Empty
// market data or non-positive leverage degrades to a neutral result instead
// of an error.
func SimulateMarginByTrades(
	marketData []types.PriceBar,
	intents []types.TradeIntent,
	initialCapital decimal.Decimal,
	leverage decimal.Decimal,
	opts *Options,
) types.SimulationResult {
	startingCash := maxDecimal(decimal.Zero, initialCapital)

	if len(marketData) == 0 || !leverage.IsPositive() {
		return types.SimulationResult{
			Equity:      []types.EquityPoint{},
			Trades:      []types.ExecutedTrade{},
			MaxDrawdown: decimal.Zero,
			FinalValue:  startingCash,
		}
	}

	options := DefaultOptions()
	if opts != nil {
		options = *opts
	}

	s := &marginSimulator{
		bars:      sortBars(marketData),
		intents:   sortIntents(intents),
		leverage:  leverage,
		opts:      options.normalized(),
		cash:      startingCash,
		peakValue: startingCash,
		equity:    make([]types.EquityPoint, 0, len(marketData)),
		trades:    []types.ExecutedTrade{},
	}
	s.run()

	finalValue := s.cash
	maxDrawdown := decimal.Zero
	for _, point := range s.equity {
		if point.Drawdown.GreaterThan(maxDrawdown) {
			maxDrawdown = point.Drawdown
		}
	}
	if len(s.equity) > 0 {
		finalValue = s.equity[len(s.equity)-1].Value
	}

	return types.SimulationResult{
		Equity:                       s.equity,
		Trades:                       s.trades,
		MaxDrawdown:                  maxDrawdown,
		FinalValue:                   finalValue,
		PositionStopEvents:           s.stopEvents,
		MaintenanceLiquidationEvents: s.maintenanceEvents,
		LiquidationEvent:             s.liquidationEvent,
	}
}

func (s *marginSimulator) run() {
	for _, bar := range s.bars {
		if s.position == nil {
			s.tryOpen(bar)
		}

		if s.position != nil && !s.checkRiskTriggers(bar) {
			s.tryScheduledExit(bar)
		}

		s.recordEquity(bar)

		if s.halt {
			break
		}
	}
}

// tryOpen consumes at most one intent whose entry date matches the bar.
// Intents whose entry date has already passed are skipped for good: their
// matching bar went by while another position was open (or never existed).
func (s *marginSimulator) tryOpen(bar types.PriceBar) {
	for s.intentIdx < len(s.intents) && s.intents[s.intentIdx].EntryDate < bar.Date {
		s.intentIdx++
	}
	if s.intentIdx >= len(s.intents) || s.intents[s.intentIdx].EntryDate != bar.Date {
		return
	}

	intent := s.intents[s.intentIdx]
	s.intentIdx++

	if !intent.EntryPrice.IsPositive() {
		return
	}

	marginBudget := s.cash.Mul(s.opts.CapitalUsagePct).Div(hundred)
	desiredNotional := marginBudget.Mul(s.leverage)
	quantity := desiredNotional.Div(intent.EntryPrice).Floor()
	if !quantity.IsPositive() {
		// Not enough capital for a single unit. The intent is consumed
		// anyway and never retried.
		return
	}

	notional := quantity.Mul(intent.EntryPrice)
	marginUsed := notional.Div(s.leverage)
	s.cash = s.cash.Sub(marginUsed)
	s.position = &activePosition{
		intent:          intent,
		entryDate:       intent.EntryDate,
		entryPrice:      intent.EntryPrice,
		quantity:        quantity,
		marginUsed:      marginUsed,
		borrowed:        notional.Sub(marginUsed),
		plannedExitDate: intent.ExitDate,
	}
}

// checkRiskTriggers closes the position if the bar's low breaches the stop
// loss or maintenance margin threshold. Reports whether a trigger fired.
func (s *marginSimulator) checkRiskTriggers(bar types.PriceBar) bool {
	pos := s.position

	// A position cannot be stopped out on the bar it was opened.
	canLiquidate := bar.Date > pos.entryDate
	if !canLiquidate {
		return false
	}

	stopLossPrice := pos.entryPrice.Mul(hundred.Sub(s.opts.PositionStopLossPct)).Div(hundred)
	maintenancePrice := s.maintenancePrice(pos)

	hitStopLoss := bar.Low.LessThanOrEqual(stopLossPrice)
	hitMaintenance := bar.Low.LessThanOrEqual(maintenancePrice)
	if !hitStopLoss && !hitMaintenance {
		return false
	}

	// When both thresholds sit inside the same bar, the higher price is
	// breached first as price falls through the range.
	eventType := types.RiskPositionStopLoss
	triggerPrice := stopLossPrice
	if hitMaintenance && (!hitStopLoss || maintenancePrice.GreaterThanOrEqual(stopLossPrice)) {
		eventType = types.RiskMaintenanceMargin
		triggerPrice = maintenancePrice
	}

	s.closeForced(bar, eventType, triggerPrice)
	return true
}

// maintenancePrice derives the price at which position equity over notional
// would equal the maintenance margin ratio, clamped to [0, entryPrice]. A
// non-positive denominator means the threshold is unreachable from below, so
// the clamp to entryPrice applies immediately.
func (s *marginSimulator) maintenancePrice(pos *activePosition) decimal.Decimal {
	denominator := pos.quantity.Mul(hundred.Sub(s.opts.MaintenanceMarginPct)).Div(hundred)
	if !denominator.IsPositive() {
		return pos.entryPrice
	}
	raw := pos.borrowed.Div(denominator)
	return clampDecimal(raw, decimal.Zero, pos.entryPrice)
}

func (s *marginSimulator) closeForced(bar types.PriceBar, eventType types.RiskEventType, triggerPrice decimal.Decimal) {
	pos := s.position

	forcedExitPrice := maxDecimal(decimal.Zero, triggerPrice)
	proceeds := pos.quantity.Mul(forcedExitPrice)
	positionEquity := maxDecimal(decimal.Zero, proceeds.Sub(pos.borrowed))

	marginRatio := decimal.Zero
	if proceeds.IsPositive() {
		marginRatio = clampDecimal(positionEquity.Div(proceeds), decimal.Zero, decimal.NewFromInt(1))
	}
	positionDropPct := decimal.Zero
	if pos.entryPrice.IsPositive() {
		positionDropPct = pos.entryPrice.Sub(forcedExitPrice).Div(pos.entryPrice).Mul(hundred)
	}

	s.cash = s.cash.Add(positionEquity)

	exitReason := types.ExitReasonPositionStopLoss
	thresholdPct := s.opts.PositionStopLossPct
	if eventType == types.RiskMaintenanceMargin {
		exitReason = types.ExitReasonMarginLiquidation
		thresholdPct = s.opts.MaintenanceMarginPct
	}

	s.trades = append(s.trades, s.executedTrade(pos, bar.Date, forcedExitPrice, positionEquity, &types.LiquidationContext{
		Trigger:              eventType,
		StopLossPct:          s.opts.PositionStopLossPct,
		MaintenanceMarginPct: s.opts.MaintenanceMarginPct,
		MarginRatioAtTrigger: marginRatio,
	}, exitReason))

	event := types.PositionRiskEvent{
		Type:                 eventType,
		Date:                 bar.Date,
		TradeId:              pos.intent.Id,
		TriggerPrice:         forcedExitPrice,
		BarLow:               bar.Low,
		RemainingCapital:     s.cash,
		ThresholdPct:         thresholdPct,
		PositionDropPct:      positionDropPct,
		MarginRatioAtTrigger: marginRatio,
	}
	if eventType == types.RiskMaintenanceMargin {
		s.maintenanceEvents = append(s.maintenanceEvents, event)
		s.liquidationEvent = &event
		if s.opts.StopAfterMaintenanceLiquidation {
			s.halt = true
		}
	} else {
		s.stopEvents = append(s.stopEvents, event)
	}

	s.position = nil
}

// tryScheduledExit closes the position at the intent's predetermined exit
// price when the planned exit date is reached, regardless of the bar's range.
func (s *marginSimulator) tryScheduledExit(bar types.PriceBar) {
	pos := s.position
	if bar.Date != pos.plannedExitDate {
		return
	}

	exitPrice := pos.intent.ExitPrice
	proceeds := pos.quantity.Mul(exitPrice)
	positionEquity := maxDecimal(decimal.Zero, proceeds.Sub(pos.borrowed))
	s.cash = s.cash.Add(positionEquity)

	exitReason := pos.intent.ExitReason
	if exitReason == "" {
		exitReason = types.ExitReasonScheduled
	}

	s.trades = append(s.trades, s.executedTrade(pos, bar.Date, exitPrice, positionEquity, nil, exitReason))
	s.position = nil
}

func (s *marginSimulator) executedTrade(
	pos *activePosition,
	exitDate string,
	exitPrice decimal.Decimal,
	positionEquity decimal.Decimal,
	liquidation *types.LiquidationContext,
	exitReason types.ExitReason,
) types.ExecutedTrade {
	pnl := positionEquity.Sub(pos.marginUsed)
	pnlPercent := decimal.Zero
	if pos.marginUsed.IsPositive() {
		pnlPercent = pnl.Div(pos.marginUsed).Mul(hundred)
	}

	return types.ExecutedTrade{
		Id:         pos.intent.Id,
		EntryDate:  pos.entryDate,
		EntryPrice: pos.entryPrice,
		Quantity:   pos.quantity,
		ExitDate:   exitDate,
		ExitPrice:  exitPrice,
		PnL:        pnl,
		PnLPercent: pnlPercent,
		Duration:   calendar.DaysBetweenTradingDates(pos.entryDate, exitDate),
		ExitReason: exitReason,
		Context: types.TradeContext{
			Strategy:        pos.intent.Context,
			Leverage:        s.leverage,
			MarginUsed:      pos.marginUsed,
			Borrowed:        pos.borrowed,
			GrossInvestment: pos.quantity.Mul(pos.entryPrice),
			CashAfterExit:   s.cash,
			Liquidation:     liquidation,
		},
	}
}

func (s *marginSimulator) recordEquity(bar types.PriceBar) {
	totalValue := s.cash
	if s.position != nil {
		positionEquity := maxDecimal(decimal.Zero, s.position.quantity.Mul(bar.Close).Sub(s.position.borrowed))
		totalValue = totalValue.Add(positionEquity)
	}

	if totalValue.GreaterThan(s.peakValue) {
		s.peakValue = totalValue
	}
	drawdown := decimal.Zero
	if s.peakValue.IsPositive() {
		drawdown = s.peakValue.Sub(totalValue).Div(s.peakValue).Mul(hundred)
	}

	s.equity = append(s.equity, types.EquityPoint{
		Date:     bar.Date,
		Value:    totalValue,
		Drawdown: drawdown,
	})
}

func sortBars(marketData []types.PriceBar) []types.PriceBar {
	bars := append([]types.PriceBar(nil), marketData...)
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date < bars[j].Date })
	return bars
}

// sortIntents orders by entry date, then exit date. The sort is stable so
// true duplicates keep their relative input order.
func sortIntents(intents []types.TradeIntent) []types.TradeIntent {
	sorted := append([]types.TradeIntent(nil), intents...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].EntryDate != sorted[j].EntryDate {
			return sorted[i].EntryDate < sorted[j].EntryDate
		}
		return sorted[i].ExitDate < sorted[j].ExitDate
	})
	return sorted
}

func maxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
