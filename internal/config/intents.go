package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"marginsim/types"
)

// LoadIntents reads the trade intents produced by the strategy evaluator.
// The file is a JSON array of intents; each entry needs an id, parseable
// entry/exit dates in order, and a positive entry price.
func LoadIntents(path string) ([]types.TradeIntent, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read intents file: %w", err)
	}

	var intents []types.TradeIntent
	if err := json.Unmarshal(b, &intents); err != nil {
		return nil, fmt.Errorf("parse intents file: %w", err)
	}

	for i, intent := range intents {
		if intent.Id == "" {
			return nil, fmt.Errorf("intent %d: missing id", i)
		}
		if _, err := time.Parse(dateLayout, intent.EntryDate); err != nil {
			return nil, fmt.Errorf("intent %s: invalid entry date %q", intent.Id, intent.EntryDate)
		}
		if _, err := time.Parse(dateLayout, intent.ExitDate); err != nil {
			return nil, fmt.Errorf("intent %s: invalid exit date %q", intent.Id, intent.ExitDate)
		}
		if intent.ExitDate < intent.EntryDate {
			return nil, fmt.Errorf("intent %s: exit date %s before entry date %s", intent.Id, intent.ExitDate, intent.EntryDate)
		}
		if !intent.EntryPrice.IsPositive() {
			return nil, fmt.Errorf("intent %s: entry price must be positive, got %s", intent.Id, intent.EntryPrice)
		}
	}
	return intents, nil
}
