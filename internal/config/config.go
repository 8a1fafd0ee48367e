package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

type Scenario struct {
	Name     string  `yaml:"name"`
	Leverage float64 `yaml:"leverage"`
}

type Config struct {
	DatabaseURL    string     `yaml:"database_url"`
	Ticker         string     `yaml:"ticker"`
	Start          string     `yaml:"start"`
	End            string     `yaml:"end"`
	InitialCapital float64    `yaml:"initial_capital"`
	IntentsFile    string     `yaml:"intents_file"`
	ReportDir      string     `yaml:"report_dir"`
	Scenarios      []Scenario `yaml:"scenarios"`
	Risk           struct {
		PositionStopLossPct             float64 `yaml:"position_stop_loss_pct"`
		MaintenanceMarginPct            float64 `yaml:"maintenance_margin_pct"`
		StopAfterMaintenanceLiquidation bool    `yaml:"stop_after_maintenance_liquidation"`
		CapitalUsagePct                 float64 `yaml:"capital_usage_pct"`
	} `yaml:"risk"`
}

func (c *Config) Validate() error {
	if c.Ticker == "" {
		return errors.New("ticker cannot be empty")
	}
	if _, err := time.Parse(dateLayout, c.Start); err != nil {
		return fmt.Errorf("invalid start date %q: must be YYYY-MM-DD", c.Start)
	}
	if _, err := time.Parse(dateLayout, c.End); err != nil {
		return fmt.Errorf("invalid end date %q: must be YYYY-MM-DD", c.End)
	}
	if c.End < c.Start {
		return fmt.Errorf("end date %s is before start date %s", c.End, c.Start)
	}
	if c.InitialCapital <= 0 {
		return fmt.Errorf("initial_capital must be positive, got %.2f", c.InitialCapital)
	}
	if c.IntentsFile == "" {
		return errors.New("intents_file cannot be empty")
	}
	for _, s := range c.Scenarios {
		if s.Leverage <= 0 {
			return fmt.Errorf("scenario %q: leverage must be positive, got %.2f", s.Name, s.Leverage)
		}
	}
	return nil
}

// Window returns the configured simulation date range. Call Validate first.
func (c *Config) Window() (time.Time, time.Time) {
	start, _ := time.Parse(dateLayout, c.Start)
	end, _ := time.Parse(dateLayout, c.End)
	return start, end
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.InitialCapital == 0 {
		c.InitialCapital = 10000
	}
	if c.Risk.PositionStopLossPct == 0 {
		c.Risk.PositionStopLossPct = 20
	}
	if c.Risk.MaintenanceMarginPct == 0 {
		c.Risk.MaintenanceMarginPct = 25
	}
	if c.Risk.CapitalUsagePct == 0 {
		c.Risk.CapitalUsagePct = 100
	}
	if len(c.Scenarios) == 0 {
		c.Scenarios = []Scenario{{Name: "unleveraged", Leverage: 1}}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
