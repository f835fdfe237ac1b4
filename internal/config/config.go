// Package config loads runtime settings from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/talgya/starlanes/internal/travel"
)

// Config holds the settings shared by all starlanes commands. Every
// field has a sensible default so a bare invocation works out of the box.
type Config struct {
	DBPath string `env:"STARLANES_DB_PATH" envDefault:"starlanes.db"`
	Seed   int64  `env:"STARLANES_SEED" envDefault:"0"` // 0 means pick a fresh seed

	SectorSize   int     `env:"STARLANES_SECTOR_SIZE" envDefault:"24"`
	SafetyWeight float64 `env:"STARLANES_SAFETY_WEIGHT" envDefault:"2.0"`

	ShipSpeed      float64 `env:"STARLANES_SHIP_SPEED" envDefault:"4"`
	ShipEfficiency float64 `env:"STARLANES_SHIP_EFFICIENCY" envDefault:"1"`
	ShipFuelRate   float64 `env:"STARLANES_SHIP_FUEL_RATE" envDefault:"1"`
	ShipTank       int     `env:"STARLANES_SHIP_TANK" envDefault:"0"` // 0 means unlimited

	StartingFuel int    `env:"STARLANES_STARTING_FUEL" envDefault:"100"`
	LogLevel     string `env:"STARLANES_LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SectorSize < 2 {
		return nil, fmt.Errorf("sector size %d too small", cfg.SectorSize)
	}
	if cfg.SafetyWeight < 0 {
		return nil, fmt.Errorf("safety weight %v must not be negative", cfg.SafetyWeight)
	}
	return &cfg, nil
}

// Ship builds the planner profile from the configured parameters.
func (c *Config) Ship() travel.ShipProfile {
	return travel.ShipProfile{
		Speed:        c.ShipSpeed,
		Efficiency:   c.ShipEfficiency,
		FuelRate:     c.ShipFuelRate,
		TankCapacity: c.ShipTank,
	}
}
