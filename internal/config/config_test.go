package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "starlanes.db" {
		t.Errorf("DBPath = %s", cfg.DBPath)
	}
	if cfg.SectorSize != 24 || cfg.SafetyWeight != 2.0 {
		t.Errorf("sector defaults: size=%d weight=%v", cfg.SectorSize, cfg.SafetyWeight)
	}
	if cfg.StartingFuel != 100 {
		t.Errorf("StartingFuel = %d", cfg.StartingFuel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STARLANES_SEED", "987654")
	t.Setenv("STARLANES_SHIP_SPEED", "6.5")
	t.Setenv("STARLANES_SHIP_TANK", "40")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 987654 {
		t.Errorf("Seed = %d", cfg.Seed)
	}
	ship := cfg.Ship()
	if ship.Speed != 6.5 || ship.TankCapacity != 40 {
		t.Errorf("ship = %+v", ship)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("STARLANES_SECTOR_SIZE", "1")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "sector size") {
		t.Errorf("err = %v", err)
	}
}

func TestLoadRejectsNegativeSafetyWeight(t *testing.T) {
	t.Setenv("STARLANES_SAFETY_WEIGHT", "-1")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "safety weight") {
		t.Errorf("err = %v", err)
	}
}
