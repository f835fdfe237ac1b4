// Package travel plans and executes voyages across the sector graph:
// hazard-averse routing, day-by-day fuel and time accounting, and the
// pause/resume hand-off to the encounter subsystem.
package travel

import "github.com/talgya/starlanes/internal/world"

// PlanReason codes why a plan is invalid. Planning failures are values,
// never errors.
type PlanReason string

const (
	ReasonNone             PlanReason = ""
	ReasonNoRoute          PlanReason = "no_route"
	ReasonFuelOverCapacity PlanReason = "fuel_over_capacity"
)

// Segment is one hop of a plan. Immutable once planned.
type Segment struct {
	FromID          world.LocationID `json:"from_id"`
	ToID            world.LocationID `json:"to_id"`
	Distance        float64          `json:"distance"`
	FuelCost        int              `json:"fuel_cost"`
	TimeDays        int              `json:"time_days"`
	HazardLevel     float64          `json:"hazard_level"`
	EncounterChance float64          `json:"encounter_chance"`
	SuggestedTag    string           `json:"suggested_tag,omitempty"`
}

// DayFuel returns the fuel share for a zero-based day within the
// segment. Shares divide evenly; the final day takes the integer
// remainder, so the shares always sum to FuelCost exactly.
func (s *Segment) DayFuel(day int) int {
	share := s.FuelCost / s.TimeDays
	if day == s.TimeDays-1 {
		return s.FuelCost - share*(s.TimeDays-1)
	}
	return share
}

// Plan is a full multi-hop route with aggregate costs. Created by the
// Planner; read-only thereafter.
type Plan struct {
	OriginID      world.LocationID `json:"origin_id"`
	DestinationID world.LocationID `json:"destination_id"`
	Segments      []Segment        `json:"segments,omitempty"`
	TotalFuel     int              `json:"total_fuel"`
	TotalDays     int              `json:"total_days"`
	TotalHazard   float64          `json:"total_hazard"`
	Valid         bool             `json:"valid"`
	Reason        PlanReason       `json:"reason,omitempty"`
}
