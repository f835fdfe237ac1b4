// Package campaign holds the live, mutable campaign state the travel and
// encounter subsystems read snapshots of, and the consequence applier
// that commits drained effect ledgers back into it.
package campaign

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/starlanes/internal/encounter"
	"github.com/talgya/starlanes/internal/travel"
	"github.com/talgya/starlanes/internal/world"
)

// State is the live side of the travel executor's world window.
var _ travel.WorldAccess = (*State)(nil)

// ResourceFuel is the pool the travel executor draws from.
const ResourceFuel = "fuel"

// CrewMember is one live roster entry.
type CrewMember struct {
	ID     string                 `json:"id"`
	Name   string                 `json:"name"`
	Role   string                 `json:"role"`
	Stats  map[encounter.Stat]int `json:"stats"`
	Traits []string               `json:"traits,omitempty"`
	Injury int                    `json:"injury"` // accumulated severity
	XP     int                    `json:"xp"`
}

// HasTrait reports whether the member carries the trait.
func (c *CrewMember) HasTrait(trait string) bool {
	for _, t := range c.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

// CargoItem is one hold entry.
type CargoItem struct {
	Item      string `json:"item"`
	Quantity  int    `json:"quantity"`
	UnitValue int    `json:"unit_value"`
	Legal     bool   `json:"legal"`
}

// State is the authoritative campaign record. Mutated only by the travel
// executor (through WorldAccess) and by the Applier between pause points.
type State struct {
	Day        int              `json:"day"`
	Location   world.LocationID `json:"location"`
	Resources  map[string]int   `json:"resources"`
	Crew       []*CrewMember    `json:"crew"`
	FactionRep map[string]int   `json:"faction_rep"`
	Flags      map[string]bool  `json:"flags"`
	Hull       int              `json:"hull"`
	Cargo      []*CargoItem     `json:"cargo"`
}

// NewState creates a campaign positioned at start with empty pools.
func NewState(start world.LocationID) *State {
	return &State{
		Location:   start,
		Resources:  make(map[string]int),
		FactionRep: make(map[string]int),
		Flags:      make(map[string]bool),
		Hull:       100,
	}
}

// Fuel returns the current fuel pool.
func (s *State) Fuel() int { return s.Resources[ResourceFuel] }

// SpendFuel deducts from the fuel pool.
func (s *State) SpendFuel(amount int) { s.Resources[ResourceFuel] -= amount }

// AdvanceClock moves the campaign clock forward.
func (s *State) AdvanceClock(days int) { s.Day += days }

// CurrentDay returns the campaign clock.
func (s *State) CurrentDay() int { return s.Day }

// SetLocation moves the ship.
func (s *State) SetLocation(id world.LocationID) { s.Location = id }

// CargoValue returns the total value of the hold.
func (s *State) CargoValue() int {
	total := 0
	for _, c := range s.Cargo {
		total += c.Quantity * c.UnitValue
	}
	return total
}

// CargoLegal reports whether every hold entry is legal.
func (s *State) CargoLegal() bool {
	for _, c := range s.Cargo {
		if !c.Legal {
			return false
		}
	}
	return true
}

// Snapshot freezes the campaign-side inputs of an encounter context. The
// travel executor fills in route fields before sealing it.
func (s *State) Snapshot() encounter.ContextParams {
	crew := make([]encounter.CrewSnapshot, len(s.Crew))
	for i, c := range s.Crew {
		crew[i] = encounter.CrewSnapshot{
			ID:     c.ID,
			Name:   c.Name,
			Role:   c.Role,
			Stats:  c.Stats,
			Traits: c.Traits,
		}
	}
	return encounter.ContextParams{
		Day:        s.Day,
		Resources:  s.Resources,
		Crew:       crew,
		FactionRep: s.FactionRep,
		Flags:      s.Flags,
		CargoValue: s.CargoValue(),
		CargoLegal: s.CargoLegal(),
	}
}

// CrewByID returns the roster entry for id, if present.
func (s *State) CrewByID(id string) (*CrewMember, bool) {
	for _, c := range s.Crew {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// AddCrew appends a roster entry with a fresh id.
func (s *State) AddCrew(name, role string) *CrewMember {
	member := &CrewMember{
		ID:    uuid.NewString(),
		Name:  name,
		Role:  role,
		Stats: make(map[encounter.Stat]int),
	}
	s.Crew = append(s.Crew, member)
	return member
}

// AddCargo merges quantity into an existing hold entry or appends one.
func (s *State) AddCargo(item string, quantity, unitValue int, legal bool) {
	for _, c := range s.Cargo {
		if c.Item == item {
			c.Quantity += quantity
			return
		}
	}
	s.Cargo = append(s.Cargo, &CargoItem{Item: item, Quantity: quantity, UnitValue: unitValue, Legal: legal})
}

// RemoveCargo takes up to quantity of an item out of the hold, dropping
// emptied entries. Returns the quantity actually removed.
func (s *State) RemoveCargo(item string, quantity int) int {
	for i, c := range s.Cargo {
		if c.Item != item {
			continue
		}
		removed := quantity
		if removed > c.Quantity {
			removed = c.Quantity
		}
		c.Quantity -= removed
		if c.Quantity == 0 {
			s.Cargo = append(s.Cargo[:i], s.Cargo[i+1:]...)
		}
		return removed
	}
	return 0
}

// String summarizes the campaign for logs.
func (s *State) String() string {
	return fmt.Sprintf("day %d at %s, fuel %d, hull %d, crew %d",
		s.Day, s.Location, s.Fuel(), s.Hull, len(s.Crew))
}
