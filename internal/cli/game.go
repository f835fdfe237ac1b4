package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/talgya/starlanes/internal/campaign"
	"github.com/talgya/starlanes/internal/config"
	"github.com/talgya/starlanes/internal/content"
	"github.com/talgya/starlanes/internal/encounter"
	"github.com/talgya/starlanes/internal/persistence"
	"github.com/talgya/starlanes/internal/rng"
	"github.com/talgya/starlanes/internal/travel"
	"github.com/talgya/starlanes/internal/world"
)

// game bundles everything a command needs to run: the sector, the
// content registry, the campaign record and the session store.
type game struct {
	cfg   *config.Config
	db    *persistence.DB
	seed  int64
	graph *world.Graph
	reg   *encounter.Registry
	camp  *campaign.State
}

// openGame opens the store, pins the sector seed, generates the sector
// and loads or starts the campaign. The seed persists in the store's
// meta table so every later run regenerates the same sector.
func openGame(cfg *config.Config) (*game, error) {
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	seed, err := resolveSeed(db, cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	genCfg := world.DefaultGenConfig()
	genCfg.Count = cfg.SectorSize
	genCfg.Seed = seed
	graph := world.Generate(genCfg)

	reg := encounter.NewRegistry()
	if err := content.Register(reg); err != nil {
		db.Close()
		return nil, err
	}

	camp, err := db.LoadCampaign()
	if errors.Is(err, persistence.ErrNotFound) {
		camp = newCampaign(cfg, graph)
	} else if err != nil {
		db.Close()
		return nil, err
	}

	return &game{cfg: cfg, db: db, seed: seed, graph: graph, reg: reg, camp: camp}, nil
}

func (g *game) close() {
	g.db.Close()
}

// planner returns a route planner for the configured ship.
func (g *game) planner() *travel.Planner {
	return travel.NewPlanner(g.graph, g.cfg.Ship(), g.cfg.SafetyWeight)
}

func resolveSeed(db *persistence.DB, cfg *config.Config) (int64, error) {
	stored, err := db.GetMeta("sector_seed")
	if err == nil {
		return strconv.ParseInt(stored, 10, 64)
	}
	if !errors.Is(err, persistence.ErrNotFound) {
		return 0, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed, err = rng.NewSeed()
		if err != nil {
			return 0, err
		}
	}
	if err := db.SaveMeta("sector_seed", strconv.FormatInt(seed, 10)); err != nil {
		return 0, err
	}
	return seed, nil
}

// newCampaign starts a fresh campaign at the first generated location
// with a standard three-hand crew.
func newCampaign(cfg *config.Config, graph *world.Graph) *campaign.State {
	locs := graph.Locations()
	start := world.LocationID("")
	if len(locs) > 0 {
		start = locs[0].ID
	}

	camp := campaign.NewState(start)
	camp.Resources[campaign.ResourceFuel] = cfg.StartingFuel
	camp.Resources["credits"] = 200

	pilot := camp.AddCrew("Vasquez", "pilot")
	pilot.Stats[encounter.StatPiloting] = 4
	pilot.Stats[encounter.StatSavvy] = 2
	pilot.Traits = []string{"ace_pilot"}

	gunner := camp.AddCrew("Okonkwo", "gunner")
	gunner.Stats[encounter.StatGunnery] = 4
	gunner.Stats[encounter.StatGrit] = 3
	gunner.Traits = []string{"veteran"}

	engineer := camp.AddCrew("Tam", "engineer")
	engineer.Stats[encounter.StatEngineering] = 4
	engineer.Stats[encounter.StatSavvy] = 3

	return camp
}

// resolveLocation accepts either an exact id or a case-insensitive
// name prefix.
func (g *game) resolveLocation(arg string) (*world.Location, error) {
	if loc, ok := g.graph.Location(world.LocationID(arg)); ok {
		return loc, nil
	}
	var match *world.Location
	for _, loc := range g.graph.Locations() {
		if hasPrefixFold(loc.Name, arg) {
			if match != nil {
				return nil, fmt.Errorf("location %q is ambiguous", arg)
			}
			match = loc
		}
	}
	if match == nil {
		return nil, fmt.Errorf("unknown location %q", arg)
	}
	return match, nil
}

func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		a, b := s[i], prefix[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}

// encounterContext rebuilds the frozen context for a restored session:
// campaign-side fields from the live state, travel-side fields from the
// paused cursor's current segment.
func (g *game) encounterContext(state *travel.State) *encounter.Context {
	params := g.camp.Snapshot()
	params.CurrentLocation = string(state.CurrentLocation)
	params.Destination = string(state.Plan.DestinationID)

	if seg := state.CurrentSegment(); seg != nil {
		params.RouteHazard = seg.HazardLevel
		for _, lane := range g.graph.LanesFrom(seg.FromID) {
			if lane.Other(seg.FromID) == seg.ToID {
				params.RouteTags = lane.Tags
				break
			}
		}
	}
	if loc, ok := g.graph.Location(state.CurrentLocation); ok {
		params.LocationTags = loc.Tags
		params.OwningFaction = loc.Faction
	}
	return encounter.NewContext(params)
}
