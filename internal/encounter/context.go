package encounter

// CrewSnapshot is one roster entry frozen into a Context.
type CrewSnapshot struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Role   string       `json:"role"`
	Stats  map[Stat]int `json:"stats"`
	Traits []string     `json:"traits,omitempty"`
}

// HasTrait reports whether the crew member carries the trait.
func (c *CrewSnapshot) HasTrait(trait string) bool {
	for _, t := range c.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

// Stat returns the crew member's value for a stat (zero if untrained).
func (c *CrewSnapshot) Stat(s Stat) int {
	return c.Stats[s]
}

// Context is an immutable snapshot of campaign state taken when an
// encounter triggers. Conditions and skill checks read only from it, so
// mutating the live world mid-encounter never changes their results.
// Construct with NewContext; never modify after construction.
type Context struct {
	Day int

	resources  map[string]int
	crew       []CrewSnapshot
	factionRep map[string]int
	flags      map[string]bool

	currentLocation string
	destination     string
	locationTags    []string
	routeTags       []string
	routeHazard     float64
	cargoValue      int
	cargoLegal      bool
	owningFaction   string
}

// ContextParams carries the inputs NewContext freezes. Maps and slices
// are copied; callers may reuse theirs afterward.
type ContextParams struct {
	Day             int
	Resources       map[string]int
	Crew            []CrewSnapshot
	FactionRep      map[string]int
	Flags           map[string]bool
	CurrentLocation string
	Destination     string
	LocationTags    []string
	RouteTags       []string
	RouteHazard     float64
	CargoValue      int
	CargoLegal      bool
	OwningFaction   string
}

// NewContext freezes a snapshot for condition and skill-check evaluation.
func NewContext(p ContextParams) *Context {
	ctx := &Context{
		Day:             p.Day,
		resources:       make(map[string]int, len(p.Resources)),
		crew:            make([]CrewSnapshot, len(p.Crew)),
		factionRep:      make(map[string]int, len(p.FactionRep)),
		flags:           make(map[string]bool, len(p.Flags)),
		currentLocation: p.CurrentLocation,
		destination:     p.Destination,
		locationTags:    append([]string(nil), p.LocationTags...),
		routeTags:       append([]string(nil), p.RouteTags...),
		routeHazard:     p.RouteHazard,
		cargoValue:      p.CargoValue,
		cargoLegal:      p.CargoLegal,
		owningFaction:   p.OwningFaction,
	}
	for k, v := range p.Resources {
		ctx.resources[k] = v
	}
	for k, v := range p.FactionRep {
		ctx.factionRep[k] = v
	}
	for k, v := range p.Flags {
		ctx.flags[k] = v
	}
	for i, c := range p.Crew {
		frozen := CrewSnapshot{
			ID:     c.ID,
			Name:   c.Name,
			Role:   c.Role,
			Stats:  make(map[Stat]int, len(c.Stats)),
			Traits: append([]string(nil), c.Traits...),
		}
		for s, v := range c.Stats {
			frozen.Stats[s] = v
		}
		ctx.crew[i] = frozen
	}
	return ctx
}

// Resource returns the level of a named resource pool.
func (ctx *Context) Resource(name string) int {
	return ctx.resources[name]
}

// Crew returns the frozen roster in its original order.
func (ctx *Context) Crew() []CrewSnapshot {
	return ctx.crew
}

// HasCrewWithTrait reports whether any crew member carries the trait.
func (ctx *Context) HasCrewTrait(trait string) bool {
	for i := range ctx.crew {
		if ctx.crew[i].HasTrait(trait) {
			return true
		}
	}
	return false
}

// FactionRep returns standing with a faction (zero if unknown).
func (ctx *Context) FactionRep(faction string) int {
	return ctx.factionRep[faction]
}

// HasFlag reports whether a campaign flag is set.
func (ctx *Context) HasFlag(flag string) bool {
	return ctx.flags[flag]
}

// BestCrewStat returns the highest value for a stat across the roster.
func (ctx *Context) BestCrewStat(s Stat) int {
	best := 0
	for i := range ctx.crew {
		if v := ctx.crew[i].Stat(s); v > best {
			best = v
		}
	}
	return best
}

// CurrentLocation returns the location the encounter fired at.
func (ctx *Context) CurrentLocation() string { return ctx.currentLocation }

// Destination returns the voyage's destination location.
func (ctx *Context) Destination() string { return ctx.destination }

// LocationHasTag checks both location and route tags; conditions authored
// against either work when the encounter fires mid-lane.
func (ctx *Context) LocationHasTag(tag string) bool {
	for _, t := range ctx.locationTags {
		if t == tag {
			return true
		}
	}
	for _, t := range ctx.routeTags {
		if t == tag {
			return true
		}
	}
	return false
}

// RouteHazard returns the hazard level of the active segment.
func (ctx *Context) RouteHazard() float64 { return ctx.routeHazard }

// CargoValue returns the total value of the hold.
func (ctx *Context) CargoValue() int { return ctx.cargoValue }

// CargoLegal reports whether the manifest is clean.
func (ctx *Context) CargoLegal() bool { return ctx.cargoLegal }

// OwningFaction returns the faction claiming the current location.
func (ctx *Context) OwningFaction() string { return ctx.owningFaction }
