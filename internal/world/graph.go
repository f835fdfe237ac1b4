// Package world models the sector: a graph of locations joined by travel
// lanes, with per-location security and crime metrics and per-lane hazard.
package world

// LocationID uniquely identifies a location in the sector.
type LocationID string

// Location is one node in the sector graph.
type Location struct {
	ID       LocationID `json:"id"`
	Name     string     `json:"name"`
	Tags     []string   `json:"tags,omitempty"`
	Security float64    `json:"security"` // 0–1, patrol presence
	Crime    float64    `json:"crime"`    // 0–1, local lawlessness
	Faction  string     `json:"faction,omitempty"`
}

// HasTag reports whether the location carries the given tag.
func (l *Location) HasTag(tag string) bool {
	for _, t := range l.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Lane is one traversable edge. Lanes are bidirectional; a Lane value
// stores the endpoints in authored order.
type Lane struct {
	From     LocationID `json:"from"`
	To       LocationID `json:"to"`
	Distance float64    `json:"distance"`
	Hazard   float64    `json:"hazard"` // 0–10
	Tags     []string   `json:"tags,omitempty"`
}

// HasTag reports whether the lane carries the given tag.
func (l *Lane) HasTag(tag string) bool {
	for _, t := range l.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Graph holds the sector topology. Build with NewGraph, AddLocation and
// AddLane; read-only once travel planning begins.
type Graph struct {
	locations map[LocationID]*Location
	adjacency map[LocationID][]*Lane
	lanes     []*Lane
	order     []LocationID // insertion order, for deterministic iteration
}

// NewGraph creates an empty sector graph.
func NewGraph() *Graph {
	return &Graph{
		locations: make(map[LocationID]*Location),
		adjacency: make(map[LocationID][]*Lane),
	}
}

// AddLocation inserts a location. Re-adding an id replaces the entry but
// keeps its original iteration position.
func (g *Graph) AddLocation(loc *Location) {
	if _, exists := g.locations[loc.ID]; !exists {
		g.order = append(g.order, loc.ID)
	}
	g.locations[loc.ID] = loc
}

// AddLane inserts a bidirectional lane between two existing locations.
func (g *Graph) AddLane(lane *Lane) {
	g.lanes = append(g.lanes, lane)
	g.adjacency[lane.From] = append(g.adjacency[lane.From], lane)
	g.adjacency[lane.To] = append(g.adjacency[lane.To], lane)
}

// Location returns the location for id, if present.
func (g *Graph) Location(id LocationID) (*Location, bool) {
	loc, ok := g.locations[id]
	return loc, ok
}

// LanesFrom returns every lane touching id, in insertion order.
func (g *Graph) LanesFrom(id LocationID) []*Lane {
	return g.adjacency[id]
}

// Locations returns all locations in insertion order.
func (g *Graph) Locations() []*Location {
	out := make([]*Location, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.locations[id])
	}
	return out
}

// Lanes returns all lanes in insertion order.
func (g *Graph) Lanes() []*Lane {
	return g.lanes
}

// Size returns the number of locations.
func (g *Graph) Size() int {
	return len(g.locations)
}

// Other returns the far endpoint of a lane relative to from.
func (l *Lane) Other(from LocationID) LocationID {
	if l.From == from {
		return l.To
	}
	return l.From
}
