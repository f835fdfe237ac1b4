package travel

import (
	"container/heap"
	"math"

	"github.com/talgya/starlanes/internal/world"
)

// Encounter chance shaping. Chance per day derives from lane hazard with
// a fixed tag table and the endpoints' security/crime metrics, clamped to
// keep even the worst lane survivable.
const (
	hazardChanceFactor = 0.1
	maxEncounterChance = 0.8

	patrolledModifier = -0.10
	lawlessModifier   = 0.10
	hazardousModifier = 0.05

	metricModifierScale = 0.05
)

// ShipProfile holds the ship parameters routing depends on.
type ShipProfile struct {
	Speed        float64 // distance covered per day
	Efficiency   float64 // fuel divisor; bigger engines burn less
	FuelRate     float64 // fuel per unit distance before efficiency
	TankCapacity int     // 0 means unlimited
}

// DefaultShipProfile returns the freighter baseline used by the CLI.
func DefaultShipProfile() ShipProfile {
	return ShipProfile{
		Speed:        4,
		Efficiency:   1,
		FuelRate:     1,
		TankCapacity: 0,
	}
}

// Planner computes routes over a sector graph for one ship.
type Planner struct {
	graph        *world.Graph
	ship         ShipProfile
	safetyWeight float64
}

// NewPlanner creates a planner. safetyWeight scales how strongly hazard
// repels the route: 0 is pure shortest distance, higher values detour
// around dangerous lanes without making them unreachable.
func NewPlanner(g *world.Graph, ship ShipProfile, safetyWeight float64) *Planner {
	return &Planner{graph: g, ship: ship, safetyWeight: safetyWeight}
}

// PlanRoute computes the hazard-averse shortest path from origin to
// destination and partitions it into costed segments. No path yields an
// invalid plan with reason no_route, not an error.
func (p *Planner) PlanRoute(origin, destination world.LocationID) *Plan {
	plan := &Plan{OriginID: origin, DestinationID: destination}

	if _, ok := p.graph.Location(origin); !ok {
		plan.Reason = ReasonNoRoute
		return plan
	}
	if _, ok := p.graph.Location(destination); !ok {
		plan.Reason = ReasonNoRoute
		return plan
	}

	lanes := p.shortestPath(origin, destination)
	if lanes == nil {
		plan.Reason = ReasonNoRoute
		return plan
	}

	at := origin
	for _, lane := range lanes {
		next := lane.Other(at)
		seg := p.buildSegment(at, next, lane)
		plan.Segments = append(plan.Segments, seg)
		plan.TotalFuel += seg.FuelCost
		plan.TotalDays += seg.TimeDays
		plan.TotalHazard += seg.HazardLevel
		at = next
	}

	if p.ship.TankCapacity > 0 && plan.TotalFuel > p.ship.TankCapacity {
		plan.Reason = ReasonFuelOverCapacity
		return plan
	}

	plan.Valid = true
	return plan
}

// laneWeight is the routing cost of one lane: distance plus a hazard
// penalty, so dangerous shortcuts are disfavored without being
// impossible.
func (p *Planner) laneWeight(lane *world.Lane) float64 {
	return lane.Distance + lane.Hazard*p.safetyWeight
}

type pathItem struct {
	id   world.LocationID
	cost float64
	seq  int // tie-break on insertion order for deterministic routing
}

type pathHeap []pathItem

func (h pathHeap) Len() int { return len(h) }
func (h pathHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].seq < h[j].seq
}
func (h pathHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *pathHeap) Push(x any)   { *h = append(*h, x.(pathItem)) }
func (h *pathHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// shortestPath runs Dijkstra over laneWeight and returns the lanes of the
// best path in travel order, or nil when destination is unreachable.
func (p *Planner) shortestPath(origin, destination world.LocationID) []*world.Lane {
	dist := map[world.LocationID]float64{origin: 0}
	prev := map[world.LocationID]*world.Lane{}
	done := map[world.LocationID]bool{}

	h := &pathHeap{{id: origin, cost: 0}}
	seq := 0

	for h.Len() > 0 {
		item := heap.Pop(h).(pathItem)
		if done[item.id] {
			continue
		}
		done[item.id] = true
		if item.id == destination {
			break
		}

		for _, lane := range p.graph.LanesFrom(item.id) {
			next := lane.Other(item.id)
			if done[next] {
				continue
			}
			cost := item.cost + p.laneWeight(lane)
			if old, seen := dist[next]; !seen || cost < old {
				dist[next] = cost
				prev[next] = lane
				seq++
				heap.Push(h, pathItem{id: next, cost: cost, seq: seq})
			}
		}
	}

	if !done[destination] {
		return nil
	}

	var lanes []*world.Lane
	for at := destination; at != origin; {
		lane := prev[at]
		lanes = append(lanes, lane)
		at = lane.Other(at)
	}
	// Reverse into travel order.
	for i, j := 0, len(lanes)-1; i < j; i, j = i+1, j-1 {
		lanes[i], lanes[j] = lanes[j], lanes[i]
	}
	return lanes
}

func (p *Planner) buildSegment(from, to world.LocationID, lane *world.Lane) Segment {
	fuel := int(math.Ceil(lane.Distance * p.ship.FuelRate / p.ship.Efficiency))
	days := int(math.Ceil(lane.Distance / p.ship.Speed))
	if days < 1 {
		days = 1
	}

	seg := Segment{
		FromID:      from,
		ToID:        to,
		Distance:    lane.Distance,
		FuelCost:    fuel,
		TimeDays:    days,
		HazardLevel: lane.Hazard,
	}
	seg.EncounterChance = p.encounterChance(lane, from, to)
	seg.SuggestedTag = suggestedTag(lane, p.graph, to)
	return seg
}

// encounterChance derives the per-day trigger probability from lane
// hazard, the fixed tag table, and the endpoints' security/crime levels.
func (p *Planner) encounterChance(lane *world.Lane, from, to world.LocationID) float64 {
	chance := lane.Hazard * hazardChanceFactor

	if lane.HasTag("patrolled") {
		chance += patrolledModifier
	}
	if lane.HasTag("lawless") {
		chance += lawlessModifier
	}
	if lane.HasTag("hazardous") {
		chance += hazardousModifier
	}

	for _, id := range []world.LocationID{from, to} {
		if loc, ok := p.graph.Location(id); ok {
			chance += (loc.Crime - loc.Security) * metricModifierScale
		}
	}

	return clamp(chance, 0, maxEncounterChance)
}

// suggestedTag maps the lane's character onto the encounter library's
// tag vocabulary, biasing which templates fire here.
func suggestedTag(lane *world.Lane, g *world.Graph, to world.LocationID) string {
	switch {
	case lane.HasTag("lawless"):
		return "danger"
	case lane.HasTag("patrolled"):
		return "authority"
	}
	if loc, ok := g.Location(to); ok && loc.HasTag("frontier") {
		return "frontier"
	}
	return "opportunity"
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
