// Sector generation using layered simplex noise.
// Scatters locations on a plane, derives security/crime metrics and lane
// hazard from independent noise layers, then links near neighbors.
package world

import (
	"fmt"
	"math"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds sector generation parameters.
type GenConfig struct {
	Count      int     // Number of locations
	Seed       int64   // Noise and layout seed
	LaneDegree int     // Lanes added per location (nearest neighbors)
	SpanScale  float64 // Plane side length; distances derive from it
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Count:      24,
		Seed:       0,
		LaneDegree: 3,
		SpanScale:  40,
	}
}

// SmallTestConfig returns a tiny sector for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Count:      6,
		Seed:       42,
		LaneDegree: 2,
		SpanScale:  12,
	}
}

var nameRoots = []string{
	"Kessel", "Varda", "Oberon", "Talos", "Merope", "Cygnus",
	"Halcyon", "Drax", "Perrin", "Ilium", "Sable", "Thessaly",
	"Vanguard", "Corvid", "Lyra", "Nocturne", "Arden", "Vesper",
	"Calder", "Ophir", "Rimward", "Sparrow", "Tantalus", "Umber",
}

var nameSuffixes = []string{
	"Station", "Reach", "Anchorage", "Gate", "Hold", "Spire",
	"Drift", "Landing", "Verge", "Post",
}

var factionNames = []string{
	"Concord Authority", "Free Haulers", "Meridian Combine", "Red Ledger",
}

// Generate creates a connected sector graph from a seed. The same config
// always produces the same graph.
func Generate(cfg GenConfig) *Graph {
	// Independent noise layers per metric, offset-seeded the same way the
	// terrain layers were.
	secNoise := opensimplex.NewNormalized(cfg.Seed)
	crimeNoise := opensimplex.NewNormalized(cfg.Seed + 1)
	hazNoise := opensimplex.NewNormalized(cfg.Seed + 2)
	posNoise := opensimplex.NewNormalized(cfg.Seed + 3)

	g := NewGraph()

	type point struct {
		id   LocationID
		x, y float64
	}
	points := make([]point, 0, cfg.Count)

	for i := 0; i < cfg.Count; i++ {
		fi := float64(i)
		// Jittered grid layout keeps locations spread without clumping.
		cols := int(math.Ceil(math.Sqrt(float64(cfg.Count))))
		col := i % cols
		row := i / cols
		cell := cfg.SpanScale / float64(cols)
		x := float64(col)*cell + posNoise.Eval2(fi*0.7, 0)*cell*0.8
		y := float64(row)*cell + posNoise.Eval2(0, fi*0.7)*cell*0.8

		sec := secNoise.Eval2(x*0.13, y*0.13)
		crime := crimeNoise.Eval2(x*0.13, y*0.13)

		loc := &Location{
			ID:       LocationID(fmt.Sprintf("loc-%02d", i)),
			Name:     locationName(i),
			Security: sec,
			Crime:    crime,
			Faction:  factionNames[i%len(factionNames)],
		}
		loc.Tags = deriveTags(sec, crime)
		g.AddLocation(loc)
		points = append(points, point{id: loc.ID, x: x, y: y})
	}

	// Link each location to its nearest neighbors. Duplicate pairs are
	// skipped so a lane appears once regardless of which end found it.
	linked := make(map[string]bool)
	for i, p := range points {
		type cand struct {
			j    int
			dist float64
		}
		cands := make([]cand, 0, len(points)-1)
		for j, q := range points {
			if i == j {
				continue
			}
			d := math.Hypot(p.x-q.x, p.y-q.y)
			cands = append(cands, cand{j: j, dist: d})
		}
		sort.Slice(cands, func(a, b int) bool { return cands[a].dist < cands[b].dist })

		degree := cfg.LaneDegree
		if degree > len(cands) {
			degree = len(cands)
		}
		for _, c := range cands[:degree] {
			q := points[c.j]
			key := laneKey(p.id, q.id)
			if linked[key] {
				continue
			}
			linked[key] = true

			mx, my := (p.x+q.x)/2, (p.y+q.y)/2
			haz := hazNoise.Eval2(mx*0.11, my*0.11) * 10
			lane := &Lane{
				From:     p.id,
				To:       q.id,
				Distance: math.Max(1, c.dist),
				Hazard:   haz,
			}
			lane.Tags = deriveLaneTags(g, lane)
			g.AddLane(lane)
		}
	}

	// Nearest-neighbor linking can strand clusters. Bridge components with
	// the shortest available cross-component lane until the sector is one
	// piece; the pair scan is index-ordered, so ties resolve the same way
	// for the same config.
	for {
		comp := components(g)
		bi, bj := -1, -1
		best := math.MaxFloat64
		for i, p := range points {
			for j := i + 1; j < len(points); j++ {
				q := points[j]
				if comp[p.id] == comp[q.id] {
					continue
				}
				if d := math.Hypot(p.x-q.x, p.y-q.y); d < best {
					bi, bj, best = i, j, d
				}
			}
		}
		if bi < 0 {
			break
		}

		p, q := points[bi], points[bj]
		mx, my := (p.x+q.x)/2, (p.y+q.y)/2
		lane := &Lane{
			From:     p.id,
			To:       q.id,
			Distance: math.Max(1, best),
			Hazard:   hazNoise.Eval2(mx*0.11, my*0.11) * 10,
		}
		lane.Tags = deriveLaneTags(g, lane)
		g.AddLane(lane)
	}

	return g
}

// components labels every location with a connected-component index,
// assigned in insertion order.
func components(g *Graph) map[LocationID]int {
	comp := make(map[LocationID]int, g.Size())
	next := 0
	for _, loc := range g.Locations() {
		if _, seen := comp[loc.ID]; seen {
			continue
		}
		queue := []LocationID{loc.ID}
		comp[loc.ID] = next
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, lane := range g.LanesFrom(cur) {
				other := lane.Other(cur)
				if _, seen := comp[other]; !seen {
					comp[other] = next
					queue = append(queue, other)
				}
			}
		}
		next++
	}
	return comp
}

func locationName(i int) string {
	root := nameRoots[i%len(nameRoots)]
	suffix := nameSuffixes[(i/len(nameRoots))%len(nameSuffixes)]
	return root + " " + suffix
}

func laneKey(a, b LocationID) string {
	if a > b {
		a, b = b, a
	}
	return string(a) + "|" + string(b)
}

func deriveTags(security, crime float64) []string {
	var tags []string
	if security > 0.65 {
		tags = append(tags, "patrolled")
	}
	if security < 0.25 {
		tags = append(tags, "frontier")
	}
	if crime > 0.65 {
		tags = append(tags, "lawless")
	}
	if crime > 0.5 && security < 0.4 {
		tags = append(tags, "smuggler_haven")
	}
	return tags
}

// deriveLaneTags projects endpoint character onto the lane. A lane between
// two patrolled locations is patrolled; one touching a lawless location
// is lawless.
func deriveLaneTags(g *Graph, lane *Lane) []string {
	from, _ := g.Location(lane.From)
	to, _ := g.Location(lane.To)
	if from == nil || to == nil {
		return nil
	}
	var tags []string
	if from.HasTag("patrolled") && to.HasTag("patrolled") {
		tags = append(tags, "patrolled")
	}
	if from.HasTag("lawless") || to.HasTag("lawless") {
		tags = append(tags, "lawless")
	}
	if lane.Hazard > 7 {
		tags = append(tags, "hazardous")
	}
	return tags
}
