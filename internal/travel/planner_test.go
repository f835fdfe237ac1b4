package travel

import (
	"testing"

	"github.com/talgya/starlanes/internal/world"
)

// testGraph: a short dangerous lane a-b and a longer safe detour a-c-b.
func testGraph() *world.Graph {
	g := world.NewGraph()
	g.AddLocation(&world.Location{ID: "a", Name: "Alpha", Security: 0.5, Crime: 0.5})
	g.AddLocation(&world.Location{ID: "b", Name: "Beta", Security: 0.5, Crime: 0.5})
	g.AddLocation(&world.Location{ID: "c", Name: "Gamma", Security: 0.5, Crime: 0.5})
	g.AddLane(&world.Lane{From: "a", To: "b", Distance: 10, Hazard: 9, Tags: []string{"lawless"}})
	g.AddLane(&world.Lane{From: "a", To: "c", Distance: 7, Hazard: 1})
	g.AddLane(&world.Lane{From: "c", To: "b", Distance: 7, Hazard: 1})
	return g
}

func TestPlanPrefersSafeDetour(t *testing.T) {
	p := NewPlanner(testGraph(), DefaultShipProfile(), 2)
	plan := p.PlanRoute("a", "b")
	if !plan.Valid {
		t.Fatalf("plan invalid: %s", plan.Reason)
	}
	// Direct: 10 + 9*2 = 28. Detour: (7+2) + (7+2) = 18.
	if len(plan.Segments) != 2 {
		t.Fatalf("segments = %d, want detour via c", len(plan.Segments))
	}
	if plan.Segments[0].ToID != "c" {
		t.Errorf("first hop to %s", plan.Segments[0].ToID)
	}
}

func TestPlanIgnoresHazardWhenUnweighted(t *testing.T) {
	p := NewPlanner(testGraph(), DefaultShipProfile(), 0)
	plan := p.PlanRoute("a", "b")
	if len(plan.Segments) != 1 {
		t.Fatalf("segments = %d, want the direct lane", len(plan.Segments))
	}
}

func TestPlanNoRoute(t *testing.T) {
	g := testGraph()
	g.AddLocation(&world.Location{ID: "isolated"})
	p := NewPlanner(g, DefaultShipProfile(), 1)

	plan := p.PlanRoute("a", "isolated")
	if plan.Valid || plan.Reason != ReasonNoRoute {
		t.Fatalf("plan = %+v, want invalid no_route", plan)
	}

	plan = p.PlanRoute("a", "ghost")
	if plan.Valid || plan.Reason != ReasonNoRoute {
		t.Fatalf("unknown destination: %+v", plan)
	}
}

func TestPlanFuelOverCapacity(t *testing.T) {
	ship := DefaultShipProfile()
	ship.TankCapacity = 5
	p := NewPlanner(testGraph(), ship, 0)
	plan := p.PlanRoute("a", "b")
	if plan.Valid || plan.Reason != ReasonFuelOverCapacity {
		t.Fatalf("plan = %+v, want fuel_over_capacity", plan)
	}
}

func TestSegmentCostDerivation(t *testing.T) {
	g := world.NewGraph()
	g.AddLocation(&world.Location{ID: "a", Security: 0.5, Crime: 0.5})
	g.AddLocation(&world.Location{ID: "b", Security: 0.5, Crime: 0.5})
	g.AddLane(&world.Lane{From: "a", To: "b", Distance: 9, Hazard: 3})

	ship := ShipProfile{Speed: 4, Efficiency: 2, FuelRate: 3}
	p := NewPlanner(g, ship, 1)
	plan := p.PlanRoute("a", "b")
	if !plan.Valid {
		t.Fatalf("plan invalid: %s", plan.Reason)
	}
	seg := plan.Segments[0]
	// fuel = ceil(9*3/2) = 14, days = ceil(9/4) = 3.
	if seg.FuelCost != 14 {
		t.Errorf("FuelCost = %d, want 14", seg.FuelCost)
	}
	if seg.TimeDays != 3 {
		t.Errorf("TimeDays = %d, want 3", seg.TimeDays)
	}
}

func TestSegmentMinimumOneDay(t *testing.T) {
	g := world.NewGraph()
	g.AddLocation(&world.Location{ID: "a"})
	g.AddLocation(&world.Location{ID: "b"})
	g.AddLane(&world.Lane{From: "a", To: "b", Distance: 1, Hazard: 0})

	p := NewPlanner(g, ShipProfile{Speed: 100, Efficiency: 1, FuelRate: 1}, 1)
	plan := p.PlanRoute("a", "b")
	if plan.Segments[0].TimeDays != 1 {
		t.Errorf("TimeDays = %d, want minimum 1", plan.Segments[0].TimeDays)
	}
}

func TestEncounterChanceTagTableAndClamp(t *testing.T) {
	g := world.NewGraph()
	g.AddLocation(&world.Location{ID: "a", Security: 0.5, Crime: 0.5})
	g.AddLocation(&world.Location{ID: "b", Security: 0.5, Crime: 0.5})
	// Metric modifiers cancel (crime == security), isolating the table.
	g.AddLane(&world.Lane{From: "a", To: "b", Distance: 4, Hazard: 4, Tags: []string{"patrolled"}})
	g.AddLocation(&world.Location{ID: "c", Security: 0.5, Crime: 0.5})
	g.AddLane(&world.Lane{From: "b", To: "c", Distance: 4, Hazard: 4, Tags: []string{"lawless"}})
	g.AddLocation(&world.Location{ID: "d", Security: 0.5, Crime: 0.5})
	g.AddLane(&world.Lane{From: "c", To: "d", Distance: 4, Hazard: 10, Tags: []string{"lawless", "hazardous"}})

	p := NewPlanner(g, DefaultShipProfile(), 1)

	seg := p.PlanRoute("a", "b").Segments[0]
	if got, want := seg.EncounterChance, 4*0.1-0.10; !almostEqual(got, want) {
		t.Errorf("patrolled chance = %f, want %f", got, want)
	}

	seg = p.PlanRoute("b", "c").Segments[0]
	if got, want := seg.EncounterChance, 4*0.1+0.10; !almostEqual(got, want) {
		t.Errorf("lawless chance = %f, want %f", got, want)
	}

	// 10*0.1 + 0.10 + 0.05 = 1.15, clamped to the ceiling.
	seg = p.PlanRoute("c", "d").Segments[0]
	if got := seg.EncounterChance; !almostEqual(got, maxEncounterChance) {
		t.Errorf("clamped chance = %f, want %f", got, maxEncounterChance)
	}
}

func TestDayFuelSumsExactly(t *testing.T) {
	cases := []struct{ fuel, days int }{
		{15, 2}, {15, 4}, {7, 3}, {1, 1}, {10, 10}, {9, 4},
	}
	for _, tc := range cases {
		seg := Segment{FuelCost: tc.fuel, TimeDays: tc.days}
		sum := 0
		for d := 0; d < tc.days; d++ {
			share := seg.DayFuel(d)
			if share < 0 {
				t.Fatalf("fuel %d over %d days: negative share on day %d", tc.fuel, tc.days, d)
			}
			sum += share
		}
		if sum != tc.fuel {
			t.Errorf("fuel %d over %d days sums to %d", tc.fuel, tc.days, sum)
		}
	}
}

func TestDayFuelRemainderOnFinalDay(t *testing.T) {
	seg := Segment{FuelCost: 15, TimeDays: 2}
	if seg.DayFuel(0) != 7 || seg.DayFuel(1) != 8 {
		t.Errorf("shares = %d,%d, want 7,8", seg.DayFuel(0), seg.DayFuel(1))
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
