package encounter

import "testing"

func testContext() *Context {
	return NewContext(ContextParams{
		Day:       3,
		Resources: map[string]int{"fuel": 20, "credits": 150},
		Crew: []CrewSnapshot{
			{ID: "c1", Name: "Vance", Stats: map[Stat]int{StatPiloting: 6, StatGrit: 3}, Traits: []string{"veteran"}},
			{ID: "c2", Name: "Ree", Stats: map[Stat]int{StatSavvy: 7}, Traits: []string{"silver_tongue"}},
		},
		FactionRep:      map[string]int{"Concord Authority": 25, "Red Ledger": -40},
		Flags:           map[string]bool{"wanted": true},
		CurrentLocation: "loc-01",
		Destination:     "loc-05",
		LocationTags:    []string{"frontier"},
		RouteTags:       []string{"lawless"},
		RouteHazard:     6,
		CargoValue:      300,
		CargoLegal:      false,
		OwningFaction:   "Red Ledger",
	})
}

func TestSimpleConditions(t *testing.T) {
	ctx := testContext()

	cases := []struct {
		name string
		cond Condition
		want bool
	}{
		{"resource met", ResourceAtLeast{Resource: "fuel", Min: 20}, true},
		{"resource short", ResourceAtLeast{Resource: "fuel", Min: 21}, false},
		{"resource unknown pool", ResourceAtLeast{Resource: "ore", Min: 1}, false},
		{"crew trait present", HasCrewTrait{Trait: "silver_tongue"}, true},
		{"crew trait absent", HasCrewTrait{Trait: "medic"}, false},
		{"cargo value met", CargoValueAtLeast{Min: 300}, true},
		{"cargo value short", CargoValueAtLeast{Min: 301}, false},
		{"faction rep met", FactionRepAtLeast{Faction: "Concord Authority", Min: 10}, true},
		{"faction rep negative", FactionRepAtLeast{Faction: "Red Ledger", Min: 0}, false},
		{"location tag", LocationHasTag{Tag: "frontier"}, true},
		{"route tag counts as location", LocationHasTag{Tag: "lawless"}, true},
		{"missing tag", LocationHasTag{Tag: "patrolled"}, false},
		{"best stat met", BestStatAtLeast{Stat: StatSavvy, Min: 7}, true},
		{"best stat short", BestStatAtLeast{Stat: StatGunnery, Min: 1}, false},
		{"flag set", HasFlag{Flag: "wanted"}, true},
		{"flag unset", HasFlag{Flag: "pardoned"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cond.Evaluate(ctx); got != tc.want {
				t.Errorf("Evaluate() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCompositeConditions(t *testing.T) {
	ctx := testContext()
	pass := HasFlag{Flag: "wanted"}
	fail := HasFlag{Flag: "pardoned"}

	cases := []struct {
		name string
		cond Condition
		want bool
	}{
		{"empty all is vacuously true", All{}, true},
		{"empty any is false", Any{}, false},
		{"all pass", All{Children: []Condition{pass, pass}}, true},
		{"all with one failure", All{Children: []Condition{pass, fail}}, false},
		{"any with one pass", Any{Children: []Condition{fail, pass}}, true},
		{"any all failing", Any{Children: []Condition{fail, fail}}, false},
		{"not inverts", Not{Child: fail}, true},
		{"double negation", Not{Child: Not{Child: pass}}, true},
		{"nested composite", All{Children: []Condition{
			Any{Children: []Condition{fail, pass}},
			Not{Child: fail},
		}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cond.Evaluate(ctx); got != tc.want {
				t.Errorf("Evaluate() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestConditionCodecRoundTrip(t *testing.T) {
	original := All{Children: []Condition{
		ResourceAtLeast{Resource: "credits", Min: 100},
		Not{Child: HasFlag{Flag: "pardoned"}},
		Any{Children: []Condition{
			HasCrewTrait{Trait: "silver_tongue"},
			BestStatAtLeast{Stat: StatSavvy, Min: 5},
		}},
	}}

	data, err := MarshalCondition(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := UnmarshalCondition(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	ctx := testContext()
	if decoded.Evaluate(ctx) != original.Evaluate(ctx) {
		t.Error("decoded condition evaluates differently")
	}
	if decoded.CondKind() != CondAll {
		t.Errorf("decoded kind = %s", decoded.CondKind())
	}
}

func TestContextIsFrozen(t *testing.T) {
	resources := map[string]int{"fuel": 10}
	crew := []CrewSnapshot{{ID: "c1", Stats: map[Stat]int{StatGrit: 4}, Traits: []string{"tough"}}}
	ctx := NewContext(ContextParams{Resources: resources, Crew: crew})

	// Mutating the live inputs must not change what the snapshot reports.
	resources["fuel"] = 0
	crew[0].Traits[0] = "meek"

	if got := ctx.Resource("fuel"); got != 10 {
		t.Errorf("Resource(fuel) = %d after source mutation, want 10", got)
	}
	if !ctx.HasCrewTrait("tough") {
		t.Error("crew trait lost after source mutation")
	}
}
