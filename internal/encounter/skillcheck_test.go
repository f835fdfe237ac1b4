package encounter

import (
	"testing"

	"github.com/talgya/starlanes/internal/rng"
)

func checkContext(stat Stat, value int, traits ...string) *Context {
	return NewContext(ContextParams{
		Crew: []CrewSnapshot{
			{ID: "c1", Name: "Vance", Stats: map[Stat]int{stat: value}, Traits: traits},
		},
	})
}

func TestCheckAlwaysSucceedsWhenStatDominates(t *testing.T) {
	// Minimum roll 1 + stat 8 = 9 >= difficulty 5.
	def := &SkillCheckDef{Stat: StatPiloting, Difficulty: 5}
	ctx := checkContext(StatPiloting, 8)
	for seed := int64(0); seed < 50; seed++ {
		res := ResolveCheck(def, ctx, rng.NewStream("check", seed))
		if !res.Success {
			t.Fatalf("seed %d: failed with roll %d", seed, res.Roll)
		}
	}
	if got := PreviewChance(def, ctx); got != 100 {
		t.Errorf("PreviewChance = %d, want 100", got)
	}
}

func TestCheckAlwaysFailsWhenImpossible(t *testing.T) {
	// Max roll 10 + stat 0 = 10 < difficulty 25.
	def := &SkillCheckDef{Stat: StatGunnery, Difficulty: 25}
	ctx := checkContext(StatGunnery, 0)
	for seed := int64(0); seed < 50; seed++ {
		res := ResolveCheck(def, ctx, rng.NewStream("check", seed))
		if res.Success {
			t.Fatalf("seed %d: succeeded with roll %d", seed, res.Roll)
		}
	}
	if got := PreviewChance(def, ctx); got != 0 {
		t.Errorf("PreviewChance = %d, want 0", got)
	}
}

func TestTraitModifiers(t *testing.T) {
	def := &SkillCheckDef{
		Stat:          StatSavvy,
		Difficulty:    10,
		BonusTraits:   []string{"silver_tongue", "famous"},
		PenaltyTraits: []string{"wanted"},
	}
	ctx := checkContext(StatSavvy, 4, "silver_tongue", "wanted")

	res := ResolveCheck(def, ctx, rng.NewStream("check", 1))
	if res.TraitBonus != 0 {
		t.Errorf("TraitBonus = %d, want 0 (+2 silver_tongue, -2 wanted)", res.TraitBonus)
	}
	if len(res.BonusesApplied) != 1 || res.BonusesApplied[0] != "silver_tongue" {
		t.Errorf("BonusesApplied = %v", res.BonusesApplied)
	}
	if len(res.PenaltiesApplied) != 1 || res.PenaltiesApplied[0] != "wanted" {
		t.Errorf("PenaltiesApplied = %v", res.PenaltiesApplied)
	}
	if res.Total != res.Roll+res.StatValue+res.TraitBonus {
		t.Errorf("Total %d != roll %d + stat %d + bonus %d", res.Total, res.Roll, res.StatValue, res.TraitBonus)
	}
	if res.Margin != res.Total-def.Difficulty {
		t.Errorf("Margin = %d", res.Margin)
	}
}

func TestCheckMonotonicity(t *testing.T) {
	// For a fixed roll, raising the stat or adding a bonus trait never
	// lowers the margin.
	def := &SkillCheckDef{Stat: StatGrit, Difficulty: 8, BonusTraits: []string{"tough"}}
	for seed := int64(0); seed < 20; seed++ {
		base := ResolveCheck(def, checkContext(StatGrit, 3), rng.NewStream("m", seed))
		stronger := ResolveCheck(def, checkContext(StatGrit, 4), rng.NewStream("m", seed))
		traited := ResolveCheck(def, checkContext(StatGrit, 3, "tough"), rng.NewStream("m", seed))

		if stronger.Margin < base.Margin {
			t.Fatalf("seed %d: higher stat lowered margin %d -> %d", seed, base.Margin, stronger.Margin)
		}
		if traited.Margin < base.Margin {
			t.Fatalf("seed %d: bonus trait lowered margin %d -> %d", seed, base.Margin, traited.Margin)
		}
	}
}

func TestPreviewMatchesResolverBoundary(t *testing.T) {
	// For every needed roll in [1,10], the preview chance must equal the
	// fraction of rolls the resolver passes.
	for needed := 1; needed <= 10; needed++ {
		stat := 0
		def := &SkillCheckDef{Stat: StatPiloting, Difficulty: needed + stat}
		ctx := checkContext(StatPiloting, stat)

		passes := 0
		for roll := 1; roll <= 10; roll++ {
			if roll+stat >= def.Difficulty {
				passes++
			}
		}
		want := passes * 10
		if got := PreviewChance(def, ctx); got != want {
			t.Errorf("needed %d: PreviewChance = %d, want %d", needed, got, want)
		}
	}
}

func TestCriticalMargins(t *testing.T) {
	// stat 20 vs difficulty 5: minimum total 21, margin >= 16, always a
	// critical success.
	def := &SkillCheckDef{Stat: StatGrit, Difficulty: 5}
	res := ResolveCheck(def, checkContext(StatGrit, 20), rng.NewStream("crit", 0))
	if !res.CriticalSuccess {
		t.Errorf("margin %d did not count as critical success", res.Margin)
	}

	// stat 0 vs difficulty 20: maximum total 10, margin <= -10.
	def = &SkillCheckDef{Stat: StatGrit, Difficulty: 20}
	res = ResolveCheck(def, checkContext(StatGrit, 0), rng.NewStream("crit", 0))
	if !res.CriticalFailure {
		t.Errorf("margin %d did not count as critical failure", res.Margin)
	}
}

func TestBestCrewSelectionCountsTraits(t *testing.T) {
	def := &SkillCheckDef{Stat: StatSavvy, Difficulty: 5, BonusTraits: []string{"silver_tongue"}}
	ctx := NewContext(ContextParams{
		Crew: []CrewSnapshot{
			{ID: "raw", Name: "Raw", Stats: map[Stat]int{StatSavvy: 5}},
			{ID: "smooth", Name: "Smooth", Stats: map[Stat]int{StatSavvy: 4}, Traits: []string{"silver_tongue"}},
		},
	})
	res := ResolveCheck(def, ctx, rng.NewStream("pick", 0))
	if res.CrewID != "smooth" {
		t.Errorf("selected %s; trait-adjusted 6 should beat raw 5", res.CrewID)
	}
}

func TestBestCrewTieBreaksByRosterOrder(t *testing.T) {
	def := &SkillCheckDef{Stat: StatGrit, Difficulty: 5}
	ctx := NewContext(ContextParams{
		Crew: []CrewSnapshot{
			{ID: "first", Stats: map[Stat]int{StatGrit: 4}},
			{ID: "second", Stats: map[Stat]int{StatGrit: 4}},
		},
	})
	for seed := int64(0); seed < 10; seed++ {
		res := ResolveCheck(def, ctx, rng.NewStream("tie", seed))
		if res.CrewID != "first" {
			t.Fatalf("tie broke to %s", res.CrewID)
		}
	}
}

func TestCheckUsesExactlyOneDraw(t *testing.T) {
	def := &SkillCheckDef{Stat: StatGrit, Difficulty: 5}
	stream := rng.NewStream("draws", 9)
	ResolveCheck(def, checkContext(StatGrit, 3), stream)
	if stream.Calls() != 1 {
		t.Errorf("check consumed %d draws, want 1", stream.Calls())
	}
}
