package encounter

import "github.com/talgya/starlanes/internal/rng"

const (
	// TraitModifier is added per matching bonus trait and subtracted per
	// matching penalty trait.
	TraitModifier = 2

	// CriticalMargin is the absolute margin at which a result counts as
	// critical.
	CriticalMargin = 5

	checkDieSides = 10
)

// CheckResult records everything about one resolved skill check.
type CheckResult struct {
	Success          bool     `json:"success"`
	CrewID           string   `json:"crew_id"`
	CrewName         string   `json:"crew_name"`
	Stat             Stat     `json:"stat"`
	Difficulty       int      `json:"difficulty"`
	Roll             int      `json:"roll"`
	StatValue        int      `json:"stat_value"`
	TraitBonus       int      `json:"trait_bonus"`
	Total            int      `json:"total"`
	Margin           int      `json:"margin"`
	CriticalSuccess  bool     `json:"critical_success"`
	CriticalFailure  bool     `json:"critical_failure"`
	BonusesApplied   []string `json:"bonuses_applied,omitempty"`
	PenaltiesApplied []string `json:"penalties_applied,omitempty"`
}

// traitAdjustment sums the modifier for one crew member along with the
// trait names that actually applied.
func traitAdjustment(def *SkillCheckDef, crew *CrewSnapshot) (bonus int, applied, penalized []string) {
	for _, t := range def.BonusTraits {
		if crew.HasTrait(t) {
			bonus += TraitModifier
			applied = append(applied, t)
		}
	}
	for _, t := range def.PenaltyTraits {
		if crew.HasTrait(t) {
			bonus -= TraitModifier
			penalized = append(penalized, t)
		}
	}
	return bonus, applied, penalized
}

// bestCrewForCheck picks the crew member with the highest stat+trait
// total. Ties go to the earlier roster position, so selection is
// deterministic without an RNG draw.
func bestCrewForCheck(def *SkillCheckDef, ctx *Context) *CrewSnapshot {
	crew := ctx.Crew()
	var best *CrewSnapshot
	bestTotal := 0
	for i := range crew {
		c := &crew[i]
		adj, _, _ := traitAdjustment(def, c)
		total := c.Stat(def.Stat) + adj
		if best == nil || total > bestTotal {
			best = c
			bestTotal = total
		}
	}
	return best
}

// ResolveCheck rolls a d10 for the best-suited crew member and compares
// roll + stat + trait modifiers against the difficulty. Exactly one RNG
// draw is made.
func ResolveCheck(def *SkillCheckDef, ctx *Context, stream *rng.Stream) *CheckResult {
	res := &CheckResult{
		Stat:       def.Stat,
		Difficulty: def.Difficulty,
	}

	if crew := bestCrewForCheck(def, ctx); crew != nil {
		adj, applied, penalized := traitAdjustment(def, crew)
		res.CrewID = crew.ID
		res.CrewName = crew.Name
		res.StatValue = crew.Stat(def.Stat)
		res.TraitBonus = adj
		res.BonusesApplied = applied
		res.PenaltiesApplied = penalized
	}

	res.Roll = stream.IntRange(1, checkDieSides)
	res.Total = res.Roll + res.StatValue + res.TraitBonus
	res.Margin = res.Total - def.Difficulty
	res.Success = res.Margin >= 0
	res.CriticalSuccess = res.Success && res.Margin >= CriticalMargin
	res.CriticalFailure = !res.Success && -res.Margin >= CriticalMargin
	return res
}

// PreviewChance returns the success probability as a whole percentage
// without drawing from the stream, for UI display. Its pass/fail boundary
// agrees exactly with ResolveCheck: success needs a roll of at least
// difficulty - (stat + traitBonus).
func PreviewChance(def *SkillCheckDef, ctx *Context) int {
	statValue, traitBonus := 0, 0
	if crew := bestCrewForCheck(def, ctx); crew != nil {
		adj, _, _ := traitAdjustment(def, crew)
		statValue = crew.Stat(def.Stat)
		traitBonus = adj
	}
	needed := def.Difficulty - (statValue + traitBonus)
	switch {
	case needed <= 1:
		return 100
	case needed > checkDieSides:
		return 0
	}
	return (checkDieSides - needed + 1) * 100 / checkDieSides
}
