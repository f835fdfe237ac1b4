package cli

import (
	"bufio"
	"strings"
	"testing"

	"github.com/talgya/starlanes/internal/encounter"
)

func pickContext() *encounter.Context {
	return encounter.NewContext(encounter.ContextParams{
		Crew: []encounter.CrewSnapshot{
			{ID: "c1", Name: "Vasquez", Stats: map[encounter.Stat]int{encounter.StatPiloting: 4}},
		},
	})
}

func TestPickOptionAutoPrefersBestChance(t *testing.T) {
	flagAuto = true
	defer func() { flagAuto = false }()

	options := []*encounter.Option{
		{ID: "hard", Check: &encounter.SkillCheckDef{Stat: encounter.StatGunnery, Difficulty: 12}},
		{ID: "easy", Check: &encounter.SkillCheckDef{Stat: encounter.StatPiloting, Difficulty: 5}},
	}
	idx, err := pickOption(nil, options, pickContext())
	if err != nil {
		t.Fatal(err)
	}
	if idx != 1 {
		t.Errorf("picked %d, want 1 (easier check)", idx)
	}
}

func TestPickOptionAutoCheckFreeWins(t *testing.T) {
	flagAuto = true
	defer func() { flagAuto = false }()

	options := []*encounter.Option{
		{ID: "risky", Check: &encounter.SkillCheckDef{Stat: encounter.StatPiloting, Difficulty: 9}},
		{ID: "walk_away", Outcome: &encounter.Outcome{End: true}},
	}
	idx, err := pickOption(nil, options, pickContext())
	if err != nil {
		t.Fatal(err)
	}
	if idx != 1 {
		t.Errorf("picked %d, want 1 (no check)", idx)
	}
}

func TestPickOptionPromptRetriesUntilValid(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("zero\n9\n2\n"))
	options := []*encounter.Option{
		{ID: "a", Outcome: &encounter.Outcome{End: true}},
		{ID: "b", Outcome: &encounter.Outcome{End: true}},
	}
	idx, err := pickOption(in, options, pickContext())
	if err != nil {
		t.Fatal(err)
	}
	if idx != 1 {
		t.Errorf("picked %d, want 1", idx)
	}
}
