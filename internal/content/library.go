// Package content holds the built-in encounter library. Templates are
// authored in Go and registered into an encounter.Registry at startup;
// nothing here is mutated after registration.
package content

import (
	"fmt"

	"github.com/talgya/starlanes/internal/encounter"
)

// Register loads every built-in template into reg.
func Register(reg *encounter.Registry) error {
	for _, t := range []*encounter.Template{
		pirateAmbush(),
		customsPatrol(),
		distressCall(),
		derelictHulk(),
	} {
		if err := reg.Register(t); err != nil {
			return fmt.Errorf("register content: %w", err)
		}
	}
	return nil
}

// pirateAmbush: combat-flavored, danger-tagged. Exercises ship damage,
// cargo loss, defeat/capture endings and the wanted flag.
func pirateAmbush() *encounter.Template {
	return &encounter.Template{
		ID:          "pirate_ambush",
		Name:        "Pirate Ambush",
		Tags:        []string{"danger", "lawless"},
		EntryNodeID: "hail",
		Nodes: map[string]*encounter.Node{
			"hail": {
				ID:   "hail",
				Text: "A gunship drops off your stern and demands your cargo.",
				Options: []*encounter.Option{
					{
						ID:    "fight",
						Text:  "Bring the turrets around",
						Check: &encounter.SkillCheckDef{Stat: encounter.StatGunnery, Difficulty: 12},
						Success: &encounter.Outcome{
							Effects: []encounter.Effect{
								encounter.FactionRep{Faction: "Red Ledger", Delta: -10},
								encounter.CrewXP{Stat: encounter.StatGunnery, Amount: 2},
							},
							NextNodeID: "salvage",
						},
						Failure: &encounter.Outcome{
							Effects: []encounter.Effect{
								encounter.ShipDamage{Amount: 25},
								encounter.CrewInjury{Severity: 2},
							},
							NextNodeID: "boarded",
						},
					},
					{
						ID:    "outrun",
						Text:  "Dump the drive ceiling and run",
						Check: &encounter.SkillCheckDef{Stat: encounter.StatPiloting, Difficulty: 10, BonusTraits: []string{"ace_pilot"}},
						Success: &encounter.Outcome{
							Effects: []encounter.Effect{
								encounter.TimeDelay{Days: 1},
							},
							End: true,
						},
						Failure: &encounter.Outcome{
							Effects: []encounter.Effect{
								encounter.ShipDamage{Amount: 15},
							},
							NextNodeID: "boarded",
						},
					},
					{
						ID:        "pay_tribute",
						Text:      "Hand over the hold",
						Condition: encounter.CargoValueAtLeast{Min: 50},
						Outcome: &encounter.Outcome{
							Effects: []encounter.Effect{
								encounter.CargoRemove{Item: "trade_goods", Quantity: 5},
								encounter.FactionRep{Faction: "Red Ledger", Delta: 5},
							},
							End: true,
						},
					},
				},
			},
			"salvage": {
				ID:   "salvage",
				Text: "The gunship breaks apart. Scrap glitters in your running lights.",
				Options: []*encounter.Option{
					{
						ID:   "strip_wreck",
						Text: "Sweep the debris field",
						Outcome: &encounter.Outcome{
							Effects: []encounter.Effect{
								encounter.CargoAdd{Item: "salvage", Quantity: 3},
								encounter.ResourceDelta{Resource: "credits", Amount: 75},
							},
							End:       true,
							EndResult: "victory",
						},
					},
					{
						ID:   "leave_it",
						Text: "Burn for the lane before friends arrive",
						Outcome: &encounter.Outcome{
							End:       true,
							EndResult: "victory",
						},
					},
				},
			},
			"boarded": {
				ID:   "boarded",
				Text: "Grapples bite the hull. Boarders in the airlock.",
				Options: []*encounter.Option{
					{
						ID:    "repel",
						Text:  "Hold the corridor",
						Check: &encounter.SkillCheckDef{Stat: encounter.StatGrit, Difficulty: 11, BonusTraits: []string{"veteran"}},
						Success: &encounter.Outcome{
							Effects: []encounter.Effect{
								encounter.AddTrait{Trait: "boarding_scars"},
							},
							End:       true,
							EndResult: "victory",
						},
						Failure: &encounter.Outcome{
							Effects: []encounter.Effect{
								encounter.CrewInjury{Severity: 3},
								encounter.CargoRemove{Item: "trade_goods", Quantity: 10},
							},
							End:       true,
							EndResult: "defeat",
						},
					},
					{
						ID:   "surrender",
						Text: "Stand down",
						Outcome: &encounter.Outcome{
							End:       true,
							EndResult: "capture",
						},
					},
				},
			},
		},
	}
}

// customsPatrol: authority-flavored, patrolled-tag. Exercises flags,
// faction rep, resource deltas and a contraband-gated branch.
func customsPatrol() *encounter.Template {
	return &encounter.Template{
		ID:          "customs_patrol",
		Name:        "Customs Patrol",
		Tags:        []string{"authority", "patrolled"},
		EntryNodeID: "hail",
		Nodes: map[string]*encounter.Node{
			"hail": {
				ID:   "hail",
				Text: "A Concord cutter orders you to cut thrust for inspection.",
				Options: []*encounter.Option{
					{
						ID:   "submit",
						Text: "Open the hold for inspection",
						Outcome: &encounter.Outcome{
							Effects: []encounter.Effect{
								encounter.TimeDelay{Days: 1},
							},
							NextNodeID: "inspection",
						},
					},
					{
						ID:        "flash_credentials",
						Text:      "Cite your standing with the Authority",
						Condition: encounter.FactionRepAtLeast{Faction: "Concord Authority", Min: 20},
						Outcome: &encounter.Outcome{
							Effects: []encounter.Effect{
								encounter.FactionRep{Faction: "Concord Authority", Delta: 2},
							},
							End: true,
						},
					},
					{
						ID:    "sweet_talk",
						Text:  "Talk the inspector out of it",
						Check: &encounter.SkillCheckDef{Stat: encounter.StatSavvy, Difficulty: 9, BonusTraits: []string{"silver_tongue"}, PenaltyTraits: []string{"wanted"}},
						Success: &encounter.Outcome{
							End: true,
						},
						Failure: &encounter.Outcome{
							Effects: []encounter.Effect{
								encounter.SetFlag{Flag: "flagged_by_customs", Value: true},
							},
							NextNodeID: "inspection",
						},
					},
				},
			},
			"inspection": {
				ID:   "inspection",
				Text: "Inspectors comb the manifest against the hold.",
				Options: []*encounter.Option{
					{
						ID:        "contraband_found",
						Text:      "They find the hidden compartment",
						Condition: encounter.HasFlag{Flag: "carrying_contraband"},
						Outcome: &encounter.Outcome{
							Effects: []encounter.Effect{
								encounter.ResourceDelta{Resource: "credits", Amount: -200},
								encounter.CargoRemove{Item: "contraband", Quantity: 99},
								encounter.FactionRep{Faction: "Concord Authority", Delta: -15},
								encounter.SetFlag{Flag: "wanted", Value: true},
							},
							End:       true,
							EndResult: "fined",
						},
					},
					{
						ID:        "clean_manifest",
						Text:      "Everything checks out",
						Condition: encounter.Not{Child: encounter.HasFlag{Flag: "carrying_contraband"}},
						Outcome: &encounter.Outcome{
							Effects: []encounter.Effect{
								encounter.FactionRep{Faction: "Concord Authority", Delta: 3},
							},
							End: true,
						},
					},
				},
			},
		},
	}
}

// distressCall: opportunity-flavored. Exercises recruiting, goto effects
// and composite conditions.
func distressCall() *encounter.Template {
	return &encounter.Template{
		ID:          "distress_call",
		Name:        "Distress Call",
		Tags:        []string{"opportunity", "frontier"},
		EntryNodeID: "signal",
		Nodes: map[string]*encounter.Node{
			"signal": {
				ID:   "signal",
				Text: "A thin emergency beacon repeats from a tumbling lifeboat.",
				Options: []*encounter.Option{
					{
						ID:   "dock",
						Text: "Match tumble and dock",
						Check: &encounter.SkillCheckDef{
							Stat:       encounter.StatPiloting,
							Difficulty: 7,
						},
						Success: &encounter.Outcome{NextNodeID: "survivor"},
						Failure: &encounter.Outcome{
							Effects: []encounter.Effect{
								encounter.ShipDamage{Amount: 5},
								encounter.GotoNode{NodeID: "survivor"},
							},
						},
					},
					{
						ID:        "scan_first",
						Text:      "Sweep it for a lure",
						Condition: encounter.Any{Children: []encounter.Condition{
							encounter.BestStatAtLeast{Stat: encounter.StatEngineering, Min: 4},
							encounter.HasCrewTrait{Trait: "paranoid"},
						}},
						Outcome: &encounter.Outcome{NextNodeID: "survivor"},
					},
					{
						ID:      "ignore",
						Text:    "Not your problem",
						Outcome: &encounter.Outcome{End: true},
					},
				},
			},
			"survivor": {
				ID:   "survivor",
				Text: "One survivor, half-frozen: a drive tech with nowhere to be.",
				Options: []*encounter.Option{
					{
						ID:   "take_aboard",
						Text: "Sign them on",
						Outcome: &encounter.Outcome{
							Effects: []encounter.Effect{
								encounter.RecruitCrew{Name: "Juno Hale", Role: "drive tech"},
								encounter.RemoveTrait{CrewID: "", Trait: "shorthanded"},
							},
							End: true,
						},
					},
					{
						ID:   "drop_at_port",
						Text: "Carry them to the next port",
						Outcome: &encounter.Outcome{
							Effects: []encounter.Effect{
								encounter.ResourceDelta{Resource: "credits", Amount: 50},
								encounter.TimeDelay{Days: 1},
							},
							End: true,
						},
					},
				},
			},
		},
	}
}

// derelictHulk: exploration-flavored. Exercises the tactical-mission
// hand-off and an automatic narration beat.
func derelictHulk() *encounter.Template {
	return &encounter.Template{
		ID:          "derelict_hulk",
		Name:        "Derelict Hulk",
		Tags:        []string{"opportunity", "danger"},
		EntryNodeID: "approach",
		Nodes: map[string]*encounter.Node{
			"approach": {
				ID:   "approach",
				Text: "A cold freighter drifts beam-on, running lights dead.",
				Auto: &encounter.Outcome{NextNodeID: "decide"},
			},
			"decide": {
				ID:   "decide",
				Text: "Her registry is scorched off. The hold doors hang open.",
				Options: []*encounter.Option{
					{
						ID:   "board_her",
						Text: "Send a boarding team",
						Outcome: &encounter.Outcome{
							Effects: []encounter.Effect{
								encounter.TacticalMission{MissionID: "derelict_sweep"},
							},
							End: true,
						},
					},
					{
						ID:    "grapple_cargo",
						Text:  "Snag loose containers without boarding",
						Check: &encounter.SkillCheckDef{Stat: encounter.StatEngineering, Difficulty: 8},
						Success: &encounter.Outcome{
							Effects: []encounter.Effect{
								encounter.CargoAdd{Item: "salvage", Quantity: 2},
							},
							End: true,
						},
						Failure: &encounter.Outcome{
							Effects: []encounter.Effect{
								encounter.ShipDamage{Amount: 8},
							},
							End: true,
						},
					},
					{
						ID:      "log_and_go",
						Text:    "Log the position and move on",
						Outcome: &encounter.Outcome{End: true},
					},
				},
			},
		},
	}
}
