package campaign

import (
	"fmt"
	"log/slog"

	"github.com/talgya/starlanes/internal/encounter"
)

// defaultCargoValue prices cargo granted by encounters that do not name
// a value themselves.
const defaultCargoValue = 10

// Applier commits drained effect ledgers into campaign state, one case
// per effect kind. Effects are applied in ledger order; applying the
// same ledger twice doubles its consequences, so drain exactly once.
type Applier struct {
	state *State
}

// NewApplier creates an applier over state.
func NewApplier(state *State) *Applier {
	return &Applier{state: state}
}

// AppliedChange describes one committed effect, for logs and UI.
type AppliedChange struct {
	Kind        encounter.EffectKind `json:"kind"`
	Description string               `json:"description"`
}

// Apply commits every pending effect of a completed instance. The
// resolving crew member (from the instance's last skill check, if the
// caller tracked one) is the fallback target for crew effects with an
// empty id.
func (a *Applier) Apply(effects []encounter.Effect, resolvingCrewID string) []AppliedChange {
	changes := make([]AppliedChange, 0, len(effects))
	for _, eff := range effects {
		change := a.applyOne(eff, resolvingCrewID)
		changes = append(changes, change)
		slog.Debug("effect applied", "kind", change.Kind, "change", change.Description)
	}
	return changes
}

func (a *Applier) applyOne(eff encounter.Effect, resolvingCrewID string) AppliedChange {
	s := a.state
	change := AppliedChange{Kind: eff.Kind()}

	switch e := eff.(type) {
	case encounter.ResourceDelta:
		s.Resources[e.Resource] += e.Amount
		change.Description = fmt.Sprintf("%s %+d (now %d)", e.Resource, e.Amount, s.Resources[e.Resource])

	case encounter.CrewInjury:
		if crew := a.targetCrew(e.CrewID, resolvingCrewID); crew != nil {
			crew.Injury += e.Severity
			change.Description = fmt.Sprintf("%s injured (severity %d)", crew.Name, e.Severity)
		} else {
			change.Description = "injury with no crew target"
		}

	case encounter.CrewXP:
		if crew := a.targetCrew(e.CrewID, resolvingCrewID); crew != nil {
			crew.XP += e.Amount
			if e.Stat != "" {
				crew.Stats[e.Stat] += e.Amount / 2
			}
			change.Description = fmt.Sprintf("%s gains %d xp", crew.Name, e.Amount)
		} else {
			change.Description = "xp with no crew target"
		}

	case encounter.AddTrait:
		if crew := a.targetCrew(e.CrewID, resolvingCrewID); crew != nil && !crew.HasTrait(e.Trait) {
			crew.Traits = append(crew.Traits, e.Trait)
			change.Description = fmt.Sprintf("%s gains trait %s", crew.Name, e.Trait)
		} else {
			change.Description = fmt.Sprintf("trait %s not added", e.Trait)
		}

	case encounter.RemoveTrait:
		crew := a.targetCrew(e.CrewID, resolvingCrewID)
		if crew != nil {
			for i, t := range crew.Traits {
				if t == e.Trait {
					crew.Traits = append(crew.Traits[:i], crew.Traits[i+1:]...)
					break
				}
			}
			change.Description = fmt.Sprintf("%s loses trait %s", crew.Name, e.Trait)
		} else {
			change.Description = fmt.Sprintf("trait %s not removed", e.Trait)
		}

	case encounter.RecruitCrew:
		member := s.AddCrew(e.Name, e.Role)
		change.Description = fmt.Sprintf("%s joins as %s", member.Name, member.Role)

	case encounter.ShipDamage:
		s.Hull -= e.Amount
		if s.Hull < 0 {
			s.Hull = 0
		}
		change.Description = fmt.Sprintf("hull -%d (now %d)", e.Amount, s.Hull)

	case encounter.FactionRep:
		s.FactionRep[e.Faction] += e.Delta
		change.Description = fmt.Sprintf("%s standing %+d (now %d)", e.Faction, e.Delta, s.FactionRep[e.Faction])

	case encounter.SetFlag:
		s.Flags[e.Flag] = e.Value
		change.Description = fmt.Sprintf("flag %s = %v", e.Flag, e.Value)

	case encounter.TimeDelay:
		s.AdvanceClock(e.Days)
		change.Description = fmt.Sprintf("%d day(s) pass", e.Days)

	case encounter.CargoAdd:
		s.AddCargo(e.Item, e.Quantity, defaultCargoValue, true)
		change.Description = fmt.Sprintf("cargo +%d %s", e.Quantity, e.Item)

	case encounter.CargoRemove:
		removed := s.RemoveCargo(e.Item, e.Quantity)
		change.Description = fmt.Sprintf("cargo -%d %s", removed, e.Item)

	case encounter.TacticalMission:
		// Deferred to an external tactical layer; recorded as a flag so
		// the campaign can surface it.
		s.Flags["pending_mission:"+e.MissionID] = true
		change.Description = fmt.Sprintf("tactical mission %s queued", e.MissionID)

	default:
		// Goto/end effects never reach the ledger; anything else here is
		// a new kind the applier has not learned yet.
		slog.Warn("unhandled effect kind", "kind", eff.Kind())
		change.Description = fmt.Sprintf("unhandled %s", eff.Kind())
	}
	return change
}

func (a *Applier) targetCrew(explicitID, resolvingID string) *CrewMember {
	id := explicitID
	if id == "" {
		id = resolvingID
	}
	if id == "" {
		if len(a.state.Crew) > 0 {
			return a.state.Crew[0]
		}
		return nil
	}
	crew, _ := a.state.CrewByID(id)
	return crew
}
