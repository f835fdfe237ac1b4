package encounter

import (
	"encoding/json"
	"fmt"
)

// EffectKind discriminates effect variants in serialized form.
type EffectKind string

const (
	KindResourceDelta   EffectKind = "resource_delta"
	KindCrewInjury      EffectKind = "crew_injury"
	KindCrewXP          EffectKind = "crew_xp"
	KindAddTrait        EffectKind = "add_trait"
	KindRemoveTrait     EffectKind = "remove_trait"
	KindRecruitCrew     EffectKind = "recruit_crew"
	KindShipDamage      EffectKind = "ship_damage"
	KindFactionRep      EffectKind = "faction_rep"
	KindSetFlag         EffectKind = "set_flag"
	KindTimeDelay       EffectKind = "time_delay"
	KindCargoAdd        EffectKind = "cargo_add"
	KindCargoRemove     EffectKind = "cargo_remove"
	KindGotoNode        EffectKind = "goto_node"
	KindEndEncounter    EffectKind = "end_encounter"
	KindTacticalMission EffectKind = "tactical_mission"
)

// Effect is one atomic, deferred change to campaign state. Each variant
// carries only its own payload. GotoNode and EndEncounter are consumed by
// the runner to drive the graph walk; every other kind is appended to the
// instance's pending ledger for the external applier.
type Effect interface {
	Kind() EffectKind
}

// ResourceDelta adjusts a named resource pool by Amount (may be negative).
type ResourceDelta struct {
	Resource string `json:"resource"`
	Amount   int    `json:"amount"`
}

// CrewInjury wounds a crew member. An empty CrewID targets whoever
// resolved the triggering skill check.
type CrewInjury struct {
	CrewID   string `json:"crew_id,omitempty"`
	Severity int    `json:"severity"`
}

// CrewXP grants experience toward a stat. An empty CrewID targets the
// resolving crew member.
type CrewXP struct {
	CrewID string `json:"crew_id,omitempty"`
	Stat   Stat   `json:"stat"`
	Amount int    `json:"amount"`
}

// AddTrait attaches a trait to a crew member (empty CrewID = resolver).
type AddTrait struct {
	CrewID string `json:"crew_id,omitempty"`
	Trait  string `json:"trait"`
}

// RemoveTrait strips a trait from a crew member (empty CrewID = resolver).
type RemoveTrait struct {
	CrewID string `json:"crew_id,omitempty"`
	Trait  string `json:"trait"`
}

// RecruitCrew appends a new roster entry.
type RecruitCrew struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// ShipDamage reduces hull integrity.
type ShipDamage struct {
	Amount int `json:"amount"`
}

// FactionRep adjusts standing with a named faction.
type FactionRep struct {
	Faction string `json:"faction"`
	Delta   int    `json:"delta"`
}

// SetFlag toggles a campaign-wide boolean.
type SetFlag struct {
	Flag  string `json:"flag"`
	Value bool   `json:"value"`
}

// TimeDelay advances the campaign clock.
type TimeDelay struct {
	Days int `json:"days"`
}

// CargoAdd places items into the hold.
type CargoAdd struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// CargoRemove takes items out of the hold.
type CargoRemove struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// GotoNode moves the walk to another node. Consumed by the runner, never
// surfaced to the applier.
type GotoNode struct {
	NodeID string `json:"node_id"`
}

// EndEncounter terminates the walk. Result classifies the ending for the
// travel layer ("defeat" and "capture" abort the voyage).
type EndEncounter struct {
	Result string `json:"result,omitempty"`
}

// TacticalMission defers a boarding/ground mission to an external handler;
// the instance records the pause so it can be persisted and resumed.
type TacticalMission struct {
	MissionID string `json:"mission_id"`
}

func (ResourceDelta) Kind() EffectKind   { return KindResourceDelta }
func (CrewInjury) Kind() EffectKind      { return KindCrewInjury }
func (CrewXP) Kind() EffectKind          { return KindCrewXP }
func (AddTrait) Kind() EffectKind        { return KindAddTrait }
func (RemoveTrait) Kind() EffectKind     { return KindRemoveTrait }
func (RecruitCrew) Kind() EffectKind     { return KindRecruitCrew }
func (ShipDamage) Kind() EffectKind      { return KindShipDamage }
func (FactionRep) Kind() EffectKind      { return KindFactionRep }
func (SetFlag) Kind() EffectKind         { return KindSetFlag }
func (TimeDelay) Kind() EffectKind       { return KindTimeDelay }
func (CargoAdd) Kind() EffectKind        { return KindCargoAdd }
func (CargoRemove) Kind() EffectKind     { return KindCargoRemove }
func (GotoNode) Kind() EffectKind        { return KindGotoNode }
func (EndEncounter) Kind() EffectKind    { return KindEndEncounter }
func (TacticalMission) Kind() EffectKind { return KindTacticalMission }

type effectEnvelope struct {
	Kind    EffectKind      `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// MarshalEffects encodes an effect list as tagged JSON envelopes, for the
// session store.
func MarshalEffects(effects []Effect) ([]byte, error) {
	envs := make([]effectEnvelope, 0, len(effects))
	for i, e := range effects {
		payload, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("marshal effect %d (%s): %w", i, e.Kind(), err)
		}
		envs = append(envs, effectEnvelope{Kind: e.Kind(), Payload: payload})
	}
	return json.Marshal(envs)
}

// UnmarshalEffects decodes a tagged-envelope effect list.
func UnmarshalEffects(data []byte) ([]Effect, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var envs []effectEnvelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return nil, fmt.Errorf("unmarshal effect list: %w", err)
	}
	effects := make([]Effect, 0, len(envs))
	for i, env := range envs {
		e, err := decodeEffect(env)
		if err != nil {
			return nil, fmt.Errorf("effect %d: %w", i, err)
		}
		effects = append(effects, e)
	}
	return effects, nil
}

func decodeEffect(env effectEnvelope) (Effect, error) {
	var target Effect
	switch env.Kind {
	case KindResourceDelta:
		target = &ResourceDelta{}
	case KindCrewInjury:
		target = &CrewInjury{}
	case KindCrewXP:
		target = &CrewXP{}
	case KindAddTrait:
		target = &AddTrait{}
	case KindRemoveTrait:
		target = &RemoveTrait{}
	case KindRecruitCrew:
		target = &RecruitCrew{}
	case KindShipDamage:
		target = &ShipDamage{}
	case KindFactionRep:
		target = &FactionRep{}
	case KindSetFlag:
		target = &SetFlag{}
	case KindTimeDelay:
		target = &TimeDelay{}
	case KindCargoAdd:
		target = &CargoAdd{}
	case KindCargoRemove:
		target = &CargoRemove{}
	case KindGotoNode:
		target = &GotoNode{}
	case KindEndEncounter:
		target = &EndEncounter{}
	case KindTacticalMission:
		target = &TacticalMission{}
	default:
		return nil, fmt.Errorf("unknown effect kind %q", env.Kind)
	}
	if err := json.Unmarshal(env.Payload, target); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", env.Kind, err)
	}
	return deref(target), nil
}

// deref returns the value form so decoded effects compare equal to
// authored ones.
func deref(e Effect) Effect {
	switch v := e.(type) {
	case *ResourceDelta:
		return *v
	case *CrewInjury:
		return *v
	case *CrewXP:
		return *v
	case *AddTrait:
		return *v
	case *RemoveTrait:
		return *v
	case *RecruitCrew:
		return *v
	case *ShipDamage:
		return *v
	case *FactionRep:
		return *v
	case *SetFlag:
		return *v
	case *TimeDelay:
		return *v
	case *CargoAdd:
		return *v
	case *CargoRemove:
		return *v
	case *GotoNode:
		return *v
	case *EndEncounter:
		return *v
	case *TacticalMission:
		return *v
	}
	return e
}
