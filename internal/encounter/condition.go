package encounter

import (
	"encoding/json"
	"fmt"
)

// ConditionKind discriminates condition variants in serialized form.
type ConditionKind string

const (
	CondResourceAtLeast   ConditionKind = "resource_at_least"
	CondHasCrewTrait      ConditionKind = "has_crew_trait"
	CondCargoValueAtLeast ConditionKind = "cargo_value_at_least"
	CondFactionRepAtLeast ConditionKind = "faction_rep_at_least"
	CondLocationHasTag    ConditionKind = "location_has_tag"
	CondBestStatAtLeast   ConditionKind = "best_stat_at_least"
	CondHasFlag           ConditionKind = "has_flag"
	CondNot               ConditionKind = "not"
	CondAll               ConditionKind = "all"
	CondAny               ConditionKind = "any"
)

// Condition gates option visibility. Evaluation is a pure function of the
// frozen Context: no side effects, no RNG, recomputed on every query.
type Condition interface {
	CondKind() ConditionKind
	Evaluate(ctx *Context) bool
}

// ResourceAtLeast passes when a named resource pool meets a minimum.
type ResourceAtLeast struct {
	Resource string `json:"resource"`
	Min      int    `json:"min"`
}

// HasCrewTrait passes when any crew member carries the trait.
type HasCrewTrait struct {
	Trait string `json:"trait"`
}

// CargoValueAtLeast passes when the hold's total value meets a minimum.
type CargoValueAtLeast struct {
	Min int `json:"min"`
}

// FactionRepAtLeast passes when standing with a faction meets a minimum.
type FactionRepAtLeast struct {
	Faction string `json:"faction"`
	Min     int    `json:"min"`
}

// LocationHasTag passes when the current location carries the tag.
type LocationHasTag struct {
	Tag string `json:"tag"`
}

// BestStatAtLeast passes when the best crew value for a stat meets a
// minimum.
type BestStatAtLeast struct {
	Stat Stat `json:"stat"`
	Min  int  `json:"min"`
}

// HasFlag passes when a campaign flag is set.
type HasFlag struct {
	Flag string `json:"flag"`
}

// Not inverts its child.
type Not struct {
	Child Condition `json:"-"`
}

// All passes when every child passes. Empty is vacuously true.
type All struct {
	Children []Condition `json:"-"`
}

// Any passes when at least one child passes. Empty is false.
type Any struct {
	Children []Condition `json:"-"`
}

func (ResourceAtLeast) CondKind() ConditionKind   { return CondResourceAtLeast }
func (HasCrewTrait) CondKind() ConditionKind      { return CondHasCrewTrait }
func (CargoValueAtLeast) CondKind() ConditionKind { return CondCargoValueAtLeast }
func (FactionRepAtLeast) CondKind() ConditionKind { return CondFactionRepAtLeast }
func (LocationHasTag) CondKind() ConditionKind    { return CondLocationHasTag }
func (BestStatAtLeast) CondKind() ConditionKind   { return CondBestStatAtLeast }
func (HasFlag) CondKind() ConditionKind           { return CondHasFlag }
func (Not) CondKind() ConditionKind               { return CondNot }
func (All) CondKind() ConditionKind               { return CondAll }
func (Any) CondKind() ConditionKind               { return CondAny }

func (c ResourceAtLeast) Evaluate(ctx *Context) bool {
	return ctx.Resource(c.Resource) >= c.Min
}

func (c HasCrewTrait) Evaluate(ctx *Context) bool {
	return ctx.HasCrewTrait(c.Trait)
}

func (c CargoValueAtLeast) Evaluate(ctx *Context) bool {
	return ctx.CargoValue() >= c.Min
}

func (c FactionRepAtLeast) Evaluate(ctx *Context) bool {
	return ctx.FactionRep(c.Faction) >= c.Min
}

func (c LocationHasTag) Evaluate(ctx *Context) bool {
	return ctx.LocationHasTag(c.Tag)
}

func (c BestStatAtLeast) Evaluate(ctx *Context) bool {
	return ctx.BestCrewStat(c.Stat) >= c.Min
}

func (c HasFlag) Evaluate(ctx *Context) bool {
	return ctx.HasFlag(c.Flag)
}

func (c Not) Evaluate(ctx *Context) bool {
	return !c.Child.Evaluate(ctx)
}

// Evaluate short-circuits left to right.
func (c All) Evaluate(ctx *Context) bool {
	for _, child := range c.Children {
		if !child.Evaluate(ctx) {
			return false
		}
	}
	return true
}

// Evaluate short-circuits left to right.
func (c Any) Evaluate(ctx *Context) bool {
	for _, child := range c.Children {
		if child.Evaluate(ctx) {
			return true
		}
	}
	return false
}

type conditionEnvelope struct {
	Kind     ConditionKind       `json:"kind"`
	Payload  json.RawMessage     `json:"payload,omitempty"`
	Children []conditionEnvelope `json:"children,omitempty"`
}

// MarshalCondition encodes a condition tree as nested tagged envelopes.
func MarshalCondition(c Condition) ([]byte, error) {
	env, err := encodeCondition(c)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

// UnmarshalCondition decodes a condition tree.
func UnmarshalCondition(data []byte) (Condition, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var env conditionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal condition: %w", err)
	}
	return decodeCondition(env)
}

func encodeCondition(c Condition) (conditionEnvelope, error) {
	env := conditionEnvelope{Kind: c.CondKind()}
	switch v := c.(type) {
	case Not:
		child, err := encodeCondition(v.Child)
		if err != nil {
			return env, err
		}
		env.Children = []conditionEnvelope{child}
	case All:
		for _, ch := range v.Children {
			enc, err := encodeCondition(ch)
			if err != nil {
				return env, err
			}
			env.Children = append(env.Children, enc)
		}
	case Any:
		for _, ch := range v.Children {
			enc, err := encodeCondition(ch)
			if err != nil {
				return env, err
			}
			env.Children = append(env.Children, enc)
		}
	default:
		payload, err := json.Marshal(c)
		if err != nil {
			return env, fmt.Errorf("marshal %s condition: %w", c.CondKind(), err)
		}
		env.Payload = payload
	}
	return env, nil
}

func decodeCondition(env conditionEnvelope) (Condition, error) {
	switch env.Kind {
	case CondNot:
		if len(env.Children) != 1 {
			return nil, fmt.Errorf("not condition has %d children", len(env.Children))
		}
		child, err := decodeCondition(env.Children[0])
		if err != nil {
			return nil, err
		}
		return Not{Child: child}, nil
	case CondAll, CondAny:
		children := make([]Condition, 0, len(env.Children))
		for _, ch := range env.Children {
			dec, err := decodeCondition(ch)
			if err != nil {
				return nil, err
			}
			children = append(children, dec)
		}
		if env.Kind == CondAll {
			return All{Children: children}, nil
		}
		return Any{Children: children}, nil
	}

	var target Condition
	switch env.Kind {
	case CondResourceAtLeast:
		target = &ResourceAtLeast{}
	case CondHasCrewTrait:
		target = &HasCrewTrait{}
	case CondCargoValueAtLeast:
		target = &CargoValueAtLeast{}
	case CondFactionRepAtLeast:
		target = &FactionRepAtLeast{}
	case CondLocationHasTag:
		target = &LocationHasTag{}
	case CondBestStatAtLeast:
		target = &BestStatAtLeast{}
	case CondHasFlag:
		target = &HasFlag{}
	default:
		return nil, fmt.Errorf("unknown condition kind %q", env.Kind)
	}
	if err := json.Unmarshal(env.Payload, target); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", env.Kind, err)
	}
	switch v := target.(type) {
	case *ResourceAtLeast:
		return *v, nil
	case *HasCrewTrait:
		return *v, nil
	case *CargoValueAtLeast:
		return *v, nil
	case *FactionRepAtLeast:
		return *v, nil
	case *LocationHasTag:
		return *v, nil
	case *BestStatAtLeast:
		return *v, nil
	case *HasFlag:
		return *v, nil
	}
	return target, nil
}
