package travel

import (
	"log/slog"

	"github.com/talgya/starlanes/internal/encounter"
	"github.com/talgya/starlanes/internal/events"
	"github.com/talgya/starlanes/internal/rng"
	"github.com/talgya/starlanes/internal/world"
)

// Status classifies an Execute/Resume return.
type Status string

const (
	StatusCompleted   Status = "completed"
	StatusPaused      Status = "paused"
	StatusInterrupted Status = "interrupted"
)

// InterruptReason codes why a voyage stopped short of its destination.
type InterruptReason string

const (
	InterruptNone             InterruptReason = ""
	InterruptInvalidPlan      InterruptReason = "invalid_plan"
	InterruptInsufficientFuel InterruptReason = "insufficient_fuel"
	InterruptDefeat           InterruptReason = "defeat"
	InterruptCapture          InterruptReason = "capture"
)

// WorldAccess is the executor's window onto live campaign state. Only
// the executor mutates through it, and only between pause points.
type WorldAccess interface {
	Fuel() int
	SpendFuel(amount int)
	AdvanceClock(days int)
	SetLocation(id world.LocationID)
	CurrentDay() int

	// Snapshot freezes the campaign-side inputs of an encounter
	// context (resources, crew, faction rep, flags, cargo). The
	// executor fills in the travel-side fields.
	Snapshot() encounter.ContextParams
}

// Result reports one Execute or Resume call. Paused results carry
// everything needed to drive the encounter and later call Resume,
// including after a process restart.
type Result struct {
	Status Status
	Reason InterruptReason

	State *State

	// Set when Status is StatusPaused.
	Instance     *encounter.Instance
	EncounterCtx *encounter.Context

	FinalLocation world.LocationID
	FuelConsumed  int
	DaysElapsed   int
	History       []TriggerRecord
}

// EncounterOutcome is what the caller reports back to Resume once the
// paused encounter has been driven to completion.
type EncounterOutcome struct {
	InstanceID string
	Result     string // terminal classification; defeat/capture abort travel
}

// Executor walks a plan day by day: fuel, then time, then the encounter
// roll, in that fixed order. It never blocks on an encounter: a trigger
// returns a paused Result and the caller resumes when done.
type Executor struct {
	graph    *world.Graph
	registry *encounter.Registry
	bus      *events.Bus
	stream   *rng.Stream
}

// NewExecutor creates an executor drawing from stream. To resume a saved
// session in a fresh process, restore the stream from the state's RNG
// cursor first.
func NewExecutor(g *world.Graph, reg *encounter.Registry, bus *events.Bus, stream *rng.Stream) *Executor {
	if bus == nil {
		bus = events.NewBus()
	}
	return &Executor{graph: g, registry: reg, bus: bus, stream: stream}
}

// TravelStartedData is the payload for travel_started events.
type TravelStartedData struct {
	SessionID   string           `json:"session_id"`
	Origin      world.LocationID `json:"origin"`
	Destination world.LocationID `json:"destination"`
	TotalFuel   int              `json:"total_fuel"`
	TotalDays   int              `json:"total_days"`
}

// SegmentData is the payload for segment_started/segment_completed.
type SegmentData struct {
	SessionID string           `json:"session_id"`
	Index     int              `json:"index"`
	From      world.LocationID `json:"from"`
	To        world.LocationID `json:"to"`
}

// EncounterTriggeredData is the payload for encounter_triggered.
type EncounterTriggeredData struct {
	SessionID  string `json:"session_id"`
	InstanceID string `json:"instance_id"`
	TemplateID string `json:"template_id"`
	Segment    int    `json:"segment"`
}

// EncounterResolvedData is the payload for encounter_resolved.
type EncounterResolvedData struct {
	SessionID  string `json:"session_id"`
	InstanceID string `json:"instance_id"`
	Result     string `json:"result,omitempty"`
}

// TravelEndData is the payload for travel_completed/travel_interrupted.
type TravelEndData struct {
	SessionID string           `json:"session_id"`
	Location  world.LocationID `json:"location"`
	Reason    InterruptReason  `json:"reason,omitempty"`
	Fuel      int              `json:"fuel"`
	Days      int              `json:"days"`
}

// Execute starts a voyage over plan. The total fuel requirement is
// checked up front; an underfunded voyage is rejected before anything is
// consumed.
func (e *Executor) Execute(plan *Plan, access WorldAccess) *Result {
	if plan == nil || !plan.Valid {
		reason := InterruptInvalidPlan
		if plan != nil && plan.Reason == ReasonNoRoute {
			reason = InterruptReason(plan.Reason)
		}
		return &Result{Status: StatusInterrupted, Reason: reason}
	}

	if plan.TotalFuel > access.Fuel() {
		slog.Info("voyage rejected, not enough fuel",
			"required", plan.TotalFuel, "available", access.Fuel())
		return &Result{
			Status:        StatusInterrupted,
			Reason:        InterruptInsufficientFuel,
			FinalLocation: plan.OriginID,
		}
	}

	state := NewState(plan)
	e.bus.Emit(events.TravelStarted, access.CurrentDay(), TravelStartedData{
		SessionID:   state.SessionID,
		Origin:      plan.OriginID,
		Destination: plan.DestinationID,
		TotalFuel:   plan.TotalFuel,
		TotalDays:   plan.TotalDays,
	})

	return e.run(state, access)
}

// Resume continues a paused voyage after its encounter resolved. A
// defeat or capture classification aborts travel at the current
// location; anything else continues the day loop.
func (e *Executor) Resume(state *State, access WorldAccess, outcome EncounterOutcome) *Result {
	if state == nil || !state.PausedForEncounter {
		return &Result{Status: StatusInterrupted, Reason: InterruptInvalidPlan, State: state}
	}

	state.PausedForEncounter = false
	state.PendingInstanceID = ""
	if n := len(state.History); n > 0 && state.History[n-1].InstanceID == outcome.InstanceID {
		state.History[n-1].Result = outcome.Result
	}

	e.bus.Emit(events.EncounterResolved, access.CurrentDay(), EncounterResolvedData{
		SessionID:  state.SessionID,
		InstanceID: outcome.InstanceID,
		Result:     outcome.Result,
	})

	switch outcome.Result {
	case string(InterruptDefeat):
		return e.interrupt(state, access, InterruptDefeat)
	case string(InterruptCapture):
		return e.interrupt(state, access, InterruptCapture)
	}

	return e.run(state, access)
}

// run drives the segment/day loop from wherever the cursor stands.
func (e *Executor) run(state *State, access WorldAccess) *Result {
	for state.SegmentIndex < len(state.Plan.Segments) {
		seg := state.CurrentSegment()

		if state.DayInSegment == 0 {
			e.bus.Emit(events.SegmentStarted, access.CurrentDay(), SegmentData{
				SessionID: state.SessionID,
				Index:     state.SegmentIndex,
				From:      seg.FromID,
				To:        seg.ToID,
			})
		}

		for state.DayInSegment < seg.TimeDays {
			share := seg.DayFuel(state.DayInSegment)

			// Abort before consuming anything for the failed day.
			if access.Fuel() < share {
				return e.interrupt(state, access, InterruptInsufficientFuel)
			}

			// Fixed daily order: fuel, time, encounter roll.
			access.SpendFuel(share)
			state.FuelConsumed += share
			access.AdvanceClock(1)
			state.DaysElapsed++
			state.DayInSegment++

			if roll := e.stream.Float(); roll < seg.EncounterChance {
				if result := e.trigger(state, access, seg); result != nil {
					return result
				}
				// No content matched the segment; the day passes quietly.
			}
		}

		state.CurrentLocation = seg.ToID
		access.SetLocation(seg.ToID)
		e.bus.Emit(events.SegmentCompleted, access.CurrentDay(), SegmentData{
			SessionID: state.SessionID,
			Index:     state.SegmentIndex,
			From:      seg.FromID,
			To:        seg.ToID,
		})
		state.SegmentIndex++
		state.DayInSegment = 0
	}

	e.bus.Emit(events.TravelCompleted, access.CurrentDay(), TravelEndData{
		SessionID: state.SessionID,
		Location:  state.CurrentLocation,
		Fuel:      state.FuelConsumed,
		Days:      state.DaysElapsed,
	})
	return &Result{
		Status:        StatusCompleted,
		State:         state,
		FinalLocation: state.CurrentLocation,
		FuelConsumed:  state.FuelConsumed,
		DaysElapsed:   state.DaysElapsed,
		History:       state.History,
	}
}

// trigger fires an encounter on the current segment: freeze a context,
// pick a template, allocate an instance, mark the pause and hand control
// back to the caller. Returns nil when no template matches.
func (e *Executor) trigger(state *State, access WorldAccess, seg *Segment) *Result {
	candidates := e.registry.ByTag(seg.SuggestedTag)
	if len(candidates) == 0 {
		candidates = e.registry.All()
	}
	if len(candidates) == 0 {
		slog.Warn("encounter triggered with empty registry",
			"session", state.SessionID, "segment", state.SegmentIndex)
		return nil
	}
	tmpl := candidates[e.stream.IntN(len(candidates))]

	ctx := e.buildContext(state, access, seg)
	inst := encounter.NewInstance(tmpl)

	state.History = append(state.History, TriggerRecord{
		Day:          state.DaysElapsed,
		SegmentIndex: state.SegmentIndex,
		TemplateID:   tmpl.ID,
		InstanceID:   inst.ID,
	})
	state.PausedForEncounter = true
	state.PendingInstanceID = inst.ID
	state.RNGSeed = e.stream.Seed()
	state.RNGCalls = e.stream.Calls()

	e.bus.Emit(events.EncounterTriggered, access.CurrentDay(), EncounterTriggeredData{
		SessionID:  state.SessionID,
		InstanceID: inst.ID,
		TemplateID: tmpl.ID,
		Segment:    state.SegmentIndex,
	})

	return &Result{
		Status:        StatusPaused,
		State:         state,
		Instance:      inst,
		EncounterCtx:  ctx,
		FinalLocation: state.CurrentLocation,
		FuelConsumed:  state.FuelConsumed,
		DaysElapsed:   state.DaysElapsed,
		History:       state.History,
	}
}

// buildContext merges the campaign snapshot with the travel-side fields
// into the frozen context conditions and checks evaluate against.
func (e *Executor) buildContext(state *State, access WorldAccess, seg *Segment) *encounter.Context {
	params := access.Snapshot()
	params.Day = access.CurrentDay()
	params.CurrentLocation = string(state.CurrentLocation)
	params.Destination = string(state.Plan.DestinationID)
	params.RouteHazard = seg.HazardLevel

	if loc, ok := e.graph.Location(state.CurrentLocation); ok {
		params.LocationTags = loc.Tags
		params.OwningFaction = loc.Faction
	}
	if lane := e.findLane(seg); lane != nil {
		params.RouteTags = lane.Tags
	}

	return encounter.NewContext(params)
}

func (e *Executor) findLane(seg *Segment) *world.Lane {
	for _, lane := range e.graph.LanesFrom(seg.FromID) {
		if lane.Other(seg.FromID) == seg.ToID {
			return lane
		}
	}
	return nil
}

func (e *Executor) interrupt(state *State, access WorldAccess, reason InterruptReason) *Result {
	e.bus.Emit(events.TravelInterrupted, access.CurrentDay(), TravelEndData{
		SessionID: state.SessionID,
		Location:  state.CurrentLocation,
		Reason:    reason,
		Fuel:      state.FuelConsumed,
		Days:      state.DaysElapsed,
	})
	return &Result{
		Status:        StatusInterrupted,
		Reason:        reason,
		State:         state,
		FinalLocation: state.CurrentLocation,
		FuelConsumed:  state.FuelConsumed,
		DaysElapsed:   state.DaysElapsed,
		History:       state.History,
	}
}
