package travel

import (
	"testing"

	"github.com/talgya/starlanes/internal/encounter"
	"github.com/talgya/starlanes/internal/events"
	"github.com/talgya/starlanes/internal/rng"
	"github.com/talgya/starlanes/internal/world"
)

// stubAccess is a minimal WorldAccess for executor tests.
type stubAccess struct {
	fuel     int
	day      int
	location world.LocationID
	params   encounter.ContextParams
}

func (s *stubAccess) Fuel() int                         { return s.fuel }
func (s *stubAccess) SpendFuel(n int)                   { s.fuel -= n }
func (s *stubAccess) AdvanceClock(days int)             { s.day += days }
func (s *stubAccess) SetLocation(id world.LocationID)   { s.location = id }
func (s *stubAccess) CurrentDay() int                   { return s.day }
func (s *stubAccess) Snapshot() encounter.ContextParams { return s.params }

func quietPlan(fuel, days int) *Plan {
	return &Plan{
		OriginID:      "a",
		DestinationID: "b",
		Segments: []Segment{
			{FromID: "a", ToID: "b", FuelCost: fuel, TimeDays: days, EncounterChance: 0},
		},
		TotalFuel: fuel,
		TotalDays: days,
		Valid:     true,
	}
}

func hotRegistry(t *testing.T) *encounter.Registry {
	t.Helper()
	reg := encounter.NewRegistry()
	err := reg.Register(&encounter.Template{
		ID:          "sensor_ghost",
		Tags:        []string{"opportunity"},
		EntryNodeID: "beat",
		Nodes: map[string]*encounter.Node{
			"beat": {ID: "beat", Auto: &encounter.Outcome{Effects: []encounter.Effect{encounter.EndEncounter{}}}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func newTestExecutor(reg *encounter.Registry, rec *events.Recorder, seed int64) *Executor {
	var bus *events.Bus
	if rec != nil {
		bus = events.NewBus(rec)
	}
	return NewExecutor(world.NewGraph(), reg, bus, rng.NewStream("travel", seed))
}

func TestExecuteCompletesQuietVoyage(t *testing.T) {
	// One segment, 15 fuel over 2 days: 7 on day one, 8 on day two.
	rec := &events.Recorder{}
	e := newTestExecutor(hotRegistry(t), rec, 1)
	access := &stubAccess{fuel: 20, location: "a"}

	res := e.Execute(quietPlan(15, 2), access)
	if res.Status != StatusCompleted {
		t.Fatalf("status = %s (%s)", res.Status, res.Reason)
	}
	if res.DaysElapsed != 2 || res.FuelConsumed != 15 {
		t.Errorf("days=%d fuel=%d, want 2/15", res.DaysElapsed, res.FuelConsumed)
	}
	if access.fuel != 5 || access.day != 2 || access.location != "b" {
		t.Errorf("world after voyage: fuel=%d day=%d loc=%s", access.fuel, access.day, access.location)
	}

	want := []events.Type{
		events.TravelStarted, events.SegmentStarted,
		events.SegmentCompleted, events.TravelCompleted,
	}
	got := rec.Types()
	if len(got) != len(want) {
		t.Fatalf("events = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestExecuteRejectsUnderfundedVoyageUpFront(t *testing.T) {
	e := newTestExecutor(hotRegistry(t), nil, 1)
	access := &stubAccess{fuel: 5, location: "a"}

	res := e.Execute(quietPlan(30, 3), access)
	if res.Status != StatusInterrupted || res.Reason != InterruptInsufficientFuel {
		t.Fatalf("result = %s/%s", res.Status, res.Reason)
	}
	if access.fuel != 5 || access.day != 0 || access.location != "a" {
		t.Errorf("rejection consumed state: fuel=%d day=%d loc=%s", access.fuel, access.day, access.location)
	}
}

func TestExecuteRejectsInvalidPlan(t *testing.T) {
	e := newTestExecutor(hotRegistry(t), nil, 1)
	res := e.Execute(&Plan{Reason: ReasonNoRoute}, &stubAccess{fuel: 100})
	if res.Status != StatusInterrupted || res.Reason != InterruptReason(ReasonNoRoute) {
		t.Fatalf("result = %s/%s", res.Status, res.Reason)
	}
}

func certainPlan(days int) *Plan {
	return &Plan{
		OriginID:      "a",
		DestinationID: "b",
		Segments: []Segment{
			{FromID: "a", ToID: "b", FuelCost: days, TimeDays: days, EncounterChance: 1.0, SuggestedTag: "opportunity"},
		},
		TotalFuel: days,
		TotalDays: days,
		Valid:     true,
	}
}

func TestTriggerPausesWithInstanceAndContext(t *testing.T) {
	rec := &events.Recorder{}
	e := newTestExecutor(hotRegistry(t), rec, 7)
	access := &stubAccess{fuel: 10, location: "a", params: encounter.ContextParams{
		Resources: map[string]int{"credits": 100},
	}}

	res := e.Execute(certainPlan(3), access)
	if res.Status != StatusPaused {
		t.Fatalf("status = %s", res.Status)
	}
	if res.Instance == nil || res.EncounterCtx == nil {
		t.Fatal("paused result missing instance or context")
	}
	if res.Instance.Template.ID != "sensor_ghost" {
		t.Errorf("template = %s", res.Instance.Template.ID)
	}

	st := res.State
	if !st.PausedForEncounter || st.PendingInstanceID != res.Instance.ID {
		t.Errorf("pause flags: %v %q", st.PausedForEncounter, st.PendingInstanceID)
	}
	if len(st.History) != 1 || st.History[0].InstanceID != res.Instance.ID {
		t.Errorf("history = %+v", st.History)
	}
	// Day one consumed before the roll.
	if st.DaysElapsed != 1 || st.FuelConsumed != 1 {
		t.Errorf("days=%d fuel=%d at pause", st.DaysElapsed, st.FuelConsumed)
	}
	// Context carries the campaign snapshot.
	if res.EncounterCtx.Resource("credits") != 100 {
		t.Error("context missing campaign resources")
	}
	if got := rec.Types()[len(rec.Types())-1]; got != events.EncounterTriggered {
		t.Errorf("last event = %s", got)
	}
}

func TestResumeContinuesToCompletion(t *testing.T) {
	e := newTestExecutor(hotRegistry(t), nil, 7)
	access := &stubAccess{fuel: 10, location: "a"}

	res := e.Execute(certainPlan(2), access)
	for res.Status == StatusPaused {
		res = e.Resume(res.State, access, EncounterOutcome{InstanceID: res.Instance.ID})
	}
	if res.Status != StatusCompleted {
		t.Fatalf("final status = %s/%s", res.Status, res.Reason)
	}
	if res.DaysElapsed != 2 || res.FuelConsumed != 2 {
		t.Errorf("days=%d fuel=%d", res.DaysElapsed, res.FuelConsumed)
	}
	if res.State.History[0].Result != "" {
		t.Errorf("ordinary completion recorded %q", res.State.History[0].Result)
	}
}

func TestResumeAbortsOnDefeatAndCapture(t *testing.T) {
	for _, verdict := range []string{"defeat", "capture"} {
		e := newTestExecutor(hotRegistry(t), nil, 7)
		access := &stubAccess{fuel: 10, location: "a"}

		res := e.Execute(certainPlan(3), access)
		if res.Status != StatusPaused {
			t.Fatalf("status = %s", res.Status)
		}
		res = e.Resume(res.State, access, EncounterOutcome{
			InstanceID: res.Instance.ID,
			Result:     verdict,
		})
		if res.Status != StatusInterrupted || string(res.Reason) != verdict {
			t.Fatalf("%s: result = %s/%s", verdict, res.Status, res.Reason)
		}
		// Aborted mid-segment: still at the segment's origin side.
		if res.FinalLocation != "a" {
			t.Errorf("%s: final location = %s", verdict, res.FinalLocation)
		}
		if res.State.History[0].Result != verdict {
			t.Errorf("%s: history result = %q", verdict, res.State.History[0].Result)
		}
	}
}

func TestMidVoyageFuelExhaustionLeavesDayUnconsumed(t *testing.T) {
	e := newTestExecutor(hotRegistry(t), nil, 7)
	access := &stubAccess{fuel: 10, location: "a"}

	res := e.Execute(certainPlan(3), access)
	if res.Status != StatusPaused {
		t.Fatalf("status = %s", res.Status)
	}

	// The encounter drained the tank while travel was paused.
	access.fuel = 0
	daysBefore := res.State.DaysElapsed
	fuelBefore := res.State.FuelConsumed

	res = e.Resume(res.State, access, EncounterOutcome{InstanceID: res.Instance.ID})
	if res.Status != StatusInterrupted || res.Reason != InterruptInsufficientFuel {
		t.Fatalf("result = %s/%s", res.Status, res.Reason)
	}
	if res.State.DaysElapsed != daysBefore || res.State.FuelConsumed != fuelBefore {
		t.Error("failed day partially consumed")
	}
	if access.fuel != 0 {
		t.Error("fuel deducted on the failed day")
	}
}

func TestResumeRequiresPausedState(t *testing.T) {
	e := newTestExecutor(hotRegistry(t), nil, 1)
	res := e.Resume(nil, &stubAccess{}, EncounterOutcome{})
	if res.Status != StatusInterrupted {
		t.Fatalf("status = %s", res.Status)
	}
}

func TestStateRoundTrip(t *testing.T) {
	e := newTestExecutor(hotRegistry(t), nil, 7)
	access := &stubAccess{fuel: 10, location: "a"}
	res := e.Execute(certainPlan(3), access)
	if res.Status != StatusPaused {
		t.Fatalf("status = %s", res.Status)
	}

	data, err := res.State.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	restored, err := UnmarshalState(data)
	if err != nil {
		t.Fatal(err)
	}
	if restored.SessionID != res.State.SessionID ||
		restored.PendingInstanceID != res.State.PendingInstanceID ||
		restored.DaysElapsed != res.State.DaysElapsed {
		t.Error("state fields lost in round trip")
	}
	if len(restored.Plan.Segments) != 1 {
		t.Error("plan lost in round trip")
	}

	// A fresh process restores the stream from the saved cursor and
	// finishes the voyage the same way.
	e2 := NewExecutor(world.NewGraph(), hotRegistry(t), nil,
		rng.Restore("travel", restored.RNGSeed, restored.RNGCalls))
	out := e2.Resume(restored, access, EncounterOutcome{InstanceID: restored.PendingInstanceID})
	for out.Status == StatusPaused {
		out = e2.Resume(out.State, access, EncounterOutcome{InstanceID: out.Instance.ID})
	}
	if out.Status != StatusCompleted {
		t.Fatalf("restored voyage ended %s/%s", out.Status, out.Reason)
	}
}

func TestDeterministicTraces(t *testing.T) {
	run := func() ([]events.Type, []TriggerRecord) {
		rec := &events.Recorder{}
		e := newTestExecutor(hotRegistry(t), rec, 1234)
		access := &stubAccess{fuel: 50, location: "a"}
		plan := &Plan{
			OriginID:      "a",
			DestinationID: "c",
			Segments: []Segment{
				{FromID: "a", ToID: "b", FuelCost: 6, TimeDays: 2, EncounterChance: 0.5, SuggestedTag: "opportunity"},
				{FromID: "b", ToID: "c", FuelCost: 9, TimeDays: 3, EncounterChance: 0.5, SuggestedTag: "opportunity"},
			},
			TotalFuel: 15,
			TotalDays: 5,
			Valid:     true,
		}
		res := e.Execute(plan, access)
		for res.Status == StatusPaused {
			res = e.Resume(res.State, access, EncounterOutcome{InstanceID: res.Instance.ID})
		}
		if res.Status != StatusCompleted {
			t.Fatalf("run ended %s/%s", res.Status, res.Reason)
		}
		return rec.Types(), res.History
	}

	types1, hist1 := run()
	types2, hist2 := run()

	if len(types1) != len(types2) {
		t.Fatalf("trace lengths differ: %d vs %d", len(types1), len(types2))
	}
	for i := range types1 {
		if types1[i] != types2[i] {
			t.Fatalf("trace %d: %s vs %s", i, types1[i], types2[i])
		}
	}
	if len(hist1) != len(hist2) {
		t.Fatalf("history lengths differ")
	}
	for i := range hist1 {
		if hist1[i].Day != hist2[i].Day || hist1[i].TemplateID != hist2[i].TemplateID {
			t.Fatalf("history %d differs", i)
		}
	}
}
