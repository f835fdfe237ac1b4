// Package events carries notable occurrences out of the simulation core to
// UI and logging collaborators. Events are plain data, fire-and-forget;
// the only ordering guarantee is emission order.
package events

import "log/slog"

// Type identifies the kind of event emitted.
type Type string

const (
	TravelStarted      Type = "travel_started"
	SegmentStarted     Type = "segment_started"
	SegmentCompleted   Type = "segment_completed"
	EncounterTriggered Type = "encounter_triggered"
	EncounterResolved  Type = "encounter_resolved"
	TravelCompleted    Type = "travel_completed"
	TravelInterrupted  Type = "travel_interrupted"
	OptionSelected     Type = "option_selected"
	NodeEntered        Type = "node_entered"
	EncounterCompleted Type = "encounter_completed"
)

// Event is one occurrence. Seq is assigned by the Bus in emission order;
// Day is the campaign day the event happened on.
type Event struct {
	Seq  uint64 `json:"seq"`
	Type Type   `json:"type"`
	Day  int    `json:"day"`
	Data any    `json:"data,omitempty"`
}

// Sink receives emitted events.
type Sink interface {
	Emit(Event)
}

// Bus assigns sequence numbers and fans events out to sinks in
// registration order.
type Bus struct {
	seq   uint64
	sinks []Sink
}

// NewBus creates an empty bus. A bus with no sinks drops events.
func NewBus(sinks ...Sink) *Bus {
	return &Bus{sinks: sinks}
}

// Attach adds a sink. Events emitted earlier are not replayed.
func (b *Bus) Attach(s Sink) {
	b.sinks = append(b.sinks, s)
}

// Emit stamps the event with the next sequence number and delivers it.
func (b *Bus) Emit(t Type, day int, data any) Event {
	b.seq++
	ev := Event{Seq: b.seq, Type: t, Day: day, Data: data}
	for _, s := range b.sinks {
		s.Emit(ev)
	}
	return ev
}

// SlogSink logs every event at debug level.
type SlogSink struct{}

func (SlogSink) Emit(ev Event) {
	slog.Debug("event", "seq", ev.Seq, "type", ev.Type, "day", ev.Day)
}

// Recorder keeps every event it sees, for tests and replay inspection.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Emit(ev Event) {
	r.Events = append(r.Events, ev)
}

// Types returns the recorded event types in order.
func (r *Recorder) Types() []Type {
	out := make([]Type, len(r.Events))
	for i, ev := range r.Events {
		out[i] = ev.Type
	}
	return out
}
