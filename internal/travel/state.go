package travel

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/starlanes/internal/world"
)

// TriggerRecord is one entry of a voyage's encounter history.
type TriggerRecord struct {
	Day          int    `json:"day"`
	SegmentIndex int    `json:"segment_index"`
	TemplateID   string `json:"template_id"`
	InstanceID   string `json:"instance_id"`
	Result       string `json:"result,omitempty"`
}

// State is the mutable progress cursor over a Plan. It is owned by
// whoever drives the voyage, serializes for save/resume, and is
// discarded when travel completes or is abandoned.
type State struct {
	SessionID string `json:"session_id"`
	Plan      *Plan  `json:"plan"`

	SegmentIndex int `json:"segment_index"`
	DayInSegment int `json:"day_in_segment"` // completed days within the segment

	FuelConsumed int `json:"fuel_consumed"`
	DaysElapsed  int `json:"days_elapsed"`

	CurrentLocation world.LocationID `json:"current_location"`

	History []TriggerRecord `json:"history,omitempty"`

	PausedForEncounter bool   `json:"paused_for_encounter"`
	PendingInstanceID  string `json:"pending_instance_id,omitempty"`

	// RNG cursor, captured at every pause point so a restored process
	// replays the same draws.
	RNGSeed  int64  `json:"rng_seed"`
	RNGCalls uint64 `json:"rng_calls"`
}

// NewState creates a fresh cursor at the plan's origin.
func NewState(plan *Plan) *State {
	return &State{
		SessionID:       uuid.NewString(),
		Plan:            plan,
		CurrentLocation: plan.OriginID,
	}
}

// CurrentSegment returns the segment the cursor is in, or nil when the
// plan is exhausted.
func (s *State) CurrentSegment() *Segment {
	if s.SegmentIndex < 0 || s.SegmentIndex >= len(s.Plan.Segments) {
		return nil
	}
	return &s.Plan.Segments[s.SegmentIndex]
}

// Marshal serializes the state for the session store.
func (s *State) Marshal() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal travel state %s: %w", s.SessionID, err)
	}
	return data, nil
}

// UnmarshalState restores a serialized cursor.
func UnmarshalState(data []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal travel state: %w", err)
	}
	if s.Plan == nil {
		return nil, fmt.Errorf("travel state %s has no plan", s.SessionID)
	}
	return &s, nil
}
