package encounter

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Instance is one live walk over a Template: the current node, the path
// taken, and the ledger of effects accumulated but not yet applied.
// Discard (or persist) once Complete is true and the ledger is drained.
type Instance struct {
	ID               string
	Template         *Template
	CurrentNodeID    string
	VisitedNodes     []string
	PendingEffects   []Effect
	Complete         bool
	Result           string // terminal classification from an end effect
	PausedForMission string // mission id when a tactical hand-off is pending
}

// NewInstance allocates a walk positioned at the template's entry node.
// The entry node is not yet visited; Runner.Start performs the entry.
func NewInstance(t *Template) *Instance {
	return &Instance{
		ID:            uuid.NewString(),
		Template:      t,
		CurrentNodeID: t.EntryNodeID,
	}
}

// CurrentNode returns the node the walk is at. The node id is always a
// key of the template; a miss is a corrupt instance.
func (in *Instance) CurrentNode() *Node {
	node, ok := in.Template.Nodes[in.CurrentNodeID]
	if !ok {
		panic(fmt.Sprintf("encounter: instance %s at unknown node %q of template %q",
			in.ID, in.CurrentNodeID, in.Template.ID))
	}
	return node
}

// DrainEffects returns the pending ledger and empties it, for hand-off to
// the consequence applier.
func (in *Instance) DrainEffects() []Effect {
	effects := in.PendingEffects
	in.PendingEffects = nil
	return effects
}

// instanceSnapshot is the serialized form. The template is stored by id
// and re-resolved against a Registry on load.
type instanceSnapshot struct {
	ID               string          `json:"id"`
	TemplateID       string          `json:"template_id"`
	CurrentNodeID    string          `json:"current_node_id"`
	VisitedNodes     []string        `json:"visited_nodes,omitempty"`
	PendingEffects   json.RawMessage `json:"pending_effects,omitempty"`
	Complete         bool            `json:"complete"`
	Result           string          `json:"result,omitempty"`
	PausedForMission string          `json:"paused_for_mission,omitempty"`
}

// MarshalInstance serializes an instance for the session store.
func MarshalInstance(in *Instance) ([]byte, error) {
	effects, err := MarshalEffects(in.PendingEffects)
	if err != nil {
		return nil, fmt.Errorf("instance %s: %w", in.ID, err)
	}
	return json.Marshal(instanceSnapshot{
		ID:               in.ID,
		TemplateID:       in.Template.ID,
		CurrentNodeID:    in.CurrentNodeID,
		VisitedNodes:     in.VisitedNodes,
		PendingEffects:   effects,
		Complete:         in.Complete,
		Result:           in.Result,
		PausedForMission: in.PausedForMission,
	})
}

// UnmarshalInstance restores an instance, resolving its template id
// against the registry.
func UnmarshalInstance(data []byte, reg *Registry) (*Instance, error) {
	var snap instanceSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal instance: %w", err)
	}
	tmpl, ok := reg.Get(snap.TemplateID)
	if !ok {
		return nil, fmt.Errorf("restore instance %s: template %q not registered", snap.ID, snap.TemplateID)
	}
	effects, err := UnmarshalEffects(snap.PendingEffects)
	if err != nil {
		return nil, fmt.Errorf("restore instance %s: %w", snap.ID, err)
	}
	if _, ok := tmpl.Nodes[snap.CurrentNodeID]; !ok {
		return nil, fmt.Errorf("restore instance %s: node %q not in template %q", snap.ID, snap.CurrentNodeID, tmpl.ID)
	}
	return &Instance{
		ID:               snap.ID,
		Template:         tmpl,
		CurrentNodeID:    snap.CurrentNodeID,
		VisitedNodes:     snap.VisitedNodes,
		PendingEffects:   effects,
		Complete:         snap.Complete,
		Result:           snap.Result,
		PausedForMission: snap.PausedForMission,
	}, nil
}
