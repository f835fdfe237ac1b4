package encounter

import (
	"errors"
	"log/slog"

	"github.com/talgya/starlanes/internal/events"
	"github.com/talgya/starlanes/internal/rng"
)

// Runner failure values. The instance is never mutated when one of these
// is returned; callers branch and retry rather than assume progress.
var (
	ErrNilInstance      = errors.New("encounter: nil instance")
	ErrInstanceComplete = errors.New("encounter: instance already complete")
	ErrInvalidOption    = errors.New("encounter: option index out of range")
)

// maxAutoChain bounds automatic-transition draining so a mis-authored
// goto cycle cannot hang the walk.
const maxAutoChain = 64

// Runner advances instances. It holds no per-encounter state; all walk
// state lives on the Instance, which is what makes mid-encounter saves
// possible.
type Runner struct {
	bus *events.Bus
}

// NewRunner creates a runner emitting on bus (nil for silent operation).
func NewRunner(bus *events.Bus) *Runner {
	if bus == nil {
		bus = events.NewBus()
	}
	return &Runner{bus: bus}
}

// StepResult reports what one call to Start or SelectOption did.
type StepResult struct {
	Check         *CheckResult // nil when no skill check was involved
	NodeID        string       // node the walk rests at afterwards
	Complete      bool
	Result        string // terminal classification, when Complete
	AwaitingInput bool
}

// NodeEnteredData is the payload for node_entered events.
type NodeEnteredData struct {
	InstanceID string `json:"instance_id"`
	TemplateID string `json:"template_id"`
	NodeID     string `json:"node_id"`
}

// OptionSelectedData is the payload for option_selected events.
type OptionSelectedData struct {
	InstanceID string       `json:"instance_id"`
	OptionID   string       `json:"option_id"`
	Check      *CheckResult `json:"check,omitempty"`
}

// Start enters the template's entry node and drains any automatic
// transitions. Call once per instance, before the first choice.
func (r *Runner) Start(in *Instance, ctx *Context) (*StepResult, error) {
	if in == nil {
		return nil, ErrNilInstance
	}
	if in.Complete {
		return nil, ErrInstanceComplete
	}

	r.enterNode(in, ctx, in.CurrentNodeID)
	r.drainAuto(in, ctx)
	return r.stepResult(in, nil), nil
}

// AvailableOptions returns the current node's options whose conditions
// pass against ctx. Visibility is recomputed from the live context on
// every call, never cached.
func (r *Runner) AvailableOptions(in *Instance, ctx *Context) []*Option {
	if in == nil || in.Complete {
		return nil
	}
	node := in.CurrentNode()
	var visible []*Option
	for _, opt := range node.Options {
		if opt.Condition == nil || opt.Condition.Evaluate(ctx) {
			visible = append(visible, opt)
		}
	}
	return visible
}

// SelectOption resolves the index-th *visible* option: directly, or via
// its skill check, drawing from stream. Effects append to the pending
// ledger; goto/end effects drive the walk instead. Afterwards automatic
// nodes drain until player input is needed or the walk terminates.
func (r *Runner) SelectOption(in *Instance, ctx *Context, index int, stream *rng.Stream) (*StepResult, error) {
	if in == nil {
		return nil, ErrNilInstance
	}
	if in.Complete {
		return nil, ErrInstanceComplete
	}

	visible := r.AvailableOptions(in, ctx)
	if index < 0 || index >= len(visible) {
		return nil, ErrInvalidOption
	}
	opt := visible[index]

	var check *CheckResult
	var outcome *Outcome
	if opt.Check != nil {
		check = ResolveCheck(opt.Check, ctx, stream)
		if check.Success {
			outcome = opt.Success
		} else {
			outcome = opt.Failure
		}
	} else {
		outcome = opt.Outcome
	}

	r.bus.Emit(events.OptionSelected, ctx.Day, OptionSelectedData{
		InstanceID: in.ID,
		OptionID:   opt.ID,
		Check:      check,
	})

	r.applyOutcome(in, ctx, outcome)
	r.drainAuto(in, ctx)

	if in.Complete {
		r.bus.Emit(events.EncounterCompleted, ctx.Day, NodeEnteredData{
			InstanceID: in.ID,
			TemplateID: in.Template.ID,
			NodeID:     in.CurrentNodeID,
		})
	}
	return r.stepResult(in, check), nil
}

func (r *Runner) stepResult(in *Instance, check *CheckResult) *StepResult {
	return &StepResult{
		Check:         check,
		NodeID:        in.CurrentNodeID,
		Complete:      in.Complete,
		Result:        in.Result,
		AwaitingInput: !in.Complete && !in.CurrentNode().IsAutomatic(),
	}
}

// applyOutcome appends the outcome's effects to the pending ledger,
// consuming goto/end effects to move the walk, then applies the
// outcome-level transition.
func (r *Runner) applyOutcome(in *Instance, ctx *Context, out *Outcome) {
	if out == nil {
		return
	}
	for _, eff := range out.Effects {
		switch e := eff.(type) {
		case GotoNode:
			r.gotoNode(in, ctx, e.NodeID)
		case EndEncounter:
			in.Complete = true
			in.Result = e.Result
		case TacticalMission:
			in.PausedForMission = e.MissionID
			in.PendingEffects = append(in.PendingEffects, eff)
		default:
			in.PendingEffects = append(in.PendingEffects, eff)
		}
	}
	if in.Complete {
		return
	}
	if out.NextNodeID != "" {
		r.gotoNode(in, ctx, out.NextNodeID)
	}
	if out.End {
		in.Complete = true
		in.Result = out.EndResult
	}
}

// gotoNode transitions to a node by id. An unknown id is a content
// authoring defect: it is logged and ignored, leaving the walk where it
// was.
func (r *Runner) gotoNode(in *Instance, ctx *Context, nodeID string) {
	if _, ok := in.Template.Nodes[nodeID]; !ok {
		slog.Warn("encounter goto target missing, staying put",
			"template", in.Template.ID,
			"instance", in.ID,
			"from", in.CurrentNodeID,
			"target", nodeID,
		)
		return
	}
	r.enterNode(in, ctx, nodeID)
}

func (r *Runner) enterNode(in *Instance, ctx *Context, nodeID string) {
	in.CurrentNodeID = nodeID
	in.VisitedNodes = append(in.VisitedNodes, nodeID)
	r.bus.Emit(events.NodeEntered, ctx.Day, NodeEnteredData{
		InstanceID: in.ID,
		TemplateID: in.Template.ID,
		NodeID:     nodeID,
	})
}

// drainAuto advances through narration-only nodes until the walk needs
// input or terminates.
func (r *Runner) drainAuto(in *Instance, ctx *Context) {
	for i := 0; i < maxAutoChain; i++ {
		if in.Complete {
			return
		}
		node := in.CurrentNode()
		if !node.IsAutomatic() {
			return
		}
		before := in.CurrentNodeID
		r.applyOutcome(in, ctx, node.Auto)
		if !in.Complete && in.CurrentNodeID == before {
			// Auto node without a reachable transition; stop rather
			// than spin on it.
			slog.Warn("encounter auto node did not advance",
				"template", in.Template.ID, "node", before)
			return
		}
	}
	slog.Warn("encounter auto chain exceeded limit, halting drain",
		"template", in.Template.ID,
		"instance", in.ID,
		"node", in.CurrentNodeID,
	)
}
