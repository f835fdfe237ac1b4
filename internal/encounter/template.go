// Package encounter implements branching narrative encounters: authored
// templates, a condition/effect interpreter, skill checks, and the runner
// that advances a live instance one player choice at a time.
//
// Effects are data, not code. The runner only accumulates them; an
// external applier interprets the drained ledger after the encounter
// completes.
package encounter

import (
	"errors"
	"fmt"
)

// Stat names a crew attribute used by skill checks.
type Stat string

const (
	StatPiloting    Stat = "piloting"
	StatGunnery     Stat = "gunnery"
	StatEngineering Stat = "engineering"
	StatSavvy       Stat = "savvy"
	StatGrit        Stat = "grit"
)

// Template is the immutable authored graph of one encounter. Loaded once
// into a Registry and shared between instances; never mutated.
type Template struct {
	ID          string
	Name        string
	Tags        []string
	EntryNodeID string
	Nodes       map[string]*Node
}

// HasTag reports whether the template carries the given tag.
func (t *Template) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}

// Node is one step in the encounter graph. A node either presents options
// and waits for player input, or carries an automatic outcome and advances
// on its own.
type Node struct {
	ID      string
	Text    string
	Options []*Option
	Auto    *Outcome
}

// IsAutomatic reports whether the node advances without player input.
func (n *Node) IsAutomatic() bool {
	return n.Auto != nil && len(n.Options) == 0
}

// Option is one player-visible choice at a node. Visibility is gated by
// Condition (nil means always visible). The option resolves either through
// Outcome directly, or through Check with separate success and failure
// branches.
type Option struct {
	ID        string
	Text      string
	Condition Condition
	Outcome   *Outcome
	Check     *SkillCheckDef
	Success   *Outcome
	Failure   *Outcome
}

// Outcome is what resolving a choice (or an automatic node) produces:
// an ordered effect list, an optional transition, and a completion flag.
type Outcome struct {
	Effects    []Effect
	NextNodeID string
	End        bool
	EndResult  string
}

// SkillCheckDef describes a stat-plus-trait gated test.
type SkillCheckDef struct {
	Stat          Stat
	Difficulty    int
	BonusTraits   []string
	PenaltyTraits []string
}

var errNoEntryNode = errors.New("encounter: template entry node missing")

// Validate checks the structural invariants content must satisfy: the
// entry node exists, node map keys match node ids, and every option
// resolves through exactly one of Outcome or Check.
func (t *Template) Validate() error {
	if t.ID == "" {
		return errors.New("encounter: template id empty")
	}
	if _, ok := t.Nodes[t.EntryNodeID]; !ok {
		return fmt.Errorf("template %q: %w", t.ID, errNoEntryNode)
	}
	for id, node := range t.Nodes {
		if node.ID != id {
			return fmt.Errorf("template %q: node map key %q holds node %q", t.ID, id, node.ID)
		}
		if node.Auto != nil && len(node.Options) > 0 {
			return fmt.Errorf("template %q: node %q both automatic and interactive", t.ID, id)
		}
		if node.Auto == nil && len(node.Options) == 0 {
			return fmt.Errorf("template %q: node %q has neither options nor auto outcome", t.ID, id)
		}
		for _, opt := range node.Options {
			if opt.Check != nil {
				if opt.Success == nil || opt.Failure == nil {
					return fmt.Errorf("template %q: option %q check missing branch", t.ID, opt.ID)
				}
				if opt.Outcome != nil {
					return fmt.Errorf("template %q: option %q has both outcome and check", t.ID, opt.ID)
				}
			} else if opt.Outcome == nil {
				return fmt.Errorf("template %q: option %q has no resolution", t.ID, opt.ID)
			}
		}
	}
	return nil
}
