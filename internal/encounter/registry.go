package encounter

import "fmt"

// Registry resolves template ids to templates. Passed explicitly to
// whatever allocates instances; there is no process-wide registry.
type Registry struct {
	byID  map[string]*Template
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Template)}
}

// Register validates and adds a template. Duplicate ids are rejected.
func (r *Registry) Register(t *Template) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, exists := r.byID[t.ID]; exists {
		return fmt.Errorf("template %q already registered", t.ID)
	}
	r.byID[t.ID] = t
	r.order = append(r.order, t.ID)
	return nil
}

// Get returns the template for id, if registered.
func (r *Registry) Get(id string) (*Template, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// ByTag returns all templates carrying the tag, in registration order, so
// tag-based selection stays deterministic.
func (r *Registry) ByTag(tag string) []*Template {
	var out []*Template
	for _, id := range r.order {
		if t := r.byID[id]; t.HasTag(tag) {
			out = append(out, t)
		}
	}
	return out
}

// All returns every template in registration order.
func (r *Registry) All() []*Template {
	out := make([]*Template, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	return len(r.byID)
}
