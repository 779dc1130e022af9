package workflow

// Registry maps workflow ids to definitions. Registration order is kept so
// menus list workflows predictably.
type Registry struct {
	defs  map[ID]Definition
	order []ID
}

// NewRegistry returns a registry holding defs. Later duplicates replace
// earlier ones.
func NewRegistry(defs ...Definition) *Registry {
	r := &Registry{defs: make(map[ID]Definition, len(defs))}
	for _, d := range defs {
		r.Register(d)
	}
	return r
}

// DefaultRegistry holds the built-in event-scheduling and study-tips workflows.
func DefaultRegistry() *Registry {
	return NewRegistry(EventScheduling{}, StudyTips{})
}

func (r *Registry) Register(d Definition) {
	if _, exists := r.defs[d.ID()]; !exists {
		r.order = append(r.order, d.ID())
	}
	r.defs[d.ID()] = d
}

func (r *Registry) Lookup(id ID) (Definition, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// IDs returns registered ids in registration order.
func (r *Registry) IDs() []ID {
	return append([]ID(nil), r.order...)
}
