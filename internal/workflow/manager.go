package workflow

import (
	"fmt"

	"github.com/alexanderramin/studydesk/internal/domain"
)

// Manager drives at most one active workflow for a single conversation.
// It is not safe for concurrent use; callers serialize turns.
type Manager struct {
	registry *Registry
	active   Definition
	state    State
	ctx      Context
}

// NewManager returns an idle manager. A nil registry uses DefaultRegistry.
func NewManager(reg *Registry) *Manager {
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &Manager{registry: reg}
}

// SetContext replaces the shared step context, typically the current
// calendar events.
func (m *Manager) SetContext(ctx Context) {
	m.ctx = ctx
}

// Start activates the workflow id, discarding any workflow in progress.
func (m *Manager) Start(id ID) (Response, error) {
	def, ok := m.registry.Lookup(id)
	if !ok {
		return Response{}, fmt.Errorf("%w: %s", ErrUnknownWorkflow, id)
	}
	m.active = def
	m.state = State{Workflow: id, Step: def.InitialStep()}
	return def.InitialResponse(), nil
}

// ProcessInput routes input to the current step. Steps advance only when the
// response carries data; a reset returns to the initial step with an empty
// draft.
func (m *Manager) ProcessInput(in Input) (Response, error) {
	if m.active == nil {
		return Response{}, ErrNoActiveWorkflow
	}

	resp := m.active.Process(in, m.snapshot(), m.ctx)

	switch {
	case resp.Reset:
		m.state.Step = m.active.InitialStep()
		m.state.Draft = domain.EventDraft{}
	case resp.Data != nil:
		m.state.Draft = mergeDraft(m.state.Draft, *resp.Data)
		m.state.Step = m.active.Next(m.state.Step)
	}
	return resp, nil
}

func (m *Manager) IsActive() bool {
	return m.active != nil
}

// Active returns the running definition, or nil when idle.
func (m *Manager) Active() Definition {
	return m.active
}

// State returns a copy of the active workflow's progress.
func (m *Manager) State() (State, bool) {
	if m.active == nil {
		return State{}, false
	}
	return m.snapshot(), true
}

// End drops the active workflow and its draft.
func (m *Manager) End() {
	m.active = nil
	m.state = State{}
}

func (m *Manager) snapshot() State {
	s := m.state
	s.Draft = cloneDraft(s.Draft)
	return s
}
