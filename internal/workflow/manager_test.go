package workflow

import (
	"testing"
	"time"

	"github.com/alexanderramin/studydesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_StartsIdle(t *testing.T) {
	m := NewManager(nil)
	assert.False(t, m.IsActive())
	assert.Nil(t, m.Active())
	_, ok := m.State()
	assert.False(t, ok)

	_, err := m.ProcessInput(TextInput("hello"))
	assert.ErrorIs(t, err, ErrNoActiveWorkflow)
}

func TestManager_StartUnknown(t *testing.T) {
	m := NewManager(nil)
	_, err := m.Start(ID("budgeting"))
	assert.ErrorIs(t, err, ErrUnknownWorkflow)
	assert.False(t, m.IsActive())
}

func TestManager_EventSchedulingHappyPath(t *testing.T) {
	m := NewManager(nil)
	m.SetContext(Context{Events: []domain.CalendarEvent{mathSession()}})

	resp, err := m.Start(EventSchedulingID)
	require.NoError(t, err)
	assert.Equal(t, "Select event category:", resp.Text)
	assertStep(t, m, StepCategory)

	_, err = m.ProcessInput(TextInput("Study Session"))
	require.NoError(t, err)
	assertStep(t, m, StepName)

	resp, err = m.ProcessInput(TextInput("Chem review"))
	require.NoError(t, err)
	assert.True(t, resp.ShowDateTimePicker)
	assertStep(t, m, StepDateTime)

	at := time.Date(2025, 6, 16, 14, 0, 0, 0, time.UTC)
	resp, err = m.ProcessInput(TimeInput(at))
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "Chem review")
	assertStep(t, m, StepConfirm)

	state, ok := m.State()
	require.True(t, ok)
	assert.Equal(t, EventSchedulingID, state.Workflow)
	assert.Equal(t, "Study Session", state.Draft.Category)
	assert.Equal(t, "Chem review", state.Draft.Name)
	require.NotNil(t, state.Draft.DateTime)
	assert.True(t, at.Equal(*state.Draft.DateTime))

	resp, err = m.ProcessInput(TextInput("Add to calendar"))
	require.NoError(t, err)
	assert.True(t, resp.Confirmed())
	state, _ = m.State()
	assert.True(t, state.Draft.Confirmed)
}

func TestManager_ConflictKeepsStep(t *testing.T) {
	m := NewManager(nil)
	m.SetContext(Context{Events: []domain.CalendarEvent{mathSession()}})
	_, err := m.Start(EventSchedulingID)
	require.NoError(t, err)
	_, _ = m.ProcessInput(TextInput("Meeting"))
	_, _ = m.ProcessInput(TextInput("Group sync"))

	resp, err := m.ProcessInput(TimeInput(time.Date(2025, 6, 16, 10, 30, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, ErrorScheduleConflict, resp.Error)
	assertStep(t, m, StepDateTime)

	state, _ := m.State()
	assert.Nil(t, state.Draft.DateTime)
	assert.Equal(t, "Group sync", state.Draft.Name)
}

func TestManager_StartOverResets(t *testing.T) {
	m := NewManager(nil)
	_, err := m.Start(EventSchedulingID)
	require.NoError(t, err)
	_, _ = m.ProcessInput(TextInput("Break"))
	_, _ = m.ProcessInput(TextInput("Walk"))
	_, _ = m.ProcessInput(TimeInput(time.Date(2025, 6, 16, 16, 0, 0, 0, time.UTC)))
	assertStep(t, m, StepConfirm)

	resp, err := m.ProcessInput(TextInput("Start over"))
	require.NoError(t, err)
	assert.True(t, resp.Reset)
	assertStep(t, m, StepCategory)

	state, _ := m.State()
	assert.Equal(t, domain.EventDraft{}, state.Draft)
	assert.True(t, m.IsActive())
}

func TestManager_StateIsACopy(t *testing.T) {
	m := NewManager(nil)
	_, err := m.Start(EventSchedulingID)
	require.NoError(t, err)
	_, _ = m.ProcessInput(TextInput("Other"))
	_, _ = m.ProcessInput(TextInput("Errands"))
	at := time.Date(2025, 6, 16, 16, 0, 0, 0, time.UTC)
	_, _ = m.ProcessInput(TimeInput(at))

	state, _ := m.State()
	*state.Draft.DateTime = at.Add(time.Hour)
	state.Draft.Name = "changed"

	again, _ := m.State()
	assert.True(t, at.Equal(*again.Draft.DateTime))
	assert.Equal(t, "Errands", again.Draft.Name)
}

func TestManager_StartReplacesActiveWorkflow(t *testing.T) {
	m := NewManager(nil)
	_, err := m.Start(EventSchedulingID)
	require.NoError(t, err)
	_, _ = m.ProcessInput(TextInput("Meeting"))

	resp, err := m.Start(StudyTipsID)
	require.NoError(t, err)
	assert.Equal(t, "Choose a study technique:", resp.Text)

	state, ok := m.State()
	require.True(t, ok)
	assert.Equal(t, StudyTipsID, state.Workflow)
	assert.Equal(t, StepSelectTip, state.Step)
	assert.Empty(t, state.Draft.Category)
}

func TestManager_End(t *testing.T) {
	m := NewManager(nil)
	_, err := m.Start(StudyTipsID)
	require.NoError(t, err)
	m.End()
	assert.False(t, m.IsActive())
	_, err = m.ProcessInput(TextInput("Pomodoro"))
	assert.ErrorIs(t, err, ErrNoActiveWorkflow)
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	a := NewManager(nil)
	b := NewManager(nil)
	_, err := a.Start(EventSchedulingID)
	require.NoError(t, err)
	assert.True(t, a.IsActive())
	assert.False(t, b.IsActive())
}

type echoWorkflow struct{}

func (echoWorkflow) ID() ID                    { return "echo" }
func (echoWorkflow) Name() string              { return "Echo" }
func (echoWorkflow) InitialStep() Step         { return "say" }
func (echoWorkflow) InitialResponse() Response { return Response{Text: "Say something"} }
func (echoWorkflow) Next(Step) Step            { return "say" }
func (echoWorkflow) Process(in Input, _ State, _ Context) Response {
	return Response{Text: in.Text}
}

func TestRegistry_CustomDefinition(t *testing.T) {
	reg := DefaultRegistry()
	reg.Register(echoWorkflow{})
	assert.Equal(t, []ID{EventSchedulingID, StudyTipsID, "echo"}, reg.IDs())

	m := NewManager(reg)
	resp, err := m.Start("echo")
	require.NoError(t, err)
	assert.Equal(t, "Say something", resp.Text)

	resp, err = m.ProcessInput(TextInput("ping"))
	require.NoError(t, err)
	assert.Equal(t, "ping", resp.Text)
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	reg := NewRegistry(StudyTips{}, StudyTips{})
	assert.Equal(t, []ID{StudyTipsID}, reg.IDs())
	_, ok := reg.Lookup(EventSchedulingID)
	assert.False(t, ok)
}

func assertStep(t *testing.T, m *Manager, want Step) {
	t.Helper()
	state, ok := m.State()
	require.True(t, ok)
	assert.Equal(t, want, state.Step)
}
