// Package workflow implements guided multi-step dialogues and the
// per-session manager that drives them.
package workflow

import (
	"time"

	"github.com/alexanderramin/studydesk/internal/domain"
)

// ID identifies a workflow definition.
type ID string

const (
	EventSchedulingID ID = "event-scheduling"
	StudyTipsID       ID = "study-tips"
)

// Step names a position inside a workflow.
type Step string

const (
	StepCategory  Step = "category"
	StepName      Step = "name"
	StepDateTime  Step = "datetime"
	StepConfirm   Step = "confirm"
	StepSelectTip Step = "select-tip"
)

// Input is one user turn routed to the active step. Time carries an
// already resolved timestamp for date/time steps.
type Input struct {
	Text string
	Time *time.Time
}

func TextInput(text string) Input {
	return Input{Text: text}
}

func TimeInput(at time.Time) Input {
	return Input{Text: at.Format(time.RFC3339), Time: &at}
}

// Data holds the draft fields a step contributes. Zero values are ignored
// when merged.
type Data struct {
	Category        string
	Name            string
	DateTime        *time.Time
	DurationMinutes int
	Confirmed       bool
}

// Response is what a step hands back to the caller.
type Response struct {
	Text               string
	Options            []string
	Suggestions        []string
	Error              string
	ShowDateTimePicker bool

	// Data is merged into the draft and advances the step. A nil Data
	// leaves the state untouched.
	Data *Data

	// Reset clears the draft and returns to the initial step.
	Reset bool
}

// Confirmed reports whether the response asks for the draft to be
// materialized.
func (r Response) Confirmed() bool {
	return r.Data != nil && r.Data.Confirmed
}

// State is the progress of the active workflow.
type State struct {
	Workflow ID
	Step     Step
	Draft    domain.EventDraft
}

// Context is shared, read-only input for steps.
type Context struct {
	Events []domain.CalendarEvent
}

// Definition is a named dialogue script. Implementations hold no
// per-session state.
type Definition interface {
	ID() ID
	Name() string
	InitialStep() Step
	InitialResponse() Response

	// Next returns the step that follows step once it has produced data.
	Next(step Step) Step

	// Process handles input for the step recorded in state.
	Process(in Input, state State, ctx Context) Response
}

func mergeDraft(d domain.EventDraft, data Data) domain.EventDraft {
	if data.Category != "" {
		d.Category = data.Category
	}
	if data.Name != "" {
		d.Name = data.Name
	}
	if data.DateTime != nil {
		at := *data.DateTime
		d.DateTime = &at
	}
	if data.DurationMinutes > 0 {
		d.DurationMinutes = data.DurationMinutes
	}
	if data.Confirmed {
		d.Confirmed = true
	}
	return d
}

func cloneDraft(d domain.EventDraft) domain.EventDraft {
	if d.DateTime != nil {
		at := *d.DateTime
		d.DateTime = &at
	}
	return d
}
