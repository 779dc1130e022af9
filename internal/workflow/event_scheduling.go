package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studydesk/internal/domain"
	"github.com/alexanderramin/studydesk/internal/schedule"
)

const (
	OptionAddToCalendar   = "Add to calendar"
	OptionStartOver       = "Start over"
	OptionScheduleAnother = "Schedule another"
	OptionDone            = "I'm done"

	// ErrorScheduleConflict is set on the datetime step when the slot is taken.
	ErrorScheduleConflict = "Schedule conflict"
	// ErrorInvalidTime is set when the datetime step gets no usable time.
	ErrorInvalidTime = "Invalid time format"
	// ErrorNameRequired is set when the name step gets blank input.
	ErrorNameRequired = "Name is required"

	// DisplayTimeLayout renders draft times in confirmations.
	DisplayTimeLayout = "Jan 2, 2006, 3:04 PM"

	promptCategory = "Select event category:"
	promptName     = "Enter event name:"
	promptDateTime = "Select date and time for the event:"
)

// Categories lists the event categories offered by the category step.
var Categories = []string{
	domain.CategoryStudySession,
	domain.CategoryMeeting,
	domain.CategoryBreak,
	domain.CategoryOther,
}

var eventSchedulingOrder = map[Step]Step{
	StepCategory: StepName,
	StepName:     StepDateTime,
	StepDateTime: StepConfirm,
	StepConfirm:  StepCategory,
}

// EventScheduling collects category, name and start time for a new event,
// then asks for confirmation.
type EventScheduling struct{}

var _ Definition = EventScheduling{}

func (EventScheduling) ID() ID            { return EventSchedulingID }
func (EventScheduling) Name() string      { return "Schedule Event" }
func (EventScheduling) InitialStep() Step { return StepCategory }

func (EventScheduling) InitialResponse() Response {
	return Response{
		Text:    promptCategory,
		Options: append([]string(nil), Categories...),
	}
}

func (EventScheduling) Next(step Step) Step {
	if next, ok := eventSchedulingOrder[step]; ok {
		return next
	}
	return StepCategory
}

func (w EventScheduling) Process(in Input, state State, ctx Context) Response {
	switch state.Step {
	case StepCategory:
		return Response{
			Text: promptName,
			Data: &Data{Category: in.Text},
		}

	case StepName:
		name := strings.TrimSpace(in.Text)
		if name == "" {
			return Response{Text: promptName, Error: ErrorNameRequired}
		}
		return Response{
			Text:               promptDateTime,
			ShowDateTimePicker: true,
			Data:               &Data{Name: name},
		}

	case StepDateTime:
		return w.processDateTime(in, state, ctx)

	case StepConfirm:
		if strings.EqualFold(strings.TrimSpace(in.Text), OptionAddToCalendar) {
			return Response{
				Text:    "Event added. Need anything else?",
				Options: []string{OptionScheduleAnother, OptionDone},
				Data:    &Data{Confirmed: true},
			}
		}
		resp := w.InitialResponse()
		resp.Reset = true
		return resp
	}

	resp := w.InitialResponse()
	resp.Reset = true
	return resp
}

func (EventScheduling) processDateTime(in Input, state State, ctx Context) Response {
	at, ok := inputTime(in)
	if !ok {
		return Response{
			Text:               promptDateTime,
			Error:              ErrorInvalidTime,
			ShowDateTimePicker: true,
		}
	}

	if schedule.HasConflict(at, ctx.Events, state.Draft.DurationMinutes) {
		return Response{
			Text:               "There's a scheduling conflict at that time. Please choose a different time.",
			Error:              ErrorScheduleConflict,
			ShowDateTimePicker: true,
		}
	}

	return Response{
		Text: fmt.Sprintf("Confirm event:\n%s\n%s\nCategory: %s",
			state.Draft.Name, at.Format(DisplayTimeLayout), state.Draft.Category),
		Options: []string{OptionAddToCalendar, OptionStartOver},
		Data:    &Data{DateTime: &at},
	}
}

func inputTime(in Input) (time.Time, bool) {
	if in.Time != nil {
		return *in.Time, true
	}
	at, err := time.Parse(time.RFC3339, strings.TrimSpace(in.Text))
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}
