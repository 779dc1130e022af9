package assistant

import (
	"errors"
	"strings"

	"github.com/alexanderramin/studydesk/internal/workflow"
)

// ErrUnknownAction is returned for quick action labels that are not defined.
var ErrUnknownAction = errors.New("unknown quick action")

// QuickAction is a one-tap shortcut. It either starts a workflow or sends
// a canned prompt. FreeSlots actions list today's free time when no model
// answers the prompt.
type QuickAction struct {
	Label     string
	Workflow  workflow.ID
	Prompt    string
	FreeSlots bool
}

// QuickActions are offered in this order.
var QuickActions = []QuickAction{
	{Label: "Schedule Event", Workflow: workflow.EventSchedulingID},
	{Label: "Find Time", Prompt: "Help me find study time", FreeSlots: true},
	{Label: "Study Tips", Workflow: workflow.StudyTipsID},
	{Label: "Get Motivated", Prompt: "I need motivation"},
}

// LookupAction finds a quick action by label, ignoring case.
func LookupAction(label string) (QuickAction, bool) {
	label = strings.TrimSpace(label)
	for _, a := range QuickActions {
		if strings.EqualFold(a.Label, label) {
			return a, true
		}
	}
	return QuickAction{}, false
}
