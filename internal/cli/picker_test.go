package cli

import (
	"testing"

	"github.com/alexanderramin/studydesk/internal/teatest"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickerForm_SelectsSecondChoice(t *testing.T) {
	var picked string
	form := newPickerForm([]string{"Add to calendar", "Start over"}, &picked)

	d := teatest.New(t, form, teatest.WithSize(80, 24))
	d.PressDown()
	d.PressEnter()

	f, ok := d.Model.(*huh.Form)
	require.True(t, ok)
	assert.Equal(t, huh.StateCompleted, f.State)
	assert.Equal(t, "Start over", picked)
}

func TestPickerForm_TypeReplyEntryIsEmpty(t *testing.T) {
	picked := "unset"
	form := newPickerForm([]string{"Pomodoro"}, &picked)

	d := teatest.New(t, form, teatest.WithSize(80, 24))
	d.PressDown()
	d.PressEnter()

	assert.Equal(t, "", picked)
}

func TestPickerForm_EscAborts(t *testing.T) {
	var picked string
	form := newPickerForm([]string{"Study Session", "Meeting"}, &picked)

	d := teatest.New(t, form, teatest.WithSize(80, 24))
	d.PressEsc()

	f, ok := d.Model.(*huh.Form)
	require.True(t, ok)
	assert.Equal(t, huh.StateAborted, f.State)
}

func TestPickerForm_ViewListsChoices(t *testing.T) {
	var picked string
	d := teatest.New(t, newPickerForm([]string{"Study Session", "Meeting"}, &picked), teatest.WithSize(80, 24))

	view := stripANSI(d.View())
	assert.Contains(t, view, "Study Session")
	assert.Contains(t, view, typeReply)
}
