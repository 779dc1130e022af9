package cli

import (
	"context"
	"errors"
	"os"

	"github.com/alexanderramin/studydesk/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// typeReply is the picker entry that falls back to the text prompt.
const typeReply = "Type a reply..."

// studydeskHuhTheme returns a huh theme matching the formatter palette.
func studydeskHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// pickerKeyMap lets esc leave the picker as well as ctrl+c.
func pickerKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "type instead"),
	)
	return km
}

// optionPicker asks the user to choose one of a message's choices. It
// returns "" when the user wants to type instead.
type optionPicker func(ctx context.Context, choices []string) (string, error)

// newPickerForm builds the select for choices plus the "type instead"
// entry, bound to picked.
func newPickerForm(choices []string, picked *string) *huh.Form {
	opts := make([]huh.Option[string], 0, len(choices)+1)
	for _, c := range choices {
		opts = append(opts, huh.NewOption(c, c))
	}
	opts = append(opts, huh.NewOption(formatter.Dim(typeReply), ""))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose").
				Options(opts...).
				Value(picked),
		),
	).
		WithTheme(studydeskHuhTheme()).
		WithKeyMap(pickerKeyMap()).
		WithShowHelp(false)
}

// huhPicker renders choices on stderr so stdout keeps only the transcript.
func huhPicker(ctx context.Context, choices []string) (string, error) {
	var picked string
	form := newPickerForm(choices, &picked).
		WithProgramOptions(tea.WithOutput(os.Stderr))

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", nil
		}
		return "", err
	}
	return picked, nil
}
