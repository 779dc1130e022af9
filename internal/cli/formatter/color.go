package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studydesk/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleAqua   = lipgloss.NewStyle().Foreground(ColorAqua)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// eventColors maps calendar color ids to palette entries.
var eventColors = map[string]lipgloss.Color{
	"1": ColorBlue,
	"2": ColorGreen,
	"3": ColorPurple,
	"4": ColorYellow,
	"5": ColorAqua,
	"6": ColorRed,
	"7": ColorHeader,
}

// EventColor returns the style for an event color id.
func EventColor(colorID string) lipgloss.Style {
	if c, ok := eventColors[colorID]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return StyleFg
}

// SourceBadge labels where an event came from.
func SourceBadge(source domain.EventSource) string {
	s := string(source)
	switch {
	case source == domain.SourceLocal:
		return StyleGreen.Render("local")
	case source == domain.SourceSample:
		return StyleYellow.Render("sample")
	case strings.HasPrefix(s, "ics:"):
		return StyleAqua.Render(s)
	case s == "":
		return StyleDim.Render("--")
	default:
		return StyleDim.Render(s)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
