package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Display layouts shared by event and message renderers.
const (
	DayLayout   = "Mon Jan 2"
	ClockLayout = "3:04 PM"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title == "" {
		return boxStyle.Render(content)
	}
	return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// RelativeDay names the calendar day of t relative to now: "Today",
// "Tomorrow", "Yesterday", "In 3d", "2d ago", otherwise the date.
func RelativeDay(t, now time.Time) string {
	t = t.In(now.Location())
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	days := int(math.Round(b.Sub(a).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 1 && days < 7:
		return fmt.Sprintf("In %dd", days)
	case days < -1 && days > -7:
		return fmt.Sprintf("%dd ago", -days)
	default:
		return t.Format("Jan 2, 2006")
	}
}

// TimeRange renders "10:00 AM - 12:00 PM", adding the end day when the
// range crosses midnight.
func TimeRange(start, end time.Time) string {
	if sameDay(start, end) {
		return start.Format(ClockLayout) + " - " + end.Format(ClockLayout)
	}
	return start.Format(ClockLayout) + " - " + end.Format(DayLayout+" "+ClockLayout)
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.In(a.Location()).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h, m := min/60, min%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// Truncate shortens s to width visible runes, ending in "...".
func Truncate(s string, width int) string {
	r := []rune(s)
	if width <= 3 || len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
