package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studydesk/internal/domain"
)

const speakerWidth = 10

// Choices lists what a message lets the user pick: options first, then
// suggestions. The chat shell numbers them in this order.
func Choices(m domain.ConversationMessage) []string {
	out := make([]string, 0, len(m.Options)+len(m.Suggestions))
	out = append(out, m.Options...)
	return append(out, m.Suggestions...)
}

// FormatMessage renders one conversation turn.
func FormatMessage(m domain.ConversationMessage) string {
	var b strings.Builder

	speaker := StylePurple.Render(padRight("assistant", speakerWidth))
	if m.IsUser() {
		speaker = StyleBlue.Render(padRight("you", speakerWidth))
	}
	b.WriteString(speaker)
	b.WriteString(indentWrapped(m.Text, speakerWidth, textWrapWidth-speakerWidth))
	b.WriteString("\n")

	pad := strings.Repeat(" ", speakerWidth)
	if m.Error != "" {
		b.WriteString(pad + StyleRed.Render("! "+m.Error) + "\n")
	}

	n := 1
	if len(m.Options) > 0 {
		parts := make([]string, 0, len(m.Options))
		for _, opt := range m.Options {
			parts = append(parts, fmt.Sprintf("%s %s", StyleYellow.Render(fmt.Sprintf("/%d", n)), opt))
			n++
		}
		b.WriteString(pad + strings.Join(parts, "  ") + "\n")
	}
	if len(m.Suggestions) > 0 {
		parts := make([]string, 0, len(m.Suggestions))
		for _, s := range m.Suggestions {
			parts = append(parts, fmt.Sprintf("%s %s", Dim(fmt.Sprintf("/%d", n)), Dim(s)))
			n++
		}
		b.WriteString(pad + Dim("try: ") + strings.Join(parts, Dim(" · ")) + "\n")
	}
	return b.String()
}

// FormatTranscript renders messages in order, separated by blank lines.
func FormatTranscript(messages []domain.ConversationMessage) string {
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		parts = append(parts, FormatMessage(m))
	}
	return strings.Join(parts, "\n")
}

// FormatQuickActions lists the quick actions with their shortcut numbers.
func FormatQuickActions(labels []string) string {
	var b strings.Builder
	b.WriteString(Header("Quick Actions"))
	b.WriteString("\n")
	for i, l := range labels {
		b.WriteString(fmt.Sprintf("  %s %s\n", StyleYellow.Render(fmt.Sprintf("/a%d", i+1)), l))
	}
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
