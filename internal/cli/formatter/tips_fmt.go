package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studydesk/internal/workflow"
)

// FormatTips renders every study technique with its description.
func FormatTips(tips []workflow.Tip) string {
	var b strings.Builder
	for i, t := range tips {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s %s\n", StylePurple.Render(fmt.Sprintf("%d.", i+1)), Bold(t.Title)))
		b.WriteString("   " + indentWrapped(t.Description, 3, textWrapWidth-3) + "\n")
	}
	return RenderBox("Study Tips", b.String())
}
