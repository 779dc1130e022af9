package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/studydesk/internal/timeparse"
)

// FormatParsedTime renders a parse outcome: the resolved time and the rule
// that matched, or the format help.
func FormatParsedTime(input string, p timeparse.ParsedTime, now time.Time) string {
	if !p.OK() {
		return fmt.Sprintf("%s %q\n%s\n", StyleRed.Render("Could not parse"), input, p.Reason)
	}
	at := p.At.In(now.Location())
	return fmt.Sprintf("%s  %s %s\n%s\n",
		StyleGreen.Render(at.Format("Mon Jan 2, 2006 3:04 PM")),
		Dim(RelativeDay(at, now)),
		Dim("via "+string(p.Source)),
		Dim(at.Format(time.RFC3339)))
}
