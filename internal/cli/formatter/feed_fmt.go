package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/studydesk/internal/domain"
)

// ImportSummary is the printable outcome of one feed import.
type ImportSummary struct {
	Feed        string
	Added       int
	Removed     int
	Skipped     int
	NotModified bool
}

func FormatImportSummary(s ImportSummary) string {
	if s.NotModified {
		return fmt.Sprintf("%s %s %s\n", StyleAqua.Render(s.Feed), Dim("unchanged"), Dim("(304 Not Modified)"))
	}
	line := fmt.Sprintf("%s imported %s events", StyleAqua.Render(s.Feed), StyleGreen.Render(fmt.Sprint(s.Added)))
	if s.Removed > 0 {
		line += Dim(fmt.Sprintf(", replaced %d", s.Removed))
	}
	if s.Skipped > 0 {
		line += StyleYellow.Render(fmt.Sprintf(", skipped %d", s.Skipped))
	}
	return line + "\n"
}

// FormatFeedStates renders the sync status of every known feed.
func FormatFeedStates(states []*domain.FeedState, now time.Time) string {
	if len(states) == 0 {
		return Dim("No feeds synced yet.") + "\n"
	}
	headers := []string{"FEED", "EVENTS", "SYNCED", "STATUS"}
	rows := make([][]string, 0, len(states))
	for _, s := range states {
		synced := Dim("never")
		if s.SyncedAt != nil {
			synced = RelativeDay(*s.SyncedAt, now) + " " + s.SyncedAt.In(now.Location()).Format(ClockLayout)
		}
		status := StyleGreen.Render("ok")
		if s.LastError != "" {
			status = StyleRed.Render(Truncate(s.LastError, 48))
		}
		rows = append(rows, []string{StyleAqua.Render(s.Name), fmt.Sprint(s.EventCount), synced, status})
	}
	return RenderBox("Feeds", RenderTable(headers, rows))
}
