package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studydesk/internal/domain"
	"github.com/alexanderramin/studydesk/internal/schedule"
)

// FormatEventList renders events as a table grouped by day.
func FormatEventList(events []*domain.CalendarEvent, now time.Time) string {
	if len(events) == 0 {
		return Dim("No events scheduled.") + "\n"
	}

	headers := []string{"DAY", "TIME", "TITLE", "SOURCE", "ID"}
	rows := make([][]string, 0, len(events))
	lastDay := ""
	for _, e := range events {
		start := e.Start.In(now.Location())
		day := RelativeDay(start, now)
		label := day
		if day == lastDay {
			label = ""
		}
		lastDay = day

		rows = append(rows, []string{
			Bold(label),
			TimeRange(start, e.End.In(now.Location())),
			EventColor(e.ColorID).Render("● ") + Truncate(e.Title, 40),
			SourceBadge(e.Source),
			TruncID(e.ID),
		})
	}
	return RenderBox("Calendar", RenderTable(headers, rows))
}

// FormatEvent renders a single event with its description.
func FormatEvent(e *domain.CalendarEvent, now time.Time) string {
	start := e.Start.In(now.Location())
	var b strings.Builder
	b.WriteString(EventColor(e.ColorID).Render("● ") + Bold(e.Title) + "\n")
	b.WriteString(fmt.Sprintf("  %s, %s %s\n",
		RelativeDay(start, now),
		start.Format(DayLayout),
		Dim("("+TimeRange(start, e.End.In(now.Location()))+")")))
	if e.Description != "" {
		b.WriteString("  " + indentWrapped(e.Description, 2, textWrapWidth-2) + "\n")
	}
	b.WriteString(fmt.Sprintf("  %s %s\n", SourceBadge(e.Source), TruncID(e.ID)))
	return b.String()
}

// FormatConflicts explains which events block a candidate slot.
func FormatConflicts(conflicts []domain.CalendarEvent, now time.Time) string {
	var b strings.Builder
	b.WriteString(StyleRed.Render("Schedule conflict") + Dim(" with:") + "\n")
	for _, c := range conflicts {
		start := c.Start.In(now.Location())
		b.WriteString(fmt.Sprintf("  • %s %s\n", c.Title,
			Dim(RelativeDay(start, now)+" "+TimeRange(start, c.End.In(now.Location())))))
	}
	b.WriteString(Dim("Use --force to add it anyway.") + "\n")
	return b.String()
}

// FormatSlots lists free time slots.
func FormatSlots(slots []schedule.Slot, now time.Time) string {
	if len(slots) == 0 {
		return Dim("No free time found in that range.") + "\n"
	}
	headers := []string{"DAY", "FREE", "LENGTH"}
	rows := make([][]string, 0, len(slots))
	for _, s := range slots {
		start := s.Start.In(now.Location())
		rows = append(rows, []string{
			RelativeDay(start, now),
			StyleGreen.Render(TimeRange(start, s.End.In(now.Location()))),
			FormatMinutes(int(s.Duration() / time.Minute)),
		})
	}
	return RenderBox("Free Time", RenderTable(headers, rows))
}
