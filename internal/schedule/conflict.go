// Package schedule answers questions about time ranges against a list of
// existing calendar events.
package schedule

import (
	"time"

	"github.com/alexanderramin/studydesk/internal/domain"
)

// DefaultDurationMinutes is the candidate length used when none is given.
const DefaultDurationMinutes = domain.DefaultDurationMinutes

// HasConflict reports whether a candidate starting at start and lasting
// durationMinutes overlaps any event. Non-positive durations use
// DefaultDurationMinutes. Touching intervals do not conflict.
func HasConflict(start time.Time, events []domain.CalendarEvent, durationMinutes int) bool {
	end := candidateEnd(start, durationMinutes)
	for i := range events {
		if overlaps(start, end, events[i]) {
			return true
		}
	}
	return false
}

// Conflicts returns every event that overlaps the candidate, in input order.
func Conflicts(start time.Time, events []domain.CalendarEvent, durationMinutes int) []domain.CalendarEvent {
	end := candidateEnd(start, durationMinutes)
	var out []domain.CalendarEvent
	for _, e := range events {
		if overlaps(start, end, e) {
			out = append(out, e)
		}
	}
	return out
}

func candidateEnd(start time.Time, durationMinutes int) time.Time {
	if durationMinutes <= 0 {
		durationMinutes = DefaultDurationMinutes
	}
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}

func overlaps(start, end time.Time, e domain.CalendarEvent) bool {
	startsInside := !start.Before(e.Start) && start.Before(e.End)
	endsInside := end.After(e.Start) && !end.After(e.End)
	contains := !start.After(e.Start) && !end.Before(e.End)
	return startsInside || endsInside || contains
}
