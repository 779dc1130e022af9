package schedule

import (
	"sort"
	"time"

	"github.com/alexanderramin/studydesk/internal/domain"
)

// Slot is a free interval between events.
type Slot struct {
	Start time.Time
	End   time.Time
}

func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Window bounds the daily hours in which free slots are offered.
type Window struct {
	DayStartHour int
	DayEndHour   int
}

// DefaultWindow offers slots between 08:00 and 22:00.
var DefaultWindow = Window{DayStartHour: 8, DayEndHour: 22}

// FreeSlots lists gaps of at least minDuration between from and to,
// restricted to the daily window. Events may be unsorted and may overlap.
func FreeSlots(events []domain.CalendarEvent, from, to time.Time, minDuration time.Duration, w Window) []Slot {
	if !to.After(from) {
		return nil
	}
	if minDuration <= 0 {
		minDuration = DefaultDurationMinutes * time.Minute
	}

	busy := make([]domain.CalendarEvent, 0, len(events))
	for _, e := range events {
		if e.Overlaps(from, to) {
			busy = append(busy, e)
		}
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].Start.Before(busy[j].Start) })

	var slots []Slot
	for day := startOfDay(from); day.Before(to); day = day.AddDate(0, 0, 1) {
		winStart := maxTime(day.Add(time.Duration(w.DayStartHour)*time.Hour), from)
		winEnd := minTime(day.Add(time.Duration(w.DayEndHour)*time.Hour), to)
		if !winEnd.After(winStart) {
			continue
		}

		cursor := winStart
		for _, e := range busy {
			if !e.End.After(cursor) || !e.Start.Before(winEnd) {
				continue
			}
			if e.Start.After(cursor) && e.Start.Sub(cursor) >= minDuration {
				slots = append(slots, Slot{Start: cursor, End: e.Start})
			}
			if e.End.After(cursor) {
				cursor = e.End
			}
		}
		if winEnd.Sub(cursor) >= minDuration {
			slots = append(slots, Slot{Start: cursor, End: winEnd})
		}
	}
	return slots
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
