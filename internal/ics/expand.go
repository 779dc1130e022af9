package ics

import (
	"sort"
	"time"

	"github.com/teambition/rrule-go"
)

// MaxOccurrencesPerEvent caps expansion of a single series.
const MaxOccurrencesPerEvent = 2000

// Occurrence is one concrete instance of an event.
type Occurrence struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	AllDay      bool
}

// Expand turns events into occurrences overlapping [from, to), applying
// RRULE, EXDATE and RECURRENCE-ID overrides. Output is sorted by start.
// Series whose RRULE cannot be parsed contribute only their first instance.
func Expand(events []Event, from, to time.Time) []Occurrence {
	if !to.After(from) {
		return nil
	}

	overrides := make(map[string][]Event)
	var bases []Event
	for _, ev := range events {
		if ev.IsOverride() {
			overrides[ev.UID] = append(overrides[ev.UID], ev)
			continue
		}
		bases = append(bases, ev)
	}

	var out []Occurrence
	for _, ev := range bases {
		out = append(out, expandEvent(ev, overrides[ev.UID], from, to)...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

func expandEvent(ev Event, overrides []Event, from, to time.Time) []Occurrence {
	starts := []time.Time{ev.Start}
	if ev.RRule != "" {
		if rs, ok := recurrenceStarts(ev, from, to); ok {
			starts = rs
		}
	}

	duration := ev.End.Sub(ev.Start)
	var out []Occurrence
	for _, start := range starts {
		inst := ev
		inst.Start = start
		inst.End = start.Add(duration)
		if o, ok := findOverride(overrides, start); ok {
			inst = o
		}
		if inst.Start.Before(to) && inst.End.After(from) {
			out = append(out, toOccurrence(inst))
		}
	}
	return out
}

func recurrenceStarts(ev Event, from, to time.Time) ([]time.Time, bool) {
	r, err := rrule.StrToRRule(ev.RRule)
	if err != nil {
		return nil, false
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	// Widen the window by one duration so instances already running at
	// from are kept.
	duration := ev.End.Sub(ev.Start)
	after := from.Add(-duration).In(ev.Start.Location())
	before := to.In(ev.Start.Location())

	starts := set.Between(after, before, true)
	if len(starts) > MaxOccurrencesPerEvent {
		starts = starts[:MaxOccurrencesPerEvent]
	}
	return starts, true
}

func findOverride(overrides []Event, start time.Time) (Event, bool) {
	for _, o := range overrides {
		if o.RecurrenceID != nil && o.RecurrenceID.Equal(start) {
			return o, true
		}
	}
	return Event{}, false
}

func toOccurrence(ev Event) Occurrence {
	return Occurrence{
		UID:         ev.UID,
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Start:       ev.Start,
		End:         ev.End,
		AllDay:      ev.AllDay,
	}
}
