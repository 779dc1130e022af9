package domain

import (
	"fmt"
	"time"
)

// EventDraft accumulates the fields of an event across scheduling steps.
type EventDraft struct {
	Category        string
	Name            string
	DateTime        *time.Time
	DurationMinutes int
	Confirmed       bool
}

// Duration returns the draft duration, defaulting to one hour.
func (d *EventDraft) Duration() time.Duration {
	if d.DurationMinutes <= 0 {
		return DefaultDurationMinutes * time.Minute
	}
	return time.Duration(d.DurationMinutes) * time.Minute
}

// Complete reports whether the draft has enough data to become an event.
func (d *EventDraft) Complete() bool {
	return d != nil && d.Name != "" && d.DateTime != nil
}

// ToEvent materializes the draft. The caller supplies the id so that id
// generation stays outside the domain.
func (d *EventDraft) ToEvent(id string, now time.Time) (*CalendarEvent, error) {
	if !d.Complete() {
		return nil, fmt.Errorf("%w: draft needs a name and a time", ErrInvalidEvent)
	}
	start := *d.DateTime
	e := &CalendarEvent{
		ID:          id,
		Title:       d.Name,
		Description: fmt.Sprintf("Category: %s", d.Category),
		Start:       start,
		End:         start.Add(d.Duration()),
		ColorID:     DefaultColorID,
		Source:      SourceLocal,
		CreatedAt:   now,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}
