package testutil

import (
	"time"

	"github.com/alexanderramin/studydesk/internal/domain"
	"github.com/google/uuid"
)

// EventOption customizes a test event.
type EventOption func(*domain.CalendarEvent)

func WithDuration(d time.Duration) EventOption {
	return func(e *domain.CalendarEvent) {
		e.End = e.Start.Add(d)
	}
}

func WithSource(s domain.EventSource) EventOption {
	return func(e *domain.CalendarEvent) {
		e.Source = s
	}
}

func WithDescription(desc string) EventOption {
	return func(e *domain.CalendarEvent) {
		e.Description = desc
	}
}

func WithEventID(id string) EventOption {
	return func(e *domain.CalendarEvent) {
		e.ID = id
	}
}

// NewTestEvent returns a one-hour local event starting at start.
func NewTestEvent(title string, start time.Time, opts ...EventOption) *domain.CalendarEvent {
	e := &domain.CalendarEvent{
		ID:        uuid.New().String(),
		Title:     title,
		Start:     start,
		End:       start.Add(time.Hour),
		ColorID:   domain.DefaultColorID,
		Source:    domain.SourceLocal,
		CreatedAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
