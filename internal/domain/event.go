package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidEvent is returned when an event fails validation.
var ErrInvalidEvent = errors.New("invalid calendar event")

type CalendarEvent struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	ColorID     string
	Source      EventSource
	CreatedAt   time.Time
}

// Validate checks that the event has a title and a positive duration.
func (e *CalendarEvent) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidEvent)
	}
	if !e.End.After(e.Start) {
		return fmt.Errorf("%w: end %s must be after start %s",
			ErrInvalidEvent, e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
	}
	return nil
}

// Duration returns the length of the event.
func (e *CalendarEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Overlaps reports whether the event intersects the half-open range [from, to).
func (e *CalendarEvent) Overlaps(from, to time.Time) bool {
	return e.Start.Before(to) && e.End.After(from)
}
