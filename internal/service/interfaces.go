package service

import (
	"context"
	"time"

	"github.com/alexanderramin/studydesk/internal/domain"
	"github.com/alexanderramin/studydesk/internal/ics"
	"github.com/alexanderramin/studydesk/internal/schedule"
)

type EventService interface {
	// OnEventCreated persists an event confirmed in the assistant.
	OnEventCreated(ctx context.Context, e domain.CalendarEvent) error
	// Events returns events overlapping [from, to) for conflict checks.
	Events(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error)
	Add(ctx context.Context, req AddEventRequest) (*domain.CalendarEvent, error)
	List(ctx context.Context, from, to time.Time) ([]*domain.CalendarEvent, error)
	Remove(ctx context.Context, id string) error
	Upcoming(ctx context.Context, limit int) ([]*domain.CalendarEvent, error)
	FreeSlots(ctx context.Context, from, to time.Time, minDuration time.Duration) ([]schedule.Slot, error)
}

type ImportService interface {
	ImportFeed(ctx context.Context, name, url string) (*ImportResult, error)
	ImportFile(ctx context.Context, name, path string) (*ImportResult, error)
	FeedStates(ctx context.Context) ([]*domain.FeedState, error)
}

// FeedFetcher downloads a feed body, honoring cache validators.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string, prev ics.Validators) (ics.FetchResult, error)
}

// AddEventRequest describes an event created directly from the CLI.
type AddEventRequest struct {
	Title           string
	Category        string
	Description     string
	Start           time.Time
	DurationMinutes int
	// AllowConflict skips the overlap check.
	AllowConflict bool
}

type ImportResult struct {
	Feed        string
	Source      domain.EventSource
	Added       int
	Removed     int
	Skipped     int
	NotModified bool
}
