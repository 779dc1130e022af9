package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studydesk/internal/domain"
	"github.com/alexanderramin/studydesk/internal/repository"
	"github.com/alexanderramin/studydesk/internal/schedule"
	"github.com/google/uuid"
)

// UpcomingHorizon bounds how far ahead Upcoming looks.
const UpcomingHorizon = 30 * 24 * time.Hour

type eventService struct {
	events   repository.EventRepo
	now      func() time.Time
	window   schedule.Window
	observer UseCaseObserver
}

// NewEventService creates an EventService over events. A nil now uses
// time.Now.
func NewEventService(events repository.EventRepo, now func() time.Time, observers ...UseCaseObserver) EventService {
	if now == nil {
		now = time.Now
	}
	return &eventService{
		events:   events,
		now:      now,
		window:   schedule.DefaultWindow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *eventService) OnEventCreated(ctx context.Context, e domain.CalendarEvent) (err error) {
	fields := map[string]any{"title": e.Title}
	defer observe(ctx, s.observer, "create-event", time.Now(), fields, &err)

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Source == "" {
		e.Source = domain.SourceLocal
	}
	if e.ColorID == "" {
		e.ColorID = domain.DefaultColorID
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	if err = e.Validate(); err != nil {
		return err
	}
	fields["event_id"] = e.ID
	if err = s.events.Create(ctx, &e); err != nil {
		return fmt.Errorf("saving event: %w", err)
	}
	return nil
}

func (s *eventService) Events(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error) {
	list, err := s.events.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CalendarEvent, 0, len(list))
	for _, e := range list {
		out = append(out, *e)
	}
	return out, nil
}

func (s *eventService) Add(ctx context.Context, req AddEventRequest) (event *domain.CalendarEvent, err error) {
	fields := map[string]any{"title": req.Title}
	defer observe(ctx, s.observer, "add-event", time.Now(), fields, &err)

	if req.Start.IsZero() {
		return nil, fmt.Errorf("%w: start time is required", domain.ErrInvalidEvent)
	}
	draft := domain.EventDraft{
		Category:        domain.CoalesceStr(req.Category, domain.CategoryOther),
		Name:            strings.TrimSpace(req.Title),
		DateTime:        &req.Start,
		DurationMinutes: req.DurationMinutes,
	}

	event, err = draft.ToEvent(uuid.NewString(), s.now())
	if err != nil {
		return nil, err
	}
	event.Description = domain.CoalesceStr(req.Description, event.Description)

	if !req.AllowConflict {
		existing, lerr := s.Events(ctx, event.Start, event.End)
		if lerr != nil {
			return nil, fmt.Errorf("checking conflicts: %w", lerr)
		}
		minutes := int(event.Duration() / time.Minute)
		if conflicts := schedule.Conflicts(event.Start, existing, minutes); len(conflicts) > 0 {
			fields["conflicts"] = len(conflicts)
			return nil, &ConflictError{Conflicts: conflicts}
		}
	}

	if err = s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("saving event: %w", err)
	}
	fields["event_id"] = event.ID
	return event, nil
}

func (s *eventService) List(ctx context.Context, from, to time.Time) ([]*domain.CalendarEvent, error) {
	return s.events.ListBetween(ctx, from, to)
}

func (s *eventService) Remove(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "remove-event", time.Now(), map[string]any{"event_id": id}, &err)
	return s.events.Delete(ctx, id)
}

// Upcoming returns up to limit events that have not ended yet, soonest first.
// A non-positive limit returns all of them within UpcomingHorizon.
func (s *eventService) Upcoming(ctx context.Context, limit int) ([]*domain.CalendarEvent, error) {
	now := s.now()
	list, err := s.events.ListBetween(ctx, now, now.Add(UpcomingHorizon))
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (s *eventService) FreeSlots(ctx context.Context, from, to time.Time, minDuration time.Duration) ([]schedule.Slot, error) {
	events, err := s.Events(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return schedule.FreeSlots(events, from, to, minDuration, s.window), nil
}
