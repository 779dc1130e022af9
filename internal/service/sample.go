package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/studydesk/internal/domain"
	"github.com/alexanderramin/studydesk/internal/repository"
)

// SampleEvents returns the demo calendar relative to the day of now.
func SampleEvents(now time.Time) []*domain.CalendarEvent {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	at := func(days, hour, minute int) time.Time {
		return today.AddDate(0, 0, days).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	}
	sample := func(id, title, desc, color string, start, end time.Time) *domain.CalendarEvent {
		return &domain.CalendarEvent{
			ID:          id,
			Title:       title,
			Description: desc,
			Start:       start,
			End:         end,
			ColorID:     color,
			Source:      domain.SourceSample,
			CreatedAt:   now,
		}
	}

	return []*domain.CalendarEvent{
		sample("sample-1", "Math Study Session", "Review calculus chapters 1-3", "1", at(0, 10, 0), at(0, 12, 0)),
		sample("sample-2", "Physics Group Project", "Meet with team to discuss project outline", "2", at(0, 14, 0), at(0, 15, 30)),
		sample("sample-3", "Chemistry Lab Preparation", "Prepare materials for tomorrow's lab experiment", "3", at(1, 9, 0), at(1, 11, 0)),
		sample("sample-4", "English Literature Essay", "Work on final draft of analysis paper", "4", at(2, 13, 0), at(2, 16, 0)),
	}
}

// MemoryEventRepo is an in-process EventRepo used in sample data mode.
type MemoryEventRepo struct {
	mu     sync.RWMutex
	events map[string]domain.CalendarEvent
}

var _ repository.EventRepo = (*MemoryEventRepo)(nil)

func NewMemoryEventRepo() *MemoryEventRepo {
	return &MemoryEventRepo{events: make(map[string]domain.CalendarEvent)}
}

// NewSampleEventRepo returns a MemoryEventRepo seeded with SampleEvents.
func NewSampleEventRepo(now time.Time) *MemoryEventRepo {
	r := NewMemoryEventRepo()
	for _, e := range SampleEvents(now) {
		r.events[e.ID] = *e
	}
	return r
}

func (r *MemoryEventRepo) Create(_ context.Context, e *domain.CalendarEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[e.ID]; ok {
		return fmt.Errorf("inserting event: duplicate id %s", e.ID)
	}
	r.events[e.ID] = *e
	return nil
}

func (r *MemoryEventRepo) GetByID(_ context.Context, id string) (*domain.CalendarEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return nil, fmt.Errorf("event %s: %w", id, repository.ErrNotFound)
	}
	return &e, nil
}

func (r *MemoryEventRepo) ListBetween(_ context.Context, from, to time.Time) ([]*domain.CalendarEvent, error) {
	return r.filter(func(e domain.CalendarEvent) bool { return e.Overlaps(from, to) }), nil
}

func (r *MemoryEventRepo) ListBySource(_ context.Context, source domain.EventSource) ([]*domain.CalendarEvent, error) {
	return r.filter(func(e domain.CalendarEvent) bool { return e.Source == source }), nil
}

func (r *MemoryEventRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return fmt.Errorf("event %s: %w", id, repository.ErrNotFound)
	}
	delete(r.events, id)
	return nil
}

func (r *MemoryEventRepo) DeleteBySource(_ context.Context, source domain.EventSource) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.events {
		if e.Source == source {
			delete(r.events, id)
			n++
		}
	}
	return n, nil
}

func (r *MemoryEventRepo) filter(keep func(domain.CalendarEvent) bool) []*domain.CalendarEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.CalendarEvent
	for _, e := range r.events {
		if keep(e) {
			e := e
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
