package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/studydesk/internal/domain"
)

type EventRepo interface {
	Create(ctx context.Context, e *domain.CalendarEvent) error
	GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error)
	// ListBetween returns events overlapping [from, to), ordered by start.
	ListBetween(ctx context.Context, from, to time.Time) ([]*domain.CalendarEvent, error)
	ListBySource(ctx context.Context, source domain.EventSource) ([]*domain.CalendarEvent, error)
	Delete(ctx context.Context, id string) error
	DeleteBySource(ctx context.Context, source domain.EventSource) (int, error)
}

type FeedStateRepo interface {
	Get(ctx context.Context, name string) (*domain.FeedState, error)
	List(ctx context.Context) ([]*domain.FeedState, error)
	Upsert(ctx context.Context, s *domain.FeedState) error
}
