package assistant

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alexanderramin/studydesk/internal/domain"
	"github.com/alexanderramin/studydesk/internal/llm"
)

type mockLLMClient struct {
	response string
	err      error
	calls    int
	lastReq  llm.GenerateRequest
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "mock"}, nil
}

func (m *mockLLMClient) Available(context.Context) bool { return m.err == nil }

// memoryCalendar is both an EventSource and an EventSink.
type memoryCalendar struct {
	mu        sync.Mutex
	events    []domain.CalendarEvent
	sinkErr   error
	sourceErr error
	created   int
}

func (c *memoryCalendar) Events(_ context.Context, from, to time.Time) ([]domain.CalendarEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sourceErr != nil {
		return nil, c.sourceErr
	}
	var out []domain.CalendarEvent
	for _, e := range c.events {
		if e.Overlaps(from, to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (c *memoryCalendar) OnEventCreated(_ context.Context, e domain.CalendarEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.created++
	if c.sinkErr != nil {
		return c.sinkErr
	}
	c.events = append(c.events, e)
	return nil
}

var errStorage = errors.New("disk full")

// testNow is Monday 2025-06-16 08:00 UTC.
var testNow = time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func mathSession() domain.CalendarEvent {
	return domain.CalendarEvent{
		ID:     "math",
		Title:  "Math Study Session",
		Start:  time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC),
		End:    time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC),
		Source: domain.SourceSample,
	}
}
