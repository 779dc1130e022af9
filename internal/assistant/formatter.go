package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studydesk/internal/domain"
	"github.com/alexanderramin/studydesk/internal/workflow"
	"github.com/google/uuid"
)

// EventSink receives events created by a confirmed workflow.
type EventSink interface {
	OnEventCreated(ctx context.Context, e domain.CalendarEvent) error
}

// EventSource supplies the events used for conflict checks.
type EventSource interface {
	Events(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error)
}

// ErrorSaveFailed is shown on a message when a confirmed event could not be stored.
const ErrorSaveFailed = "Could not save event"

// Formatter turns workflow responses into transcript messages and
// materializes confirmed drafts.
type Formatter struct {
	manager *workflow.Manager
	now     func() time.Time
	newID   func() string
}

func NewFormatter(manager *workflow.Manager, now func() time.Time) *Formatter {
	if now == nil {
		now = time.Now
	}
	return &Formatter{manager: manager, now: now, newID: uuid.NewString}
}

// Format builds the assistant message for resp. When resp confirms the
// draft, the event is handed to sink exactly once and the active workflow
// ends. An incomplete draft is not materialized and the message is returned
// as is. A non-nil error reports a failed hand-off; the returned message is
// still valid and carries ErrorSaveFailed.
func (f *Formatter) Format(ctx context.Context, resp workflow.Response, draft *domain.EventDraft, sink EventSink) (domain.ConversationMessage, error) {
	msg := f.message(resp)
	if !resp.Confirmed() {
		return msg, nil
	}

	defer f.manager.End()

	if !draft.Complete() {
		return msg, nil
	}

	event, err := draft.ToEvent(f.newID(), f.now())
	if err != nil {
		msg.Error = ErrorSaveFailed
		return msg, err
	}
	if sink == nil {
		msg.Error = ErrorSaveFailed
		return msg, errors.New("no event sink configured")
	}
	if err := sink.OnEventCreated(ctx, *event); err != nil {
		msg.Error = ErrorSaveFailed
		return msg, fmt.Errorf("saving event %s: %w", event.ID, err)
	}
	return msg, nil
}

func (f *Formatter) message(resp workflow.Response) domain.ConversationMessage {
	return domain.ConversationMessage{
		ID:          f.newID(),
		Role:        domain.RoleAssistant,
		Text:        resp.Text,
		Options:     resp.Options,
		Suggestions: resp.Suggestions,
		Error:       resp.Error,
		CreatedAt:   f.now(),
	}
}
