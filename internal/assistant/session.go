package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/studydesk/internal/domain"
	"github.com/alexanderramin/studydesk/internal/schedule"
	"github.com/alexanderramin/studydesk/internal/timeparse"
	"github.com/alexanderramin/studydesk/internal/workflow"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// Greeting opens every session and is the default canned reply.
	Greeting = "What can I help you with today?"
	// RetryText replaces a turn that failed unexpectedly.
	RetryText = "Please try again."
	// NoFreeTimeText answers Find Time when the rest of the day is booked.
	NoFreeTimeText = "No free time left today."
)

// FindTimeMinimum is the shortest gap Find Time reports.
const FindTimeMinimum = 30 * time.Minute

const slotTimeLayout = "3:04 PM"

var (
	// ErrBusy is returned when a turn arrives while another is in flight.
	ErrBusy = errors.New("assistant is busy with another request")
	// ErrEmptyInput is returned for blank messages.
	ErrEmptyInput = errors.New("message is empty")
)

// DefaultLookahead bounds how far ahead events are loaded for conflict checks.
const DefaultLookahead = 365 * 24 * time.Hour

// Deps wires a Session. Nil fields fall back to canned replies, local-only
// time parsing and an empty conflict context.
type Deps struct {
	Registry  *workflow.Registry
	Completer *Completer
	Parser    *timeparse.Parser
	Source    EventSource
	Sink      EventSink
	Logger    *zap.Logger
	Now       func() time.Time
	Lookahead time.Duration
}

// Session is one conversation: a transcript, a workflow manager and the
// capabilities they use. Turns are serialized; a concurrent turn fails
// fast with ErrBusy.
type Session struct {
	inflight sync.Mutex

	manager    *workflow.Manager
	formatter  *Formatter
	completer  *Completer
	parser     *timeparse.Parser
	source     EventSource
	sink       EventSink
	logger     *zap.Logger
	now        func() time.Time
	lookahead  time.Duration
	transcript Transcript
}

// NewSession creates a session and records the greeting.
func NewSession(deps Deps) *Session {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	completer := deps.Completer
	if completer == nil {
		completer = NewCompleter(nil, logger)
	}
	parser := deps.Parser
	if parser == nil {
		parser = timeparse.NewParser(nil, logger)
	}
	lookahead := deps.Lookahead
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}

	manager := workflow.NewManager(deps.Registry)
	s := &Session{
		manager:   manager,
		formatter: NewFormatter(manager, now),
		completer: completer,
		parser:    parser,
		source:    deps.Source,
		sink:      deps.Sink,
		logger:    logger.Named("session"),
		now:       now,
		lookahead: lookahead,
	}
	s.transcript.Append(s.assistantMessage(Greeting, nil, ""))
	return s
}

// HandleInput processes typed text. When a workflow is active the text is
// a step answer; otherwise it is answered by the completer under scope.
func (s *Session) HandleInput(ctx context.Context, text string, scope Scope) (domain.ConversationMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ConversationMessage{}, ErrEmptyInput
	}
	if !s.inflight.TryLock() {
		return domain.ConversationMessage{}, ErrBusy
	}
	defer s.inflight.Unlock()

	offered := s.transcript.Last().Options
	s.transcript.Append(s.userMessage(text))

	var reply domain.ConversationMessage
	switch {
	case s.manager.IsActive() && isClosingOption(text) && containsFold(offered, text):
		s.manager.End()
		reply = s.assistantMessage(Greeting, nil, "")
	case s.manager.IsActive():
		reply = s.workflowTurn(ctx, text)
	default:
		reply = s.completionTurn(ctx, text, scope)
	}
	s.transcript.Append(reply)
	return reply, nil
}

// HandleOption processes a click on an offered option or suggestion.
func (s *Session) HandleOption(ctx context.Context, option string) (domain.ConversationMessage, error) {
	option = strings.TrimSpace(option)
	if option == "" {
		return domain.ConversationMessage{}, ErrEmptyInput
	}
	if !s.inflight.TryLock() {
		return domain.ConversationMessage{}, ErrBusy
	}
	defer s.inflight.Unlock()

	s.transcript.Append(s.userMessage(option))

	var reply domain.ConversationMessage
	switch {
	case s.manager.IsActive() && isClosingOption(option):
		s.manager.End()
		reply = s.assistantMessage(Greeting, nil, "")
	case s.manager.IsActive():
		reply = s.workflowTurn(ctx, option)
	case strings.EqualFold(option, workflow.OptionScheduleAnother):
		reply = s.startTurn(workflow.EventSchedulingID)
	default:
		reply = s.completionTurn(ctx, option, ScopeDefault)
	}
	s.transcript.Append(reply)
	return reply, nil
}

// QuickAction runs the shortcut labelled label.
func (s *Session) QuickAction(ctx context.Context, label string) (domain.ConversationMessage, error) {
	action, ok := LookupAction(label)
	if !ok {
		return domain.ConversationMessage{}, fmt.Errorf("%w: %s", ErrUnknownAction, label)
	}
	if action.FreeSlots {
		return s.findTime(ctx, action.Prompt)
	}
	if action.Workflow == "" {
		return s.HandleInput(ctx, action.Prompt, ScopeDefault)
	}

	if !s.inflight.TryLock() {
		return domain.ConversationMessage{}, ErrBusy
	}
	defer s.inflight.Unlock()

	reply := s.startTurn(action.Workflow)
	s.transcript.Append(reply)
	return reply, nil
}

// EndWorkflow abandons the active workflow, if any.
func (s *Session) EndWorkflow() error {
	if !s.inflight.TryLock() {
		return ErrBusy
	}
	defer s.inflight.Unlock()
	s.manager.End()
	return nil
}

// WorkflowState reports the active workflow's progress.
func (s *Session) WorkflowState() (workflow.State, bool) {
	if !s.inflight.TryLock() {
		return workflow.State{}, false
	}
	defer s.inflight.Unlock()
	return s.manager.State()
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []domain.ConversationMessage {
	return s.transcript.Messages()
}

// Busy reports whether a turn is in flight.
func (s *Session) Busy() bool {
	if s.inflight.TryLock() {
		s.inflight.Unlock()
		return false
	}
	return true
}

func (s *Session) startTurn(id workflow.ID) domain.ConversationMessage {
	resp, err := s.manager.Start(id)
	if err != nil {
		s.logger.Error("starting workflow", zap.String("workflow", string(id)), zap.Error(err))
		return s.assistantMessage(RetryText, nil, "")
	}
	return s.assistantMessage(resp.Text, resp.Options, resp.Error)
}

func (s *Session) workflowTurn(ctx context.Context, text string) domain.ConversationMessage {
	if err := s.refreshContext(ctx); err != nil {
		s.logger.Error("loading events for conflict check", zap.Error(err))
		return s.assistantMessage(RetryText, nil, "")
	}

	in := workflow.TextInput(text)
	if state, ok := s.manager.State(); ok && state.Step == workflow.StepDateTime {
		parsed := s.parser.Parse(ctx, text, s.now())
		if !parsed.OK() {
			return s.assistantMessage(parsed.Reason, nil, workflow.ErrorInvalidTime)
		}
		s.logger.Debug("time resolved",
			zap.String("input", text),
			zap.String("source", string(parsed.Source)),
			zap.Time("at", parsed.At))
		in = workflow.TimeInput(parsed.At)
	}

	resp, err := s.manager.ProcessInput(in)
	if err != nil {
		s.logger.Error("processing workflow input", zap.Error(err))
		return s.assistantMessage(RetryText, nil, "")
	}

	state, _ := s.manager.State()
	msg, err := s.formatter.Format(ctx, resp, &state.Draft, s.sink)
	if err != nil {
		s.logger.Error("creating event", zap.Error(err))
	}
	return msg
}

func (s *Session) completionTurn(ctx context.Context, text string, scope Scope) domain.ConversationMessage {
	reply := s.completer.Complete(ctx, text, scope)
	msg := s.assistantMessage(reply.Text, nil, "")
	msg.Suggestions = reply.Suggestions
	return msg
}

// findTime answers with the completer when it has a model and otherwise
// lists the rest of today's free slots.
func (s *Session) findTime(ctx context.Context, prompt string) (domain.ConversationMessage, error) {
	if !s.inflight.TryLock() {
		return domain.ConversationMessage{}, ErrBusy
	}
	defer s.inflight.Unlock()

	s.transcript.Append(s.userMessage(prompt))

	var reply domain.ConversationMessage
	if s.source == nil {
		reply = s.completionTurn(ctx, prompt, ScopeCalendar)
	} else if r, ok := s.modelReply(ctx, prompt); ok {
		reply = s.assistantMessage(r.Text, nil, "")
		reply.Suggestions = r.Suggestions
	} else {
		reply = s.freeSlotsTurn(ctx)
	}
	s.transcript.Append(reply)
	return reply, nil
}

func (s *Session) modelReply(ctx context.Context, prompt string) (Reply, bool) {
	if !s.completer.Enabled() {
		return Reply{}, false
	}
	r := s.completer.Complete(ctx, prompt, ScopeCalendar)
	return r, r.Source == SourceLLM
}

func (s *Session) freeSlotsTurn(ctx context.Context) domain.ConversationMessage {
	now := s.now()
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	events, err := s.source.Events(ctx, now, endOfDay)
	if err != nil {
		s.logger.Error("loading events for free slots", zap.Error(err))
		return s.assistantMessage(RetryText, nil, "")
	}

	slots := schedule.FreeSlots(events, now, endOfDay, FindTimeMinimum, schedule.DefaultWindow)
	if len(slots) == 0 {
		return s.assistantMessage(NoFreeTimeText, nil, "")
	}
	var b strings.Builder
	b.WriteString("Free time today:")
	for _, slot := range slots {
		fmt.Fprintf(&b, "\n%s - %s", slot.Start.Format(slotTimeLayout), slot.End.Format(slotTimeLayout))
	}
	return s.assistantMessage(b.String(), nil, "")
}

func (s *Session) refreshContext(ctx context.Context) error {
	if s.source == nil {
		return nil
	}
	now := s.now()
	events, err := s.source.Events(ctx, now.Add(-24*time.Hour), now.Add(s.lookahead))
	if err != nil {
		return err
	}
	s.manager.SetContext(workflow.Context{Events: events})
	return nil
}

func (s *Session) userMessage(text string) domain.ConversationMessage {
	return domain.ConversationMessage{
		ID:        uuid.NewString(),
		Role:      domain.RoleUser,
		Text:      text,
		CreatedAt: s.now(),
	}
}

func (s *Session) assistantMessage(text string, options []string, errText string) domain.ConversationMessage {
	return domain.ConversationMessage{
		ID:        uuid.NewString(),
		Role:      domain.RoleAssistant,
		Text:      text,
		Options:   options,
		Error:     errText,
		CreatedAt: s.now(),
	}
}

func containsFold(options []string, text string) bool {
	for _, o := range options {
		if strings.EqualFold(o, text) {
			return true
		}
	}
	return false
}

func isClosingOption(option string) bool {
	return strings.EqualFold(option, workflow.OptionTipsDone) ||
		strings.EqualFold(option, workflow.OptionDone)
}
