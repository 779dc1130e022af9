// Package assistant hosts the conversational study assistant: free-form
// completions, workflow turns and the transcript they produce.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/studydesk/internal/llm"
	"github.com/alexanderramin/studydesk/internal/timeparse"
	"go.uber.org/zap"
)

// Scope is the conversational context a message is sent from. It selects
// the system prompt, sampling temperature, canned reply and suggestions.
type Scope string

const (
	ScopeTimeParsing     Scope = "time-parsing"
	ScopeEventScheduling Scope = "event-scheduling"
	ScopeCalendar        Scope = "/calendar"
	ScopeTasks           Scope = "/tasks"
	ScopeAssistant       Scope = "/assistant"
	ScopeDefault         Scope = "/"
)

// Scopes lists every known scope.
var Scopes = []Scope{
	ScopeDefault,
	ScopeCalendar,
	ScopeTasks,
	ScopeAssistant,
	ScopeEventScheduling,
	ScopeTimeParsing,
}

// ParseScope validates a scope name. Empty input is the default scope.
func ParseScope(s string) (Scope, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ScopeDefault, nil
	}
	for _, sc := range Scopes {
		if string(sc) == s {
			return sc, nil
		}
	}
	return "", fmt.Errorf("unknown scope %q", s)
}

const (
	maxCompletionTokens = 150
	timeParseTemp       = 0.1
	chatTemp            = 0.7
)

// Reply is a completed assistant turn.
type Reply struct {
	Text        string
	Suggestions []string
	Source      string // SourceLLM or SourceFallback
}

// Reply sources.
const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
)

// SystemPrompt returns the system prompt for scope.
func SystemPrompt(scope Scope) string {
	switch scope {
	case ScopeTimeParsing:
		return timeparse.SystemPrompt
	case ScopeEventScheduling:
		return "You are a scheduling assistant helping to create calendar events. Keep responses concise and actionable."
	case ScopeCalendar:
		return "You are a study assistant helping with calendar optimization."
	case ScopeTasks:
		return "You are a study assistant helping with task management."
	case ScopeAssistant:
		return "You are a study assistant providing academic guidance."
	default:
		return "You are a study assistant helping with time management and academic success."
	}
}

// FallbackText returns the canned reply used when no completion is available.
func FallbackText(scope Scope) string {
	switch scope {
	case ScopeTimeParsing:
		return timeparse.InvalidReply
	case ScopeCalendar:
		return "Would you like to schedule a study session?"
	case ScopeTasks:
		return "What task would you like to focus on?"
	case ScopeAssistant:
		return "How can I help with your studies?"
	default:
		return Greeting
	}
}

// Suggestions returns the follow-up prompts offered for scope.
func Suggestions(scope Scope) []string {
	switch scope {
	case ScopeCalendar:
		return []string{"Find study time", "Add study block"}
	case ScopeTasks:
		return []string{"Create task", "Set priority"}
	case ScopeAssistant:
		return []string{"Study technique", "Stay focused"}
	default:
		return nil
	}
}

func temperature(scope Scope) float64 {
	if scope == ScopeTimeParsing {
		return timeParseTemp
	}
	return chatTemp
}

// Completer answers free-form messages with a language model and falls
// back to canned replies when the model is missing or fails.
type Completer struct {
	client llm.LLMClient
	logger *zap.Logger
}

// NewCompleter creates a Completer. A nil client always uses canned replies.
func NewCompleter(client llm.LLMClient, logger *zap.Logger) *Completer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Completer{client: client, logger: logger.Named("completer")}
}

// Enabled reports whether a language model is configured.
func (c *Completer) Enabled() bool {
	return c.client != nil
}

// Complete never fails; errors degrade to the scope's canned reply.
func (c *Completer) Complete(ctx context.Context, message string, scope Scope) Reply {
	text, err := c.generate(ctx, message, scope)
	if err != nil {
		c.logger.Warn("completion fallback",
			zap.String("scope", string(scope)),
			zap.Error(err))
		return Reply{
			Text:        FallbackText(scope),
			Suggestions: Suggestions(scope),
			Source:      SourceFallback,
		}
	}
	return Reply{Text: text, Suggestions: Suggestions(scope), Source: SourceLLM}
}

func (c *Completer) generate(ctx context.Context, message string, scope Scope) (string, error) {
	if c.client == nil {
		return "", llm.ErrNotConfigured
	}

	temp := temperature(scope)
	maxTokens := maxCompletionTokens
	resp, err := c.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskChat,
		SystemPrompt: SystemPrompt(scope),
		UserPrompt:   message,
		Temperature:  &temp,
		MaxTokens:    &maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("completion failed: %w", llm.ErrInvalidOutput)
	}
	return text, nil
}
