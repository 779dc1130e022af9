// Package timeparse resolves natural-language time phrases such as
// "tomorrow at 3 PM" into concrete timestamps.
package timeparse

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/alexanderramin/studydesk/internal/llm"
	"go.uber.org/zap"
)

// Source names the rule that resolved a phrase.
type Source string

const (
	SourceToday    Source = "today"
	SourceTomorrow Source = "tomorrow"
	SourceClock    Source = "clock"
	SourceWeekday  Source = "weekday"
	SourceMonthDay Source = "month_day"
	SourceLiteral  Source = "literal"
	SourceLLM      Source = "llm"
)

// SystemPrompt instructs the language model to normalize a time phrase.
const SystemPrompt = `You are a time parsing assistant. Convert the following time expression to YYYY-MM-DD HH:mm format (24-hour clock). If the input is invalid or unclear, respond with "Invalid time format". Be strict about the format - only return either a date-time string or "Invalid time format".`

// InvalidReply is the literal reply for phrases the model cannot resolve.
const InvalidReply = "Invalid time format"

const replyLayout = "2006-01-02 15:04"

var replyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}$`)

// Examples lists phrasings shown to the user when parsing fails.
var Examples = []string{
	"2 PM today",
	"tomorrow at 3 PM",
	"March 5 at 2 PM",
	"3:30 PM",
	"next Monday 2 PM",
}

// FormatHelp returns the message explaining accepted phrasings.
func FormatHelp() string {
	var b strings.Builder
	b.WriteString("Please use one of these formats:")
	for _, ex := range Examples {
		b.WriteString("\n• ")
		b.WriteString(ex)
	}
	return b.String()
}

// ParsedTime is the outcome of a parse attempt. Exactly one of At and
// Reason is set.
type ParsedTime struct {
	At     time.Time
	Source Source
	Reason string
}

// OK reports whether the phrase was resolved.
func (p ParsedTime) OK() bool {
	return !p.At.IsZero()
}

// Parser resolves time phrases with local rules, then an optional LLM.
type Parser struct {
	client llm.LLMClient
	logger *zap.Logger
}

// NewParser creates a Parser. A nil client disables the model fallback.
func NewParser(client llm.LLMClient, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{client: client, logger: logger.Named("timeparse")}
}

// Parse resolves input relative to now. Failures are reported in the
// result, never as an error.
func (p *Parser) Parse(ctx context.Context, input string, now time.Time) ParsedTime {
	if at, src, ok := ParseLocal(input, now); ok {
		return ParsedTime{At: at, Source: src}
	}

	if p.client != nil && strings.TrimSpace(input) != "" {
		if at, ok := p.parseWithLLM(ctx, input, now); ok {
			return ParsedTime{At: at, Source: SourceLLM}
		}
	}

	return ParsedTime{Reason: FormatHelp()}
}

func (p *Parser) parseWithLLM(ctx context.Context, input string, now time.Time) (time.Time, bool) {
	temp := 0.1
	maxTokens := 150
	resp, err := p.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskTimeParse,
		SystemPrompt: SystemPrompt,
		UserPrompt:   userPrompt(input, now),
		Temperature:  &temp,
		MaxTokens:    &maxTokens,
	})
	if err != nil {
		p.logger.Warn("time parse fallback failed", zap.String("input", input), zap.Error(err))
		return time.Time{}, false
	}

	text := strings.TrimSpace(resp.Text)
	if text == InvalidReply || !replyPattern.MatchString(text) {
		p.logger.Debug("time parse fallback rejected", zap.String("input", input), zap.String("reply", text))
		return time.Time{}, false
	}

	at, err := time.ParseInLocation(replyLayout, text, now.Location())
	if err != nil {
		return time.Time{}, false
	}
	return notBefore(at, now)
}

// userPrompt carries the reference time so relative phrases can be resolved.
func userPrompt(input string, now time.Time) string {
	return fmt.Sprintf("Current time: %s (%s)\nExpression: %s",
		now.Format(replyLayout), now.Weekday(), strings.TrimSpace(input))
}
