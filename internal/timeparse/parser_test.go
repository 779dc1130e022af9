package timeparse

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/studydesk/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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
	return &llm.GenerateResponse{Text: m.response, Model: "test"}, nil
}

func (m *mockLLMClient) Available(context.Context) bool { return true }

func TestParser_Parse_LocalRuleSkipsModel(t *testing.T) {
	client := &mockLLMClient{response: "2025-06-20 10:00"}
	p := NewParser(client, nil)

	got := p.Parse(context.Background(), "tomorrow at 3 PM", testNow)

	require.True(t, got.OK())
	assert.Equal(t, at(6, 16, 15, 0), got.At)
	assert.Equal(t, SourceTomorrow, got.Source)
	assert.Empty(t, got.Reason)
	assert.Zero(t, client.calls)
}

func TestParser_Parse_ModelFallback(t *testing.T) {
	client := &mockLLMClient{response: " 2025-06-18 16:00\n"}
	p := NewParser(client, nil)

	got := p.Parse(context.Background(), "Wednesday afternoon around four", testNow)

	require.True(t, got.OK())
	assert.Equal(t, at(6, 18, 16, 0), got.At)
	assert.Equal(t, SourceLLM, got.Source)

	require.Equal(t, 1, client.calls)
	assert.Equal(t, llm.TaskTimeParse, client.lastReq.Task)
	assert.Equal(t, SystemPrompt, client.lastReq.SystemPrompt)
	assert.Contains(t, client.lastReq.UserPrompt, "Wednesday afternoon around four")
	assert.Contains(t, client.lastReq.UserPrompt, "2025-06-15 10:00 (Sunday)")
	require.NotNil(t, client.lastReq.Temperature)
	assert.Equal(t, 0.1, *client.lastReq.Temperature)
	require.NotNil(t, client.lastReq.MaxTokens)
	assert.Equal(t, 150, *client.lastReq.MaxTokens)
}

func TestParser_Parse_ModelFailures(t *testing.T) {
	cases := []struct {
		name   string
		client *mockLLMClient
	}{
		{"invalid reply", &mockLLMClient{response: InvalidReply}},
		{"chatty reply", &mockLLMClient{response: "Sure! 2025-06-18 16:00"}},
		{"seconds included", &mockLLMClient{response: "2025-06-18 16:00:00"}},
		{"past reply", &mockLLMClient{response: "2025-06-01 10:00"}},
		{"impossible date", &mockLLMClient{response: "2025-13-40 10:00"}},
		{"client error", &mockLLMClient{err: errors.New("boom")}},
		{"timeout", &mockLLMClient{err: llm.ErrTimeout}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewParser(tc.client, nil)
			got := p.Parse(context.Background(), "sometime soon", testNow)

			assert.False(t, got.OK())
			assert.Equal(t, FormatHelp(), got.Reason)
			assert.Equal(t, 1, tc.client.calls)
		})
	}
}

func TestParser_Parse_InvalidReplyAlwaysFails(t *testing.T) {
	client := &mockLLMClient{response: "Invalid time format"}
	p := NewParser(client, nil)

	for _, input := range []string{"xyz", "the day after the exam", "soon-ish"} {
		got := p.Parse(context.Background(), input, testNow)
		assert.False(t, got.OK(), input)
		assert.Equal(t, FormatHelp(), got.Reason, input)
	}
}

func TestParser_Parse_ModelReplyAtNowAccepted(t *testing.T) {
	p := NewParser(&mockLLMClient{response: "2025-06-15 10:00"}, nil)

	got := p.Parse(context.Background(), "right now", testNow)

	require.True(t, got.OK())
	assert.True(t, got.At.Equal(testNow))
}

func TestParser_Parse_NoClient(t *testing.T) {
	p := NewParser(nil, nil)

	got := p.Parse(context.Background(), "sometime soon", testNow)

	assert.False(t, got.OK())
	assert.Equal(t, FormatHelp(), got.Reason)
}

func TestParser_Parse_BlankInputDoesNotCallModel(t *testing.T) {
	client := &mockLLMClient{response: "2025-06-20 10:00"}
	p := NewParser(client, nil)

	got := p.Parse(context.Background(), "   ", testNow)

	assert.False(t, got.OK())
	assert.Zero(t, client.calls)
}

func TestFormatHelp(t *testing.T) {
	want := "Please use one of these formats:\n" +
		"• 2 PM today\n" +
		"• tomorrow at 3 PM\n" +
		"• March 5 at 2 PM\n" +
		"• 3:30 PM\n" +
		"• next Monday 2 PM"
	assert.Equal(t, want, FormatHelp())
}
