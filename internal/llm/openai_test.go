package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
		assert.Equal(t, "be brief", req.Messages[0].Content)
		assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
		assert.Equal(t, "I need motivation", req.Messages[1].Content)
		assert.Equal(t, 150, req.MaxTokens)
		assert.InDelta(t, 0.7, req.Temperature, 0.001)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:    "chatcmpl-1",
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{
					Index:        0,
					Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "You've got this."},
					FinishReason: openai.FinishReasonStop,
				},
			},
		})
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	cfg.APIKey = "sk-test"
	cfg.Endpoint = srv.URL + "/v1"
	cfg.MaxRetries = 0

	var captured LLMCallEvent
	client, err := NewOpenAIClient(cfg, &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskChat,
		SystemPrompt: "be brief",
		UserPrompt:   "I need motivation",
	})
	require.NoError(t, err)
	assert.Equal(t, "You've got this.", resp.Text)
	assert.Equal(t, "gpt-4o-mini", resp.Model)
	assert.True(t, captured.Success)
	assert.Equal(t, TaskChat, captured.Task)
}

func TestOpenAIClient_Generate_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{ID: "chatcmpl-2", Model: "gpt-4o-mini"})
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	cfg.APIKey = "sk-test"
	cfg.Endpoint = srv.URL + "/v1"
	cfg.MaxRetries = 0

	client, err := NewOpenAIClient(cfg, nil)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskChat, UserPrompt: "hi"})
	assert.ErrorIs(t, err, ErrInvalidOutput)
}
