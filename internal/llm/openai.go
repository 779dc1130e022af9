package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

// openAIClient implements LLMClient on the OpenAI chat completions API or
// any OpenAI-compatible endpoint.
type openAIClient struct {
	cfg      LLMConfig
	client   *openai.Client
	observer Observer
}

// NewOpenAIClient creates an LLMClient backed by go-openai. A non-empty
// cfg.Endpoint replaces the default base URL.
func NewOpenAIClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai api key is required", ErrNotConfigured)
	}
	if observer == nil {
		observer = NoopObserver{}
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if endpoint := cfg.ResolvedEndpoint(); endpoint != "" {
		clientConfig.BaseURL = endpoint
	}
	clientConfig.HTTPClient = newHTTPClient()

	return &openAIClient{
		cfg:      cfg,
		client:   openai.NewClientWithConfig(clientConfig),
		observer: observer,
	}, nil
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	params := resolveParams(c.cfg, req)

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserPrompt,
	})

	chatReq := openai.ChatCompletionRequest{
		Model:       c.cfg.ResolvedModel(),
		Messages:    messages,
		MaxTokens:   params.maxTokens,
		Temperature: float32(params.temperature),
	}

	return generateWithRetry(ctx, c.cfg, c.observer, req.Task, func(ctx context.Context) (string, string, error) {
		resp, err := c.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return "", "", err
		}
		if len(resp.Choices) == 0 {
			return "", "", fmt.Errorf("%w: empty choices", ErrInvalidOutput)
		}
		return resp.Choices[0].Message.Content, resp.Model, nil
	})
}

func (c *openAIClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := c.client.ListModels(ctx)
	return err == nil
}
