package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicClient implements LLMClient on the Anthropic Messages API.
type anthropicClient struct {
	cfg      LLMConfig
	client   anthropic.Client
	observer Observer
}

// NewAnthropicClient creates an LLMClient backed by anthropic-sdk-go.
// Retries are handled by generateWithRetry, so the SDK's own are off.
func NewAnthropicClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: anthropic api key is required", ErrNotConfigured)
	}
	if observer == nil {
		observer = NoopObserver{}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if endpoint := cfg.ResolvedEndpoint(); endpoint != "" {
		opts = append(opts, option.WithBaseURL(endpoint))
	}

	return &anthropicClient{
		cfg:      cfg,
		client:   anthropic.NewClient(opts...),
		observer: observer,
	}, nil
}

func (c *anthropicClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	params := resolveParams(c.cfg, req)

	newParams := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.cfg.ResolvedModel()),
		MaxTokens:   int64(params.maxTokens),
		Temperature: anthropic.Float(params.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt)),
		},
	}
	if req.SystemPrompt != "" {
		newParams.System = []anthropic.TextBlockParam{{Text: req.SystemPrompt}}
	}

	return generateWithRetry(ctx, c.cfg, c.observer, req.Task, func(ctx context.Context) (string, string, error) {
		resp, err := c.client.Messages.New(ctx, newParams)
		if err != nil {
			return "", "", err
		}

		var b strings.Builder
		for _, block := range resp.Content {
			if block.Type == "text" {
				b.WriteString(block.Text)
			}
		}
		if b.Len() == 0 {
			return "", "", fmt.Errorf("%w: no text content", ErrInvalidOutput)
		}
		return b.String(), string(resp.Model), nil
	})
}

// Available reports whether a key is configured. The Messages API has no
// free health endpoint.
func (c *anthropicClient) Available(context.Context) bool {
	return c.cfg.APIKey != ""
}
