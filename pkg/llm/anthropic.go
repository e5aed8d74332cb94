package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

func NewAnthropicClient(apiKey string, opts ...option.RequestOption) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic: %w", ErrNoAPIKey)
	}

	client := anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &AnthropicClient{
		client:    &client,
		model:     anthropic.ModelClaude3_5HaikuLatest,
		modelName: "claude-3.5-haiku",
	}, nil
}

func (c *AnthropicClient) Name() string {
	return c.modelName
}

func (c *AnthropicClient) Summarize(ctx context.Context, text string, opts SummaryOptions) (string, error) {
	content, err := c.complete(ctx, summarySystemPrompt(opts), text)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

func (c *AnthropicClient) Classify(ctx context.Context, text string) (*Classification, error) {
	content, err := c.complete(ctx, sentimentSystemPrompt, text)
	if err != nil {
		return nil, err
	}
	return parseClassification(content)
}

func (c *AnthropicClient) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})

	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 || resp.Content[0].Text == "" {
		return "", fmt.Errorf("anthropic: %w", ErrEmptyResponse)
	}

	return resp.Content[0].Text, nil
}
