package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

func NewOpenAIClient(apiKey string, opts ...option.RequestOption) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: %w", ErrNoAPIKey)
	}

	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &OpenAIClient{
		client:    &client,
		model:     openai.ChatModelGPT4oMini,
		modelName: "gpt-4o-mini",
	}, nil
}

func (c *OpenAIClient) Name() string {
	return c.modelName
}

func (c *OpenAIClient) Summarize(ctx context.Context, text string, opts SummaryOptions) (string, error) {
	content, err := c.complete(ctx, summarySystemPrompt(opts), text)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

func (c *OpenAIClient) Classify(ctx context.Context, text string) (*Classification, error) {
	content, err := c.complete(ctx, sentimentSystemPrompt, text)
	if err != nil {
		return nil, err
	}
	return parseClassification(content)
}

func (c *OpenAIClient) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})

	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: %w", ErrEmptyResponse)
	}

	return resp.Choices[0].Message.Content, nil
}
