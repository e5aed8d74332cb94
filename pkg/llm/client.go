// Package llm wraps the language-model backends used for abstractive
// summarization and sentiment classification.
package llm

import (
	"context"
	"errors"
	"strings"
)

const (
	BackendHuggingFace = "huggingface"
	BackendOpenAI      = "openai"
	BackendAnthropic   = "anthropic"
)

var (
	ErrNoAPIKey      = errors.New("llm: API key not configured")
	ErrEmptyResponse = errors.New("llm: empty response from model")
)

type SummaryOptions struct {
	MaxLength int
	MinLength int
}

type Classification struct {
	Label string
	Score float64
}

type Summarizer interface {
	Summarize(ctx context.Context, text string, opts SummaryOptions) (string, error)
}

type Classifier interface {
	Classify(ctx context.Context, text string) (*Classification, error)
}

// Model is a loaded backend able to both summarize and classify. Backends are
// built once at startup and are safe for reuse.
type Model interface {
	Summarizer
	Classifier
	Name() string
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
