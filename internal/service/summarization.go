package service

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tanishamittal108/PulseAI/pkg/llm"
)

const (
	NoContentSummary    = "No content to summarize."
	FailedSummaryPrefix = "Summarization failed: "
	DefaultMaxLength    = 120
	DefaultMinLength    = 30
)

type SummaryCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key string, summary string) error
}

// SummarizationService always yields a displayable string: model failures are
// reported inside the returned text instead of as errors.
type SummarizationService struct {
	model     llm.Summarizer
	modelName string
	cache     SummaryCache
}

func NewSummarizationService(model llm.Summarizer, cache SummaryCache) *SummarizationService {
	s := &SummarizationService{model: model, cache: cache}
	if named, ok := model.(interface{ Name() string }); ok {
		s.modelName = named.Name()
	}
	return s
}

func (s *SummarizationService) Summarize(ctx context.Context, text string, maxLength, minLength int) string {
	if strings.TrimSpace(text) == "" {
		return NoContentSummary
	}

	opts := normalizeLengths(maxLength, minLength)
	key := cacheKey(s.modelName, text, opts)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			slog.Warn("summary cache read failed", "error", err)
		} else if ok {
			return cached
		}
	}

	summary, err := s.model.Summarize(ctx, text, opts)
	if err != nil {
		slog.Error("summarization failed", "error", err)
		return FailedSummaryPrefix + err.Error()
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, key, summary); err != nil {
			slog.Warn("summary cache write failed", "error", err)
		}
	}

	return summary
}

func normalizeLengths(maxLength, minLength int) llm.SummaryOptions {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if minLength <= 0 {
		minLength = min(DefaultMinLength, maxLength)
	}
	if minLength > maxLength {
		slog.Warn("summary min length exceeds max length, clamping", "min_length", minLength, "max_length", maxLength)
		minLength = maxLength
	}
	return llm.SummaryOptions{MaxLength: maxLength, MinLength: minLength}
}

// cacheKey scopes entries to the model so a backend or model change does not
// serve summaries produced by the previous one.
func cacheKey(modelName, text string, opts llm.SummaryOptions) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%s:%d:%d:%x", modelName, opts.MaxLength, opts.MinLength, sum[:16])
}
