package service

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/tanishamittal108/PulseAI/internal/model"
	"github.com/tanishamittal108/PulseAI/pkg/llm"
)

const (
	minSentimentChars = 5
	maxSentimentChars = 512
)

type SentimentService struct {
	classifier llm.Classifier
}

func NewSentimentService(classifier llm.Classifier) *SentimentService {
	return &SentimentService{classifier: classifier}
}

// Analyze never fails: short input is NEUTRAL and model errors are ERROR,
// both with a zero score.
func (s *SentimentService) Analyze(ctx context.Context, text string) model.SentimentResult {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minSentimentChars {
		return model.SentimentResult{Label: model.LabelNeutral, Score: 0.0}
	}

	if runes := []rune(text); len(runes) > maxSentimentChars {
		text = string(runes[:maxSentimentChars])
	}

	result, err := s.classifier.Classify(ctx, text)
	if err != nil {
		slog.Error("sentiment analysis failed", "error", err)
		return model.SentimentResult{Label: model.LabelError, Score: 0.0}
	}

	label := strings.ToUpper(strings.TrimSpace(result.Label))
	if !isSentimentLabel(label) || result.Score < 0 || result.Score > 1 {
		slog.Error("sentiment model returned an invalid classification", "label", result.Label, "score", result.Score)
		return model.SentimentResult{Label: model.LabelError, Score: 0.0}
	}

	return model.SentimentResult{
		Label: label,
		Score: math.Round(result.Score*1000) / 1000,
	}
}

func isSentimentLabel(label string) bool {
	switch label {
	case model.LabelPositive, model.LabelNegative, model.LabelNeutral:
		return true
	}
	return false
}
