// Package app wires configuration into the news pipeline shared by the API
// server and the one-shot fetcher.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tanishamittal108/PulseAI/db"
	"github.com/tanishamittal108/PulseAI/internal/config"
	"github.com/tanishamittal108/PulseAI/internal/pipeline"
	"github.com/tanishamittal108/PulseAI/internal/repository"
	"github.com/tanishamittal108/PulseAI/internal/service"
	"github.com/tanishamittal108/PulseAI/pkg/llm"
	"github.com/tanishamittal108/PulseAI/pkg/news"
)

const warmTimeout = 90 * time.Second

type App struct {
	Pipeline *pipeline.Pipeline
	Model    llm.Model
	Source   news.Source

	redis *redis.Client
}

type warmer interface {
	Warm(ctx context.Context) error
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	model, err := NewModel(cfg)
	if err != nil {
		return nil, fmt.Errorf("building %s model backend: %w", cfg.ModelBackend, err)
	}

	if missingHuggingFaceKey(cfg) {
		slog.Warn("HF_API_KEY is not set: the hosted Hugging Face router rejects anonymous requests, so summaries and sentiment will fail",
			"backend", cfg.ModelBackend, "url", cfg.HFAPIURL)
	}

	if w, ok := model.(warmer); ok {
		warmCtx, cancel := context.WithTimeout(ctx, warmTimeout)
		err := w.Warm(warmCtx)
		cancel()
		if err != nil {
			slog.Warn("model warm-up failed", "backend", cfg.ModelBackend, "error", err)
		}
	}

	a := &App{Model: model, Source: NewSource(cfg)}

	var cache service.SummaryCache
	if cfg.RedisURL != "" {
		rdb, err := db.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			slog.Warn("summary cache disabled", "error", err)
		} else {
			a.redis = rdb
			cache = repository.NewSummaryRepository(rdb, cfg.SummaryCacheTTL)
			slog.Info("summary cache enabled", "ttl", cfg.SummaryCacheTTL.String())
		}
	}

	var sentiment pipeline.SentimentAnalyzer
	if cfg.AnalyzeSentiment {
		sentiment = service.NewSentimentService(model)
	}

	a.Pipeline = pipeline.New(a.Source, service.NewSummarizationService(model, cache), sentiment, pipeline.Options{
		Language:  cfg.Language,
		PageSize:  cfg.PageSize,
		MaxLength: cfg.SummaryMaxLength,
		MinLength: cfg.SummaryMinLength,
	})

	slog.Info("pipeline ready",
		"source", a.Source.Name(),
		"backend", cfg.ModelBackend,
		"model", model.Name(),
		"sentiment", cfg.AnalyzeSentiment,
	)

	return a, nil
}

func (a *App) Close() {
	db.CloseRedis(a.redis)
}

func NewModel(cfg *config.Config) (llm.Model, error) {
	switch cfg.ModelBackend {
	case llm.BackendOpenAI:
		client, err := llm.NewOpenAIClient(cfg.OpenAIAPIKey)
		if err != nil {
			return nil, err
		}
		return client, nil
	case llm.BackendAnthropic:
		client, err := llm.NewAnthropicClient(cfg.AnthropicAPIKey)
		if err != nil {
			return nil, err
		}
		return client, nil
	case llm.BackendHuggingFace, "":
		return llm.NewHuggingFaceClient(cfg.HFAPIKey,
			llm.WithHuggingFaceURL(cfg.HFAPIURL),
			llm.WithSummaryModel(cfg.HFSummaryModel),
			llm.WithSentimentModel(cfg.HFSentimentModel),
		), nil
	default:
		return nil, fmt.Errorf("unknown model backend %q", cfg.ModelBackend)
	}
}

// missingHuggingFaceKey reports whether the hosted router is selected without
// credentials. Self-hosted inference URLs may allow anonymous access.
func missingHuggingFaceKey(cfg *config.Config) bool {
	if cfg.ModelBackend != llm.BackendHuggingFace && cfg.ModelBackend != "" {
		return false
	}
	if cfg.HFAPIKey != "" {
		return false
	}
	return cfg.HFAPIURL == "" || strings.TrimRight(cfg.HFAPIURL, "/") == llm.DefaultHuggingFaceURL
}

func NewSource(cfg *config.Config) news.Source {
	if cfg.NewsSource == config.SourceFinnhub {
		return news.NewFinnHubClient(cfg.FinnhubAPIKey)
	}
	return news.NewNewsAPIClient(cfg.NewsAPIKey, cfg.NewsAPIURL)
}
