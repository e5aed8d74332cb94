package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tanishamittal108/PulseAI/internal/model"
	"github.com/tanishamittal108/PulseAI/pkg/news"
)

type Summarizer interface {
	Summarize(ctx context.Context, text string, maxLength, minLength int) string
}

type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) model.SentimentResult
}

type Options struct {
	Language  string
	PageSize  int
	MaxLength int
	MinLength int
}

// Pipeline fetches articles for a topic and summarizes them one at a time.
type Pipeline struct {
	source     news.Source
	summarizer Summarizer
	sentiment  SentimentAnalyzer
	opts       Options
}

// New builds a Pipeline. sentiment may be nil to skip sentiment analysis.
func New(source news.Source, summarizer Summarizer, sentiment SentimentAnalyzer, opts Options) *Pipeline {
	if opts.Language == "" {
		opts.Language = "en"
	}
	if opts.PageSize == 0 {
		opts.PageSize = 5
	}
	return &Pipeline{
		source:     source,
		summarizer: summarizer,
		sentiment:  sentiment,
		opts:       opts,
	}
}

func (p *Pipeline) Handle(ctx context.Context, topic string) ([]model.SummarizedArticle, error) {
	articles, err := p.source.Fetch(ctx, topic, p.opts.Language, p.opts.PageSize)
	if err != nil {
		return nil, fmt.Errorf("fetch %s news for %q: %w", p.source.Name(), topic, err)
	}

	slog.Info("articles fetched", "source", p.source.Name(), "topic", topic, "count", len(articles))

	summarized := make([]model.SummarizedArticle, 0, len(articles))
	for _, a := range articles {
		item := model.SummarizedArticle{
			Title:       a.Title,
			Summary:     p.summarizer.Summarize(ctx, a.Content, p.opts.MaxLength, p.opts.MinLength),
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
		}

		if p.sentiment != nil {
			result := p.sentiment.Analyze(ctx, a.Content)
			item.Sentiment = &result
		}

		summarized = append(summarized, item)
	}

	return summarized, nil
}
