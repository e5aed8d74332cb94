package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tanishamittal108/PulseAI/internal/app"
	"github.com/tanishamittal108/PulseAI/internal/config"
	"github.com/tanishamittal108/PulseAI/internal/handler"
	"github.com/tanishamittal108/PulseAI/internal/model"
	"github.com/tanishamittal108/PulseAI/internal/service"
)

// fetcher runs the news pipeline once and prints the summarized batch as
// JSON, in the same shape GET /news returns.
func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	})))

	topic := handler.DefaultTopic
	if len(os.Args) > 1 {
		topic = strings.Join(os.Args[1:], " ")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("error building pipeline: %v", err)
	}
	defer a.Close()

	articles, err := a.Pipeline.Handle(ctx, topic)
	if err != nil {
		log.Fatalf("error fetching news: %v", err)
	}

	var summarized, failed int
	for _, article := range articles {
		if strings.HasPrefix(article.Summary, service.FailedSummaryPrefix) {
			failed++
			continue
		}
		summarized++
	}

	items := handler.ToNewsItemResponses(articles)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		log.Fatalf("error writing output: %v", err)
	}

	slog.Info("fetch complete", "topic", topic, "articles", len(articles), "summarized", summarized, "failed", failed, "sentiment_errors", countSentimentErrors(articles))
}

func countSentimentErrors(articles []model.SummarizedArticle) int {
	n := 0
	for _, a := range articles {
		if a.Sentiment != nil && a.Sentiment.Label == model.LabelError {
			n++
		}
	}
	return n
}
