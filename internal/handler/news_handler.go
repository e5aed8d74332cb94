package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tanishamittal108/PulseAI/internal/model"
	"github.com/tanishamittal108/PulseAI/pkg/news"
)

const (
	DefaultTopic   = "AI"
	WelcomeMessage = "Welcome to PulseAI Backend 🚀"
)

type NewsPipeline interface {
	Handle(ctx context.Context, topic string) ([]model.SummarizedArticle, error)
}

type NewsHandler struct {
	pipeline NewsPipeline
}

func NewNewsHandler(pipeline NewsPipeline) *NewsHandler {
	return &NewsHandler{pipeline: pipeline}
}

func (h *NewsHandler) GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: WelcomeMessage})
}

// GetNews summarizes the latest articles for the topic query parameter.
// country and page_size are accepted but not used.
func (h *NewsHandler) GetNews(c *gin.Context) {
	topic := strings.TrimSpace(c.Query("topic"))
	if topic == "" {
		topic = DefaultTopic
	}

	articles, err := h.pipeline.Handle(c.Request.Context(), topic)
	if err != nil {
		slog.Error("error building news batch", "topic", topic, "error", err)

		var fetchErr *news.FetchError
		if errors.As(err, &fetchErr) {
			c.JSON(http.StatusBadGateway, ErrorResponse{
				Error:          "Failed to fetch news from upstream",
				UpstreamStatus: fetchErr.StatusCode,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch news"})
		return
	}

	c.JSON(http.StatusOK, ToNewsItemResponses(articles))
}

func (h *NewsHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// ToNewsItemResponses always returns a non-nil slice so an empty batch
// encodes as [].
func ToNewsItemResponses(articles []model.SummarizedArticle) []NewsItemResponse {
	res := make([]NewsItemResponse, 0, len(articles))
	for _, a := range articles {
		res = append(res, toNewsItemResponse(a))
	}
	return res
}

func toNewsItemResponse(a model.SummarizedArticle) NewsItemResponse {
	item := NewsItemResponse{
		Title:   a.Title,
		Summary: a.Summary,
		URL:     a.URL,
	}

	if !a.PublishedAt.IsZero() {
		item.PublishedAt = a.PublishedAt.UTC().Format(time.RFC3339)
	}

	if a.Sentiment != nil {
		item.Sentiment = &SentimentResponse{Label: a.Sentiment.Label, Score: a.Sentiment.Score}
	}

	return item
}
