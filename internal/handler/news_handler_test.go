package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"github.com/tanishamittal108/PulseAI/internal/model"
	"github.com/tanishamittal108/PulseAI/pkg/news"
)

type fakePipeline struct {
	articles []model.SummarizedArticle
	err      error
	topic    string
}

func (f *fakePipeline) Handle(ctx context.Context, topic string) ([]model.SummarizedArticle, error) {
	f.topic = topic
	return f.articles, f.err
}

func newTestRouter(pipeline NewsPipeline) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, NewNewsHandler(pipeline))
	return r
}

func TestGetRoot(t *testing.T) {
	r := newTestRouter(&fakePipeline{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res MessageResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, WelcomeMessage, res.Message)
}

func TestGetNews_ReturnsSummaries(t *testing.T) {
	published := time.Date(2026, 2, 26, 11, 2, 0, 0, time.UTC)
	pipeline := &fakePipeline{
		articles: []model.SummarizedArticle{
			{Title: "First", Summary: "First summary", URL: "https://example.com/1", PublishedAt: published},
			{Title: "Second", Summary: "Summarization failed: timeout"},
		},
	}
	r := newTestRouter(pipeline)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/news?topic=Climate&country=de&page_size=20", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Climate", pipeline.topic)

	var res []NewsItemResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, len(res))
	assert.Equal(t, "First", res[0].Title)
	assert.Equal(t, "First summary", res[0].Summary)
	assert.Equal(t, "2026-02-26T11:02:00Z", res[0].PublishedAt)
	assert.Equal(t, "Summarization failed: timeout", res[1].Summary)
}

func TestGetNews_ResponseShape(t *testing.T) {
	pipeline := &fakePipeline{
		articles: []model.SummarizedArticle{
			{Title: "Plain", Summary: "No content to summarize."},
			{Title: "Scored", Summary: "ok", Sentiment: &model.SentimentResult{Label: "NEGATIVE", Score: 0.7}},
		},
	}
	r := newTestRouter(pipeline)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/news?topic=AI", nil)
	r.ServeHTTP(w, req)

	var raw []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &raw)

	assert.Equal(t, map[string]interface{}{"title": "Plain", "summary": "No content to summarize."}, raw[0])
	assert.Equal(t, map[string]interface{}{"label": "NEGATIVE", "score": 0.7}, raw[1]["sentiment"])
}

func TestGetNews_DefaultTopic(t *testing.T) {
	pipeline := &fakePipeline{articles: []model.SummarizedArticle{}}
	r := newTestRouter(pipeline)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/news", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, DefaultTopic, pipeline.topic)
	assert.Equal(t, "[]", w.Body.String())
}

func TestGetNews_UpstreamFailure(t *testing.T) {
	fetchErr := &news.FetchError{Source: "NewsAPI", StatusCode: 429, Body: "rate limited"}
	pipeline := &fakePipeline{err: fmt.Errorf("fetch NewsAPI news: %w", fetchErr)}
	r := newTestRouter(pipeline)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/news?topic=AI", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var res ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 429, res.UpstreamStatus)
}

func TestGetNews_TransportFailure(t *testing.T) {
	pipeline := &fakePipeline{err: errors.New("dial tcp: connection refused")}
	r := newTestRouter(pipeline)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/news?topic=AI", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetHealth(t *testing.T) {
	r := newTestRouter(&fakePipeline{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", res["status"])
}
