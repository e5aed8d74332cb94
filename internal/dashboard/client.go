// Package dashboard polls the PulseAI backend and renders the latest
// summaries to a terminal.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Query struct {
	Topic    string
	Country  string
	PageSize int
}

// FeedItem is one article as returned by the backend. Label is empty and
// Score is nil when the backend did not send them.
type FeedItem struct {
	Title       string
	Summary     string
	Label       string
	Score       *float64
	PublishedAt string
}

// BackendError is returned when the backend answers with a non-OK status.
type BackendError struct {
	StatusCode int
	Body       string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error: %d %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) FetchNews(ctx context.Context, q Query) ([]FeedItem, error) {
	params := url.Values{}
	params.Set("topic", q.Topic)
	params.Set("country", q.Country)
	params.Set("page_size", strconv.Itoa(q.PageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/news?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("connection error: reading body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &BackendError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var raw []feedArticle
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decoding backend response: %w", err)
	}

	items := make([]FeedItem, 0, len(raw))
	for _, a := range raw {
		items = append(items, a.toFeedItem())
	}

	return items, nil
}

// feedArticle accepts both the backend field names and the NewsAPI ones.
type feedArticle struct {
	Title          string          `json:"title"`
	Summary        string          `json:"summary"`
	Description    string          `json:"description"`
	Sentiment      json.RawMessage `json:"sentiment"`
	PublishedAt    string          `json:"publishedAt"`
	PublishedAtAlt string          `json:"published_at"`
}

type feedSentiment struct {
	Label *string  `json:"label"`
	Score *float64 `json:"score"`
}

func (a feedArticle) toFeedItem() FeedItem {
	item := FeedItem{
		Title:       a.Title,
		Summary:     a.Summary,
		PublishedAt: a.PublishedAt,
	}
	if item.Summary == "" {
		item.Summary = a.Description
	}
	if item.PublishedAt == "" {
		item.PublishedAt = a.PublishedAtAlt
	}
	item.Label, item.Score = parseSentiment(a.Sentiment)
	return item
}

// parseSentiment reads either {"label": ..., "score": ...} or a bare label
// string. Anything else is treated as missing.
func parseSentiment(raw json.RawMessage) (string, *float64) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	switch raw[0] {
	case '{':
		var s feedSentiment
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", nil
		}
		label := ""
		if s.Label != nil {
			label = *s.Label
		}
		return label, s.Score
	case '"':
		var label string
		if err := json.Unmarshal(raw, &label); err != nil {
			return "", nil
		}
		return label, nil
	}

	return "", nil
}
