package news

import (
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

const DefaultNewsAPIURL = "https://newsapi.org"

type NewsAPIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewNewsAPIClient(apiKey, baseURL string) *NewsAPIClient {
	if baseURL == "" {
		baseURL = DefaultNewsAPIURL
	}
	return &NewsAPIClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *NewsAPIClient) Name() string {
	return "NewsAPI"
}

// Fetch issues a single /v2/everything search and returns the articles that
// carry a title.
func (c *NewsAPIClient) Fetch(ctx context.Context, query, language string, pageSize int) ([]Article, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("language", language)
	params.Set("pageSize", strconv.Itoa(clampPageSize(pageSize)))
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/everything?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &FetchError{Source: c.Name(), StatusCode: resp.StatusCode, Body: string(body)}
	}

	var raw newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}

	articles := make([]Article, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		if item.Title == "" {
			continue
		}

		content := item.Description
		if content == "" {
			content = item.Content
		}

		publishedAt, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, Article{
			Title:       item.Title,
			Content:     content,
			URL:         item.URL,
			Source:      item.Source.Name,
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Content     string        `json:"content"`
	URL         string        `json:"url"`
	PublishedAt string        `json:"publishedAt"`
	Source      newsAPISource `json:"source"`
}

type newsAPISource struct {
	Name string `json:"name"`
}
