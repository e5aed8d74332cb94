package news

import (
	"context"
	"strings"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

// FinnHubClient searches Finnhub general market news. The endpoint has no
// query parameter, so matching happens on headline and summary.
type FinnHubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnHubClient(apiKey string) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnHubClient{client: client}
}

func (c *FinnHubClient) Name() string {
	return "FinnHub"
}

func (c *FinnHubClient) Fetch(ctx context.Context, query, language string, pageSize int) ([]Article, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	res, httpResp, err := c.client.MarketNews(ctx).Category("general").Execute()
	if err != nil {
		if httpResp != nil && (httpResp.StatusCode < 200 || httpResp.StatusCode > 299) {
			return nil, &FetchError{Source: c.Name(), StatusCode: httpResp.StatusCode, Body: err.Error()}
		}
		return nil, err
	}

	return matchMarketNews(res, query, clampPageSize(pageSize), c.Name()), nil
}

func matchMarketNews(items []finnhub.MarketNews, query string, limit int, source string) []Article {
	needle := strings.ToLower(strings.TrimSpace(query))

	var articles []Article
	for _, item := range items {
		if len(articles) >= limit {
			break
		}

		a := Article{Source: source}

		if item.Headline != nil {
			a.Title = *item.Headline
		}

		if a.Title == "" {
			continue
		}

		if item.Summary != nil {
			a.Content = *item.Summary
		}

		if !strings.Contains(strings.ToLower(a.Title), needle) && !strings.Contains(strings.ToLower(a.Content), needle) {
			continue
		}

		if item.Url != nil {
			a.URL = *item.Url
		}

		if item.Datetime != nil {
			a.PublishedAt = time.Unix(*item.Datetime, 0).UTC()
		}

		if item.Source != nil && *item.Source != "" {
			a.Source = *item.Source
		}

		articles = append(articles, a)
	}

	return articles
}
