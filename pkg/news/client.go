package news

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	MinPageSize = 1
	MaxPageSize = 100
)

var ErrEmptyQuery = errors.New("news: query must not be empty")

type Article struct {
	Title       string
	Content     string
	URL         string
	Source      string
	PublishedAt time.Time
}

type Source interface {
	Fetch(ctx context.Context, query, language string, pageSize int) ([]Article, error)
	Name() string
}

// FetchError reports a non-success response from an upstream news API.
type FetchError struct {
	Source     string
	StatusCode int
	Body       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Source, e.StatusCode, e.Body)
}

func clampPageSize(pageSize int) int {
	if pageSize < MinPageSize {
		return MinPageSize
	}
	if pageSize > MaxPageSize {
		return MaxPageSize
	}
	return pageSize
}
