package model

import "time"

const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
	LabelNeutral  = "NEUTRAL"
	LabelError    = "ERROR"
	LabelUnknown  = "UNKNOWN"
)

type SummarizedArticle struct {
	Title       string
	Summary     string
	URL         string
	PublishedAt time.Time
	Sentiment   *SentimentResult
}

type SentimentResult struct {
	Label string
	Score float64
}

// DisplayRow is the per-article view built on every dashboard render.
type DisplayRow struct {
	Title          string
	Summary        string
	SentimentLabel string
	SentimentScore *float64
	PublishedAt    string
}
