package handler

type MessageResponse struct {
	Message string `json:"message"`
}

type SentimentResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type NewsItemResponse struct {
	Title       string             `json:"title"`
	Summary     string             `json:"summary"`
	URL         string             `json:"url,omitempty"`
	PublishedAt string             `json:"published_at,omitempty"`
	Sentiment   *SentimentResponse `json:"sentiment,omitempty"`
}

type ErrorResponse struct {
	Error          string `json:"error"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
}
