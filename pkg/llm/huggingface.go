package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultHuggingFaceURL = "https://router.huggingface.co/hf-inference"
	DefaultSummaryModel   = "facebook/bart-large-cnn"
	DefaultSentimentModel = "distilbert/distilbert-base-uncased-finetuned-sst-2-english"
)

// HuggingFaceClient runs summarization and text classification on the
// Hugging Face Inference API.
type HuggingFaceClient struct {
	apiKey         string
	baseURL        string
	summaryModel   string
	sentimentModel string
	httpClient     *http.Client
}

type HuggingFaceOption func(*HuggingFaceClient)

func WithHuggingFaceURL(baseURL string) HuggingFaceOption {
	return func(c *HuggingFaceClient) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func WithSummaryModel(model string) HuggingFaceOption {
	return func(c *HuggingFaceClient) {
		if model != "" {
			c.summaryModel = model
		}
	}
}

func WithSentimentModel(model string) HuggingFaceOption {
	return func(c *HuggingFaceClient) {
		if model != "" {
			c.sentimentModel = model
		}
	}
}

func WithHuggingFaceHTTPClient(client *http.Client) HuggingFaceOption {
	return func(c *HuggingFaceClient) { c.httpClient = client }
}

// NewHuggingFaceClient builds a client. Without an API key requests are sent
// anonymously and do not wait for cold models to load.
func NewHuggingFaceClient(apiKey string, opts ...HuggingFaceOption) *HuggingFaceClient {
	c := &HuggingFaceClient{
		apiKey:         apiKey,
		baseURL:        DefaultHuggingFaceURL,
		summaryModel:   DefaultSummaryModel,
		sentimentModel: DefaultSentimentModel,
		httpClient:     &http.Client{Timeout: 120 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HuggingFaceClient) Name() string {
	return c.summaryModel
}

// Warm sends a tiny request to both models so the first real request does not
// pay the model load time.
func (c *HuggingFaceClient) Warm(ctx context.Context) error {
	if _, err := c.Summarize(ctx, "PulseAI is warming up the summarization model.", SummaryOptions{MaxLength: 20, MinLength: 5}); err != nil {
		return fmt.Errorf("warm %s: %w", c.summaryModel, err)
	}
	if _, err := c.Classify(ctx, "PulseAI is ready."); err != nil {
		return fmt.Errorf("warm %s: %w", c.sentimentModel, err)
	}
	return nil
}

func (c *HuggingFaceClient) Summarize(ctx context.Context, text string, opts SummaryOptions) (string, error) {
	body := hfRequest{
		Inputs: text,
		Parameters: map[string]any{
			"max_length": opts.MaxLength,
			"min_length": opts.MinLength,
			"do_sample":  false,
		},
		Options: c.requestOptions(),
	}

	raw, err := c.post(ctx, c.summaryModel, body)
	if err != nil {
		return "", err
	}

	var parsed []struct {
		SummaryText string `json:"summary_text"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("huggingface: decode summary: %w", err)
	}

	if len(parsed) == 0 || strings.TrimSpace(parsed[0].SummaryText) == "" {
		return "", fmt.Errorf("huggingface: %w", ErrEmptyResponse)
	}

	return strings.TrimSpace(parsed[0].SummaryText), nil
}

func (c *HuggingFaceClient) Classify(ctx context.Context, text string) (*Classification, error) {
	body := hfRequest{
		Inputs:  text,
		Options: c.requestOptions(),
	}

	raw, err := c.post(ctx, c.sentimentModel, body)
	if err != nil {
		return nil, err
	}

	return parseHFClassification(raw)
}

func (c *HuggingFaceClient) requestOptions() *hfOptions {
	if c.apiKey == "" {
		return nil
	}
	return &hfOptions{WaitForModel: true}
}

func (c *HuggingFaceClient) post(ctx context.Context, model string, body hfRequest) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("huggingface: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/models/"+model, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("huggingface: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("huggingface: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("huggingface: HTTP %d: %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("huggingface: HTTP %d: %s", resp.StatusCode, string(raw))
	}

	return raw, nil
}

// parseHFClassification accepts both the nested [[{label,score}]] and the
// flat [{label,score}] response shapes and returns the top-scoring label.
func parseHFClassification(raw []byte) (*Classification, error) {
	var nested [][]hfLabelScore
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 {
		return topLabel(nested[0])
	}

	var flat []hfLabelScore
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("huggingface: decode classification: %w", err)
	}
	return topLabel(flat)
}

func topLabel(scores []hfLabelScore) (*Classification, error) {
	if len(scores) == 0 {
		return nil, fmt.Errorf("huggingface: %w", ErrEmptyResponse)
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}

	return &Classification{Label: best.Label, Score: best.Score}, nil
}

type hfRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Options    *hfOptions     `json:"options,omitempty"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfLabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
