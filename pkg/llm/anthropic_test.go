package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/go-playground/assert/v2"
)

func newMessagesServer(text string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_test",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-haiku-latest",
			"stop_reason": "end_turn",
			"content": [{"type": "text", "text": ` + text + `}],
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
}

func TestAnthropicClassify(t *testing.T) {
	srv := newMessagesServer(`"` + "```json\\n{\\\"label\\\": \\\"Positive\\\", \\\"score\\\": 0.93}\\n```" + `"`)
	defer srv.Close()

	client, err := NewAnthropicClient("test-key", option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))
	assert.Equal(t, nil, err)

	got, err := client.Classify(context.Background(), "Record quarter for the company")

	assert.Equal(t, nil, err)
	assert.Equal(t, "POSITIVE", got.Label)
	assert.Equal(t, 0.93, got.Score)
}

func TestAnthropicSummarize(t *testing.T) {
	srv := newMessagesServer(`"\nRates were left unchanged.\n"`)
	defer srv.Close()

	client, err := NewAnthropicClient("test-key", option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))
	assert.Equal(t, nil, err)

	got, err := client.Summarize(context.Background(), "article", SummaryOptions{MaxLength: 120, MinLength: 30})

	assert.Equal(t, nil, err)
	assert.Equal(t, "Rates were left unchanged.", got)
}

func TestAnthropicEmptyContent(t *testing.T) {
	srv := newMessagesServer(`""`)
	defer srv.Close()

	client, err := NewAnthropicClient("test-key", option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))
	assert.Equal(t, nil, err)

	_, err = client.Summarize(context.Background(), "article", SummaryOptions{MaxLength: 120, MinLength: 30})
	assert.NotEqual(t, nil, err)
}
