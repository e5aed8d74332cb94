package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestHuggingFaceSummarize(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`[{"summary_text":"  Chip demand keeps rising.  "}]`))
	}))
	defer srv.Close()

	client := NewHuggingFaceClient("hf-key", WithHuggingFaceURL(srv.URL))

	summary, err := client.Summarize(context.Background(), "long article text", SummaryOptions{MaxLength: 120, MinLength: 30})

	assert.Equal(t, nil, err)
	assert.Equal(t, "Chip demand keeps rising.", summary)
	assert.Equal(t, "/models/facebook/bart-large-cnn", gotPath)
	assert.Equal(t, "Bearer hf-key", gotAuth)
	assert.Equal(t, "long article text", gotBody["inputs"])

	params := gotBody["parameters"].(map[string]interface{})
	assert.Equal(t, float64(120), params["max_length"])
	assert.Equal(t, float64(30), params["min_length"])
	assert.Equal(t, false, params["do_sample"])

	options := gotBody["options"].(map[string]interface{})
	assert.Equal(t, true, options["wait_for_model"])
}

func TestHuggingFaceAnonymousRequest(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`[{"summary_text":"ok"}]`))
	}))
	defer srv.Close()

	client := NewHuggingFaceClient("", WithHuggingFaceURL(srv.URL), WithSummaryModel("sshleifer/distilbart-cnn-12-6"))

	_, err := client.Summarize(context.Background(), "text", SummaryOptions{MaxLength: 60, MinLength: 10})

	assert.Equal(t, nil, err)
	assert.Equal(t, "", gotAuth)
	_, hasOptions := gotBody["options"]
	assert.Equal(t, false, hasOptions)
	assert.Equal(t, "sshleifer/distilbart-cnn-12-6", client.Name())
}

func TestHuggingFaceClassify(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		wantLabel string
		wantScore float64
	}{
		{
			name:      "nested response",
			response:  `[[{"label":"NEGATIVE","score":0.12},{"label":"POSITIVE","score":0.88}]]`,
			wantLabel: "POSITIVE",
			wantScore: 0.88,
		},
		{
			name:      "flat response",
			response:  `[{"label":"NEGATIVE","score":0.97},{"label":"POSITIVE","score":0.03}]`,
			wantLabel: "NEGATIVE",
			wantScore: 0.97,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, true, strings.HasSuffix(r.URL.Path, DefaultSentimentModel))
				w.Write([]byte(tt.response))
			}))
			defer srv.Close()

			client := NewHuggingFaceClient("hf-key", WithHuggingFaceURL(srv.URL))

			got, err := client.Classify(context.Background(), "Stocks climbed to a record")

			assert.Equal(t, nil, err)
			assert.Equal(t, tt.wantLabel, got.Label)
			assert.Equal(t, tt.wantScore, got.Score)
		})
	}
}

func TestHuggingFaceErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"Model facebook/bart-large-cnn is currently loading"}`))
	}))
	defer srv.Close()

	client := NewHuggingFaceClient("", WithHuggingFaceURL(srv.URL))

	_, err := client.Summarize(context.Background(), "text", SummaryOptions{MaxLength: 120, MinLength: 30})

	assert.NotEqual(t, nil, err)
	assert.Equal(t, "huggingface: HTTP 503: Model facebook/bart-large-cnn is currently loading", err.Error())
}

func TestHuggingFaceEmptyClassification(t *testing.T) {
	_, err := parseHFClassification([]byte(`[]`))
	assert.NotEqual(t, nil, err)

	_, err = parseHFClassification([]byte(`{"unexpected":true}`))
	assert.NotEqual(t, nil, err)
}
