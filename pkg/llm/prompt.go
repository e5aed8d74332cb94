package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

const sentimentSystemPrompt = `You are a news sentiment classifier. Classify the overall sentiment of the given text.

Output JSON only, no other text:
{
  "label": "one of: POSITIVE, NEGATIVE, NEUTRAL",
  "score": confidence between 0 and 1
}`

var validLabels = map[string]bool{
	"POSITIVE": true,
	"NEGATIVE": true,
	"NEUTRAL":  true,
}

func summarySystemPrompt(opts SummaryOptions) string {
	return fmt.Sprintf(`You are a news editor. Write an abstractive summary of the given article text.

Rules:
- Between %d and %d words
- Neutral tone, keep names, numbers and dates
- Plain text only, no preamble, no bullet points`, opts.MinLength, opts.MaxLength)
}

func parseClassification(content string) (*Classification, error) {
	content = cleanJSONResponse(content)

	var parsed struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}

	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	if parsed.Label == "" {
		return nil, fmt.Errorf("no label in response: %s", content)
	}

	label := strings.ToUpper(strings.TrimSpace(parsed.Label))
	if !validLabels[label] {
		return nil, fmt.Errorf("unknown sentiment label %q in response: %s", parsed.Label, content)
	}

	if parsed.Score < 0 || parsed.Score > 1 {
		return nil, fmt.Errorf("sentiment score %v outside [0,1] in response: %s", parsed.Score, content)
	}

	return &Classification{Label: label, Score: parsed.Score}, nil
}
