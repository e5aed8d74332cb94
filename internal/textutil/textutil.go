package textutil

import (
	"regexp"
	"strings"
	"time"
)

const (
	ColorPositive = "#2ecc71"
	ColorNegative = "#e74c3c"
	ColorNeutral  = "#f1c40f"
	ColorUnknown  = "#95a5a6"
	ColorEmpty    = "#888888"
)

var (
	urlPattern        = regexp.MustCompile(`http\S+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CleanText removes URLs and control characters and collapses whitespace.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = urlPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	return strings.Map(func(r rune) rune {
		if r < 32 {
			return -1
		}
		return r
	}, text)
}

// Truncate shortens text to at most limit characters, cutting back to the
// last space before the limit and appending "...".
func Truncate(text string, limit int) string {
	if text == "" {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	cut := string(runes[:max(limit, 0)])
	if i := strings.LastIndex(cut, " "); i >= 0 {
		cut = cut[:i]
	}

	return cut + "..."
}

// FormatDateTime renders ISO-8601 timestamps as "2006-01-02 15:04:05".
// Input that cannot be parsed is returned unchanged.
func FormatDateTime(value string) string {
	if value == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.Format(time.DateTime)
		}
	}

	return value
}

func SentimentColor(label string) string {
	if label == "" {
		return ColorEmpty
	}

	lbl := strings.ToUpper(strings.TrimSpace(label))

	switch {
	case strings.Contains(lbl, "POS"):
		return ColorPositive
	case strings.Contains(lbl, "NEG"):
		return ColorNegative
	case strings.Contains(lbl, "NEUT"):
		return ColorNeutral
	default:
		return ColorUnknown
	}
}
