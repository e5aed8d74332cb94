package dashboard

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/tanishamittal108/PulseAI/internal/model"
	"github.com/tanishamittal108/PulseAI/internal/textutil"
)

const (
	summaryDisplayLimit = 350
	EmptyBatchMessage   = "No articles returned yet. Try a different topic or check backend logs."
)

var sparkTicks = []rune("▁▂▃▄▅▆▇█")

var labelColors = map[string]*color.Color{
	textutil.ColorPositive: color.New(color.FgGreen, color.Bold),
	textutil.ColorNegative: color.New(color.FgRed, color.Bold),
	textutil.ColorNeutral:  color.New(color.FgYellow, color.Bold),
	textutil.ColorUnknown:  color.New(color.FgWhite),
	textutil.ColorEmpty:    color.New(color.FgHiBlack),
}

// BuildRows converts backend items into display rows: summaries are cleaned
// and truncated, missing labels become UNKNOWN, timestamps are reformatted.
func BuildRows(items []FeedItem) []model.DisplayRow {
	rows := make([]model.DisplayRow, 0, len(items))
	for _, it := range items {
		label := it.Label
		if label == "" {
			label = model.LabelUnknown
		}
		rows = append(rows, model.DisplayRow{
			Title:          it.Title,
			Summary:        textutil.Truncate(textutil.CleanText(it.Summary), summaryDisplayLimit),
			SentimentLabel: label,
			SentimentScore: it.Score,
			PublishedAt:    textutil.FormatDateTime(it.PublishedAt),
		})
	}
	return rows
}

func SentimentCounts(rows []model.DisplayRow) map[string]int {
	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.SentimentLabel]++
	}
	return counts
}

// Trend returns one point per row that carries a score, in row order.
func Trend(rows []model.DisplayRow) []float64 {
	var points []float64
	for _, r := range rows {
		if r.SentimentScore != nil {
			points = append(points, *r.SentimentScore)
		}
	}
	return points
}

// Sparkline draws scores on a fixed 0..1 scale.
func Sparkline(points []float64) string {
	var b strings.Builder
	top := float64(len(sparkTicks) - 1)
	for _, p := range points {
		p = math.Max(0, math.Min(1, p))
		b.WriteRune(sparkTicks[int(math.Round(p*top))])
	}
	return b.String()
}

type Frame struct {
	Topic     string
	Backend   string
	Rows      []model.DisplayRow
	Err       error
	First     bool
	UpdatedAt time.Time
}

type RenderOptions struct {
	Color       bool
	ClearScreen bool
}

type Renderer struct {
	out  io.Writer
	opts RenderOptions
	now  func() time.Time
}

func NewRenderer(out io.Writer, opts RenderOptions) *Renderer {
	return &Renderer{out: out, opts: opts, now: time.Now}
}

func (r *Renderer) Render(f Frame) error {
	var b strings.Builder

	if r.opts.ClearScreen {
		b.WriteString("\033[H\033[2J")
	}

	fmt.Fprintf(&b, "PulseAI | Smart NewsSense\n")
	fmt.Fprintf(&b, "Latest summaries for '%s'  (backend %s)\n", f.Topic, f.Backend)
	b.WriteString(strings.Repeat("=", 60) + "\n")

	if f.Err != nil {
		fmt.Fprintf(&b, "%s %v\n\n", r.paint(color.New(color.FgRed, color.Bold), "ERROR"), f.Err)
	}

	if f.First && len(f.Rows) == 0 {
		fmt.Fprintf(&b, "%s\n", EmptyBatchMessage)
		_, err := io.WriteString(r.out, b.String())
		return err
	}

	fmt.Fprintf(&b, "Articles shown: %d\n", len(f.Rows))
	if len(f.Rows) > 0 {
		fmt.Fprintf(&b, "Sentiment counts: %s\n", r.formatCounts(SentimentCounts(f.Rows)))
	}
	b.WriteString("\n")

	for _, row := range f.Rows {
		fmt.Fprintf(&b, "## %s\n", row.Title)
		fmt.Fprintf(&b, "Sentiment: %s\n", r.paintLabel(row.SentimentLabel, displayLabel(row)))
		if row.PublishedAt != "" {
			fmt.Fprintf(&b, "Published: %s\n", row.PublishedAt)
		}
		fmt.Fprintf(&b, "%s\n", row.Summary)
		b.WriteString(strings.Repeat("-", 60) + "\n")
	}

	if points := Trend(f.Rows); len(points) > 0 {
		values := make([]string, len(points))
		for i, p := range points {
			values[i] = fmt.Sprintf("%.2f", p)
		}
		fmt.Fprintf(&b, "Sentiment Trend: %s  [%s]\n", Sparkline(points), strings.Join(values, " "))
	}

	if !f.UpdatedAt.IsZero() {
		fmt.Fprintf(&b, "Last updated %s\n", humanize.RelTime(f.UpdatedAt, r.now(), "ago", "from now"))
	}

	_, err := io.WriteString(r.out, b.String())
	return err
}

func displayLabel(row model.DisplayRow) string {
	if row.SentimentScore == nil {
		return row.SentimentLabel
	}
	return fmt.Sprintf("%s (%.2f)", row.SentimentLabel, *row.SentimentScore)
}

// formatCounts orders labels by count, then name.
func (r *Renderer) formatCounts(counts map[string]int) string {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	parts := make([]string, len(labels))
	for i, label := range labels {
		parts[i] = fmt.Sprintf("%s=%d", r.paintLabel(label, label), counts[label])
	}
	return strings.Join(parts, "  ")
}

func (r *Renderer) paintLabel(label, text string) string {
	return r.paint(labelColors[textutil.SentimentColor(label)], text)
}

func (r *Renderer) paint(c *color.Color, text string) string {
	if !r.opts.Color || c == nil {
		return text
	}
	return c.Sprint(text)
}
