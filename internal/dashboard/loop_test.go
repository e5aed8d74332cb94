package dashboard

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

type fakeFetcher struct {
	batches [][]FeedItem
	errs    []error
	queries []Query
	onCall  func(n int)
}

func (f *fakeFetcher) FetchNews(ctx context.Context, q Query) ([]FeedItem, error) {
	n := len(f.queries)
	f.queries = append(f.queries, q)
	if f.onCall != nil {
		f.onCall(n + 1)
	}
	var err error
	if n < len(f.errs) {
		err = f.errs[n]
	}
	if err != nil {
		return nil, err
	}
	if n < len(f.batches) {
		return f.batches[n], nil
	}
	return nil, nil
}

func immediate(waits *[]time.Duration) func(time.Duration) <-chan time.Time {
	return func(d time.Duration) <-chan time.Time {
		*waits = append(*waits, d)
		ch := make(chan time.Time, 1)
		ch <- time.Time{}
		return ch
	}
}

func newTestLoop(f NewsFetcher, out *bytes.Buffer, autoRefresh bool) *Loop {
	l := NewLoop(f, NewRenderer(out, RenderOptions{}), LoopConfig{
		Backend:     "http://127.0.0.1:8000",
		Query:       Query{Topic: "AI", Country: "us", PageSize: 5},
		AutoRefresh: autoRefresh,
		Interval:    8 * time.Second,
	})
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }
	l.renderer.now = l.now
	return l
}

func TestLoop_SingleRenderWithoutAutoRefresh(t *testing.T) {
	f := &fakeFetcher{batches: [][]FeedItem{threeArticles()}}
	var out bytes.Buffer
	l := newTestLoop(f, &out, false)

	var waits []time.Duration
	l.after = immediate(&waits)

	err := l.Run(context.Background())
	assert.Equal(t, err, nil)
	assert.Equal(t, len(f.queries), 1)
	assert.Equal(t, f.queries[0], Query{Topic: "AI", Country: "us", PageSize: 5})
	assert.Equal(t, len(waits), 0)
	assert.Equal(t, strings.Contains(out.String(), "Articles shown: 3"), true)
	assert.Equal(t, l.State(), StateRendering)
}

func TestLoop_RefreshesUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := &fakeFetcher{
		batches: [][]FeedItem{threeArticles(), threeArticles(), threeArticles()},
		onCall: func(n int) {
			if n == 3 {
				cancel()
			}
		},
	}
	var out bytes.Buffer
	l := newTestLoop(f, &out, true)

	var waits []time.Duration
	l.after = immediate(&waits)

	err := l.Run(ctx)
	assert.Equal(t, err, nil)
	assert.Equal(t, len(f.queries), 3)
	for _, w := range waits {
		assert.Equal(t, w, 8*time.Second)
	}
	assert.Equal(t, strings.Count(out.String(), "Articles shown: 3") >= 2, true)
}

func TestLoop_ErrorKeepsPolling(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := &fakeFetcher{
		errs:    []error{errors.New("connection error: refused")},
		batches: [][]FeedItem{nil, threeArticles()},
		onCall: func(n int) {
			if n == 2 {
				cancel()
			}
		},
	}
	var out bytes.Buffer
	l := newTestLoop(f, &out, true)

	var waits []time.Duration
	l.after = immediate(&waits)

	err := l.Run(ctx)
	assert.Equal(t, err, nil)
	assert.Equal(t, len(f.queries), 2)

	got := out.String()
	assert.Equal(t, strings.Contains(got, "ERROR connection error: refused"), true)
	assert.Equal(t, strings.Contains(got, EmptyBatchMessage), true)
	assert.Equal(t, strings.Contains(got, "Articles shown: 3"), true)
}

func TestLoop_CancelledWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	f := &fakeFetcher{batches: [][]FeedItem{threeArticles()}}
	var out bytes.Buffer
	l := newTestLoop(f, &out, true)
	l.after = func(time.Duration) <-chan time.Time {
		cancel()
		return make(chan time.Time)
	}

	err := l.Run(ctx)
	assert.Equal(t, err, nil)
	assert.Equal(t, len(f.queries), 1)
	assert.Equal(t, l.State(), StateWaiting)
}

func TestLoop_WaitsFullIntervalFromSubSecondNow(t *testing.T) {
	for _, interval := range []time.Duration{8 * time.Second, 500 * time.Millisecond, 2500 * time.Millisecond} {
		t.Run(interval.String(), func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			f := &fakeFetcher{onCall: func(n int) {
				if n == 2 {
					cancel()
				}
			}}
			var out bytes.Buffer
			l := NewLoop(f, NewRenderer(&out, RenderOptions{}), LoopConfig{
				Query:       Query{Topic: "AI"},
				AutoRefresh: true,
				Interval:    interval,
			})
			l.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 900_000_000, time.UTC) }

			var waits []time.Duration
			l.after = immediate(&waits)

			err := l.Run(ctx)
			assert.Equal(t, err, nil)
			assert.Equal(t, len(waits) >= 1, true)
			assert.Equal(t, waits[0], interval)
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, StateRendering.String(), "RENDERING")
	assert.Equal(t, StateWaiting.String(), "WAITING")
}
