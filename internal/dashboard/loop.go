package dashboard

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

type State int32

const (
	StateRendering State = iota
	StateWaiting
)

func (s State) String() string {
	switch s {
	case StateRendering:
		return "RENDERING"
	case StateWaiting:
		return "WAITING"
	default:
		return "UNKNOWN"
	}
}

// intervalSchedule fires exactly Interval after t, without the whole-second
// alignment of cron.Every.
type intervalSchedule struct {
	Interval time.Duration
}

var _ cron.Schedule = intervalSchedule{}

func (s intervalSchedule) Next(t time.Time) time.Time {
	return t.Add(s.Interval)
}

type NewsFetcher interface {
	FetchNews(ctx context.Context, q Query) ([]FeedItem, error)
}

type LoopConfig struct {
	Backend     string
	Query       Query
	AutoRefresh bool
	Interval    time.Duration
}

// Loop alternates between fetching+rendering and waiting for the next tick
// until its context is cancelled.
type Loop struct {
	fetcher  NewsFetcher
	renderer *Renderer
	cfg      LoopConfig
	schedule cron.Schedule
	state    atomic.Int32

	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

func NewLoop(fetcher NewsFetcher, renderer *Renderer, cfg LoopConfig) *Loop {
	return &Loop{
		fetcher:  fetcher,
		renderer: renderer,
		cfg:      cfg,
		schedule: intervalSchedule{Interval: cfg.Interval},
		now:      time.Now,
		after:    time.After,
	}
}

func (l *Loop) State() State {
	return State(l.state.Load())
}

// Run renders once, then keeps refreshing while auto-refresh is on. It
// returns nil when ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	first := true
	for {
		if ctx.Err() != nil {
			return nil
		}

		l.state.Store(int32(StateRendering))
		if err := l.tick(ctx, first); err != nil {
			return err
		}
		first = false

		if !l.cfg.AutoRefresh {
			return nil
		}

		l.state.Store(int32(StateWaiting))
		now := l.now()
		wait := l.schedule.Next(now).Sub(now)

		select {
		case <-ctx.Done():
			return nil
		case <-l.after(wait):
		}
	}
}

func (l *Loop) tick(ctx context.Context, first bool) error {
	items, err := l.fetcher.FetchNews(ctx, l.cfg.Query)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		slog.Warn("fetch failed", "topic", l.cfg.Query.Topic, "error", err)
		items = nil
	}

	frame := Frame{
		Topic:   l.cfg.Query.Topic,
		Backend: l.cfg.Backend,
		Rows:    BuildRows(items),
		Err:     err,
		First:   first,
	}
	if err == nil {
		frame.UpdatedAt = l.now()
	}

	return l.renderer.Render(frame)
}
