// Package quota caps how many homework-help requests a player can make per
// calendar day. Counters live in redis when configured, else in memory.
package quota

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrQuotaExceeded is returned once a key has used its daily allowance.
var ErrQuotaExceeded = errors.New("daily request limit reached")

const dayLayout = "2006-01-02"

// Limiter counts requests per key per day.
type Limiter interface {
	// Allow records one request for key. It returns the requests left
	// today, or ErrQuotaExceeded without consuming anything.
	Allow(ctx context.Context, key string) (remaining int, err error)
}

// Option configures a limiter.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Unlimited allows every request.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) (int, error) { return -1, nil }

// Memory is a process-local Limiter. Counts are lost on restart.
type Memory struct {
	limit int
	now   func() time.Time

	mu     sync.Mutex
	counts map[string]dayCount
}

type dayCount struct {
	day string
	n   int
}

// NewMemory returns a Limiter allowing limit requests per key per day.
// A limit <= 0 disables limiting.
func NewMemory(limit int, opts ...Option) Limiter {
	if limit <= 0 {
		return Unlimited{}
	}
	o := buildOptions(opts)
	return &Memory{limit: limit, now: o.now, counts: make(map[string]dayCount)}
}

func (m *Memory) Allow(_ context.Context, key string) (int, error) {
	day := m.now().Format(dayLayout)

	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.counts[key]
	if c.day != day {
		c = dayCount{day: day}
	}
	if c.n >= m.limit {
		return 0, ErrQuotaExceeded
	}
	c.n++
	m.counts[key] = c
	return m.limit - c.n, nil
}
