package ratelimit

import (
	"context"
	"sync"
	"time"

	"airline-api/pkg/clock"

	"golang.org/x/time/rate"
)

// sweepEvery is how many Allow calls pass between removals of idle keys.
const sweepEvery = 1024

type memoryStore struct {
	limits []Limit
	clock  clock.Clock
	idle   time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
	calls   int
}

type bucket struct {
	limiters []*rate.Limiter
	lastSeen time.Time
}

// NewMemoryStore keeps one token bucket per limit per key in process memory.
// Buckets refill continuously, so a quota of 50 per hour allows a burst of
// 50 and then one request every 72 seconds.
func NewMemoryStore(limits []Limit, clk clock.Clock) Store {
	var idle time.Duration
	for _, l := range limits {
		idle = max(idle, l.Period)
	}

	return &memoryStore{
		limits:  limits,
		clock:   clk,
		idle:    idle,
		buckets: make(map[string]*bucket),
	}
}

func (s *memoryStore) Allow(_ context.Context, key string) (Decision, error) {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.calls%sweepEvery == 0 {
		s.sweep(now)
	}

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{limiters: make([]*rate.Limiter, len(s.limits))}
		for i, l := range s.limits {
			b.limiters[i] = rate.NewLimiter(rate.Every(l.Period/time.Duration(l.Count)), l.Count)
		}
		s.buckets[key] = b
	}
	b.lastSeen = now

	reservations := make([]*rate.Reservation, 0, len(b.limiters))
	var wait time.Duration
	for _, lim := range b.limiters {
		r := lim.ReserveN(now, 1)
		reservations = append(reservations, r)
		if !r.OK() {
			wait = max(wait, s.idle)
			continue
		}
		wait = max(wait, r.DelayFrom(now))
	}

	if wait > 0 {
		for _, r := range reservations {
			r.CancelAt(now)
		}
		return Decision{RetryAfter: wait}, nil
	}

	return Decision{Allowed: true}, nil
}

// sweep drops keys idle for longer than the longest period; their buckets
// would be full again anyway.
func (s *memoryStore) sweep(now time.Time) {
	for key, b := range s.buckets {
		if now.Sub(b.lastSeen) > s.idle {
			delete(s.buckets, key)
		}
	}
}

func (s *memoryStore) Close() error { return nil }
