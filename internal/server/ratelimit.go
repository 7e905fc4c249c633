package server

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// RateLimiter gates analysis requests per session. Allow reports whether a
// request for the session may proceed now and, if so, records it.
type RateLimiter interface {
	Allow(sessionID string) bool
}

// IntervalLimiter enforces a minimum interval between analysis requests per
// session. Last-seen timestamps live in a bounded LRU so the state cannot
// grow without limit.
type IntervalLimiter struct {
	mu          sync.Mutex
	minInterval time.Duration
	lastSeen    *lru.Cache[string, time.Time]
	now         func() time.Time
}

// NewIntervalLimiter creates a limiter tracking at most maxSessions
// sessions.
func NewIntervalLimiter(minInterval time.Duration, maxSessions int) (*IntervalLimiter, error) {
	cache, err := lru.New[string, time.Time](maxSessions)
	if err != nil {
		return nil, err
	}
	return &IntervalLimiter{
		minInterval: minInterval,
		lastSeen:    cache,
		now:         time.Now,
	}, nil
}

// Allow reports whether the session may run an analysis now.
func (l *IntervalLimiter) Allow(sessionID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if last, ok := l.lastSeen.Get(sessionID); ok && now.Sub(last) < l.minInterval {
		return false
	}
	l.lastSeen.Add(sessionID, now)
	return true
}
