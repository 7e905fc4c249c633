package server

import (
	"testing"
	"time"
)

func newTestLimiter(t *testing.T, interval time.Duration, maxSessions int) (*IntervalLimiter, *time.Time) {
	t.Helper()
	limiter, err := NewIntervalLimiter(interval, maxSessions)
	if err != nil {
		t.Fatalf("NewIntervalLimiter() error: %v", err)
	}
	current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }
	return limiter, &current
}

func TestIntervalLimiterEnforcesInterval(t *testing.T) {
	limiter, clock := newTestLimiter(t, 5*time.Second, 16)

	if !limiter.Allow("s1") {
		t.Fatal("first request denied")
	}
	if limiter.Allow("s1") {
		t.Error("immediate second request allowed")
	}

	*clock = clock.Add(4 * time.Second)
	if limiter.Allow("s1") {
		t.Error("request inside the interval allowed")
	}

	*clock = clock.Add(time.Second)
	if !limiter.Allow("s1") {
		t.Error("request after the interval denied")
	}
}

func TestIntervalLimiterIsPerSession(t *testing.T) {
	limiter, _ := newTestLimiter(t, 5*time.Second, 16)

	if !limiter.Allow("s1") {
		t.Fatal("first request for s1 denied")
	}
	if !limiter.Allow("s2") {
		t.Error("first request for s2 denied; sessions must be independent")
	}
}

func TestIntervalLimiterDenialDoesNotResetWindow(t *testing.T) {
	limiter, clock := newTestLimiter(t, 5*time.Second, 16)

	if !limiter.Allow("s1") {
		t.Fatal("first request denied")
	}
	*clock = clock.Add(3 * time.Second)
	if limiter.Allow("s1") {
		t.Fatal("request inside the interval allowed")
	}
	// The denied attempt must not push the window out further.
	*clock = clock.Add(2 * time.Second)
	if !limiter.Allow("s1") {
		t.Error("request 5s after the last allowed one denied")
	}
}

func TestIntervalLimiterBoundedSessions(t *testing.T) {
	limiter, _ := newTestLimiter(t, time.Hour, 2)

	limiter.Allow("s1")
	limiter.Allow("s2")
	limiter.Allow("s3") // evicts s1

	if !limiter.Allow("s1") {
		t.Error("evicted session still rate limited; LRU bound not applied")
	}
}
