package server

import (
	"sync"
	"time"
)

// RateLimiter tracks request timestamps per key (usually a client IP hash)
// inside a sliding one-minute window.
type RateLimiter struct {
	mu       sync.Mutex
	rpm      int
	requests map[string][]time.Time
	lastSeen map[string]time.Time
}

func NewRateLimiter(rpm int) *RateLimiter {
	if rpm <= 0 {
		rpm = 60
	}
	return &RateLimiter{
		rpm:      rpm,
		requests: map[string][]time.Time{},
		lastSeen: map[string]time.Time{},
	}
}

// Allow records a request for key and reports whether it fits the window.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	cutoff := now.Add(-1 * time.Minute)
	recent := filterRecentTime(l.requests[key], cutoff)
	if len(recent) >= l.rpm {
		l.requests[key] = recent
		l.lastSeen[key] = now
		return false
	}
	l.requests[key] = append(recent, now)
	l.lastSeen[key] = now
	l.pruneLocked(now)
	return true
}

// pruneLocked drops keys idle for over ten minutes so the map does not grow
// with every IP that ever hit the service.
func (l *RateLimiter) pruneLocked(now time.Time) {
	if len(l.lastSeen) < 1024 {
		return
	}
	idleCutoff := now.Add(-10 * time.Minute)
	for key, seen := range l.lastSeen {
		if seen.Before(idleCutoff) {
			delete(l.lastSeen, key)
			delete(l.requests, key)
		}
	}
}

func filterRecentTime(items []time.Time, cutoff time.Time) []time.Time {
	if len(items) == 0 {
		return items
	}
	out := items[:0]
	for _, item := range items {
		if item.After(cutoff) {
			out = append(out, item)
		}
	}
	return out
}
