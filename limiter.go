package mintpaper

import (
	"sync"
	"time"
)

// LoginLimiter rate-limits failed login attempts per IP address over a
// sliding window. Expired entries are pruned while the limiter is used, so
// it owns no goroutine and needs no shutdown.
type LoginLimiter struct {
	mu        sync.Mutex
	failures  map[string][]time.Time
	max       int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewLoginLimiter creates a LoginLimiter that blocks an IP once it has
// max failed attempts inside window.
func NewLoginLimiter(max int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		failures: make(map[string][]time.Time),
		max:      max,
		window:   window,
		now:      time.Now,
	}
}

// Check reports whether ip may attempt another login. It does not count as
// an attempt; call Record when the login fails.
func (l *LoginLimiter) Check(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)
	return len(l.recent(ip, now)) < l.max
}

// Record registers a failed login attempt for ip.
func (l *LoginLimiter) Record(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)
	l.failures[ip] = append(l.recent(ip, now), now)
}

// recent drops the expired failures of ip and returns the rest. An IP
// with nothing left is removed from the map.
func (l *LoginLimiter) recent(ip string, now time.Time) []time.Time {
	hits, ok := l.failures[ip]
	if !ok {
		return nil
	}
	cutoff := now.Add(-l.window)
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(l.failures, ip)
		return nil
	}
	l.failures[ip] = kept
	return kept
}

// sweep prunes every IP at most once per window so addresses that never
// come back do not accumulate.
func (l *LoginLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	for ip := range l.failures {
		l.recent(ip, now)
	}
}
