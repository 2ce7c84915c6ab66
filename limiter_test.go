package mintpaper

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(max int, window time.Duration) (*LoginLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	l := NewLoginLimiter(max, window)
	l.now = clock.now
	return l, clock
}

func TestLoginLimiterBlocksAfterMax(t *testing.T) {
	limiter, _ := newTestLimiter(2, time.Minute)
	ip := "203.0.113.10"

	assert.True(t, limiter.Check(ip))
	limiter.Record(ip)
	assert.True(t, limiter.Check(ip))
	limiter.Record(ip)
	assert.False(t, limiter.Check(ip), "blocked after two failures")
}

func TestLoginLimiterResetsAfterWindow(t *testing.T) {
	limiter, clock := newTestLimiter(1, time.Minute)
	ip := "203.0.113.20"

	limiter.Record(ip)
	assert.False(t, limiter.Check(ip))

	clock.advance(30 * time.Second)
	assert.False(t, limiter.Check(ip), "still inside the window")

	clock.advance(31 * time.Second)
	assert.True(t, limiter.Check(ip), "attempt after window")
}

func TestLoginLimiterIsPerIP(t *testing.T) {
	limiter, _ := newTestLimiter(1, time.Minute)

	limiter.Record("203.0.113.30")
	assert.True(t, limiter.Check("203.0.113.31"), "second ip is independent")
	assert.False(t, limiter.Check("203.0.113.30"))
}

func TestLoginLimiterCheckDoesNotRecord(t *testing.T) {
	limiter, _ := newTestLimiter(1, time.Minute)
	ip := "203.0.113.40"

	assert.True(t, limiter.Check(ip))
	assert.True(t, limiter.Check(ip))

	limiter.Record(ip)
	assert.False(t, limiter.Check(ip))
}

func TestLoginLimiterPrunesStaleAddresses(t *testing.T) {
	limiter, clock := newTestLimiter(3, time.Minute)

	limiter.Record("198.51.100.1")
	limiter.Record("198.51.100.2")
	assert.Len(t, limiter.failures, 2)

	clock.advance(2 * time.Minute)
	assert.True(t, limiter.Check("198.51.100.3"))
	assert.Empty(t, limiter.failures, "expired addresses are dropped on the next sweep")
}

func TestLoginLimiterStartsNoGoroutines(t *testing.T) {
	before := runtime.NumGoroutine()
	limiters := make([]*LoginLimiter, 50)
	for i := range limiters {
		limiters[i] = NewLoginLimiter(5, time.Hour)
	}
	assert.LessOrEqual(t, runtime.NumGoroutine(), before)
	runtime.KeepAlive(limiters)
}
