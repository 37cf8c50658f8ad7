package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectern-ai/lectern/internal/core/domain"
)

func newTestLimiter(maxRequests int, window time.Duration) (*RateLimiter, *time.Time) {
	l := NewRateLimiter(domain.RateLimitSettings{
		Window:      window,
		MaxRequests: maxRequests,
	})
	now := time.Now()
	l.now = func() time.Time { return now }
	return l, &now
}

func TestRateLimiter_AllowsExactlyMaxRequests(t *testing.T) {
	l, _ := newTestLimiter(3, time.Minute)

	got := []bool{
		l.Allow("u1"),
		l.Allow("u1"),
		l.Allow("u1"),
		l.Allow("u1"),
	}
	assert.Equal(t, []bool{true, true, true, false}, got)

	// Still denied within the same window.
	assert.False(t, l.Allow("u1"))
}

func TestRateLimiter_WindowExpiryResetsToOne(t *testing.T) {
	l, now := newTestLimiter(3, time.Minute)

	for i := 0; i < 4; i++ {
		l.Allow("u1")
	}

	*now = now.Add(time.Minute + time.Second)

	// Fresh window: counter restarts at 1, so three more calls pass.
	assert.True(t, l.Allow("u1"))
	assert.True(t, l.Allow("u1"))
	assert.True(t, l.Allow("u1"))
	assert.False(t, l.Allow("u1"))
}

func TestRateLimiter_UsersAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	assert.True(t, l.Allow("u1"))
	assert.False(t, l.Allow("u1"))
	assert.True(t, l.Allow("u2"))
}

func TestRateLimiter_RemainingSeconds(t *testing.T) {
	l, now := newTestLimiter(3, time.Minute)

	assert.Zero(t, l.RemainingSeconds("u1"))

	l.Allow("u1")
	assert.Equal(t, 60, l.RemainingSeconds("u1"))

	*now = now.Add(30 * time.Second)
	assert.Equal(t, 30, l.RemainingSeconds("u1"))

	*now = now.Add(31 * time.Second)
	assert.Zero(t, l.RemainingSeconds("u1"))
}

func TestRateLimiter_Reset(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	require.True(t, l.Allow("u1"))
	require.False(t, l.Allow("u1"))

	l.Reset("u1")
	assert.True(t, l.Allow("u1"))
}

func TestRateLimiter_SweepDropsExpiredWindows(t *testing.T) {
	l, now := newTestLimiter(3, time.Minute)

	l.Allow("u1")
	l.Allow("u2")
	assert.Equal(t, 2, l.Stats().ActiveWindows)

	// Nothing expired yet.
	assert.Zero(t, l.Sweep())

	*now = now.Add(time.Minute + time.Second)
	l.Allow("u3")

	assert.Equal(t, 2, l.Sweep())
	assert.Equal(t, 1, l.Stats().ActiveWindows)
}

func TestRateLimiter_Stats(t *testing.T) {
	l, _ := newTestLimiter(3, time.Minute)

	stats := l.Stats()
	assert.Equal(t, 3, stats.MaxRequests)
	assert.Equal(t, time.Minute, stats.Window)
	assert.Zero(t, stats.ActiveWindows)
}

func TestNewRateLimiter_Defaults(t *testing.T) {
	l := NewRateLimiter(domain.RateLimitSettings{})
	stats := l.Stats()
	assert.Equal(t, 3, stats.MaxRequests)
	assert.Equal(t, time.Minute, stats.Window)
}
