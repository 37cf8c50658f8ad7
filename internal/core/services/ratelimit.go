package services

import (
	"context"
	"sync"
	"time"

	"github.com/lectern-ai/lectern/internal/core/domain"
	"github.com/lectern-ai/lectern/internal/logger"
)

// rateWindow tracks one user's request count inside the current window.
type rateWindow struct {
	count   int
	resetAt time.Time
}

// RateLimiter is a fixed-window per-user request counter. Windows reset
// atomically at the boundary, so bursts straddling a boundary can reach
// twice the configured rate. That is the intended contract, not a bug.
//
// State is in-memory and process-local; limits reset on restart.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*rateWindow

	window      time.Duration
	maxRequests int

	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	// now is swappable for tests.
	now func() time.Time
}

// RateLimiterStats is a snapshot of limiter state.
type RateLimiterStats struct {
	ActiveWindows int
	MaxRequests   int
	Window        time.Duration
}

// NewRateLimiter creates a limiter with the given settings.
func NewRateLimiter(cfg domain.RateLimitSettings) *RateLimiter {
	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 3
	}

	return &RateLimiter{
		windows:     make(map[string]*rateWindow),
		window:      window,
		maxRequests: maxRequests,
		now:         time.Now,
	}
}

// Allow reports whether the user may make a request now. The first call
// in a fresh window counts 1 and allows; calls within the window allow
// until the count exceeds maxRequests; a call after the window expiry
// starts a new window with count 1.
func (l *RateLimiter) Allow(userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[userID]
	if !ok || now.After(w.resetAt) {
		l.windows[userID] = &rateWindow{
			count:   1,
			resetAt: now.Add(l.window),
		}
		return true
	}

	w.count++
	if w.count > l.maxRequests {
		logger.Debug("ratelimit: denied %s (%d/%d in window)", userID, w.count, l.maxRequests)
		return false
	}
	return true
}

// RemainingSeconds returns how long until the user's window resets.
// Zero means no active window; the next request is allowed.
func (l *RateLimiter) RemainingSeconds(userID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[userID]
	if !ok {
		return 0
	}

	remaining := w.resetAt.Sub(l.now())
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Seconds() + 0.5)
}

// Reset clears the user's window. Administrative override.
func (l *RateLimiter) Reset(userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, userID)
}

// Sweep drops fully-expired windows and returns how many were removed.
func (l *RateLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for userID, w := range l.windows {
		if now.After(w.resetAt) {
			delete(l.windows, userID)
			removed++
		}
	}
	if removed > 0 {
		logger.Debug("ratelimit: swept %d expired windows", removed)
	}
	return removed
}

// Stats returns a snapshot of limiter state.
func (l *RateLimiter) Stats() RateLimiterStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	return RateLimiterStats{
		ActiveWindows: len(l.windows),
		MaxRequests:   l.maxRequests,
		Window:        l.window,
	}
}

// Clear removes all windows. Used on shutdown.
func (l *RateLimiter) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.windows = make(map[string]*rateWindow)
}

// Start runs the periodic expired-window sweep until Stop is called or
// the context is cancelled.
func (l *RateLimiter) Start(ctx context.Context) {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return
	}
	l.running = true
	l.stopCh = make(chan struct{})
	stopCh := l.stopCh
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		ticker := time.NewTicker(l.window)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-stopCh:
				return
			case <-ticker.C:
				l.Sweep()
			}
		}
	}()
}

// Stop shuts down the sweep loop and clears all windows.
func (l *RateLimiter) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	close(l.stopCh)
	l.mu.Unlock()

	l.wg.Wait()
	l.Clear()
}
