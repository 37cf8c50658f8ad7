package services

import (
	"context"
	"sync"
	"time"

	"github.com/lectern-ai/lectern/internal/core/domain"
	"github.com/lectern-ai/lectern/internal/logger"
)

// TaskRegistry enforces single-flight for expensive AI operations: at
// most one task exists in the registry at any time, and therefore at
// most one per user. State is in-memory and resets on restart.
type TaskRegistry struct {
	mu    sync.Mutex
	tasks map[string]domain.Task

	maxAge        time.Duration
	sweepInterval time.Duration

	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	// now is swappable for tests.
	now func() time.Time
}

// NewTaskRegistry creates a registry with the given sweep settings.
func NewTaskRegistry(cfg domain.TaskSettings) *TaskRegistry {
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = 5 * time.Minute
	}
	interval := cfg.SweepInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &TaskRegistry{
		tasks:         make(map[string]domain.Task),
		maxAge:        maxAge,
		sweepInterval: interval,
		now:           time.Now,
	}
}

// TryAcquire attempts to claim the AI slot for a user. It fails if the
// user already holds a task, or if any other user does. On failure the
// returned task identifies the current holder and registry state is
// unchanged.
func (r *TaskRegistry) TryAcquire(userID, username, command, channelID string) (bool, domain.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.tasks[userID]; ok {
		logger.Debug("gate: user %s already has task %s in flight", userID, existing.Command)
		return false, existing
	}

	// Any other holder blocks the whole system.
	for _, existing := range r.tasks {
		logger.Debug("gate: slot held by %s (%s)", existing.Username, existing.Command)
		return false, existing
	}

	task := domain.Task{
		UserID:    userID,
		Username:  username,
		Command:   command,
		StartedAt: r.now(),
		ChannelID: channelID,
	}
	r.tasks[userID] = task

	logger.Debug("gate: acquired for %s (%s)", username, command)
	return true, task
}

// Release frees the slot held by a user. A no-op if the user holds
// nothing, so callers release unconditionally after any gated operation.
func (r *TaskRegistry) Release(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task, ok := r.tasks[userID]; ok {
		delete(r.tasks, userID)
		logger.Debug("gate: released by %s after %s", task.Username, task.Age(r.now()).Round(time.Millisecond))
	}
}

// Holder returns the current task, if any.
func (r *TaskRegistry) Holder() (domain.Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, task := range r.tasks {
		return task, true
	}
	return domain.Task{}, false
}

// Active returns the number of tasks currently held.
func (r *TaskRegistry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

// Sweep reclaims tasks older than maxAge and returns them. An abandoned
// slot must not block the system forever; the original call may still
// be outstanding when the slot is reclaimed.
func (r *TaskRegistry) Sweep(maxAge time.Duration) []domain.Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	var reclaimed []domain.Task
	for userID, task := range r.tasks {
		if task.Age(now) > maxAge {
			delete(r.tasks, userID)
			reclaimed = append(reclaimed, task)
			logger.Warn("gate: reclaimed stale task from %s (%s, age %s)",
				task.Username, task.Command, task.Age(now).Round(time.Second))
		}
	}
	return reclaimed
}

// Clear removes all tasks. Used on shutdown.
func (r *TaskRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = make(map[string]domain.Task)
}

// Start runs the periodic stale-task sweep until Stop is called or the
// context is cancelled.
func (r *TaskRegistry) Start(ctx context.Context) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.stopCh = make(chan struct{})
	stopCh := r.stopCh
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(r.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-stopCh:
				return
			case <-ticker.C:
				r.Sweep(r.maxAge)
			}
		}
	}()
}

// Stop shuts down the sweep loop and clears all tasks.
func (r *TaskRegistry) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stopCh)
	r.mu.Unlock()

	r.wg.Wait()
	r.Clear()
}
