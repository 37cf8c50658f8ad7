package domain

import "time"

// Task is an in-flight AI operation held by a user. At most one Task
// exists in the registry at any time (system-wide single-flight), and
// at most one per user.
//
// Tasks live in memory for the process lifetime: created on acquire,
// destroyed on release, or reclaimed by the stale-task sweep.
type Task struct {
	// UserID identifies the holder.
	UserID string

	// Username is the holder's display name, used in busy messages.
	Username string

	// Command is the command that started the task.
	Command string

	// StartedAt is when the task was acquired.
	StartedAt time.Time

	// ChannelID is where the request originated.
	ChannelID string
}

// Age returns how long the task has been running.
func (t Task) Age(now time.Time) time.Duration {
	return now.Sub(t.StartedAt)
}
