package domain

import "time"

// TaskStatus represents the lifecycle state of a background task.
type TaskStatus string

const (
	// TaskPending indicates the task is queued.
	TaskPending TaskStatus = "pending"
	// TaskRunning indicates the task is executing.
	TaskRunning TaskStatus = "running"
	// TaskCompleted indicates the task finished successfully.
	TaskCompleted TaskStatus = "completed"
	// TaskFailed indicates the task stopped with an error.
	TaskFailed TaskStatus = "failed"
)

// Done reports whether the status is terminal.
func (s TaskStatus) Done() bool {
	return s == TaskCompleted || s == TaskFailed
}

// Task is a snapshot of a background task such as an artwork warm-up.
type Task struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Status    TaskStatus `json:"status"`
	Progress  int        `json:"progress"`
	Total     int        `json:"total"`
	Message   string     `json:"message,omitempty"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	StartedAt time.Time  `json:"startedAt,omitzero"`
	EndedAt   time.Time  `json:"endedAt,omitzero"`
}
