// Package task defines the task documents owned by the task service.
package task

import "time"

// Status is the task workflow state. The graph is fully connected: any
// status may be replaced by any other in a single update.
type Status string

const (
	StatusTodo       Status = "TO_DO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task belongs to exactly one project. ProjectID is validated against the
// project service at creation time; AssignedTo is an unchecked user
// reference and may be empty.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	DueDate     time.Time `json:"dueDate"`
	ProjectID   string    `json:"projectId"`
	AssignedTo  string    `json:"assignedTo,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
