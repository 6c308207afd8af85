package api

import (
	"time"
)

// Status is a task's workflow state as stored by the server.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Priority is a task's importance level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task is one task record as returned by the server.
type Task struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	DueDate     time.Time `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Overdue reports whether the task's due date has passed relative to
// now, comparing dates only. Done tasks are never overdue.
func (t Task) Overdue(now time.Time) bool {
	if t.Status == StatusDone || t.DueDate.IsZero() {
		return false
	}
	due := time.Date(t.DueDate.Year(), t.DueDate.Month(), t.DueDate.Day(), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return due.Before(today)
}

// DisplayStatus is the label shown for a task, folding in the derived
// overdue state.
func (t Task) DisplayStatus(now time.Time) string {
	if t.Overdue(now) {
		return "Overdue"
	}
	switch t.Status {
	case StatusTodo:
		return "Todo"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	}
	return string(t.Status)
}

// TaskInput is the payload for creating or updating a task. DueDate is
// a calendar date in YYYY-MM-DD form; the server owns the timestamp.
type TaskInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"dueDate"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
}

// TaskPage is one page of the task list plus its aggregate counts.
type TaskPage struct {
	Tasks      []Task `json:"tasks"`
	TotalPages int    `json:"totalPages"`
	TotalTasks int    `json:"totalTasks"`
}

// DashboardStats is the dashboard summary.
type DashboardStats struct {
	TotalTasks     int    `json:"totalTasks"`
	PendingTasks   int    `json:"pendingTasks"`
	CompletedTasks int    `json:"completedTasks"`
	RecentTasks    []Task `json:"recentTasks"`
}

// User is the authenticated account's profile.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse is the result of a successful login or registration.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
