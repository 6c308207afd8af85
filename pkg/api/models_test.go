package api

import (
	"testing"
	"time"
)

func TestTaskOverdue(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{
			name: "due yesterday",
			task: Task{Status: StatusTodo, DueDate: time.Date(2026, time.March, 14, 23, 59, 0, 0, time.UTC)},
			want: true,
		},
		{
			name: "due earlier today is not overdue",
			task: Task{Status: StatusTodo, DueDate: time.Date(2026, time.March, 15, 1, 0, 0, 0, time.UTC)},
			want: false,
		},
		{
			name: "due tomorrow",
			task: Task{Status: StatusInProgress, DueDate: time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC)},
			want: false,
		},
		{
			name: "done tasks are never overdue",
			task: Task{Status: StatusDone, DueDate: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)},
			want: false,
		},
		{
			name: "no due date",
			task: Task{Status: StatusTodo},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.Overdue(now); got != tt.want {
				t.Errorf("Overdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaskDisplayStatus(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)
	future := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	past := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task Task
		want string
	}{
		{"todo", Task{Status: StatusTodo, DueDate: future}, "Todo"},
		{"in progress", Task{Status: StatusInProgress, DueDate: future}, "In Progress"},
		{"done", Task{Status: StatusDone, DueDate: past}, "Done"},
		{"overdue wins over todo", Task{Status: StatusTodo, DueDate: past}, "Overdue"},
		{"overdue wins over in progress", Task{Status: StatusInProgress, DueDate: past}, "Overdue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.DisplayStatus(now); got != tt.want {
				t.Errorf("DisplayStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}
