package query

import (
	"testing"

	"taskflow/pkg/api"
)

func samplePage() api.TaskPage {
	return api.TaskPage{
		Tasks: []api.Task{
			{ID: "a1", Title: "Write report", Status: api.StatusTodo},
			{ID: "b2", Title: "Review PR", Status: api.StatusInProgress},
			{ID: "c3", Title: "Ship release", Status: api.StatusTodo},
		},
		TotalPages: 4,
		TotalTasks: 30,
	}
}

func TestCacheReplace(t *testing.T) {
	c := NewCache()
	c.Replace(samplePage())

	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
	if c.TotalTasks() != 30 {
		t.Errorf("TotalTasks() = %d, want 30", c.TotalTasks())
	}
	if c.TotalPages() != 4 {
		t.Errorf("TotalPages() = %d, want 4", c.TotalPages())
	}

	// An empty result still reports one page.
	c.Replace(api.TaskPage{})
	if c.TotalPages() != 1 {
		t.Errorf("TotalPages() after empty replace = %d, want 1", c.TotalPages())
	}
}

func TestCacheMarkComplete(t *testing.T) {
	c := NewCache()
	c.Replace(samplePage())

	updated := api.Task{ID: "b2", Title: "Review PR", Status: api.StatusDone}
	if !c.MarkComplete(updated) {
		t.Fatal("MarkComplete() = false for item on page, want true")
	}

	got, ok := c.Task(1)
	if !ok {
		t.Fatal("Task(1) missing after MarkComplete")
	}
	if got.Status != api.StatusDone {
		t.Errorf("Status = %q, want %q", got.Status, api.StatusDone)
	}

	if c.MarkComplete(api.Task{ID: "zz", Status: api.StatusDone}) {
		t.Error("MarkComplete() = true for item not on page, want false")
	}
}

func TestCacheRemove(t *testing.T) {
	c := NewCache()
	c.Replace(samplePage())

	if !c.Remove("b2") {
		t.Fatal("Remove() = false for item on page, want true")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if c.TotalTasks() != 29 {
		t.Errorf("TotalTasks() = %d, want 29", c.TotalTasks())
	}
	// totalPages stays stale until the next fetch.
	if c.TotalPages() != 4 {
		t.Errorf("TotalPages() = %d, want 4", c.TotalPages())
	}

	if c.Remove("b2") {
		t.Error("Remove() = true for already removed id, want false")
	}
}

func TestCacheRemoveClampsTotal(t *testing.T) {
	c := NewCache()
	c.Replace(api.TaskPage{
		Tasks:      []api.Task{{ID: "a1", Title: "Only task"}},
		TotalPages: 1,
		TotalTasks: 0, // inconsistent server response
	})

	c.Remove("a1")
	if c.TotalTasks() != 0 {
		t.Errorf("TotalTasks() = %d, want 0", c.TotalTasks())
	}
}

func TestCacheTaskBounds(t *testing.T) {
	c := NewCache()
	c.Replace(samplePage())

	if _, ok := c.Task(-1); ok {
		t.Error("Task(-1) = ok, want not ok")
	}
	if _, ok := c.Task(3); ok {
		t.Error("Task(3) = ok, want not ok")
	}
	if got, ok := c.Task(0); !ok || got.ID != "a1" {
		t.Errorf("Task(0) = %v, %v, want ID a1", got, ok)
	}
}
