package query

import (
	"taskflow/pkg/api"
)

// Cache holds the current page of tasks plus the aggregate counts from
// the last successful fetch. It is replaced wholesale on every fetch
// and patched in place after a successful complete or delete call;
// failed calls leave it untouched.
type Cache struct {
	items      []api.Task
	totalTasks int
	totalPages int
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{totalPages: 1}
}

// Replace installs a freshly fetched page.
func (c *Cache) Replace(page api.TaskPage) {
	c.items = page.Tasks
	c.totalTasks = page.TotalTasks
	c.totalPages = page.TotalPages
	if c.totalPages < 1 {
		c.totalPages = 1
	}
}

// MarkComplete swaps in the server-returned record for the matching
// item. The server copy is authoritative, not a local guess. Returns
// false when the item is not on this page.
func (c *Cache) MarkComplete(updated api.Task) bool {
	for i, item := range c.items {
		if item.ID == updated.ID {
			c.items[i] = updated
			return true
		}
	}
	return false
}

// Remove drops the item locally and decrements the total count,
// clamped at zero. totalPages is deliberately left stale; the next
// fetch reconciles it. Removing an unknown id is a no-op.
func (c *Cache) Remove(id string) bool {
	for i, item := range c.items {
		if item.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			if c.totalTasks > 0 {
				c.totalTasks--
			}
			return true
		}
	}
	return false
}

// Items returns the current page, in server order.
func (c *Cache) Items() []api.Task { return c.items }

// Task returns the item at index i on the current page.
func (c *Cache) Task(i int) (api.Task, bool) {
	if i < 0 || i >= len(c.items) {
		return api.Task{}, false
	}
	return c.items[i], true
}

func (c *Cache) Len() int        { return len(c.items) }
func (c *Cache) TotalTasks() int { return c.totalTasks }
func (c *Cache) TotalPages() int { return c.totalPages }
