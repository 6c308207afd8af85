package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"taskflow/pkg/api"
	"taskflow/pkg/session"
)

// sessionRestoredMsg signals that the session store finished its
// startup check.
type sessionRestoredMsg struct{}

// authSuccessMsg carries a fresh session from login or registration.
type authSuccessMsg struct {
	resp       api.AuthResponse
	registered bool
}

// tasksLoadedMsg carries one fetched page plus the query generation
// that issued the request; stale generations are discarded.
type tasksLoadedMsg struct {
	gen  int
	page api.TaskPage
}

type statsLoadedMsg struct {
	stats api.DashboardStats
}

// taskLoadedMsg carries a single fetched task, either for the detail
// screen or to prefill the edit form.
type taskLoadedMsg struct {
	task    api.Task
	forEdit bool
}

type taskSavedMsg struct {
	task    api.Task
	created bool
}

type taskCompletedMsg struct {
	task       api.Task
	fromDetail bool
}

type taskDeletedMsg struct {
	id         string
	fromDetail bool
}

// errorMsg is any failed API call. gen is the query generation for
// list fetches, or -1 for everything else.
type errorMsg struct {
	err error
	gen int
}

// initSessionCmd runs the synchronous session restore off the event
// loop so the first frame can paint.
func initSessionCmd(s *session.Store) tea.Cmd {
	return func() tea.Msg {
		s.Initialize()
		return sessionRestoredMsg{}
	}
}

func (m *Model) loginCmd(email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		resp, err := client.Login(context.Background(), email, password)
		if err != nil {
			return errorMsg{err: err, gen: -1}
		}
		return authSuccessMsg{resp: resp}
	}
}

func (m *Model) registerCmd(name, email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		resp, err := client.Register(context.Background(), name, email, password)
		if err != nil {
			return errorMsg{err: err, gen: -1}
		}
		return authSuccessMsg{resp: resp, registered: true}
	}
}

// fetchTasksCmd snapshots the current query state and issues a list
// fetch. The previous in-flight fetch, if any, is cancelled outright:
// its response could only ever be stale.
func (m *Model) fetchTasksCmd() tea.Cmd {
	if m.cancelFetch != nil {
		m.cancelFetch()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelFetch = cancel

	gen := m.query.Generation()
	params := m.query.Params()
	client := m.client
	m.loadingTasks = true

	return func() tea.Msg {
		page, err := client.ListTasks(ctx, params)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return errorMsg{err: err, gen: gen}
		}
		return tasksLoadedMsg{gen: gen, page: page}
	}
}

func (m *Model) fetchStatsCmd() tea.Cmd {
	client := m.client
	m.loadingStats = true
	return func() tea.Msg {
		stats, err := client.DashboardStats(context.Background())
		if err != nil {
			return errorMsg{err: err, gen: -1}
		}
		return statsLoadedMsg{stats: stats}
	}
}

func (m *Model) fetchTaskCmd(id string, forEdit bool) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		task, err := client.GetTask(context.Background(), id)
		if err != nil {
			return errorMsg{err: err, gen: -1}
		}
		return taskLoadedMsg{task: task, forEdit: forEdit}
	}
}

func (m *Model) createTaskCmd(input api.TaskInput) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		task, err := client.CreateTask(context.Background(), input)
		if err != nil {
			return errorMsg{err: err, gen: -1}
		}
		return taskSavedMsg{task: task, created: true}
	}
}

func (m *Model) updateTaskCmd(id string, input api.TaskInput) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		task, err := client.UpdateTask(context.Background(), id, input)
		if err != nil {
			return errorMsg{err: err, gen: -1}
		}
		return taskSavedMsg{task: task}
	}
}

// completeTaskCmd awaits the server before the cache is touched; the
// handler applies the returned record, never a local guess.
func (m *Model) completeTaskCmd(id string, fromDetail bool) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		task, err := client.MarkDone(context.Background(), id)
		if err != nil {
			return errorMsg{err: err, gen: -1}
		}
		return taskCompletedMsg{task: task, fromDetail: fromDetail}
	}
}

func (m *Model) deleteTaskCmd(id string, fromDetail bool) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if err := client.DeleteTask(context.Background(), id); err != nil {
			return errorMsg{err: err, gen: -1}
		}
		return taskDeletedMsg{id: id, fromDetail: fromDetail}
	}
}
