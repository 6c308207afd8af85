package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"taskflow/pkg/api"
	"taskflow/pkg/query"
	"taskflow/pkg/utils"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case sessionRestoredMsg:
		m.guard = EvaluateGuard(m.session)
		if m.guard == GuardAuthenticated {
			// An existing session skips the login screen, same as a
			// logged-in user landing on /login.
			m.screen = DashboardScreen
			return m, m.fetchStatsCmd()
		}
		m.screen = LoginScreen
		m.resetAuthInputs()
		return m, nil

	case authSuccessMsg:
		m.authBusy = false
		if err := m.session.Login(msg.resp.User, msg.resp.Token); err != nil {
			utils.Log("persisting session failed: %v", err)
		}
		m.guard = EvaluateGuard(m.session)
		if msg.registered {
			m.notice = "Registration successful"
		} else {
			m.notice = "Login successful"
		}
		m.errText = ""
		m.resetAuthInputs()
		m.screen = DashboardScreen
		return m, m.fetchStatsCmd()

	case tasksLoadedMsg:
		// A response for a superseded query is dropped whole; only the
		// fetch matching the current state may touch the cache.
		if !m.query.Accept(msg.gen) {
			utils.Log("dropping stale task page (gen %d)", msg.gen)
			return m, nil
		}
		m.loadingTasks = false
		m.cache.Replace(msg.page)
		if m.query.SetTotalPages(msg.page.TotalPages) {
			// The page was clamped (the list shrank); refetch at the
			// new position.
			return m, m.fetchTasksCmd()
		}
		m.syncTable()
		return m, nil

	case statsLoadedMsg:
		m.loadingStats = false
		stats := msg.stats
		m.stats = &stats
		if m.recentCursor >= len(stats.RecentTasks) {
			m.recentCursor = 0
		}
		return m, nil

	case taskLoadedMsg:
		if msg.forEdit {
			m.openTaskForm(EditForm, msg.task, m.screen)
			return m, nil
		}
		task := msg.task
		m.detail = &task
		m.detailGone = false
		return m, nil

	case taskSavedMsg:
		m.formBusy = false
		if msg.created {
			m.notice = "Task created"
		} else {
			m.notice = "Task updated"
		}
		if m.cameFrom == TaskDetailScreen && !msg.created {
			task := msg.task
			m.detail = &task
			m.screen = TaskDetailScreen
			return m, nil
		}
		m.screen = TasksScreen
		return m, m.fetchTasksCmd()

	case taskCompletedMsg:
		if msg.fromDetail {
			task := msg.task
			m.detail = &task
		} else {
			m.cache.MarkComplete(msg.task)
			m.syncTable()
		}
		m.notice = "Task marked as done"
		return m, nil

	case taskDeletedMsg:
		m.deleteTarget = nil
		m.notice = "Task deleted"
		if msg.fromDetail {
			// The record is gone; fall back to the list.
			m.detail = nil
			m.screen = TasksScreen
			return m, m.fetchTasksCmd()
		}
		m.screen = TasksScreen
		m.cache.Remove(msg.id)
		m.syncTable()
		if m.cache.Len() == 0 && m.query.Page() > 1 {
			// Deleted the last item of this page; step back and let
			// the fetch reconcile the page bound.
			m.query.PrevPage()
			return m, m.fetchTasksCmd()
		}
		return m, nil

	case errorMsg:
		if msg.gen >= 0 && !m.query.Accept(msg.gen) {
			return m, nil
		}
		m.authBusy = false
		m.formBusy = false
		m.loadingTasks = false
		m.loadingStats = false

		switch {
		case api.IsUnauthorized(msg.err) && m.screen != LoginScreen && m.screen != RegisterScreen:
			// The stored token is dead; there is no refresh flow, so
			// the only sane move is back to login.
			if err := m.session.Logout(); err != nil {
				utils.Log("logout after 401 failed: %v", err)
			}
			m.guard = EvaluateGuard(m.session)
			m.screen = LoginScreen
			m.resetAuthInputs()
			m.errText = "Session expired, please log in again"
		case api.IsNotFound(msg.err) && m.screen == TaskDetailScreen:
			m.detail = nil
			m.detailGone = true
		default:
			// The screen keeps its last-good data; only the footer
			// changes.
			m.errText = msg.err.Error()
		}
		utils.Log("api error: %v", msg.err)
		return m, nil

	case spinner.TickMsg:
		if m.busy() {
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(msg.Width - 4)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, tea.Batch(cmds...)
}

// busy reports whether any spinner-worthy operation is in flight.
func (m *Model) busy() bool {
	return m.loadingTasks || m.loadingStats || m.authBusy || m.formBusy
}

// handleKey routes key presses to the active screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The guard's pending state renders a neutral frame and accepts no
	// input beyond quitting.
	if m.guard == GuardChecking {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// A transient notice survives exactly one key press.
	m.notice = ""

	switch m.screen {
	case LoginScreen, RegisterScreen:
		return m.handleAuthKey(msg)
	case DashboardScreen:
		return m.handleDashboardKey(msg)
	case TasksScreen:
		return m.handleTasksKey(msg)
	case TaskDetailScreen:
		return m.handleDetailKey(msg)
	case TaskFormScreen:
		return m.handleFormKey(msg)
	case DeleteConfirmScreen:
		return m.handleDeleteConfirmKey(msg)
	}

	return m, nil
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "ctrl+r":
		// Toggle between login and register, like the links under the
		// forms.
		if m.screen == LoginScreen {
			m.screen = RegisterScreen
		} else {
			m.screen = LoginScreen
		}
		m.errText = ""
		m.resetAuthInputs()
		return m, nil

	case "tab":
		m.authActive = (m.authActive + 1) % len(m.authInputs())
		m.focusAuthInput()
		return m, nil

	case "shift+tab":
		inputs := m.authInputs()
		m.authActive = (m.authActive - 1 + len(inputs)) % len(inputs)
		m.focusAuthInput()
		return m, nil

	case "enter":
		if m.authActive < len(m.authInputs())-1 {
			m.authActive++
			m.focusAuthInput()
			return m, nil
		}
		return m.submitAuthForm()
	}

	inputs := m.authInputs()
	*inputs[m.authActive], cmd = inputs[m.authActive].Update(msg)
	return m, cmd
}

// submitAuthForm validates and, when clean, sends the credentials.
// Validation failures never reach the network.
func (m Model) submitAuthForm() (tea.Model, tea.Cmd) {
	if m.authBusy {
		return m, nil
	}

	if m.screen == RegisterScreen {
		name := m.nameInput.Value()
		email := m.emailInput.Value()
		password := m.passwordInput.Value()
		confirm := m.confirmInput.Value()

		m.authErrors = ValidateRegistration(name, email, password, confirm)
		if len(m.authErrors) > 0 {
			return m, nil
		}
		m.authBusy = true
		m.errText = ""
		return m, tea.Batch(m.registerCmd(name, email, password), m.spin.Tick)
	}

	email := m.emailInput.Value()
	password := m.passwordInput.Value()

	m.authErrors = ValidateLogin(email, password)
	if len(m.authErrors) > 0 {
		return m, nil
	}
	m.authBusy = true
	m.errText = ""
	return m, tea.Batch(m.loginCmd(email, password), m.spin.Tick)
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.QuitApp):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.ShowHelp):
		m.showCommands = !m.showCommands

	case key.Matches(msg, m.keyMap.OpenTasks):
		m.screen = TasksScreen
		return m, tea.Batch(m.fetchTasksCmd(), m.spin.Tick)

	case key.Matches(msg, m.keyMap.NewTask):
		m.openTaskForm(CreateForm, api.Task{}, DashboardScreen)

	case key.Matches(msg, m.keyMap.Refresh):
		return m, tea.Batch(m.fetchStatsCmd(), m.spin.Tick)

	case key.Matches(msg, m.keyMap.Logout):
		return m.logout()

	case key.Matches(msg, m.keyMap.OpenTask):
		if m.stats != nil && m.recentCursor < len(m.stats.RecentTasks) {
			task := m.stats.RecentTasks[m.recentCursor]
			m.detail = nil
			m.detailGone = false
			m.cameFrom = DashboardScreen
			m.screen = TaskDetailScreen
			return m, tea.Batch(m.fetchTaskCmd(task.ID, false), m.spin.Tick)
		}

	case msg.String() == "up", msg.String() == "k":
		if m.recentCursor > 0 {
			m.recentCursor--
		}

	case msg.String() == "down", msg.String() == "j":
		if m.stats != nil && m.recentCursor < len(m.stats.RecentTasks)-1 {
			m.recentCursor++
		}
	}

	return m, nil
}

func (m Model) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.searching {
		switch msg.String() {
		case "esc":
			// Abandon the search entirely.
			m.searching = false
			m.searchInput.Blur()
			m.searchInput.Reset()
			if m.query.SetSearch("") {
				return m, tea.Batch(m.fetchTasksCmd(), m.spin.Tick)
			}
			return m, nil

		case "enter":
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		}

		// Live search: every edit narrows the result set immediately,
		// so fast typing produces overlapping fetches. The generation
		// check on the way back keeps only the newest.
		m.searchInput, cmd = m.searchInput.Update(msg)
		if m.query.SetSearch(m.searchInput.Value()) {
			return m, tea.Batch(cmd, m.fetchTasksCmd(), m.spin.Tick)
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keyMap.QuitApp):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.ShowHelp):
		m.showCommands = !m.showCommands

	case key.Matches(msg, m.keyMap.SearchTasks), msg.String() == "/":
		m.searching = true
		m.searchInput.SetValue(m.query.Search())
		m.searchInput.CursorEnd()
		m.searchInput.Focus()
		return m, nil

	case key.Matches(msg, m.keyMap.ClearSearch):
		m.searchInput.Reset()
		if m.query.SetSearch("") {
			return m, tea.Batch(m.fetchTasksCmd(), m.spin.Tick)
		}

	case key.Matches(msg, m.keyMap.CycleFilter):
		next := nextFilter(m.query.Filter())
		if m.query.SetFilter(next) {
			return m, tea.Batch(m.fetchTasksCmd(), m.spin.Tick)
		}

	case key.Matches(msg, m.keyMap.NextPage):
		if m.query.NextPage() {
			return m, tea.Batch(m.fetchTasksCmd(), m.spin.Tick)
		}

	case key.Matches(msg, m.keyMap.PrevPage):
		if m.query.PrevPage() {
			return m, tea.Batch(m.fetchTasksCmd(), m.spin.Tick)
		}

	case key.Matches(msg, m.keyMap.Refresh):
		return m, tea.Batch(m.fetchTasksCmd(), m.spin.Tick)

	case key.Matches(msg, m.keyMap.OpenDashboard):
		m.screen = DashboardScreen
		return m, tea.Batch(m.fetchStatsCmd(), m.spin.Tick)

	case key.Matches(msg, m.keyMap.NewTask):
		m.openTaskForm(CreateForm, api.Task{}, TasksScreen)

	case key.Matches(msg, m.keyMap.EditTask):
		if task, ok := m.selectedTask(); ok {
			// Refetch before editing; the page copy may be behind.
			m.cameFrom = TasksScreen
			return m, tea.Batch(m.fetchTaskCmd(task.ID, true), m.spin.Tick)
		}

	case key.Matches(msg, m.keyMap.DeleteTask):
		if task, ok := m.selectedTask(); ok {
			target := task
			m.deleteTarget = &target
			m.cameFrom = TasksScreen
			m.screen = DeleteConfirmScreen
		}

	case key.Matches(msg, m.keyMap.CompleteTask):
		if task, ok := m.selectedTask(); ok && task.Status != api.StatusDone {
			return m, tea.Batch(m.completeTaskCmd(task.ID, false), m.spin.Tick)
		}

	case key.Matches(msg, m.keyMap.OpenTask):
		if task, ok := m.selectedTask(); ok {
			detail := task
			m.detail = &detail
			m.detailGone = false
			m.cameFrom = TasksScreen
			m.screen = TaskDetailScreen
			return m, nil
		}

	case key.Matches(msg, m.keyMap.Logout):
		return m.logout()
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc", msg.String() == "b":
		// Back to wherever the detail was opened from; the list keeps
		// its page.
		m.detail = nil
		m.detailGone = false
		if m.cameFrom == DashboardScreen {
			m.screen = DashboardScreen
			return m, tea.Batch(m.fetchStatsCmd(), m.spin.Tick)
		}
		m.screen = TasksScreen
		return m, tea.Batch(m.fetchTasksCmd(), m.spin.Tick)

	case key.Matches(msg, m.keyMap.QuitApp):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.CompleteTask):
		if m.detail != nil && m.detail.Status != api.StatusDone {
			return m, tea.Batch(m.completeTaskCmd(m.detail.ID, true), m.spin.Tick)
		}

	case key.Matches(msg, m.keyMap.EditTask):
		if m.detail != nil {
			m.openTaskForm(EditForm, *m.detail, TaskDetailScreen)
		}

	case key.Matches(msg, m.keyMap.DeleteTask):
		if m.detail != nil {
			m.deleteTarget = m.detail
			m.cameFrom = TaskDetailScreen
			m.screen = DeleteConfirmScreen
		}

	case key.Matches(msg, m.keyMap.Logout):
		return m.logout()
	}

	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	const fieldCount = 5 // title, description, due date, status, priority

	switch msg.String() {
	case "esc":
		m.screen = m.cameFrom
		return m, nil

	case "tab":
		m.formActive = (m.formActive + 1) % fieldCount
		m.focusFormInput()
		return m, nil

	case "shift+tab":
		m.formActive = (m.formActive - 1 + fieldCount) % fieldCount
		m.focusFormInput()
		return m, nil

	case "enter":
		if m.formActive < fieldCount-1 {
			m.formActive++
			m.focusFormInput()
			return m, nil
		}
		return m.submitTaskForm()

	case "left":
		switch m.formActive {
		case 3:
			m.statusIdx = (m.statusIdx - 1 + len(formStatuses)) % len(formStatuses)
			return m, nil
		case 4:
			m.priorityIdx = (m.priorityIdx - 1 + len(formPriorities)) % len(formPriorities)
			return m, nil
		}

	case "right":
		switch m.formActive {
		case 3:
			m.statusIdx = (m.statusIdx + 1) % len(formStatuses)
			return m, nil
		case 4:
			m.priorityIdx = (m.priorityIdx + 1) % len(formPriorities)
			return m, nil
		}
	}

	switch m.formActive {
	case 0:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case 1:
		m.descInput, cmd = m.descInput.Update(msg)
	case 2:
		m.dueDateInput, cmd = m.dueDateInput.Update(msg)
	}
	return m, cmd
}

// submitTaskForm validates the form and issues the create or update
// call. Field errors block submission without touching the network.
func (m Model) submitTaskForm() (tea.Model, tea.Cmd) {
	if m.formBusy {
		return m, nil
	}

	title := m.titleInput.Value()
	dueDate := m.dueDateInput.Value()

	m.formErrors = ValidateTaskForm(title, dueDate, time.Now())
	if len(m.formErrors) > 0 {
		return m, nil
	}

	input := api.TaskInput{
		Title:       title,
		Description: m.descInput.Value(),
		DueDate:     dueDate,
		Status:      formStatuses[m.statusIdx],
		Priority:    formPriorities[m.priorityIdx],
	}

	m.formBusy = true
	if m.formMode == EditForm {
		return m, tea.Batch(m.updateTaskCmd(m.editingID, input), m.spin.Tick)
	}
	return m, tea.Batch(m.createTaskCmd(input), m.spin.Tick)
}

func (m Model) handleDeleteConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if m.deleteTarget != nil {
			fromDetail := m.cameFrom == TaskDetailScreen
			return m, tea.Batch(m.deleteTaskCmd(m.deleteTarget.ID, fromDetail), m.spin.Tick)
		}
		m.screen = m.cameFrom

	case "n", "N", "esc":
		m.deleteTarget = nil
		m.screen = m.cameFrom
	}

	return m, nil
}

// logout clears the session and sends the UI back to the login screen;
// the guard re-evaluates immediately.
func (m Model) logout() (tea.Model, tea.Cmd) {
	if err := m.session.Logout(); err != nil {
		utils.Log("logout failed: %v", err)
	}
	m.guard = EvaluateGuard(m.session)
	m.screen = LoginScreen
	m.errText = ""
	m.notice = "Logged out"
	m.stats = nil
	m.detail = nil
	m.resetAuthInputs()
	return m, nil
}

// nextFilter cycles All -> Pending -> Completed -> Overdue -> All.
func nextFilter(f query.Filter) query.Filter {
	for i, v := range query.Filters {
		if v == f {
			return query.Filters[(i+1)%len(query.Filters)]
		}
	}
	return query.FilterAll
}
