package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"taskflow/pkg/api"
	"taskflow/pkg/query"
)

// View renders the UI based on the current screen
func (m Model) View() string {
	// While the session restore runs, render nothing decisive: no
	// content, no login form.
	if m.guard == GuardChecking {
		return m.centered("Loading...")
	}

	// The guard wins over whatever screen was active: a protected
	// screen without a session renders the login form.
	screen := m.screen
	if m.guard == GuardUnauthenticated && protectedScreen(screen) {
		screen = LoginScreen
	}

	var body string
	switch screen {
	case LoginScreen:
		body = m.viewLogin()
	case RegisterScreen:
		body = m.viewRegister()
	case DashboardScreen:
		body = m.viewDashboard()
	case TasksScreen:
		body = m.viewTasks()
	case TaskDetailScreen:
		body = m.viewDetail()
	case TaskFormScreen:
		body = m.viewTaskForm()
	case DeleteConfirmScreen:
		body = m.viewDeleteConfirm()
	}

	return body + m.viewFooter()
}

func (m Model) titleBar(text string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
		Background(lipgloss.Color(m.styles.AccentColor)).
		Padding(0, 1).
		Render(" "+text+" ") + "\n\n"
}

func (m Model) centered(text string) string {
	if m.width == 0 || m.height == 0 {
		return text
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, text)
}

func (m Model) fieldError(field string, errs map[string]string) string {
	if msg, ok := errs[field]; ok && msg != "" {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.ErrorColor)).
			Render(msg) + "\n"
	}
	return ""
}

func (m Model) formBox(content string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.styles.BorderColor)).
		Padding(1, 2).
		Render(content)
}

func (m Model) viewLogin() string {
	var sb strings.Builder

	sb.WriteString(m.titleBar("TaskFlow - Login"))

	var form strings.Builder
	form.WriteString("Email:\n")
	form.WriteString(m.emailInput.View())
	form.WriteString("\n")
	form.WriteString(m.fieldError("email", m.authErrors))
	form.WriteString("\n")
	form.WriteString("Password:\n")
	form.WriteString(m.passwordInput.View())
	form.WriteString("\n")
	form.WriteString(m.fieldError("password", m.authErrors))

	sb.WriteString(m.formBox(form.String()))
	sb.WriteString("\n\n")
	sb.WriteString(m.statusBarStyle().Render("Tab: next field • Enter: log in • Ctrl+R: register instead • Ctrl+C: quit"))

	return sb.String()
}

func (m Model) viewRegister() string {
	var sb strings.Builder

	sb.WriteString(m.titleBar("TaskFlow - Create your account"))

	var form strings.Builder
	form.WriteString("Name:\n")
	form.WriteString(m.nameInput.View())
	form.WriteString("\n")
	form.WriteString(m.fieldError("name", m.authErrors))
	form.WriteString("\n")
	form.WriteString("Email:\n")
	form.WriteString(m.emailInput.View())
	form.WriteString("\n")
	form.WriteString(m.fieldError("email", m.authErrors))
	form.WriteString("\n")
	form.WriteString("Password:\n")
	form.WriteString(m.passwordInput.View())
	form.WriteString("\n")
	form.WriteString(m.fieldError("password", m.authErrors))
	form.WriteString("\n")
	form.WriteString("Confirm Password:\n")
	form.WriteString(m.confirmInput.View())
	form.WriteString("\n")
	form.WriteString(m.fieldError("confirmPassword", m.authErrors))

	sb.WriteString(m.formBox(form.String()))
	sb.WriteString("\n\n")
	sb.WriteString(m.statusBarStyle().Render("Tab: next field • Enter: register • Ctrl+R: back to login • Ctrl+C: quit"))

	return sb.String()
}

func (m Model) viewDashboard() string {
	var sb strings.Builder

	user := m.session.User()
	sb.WriteString(m.titleBar("TaskFlow - Dashboard"))
	sb.WriteString(fmt.Sprintf("Welcome, %s\n\n", user.Name))

	if m.loadingStats {
		sb.WriteString(m.spin.View() + " Loading overview...\n")
		return sb.String()
	}

	if m.stats == nil {
		sb.WriteString("No overview available.\n")
		return sb.String()
	}

	sb.WriteString(m.statCards())
	sb.WriteString("\n\n")

	if len(m.stats.RecentTasks) == 0 {
		sb.WriteString("You don't have any tasks yet.\n")
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.MutedTextColor)).
			Render("Press n to create your first task.") + "\n")
		return sb.String()
	}

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Recent Tasks"))
	sb.WriteString("\n")
	for i, task := range m.stats.RecentTasks {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.recentCursor {
			cursor = "> "
			style = style.
				Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
				Background(lipgloss.Color(m.styles.SelectedBgColor)).
				Bold(true)
		}
		state := "Pending"
		if task.Status == api.StatusDone {
			state = "Completed"
		}
		sb.WriteString(cursor + style.Render(fmt.Sprintf("%-40s %s", truncate(task.Title, 40), state)) + "\n")
	}

	return sb.String()
}

// statCards renders the three dashboard counters side by side.
func (m Model) statCards() string {
	card := func(label string, value int, color string) string {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(color)).
			Padding(0, 2).
			Render(fmt.Sprintf("%s\n%d", label, value))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Tasks", m.stats.TotalTasks, m.styles.AccentColor),
		" ",
		card("Pending", m.stats.PendingTasks, m.styles.InProgressColor),
		" ",
		card("Completed", m.stats.CompletedTasks, m.styles.DoneColor),
	)
}

func (m Model) viewTasks() string {
	var sb strings.Builder

	sb.WriteString(m.titleBar("TaskFlow - My Tasks"))

	if m.searching {
		sb.WriteString("Search: " + m.searchInput.View() + "\n\n")
	}

	if m.loadingTasks {
		sb.WriteString(m.spin.View() + " Loading tasks...\n")
		return sb.String()
	}

	if m.cache.Len() == 0 {
		// No tasks at all reads differently from filters matching
		// nothing.
		if m.cache.TotalTasks() == 0 && m.query.Search() == "" && m.query.Filter() == query.FilterAll {
			sb.WriteString("No tasks yet.\n")
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.styles.MutedTextColor)).
				Render("Start by creating your first task to organize your work.") + "\n")
		} else {
			sb.WriteString("No matching tasks.\n")
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.styles.MutedTextColor)).
				Render("Try changing filters or search keywords.") + "\n")
		}
	} else {
		sb.WriteString(m.table.View())
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Page %d of %d  %s  (%d tasks)",
			m.query.Page(), m.query.TotalPages(), m.pager.View(), m.cache.TotalTasks()))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.viewQueryStatus())

	return sb.String()
}

// viewQueryStatus shows the active filter and search plus the
// shareable view string the -view flag accepts.
func (m Model) viewQueryStatus() string {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.MutedTextColor))

	parts := []string{fmt.Sprintf("filter: %s", m.query.Filter())}
	if m.query.Search() != "" {
		parts = append(parts, fmt.Sprintf("search: %q", m.query.Search()))
	}
	line := muted.Render(strings.Join(parts, " | "))

	if encoded := m.query.Values().Encode(); encoded != "" {
		line += "\n" + muted.Render("view: "+encoded)
	}
	return line + "\n"
}

func (m Model) viewDetail() string {
	var sb strings.Builder

	sb.WriteString(m.titleBar("TaskFlow - Task Details"))

	if m.detailGone {
		sb.WriteString("This task no longer exists.\n")
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.MutedTextColor)).
			Render("Press esc to go back.") + "\n")
		return sb.String()
	}

	if m.detail == nil {
		sb.WriteString(m.spin.View() + " Loading task...\n")
		return sb.String()
	}

	task := *m.detail
	now := time.Now()

	badge := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.statusColor(task, now))).
		Bold(true).
		Render(task.DisplayStatus(now))

	var body strings.Builder
	body.WriteString(lipgloss.NewStyle().Bold(true).Render(task.Title))
	body.WriteString("  " + badge + "\n\n")
	if task.Description != "" {
		body.WriteString(task.Description + "\n\n")
	}
	body.WriteString(fmt.Sprintf("Priority: %s\n", task.Priority))
	if !task.DueDate.IsZero() {
		body.WriteString(fmt.Sprintf("Due:      %s\n", task.DueDate.Format("02 Jan 2006")))
	}
	if !task.CreatedAt.IsZero() {
		body.WriteString(fmt.Sprintf("Created:  %s\n", task.CreatedAt.Format("02 Jan 2006")))
	}

	sb.WriteString(m.formBox(body.String()))
	sb.WriteString("\n\n")
	sb.WriteString(m.statusBarStyle().Render("c: complete • e: edit • d: delete • esc: back"))

	return sb.String()
}

func (m Model) statusColor(task api.Task, now time.Time) string {
	if task.Overdue(now) {
		return m.styles.OverdueColor
	}
	switch task.Status {
	case api.StatusDone:
		return m.styles.DoneColor
	case api.StatusInProgress:
		return m.styles.InProgressColor
	}
	return m.styles.TodoColor
}

func (m Model) viewTaskForm() string {
	var sb strings.Builder

	if m.formMode == EditForm {
		sb.WriteString(m.titleBar("TaskFlow - Edit Task"))
	} else {
		sb.WriteString(m.titleBar("TaskFlow - Create Task"))
	}

	selector := func(active bool, value string) string {
		style := lipgloss.NewStyle()
		if active {
			style = style.
				Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
				Background(lipgloss.Color(m.styles.SelectedBgColor)).
				Bold(true)
			return style.Render("< " + value + " >")
		}
		return style.Render("  " + value)
	}

	var form strings.Builder
	form.WriteString("Title:\n")
	form.WriteString(m.titleInput.View())
	form.WriteString("\n")
	form.WriteString(m.fieldError("title", m.formErrors))
	form.WriteString("\n")
	form.WriteString("Description:\n")
	form.WriteString(m.descInput.View())
	form.WriteString("\n\n")
	form.WriteString("Due Date (YYYY-MM-DD):\n")
	form.WriteString(m.dueDateInput.View())
	form.WriteString("\n")
	form.WriteString(m.fieldError("dueDate", m.formErrors))
	form.WriteString("\n")
	form.WriteString("Status:   " + selector(m.formActive == 3, string(formStatuses[m.statusIdx])) + "\n")
	form.WriteString("Priority: " + selector(m.formActive == 4, string(formPriorities[m.priorityIdx])) + "\n")

	sb.WriteString(m.formBox(form.String()))
	sb.WriteString("\n\n")
	sb.WriteString(m.statusBarStyle().Render("Tab: next field • ←/→: change selection • Enter: submit • Esc: cancel"))

	return sb.String()
}

func (m Model) viewDeleteConfirm() string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
		Background(lipgloss.Color(m.styles.ErrorColor)).
		Padding(0, 1).
		Render(" Delete Task "))
	sb.WriteString("\n\n")

	if m.deleteTarget != nil {
		sb.WriteString("Are you sure you want to delete this task?\n\n")
		sb.WriteString(fmt.Sprintf("Title: %s\n", m.deleteTarget.Title))
		if m.deleteTarget.Description != "" {
			sb.WriteString(fmt.Sprintf("Description: %s\n", m.deleteTarget.Description))
		}
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Press Y to confirm, N to cancel"))
	}

	return sb.String()
}

func (m Model) statusBarStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.AccentColor)).
		Background(lipgloss.Color("237")).
		Padding(0, 1)
}

// viewFooter renders the transient notice, the last error, and the
// command help when toggled on.
func (m Model) viewFooter() string {
	var sb strings.Builder

	if m.notice != "" {
		sb.WriteString("\n\n")
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.SuccessColor)).
			Render(m.notice))
	}

	if m.errText != "" {
		sb.WriteString("\n\n")
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.ErrorColor)).
			Render("Error: " + m.errText))
	}

	if m.showCommands && (m.screen == TasksScreen || m.screen == DashboardScreen) {
		commands := []string{
			"q: quit",
			"g: dashboard",
			"t: tasks",
			"n: new",
			"e: edit",
			"d: delete",
			"c: complete",
			"/: search",
			"f: filter",
			"←/→: pages",
			"r: reload",
			"ctrl+l: logout",
		}
		sb.WriteString("\n\n")
		sb.WriteString(m.statusBarStyle().Render(strings.Join(commands, " | ")))
	}

	return sb.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
