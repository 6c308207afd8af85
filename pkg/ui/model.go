package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskflow/pkg/api"
	"taskflow/pkg/config"
	"taskflow/pkg/keymaps"
	"taskflow/pkg/query"
	"taskflow/pkg/session"
)

// Screen identifies which screen is on display.
type Screen int

const (
	LoginScreen Screen = iota
	RegisterScreen
	DashboardScreen
	TasksScreen
	TaskDetailScreen
	TaskFormScreen
	DeleteConfirmScreen
)

// FormMode distinguishes the create and edit variants of the task form.
type FormMode int

const (
	CreateForm FormMode = iota
	EditForm
)

// Model represents the application state
type Model struct {
	client  *api.Client
	session *session.Store
	config  config.Config
	styles  config.Styles
	keyMap  keymaps.KeyMap

	guard         GuardState
	screen        Screen
	width, height int
	showCommands  bool
	notice        string // transient footer message (the toast stand-in)
	errText       string

	// Login / register form state
	nameInput     textinput.Model
	emailInput    textinput.Model
	passwordInput textinput.Model
	confirmInput  textinput.Model
	authActive    int
	authErrors    map[string]string
	authBusy      bool

	// Task list state
	table        table.Model
	searchInput  textinput.Model
	searching    bool
	query        *query.State
	cache        *query.Cache
	spin         spinner.Model
	pager        paginator.Model
	loadingTasks bool
	cancelFetch  context.CancelFunc

	// Dashboard state
	stats        *api.DashboardStats
	recentCursor int
	loadingStats bool

	// Detail state
	detail     *api.Task
	detailGone bool

	// Task form state
	formMode     FormMode
	editingID    string
	titleInput   textinput.Model
	descInput    textinput.Model
	dueDateInput textinput.Model
	statusIdx    int
	priorityIdx  int
	formActive   int
	formErrors   map[string]string
	formBusy     bool

	// Delete confirmation state
	deleteTarget *api.Task
	cameFrom     Screen
}

var formStatuses = []api.Status{api.StatusTodo, api.StatusInProgress}
var formPriorities = []api.Priority{api.PriorityLow, api.PriorityMedium, api.PriorityHigh}

// NewModel creates the UI model. initial seeds the task list view
// state (from the -view flag); nil means the default view.
func NewModel(client *api.Client, sess *session.Store, cfg config.Config, styles config.Styles, initial *query.State) Model {
	columns := []table.Column{
		{Title: "Status", Width: 12},
		{Title: "Title", Width: 38},
		{Title: "Priority", Width: 8},
		{Title: "Due", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(query.PageSize+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.BorderColor)).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(styles.SelectedTextColor)).
		Background(lipgloss.Color(styles.SelectedBgColor)).
		Bold(true)
	t.SetStyles(s)

	searchInput := textinput.New()
	searchInput.Placeholder = "Search tasks..."
	searchInput.Width = 40

	nameInput := textinput.New()
	nameInput.Placeholder = "Name"
	nameInput.Width = 40

	emailInput := textinput.New()
	emailInput.Placeholder = "Email"
	emailInput.Width = 40

	passwordInput := textinput.New()
	passwordInput.Placeholder = "Password"
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.Width = 40

	confirmInput := textinput.New()
	confirmInput.Placeholder = "Confirm password"
	confirmInput.EchoMode = textinput.EchoPassword
	confirmInput.Width = 40

	titleInput := textinput.New()
	titleInput.Placeholder = "Title"
	titleInput.Width = 40

	descInput := textinput.New()
	descInput.Placeholder = "Description (optional)"
	descInput.Width = 40

	dueDateInput := textinput.New()
	dueDateInput.Placeholder = "Due Date (YYYY-MM-DD)"
	dueDateInput.Width = 40

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(styles.AccentColor))

	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.ActiveDot = lipgloss.NewStyle().Foreground(lipgloss.Color(styles.AccentColor)).Render("•")
	pager.InactiveDot = lipgloss.NewStyle().Foreground(lipgloss.Color(styles.MutedTextColor)).Render("•")

	if initial == nil {
		initial = query.NewState()
	}

	return Model{
		client:        client,
		session:       sess,
		config:        cfg,
		styles:        styles,
		keyMap:        keymaps.BuildKeyMap(cfg.KeyMap),
		guard:         GuardChecking,
		screen:        LoginScreen,
		nameInput:     nameInput,
		emailInput:    emailInput,
		passwordInput: passwordInput,
		confirmInput:  confirmInput,
		authErrors:    map[string]string{},
		table:         t,
		searchInput:   searchInput,
		query:         initial,
		cache:         query.NewCache(),
		spin:          spin,
		pager:         pager,
		titleInput:    titleInput,
		descInput:     descInput,
		dueDateInput:  dueDateInput,
		formErrors:    map[string]string{},
	}
}

// Init kicks off the session restore; the guard stays in its checking
// state until sessionRestoredMsg arrives.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, initSessionCmd(m.session))
}

// syncTable rebuilds the table rows and pager from the cache.
func (m *Model) syncTable() {
	now := time.Now()
	rows := []table.Row{}
	for _, item := range m.cache.Items() {
		due := ""
		if !item.DueDate.IsZero() {
			due = item.DueDate.Format("2006-01-02")
		}
		rows = append(rows, table.Row{
			item.DisplayStatus(now),
			item.Title,
			string(item.Priority),
			due,
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}

	m.pager.TotalPages = m.cache.TotalPages()
	m.pager.Page = m.query.Page() - 1
}

// selectedTask returns the task under the table cursor.
func (m *Model) selectedTask() (api.Task, bool) {
	return m.cache.Task(m.table.Cursor())
}

// resetAuthInputs clears the login/register form.
func (m *Model) resetAuthInputs() {
	m.nameInput.Reset()
	m.emailInput.Reset()
	m.passwordInput.Reset()
	m.confirmInput.Reset()
	m.authErrors = map[string]string{}
	m.authActive = 0
	m.focusAuthInput()
}

// openTaskForm prepares the create/edit form. task is ignored for
// CreateForm.
func (m *Model) openTaskForm(mode FormMode, task api.Task, from Screen) {
	m.formMode = mode
	m.cameFrom = from
	m.formErrors = map[string]string{}
	m.formActive = 0
	m.formBusy = false

	if mode == EditForm {
		m.editingID = task.ID
		m.titleInput.SetValue(task.Title)
		m.descInput.SetValue(task.Description)
		if !task.DueDate.IsZero() {
			m.dueDateInput.SetValue(task.DueDate.Format("2006-01-02"))
		} else {
			m.dueDateInput.Reset()
		}
		m.statusIdx = 0
		for i, s := range formStatuses {
			if s == task.Status {
				m.statusIdx = i
			}
		}
		m.priorityIdx = 1
		for i, p := range formPriorities {
			if p == task.Priority {
				m.priorityIdx = i
			}
		}
	} else {
		m.editingID = ""
		m.titleInput.Reset()
		m.descInput.Reset()
		m.dueDateInput.SetValue(time.Now().Format("2006-01-02"))
		m.statusIdx = 0
		m.priorityIdx = 1
	}

	m.focusFormInput()
	m.screen = TaskFormScreen
}

// focusAuthInput focuses the active auth field and blurs the rest.
func (m *Model) focusAuthInput() {
	inputs := m.authInputs()
	for i, input := range inputs {
		if i == m.authActive {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

// authInputs lists the auth fields for the current screen, in tab
// order.
func (m *Model) authInputs() []*textinput.Model {
	if m.screen == RegisterScreen {
		return []*textinput.Model{&m.nameInput, &m.emailInput, &m.passwordInput, &m.confirmInput}
	}
	return []*textinput.Model{&m.emailInput, &m.passwordInput}
}

// focusFormInput focuses the active task form field. The status and
// priority selectors are not text inputs, so everything blurs when one
// of them is active.
func (m *Model) focusFormInput() {
	fields := []*textinput.Model{&m.titleInput, &m.descInput, &m.dueDateInput}
	for i, field := range fields {
		if i == m.formActive {
			field.Focus()
		} else {
			field.Blur()
		}
	}
}
