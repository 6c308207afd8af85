package keymaps

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type KeyDefinition struct {
	DefaultKey string
	Help       string
}

var KeyDefinitions = map[string]KeyDefinition{
	"ShowHelp":      {"ctrl+b", "show/hide commands"},
	"QuitApp":       {"q", "quit"},
	"OpenDashboard": {"g", "go to dashboard"},
	"OpenTasks":     {"t", "go to task list"},
	"NewTask":       {"n", "create task"},
	"EditTask":      {"e", "edit task"},
	"DeleteTask":    {"d", "delete task"},
	"CompleteTask":  {"c", "mark task done"},
	"OpenTask":      {"enter", "open task details"},
	"SearchTasks":   {"ctrl+f", "search tasks"},
	"ClearSearch":   {"ctrl+x", "clear search"},
	"CycleFilter":   {"f", "cycle status filter"},
	"NextPage":      {"right", "next page"},
	"PrevPage":      {"left", "previous page"},
	"Refresh":       {"r", "reload from server"},
	"Logout":        {"ctrl+l", "log out"},
}

type KeyMap struct {
	ShowHelp      key.Binding
	QuitApp       key.Binding
	OpenDashboard key.Binding
	OpenTasks     key.Binding
	NewTask       key.Binding
	EditTask      key.Binding
	DeleteTask    key.Binding
	CompleteTask  key.Binding
	OpenTask      key.Binding
	SearchTasks   key.Binding
	ClearSearch   key.Binding
	CycleFilter   key.Binding
	NextPage      key.Binding
	PrevPage      key.Binding
	Refresh       key.Binding
	Logout        key.Binding
}

func BuildKeyMap(configOverrides map[string]string) KeyMap {
	km := KeyMap{}
	for action, def := range KeyDefinitions {
		keyStr := def.DefaultKey
		if override, exists := configOverrides[action]; exists && override != "" {
			keyStr = override
		}

		switch action {
		case "ShowHelp":
			km.ShowHelp = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "QuitApp":
			km.QuitApp = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "OpenDashboard":
			km.OpenDashboard = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "OpenTasks":
			km.OpenTasks = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "NewTask":
			km.NewTask = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "EditTask":
			km.EditTask = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "DeleteTask":
			km.DeleteTask = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "CompleteTask":
			km.CompleteTask = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "OpenTask":
			km.OpenTask = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "SearchTasks":
			km.SearchTasks = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "ClearSearch":
			km.ClearSearch = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "CycleFilter":
			km.CycleFilter = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "NextPage":
			km.NextPage = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "PrevPage":
			km.PrevPage = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "Refresh":
			km.Refresh = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "Logout":
			km.Logout = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		}
	}
	return km
}

func parseKeyBinding(keyStr, defaultKey, helpText string) key.Binding {
	if keyStr == "" {
		keyStr = defaultKey
	}

	// Handle multiple keys separated by commas
	keys := strings.Split(keyStr, ",")
	for i, k := range keys {
		keys[i] = strings.TrimSpace(k)
	}

	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], helpText),
	)
}

// GetDefaultKeyMappings returns the default key mappings for configuration
func GetDefaultKeyMappings() map[string]string {
	keyMappings := make(map[string]string)
	for action, def := range KeyDefinitions {
		keyMappings[action] = def.DefaultKey
	}
	return keyMappings
}
