package keymaps

import (
	"testing"
)

func TestBuildKeyMapDefaults(t *testing.T) {
	km := BuildKeyMap(nil)

	if got := km.QuitApp.Keys(); len(got) != 1 || got[0] != "q" {
		t.Errorf("QuitApp keys = %v, want [q]", got)
	}
	if got := km.SearchTasks.Keys(); len(got) != 1 || got[0] != "ctrl+f" {
		t.Errorf("SearchTasks keys = %v, want [ctrl+f]", got)
	}
	if got := km.Logout.Keys(); len(got) != 1 || got[0] != "ctrl+l" {
		t.Errorf("Logout keys = %v, want [ctrl+l]", got)
	}
}

func TestBuildKeyMapOverrides(t *testing.T) {
	km := BuildKeyMap(map[string]string{
		"QuitApp":  "ctrl+q",
		"NextPage": "right, l",
		"Refresh":  "",
	})

	if got := km.QuitApp.Keys(); len(got) != 1 || got[0] != "ctrl+q" {
		t.Errorf("QuitApp keys = %v, want [ctrl+q]", got)
	}

	// Comma separated overrides bind every listed key.
	if got := km.NextPage.Keys(); len(got) != 2 || got[0] != "right" || got[1] != "l" {
		t.Errorf("NextPage keys = %v, want [right l]", got)
	}

	// An empty override falls back to the default.
	if got := km.Refresh.Keys(); len(got) != 1 || got[0] != "r" {
		t.Errorf("Refresh keys = %v, want [r]", got)
	}
}

func TestGetDefaultKeyMappings(t *testing.T) {
	mappings := GetDefaultKeyMappings()

	if len(mappings) != len(KeyDefinitions) {
		t.Errorf("len = %d, want %d", len(mappings), len(KeyDefinitions))
	}
	if mappings["CompleteTask"] != "c" {
		t.Errorf("CompleteTask = %q, want %q", mappings["CompleteTask"], "c")
	}
}
