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
	"ToggleDone":    {"space", "toggle done"},
	"AddNote":       {"a", "add note"},
	"EditNote":      {"e", "edit note"},
	"DeleteNote":    {"d", "delete note"},
	"SearchNotes":   {"ctrl+f", "search notes"},
	"FilterNotes":   {"f", "filter notes"},
	"ResetFilters":  {"r", "reset filters"},
	"CycleSort":     {"s", "cycle sort option"},
	"ToggleDetails": {"x", "expand/collapse details"},
}

type KeyMap struct {
	ShowHelp      key.Binding
	QuitApp       key.Binding
	ToggleDone    key.Binding
	AddNote       key.Binding
	EditNote      key.Binding
	DeleteNote    key.Binding
	SearchNotes   key.Binding
	FilterNotes   key.Binding
	ResetFilters  key.Binding
	CycleSort     key.Binding
	ToggleDetails key.Binding
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
		case "ToggleDone":
			km.ToggleDone = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "AddNote":
			km.AddNote = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "EditNote":
			km.EditNote = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "DeleteNote":
			km.DeleteNote = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "SearchNotes":
			km.SearchNotes = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "FilterNotes":
			km.FilterNotes = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "ResetFilters":
			km.ResetFilters = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "CycleSort":
			km.CycleSort = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "ToggleDetails":
			km.ToggleDetails = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
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
