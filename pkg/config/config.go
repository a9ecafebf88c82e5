package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tobedone/pkg/keymaps"
)

// Config holds the application configuration
type Config struct {
	Database    string            `json:"database"`
	Preferences string            `json:"preferences"`
	KeyMap      map[string]string `json:"keymap"`
	StylesFile  string            `json:"styles_file"`
}

// Styles holds the application colors and styling information
type Styles struct {
	// UI element colors
	BorderColor string `json:"border_color"`
	AccentColor string `json:"accent_color"`

	// Text colors
	NormalTextColor   string `json:"normal_text_color"`
	SelectedTextColor string `json:"selected_text_color"`
	SelectedBgColor   string `json:"selected_bg_color"`
	ErrorColor        string `json:"error_color"`
	DoneColor         string `json:"done_color"`

	// Priority colors, most urgent first
	PriorityColors [5]string `json:"priority_colors"`
}

// PriorityColor returns the color for a priority level (1..5)
func (s Styles) PriorityColor(priority int) string {
	if priority < 1 || priority > len(s.PriorityColors) {
		return s.NormalTextColor
	}
	return s.PriorityColors[priority-1]
}

// Load loads the application configuration from the specified path
func Load(configPath string) (Config, Styles, error) {
	// Everything defaults to living under ~/.config/tobedone
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, Styles{}, err
	}

	configDir := filepath.Join(homeDir, ".config", "tobedone")
	defaultConfigPath := filepath.Join(configDir, "config.json")

	config := Config{
		Database:    filepath.Join(configDir, "notes.db"),
		Preferences: filepath.Join(configDir, "prefs.json"),
		KeyMap:      keymaps.GetDefaultKeyMappings(),
		StylesFile:  filepath.Join(configDir, "styles.json"),
	}

	// If configPath is empty, use the default path
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Try to read the config file
	configData, err := os.ReadFile(configPath)
	if err != nil {
		// If the file doesn't exist, create it with default values
		if os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return config, Styles{}, err
			}

			configData, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return config, Styles{}, err
			}

			if err := os.WriteFile(configPath, configData, 0644); err != nil {
				return config, Styles{}, err
			}
		} else {
			// Some other error occurred while reading the file
			return config, Styles{}, err
		}
	} else {
		// File exists, parse it
		if err := json.Unmarshal(configData, &config); err != nil {
			return config, Styles{}, err
		}
	}

	// Now load the styles file
	styles, err := loadStyles(config.StylesFile)
	if err != nil {
		return config, styles, fmt.Errorf("error loading styles: %w", err)
	}

	return config, styles, nil
}

// loadStyles loads the application styles from the specified path
func loadStyles(stylesPath string) (Styles, error) {
	defaultStyles := Styles{
		BorderColor:       "240",
		AccentColor:       "205",
		NormalTextColor:   "86",
		SelectedTextColor: "229",
		SelectedBgColor:   "57",
		ErrorColor:        "9",
		DoneColor:         "243",
		// critical, needs attention, default, optional, trivial
		PriorityColors: [5]string{"9", "208", "11", "14", "10"},
	}

	// Try to read the styles file
	stylesData, err := os.ReadFile(stylesPath)
	if err != nil {
		// If the file doesn't exist, create it with default values
		if os.IsNotExist(err) {
			stylesDir := filepath.Dir(stylesPath)
			if err := os.MkdirAll(stylesDir, 0755); err != nil {
				return defaultStyles, err
			}

			stylesData, err = json.MarshalIndent(defaultStyles, "", "  ")
			if err != nil {
				return defaultStyles, err
			}

			if err := os.WriteFile(stylesPath, stylesData, 0644); err != nil {
				return defaultStyles, err
			}

			return defaultStyles, nil
		} else {
			// Some other error occurred
			return defaultStyles, err
		}
	}

	// File exists, parse it
	var loadedStyles Styles
	if err := json.Unmarshal(stylesData, &loadedStyles); err != nil {
		return defaultStyles, err
	}

	return loadedStyles, nil
}
