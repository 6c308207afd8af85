package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"taskflow/pkg/keymaps"
)

// Config holds the application configuration.
type Config struct {
	APIBaseURL            string            `mapstructure:"api_base_url"`
	SessionFile           string            `mapstructure:"session_file"`
	RequestTimeoutSeconds int               `mapstructure:"request_timeout_seconds"`
	KeyMap                map[string]string `mapstructure:"keymap"`
	StylesFile            string            `mapstructure:"styles_file"`
}

// Styles holds the application colors and styling information.
type Styles struct {
	// UI element colors
	BorderColor string `json:"border_color"`
	AccentColor string `json:"accent_color"`

	// Text colors
	NormalTextColor   string `json:"normal_text_color"`
	SelectedTextColor string `json:"selected_text_color"`
	SelectedBgColor   string `json:"selected_bg_color"`
	ErrorColor        string `json:"error_color"`
	SuccessColor      string `json:"success_color"`
	MutedTextColor    string `json:"muted_text_color"`

	// Status badge colors
	TodoColor       string `json:"todo_color"`
	InProgressColor string `json:"in_progress_color"`
	DoneColor       string `json:"done_color"`
	OverdueColor    string `json:"overdue_color"`

	// Priority colors
	PriorityLowColor    string `json:"priority_low_color"`
	PriorityMediumColor string `json:"priority_medium_color"`
	PriorityHighColor   string `json:"priority_high_color"`
}

// Load loads the application configuration from the specified path,
// creating a default config file on first run. A .env file and
// TASKFLOW_* environment variables override file values, so the API
// address can be switched without editing the config.
func Load(configPath string) (Config, Styles, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, Styles{}, err
	}

	configDir := filepath.Join(homeDir, ".config", "taskflow")
	defaultConfigPath := filepath.Join(configDir, "config.json")

	// Local .env is optional; missing is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix("taskflow")
	v.AutomaticEnv()

	v.SetDefault("api_base_url", "http://localhost:5000/api")
	v.SetDefault("session_file", filepath.Join(configDir, "session.json"))
	v.SetDefault("request_timeout_seconds", 10)
	v.SetDefault("keymap", keymaps.GetDefaultKeyMappings())
	v.SetDefault("styles_file", filepath.Join(configDir, "styles.json"))

	if configPath == "" {
		configPath = defaultConfigPath
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, Styles{}, err
			}
		}
		// Config file not found, create it with the defaults.
		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			return Config{}, Styles{}, err
		}
		if err := v.WriteConfigAs(configPath); err != nil {
			return Config{}, Styles{}, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, Styles{}, err
	}

	styles, err := loadStyles(config.StylesFile)
	if err != nil {
		return config, styles, fmt.Errorf("error loading styles: %w", err)
	}

	return config, styles, nil
}

// loadStyles loads the application styles from the specified path.
func loadStyles(stylesPath string) (Styles, error) {
	defaultStyles := Styles{
		BorderColor:         "240",
		AccentColor:         "205",
		NormalTextColor:     "86",
		SelectedTextColor:   "229",
		SelectedBgColor:     "57",
		ErrorColor:          "9",
		SuccessColor:        "2",
		MutedTextColor:      "243",
		TodoColor:           "4",
		InProgressColor:     "3",
		DoneColor:           "2",
		OverdueColor:        "208",
		PriorityLowColor:    "8",
		PriorityMediumColor: "3",
		PriorityHighColor:   "9",
	}

	stylesData, err := os.ReadFile(stylesPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create the styles file with default values.
			if err := os.MkdirAll(filepath.Dir(stylesPath), 0755); err != nil {
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
		}
		return defaultStyles, err
	}

	var loadedStyles Styles
	if err := json.Unmarshal(stylesData, &loadedStyles); err != nil {
		return defaultStyles, err
	}

	return loadedStyles, nil
}
