package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/todo/internal/config/colors"
)

const appName = "todo"

// Config represents the application configuration
type Config struct {
	Database    DatabaseConfig     `yaml:"database" koanf:"database"`
	Logging     LoggingConfig      `yaml:"logging" koanf:"logging"`
	Worker      WorkerConfig       `yaml:"worker" koanf:"worker"`
	Reminder    ReminderConfig     `yaml:"reminder" koanf:"reminder"`
	ColorScheme colors.ColorScheme `yaml:"theme" koanf:"theme"`
}

// DatabaseConfig locates the task database
type DatabaseConfig struct {
	// Path to the SQLite file; empty means ~/.todo/tasks.db
	Path          string `yaml:"path" koanf:"path"`
	BusyTimeoutMS int    `yaml:"busy_timeout_ms" koanf:"busy_timeout_ms" validate:"gte=0"`
}

// LoggingConfig controls the log file
type LoggingConfig struct {
	Level string `yaml:"level" koanf:"level" validate:"oneof=debug info warn error"`
	// Dir holds todo.log; empty means ~/.todo/logs
	Dir string `yaml:"dir" koanf:"dir"`
}

// WorkerConfig sizes the background worker pool
type WorkerConfig struct {
	Size  int `yaml:"size" koanf:"size" validate:"gte=1,lte=64"`
	Queue int `yaml:"queue" koanf:"queue" validate:"gte=0"`
}

// ReminderConfig drives the reminder daemon.
// A task is reminded about once when its due date is between Lead-Window
// and Lead from now.
type ReminderConfig struct {
	Schedule string        `yaml:"schedule" koanf:"schedule" validate:"required,cronspec"`
	Lead     time.Duration `yaml:"lead" koanf:"lead" validate:"gt=0"`
	Window   time.Duration `yaml:"window" koanf:"window" validate:"gt=0,ltefield=Lead"`
}

// Default returns the configuration used when no file or overrides exist
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			BusyTimeoutMS: 5000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Worker: WorkerConfig{
			Size:  4,
			Queue: 64,
		},
		Reminder: ReminderConfig{
			Schedule: "@every 5m",
			// due in 24h when counted in whole hours: [now+24h, now+25h)
			Lead:   25 * time.Hour,
			Window: time.Hour,
		},
		ColorScheme: DefaultColorScheme(),
	}
}

// loadThemeFile loads and merges theme from TODO_THEME_FILE environment variable
func loadThemeFile(config *Config) {
	themeFile := os.Getenv("TODO_THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme colors.ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// Load loads config from the user's config directory, then applies .env and
// TODO_* environment overrides.
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		// Fall back to defaults if we can't determine config path
		configPath = ""
	}
	return LoadFile(configPath)
}

// LoadFile is Load with an explicit config file path.
// A missing file or empty path yields the defaults.
func LoadFile(configPath string) (*Config, error) {
	config := Default()
	// Colors are resolved from the chosen preset after the file is read.
	config.ColorScheme = colors.ColorScheme{}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("parse %s: %w", configPath, err)
			}
		}
	}

	// Load theme from TODO_THEME_FILE if set
	loadThemeFile(config)

	if err := applyEnv(config); err != nil {
		return nil, err
	}

	// Fill in any missing values with defaults
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(configPath)
}

// SaveFile writes the config as YAML to configPath
func (c *Config) SaveFile(configPath string) error {
	// Create config directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", appName, "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Database.BusyTimeoutMS == 0 {
		c.Database.BusyTimeoutMS = defaults.Database.BusyTimeoutMS
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Worker.Size == 0 {
		c.Worker.Size = defaults.Worker.Size
	}
	if c.Reminder.Schedule == "" {
		c.Reminder.Schedule = defaults.Reminder.Schedule
	}
	if c.Reminder.Lead == 0 {
		c.Reminder.Lead = defaults.Reminder.Lead
	}
	if c.Reminder.Window == 0 {
		c.Reminder.Window = defaults.Reminder.Window
	}
	c.ColorScheme.ApplyDefaults()
}
