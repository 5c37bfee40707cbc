// Package config provides configuration management for Network Settings.
// It handles loading, saving, and managing application settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yllada/connman-gtk/common"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
// All settings are persisted to a YAML file in the user's config directory.
type Config struct {
	// Theme sets the color theme: "light", "dark", or "auto".
	Theme string `yaml:"theme"`
	// ShowNotifications enables desktop notifications for technology events.
	ShowNotifications bool `yaml:"show_notifications"`
	// ShowTray starts the system tray indicator.
	ShowTray bool `yaml:"show_tray"`
	// Bus selects the message bus the daemon is reached on: "system" or "session".
	Bus string `yaml:"bus"`
	// DuplicatePolicy decides what happens when the daemon reports a second
	// technology of an already registered type: "reject" or "replace".
	DuplicatePolicy string `yaml:"duplicate_policy"`
	// WindowWidth is the default width of the main window.
	WindowWidth int `yaml:"window_width"`
	// WindowHeight is the default height of the main window.
	WindowHeight int `yaml:"window_height"`

	path string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Theme:             common.ThemeAuto,
		ShowNotifications: true,
		ShowTray:          false,
		Bus:               common.BusSystem,
		DuplicatePolicy:   common.DuplicateReject,
		WindowWidth:       common.DefaultWindowWidth,
		WindowHeight:      common.DefaultWindowHeight,
	}
}

// Load loads the configuration from the default config file.
// If the file doesn't exist, it creates one with default values.
func Load() (*Config, error) {
	configPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration stored at configPath, writing the
// defaults there when the file does not exist yet.
func LoadFrom(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.path = configPath
		if err := cfg.Save(); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrConfigLoad, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true) // reject unknown fields

	config := *DefaultConfig()
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("%w: error parsing configuration: %v", common.ErrConfigLoad, err)
	}

	config.validate()
	config.path = configPath

	return &config, nil
}

// validate replaces out-of-range values with their defaults.
func (c *Config) validate() {
	defaults := DefaultConfig()

	switch c.Theme {
	case common.ThemeAuto, common.ThemeLight, common.ThemeDark:
	default:
		c.Theme = defaults.Theme
	}

	switch c.Bus {
	case common.BusSystem, common.BusSession:
	default:
		c.Bus = defaults.Bus
	}

	switch c.DuplicatePolicy {
	case common.DuplicateReject, common.DuplicateReplace:
	default:
		c.DuplicatePolicy = defaults.DuplicatePolicy
	}

	if c.WindowWidth < common.MinWindowWidth {
		c.WindowWidth = defaults.WindowWidth
	}
	if c.WindowHeight < common.MinWindowHeight {
		c.WindowHeight = defaults.WindowHeight
	}
}

// Path returns the file the configuration is saved to.
func (c *Config) Path() string {
	return c.path
}

// Save saves the configuration to the file it was loaded from, or to the
// default location.
func (c *Config) Save() error {
	if c.path == "" {
		configPath, err := DefaultPath()
		if err != nil {
			return err
		}
		c.path = configPath
	}
	return c.SaveTo(c.path)
}

// SaveTo writes the configuration to configPath.
func (c *Config) SaveTo(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("%w: error creating config directory: %v", common.ErrConfigSave, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: error serializing configuration: %v", common.ErrConfigSave, err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}

	return nil
}

// DefaultPath returns ~/.config/connman-gtk/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", common.ConfigDirName, common.ConfigFileName), nil
}
