package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

const appName = "policy-tracker"

// Defaults used when the config file leaves a value out
const (
	DefaultAPIBaseURL = "http://localhost:5000/api"
	DefaultPageSize   = 20
	DefaultTheme      = "tokyo-night"
	DefaultLogLevel   = "info"
	DefaultDateFormat = "%Y-%m-%d %H:%M"
)

// Config holds application configuration
type Config struct {
	APIBaseURL string            `toml:"api_base_url"`
	PageSize   int               `toml:"page_size"`
	Theme      string            `toml:"theme"`
	LogFile    string            `toml:"log_file"`
	LogLevel   string            `toml:"log_level"`
	DateFormat string            `toml:"date_format"`
	Settings   map[string]string `toml:"settings"`

	// Session settings (not persisted to TOML, overrides persisted settings)
	sessionSettings map[string]string
	path            string
}

// Load loads the config file from the standard location
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil // Return default if can't find config path
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file
func LoadFromFile(filePath string) (*Config, error) {
	// If file doesn't exist, return default config
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		config := defaultConfig()
		config.path = filePath
		return config, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = toml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	config.sessionSettings = make(map[string]string)
	config.path = filePath

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.DateFormat == "" {
		c.DateFormat = DefaultDateFormat
	}
	if c.Settings == nil {
		c.Settings = make(map[string]string)
	}
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	c := &Config{sessionSettings: make(map[string]string)}
	c.applyDefaults()
	return c
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", appName), nil
}

// Path returns the file the config was loaded from, or would be saved to
func (c *Config) Path() string {
	if c.path != "" {
		return c.path
	}
	p, err := getConfigPath()
	if err != nil {
		return ""
	}
	return p
}

// Set sets a session configuration value
func (c *Config) Set(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
	c.sessionSettings[key] = value
}

// SetPersistent stores a value in the settings map written by Save and
// drops any session override of the same key
func (c *Config) SetPersistent(key, value string) {
	if c.Settings == nil {
		c.Settings = make(map[string]string)
	}
	c.Settings[key] = value
	delete(c.sessionSettings, key)
}

// Get retrieves a configuration value. Session settings override persisted
// settings, which override the top-level options of the same name.
// Returns empty string if not found in any source
func (c *Config) Get(key string) string {
	if c.sessionSettings != nil {
		if val, ok := c.sessionSettings[key]; ok {
			return val
		}
	}

	if c.Settings != nil {
		if val, ok := c.Settings[key]; ok {
			return val
		}
	}

	return c.option(key)
}

// GetInt returns Get(key) as an int, or def when unset or not a number
func (c *Config) GetInt(key string, def int) int {
	n, err := strconv.Atoi(c.Get(key))
	if err != nil {
		return def
	}
	return n
}

func (c *Config) option(key string) string {
	switch key {
	case "api_base_url":
		return c.APIBaseURL
	case "page_size":
		if c.PageSize == 0 {
			return ""
		}
		return strconv.Itoa(c.PageSize)
	case "theme":
		return c.Theme
	case "log_file":
		return c.LogFile
	case "log_level":
		return c.LogLevel
	case "date_format":
		return c.DateFormat
	}
	return ""
}

// GetAll returns all configuration values (both persisted and session)
// Session settings override persisted settings with the same key
func (c *Config) GetAll() map[string]string {
	result := make(map[string]string)

	for k, v := range c.Settings {
		result[k] = v
	}

	for k, v := range c.sessionSettings {
		result[k] = v
	}

	return result
}

// Save persists the configuration to the TOML file
// Note: This only persists the file options and the Settings map, not session settings
func (c *Config) Save() error {
	configPath := c.Path()
	if configPath == "" {
		return fmt.Errorf("failed to get config path")
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
