package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// ThemeConfig represents the raw TOML theme configuration
type ThemeConfig struct {
	Name   string `toml:"name"`
	Colors struct {
		ListNormalText   string `toml:"list_normal_text"`
		ListSelectedItem string `toml:"list_selected_item"`
		ListMeta         string `toml:"list_meta"`
		ListMarker       string `toml:"list_marker"`
		ListAction       string `toml:"list_action"`
		FilterLabel      string `toml:"filter_label"`
		FilterValue      string `toml:"filter_value"`
		DiffHeader       string `toml:"diff_header"`
		DiffSection      string `toml:"diff_section"`
		DiffAdded        string `toml:"diff_added"`
		DiffRemoved      string `toml:"diff_removed"`
		DiffReplaced     string `toml:"diff_replaced"`
		CommandPrompt    string `toml:"command_prompt"`
		CommandText      string `toml:"command_text"`
		CommandCursor    string `toml:"command_cursor"`
		HelpBackground   string `toml:"help_background"`
		HelpBorder       string `toml:"help_border"`
		HelpTitle        string `toml:"help_title"`
		HelpContent      string `toml:"help_content"`
		StatusMode       string `toml:"status_mode"`
		StatusMessage    string `toml:"status_message"`
		StatusError      string `toml:"status_error"`
		StatusLoading    string `toml:"status_loading"`
		HeaderTitle      string `toml:"header_title"`
	} `toml:"colors"`
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	paths := []string{}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "policy-tracker", "themes"),
			filepath.Join(home, ".local", "share", "policy-tracker", "themes"),
		)
	}

	return paths
}

// findThemeFile searches for a theme file in standard locations
func findThemeFile(themeName string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range getThemePaths() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config ThemeConfig
	err = toml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(config)
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName)
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

// configToTheme converts a ThemeConfig to a Theme. Missing colors come
// from Tokyo Night, except diff_replaced which is mixed from the added and
// removed colors when only those two are given.
func configToTheme(config ThemeConfig) (*Theme, error) {
	t := TokyoNight()
	c := config.Colors
	dst := &t.Colors

	overrides := []struct {
		key    string
		value  string
		target *tcell.Color
	}{
		{"list_normal_text", c.ListNormalText, &dst.ListNormalText},
		{"list_selected_item", c.ListSelectedItem, &dst.ListSelectedItem},
		{"list_meta", c.ListMeta, &dst.ListMeta},
		{"list_marker", c.ListMarker, &dst.ListMarker},
		{"list_action", c.ListAction, &dst.ListAction},
		{"filter_label", c.FilterLabel, &dst.FilterLabel},
		{"filter_value", c.FilterValue, &dst.FilterValue},
		{"diff_header", c.DiffHeader, &dst.DiffHeader},
		{"diff_section", c.DiffSection, &dst.DiffSection},
		{"diff_added", c.DiffAdded, &dst.DiffAdded},
		{"diff_removed", c.DiffRemoved, &dst.DiffRemoved},
		{"diff_replaced", c.DiffReplaced, &dst.DiffReplaced},
		{"command_prompt", c.CommandPrompt, &dst.CommandPrompt},
		{"command_text", c.CommandText, &dst.CommandText},
		{"command_cursor", c.CommandCursor, &dst.CommandCursor},
		{"help_background", c.HelpBackground, &dst.HelpBackground},
		{"help_border", c.HelpBorder, &dst.HelpBorder},
		{"help_title", c.HelpTitle, &dst.HelpTitle},
		{"help_content", c.HelpContent, &dst.HelpContent},
		{"status_mode", c.StatusMode, &dst.StatusMode},
		{"status_message", c.StatusMessage, &dst.StatusMessage},
		{"status_error", c.StatusError, &dst.StatusError},
		{"status_loading", c.StatusLoading, &dst.StatusLoading},
		{"header_title", c.HeaderTitle, &dst.HeaderTitle},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		color, err := ParseColor(o.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", o.key, err)
		}
		*o.target = color
	}

	if c.DiffReplaced == "" && c.DiffAdded != "" && c.DiffRemoved != "" {
		dst.DiffReplaced = Blend(dst.DiffAdded, dst.DiffRemoved, 0.5)
	}

	if config.Name != "" {
		t.Name = config.Name
	}

	return t, nil
}

// LoadThemeOrDefault loads a theme by name, or returns Tokyo Night if not found
func LoadThemeOrDefault(themeName string) *Theme {
	switch themeName {
	case "default":
		return Default()
	case "", "tokyo-night":
		return TokyoNight()
	}

	theme, err := LoadTheme(themeName)
	if err != nil {
		return TokyoNight()
	}

	return theme
}
