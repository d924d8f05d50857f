package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSet(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("date_format", "%d/%m")
	if cfg.Get("date_format") != "%d/%m" {
		t.Errorf("Expected '%%d/%%m', got '%s'", cfg.Get("date_format"))
	}
}

func TestGetPrecedence(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Get("nonexistent") != "" {
		t.Errorf("Expected empty string for nonexistent key, got '%s'", cfg.Get("nonexistent"))
	}

	if cfg.Get("page_size") != "20" {
		t.Errorf("Expected top-level page_size '20', got '%s'", cfg.Get("page_size"))
	}

	cfg.Settings["page_size"] = "30"
	if cfg.GetInt("page_size", 0) != 30 {
		t.Errorf("Expected persisted setting 30, got %d", cfg.GetInt("page_size", 0))
	}

	cfg.Set("page_size", "40")
	if cfg.GetInt("page_size", 0) != 40 {
		t.Errorf("Expected session setting 40, got %d", cfg.GetInt("page_size", 0))
	}

	cfg.Set("page_size", "many")
	if cfg.GetInt("page_size", 7) != 7 {
		t.Errorf("Expected fallback for non-numeric value")
	}
}

func TestGetAllReturnsACopy(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("original", "value")

	// Modify the returned map
	all := cfg.GetAll()
	all["original"] = "modified"

	// Verify the original config was not modified
	if cfg.Get("original") != "value" {
		t.Errorf("GetAll() should return a copy, not a reference")
	}
}

func TestNilSessionSettings(t *testing.T) {
	cfg := &Config{}

	// Set should initialize it
	cfg.Set("key", "value")
	if cfg.Get("key") != "value" {
		t.Errorf("Set should initialize nil sessionSettings")
	}

	// Get should handle nil gracefully
	cfg2 := &Config{}
	if cfg2.Get("key") != "" {
		t.Errorf("Get should return empty string for nil sessionSettings")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Theme != DefaultTheme {
		t.Errorf("Expected default theme '%s', got '%s'", DefaultTheme, cfg.Theme)
	}
	if cfg.APIBaseURL != "http://localhost:5000/api" {
		t.Errorf("Unexpected default API base URL '%s'", cfg.APIBaseURL)
	}
	if cfg.PageSize != 20 {
		t.Errorf("Expected default page size 20, got %d", cfg.PageSize)
	}
	if cfg.sessionSettings == nil {
		t.Errorf("defaultConfig should initialize sessionSettings")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `api_base_url = "http://tracker.internal/api"
log_level = "debug"

[settings]
company = "acme"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.APIBaseURL != "http://tracker.internal/api" {
		t.Errorf("Expected API URL from file, got '%s'", cfg.APIBaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level 'debug', got '%s'", cfg.LogLevel)
	}
	if cfg.PageSize != DefaultPageSize || cfg.DateFormat != DefaultDateFormat {
		t.Errorf("Missing options should get defaults, got %d and '%s'", cfg.PageSize, cfg.DateFormat)
	}
	if cfg.Get("company") != "acme" {
		t.Errorf("Expected setting 'acme', got '%s'", cfg.Get("company"))
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFromFile(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("Missing file should give defaults, got %v", err)
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("Expected default theme for missing file")
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("page_size = ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(bad); err == nil {
		t.Errorf("Expected parse error for malformed TOML")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Settings["company"] = "globex"
	cfg.Set("session_only", "yes")
	cfg.PageSize = 50

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Get("company") != "globex" {
		t.Errorf("Expected persisted setting, got '%s'", loaded.Get("company"))
	}
	if loaded.Get("session_only") != "" {
		t.Errorf("Session settings must not be persisted")
	}
	if loaded.PageSize != 50 {
		t.Errorf("Expected page size 50, got %d", loaded.PageSize)
	}
}

func TestSetPersistentDropsSessionOverride(t *testing.T) {
	cfg := &Config{}
	cfg.Set("date_format", "%d/%m")
	cfg.SetPersistent("date_format", "%Y")

	if got := cfg.Get("date_format"); got != "%Y" {
		t.Errorf("Expected persisted value to win, got '%s'", got)
	}
	if cfg.Settings["date_format"] != "%Y" {
		t.Errorf("Expected value in Settings, got %v", cfg.Settings)
	}
}
