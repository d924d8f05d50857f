// Package history stores prompt history as small TOML files, one per prompt
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Manager reads and writes the history files in one directory
type Manager struct {
	dir string
	now func() time.Time
}

// File is the on-disk layout of a history file
type File struct {
	UpdatedAt time.Time `toml:"updated_at"`
	Entries   []string  `toml:"entries"`
}

// NewManager stores history under $XDG_DATA_HOME/policy-tracker/history,
// falling back to ~/.local/share when XDG_DATA_HOME is unset.
func NewManager() (*Manager, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return NewManagerAt(filepath.Join(base, "policy-tracker", "history"))
}

// NewManagerAt stores history in dir, creating it when missing
func NewManagerAt(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}
	return &Manager{dir: dir, now: time.Now}, nil
}

// Dir is the directory the history files live in
func (m *Manager) Dir() string { return m.dir }

func (m *Manager) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid history file name %q", name)
	}
	return filepath.Join(m.dir, name), nil
}

// Load returns the entries in name. A missing or unparsable file gives an
// empty history.
func (m *Manager) Load(name string) ([]string, error) {
	p, err := m.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return []string{}, nil
	}
	if f.Entries == nil {
		return []string{}, nil
	}
	return f.Entries, nil
}

// Save replaces the entries in name. The file is written next to its
// final path and renamed so a crash never leaves half a file.
func (m *Manager) Save(name string, entries []string) error {
	p, err := m.path(name)
	if err != nil {
		return err
	}

	data, err := toml.Marshal(File{UpdatedAt: m.now().UTC(), Entries: entries})
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(m.dir, name+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), p)
}
