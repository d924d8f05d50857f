// Package model contains the change records served by the diff API
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DiffSummary holds the aggregate counts of a change record
type DiffSummary struct {
	TotalChanges int `json:"total_changes"`
	Added        int `json:"added"`
	Removed      int `json:"removed"`
	Changed      int `json:"changed"`
	TypeChanges  int `json:"type_changes"`
}

// ChangeSummary is one row of the change list
type ChangeSummary struct {
	ID          string      `json:"id"`
	Company     string      `json:"company"`
	FromVersion string      `json:"from_version"`
	ToVersion   string      `json:"to_version"`
	Timestamp   time.Time   `json:"timestamp"`
	Summary     DiffSummary `json:"summary"`
}

// Change is a change record with its full diff content
type Change struct {
	ChangeSummary
	Diff DiffContent `json:"diff"`
}

// TypeChange records a value whose type changed between versions
type TypeChange struct {
	OldType  string `json:"old_type"`
	NewType  string `json:"new_type"`
	OldValue any    `json:"old_value"`
	NewValue any    `json:"new_value"`
}

// DiffContent is the computed delta between two document versions
type DiffContent struct {
	Changed     ChangedFields         `json:"changed"`
	Added       KeyList               `json:"added"`
	Removed     KeyList               `json:"removed"`
	TypeChanges map[string]TypeChange `json:"type_changes"`
}

// KeyList holds the paths of keys added to or removed from a document.
// It decodes from a JSON array of paths or from an object keyed by path,
// in which case the values are dropped and the key order is kept.
type KeyList []string

func (k *KeyList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch tok {
	case nil:
		*k = nil
		return nil
	case json.Delim('['):
		var paths []string
		if err := json.Unmarshal(data, &paths); err != nil {
			return err
		}
		*k = paths
		return nil
	case json.Delim('{'):
		paths := KeyList{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}
			paths = append(paths, keyTok.(string))
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return err
			}
		}
		*k = paths
		return nil
	}
	return fmt.Errorf("key list: expected array or object, got %v", tok)
}

// ChangePage is one page of the change list endpoint
type ChangePage struct {
	Changes []ChangeSummary `json:"changes"`
	Total   int             `json:"total,omitempty"`
	Page    int             `json:"page,omitempty"`
	Limit   int             `json:"limit,omitempty"`
}

// Title returns the heading used for a change in lists
func (s ChangeSummary) Title() string {
	return fmt.Sprintf("%s: %s → %s", s.Company, s.FromVersion, s.ToVersion)
}

// Validate checks the fields every summary must carry
func (s ChangeSummary) Validate() error {
	if s.ID == "" {
		return errors.New("change is missing an id")
	}
	sm := s.Summary
	if sm.TotalChanges < 0 || sm.Added < 0 || sm.Removed < 0 || sm.Changed < 0 || sm.TypeChanges < 0 {
		return fmt.Errorf("change %s has negative counts", s.ID)
	}
	return nil
}

// Validate checks the summary part and every field change of the diff
func (c *Change) Validate() error {
	if err := c.ChangeSummary.Validate(); err != nil {
		return err
	}
	for _, field := range c.Diff.Changed {
		for i, fc := range field.Changes {
			if err := fc.Validate(); err != nil {
				return fmt.Errorf("change %s: %s[%d]: %w", c.ID, field.Path, i, err)
			}
		}
	}
	return nil
}

// Validate checks that the page carries a change list with valid rows
func (p *ChangePage) Validate() error {
	if p.Changes == nil {
		return errors.New("response has no changes list")
	}
	for i, s := range p.Changes {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("changes[%d]: %w", i, err)
		}
	}
	return nil
}
