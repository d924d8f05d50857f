package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TextSuffix marks field paths that hold document text
const TextSuffix = ".text"

// ChangeType tags the variant of a FieldChange
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeRemoved  ChangeType = "removed"
	ChangeReplaced ChangeType = "replaced"
)

// FieldChange is one addition, removal or replacement within a field.
// Value is set for added and removed, OldValue/NewValue for replaced.
type FieldChange struct {
	Type     ChangeType
	Value    string
	OldValue string
	NewValue string
	Position int
}

// fieldChangeJSON is the wire form; pointers tell a missing value from an
// empty one
type fieldChangeJSON struct {
	Type     ChangeType `json:"type"`
	Value    *string    `json:"value,omitempty"`
	OldValue *string    `json:"old_value,omitempty"`
	NewValue *string    `json:"new_value,omitempty"`
	Position *int       `json:"position"`
}

// UnmarshalJSON rejects a known variant that lacks one of its values or
// its position. Unknown types decode and are left to Validate.
func (fc *FieldChange) UnmarshalJSON(data []byte) error {
	var raw fieldChangeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var missing []string
	switch raw.Type {
	case ChangeAdded, ChangeRemoved:
		if raw.Value == nil {
			missing = append(missing, "value")
		}
	case ChangeReplaced:
		if raw.OldValue == nil {
			missing = append(missing, "old_value")
		}
		if raw.NewValue == nil {
			missing = append(missing, "new_value")
		}
	}
	if raw.Position == nil {
		missing = append(missing, "position")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s change is missing %s", raw.Type, strings.Join(missing, ", "))
	}

	*fc = FieldChange{Type: raw.Type, Position: *raw.Position}
	if raw.Value != nil {
		fc.Value = *raw.Value
	}
	if raw.OldValue != nil {
		fc.OldValue = *raw.OldValue
	}
	if raw.NewValue != nil {
		fc.NewValue = *raw.NewValue
	}
	return nil
}

// MarshalJSON writes the fields of the change's variant, empty values
// included
func (fc FieldChange) MarshalJSON() ([]byte, error) {
	raw := fieldChangeJSON{Type: fc.Type, Position: &fc.Position}
	switch fc.Type {
	case ChangeAdded, ChangeRemoved:
		raw.Value = &fc.Value
	case ChangeReplaced:
		raw.OldValue = &fc.OldValue
		raw.NewValue = &fc.NewValue
	default:
		raw.Value = &fc.Value
		raw.OldValue = &fc.OldValue
		raw.NewValue = &fc.NewValue
	}
	return json.Marshal(raw)
}

// Added creates an added FieldChange
func Added(value string, position int) FieldChange {
	return FieldChange{Type: ChangeAdded, Value: value, Position: position}
}

// Removed creates a removed FieldChange
func Removed(value string, position int) FieldChange {
	return FieldChange{Type: ChangeRemoved, Value: value, Position: position}
}

// Replaced creates a replaced FieldChange
func Replaced(oldValue, newValue string, position int) FieldChange {
	return FieldChange{Type: ChangeReplaced, OldValue: oldValue, NewValue: newValue, Position: position}
}

// Validate rejects unknown variants and negative positions
func (fc FieldChange) Validate() error {
	switch fc.Type {
	case ChangeAdded, ChangeRemoved, ChangeReplaced:
	default:
		return fmt.Errorf("unknown change type %q", fc.Type)
	}
	if fc.Position < 0 {
		return fmt.Errorf("negative position %d", fc.Position)
	}
	return nil
}

// FieldChanges is the ordered change list of one field path
type FieldChanges struct {
	Path    string
	Changes []FieldChange
}

// IsText reports whether the path ends in the text suffix
func (f FieldChanges) IsText() bool {
	return strings.HasSuffix(f.Path, TextSuffix)
}

// ChangedFields maps field paths to their changes, keeping the key order
// of the JSON object it was decoded from.
type ChangedFields []FieldChanges

// Get returns the changes recorded for path
func (c ChangedFields) Get(path string) ([]FieldChange, bool) {
	for _, f := range c {
		if f.Path == path {
			return f.Changes, true
		}
	}
	return nil, false
}

// TextFields returns the fields whose path ends in the text suffix
func (c ChangedFields) TextFields() ChangedFields {
	var result ChangedFields
	for _, f := range c {
		if f.IsText() {
			result = append(result, f)
		}
	}
	return result
}

// UnmarshalJSON decodes a JSON object token by token so key order survives
func (c *ChangedFields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*c = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("changed: expected object, got %v", tok)
	}

	fields := ChangedFields{}
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("changed: expected key, got %v", keyTok)
		}

		var changes []FieldChange
		if err := dec.Decode(&changes); err != nil {
			return fmt.Errorf("changed[%q]: %w", key, err)
		}

		// Duplicate keys keep their first position and the last value
		if i, seen := index[key]; seen {
			fields[i].Changes = changes
			continue
		}
		index[key] = len(fields)
		fields = append(fields, FieldChanges{Path: key, Changes: changes})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = fields
	return nil
}

// MarshalJSON encodes the fields as a JSON object in their stored order
func (c ChangedFields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Path)
		if err != nil {
			return nil, err
		}
		changes := f.Changes
		if changes == nil {
			changes = []FieldChange{}
		}
		value, err := json.Marshal(changes)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
