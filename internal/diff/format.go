package diff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ncruces/go-strftime"
	"github.com/pstuifzand/policy-tracker/internal/model"
)

// DefaultDateFormat is the strftime layout used for change timestamps
const DefaultDateFormat = "%Y-%m-%d %H:%M"

// ItemLines returns the collapsed list row of a change: its title, the
// total change count and, when known, the capture date.
func ItemLines(s model.ChangeSummary, dateFormat string) []DiffLine {
	lines := []DiffLine{
		{Type: DiffTypeHeader, Content: s.Title()},
		{Type: DiffTypeDetail, Content: fmt.Sprintf("Total changes: %d", s.Summary.TotalChanges)},
	}
	if !s.Timestamp.IsZero() {
		if dateFormat == "" {
			dateFormat = DefaultDateFormat
		}
		lines = append(lines, DiffLine{
			Type:    DiffTypeDetail,
			Content: "Captured: " + strftime.Format(dateFormat, s.Timestamp),
		})
	}
	return lines
}

// TextChangeLine formats one field change for the summary view
func TextChangeLine(fc model.FieldChange) DiffLine {
	switch fc.Type {
	case model.ChangeAdded:
		return DiffLine{Type: DiffTypeAdded, Content: "Added: " + fc.Value}
	case model.ChangeRemoved:
		return DiffLine{Type: DiffTypeRemoved, Content: "Removed: " + fc.Value}
	case model.ChangeReplaced:
		return DiffLine{Type: DiffTypeReplaced, Content: fmt.Sprintf("Replaced: %s with %s", fc.OldValue, fc.NewValue)}
	}
	return DiffLine{Type: DiffTypeDetail, Content: string(fc.Type)}
}

// SummaryLines builds the expanded details of a change item: the counts
// followed by every text field change grouped by field path.
func SummaryLines(change *model.Change) []DiffLine {
	if change == nil {
		return nil
	}

	sm := change.Summary
	lines := []DiffLine{
		{Type: DiffTypeDetail, Content: fmt.Sprintf("Added: %d", sm.Added)},
		{Type: DiffTypeDetail, Content: fmt.Sprintf("Removed: %d", sm.Removed)},
		{Type: DiffTypeDetail, Content: fmt.Sprintf("Changed: %d", sm.Changed)},
		{Type: DiffTypeDetail, Content: fmt.Sprintf("Type changes: %d", sm.TypeChanges)},
		{Type: DiffTypeSummary, Content: "Text Changes:"},
	}

	for _, field := range change.Diff.Changed.TextFields() {
		lines = append(lines, DiffLine{Type: DiffTypeSection, Content: field.Path, Indent: 1})
		for _, fc := range field.Changes {
			line := TextChangeLine(fc)
			line.Indent = 2
			lines = append(lines, line)
		}
	}

	return lines
}

// BuildDiffLines converts a change into the full diff display: every
// changed field as a titled block of +/- lines, then type changes and the
// raw added/removed keys. This is suitable for both CLI and TUI output.
func BuildDiffLines(change *model.Change) []DiffLine {
	if change == nil {
		return nil
	}

	lines := []DiffLine{
		{Type: DiffTypeHeader, Content: fmt.Sprintf("Diff View: %s → %s", change.FromVersion, change.ToVersion)},
		{Type: DiffTypeBlank},
	}

	for _, field := range change.Diff.Changed {
		lines = append(lines, DiffLine{Type: DiffTypeSection, Content: field.Path})
		for _, fc := range field.Changes {
			lines = append(lines, fieldChangeLines(fc)...)
		}
		lines = append(lines, DiffLine{Type: DiffTypeBlank})
	}

	if len(change.Diff.TypeChanges) > 0 {
		lines = append(lines, DiffLine{Type: DiffTypeSummary, Content: "Type Changes:"})
		for _, path := range sortedKeys(change.Diff.TypeChanges) {
			tc := change.Diff.TypeChanges[path]
			lines = append(lines, DiffLine{
				Type: DiffTypeReplaced,
				Content: fmt.Sprintf("%s: %s → %s (%v → %v)",
					path, tc.OldType, tc.NewType, tc.OldValue, tc.NewValue),
				Indent: 1,
			})
		}
		lines = append(lines, DiffLine{Type: DiffTypeBlank})
	}

	lines = append(lines, keyListLines("Added Keys:", "+ ", DiffTypeAdded, change.Diff.Added)...)
	lines = append(lines, keyListLines("Removed Keys:", "- ", DiffTypeRemoved, change.Diff.Removed)...)

	return trimTrailingBlank(lines)
}

// fieldChangeLines renders one change as +/- lines; a replacement is the
// removal followed by the addition.
func fieldChangeLines(fc model.FieldChange) []DiffLine {
	switch fc.Type {
	case model.ChangeAdded:
		return []DiffLine{{Type: DiffTypeAdded, Content: "+ " + fc.Value}}
	case model.ChangeRemoved:
		return []DiffLine{{Type: DiffTypeRemoved, Content: "- " + fc.Value}}
	case model.ChangeReplaced:
		return []DiffLine{
			{Type: DiffTypeRemoved, Content: "- " + fc.OldValue},
			{Type: DiffTypeAdded, Content: "+ " + fc.NewValue},
		}
	}
	return nil
}

func keyListLines(title, prefix string, lineType DiffLineType, keys []string) []DiffLine {
	if len(keys) == 0 {
		return nil
	}
	lines := []DiffLine{{Type: DiffTypeSummary, Content: title}}
	for _, key := range keys {
		lines = append(lines, DiffLine{Type: lineType, Content: prefix + key, Indent: 1})
	}
	return append(lines, DiffLine{Type: DiffTypeBlank})
}

func trimTrailingBlank(lines []DiffLine) []DiffLine {
	for len(lines) > 0 && lines[len(lines)-1].Type == DiffTypeBlank {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// PlainText joins lines with their indentation, one per row
func PlainText(lines []DiffLine) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// sortedKeys returns a sorted slice of keys from a map
func sortedKeys[T any](items map[string]T) []string {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
