package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/pstuifzand/policy-tracker/internal/model"
)

// ChangeToMarkdown renders a change as a Markdown document: a heading with
// the versions, the counts, and one fenced diff block per changed field.
func ChangeToMarkdown(change *model.Change) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", change.Title())
	s := change.Summary
	fmt.Fprintf(&sb, "- Total changes: %d\n", s.TotalChanges)
	fmt.Fprintf(&sb, "- Added: %d\n", s.Added)
	fmt.Fprintf(&sb, "- Removed: %d\n", s.Removed)
	fmt.Fprintf(&sb, "- Changed: %d\n", s.Changed)
	fmt.Fprintf(&sb, "- Type changes: %d\n", s.TypeChanges)

	for _, field := range change.Diff.Changed {
		writeFieldAsMarkdown(&sb, field)
	}

	writeKeysAsMarkdown(&sb, "Added keys", change.Diff.Added)
	writeKeysAsMarkdown(&sb, "Removed keys", change.Diff.Removed)

	return sb.String()
}

// ExportToMarkdown writes ChangeToMarkdown(change) to filePath
func ExportToMarkdown(change *model.Change, filePath string) error {
	if change == nil {
		return fmt.Errorf("no change to export")
	}
	if err := os.WriteFile(filePath, []byte(ChangeToMarkdown(change)), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown file: %w", err)
	}
	return nil
}

// writeFieldAsMarkdown writes one field as a heading and a diff block.
// A replacement becomes a removal followed by an addition.
func writeFieldAsMarkdown(sb *strings.Builder, field model.FieldChanges) {
	fmt.Fprintf(sb, "\n## `%s`\n\n```diff\n", field.Path)
	for _, fc := range field.Changes {
		switch fc.Type {
		case model.ChangeAdded:
			sb.WriteString("+ " + fc.Value + "\n")
		case model.ChangeRemoved:
			sb.WriteString("- " + fc.Value + "\n")
		case model.ChangeReplaced:
			sb.WriteString("- " + fc.OldValue + "\n")
			sb.WriteString("+ " + fc.NewValue + "\n")
		}
	}
	sb.WriteString("```\n")
}

func writeKeysAsMarkdown(sb *strings.Builder, title string, keys []string) {
	if len(keys) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n## %s\n\n", title)
	for _, key := range keys {
		fmt.Fprintf(sb, "- `%s`\n", key)
	}
}
