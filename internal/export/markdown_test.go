package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pstuifzand/policy-tracker/internal/model"
)

func testChange() *model.Change {
	return &model.Change{
		ChangeSummary: model.ChangeSummary{
			ID:          "1",
			Company:     "Acme",
			FromVersion: "v1",
			ToVersion:   "v2",
			Summary:     model.DiffSummary{TotalChanges: 3, Added: 1, Changed: 1},
		},
		Diff: model.DiffContent{
			Changed: model.ChangedFields{
				{Path: "name.text", Changes: []model.FieldChange{model.Replaced("A", "B", 0)}},
				{Path: "bio.text", Changes: []model.FieldChange{model.Added("hello", 0), model.Removed("bye", 1)}},
			},
			Added: []string{"root['contact']"},
		},
	}
}

func TestChangeToMarkdown(t *testing.T) {
	expected := "# Acme: v1 → v2\n" +
		"\n" +
		"- Total changes: 3\n" +
		"- Added: 1\n" +
		"- Removed: 0\n" +
		"- Changed: 1\n" +
		"- Type changes: 0\n" +
		"\n" +
		"## `name.text`\n" +
		"\n" +
		"```diff\n" +
		"- A\n" +
		"+ B\n" +
		"```\n" +
		"\n" +
		"## `bio.text`\n" +
		"\n" +
		"```diff\n" +
		"+ hello\n" +
		"- bye\n" +
		"```\n" +
		"\n" +
		"## Added keys\n" +
		"\n" +
		"- `root['contact']`\n"

	result := ChangeToMarkdown(testChange())
	if result != expected {
		t.Errorf("Markdown export mismatch.\nExpected:\n%s\nGot:\n%s", expected, result)
	}
}

func TestExportToMarkdown(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "change.md")

	if err := ExportToMarkdown(testChange(), filePath); err != nil {
		t.Fatalf("ExportToMarkdown failed: %v", err)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("Failed to read exported file: %v", err)
	}
	if string(content) != ChangeToMarkdown(testChange()) {
		t.Errorf("File content differs from rendered markdown:\n%s", content)
	}

	if err := ExportToMarkdown(nil, filePath); err == nil {
		t.Error("Expected an error exporting nothing")
	}
	if err := ExportToMarkdown(testChange(), filepath.Join(t.TempDir(), "missing", "x.md")); err == nil {
		t.Error("Expected an error writing to a missing directory")
	}
}
