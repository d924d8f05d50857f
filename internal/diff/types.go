package diff

// DiffLineType indicates the type of diff line for rendering
type DiffLineType int

const (
	DiffTypeHeader DiffLineType = iota
	DiffTypeSection
	DiffTypeAdded
	DiffTypeRemoved
	DiffTypeReplaced
	DiffTypeDetail
	DiffTypeSummary
	DiffTypeBlank
)

// DiffLine represents a rendered line in diff output
type DiffLine struct {
	Type    DiffLineType
	Content string
	Indent  int // Indentation level
}

// String returns the line content with its indentation applied
func (l DiffLine) String() string {
	prefix := ""
	for i := 0; i < l.Indent; i++ {
		prefix += "  "
	}
	return prefix + l.Content
}
