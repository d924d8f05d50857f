package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/policy-tracker/internal/diff"
	"github.com/pstuifzand/policy-tracker/internal/view"
)

const (
	markerCollapsed = "▸ "
	markerExpanded  = "▾ "
	loadMoreLabel   = "[ Load More ]"
	emptyListLabel  = "No changes found."
)

// listRow is one screen row of the change list. item is -1 for the footer.
type listRow struct {
	item  int
	first bool
	line  diff.DiffLine
	style func(*Screen) tcell.Style
}

// ChangeListView draws a view.ChangeList: one block per change with its
// expanded summary, followed by the load state of the list.
type ChangeListView struct {
	list       *view.ChangeList
	dateFormat string
	offset     int
}

// NewChangeListView creates a list view; dateFormat is a strftime layout
func NewChangeListView(list *view.ChangeList, dateFormat string) *ChangeListView {
	return &ChangeListView{list: list, dateFormat: dateFormat}
}

// SetDateFormat changes the layout used for capture dates
func (v *ChangeListView) SetDateFormat(format string) {
	v.dateFormat = format
}

// Offset returns the first visible row
func (v *ChangeListView) Offset() int {
	return v.offset
}

func (v *ChangeListView) rows(width int) []listRow {
	var rows []listRow
	for i := 0; i < v.list.Len(); i++ {
		rows = append(rows, v.itemRows(i, width)...)
	}

	footer := listRow{item: -1, style: (*Screen).ListMetaStyle}
	switch {
	case v.list.Loading():
		footer.line.Content = "Loading..."
		footer.style = (*Screen).StatusLoadingStyle
	case v.list.Error() != "":
		footer.line.Content = v.list.Error()
		footer.style = (*Screen).StatusErrorStyle
	case v.list.CanLoadMore():
		footer.line.Content = loadMoreLabel
		footer.style = (*Screen).ListActionStyle
	case v.list.Len() == 0:
		footer.line.Content = emptyListLabel
	}
	if footer.line.Content != "" {
		rows = append(rows, footer)
	}
	return rows
}

func (v *ChangeListView) itemRows(i int, width int) []listRow {
	item := v.list.Item(i)
	lines := diff.ItemLines(item.Summary, v.dateFormat)

	marker := markerCollapsed
	if item.Expanded() {
		marker = markerExpanded
	}

	rows := []listRow{{
		item:  i,
		first: true,
		line:  diff.DiffLine{Type: lines[0].Type, Content: marker + lines[0].Content},
		style: (*Screen).ListNormalStyle,
	}}
	for _, l := range lines[1:] {
		l.Indent = 1
		rows = append(rows, listRow{item: i, line: l, style: (*Screen).ListMetaStyle})
	}

	if item.Expanded() {
		switch {
		case item.Loading():
			rows = append(rows, listRow{item: i, line: diff.DiffLine{Content: "Loading details...", Indent: 2}, style: (*Screen).StatusLoadingStyle})
		case item.Error() != "":
			rows = append(rows, listRow{item: i, line: diff.DiffLine{Content: item.Error(), Indent: 2}, style: (*Screen).StatusErrorStyle})
		default:
			for _, l := range diff.SummaryLines(item.Detail()) {
				l.Indent++
				rows = append(rows, wrapRows(i, l, width)...)
			}
		}
	}

	rows = append(rows, listRow{item: i, style: (*Screen).ListNormalStyle})
	return rows
}

// wrapRows splits a long summary line over several rows with the same indent
func wrapRows(item int, l diff.DiffLine, width int) []listRow {
	lineType := l.Type
	style := func(s *Screen) tcell.Style { return lineStyle(s, lineType) }

	avail := width - 2 - 2*l.Indent
	var rows []listRow
	for _, part := range WrapText(l.Content, avail) {
		rows = append(rows, listRow{
			item:  item,
			line:  diff.DiffLine{Type: l.Type, Content: part, Indent: l.Indent},
			style: style,
		})
	}
	return rows
}

// ensureVisible scrolls so the selected item's title row is on screen
func (v *ChangeListView) ensureVisible(rows []listRow, height int) {
	selected := v.list.Selected()
	for idx, r := range rows {
		if r.item == selected && r.first {
			if idx < v.offset {
				v.offset = idx
			}
			if idx >= v.offset+height {
				v.offset = idx - height + 1
			}
			break
		}
	}
	if v.offset > len(rows)-1 {
		v.offset = len(rows) - 1
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

// Render draws the list into rows top..top+height-1
func (v *ChangeListView) Render(screen *Screen, top, height int) {
	width := screen.GetWidth()
	rows := v.rows(width)
	v.ensureVisible(rows, height)

	selected := v.list.Selected()
	for y := 0; y < height; y++ {
		screen.FillLine(0, top+y, screen.ListNormalStyle())
		idx := v.offset + y
		if idx >= len(rows) {
			continue
		}
		r := rows[idx]
		style := r.style(screen)
		if r.first && r.item == selected {
			style = screen.ListSelectedStyle()
			screen.FillLine(0, top+y, style)
		}
		screen.DrawStringLimited(1, top+y, r.line.String(), width-2, style)
	}
}
