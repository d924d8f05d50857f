package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/policy-tracker/internal/diff"
	"github.com/pstuifzand/policy-tracker/internal/view"
)

// DiffViewWidget shows the full diff of one change as a boxed, scrollable
// page. Its content follows the state of a view.DiffDetail.
type DiffViewWidget struct {
	visible      bool
	detail       *view.DiffDetail
	lines        []diff.DiffLine
	rows         []diff.DiffLine // lines wrapped to wrapWidth
	wrapWidth    int
	scrollOffset int
	pageHeight   int
}

// NewDiffViewWidget creates a hidden diff view over detail
func NewDiffViewWidget(detail *view.DiffDetail) *DiffViewWidget {
	return &DiffViewWidget{
		detail:     detail,
		pageHeight: 10,
	}
}

// Show opens the widget at the top
func (dv *DiffViewWidget) Show() {
	dv.visible = true
	dv.scrollOffset = 0
	dv.Refresh()
}

// Hide closes the diff view
func (dv *DiffViewWidget) Hide() {
	dv.visible = false
}

// IsVisible returns whether the widget is currently visible
func (dv *DiffViewWidget) IsVisible() bool {
	return dv.visible
}

// Refresh rebuilds the display lines from the detail state
func (dv *DiffViewWidget) Refresh() {
	switch dv.detail.State() {
	case view.DetailLoading:
		dv.lines = []diff.DiffLine{{Type: diff.DiffTypeDetail, Content: "Loading diff..."}}
	case view.DetailError:
		dv.lines = []diff.DiffLine{{Type: diff.DiffTypeRemoved, Content: dv.detail.Error()}}
	case view.DetailNoData:
		dv.lines = []diff.DiffLine{{Type: diff.DiffTypeDetail, Content: view.NoDiffData}}
	default:
		dv.lines = diff.BuildDiffLines(dv.detail.Change())
	}
	dv.rows = wrapDiffLines(dv.lines, dv.wrapWidth)
	dv.scroll(0)
}

// wrapDiffLines splits lines wider than width into several rows. The text
// after a "+ " or "- " marker continues under the text, not the marker.
// A width of zero or less leaves the lines as they are.
func wrapDiffLines(lines []diff.DiffLine, width int) []diff.DiffLine {
	if width <= 0 {
		return lines
	}

	var rows []diff.DiffLine
	for _, l := range lines {
		avail := width - 2*l.Indent
		marker := ""
		text := l.Content
		if l.Type == diff.DiffTypeAdded || l.Type == diff.DiffTypeRemoved || l.Type == diff.DiffTypeReplaced {
			if strings.HasPrefix(text, "+ ") || strings.HasPrefix(text, "- ") {
				marker, text = text[:2], text[2:]
			}
		}

		for i, part := range WrapText(text, avail-len(marker)) {
			lead := marker
			if i > 0 {
				lead = strings.Repeat(" ", len(marker))
			}
			rows = append(rows, diff.DiffLine{Type: l.Type, Content: lead + part, Indent: l.Indent})
		}
	}
	return rows
}

// Lines returns the lines currently displayed
func (dv *DiffViewWidget) Lines() []diff.DiffLine {
	return dv.lines
}

// Rows returns the lines as wrapped for the last rendered width
func (dv *DiffViewWidget) Rows() []diff.DiffLine {
	return dv.rows
}

// ScrollOffset returns the index of the first visible row
func (dv *DiffViewWidget) ScrollOffset() int {
	return dv.scrollOffset
}

// HandleKeyEvent processes keyboard input
func (dv *DiffViewWidget) HandleKeyEvent(ev *tcell.EventKey) {
	if !dv.visible {
		return
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		dv.Hide()
	case tcell.KeyUp:
		dv.scroll(-1)
	case tcell.KeyDown:
		dv.scroll(1)
	case tcell.KeyPgUp, tcell.KeyCtrlU:
		dv.scroll(-dv.pageHeight / 2)
	case tcell.KeyPgDn, tcell.KeyCtrlD:
		dv.scroll(dv.pageHeight / 2)
	case tcell.KeyHome:
		dv.scrollOffset = 0
	case tcell.KeyEnd:
		dv.scroll(len(dv.rows))
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			dv.Hide()
		case 'j':
			dv.scroll(1)
		case 'k':
			dv.scroll(-1)
		case 'g':
			dv.scrollOffset = 0
		case 'G':
			dv.scroll(len(dv.rows))
		}
	}
}

func (dv *DiffViewWidget) maxScroll() int {
	m := len(dv.rows) - dv.pageHeight
	if m < 0 {
		return 0
	}
	return m
}

// scroll moves the view up or down
func (dv *DiffViewWidget) scroll(lines int) {
	newOffset := dv.scrollOffset + lines
	if newOffset > dv.maxScroll() {
		newOffset = dv.maxScroll()
	}
	if newOffset < 0 {
		newOffset = 0
	}
	dv.scrollOffset = newOffset
}

// Render draws the diff view on the screen
func (dv *DiffViewWidget) Render(screen *Screen) {
	if !dv.visible {
		return
	}

	width := screen.GetWidth()
	height := screen.GetHeight()

	boxWidth := width - 2
	boxHeight := height - 2
	startX := 1
	startY := 1

	if boxWidth < 20 || boxHeight < 5 {
		return
	}

	for y := startY; y < startY+boxHeight; y++ {
		screen.FillLine(startX, y, screen.ListNormalStyle())
	}
	drawBox(screen, startX, startY, boxWidth, boxHeight, screen.ListNormalStyle())

	headerText := fmt.Sprintf(" Change %s ", dv.detail.ID())
	screen.DrawStringLimited(startX+2, startY, headerText, boxWidth-4, screen.HeaderStyle())

	contentHeight := boxHeight - 3
	dv.pageHeight = contentHeight
	if w := boxWidth - 5; w != dv.wrapWidth {
		dv.wrapWidth = w
		dv.rows = wrapDiffLines(dv.lines, w)
	}
	dv.scroll(0)
	dv.renderContent(screen, startX+2, startY+1, boxWidth-4, contentHeight)

	footerText := " j/k/↓/↑: scroll | Ctrl+U/D: page | g/G: top/bottom | r: reload | q/Esc: back "
	screen.DrawStringLimited(startX+2, startY+boxHeight-1, footerText, boxWidth-4, screen.ListMetaStyle())
}

// renderContent draws the wrapped rows in the content area; the last
// column is kept for the scrollbar
func (dv *DiffViewWidget) renderContent(screen *Screen, x, y, width, height int) {
	for i := dv.scrollOffset; i < len(dv.rows) && i-dv.scrollOffset < height; i++ {
		row := dv.rows[i]
		screen.DrawStringLimited(x, y+i-dv.scrollOffset, row.String(), width-1, lineStyle(screen, row.Type))
	}

	if len(dv.rows) > height {
		scrollbarY := y + (dv.scrollOffset * height / len(dv.rows))
		screen.SetCell(x+width-1, scrollbarY, '█', screen.ListMarkerStyle())
	}
}

// lineStyle maps a diff line type to its theme style
func lineStyle(screen *Screen, lineType diff.DiffLineType) tcell.Style {
	switch lineType {
	case diff.DiffTypeHeader:
		return screen.DiffHeaderStyle()
	case diff.DiffTypeSection:
		return screen.DiffSectionStyle()
	case diff.DiffTypeAdded:
		return screen.DiffAddedStyle()
	case diff.DiffTypeRemoved:
		return screen.DiffRemovedStyle()
	case diff.DiffTypeReplaced:
		return screen.DiffReplacedStyle()
	case diff.DiffTypeDetail:
		return screen.ListMetaStyle()
	case diff.DiffTypeSummary:
		return screen.DiffSectionStyle()
	default:
		return screen.ListNormalStyle()
	}
}

// drawBox draws a simple box border
func drawBox(screen *Screen, x, y, width, height int, style tcell.Style) {
	screen.SetCell(x, y, '┌', style)
	for i := 1; i < width-1; i++ {
		screen.SetCell(x+i, y, '─', style)
	}
	screen.SetCell(x+width-1, y, '┐', style)

	screen.SetCell(x, y+height-1, '└', style)
	for i := 1; i < width-1; i++ {
		screen.SetCell(x+i, y+height-1, '─', style)
	}
	screen.SetCell(x+width-1, y+height-1, '┘', style)

	for i := 1; i < height-1; i++ {
		screen.SetCell(x, y+i, '│', style)
		screen.SetCell(x+width-1, y+i, '│', style)
	}
}
