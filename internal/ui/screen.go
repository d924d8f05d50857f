package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/policy-tracker/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreen creates a terminal screen with the given theme
func NewScreen(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewScreenWithTcell(tcellScreen, t)
}

// NewScreenWithTcell initializes ts and wraps it. Tests pass a
// tcell.SimulationScreen here.
func NewScreenWithTcell(ts tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := ts.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	if t == nil {
		t = theme.Default()
	}

	width, height := ts.Size()
	return &Screen{
		tcellScreen: ts,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws a string at the given position and returns the number
// of columns used. Wide runes take two columns.
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	col := 0
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetCell(x+col, y, r, style)
		col += w
	}
	return col
}

// DrawStringLimited draws a string, truncating it if it exceeds maxWidth
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return 0
	}
	return s.DrawString(x, y, TruncateToWidthWithEllipsis(text, maxWidth), style)
}

// FillLine paints the row from x to the right edge with style
func (s *Screen) FillLine(x, y int, style tcell.Style) {
	for ; x < s.width; x++ {
		s.SetCell(x, y, ' ', style)
	}
}

// PollEvent polls for the next event (key press, resize, etc.)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Sync redraws the whole terminal, used after a resize
func (s *Screen) Sync() {
	s.tcellScreen.Sync()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	w, h := s.tcellScreen.Size()
	s.width = w
	s.height = h
	return w, h
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	s.width, _ = s.tcellScreen.Size()
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, s.height = s.tcellScreen.Size()
	return s.height
}

// RowText returns the characters of row y, used by tests to inspect
// what was drawn.
func (s *Screen) RowText(y int) string {
	w, _ := s.Size()
	row := make([]rune, 0, w)
	for x := 0; x < w; x++ {
		r, _, _, width := s.tcellScreen.GetContent(x, y)
		if width == 0 {
			continue
		}
		if r == 0 {
			r = ' '
		}
		row = append(row, r)
		if width == 2 {
			x++
		}
	}
	return string(row)
}

// StyleAt returns the style of the cell at x, y
func (s *Screen) StyleAt(x, y int) tcell.Style {
	_, _, style, _ := s.tcellScreen.GetContent(x, y)
	return style
}

// Theme-aware style methods

// ListNormalStyle returns the style for change titles
func (s *Screen) ListNormalStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.ListNormalText)
}

// ListSelectedStyle returns the style for the selected change title
func (s *Screen) ListSelectedStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.ListSelectedItem).Bold(true).Reverse(true)
}

// ListMetaStyle returns the style for counts and dates below a title
func (s *Screen) ListMetaStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.ListMeta)
}

// ListMarkerStyle returns the style for the expand marker
func (s *Screen) ListMarkerStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.ListMarker)
}

// ListActionStyle returns the style for the load more action
func (s *Screen) ListActionStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.ListAction).Bold(true)
}

// FilterLabelStyle returns the style for filter names
func (s *Screen) FilterLabelStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.FilterLabel)
}

// FilterValueStyle returns the style for filter values
func (s *Screen) FilterValueStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.FilterValue).Bold(true)
}

// DiffHeaderStyle returns the style for diff titles
func (s *Screen) DiffHeaderStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.DiffHeader).Bold(true)
}

// DiffSectionStyle returns the style for field path headings
func (s *Screen) DiffSectionStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.DiffSection)
}

// DiffAddedStyle returns the style for additions
func (s *Screen) DiffAddedStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.DiffAdded)
}

// DiffRemovedStyle returns the style for removals
func (s *Screen) DiffRemovedStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.DiffRemoved)
}

// DiffReplacedStyle returns the style for replacements
func (s *Screen) DiffReplacedStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.DiffReplaced)
}

// CommandPromptStyle returns the style for command prompt
func (s *Screen) CommandPromptStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.CommandPrompt)
}

// CommandTextStyle returns the style for command text
func (s *Screen) CommandTextStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.CommandText)
}

// CommandCursorStyle returns the style for command cursor
func (s *Screen) CommandCursorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.CommandCursor).Reverse(true)
}

// HelpStyle returns the style for help background
func (s *Screen) HelpStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpContent, s.Theme.Colors.HelpBackground)
}

// HelpBorderStyle returns the style for help borders
func (s *Screen) HelpBorderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpBorder, s.Theme.Colors.HelpBackground)
}

// HelpTitleStyle returns the style for help title
func (s *Screen) HelpTitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpTitle, s.Theme.Colors.HelpBackground).Bold(true)
}

// StatusModeStyle returns the style for the screen indicator
func (s *Screen) StatusModeStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMode).Bold(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMessage)
}

// StatusErrorStyle returns the style for failures
func (s *Screen) StatusErrorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusError)
}

// StatusLoadingStyle returns the style for loading indicators
func (s *Screen) StatusLoadingStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusLoading)
}

// HeaderStyle returns the style for header title
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.HeaderTitle).Bold(true)
}
