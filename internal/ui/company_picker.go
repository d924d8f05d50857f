package ui

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pstuifzand/policy-tracker/internal/view"
)

const allCompanies = "(all companies)"

// CompanyPicker is a modal fuzzy finder over the tracked companies. Enter
// picks the highlighted company; with no match the typed text is used as
// a substring filter.
type CompanyPicker struct {
	visible     bool
	companies   *view.Companies
	query       string
	cursorPos   int
	matches     []string
	selectedIdx int
	maxResults  int
	onSelect    func(company string)
}

// NewCompanyPicker creates a hidden picker over companies
func NewCompanyPicker(companies *view.Companies) *CompanyPicker {
	return &CompanyPicker{
		companies:  companies,
		maxResults: 9,
	}
}

// SetOnSelect sets the callback run with the chosen company, "" for all
func (w *CompanyPicker) SetOnSelect(onSelect func(string)) {
	w.onSelect = onSelect
}

// Show opens the picker with an empty query
func (w *CompanyPicker) Show() {
	w.visible = true
	w.query = ""
	w.cursorPos = 0
	w.Refresh()
}

func (w *CompanyPicker) Hide() {
	w.visible = false
}

func (w *CompanyPicker) IsVisible() bool {
	return w.visible
}

// Matches returns the entries currently listed
func (w *CompanyPicker) Matches() []string {
	return w.matches
}

// Refresh recomputes the matches, e.g. after the companies loaded
func (w *CompanyPicker) Refresh() {
	w.selectedIdx = 0
	names := w.companies.Names()

	if w.query == "" {
		w.matches = append([]string{allCompanies}, names...)
	} else {
		ranks := fuzzy.RankFindFold(w.query, names)
		sort.Stable(ranks)
		w.matches = w.matches[:0]
		for _, r := range ranks {
			w.matches = append(w.matches, r.Target)
		}
	}
	if len(w.matches) > w.maxResults {
		w.matches = w.matches[:w.maxResults]
	}
}

func (w *CompanyPicker) choose(company string) {
	w.Hide()
	if company == allCompanies {
		company = ""
	}
	if w.onSelect != nil {
		w.onSelect(company)
	}
}

// DeleteWordBackwards deletes the word before the cursor
func (w *CompanyPicker) DeleteWordBackwards() {
	if w.cursorPos == 0 {
		return
	}

	pos := w.cursorPos - 1
	for pos >= 0 && w.query[pos] == ' ' {
		pos--
	}
	for pos >= 0 && w.query[pos] != ' ' {
		pos--
	}

	deleteStart := pos + 1
	w.query = w.query[:deleteStart] + w.query[w.cursorPos:]
	w.cursorPos = deleteStart
	w.Refresh()
}

// HandleKeyEvent processes a key press; it returns true when consumed
func (w *CompanyPicker) HandleKeyEvent(ev *tcell.EventKey) bool {
	if !w.visible {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		w.Hide()

	case tcell.KeyEnter:
		switch {
		case len(w.matches) > 0:
			w.choose(w.matches[w.selectedIdx])
		case w.query != "":
			w.choose(w.query)
		}

	case tcell.KeyCtrlW:
		w.DeleteWordBackwards()

	case tcell.KeyCtrlN, tcell.KeyDown:
		if len(w.matches) > 0 {
			w.selectedIdx = (w.selectedIdx + 1) % len(w.matches)
		}

	case tcell.KeyCtrlP, tcell.KeyUp:
		if len(w.matches) > 0 {
			w.selectedIdx = (w.selectedIdx - 1 + len(w.matches)) % len(w.matches)
		}

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if w.cursorPos > 0 {
			r := []rune(w.query[:w.cursorPos])
			head := string(r[:len(r)-1])
			w.query = head + w.query[w.cursorPos:]
			w.cursorPos = len(head)
			w.Refresh()
		}

	case tcell.KeyLeft:
		if w.cursorPos > 0 {
			r := []rune(w.query[:w.cursorPos])
			w.cursorPos = len(string(r[:len(r)-1]))
		}

	case tcell.KeyRight:
		if w.cursorPos < len(w.query) {
			r := []rune(w.query[w.cursorPos:])
			w.cursorPos += len(string(r[0]))
		}

	case tcell.KeyRune:
		s := string(ev.Rune())
		w.query = w.query[:w.cursorPos] + s + w.query[w.cursorPos:]
		w.cursorPos += len(s)
		w.Refresh()

	default:
		return false
	}

	return true
}

// Render draws the picker centered on the screen
func (w *CompanyPicker) Render(screen *Screen) {
	if !w.visible {
		return
	}

	width := screen.GetWidth()
	height := screen.GetHeight()

	boxWidth := (width * 2) / 3
	if boxWidth < 30 {
		boxWidth = width - 2
	}
	boxHeight := w.maxResults + 5
	if boxHeight > height {
		boxHeight = height
	}
	boxStartX := (width - boxWidth) / 2
	boxStartY := (height - boxHeight) / 2

	borderStyle := screen.HelpBorderStyle()
	bgStyle := screen.HelpStyle()
	selectedStyle := screen.ListSelectedStyle()
	innerWidth := boxWidth - 4

	for y := boxStartY; y < boxStartY+boxHeight; y++ {
		for x := boxStartX; x < boxStartX+boxWidth && x < width; x++ {
			screen.SetCell(x, y, ' ', bgStyle)
		}
	}
	drawBox(screen, boxStartX, boxStartY, boxWidth, boxHeight, borderStyle)
	screen.DrawStringLimited(boxStartX+2, boxStartY, " Filter by company ", innerWidth, screen.HelpTitleStyle())

	inputX := boxStartX + 2
	inputY := boxStartY + 1
	x := inputX + screen.DrawString(inputX, inputY, "Company: ", screen.FilterLabelStyle())
	for i, r := range w.query {
		style := bgStyle
		if i == w.cursorPos {
			style = bgStyle.Reverse(true)
		}
		screen.SetCell(x, inputY, r, style)
		x += RuneWidth(r)
	}
	if w.cursorPos >= len(w.query) {
		screen.SetCell(x, inputY, ' ', bgStyle.Reverse(true))
	}

	resultsY := boxStartY + 2
	switch {
	case w.companies.Loading():
		screen.DrawStringLimited(inputX, resultsY, "Loading companies...", innerWidth, screen.StatusLoadingStyle())
	case w.companies.Error() != "":
		screen.DrawStringLimited(inputX, resultsY, w.companies.Error(), innerWidth, screen.StatusErrorStyle())
		resultsY++
	}

	for i, name := range w.matches {
		y := resultsY + i
		if y >= boxStartY+boxHeight-2 {
			break
		}
		line := "   " + name
		style := bgStyle
		if i == w.selectedIdx {
			line = " > " + name
			style = selectedStyle
		}
		screen.DrawStringLimited(inputX, y, line, innerWidth, style)
	}

	footer := fmt.Sprintf(" %d of %d | Enter: select, Esc: close ", len(w.matches), len(w.companies.Names()))
	screen.DrawStringLimited(inputX, boxStartY+boxHeight-1, footer, innerWidth, borderStyle)
}
