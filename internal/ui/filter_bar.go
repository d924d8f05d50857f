package ui

import (
	"fmt"

	"github.com/pstuifzand/policy-tracker/internal/view"
)

// FilterBar shows the active list filters on a single row
type FilterBar struct {
	list *view.ChangeList
}

// NewFilterBar creates a filter bar for list
func NewFilterBar(list *view.ChangeList) *FilterBar {
	return &FilterBar{list: list}
}

type filterField struct {
	label string
	value string
}

func (f *FilterBar) fields() []filterField {
	filters := f.list.Filters()
	orAll := func(s string) string {
		if s == "" {
			return "all"
		}
		return s
	}
	return []filterField{
		{"Company", orAll(filters.Company)},
		{"Size", filters.ChangeSize.Label()},
		{"From", orAll(filters.FromDate)},
		{"To", orAll(filters.ToDate)},
	}
}

// Render draws the filters at row y with the page position on the right
func (f *FilterBar) Render(screen *Screen, y int) {
	labelStyle := screen.FilterLabelStyle()
	valueStyle := screen.FilterValueStyle()
	width := screen.GetWidth()

	screen.FillLine(0, y, labelStyle)

	x := 1
	for _, field := range f.fields() {
		if x >= width {
			break
		}
		x += screen.DrawString(x, y, field.label+": ", labelStyle)
		x += screen.DrawStringLimited(x, y, field.value, width-x, valueStyle)
		x += 2
	}

	position := fmt.Sprintf("page %d", f.list.Page())
	if total := f.list.Total(); total > 0 {
		position = fmt.Sprintf("%d of %d · %s", f.list.Len(), total, position)
	}
	px := width - StringWidth(position) - 1
	if px > x {
		screen.DrawString(px, y, position, labelStyle)
	}
}
