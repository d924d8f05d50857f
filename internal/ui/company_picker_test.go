package ui

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/policy-tracker/internal/model"
	"github.com/pstuifzand/policy-tracker/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedCompanies(t *testing.T, fetcher view.Fetcher) *view.Companies {
	t.Helper()
	companies := view.NewCompanies(fetcher)
	cmd := companies.Load()
	require.NotNil(t, cmd)
	companies.Update(cmd(context.Background()).(view.CompaniesLoadedMsg))
	return companies
}

func typeInto(w *CompanyPicker, s string) {
	for _, r := range s {
		w.HandleKeyEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestCompanyPickerFuzzyMatches(t *testing.T) {
	fetcher := &stubFetcher{companies: []model.Company{{Name: "acme"}, {Name: "globex"}, {Name: "initech"}}}
	w := NewCompanyPicker(loadedCompanies(t, fetcher))

	w.Show()
	assert.Equal(t, []string{allCompanies, "acme", "globex", "initech"}, w.Matches())

	typeInto(w, "EX")
	assert.Equal(t, []string{"globex"}, w.Matches())

	w.HandleKeyEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	assert.Equal(t, []string{"acme", "globex", "initech"}, w.Matches(), "closer matches rank first")
}

func TestCompanyPickerSelect(t *testing.T) {
	fetcher := &stubFetcher{companies: []model.Company{{Name: "acme"}, {Name: "globex"}}}
	w := NewCompanyPicker(loadedCompanies(t, fetcher))

	var picked []string
	w.SetOnSelect(func(company string) { picked = append(picked, company) })
	enter := tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)

	w.Show()
	w.HandleKeyEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	w.HandleKeyEvent(enter)
	assert.False(t, w.IsVisible())

	w.Show()
	w.HandleKeyEvent(enter)

	w.Show()
	typeInto(w, "zzz")
	w.HandleKeyEvent(enter)

	assert.Equal(t, []string{"acme", "", "zzz"}, picked)
}

func TestCompanyPickerRender(t *testing.T) {
	companies := view.NewCompanies(&stubFetcher{fail: true})
	w := NewCompanyPicker(companies)
	screen := newTestScreen(t, 60, 20)

	cmd := companies.Load()
	w.Show()
	w.Render(screen)
	assert.True(t, containsRow(screenText(screen), "Loading companies..."))

	companies.Update(cmd(context.Background()).(view.CompaniesLoadedMsg))
	w.Refresh()
	screen.Clear()
	w.Render(screen)
	rows := screenText(screen)
	assert.True(t, containsRow(rows, "Filter by company"))
	assert.True(t, containsRow(rows, view.ErrFetchCompany))
	assert.True(t, containsRow(rows, "> "+allCompanies))
}
