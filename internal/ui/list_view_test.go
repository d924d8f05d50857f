package ui

import (
	"fmt"
	"testing"

	"github.com/pstuifzand/policy-tracker/internal/model"
	"github.com/pstuifzand/policy-tracker/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoadedList(t *testing.T, fetcher *stubFetcher) *view.ChangeList {
	t.Helper()
	list := view.NewChangeList(fetcher, 20, nil)
	apply(t, list, list.Init())
	return list
}

func TestListViewRendersItems(t *testing.T) {
	fetcher := &stubFetcher{changes: []model.ChangeSummary{acmeChange().ChangeSummary}}
	list := newLoadedList(t, fetcher)
	screen := newTestScreen(t, 60, 10)

	NewChangeListView(list, "").Render(screen, 0, 10)

	rows := screenText(screen)
	assert.Equal(t, " ▸ Acme: v1 → v2", rows[0])
	assert.Equal(t, "   Total changes: 3", rows[1])
	assert.Equal(t, "", rows[2])
	assert.Equal(t, " [ Load More ]", rows[3])
	assert.Equal(t, screen.ListSelectedStyle(), screen.StyleAt(1, 0))
}

func TestListViewExpandedSummary(t *testing.T) {
	change := acmeChange()
	fetcher := &stubFetcher{
		changes: []model.ChangeSummary{change.ChangeSummary},
		details: map[string]*model.Change{"1": change},
	}
	list := newLoadedList(t, fetcher)
	lv := NewChangeListView(list, "")
	screen := newTestScreen(t, 60, 20)

	cmd := list.ToggleSelected()
	lv.Render(screen, 0, 20)
	rows := screenText(screen)
	assert.Equal(t, " ▾ Acme: v1 → v2", rows[0])
	assert.True(t, containsRow(rows, "Loading details..."))

	apply(t, list, cmd)
	screen.Clear()
	lv.Render(screen, 0, 20)
	rows = screenText(screen)
	assert.True(t, containsRow(rows, "Text Changes:"))
	assert.True(t, containsRow(rows, "name.text"))
	assert.True(t, containsRow(rows, "Replaced: A with B"))
	assert.False(t, containsRow(rows, "meta.version"), "non-text keys stay out of the summary")
}

func TestListViewDetailError(t *testing.T) {
	fetcher := &stubFetcher{changes: []model.ChangeSummary{acmeChange().ChangeSummary}}
	list := newLoadedList(t, fetcher)
	screen := newTestScreen(t, 70, 10)

	apply(t, list, list.ToggleSelected())
	NewChangeListView(list, "").Render(screen, 0, 10)

	assert.True(t, containsRow(screenText(screen), view.ErrFetchDetails))
}

func TestListViewEmptyAndFailed(t *testing.T) {
	screen := newTestScreen(t, 60, 5)

	list := newLoadedList(t, &stubFetcher{})
	NewChangeListView(list, "").Render(screen, 0, 5)
	assert.Equal(t, " No changes found.", screenText(screen)[0])

	failing := &stubFetcher{fail: true}
	list = newLoadedList(t, failing)
	screen.Clear()
	NewChangeListView(list, "").Render(screen, 0, 5)
	assert.Equal(t, " "+view.ErrFetchChanges, screenText(screen)[0])
}

func TestListViewKeepsSelectionVisible(t *testing.T) {
	var changes []model.ChangeSummary
	for i := 0; i < 10; i++ {
		s := acmeChange().ChangeSummary
		s.ID = fmt.Sprint(i)
		s.Company = fmt.Sprintf("Company %d", i)
		changes = append(changes, s)
	}
	list := newLoadedList(t, &stubFetcher{changes: changes})
	lv := NewChangeListView(list, "")
	screen := newTestScreen(t, 60, 6)

	list.Select(9)
	lv.Render(screen, 0, 6)
	require.Greater(t, lv.Offset(), 0)
	assert.True(t, containsRow(screenText(screen), "▸ Company 9: v1 → v2"))

	list.Select(0)
	lv.Render(screen, 0, 6)
	assert.Equal(t, 0, lv.Offset())
	assert.Equal(t, " ▸ Company 0: v1 → v2", screenText(screen)[0])
}
