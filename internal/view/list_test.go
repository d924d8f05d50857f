package view

import (
	"testing"

	"github.com/pstuifzand/policy-tracker/internal/api"
	"github.com/pstuifzand/policy-tracker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(l *ChangeList) []string {
	var result []string
	for _, c := range l.Changes() {
		result = append(result, c.ID)
	}
	return result
}

func TestInitFetchesFirstPage(t *testing.T) {
	f := newFakeFetcher()
	f.pages[1] = summaries("a", "b")
	l := NewChangeList(f, 0, nil)

	cmd := l.Init()
	assert.True(t, l.Loading())
	assert.False(t, l.CanLoadMore())

	assert.True(t, l.Update(run(cmd)))
	assert.False(t, l.Loading())
	assert.Equal(t, []string{"a", "b"}, ids(l))
	assert.True(t, l.CanLoadMore())
	require.Len(t, f.listCalls, 1)
	assert.Equal(t, api.ListParams{Page: 1, Limit: DefaultPageSize}, f.listCalls[0])
}

func TestLoadMoreAppendsAndDedupes(t *testing.T) {
	f := newFakeFetcher()
	f.pages[1] = summaries("a", "b")
	f.pages[2] = summaries("b", "c")
	l := NewChangeList(f, 2, nil)

	l.Update(run(l.Init()))
	l.Update(run(l.LoadMore()))
	assert.Equal(t, 2, l.Page())
	assert.Equal(t, []string{"a", "b", "c"}, ids(l))

	// An empty page still advances the page number
	l.Update(run(l.LoadMore()))
	assert.Equal(t, 3, l.Page())
	assert.Equal(t, []string{"a", "b", "c"}, ids(l))
	assert.Equal(t, 3, f.listCalls[2].Page)
}

func TestLoadMoreOnEmptyList(t *testing.T) {
	f := newFakeFetcher()
	l := NewChangeList(f, 0, nil)
	l.Update(run(l.Init()))
	assert.False(t, l.CanLoadMore())

	l.Update(run(l.LoadMore()))
	assert.Equal(t, 2, l.Page())
	assert.Empty(t, l.Changes())
}

func TestSetFiltersResetsPage(t *testing.T) {
	f := newFakeFetcher()
	f.pages[1] = summaries("a")
	f.pages[2] = summaries("b")
	l := NewChangeList(f, 0, nil)

	l.Update(run(l.Init()))
	l.Update(run(l.LoadMore()))
	require.Equal(t, []string{"a", "b"}, ids(l))

	cmd := l.SetCompany("Acme")
	require.NotNil(t, cmd)
	assert.Equal(t, 1, l.Page())
	l.Update(run(cmd))

	last := f.listCalls[len(f.listCalls)-1]
	assert.Equal(t, 1, last.Page)
	assert.Equal(t, "Acme", last.Company)
	assert.Equal(t, []string{"a"}, ids(l))
}

func TestSetPageSizeStartsOver(t *testing.T) {
	f := newFakeFetcher()
	f.pages[1] = summaries("a")
	f.pages[2] = summaries("b")
	l := NewChangeList(f, 0, nil)
	l.Update(run(l.Init()))
	l.Update(run(l.LoadMore()))

	assert.Nil(t, l.SetPageSize(0))
	assert.Nil(t, l.SetPageSize(DefaultPageSize))

	cmd := l.SetPageSize(50)
	require.NotNil(t, cmd)
	l.Update(run(cmd))
	assert.Equal(t, 50, l.PageSize())
	assert.Equal(t, api.ListParams{Page: 1, Limit: 50}, f.listCalls[len(f.listCalls)-1])
	assert.Equal(t, []string{"a"}, ids(l))
}

func TestIdenticalFiltersDoNotFetch(t *testing.T) {
	f := newFakeFetcher()
	l := NewChangeList(f, 0, nil)
	l.Update(run(l.Init()))

	assert.Nil(t, l.SetFilters(Filters{}))
	assert.NotNil(t, l.SetChangeSize(model.SizeLarge))
	assert.Nil(t, l.SetChangeSize(model.SizeLarge))
	assert.NotNil(t, l.SetDateRange("2024-01-01", ""))
	assert.Nil(t, l.SetDateRange("2024-01-01", ""))
	assert.Equal(t, Filters{ChangeSize: model.SizeLarge, FromDate: "2024-01-01"}, l.Filters())
}

func TestFetchFailureKeepsChanges(t *testing.T) {
	f := newFakeFetcher()
	f.pages[1] = summaries("a")
	l := NewChangeList(f, 0, nil)
	l.Update(run(l.Init()))

	f.listErr = errBoom
	l.Update(run(l.LoadMore()))
	assert.Equal(t, ErrFetchChanges, l.Error())
	assert.Equal(t, []string{"a"}, ids(l))
	assert.False(t, l.CanLoadMore())

	// Starting a new fetch clears the error
	f.listErr = nil
	cmd := l.Reload()
	assert.Empty(t, l.Error())
	l.Update(run(cmd))
	assert.Empty(t, l.Error())
}

func TestStaleResponsesAreDropped(t *testing.T) {
	f := newFakeFetcher()
	f.pages[1] = summaries("a")
	l := NewChangeList(f, 0, nil)

	first := l.Init()
	second := l.SetCompany("Globex")

	firstMsg := run(first)
	f.pages[1] = summaries("g")
	secondMsg := run(second)

	assert.True(t, l.Update(secondMsg))
	assert.False(t, l.Update(firstMsg))
	assert.Equal(t, []string{"g"}, ids(l))
	assert.False(t, l.Loading())
}

func TestStaleResponseKeepsLoading(t *testing.T) {
	f := newFakeFetcher()
	l := NewChangeList(f, 0, nil)

	first := l.Init()
	_ = l.Reload()
	assert.False(t, l.Update(run(first)))
	assert.True(t, l.Loading())
}

func TestItemStateSurvivesWhileListed(t *testing.T) {
	f := newFakeFetcher()
	f.pages[1] = summaries("a", "b")
	f.details["a"] = detail("a")
	l := NewChangeList(f, 0, nil)
	l.Update(run(l.Init()))

	l.Update(run(l.ToggleSelected()))
	require.NotNil(t, l.ItemByID("a").Detail())

	// Reloading with "a" still present keeps its cached detail
	l.Update(run(l.Reload()))
	assert.True(t, l.ItemByID("a").Expanded())
	assert.NotNil(t, l.ItemByID("a").Detail())

	// Once "a" leaves the list its state is discarded
	f.pages[1] = summaries("b")
	l.Update(run(l.Reload()))
	assert.Nil(t, l.ItemByID("a"))

	f.pages[1] = summaries("a", "b")
	l.Update(run(l.Reload()))
	assert.False(t, l.ItemByID("a").Expanded())
	assert.Nil(t, l.ItemByID("a").Detail())
}

func TestDetailForRemovedItemIsDropped(t *testing.T) {
	f := newFakeFetcher()
	f.pages[1] = summaries("a")
	f.details["a"] = detail("a")
	l := NewChangeList(f, 0, nil)
	l.Update(run(l.Init()))

	toggle := l.ToggleSelected()
	f.pages[1] = summaries("b")
	l.Update(run(l.Reload()))

	assert.False(t, l.Update(run(toggle)))
}

func TestSelection(t *testing.T) {
	f := newFakeFetcher()
	f.pages[1] = summaries("a", "b", "c")
	l := NewChangeList(f, 0, nil)
	assert.Nil(t, l.SelectedItem())
	assert.Nil(t, l.ToggleSelected())

	l.Update(run(l.Init()))
	l.MoveSelection(1)
	assert.Equal(t, "b", l.SelectedItem().ID())
	l.MoveSelection(10)
	assert.Equal(t, 2, l.Selected())
	l.MoveSelection(-10)
	assert.Equal(t, 0, l.Selected())

	l.Select(2)
	f.pages[1] = summaries("a")
	l.Update(run(l.Reload()))
	assert.Equal(t, 0, l.Selected())
}
