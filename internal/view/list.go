package view

import (
	"context"

	"github.com/pstuifzand/policy-tracker/internal/api"
	"github.com/pstuifzand/policy-tracker/internal/model"
	"github.com/sirupsen/logrus"
)

// Filters narrow down the change list. Empty fields do not filter.
type Filters struct {
	Company    string
	ChangeSize model.SizeBucket
	FromDate   string
	ToDate     string
}

// IsZero reports whether no filter is set
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// ChangeList is the paged, filtered list of change summaries together
// with the state of each listed item.
type ChangeList struct {
	fetcher  Fetcher
	log      logrus.FieldLogger
	pageSize int

	filters  Filters
	page     int
	changes  []model.ChangeSummary
	items    map[string]*ChangeItem
	loading  bool
	err      string
	total    int
	seq      int
	selected int
}

// NewChangeList creates an empty list on page 1. A pageSize below 1 uses
// DefaultPageSize and a nil log discards output.
func NewChangeList(fetcher Fetcher, pageSize int, log logrus.FieldLogger) *ChangeList {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if log == nil {
		log = discardLogger()
	}
	return &ChangeList{
		fetcher:  fetcher,
		log:      log,
		pageSize: pageSize,
		page:     1,
		items:    make(map[string]*ChangeItem),
	}
}

// Init fetches the current page
func (l *ChangeList) Init() Cmd {
	return l.fetch()
}

// SetFilters replaces the filters and refetches from page 1. Setting the
// filters that are already active does nothing and returns nil.
func (l *ChangeList) SetFilters(f Filters) Cmd {
	if f == l.filters {
		return nil
	}
	l.filters = f
	l.page = 1
	return l.fetch()
}

// SetCompany changes the company filter
func (l *ChangeList) SetCompany(company string) Cmd {
	f := l.filters
	f.Company = company
	return l.SetFilters(f)
}

// SetChangeSize changes the size bucket filter
func (l *ChangeList) SetChangeSize(size model.SizeBucket) Cmd {
	f := l.filters
	f.ChangeSize = size
	return l.SetFilters(f)
}

// SetDateRange changes the date filters
func (l *ChangeList) SetDateRange(from, to string) Cmd {
	f := l.filters
	f.FromDate = from
	f.ToDate = to
	return l.SetFilters(f)
}

// LoadMore requests the next page. The page number always advances, even
// when the previous page came back short or empty.
func (l *ChangeList) LoadMore() Cmd {
	l.page++
	return l.fetch()
}

// Reload refetches the current page
func (l *ChangeList) Reload() Cmd {
	return l.fetch()
}

// SetPageSize changes the number of changes per request and starts over
// from page 1. Sizes below 1 and the current size issue no fetch.
func (l *ChangeList) SetPageSize(n int) Cmd {
	if n < 1 || n == l.pageSize {
		return nil
	}
	l.pageSize = n
	l.page = 1
	return l.fetch()
}

// PageSize is the number of changes asked for per page
func (l *ChangeList) PageSize() int { return l.pageSize }

// CanLoadMore reports whether the load more action is offered
func (l *ChangeList) CanLoadMore() bool {
	return !l.loading && l.err == "" && len(l.changes) > 0
}

func (l *ChangeList) params() api.ListParams {
	return api.ListParams{
		Page:       l.page,
		Limit:      l.pageSize,
		Company:    l.filters.Company,
		ChangeSize: l.filters.ChangeSize,
		FromDate:   l.filters.FromDate,
		ToDate:     l.filters.ToDate,
	}
}

func (l *ChangeList) fetch() Cmd {
	l.seq++
	l.loading = true
	l.err = ""

	seq := l.seq
	params := l.params()
	fetcher := l.fetcher
	return func(ctx context.Context) Msg {
		page, err := fetcher.ListChanges(ctx, params)
		return ChangesLoadedMsg{Seq: seq, Page: params.Page, Result: page, Err: err}
	}
}

// Update applies a completion addressed to the list or one of its items.
// It reports whether anything visible changed.
func (l *ChangeList) Update(msg Msg) bool {
	switch msg := msg.(type) {
	case ChangesLoadedMsg:
		return l.applyChanges(msg)
	case DetailLoadedMsg:
		item, ok := l.items[msg.ID]
		if !ok {
			l.log.WithField("id", msg.ID).Debug("Dropping detail for a change no longer listed")
			return false
		}
		return item.Update(msg)
	}
	return false
}

func (l *ChangeList) applyChanges(msg ChangesLoadedMsg) bool {
	if msg.Seq != l.seq {
		l.log.WithFields(logrus.Fields{
			"seq":    msg.Seq,
			"latest": l.seq,
			"page":   msg.Page,
		}).Debug("Dropping stale change list response")
		return false
	}

	l.loading = false
	if msg.Err != nil || msg.Result == nil {
		l.log.WithError(msg.Err).WithField("page", msg.Page).Warn("Fetching changes failed")
		l.err = ErrFetchChanges
		return true
	}

	l.total = msg.Result.Total
	if msg.Page <= 1 {
		l.changes = append([]model.ChangeSummary(nil), msg.Result.Changes...)
	} else {
		seen := make(map[string]bool, len(l.changes))
		for _, c := range l.changes {
			seen[c.ID] = true
		}
		for _, c := range msg.Result.Changes {
			if !seen[c.ID] {
				seen[c.ID] = true
				l.changes = append(l.changes, c)
			}
		}
	}
	l.syncItems()
	return true
}

// syncItems keeps item state for identifiers still listed and drops the rest
func (l *ChangeList) syncItems() {
	items := make(map[string]*ChangeItem, len(l.changes))
	for _, c := range l.changes {
		if item, ok := l.items[c.ID]; ok {
			item.Summary = c
			items[c.ID] = item
			continue
		}
		items[c.ID] = NewChangeItem(c, l.fetcher)
	}
	l.items = items
	l.clampSelection()
}

// Filters returns the active filters
func (l *ChangeList) Filters() Filters { return l.filters }

// Page returns the current page number
func (l *ChangeList) Page() int { return l.page }

// Total returns the total match count reported by the server, 0 if unknown
func (l *ChangeList) Total() int { return l.total }

// Loading reports whether a fetch is in flight
func (l *ChangeList) Loading() bool { return l.loading }

// Error returns the failure message of the last fetch, if any
func (l *ChangeList) Error() string { return l.err }

// Changes returns the listed summaries in display order
func (l *ChangeList) Changes() []model.ChangeSummary { return l.changes }

// Len returns the number of listed changes
func (l *ChangeList) Len() int { return len(l.changes) }

// Item returns the item state of the change at index i
func (l *ChangeList) Item(i int) *ChangeItem {
	if i < 0 || i >= len(l.changes) {
		return nil
	}
	return l.items[l.changes[i].ID]
}

// ItemByID returns the item state of the change with id
func (l *ChangeList) ItemByID(id string) *ChangeItem {
	return l.items[id]
}

// Selected returns the index of the selected change
func (l *ChangeList) Selected() int { return l.selected }

// SelectedItem returns the selected item, nil for an empty list
func (l *ChangeList) SelectedItem() *ChangeItem {
	return l.Item(l.selected)
}

// Select moves the selection to index i, clamped to the list
func (l *ChangeList) Select(i int) {
	l.selected = i
	l.clampSelection()
}

// MoveSelection moves the selection by delta rows
func (l *ChangeList) MoveSelection(delta int) {
	l.Select(l.selected + delta)
}

// ToggleSelected toggles the selected item
func (l *ChangeList) ToggleSelected() Cmd {
	item := l.SelectedItem()
	if item == nil {
		return nil
	}
	return item.Toggle()
}

func (l *ChangeList) clampSelection() {
	if l.selected >= len(l.changes) {
		l.selected = len(l.changes) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}
