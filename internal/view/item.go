package view

import (
	"context"

	"github.com/pstuifzand/policy-tracker/internal/model"
)

// ChangeItem is the expand/collapse state of one row of the change list.
// The detail is fetched on first expansion and kept for the life of the item.
type ChangeItem struct {
	Summary model.ChangeSummary

	fetcher  Fetcher
	expanded bool
	detail   *model.Change
	loading  bool
	err      string
}

// NewChangeItem creates a collapsed item
func NewChangeItem(summary model.ChangeSummary, fetcher Fetcher) *ChangeItem {
	return &ChangeItem{Summary: summary, fetcher: fetcher}
}

// ID returns the change identifier
func (i *ChangeItem) ID() string { return i.Summary.ID }

// Expanded reports whether the details are shown
func (i *ChangeItem) Expanded() bool { return i.expanded }

// Loading reports whether a detail fetch is in flight
func (i *ChangeItem) Loading() bool { return i.loading }

// Error returns the failure message of the last fetch, if any
func (i *ChangeItem) Error() string { return i.err }

// Detail returns the cached detail, nil until a fetch succeeded
func (i *ChangeItem) Detail() *model.Change { return i.detail }

// Toggle flips the expanded state. Expanding an item that has no detail
// and no fetch in flight starts the single detail fetch.
func (i *ChangeItem) Toggle() Cmd {
	wasExpanded := i.expanded
	i.expanded = !i.expanded

	if wasExpanded || i.detail != nil || i.loading {
		return nil
	}

	i.loading = true
	i.err = ""
	id := i.Summary.ID
	fetcher := i.fetcher
	return func(ctx context.Context) Msg {
		change, err := fetcher.GetChangeDetail(ctx, id)
		return DetailLoadedMsg{ID: id, Result: change, Err: err}
	}
}

// Update applies a detail completion. It reports whether the item changed.
func (i *ChangeItem) Update(msg DetailLoadedMsg) bool {
	if msg.ID != i.Summary.ID || !i.loading {
		return false
	}
	i.loading = false
	if msg.Err != nil || msg.Result == nil {
		i.err = ErrFetchDetails
		return true
	}
	i.detail = msg.Result
	return true
}
