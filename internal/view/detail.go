package view

import (
	"context"

	"github.com/pstuifzand/policy-tracker/internal/model"
	"github.com/sirupsen/logrus"
)

// DetailState is what the diff screen shows, checked in declaration order
type DetailState int

const (
	DetailLoading DetailState = iota
	DetailError
	DetailNoData
	DetailReady
)

// DiffDetail is the state of the full diff screen for one change
type DiffDetail struct {
	fetcher Fetcher
	log     logrus.FieldLogger

	id      string
	change  *model.Change
	loading bool
	err     string
	seq     int
}

// NewDiffDetail creates a detail view with nothing opened
func NewDiffDetail(fetcher Fetcher, log logrus.FieldLogger) *DiffDetail {
	if log == nil {
		log = discardLogger()
	}
	return &DiffDetail{fetcher: fetcher, log: log}
}

// Open shows the change with id. An empty id issues no request and leaves
// the view without data.
func (d *DiffDetail) Open(id string) Cmd {
	d.seq++
	d.id = id
	d.change = nil
	d.err = ""

	if id == "" {
		d.loading = false
		return nil
	}

	d.loading = true
	seq := d.seq
	fetcher := d.fetcher
	return func(ctx context.Context) Msg {
		change, err := fetcher.GetChangeDetail(ctx, id)
		return DiffLoadedMsg{Seq: seq, ID: id, Result: change, Err: err}
	}
}

// Reload refetches the opened change
func (d *DiffDetail) Reload() Cmd {
	return d.Open(d.id)
}

// Update applies a diff completion. Replies to an earlier Open are dropped.
func (d *DiffDetail) Update(msg DiffLoadedMsg) bool {
	if msg.Seq != d.seq {
		d.log.WithFields(logrus.Fields{
			"id":     msg.ID,
			"seq":    msg.Seq,
			"latest": d.seq,
		}).Debug("Dropping stale diff response")
		return false
	}

	d.loading = false
	if msg.Err != nil {
		d.log.WithError(msg.Err).WithField("id", msg.ID).Warn("Fetching diff failed")
		d.err = ErrFetchDiff
		return true
	}
	d.change = msg.Result
	return true
}

// ID returns the opened change identifier
func (d *DiffDetail) ID() string { return d.id }

// Change returns the loaded change, nil until loaded
func (d *DiffDetail) Change() *model.Change { return d.change }

// Error returns the failure message, if any
func (d *DiffDetail) Error() string { return d.err }

// State returns what should be shown
func (d *DiffDetail) State() DetailState {
	switch {
	case d.loading:
		return DetailLoading
	case d.err != "":
		return DetailError
	case d.change == nil:
		return DetailNoData
	}
	return DetailReady
}
