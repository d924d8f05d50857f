package ui

import (
	"slices"

	"github.com/pstuifzand/policy-tracker/internal/history"
)

// PromptHistory holds the lines submitted to one prompt, oldest first.
// Submitting a line again moves it to the end instead of repeating it.
type PromptHistory struct {
	entries []string
	limit   int

	pos     int    // index being shown, len(entries) when not browsing
	pending string // line typed before browsing started

	manager  *history.Manager
	filename string
}

// NewPromptHistory keeps up to limit entries in memory only
func NewPromptHistory(limit int) *PromptHistory {
	return &PromptHistory{limit: limit}
}

// LoadPromptHistory reads the entries saved in filename. On a read error
// the returned history is empty but still saves to filename.
func LoadPromptHistory(limit int, manager *history.Manager, filename string) (*PromptHistory, error) {
	h := &PromptHistory{limit: limit, manager: manager, filename: filename}
	entries, err := manager.Load(filename)
	if err != nil {
		return h, err
	}
	for _, e := range entries {
		h.push(e)
	}
	h.pos = len(h.entries)
	return h, nil
}

func (h *PromptHistory) push(line string) {
	if i := slices.Index(h.entries, line); i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
	}
	h.entries = append(h.entries, line)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}

// Add records a submitted line and stops browsing. Empty lines are ignored.
func (h *PromptHistory) Add(line string) {
	if line == "" {
		return
	}
	h.push(line)
	h.Reset()

	if h.manager != nil {
		// a failed write only loses history across restarts
		_ = h.manager.Save(h.filename, h.entries)
	}
}

// Back steps to the previous entry. current is the line being edited and
// comes back from Forward once browsing passes the newest entry.
func (h *PromptHistory) Back(current string) (string, bool) {
	if h.pos == 0 {
		return "", false
	}
	if h.pos == len(h.entries) {
		h.pending = current
	}
	h.pos--
	return h.entries[h.pos], true
}

// Forward steps to the next entry, or back to the pending line
func (h *PromptHistory) Forward() (string, bool) {
	if h.pos >= len(h.entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.entries) {
		line := h.pending
		h.pending = ""
		return line, true
	}
	return h.entries[h.pos], true
}

// Reset stops browsing
func (h *PromptHistory) Reset() {
	h.pos = len(h.entries)
	h.pending = ""
}

// Entries returns a copy of the entries, oldest first
func (h *PromptHistory) Entries() []string {
	return slices.Clone(h.entries)
}
