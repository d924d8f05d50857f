package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/policy-tracker/internal/api"
	"github.com/pstuifzand/policy-tracker/internal/model"
	"github.com/pstuifzand/policy-tracker/internal/view"
	"github.com/stretchr/testify/require"
)

func newTestScreen(t *testing.T, width, height int) *Screen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenWithTcell(sim, nil)
	require.NoError(t, err)
	sim.SetSize(width, height)
	t.Cleanup(func() { screen.Close() })
	return screen
}

// screenText returns every row of the screen with trailing blanks removed
func screenText(screen *Screen) []string {
	var rows []string
	for y := 0; y < screen.GetHeight(); y++ {
		rows = append(rows, strings.TrimRight(screen.RowText(y), " "))
	}
	return rows
}

func containsRow(rows []string, text string) bool {
	for _, r := range rows {
		if strings.Contains(r, text) {
			return true
		}
	}
	return false
}

// stubFetcher serves a fixed set of changes without a network
type stubFetcher struct {
	changes   []model.ChangeSummary
	details   map[string]*model.Change
	companies []model.Company
	fail      bool
}

func (f *stubFetcher) ListChanges(ctx context.Context, params api.ListParams) (*model.ChangePage, error) {
	if f.fail {
		return nil, errors.New("offline")
	}
	var page []model.ChangeSummary
	if params.Page == 1 {
		page = f.changes
	}
	return &model.ChangePage{Changes: page, Total: len(f.changes), Page: params.Page, Limit: params.Limit}, nil
}

func (f *stubFetcher) GetChangeDetail(ctx context.Context, id string) (*model.Change, error) {
	if f.fail {
		return nil, errors.New("offline")
	}
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return nil, &api.RequestError{Op: "getChangeDetail", StatusCode: 404}
}

func (f *stubFetcher) ListCompanies(ctx context.Context) ([]model.Company, error) {
	if f.fail {
		return nil, errors.New("offline")
	}
	return f.companies, nil
}

func acmeChange() *model.Change {
	return &model.Change{
		ChangeSummary: model.ChangeSummary{
			ID:          "1",
			Company:     "Acme",
			FromVersion: "v1",
			ToVersion:   "v2",
			Summary:     model.DiffSummary{TotalChanges: 3, Changed: 1},
		},
		Diff: model.DiffContent{Changed: model.ChangedFields{
			{Path: "name.text", Changes: []model.FieldChange{model.Replaced("A", "B", 0)}},
			{Path: "meta.version", Changes: []model.FieldChange{model.Added("2", 0)}},
		}},
	}
}

// apply runs cmd synchronously and feeds its message back into list
func apply(t *testing.T, list *view.ChangeList, cmd view.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	list.Update(cmd(context.Background()))
}
