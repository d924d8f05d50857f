package view

import (
	"context"
	"errors"

	"github.com/pstuifzand/policy-tracker/internal/api"
	"github.com/pstuifzand/policy-tracker/internal/model"
)

var errBoom = errors.New("boom")

// fakeFetcher answers from in-memory pages and records every call
type fakeFetcher struct {
	pages      map[int][]model.ChangeSummary
	details    map[string]*model.Change
	companies  []model.Company
	listErr    error
	detailErr  error
	companyErr error

	listCalls    []api.ListParams
	detailCalls  []string
	companyCalls int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages:   make(map[int][]model.ChangeSummary),
		details: make(map[string]*model.Change),
	}
}

func (f *fakeFetcher) ListChanges(ctx context.Context, params api.ListParams) (*model.ChangePage, error) {
	f.listCalls = append(f.listCalls, params)
	if f.listErr != nil {
		return nil, f.listErr
	}
	changes := f.pages[params.Page]
	if changes == nil {
		changes = []model.ChangeSummary{}
	}
	return &model.ChangePage{Changes: changes, Page: params.Page, Limit: params.Limit}, nil
}

func (f *fakeFetcher) GetChangeDetail(ctx context.Context, id string) (*model.Change, error) {
	f.detailCalls = append(f.detailCalls, id)
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	change, ok := f.details[id]
	if !ok {
		return nil, &api.RequestError{Op: "getChangeDetail", StatusCode: 404}
	}
	return change, nil
}

func (f *fakeFetcher) ListCompanies(ctx context.Context) ([]model.Company, error) {
	f.companyCalls++
	if f.companyErr != nil {
		return nil, f.companyErr
	}
	return f.companies, nil
}

func summary(id string) model.ChangeSummary {
	return model.ChangeSummary{
		ID:          id,
		Company:     "Acme",
		FromVersion: "v1",
		ToVersion:   "v2",
		Summary:     model.DiffSummary{TotalChanges: 3},
	}
}

func summaries(ids ...string) []model.ChangeSummary {
	var result []model.ChangeSummary
	for _, id := range ids {
		result = append(result, summary(id))
	}
	return result
}

func detail(id string) *model.Change {
	return &model.Change{
		ChangeSummary: summary(id),
		Diff: model.DiffContent{Changed: model.ChangedFields{
			{Path: "name.text", Changes: []model.FieldChange{model.Replaced("A", "B", 0)}},
		}},
	}
}

func run(cmd Cmd) Msg {
	if cmd == nil {
		panic("expected a command")
	}
	return cmd(context.Background())
}
