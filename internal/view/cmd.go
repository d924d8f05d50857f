// Package view holds the state of the change list, its items and the diff
// detail screen. Nothing here touches the terminal or the network directly:
// operations return a Cmd that the caller runs off the event loop, and the
// Msg it produces is fed back through Update on the event loop.
package view

import (
	"context"

	"github.com/pstuifzand/policy-tracker/internal/api"
	"github.com/pstuifzand/policy-tracker/internal/model"
	"github.com/sirupsen/logrus"
)

// User-facing failure messages
const (
	ErrFetchChanges = "Failed to fetch changes. Please try again."
	ErrFetchDetails = "Failed to fetch change details. Please try again."
	ErrFetchDiff    = "Failed to fetch diff. Please try again."
	ErrFetchCompany = "Failed to fetch companies. Please try again."
	NoDiffData      = "No diff data available."
)

// DefaultPageSize is the number of changes requested per page
const DefaultPageSize = 20

// Msg is the completion of a Cmd
type Msg interface{}

// Cmd is a unit of blocking work; its result is applied on the event loop
type Cmd func(ctx context.Context) Msg

// Fetcher is the subset of the API client the views depend on
type Fetcher interface {
	ListChanges(ctx context.Context, params api.ListParams) (*model.ChangePage, error)
	GetChangeDetail(ctx context.Context, id string) (*model.Change, error)
	ListCompanies(ctx context.Context) ([]model.Company, error)
}

// ChangesLoadedMsg completes a change list fetch
type ChangesLoadedMsg struct {
	Seq    int
	Page   int
	Result *model.ChangePage
	Err    error
}

// DetailLoadedMsg completes a change item detail fetch
type DetailLoadedMsg struct {
	ID     string
	Result *model.Change
	Err    error
}

// DiffLoadedMsg completes a diff detail fetch
type DiffLoadedMsg struct {
	Seq    int
	ID     string
	Result *model.Change
	Err    error
}

// CompaniesLoadedMsg completes a company list fetch
type CompaniesLoadedMsg struct {
	Result []model.Company
	Err    error
}

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}
