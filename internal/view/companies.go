package view

import (
	"context"

	"github.com/pstuifzand/policy-tracker/internal/model"
)

// Companies is the lazily loaded list of tracked companies
type Companies struct {
	fetcher Fetcher
	names   []string
	loaded  bool
	loading bool
	err     string
}

// NewCompanies creates an unloaded company list
func NewCompanies(fetcher Fetcher) *Companies {
	return &Companies{fetcher: fetcher}
}

// Load fetches the companies unless they are loaded or loading
func (c *Companies) Load() Cmd {
	if c.loaded || c.loading {
		return nil
	}
	c.loading = true
	c.err = ""
	fetcher := c.fetcher
	return func(ctx context.Context) Msg {
		companies, err := fetcher.ListCompanies(ctx)
		return CompaniesLoadedMsg{Result: companies, Err: err}
	}
}

// Update applies a company list completion
func (c *Companies) Update(msg CompaniesLoadedMsg) bool {
	if !c.loading {
		return false
	}
	c.loading = false
	if msg.Err != nil {
		c.err = ErrFetchCompany
		return true
	}
	c.names = model.CompanyList(msg.Result).Names()
	c.loaded = true
	return true
}

// Names returns the loaded company names
func (c *Companies) Names() []string { return c.names }

// Loading reports whether a fetch is in flight
func (c *Companies) Loading() bool { return c.loading }

// Error returns the failure message of the last fetch, if any
func (c *Companies) Error() string { return c.err }
