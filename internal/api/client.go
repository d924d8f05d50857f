// Package api is the HTTP client of the change record service
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pstuifzand/policy-tracker/internal/model"
	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is where the reference backend serves its API
const DefaultBaseURL = "http://localhost:5000/api"

const (
	opListChanges     = "listChanges"
	opGetChangeDetail = "getChangeDetail"
	opListCompanies   = "listCompanies"
)

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the change record API. It keeps no state between calls:
// every operation issues a fresh request.
type Client struct {
	baseURL    string
	httpClient httpClient
	log        *logrus.Logger
}

// NewClient creates a client for baseURL. A nil httpClient uses
// http.DefaultClient and a nil logger discards output.
func NewClient(baseURL string, client httpClient, log *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.PanicLevel)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		log:        log,
	}
}

// BaseURL returns the API root the client sends requests to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListChanges fetches one page of change summaries
func (c *Client) ListChanges(ctx context.Context, params ListParams) (*model.ChangePage, error) {
	endpoint := c.baseURL + "/changes"
	if q := params.Query(); len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var page model.ChangePage
	if err := c.get(ctx, opListChanges, endpoint, &page); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, &MalformedResponseError{Op: opListChanges, Err: err}
	}
	return &page, nil
}

// GetChangeDetail fetches a change record with its full diff
func (c *Client) GetChangeDetail(ctx context.Context, id string) (*model.Change, error) {
	if id == "" {
		return nil, &RequestError{Op: opGetChangeDetail, Err: errors.New("empty change id")}
	}
	endpoint := c.baseURL + "/changes/" + url.PathEscape(id)

	var change model.Change
	if err := c.get(ctx, opGetChangeDetail, endpoint, &change); err != nil {
		return nil, err
	}
	if err := change.Validate(); err != nil {
		return nil, &MalformedResponseError{Op: opGetChangeDetail, Err: err}
	}
	return &change, nil
}

// ListCompanies fetches the tracked companies
func (c *Client) ListCompanies(ctx context.Context) ([]model.Company, error) {
	var list model.CompanyList
	if err := c.get(ctx, opListCompanies, c.baseURL+"/companies", &list); err != nil {
		return nil, err
	}
	for i, company := range list {
		if company.Name == "" {
			return nil, &MalformedResponseError{Op: opListCompanies, Err: fmt.Errorf("companies[%d] has no name", i)}
		}
	}
	return list, nil
}

// get performs a GET request and decodes a 2xx JSON body into out
func (c *Client) get(ctx context.Context, op, endpoint string, out any) error {
	requestID := uuid.NewString()
	entry := c.log.WithFields(logrus.Fields{
		"op":         op,
		"request_id": requestID,
		"url":        endpoint,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	entry.Debug("Sending request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		entry.WithError(err).Error("Request failed")
		return &RequestError{Op: op, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	entry = entry.WithField("status", resp.StatusCode)
	if resp.StatusCode/100 != 2 {
		entry.Error("Request returned unsuccessful status")
		return &RequestError{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		entry.WithError(err).Error("Failed to decode response")
		return &MalformedResponseError{Op: op, Err: err}
	}
	entry.Debug("Request completed")
	return nil
}
