// Package apitest runs an in-process change record API for tests
package apitest

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/pstuifzand/policy-tracker/internal/model"
)

//go:embed testdata/changes.json
var fixtureJSON []byte

// Fixtures returns the bundled change records, freshly decoded
func Fixtures() []model.Change {
	var changes []model.Change
	if err := json.Unmarshal(fixtureJSON, &changes); err != nil {
		panic(fmt.Sprintf("apitest: bad fixture: %v", err))
	}
	return changes
}

// Generate returns n small records for company with distinct ids and
// timestamps one day apart, newest first.
func Generate(company string, n int) []model.Change {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	changes := make([]model.Change, 0, n)
	for i := n; i > 0; i-- {
		ts := start.AddDate(0, 0, i)
		changes = append(changes, model.Change{
			ChangeSummary: model.ChangeSummary{
				ID:          fmt.Sprintf("%s_%03d", company, i),
				Company:     company,
				FromVersion: fmt.Sprintf("v%d", i-1),
				ToVersion:   fmt.Sprintf("v%d", i),
				Timestamp:   ts,
				Summary:     model.DiffSummary{TotalChanges: 1, Changed: 1},
			},
			Diff: model.DiffContent{Changed: model.ChangedFields{
				{Path: "root['body'].text", Changes: []model.FieldChange{model.Replaced("old", "new", 0)}},
			}},
		})
	}
	return changes
}

// Server serves /api/changes, /api/changes/{id} and /api/companies over
// a fixed set of records, the way the reference backend does.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	changes  []model.Change
	failures map[string]int
	requests []string
}

// NewServer starts a server over changes; call Close when done
func NewServer(changes []model.Change) *Server {
	s := &Server{
		changes:  changes,
		failures: make(map[string]int),
	}
	s.Server = httptest.NewServer(s.Router())
	return s
}

// BaseURL returns the API root to hand to a client
func (s *Server) BaseURL() string {
	return s.Server.URL + "/api"
}

// Router builds the route table
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.record)
	api.HandleFunc("/changes", s.listChanges).Methods(http.MethodGet).Name("changes")
	api.HandleFunc("/changes/{id}", s.getChange).Methods(http.MethodGet).Name("change")
	api.HandleFunc("/companies", s.listCompanies).Methods(http.MethodGet).Name("companies")
	return r
}

// Fail makes every request to the named route ("changes", "change" or
// "companies") answer with status until Recover is called.
func (s *Server) Fail(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = status
}

// Recover clears every failure set with Fail
func (s *Server) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]int)
}

// Requests returns the request URIs seen so far
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.URL.RequestURI())
		status := 0
		if route := mux.CurrentRoute(r); route != nil {
			status = s.failures[route.GetName()]
		}
		s.mu.Unlock()

		if status != 0 {
			writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listChanges(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := intParam(q.Get("page"), 1)
	limit := intParam(q.Get("limit"), 20)

	size, err := model.ParseSizeBucket(q.Get("changeSize"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	from, err := dateParam(q.Get("fromDate"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	to, err := dateParam(q.Get("toDate"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.mu.Lock()
	filtered := make([]model.ChangeSummary, 0, len(s.changes))
	for _, c := range s.changes {
		if company := q.Get("company"); company != "" && c.Company != company {
			continue
		}
		if !inBucket(size, c.Summary.TotalChanges) {
			continue
		}
		if !from.IsZero() && c.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && c.Timestamp.After(to) {
			continue
		}
		filtered = append(filtered, c.ChangeSummary)
	}
	s.mu.Unlock()

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.After(filtered[j].Timestamp)
	})

	start := (page - 1) * limit
	end := start + limit
	rows := []model.ChangeSummary{}
	if start < len(filtered) {
		if end > len(filtered) {
			end = len(filtered)
		}
		rows = filtered[start:end]
	}

	writeJSON(w, http.StatusOK, model.ChangePage{
		Changes: rows,
		Total:   len(filtered),
		Page:    page,
		Limit:   limit,
	})
}

func (s *Server) getChange(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.changes {
		if c.ID == id {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Change not found"})
}

func (s *Server) listCompanies(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	seen := make(map[string]bool)
	companies := []string{}
	for _, c := range s.changes {
		if !seen[c.Company] {
			seen[c.Company] = true
			companies = append(companies, c.Company)
		}
	}
	s.mu.Unlock()

	sort.Strings(companies)
	writeJSON(w, http.StatusOK, map[string][]string{"companies": companies})
}

// inBucket applies the thresholds shown in the size filter labels
func inBucket(size model.SizeBucket, total int) bool {
	switch size {
	case model.SizeSmall:
		return total <= 10
	case model.SizeMedium:
		return total > 10 && total <= 50
	case model.SizeLarge:
		return total > 50
	}
	return true
}

func intParam(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}

func dateParam(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
