// Package mockapi serves the settings REST API from memory for tests.
//
// Each Server owns its record set; tests construct their own instance and
// Reset it between cases instead of sharing process-wide state.
package mockapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/me/jsonsettings/internal/config"
	"github.com/me/jsonsettings/internal/logging"
	"github.com/me/jsonsettings/internal/server"
	"github.com/me/jsonsettings/internal/store"
	"github.com/me/jsonsettings/pkg/jsonvalue"
	"github.com/me/jsonsettings/pkg/model"
)

// Fixture ids of DefaultSeed.
const (
	ThemeID    = "550e8400-e29b-41d4-a716-446655440000"
	LanguageID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

// DefaultSeed returns the two fixture settings every test starts from.
func DefaultSeed() []model.Setting {
	at := func(hour int) time.Time { return time.Date(2025, 1, 19, hour, 0, 0, 0, time.UTC) }
	return []model.Setting{
		{
			ID:        ThemeID,
			Data:      jsonvalue.MustParse(`{"theme":"dark","notifications":true}`),
			CreatedAt: at(10),
			UpdatedAt: at(10),
		},
		{
			ID:        LanguageID,
			Data:      jsonvalue.MustParse(`{"language":"en","fontSize":14}`),
			CreatedAt: at(11),
			UpdatedAt: at(11),
		},
	}
}

// Server is an httptest server running the real API router over a
// MemoryStore.
type Server struct {
	ts    *httptest.Server
	store *store.MemoryStore
	api   http.Handler

	mu       sync.Mutex
	seed     []model.Setting
	requests []string
	failures map[string]int
}

// New starts a Server seeded with seed, or with DefaultSeed when no
// settings are given.
func New(seed ...model.Setting) *Server {
	if len(seed) == 0 {
		seed = DefaultSeed()
	}
	logger := logging.Discard()
	st := store.NewMemoryStore(store.WithMemoryLogger(logger))

	s := &Server{
		store:    st,
		api:      server.New(config.Defaults().Server, st, logger),
		failures: make(map[string]int),
	}
	s.Seed(seed...)
	s.ts = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// URL returns the API base URL, ending in /api.
func (s *Server) URL() string {
	return s.ts.URL + "/api"
}

// Close shuts the server down.
func (s *Server) Close() {
	s.ts.Close()
}

// Seed replaces the seed and resets the server to it. Seed with no
// arguments empties the record set.
func (s *Server) Seed(settings ...model.Setting) {
	s.mu.Lock()
	s.seed = append([]model.Setting(nil), settings...)
	s.mu.Unlock()
	s.Reset()
}

// Reset restores the seeded records and clears the request log and any
// pending failures.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Reset(s.seed)
	s.requests = nil
	clear(s.failures)
}

// Len returns the number of stored settings.
func (s *Server) Len() int {
	return s.store.Len()
}

// Requests returns the recorded request log as "METHOD /path" entries.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// Count returns the number of recorded requests with the given method.
func (s *Server) Count(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, req := range s.requests {
		if strings.HasPrefix(req, method+" ") {
			n++
		}
	}
	return n
}

// FailNext makes the next request with method fail with status.
func (s *Server) FailNext(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = status
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.Method+" "+r.URL.Path)
	status, fail := s.failures[r.Method]
	if fail {
		delete(s.failures, r.Method)
	}
	s.mu.Unlock()

	if fail {
		writeFailure(w, status)
		return
	}
	s.api.ServeHTTP(w, r)
}

func writeFailure(w http.ResponseWriter, status int) {
	code := model.ErrInternal
	switch status {
	case http.StatusNotFound:
		code = model.ErrNotFound
	case http.StatusBadRequest:
		code = model.ErrValidation
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: &model.APIError{
		Code:    code,
		Message: "injected failure: " + http.StatusText(status),
	}})
}
