// Package jokeapitest provides an in-process fake of the joke search API.
package jokeapitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/flemzord/dadjoke/internal/joke"
)

// DefaultLimit matches the page size of the public API.
const DefaultLimit = 20

// Request is one call received by the fake.
type Request struct {
	Term   string
	Page   int
	Limit  string
	Accept string
}

// Server serves GET /search over a fixed joke list. Matching is a
// case-insensitive substring test on the joke text.
// All methods are safe for concurrent use.
type Server struct {
	*httptest.Server

	jokes []joke.Record
	limit int

	// Set through options.
	rawBody       string
	status        int
	totalOverride int

	mu       sync.Mutex
	requests []Request
}

// Option customizes the fake.
type Option func(*Server)

// WithLimit sets the page size.
func WithLimit(n int) Option {
	return func(s *Server) { s.limit = n }
}

// WithRawBody makes every search answer 200 with body verbatim.
func WithRawBody(body string) Option {
	return func(s *Server) { s.rawBody = body }
}

// WithStatus makes every search answer with the given status and a JSON
// error body.
func WithStatus(code int) Option {
	return func(s *Server) { s.status = code }
}

// WithTotalOverride reports n as total_jokes regardless of the real match
// count, to simulate metadata that disagrees with page contents.
func WithTotalOverride(n int) Option {
	return func(s *Server) { s.totalOverride = n }
}

// NewServer starts the fake and registers its cleanup on t.
func NewServer(t testing.TB, jokes []joke.Record, opts ...Option) *Server {
	t.Helper()

	s := &Server{jokes: jokes, limit: DefaultLimit}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/search", s.handleSearch)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Requests returns a copy of the calls received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Term:   q.Get("term"),
		Page:   page,
		Limit:  q.Get("limit"),
		Accept: r.Header.Get("Accept"),
	})
	s.mu.Unlock()

	if s.status != 0 {
		writeJSON(w, s.status, map[string]any{
			"status":  s.status,
			"message": http.StatusText(s.status),
		})
		return
	}
	if s.rawBody != "" {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(s.rawBody))
		return
	}

	limit := s.limit
	if l, err := strconv.Atoi(q.Get("limit")); err == nil && l > 0 {
		limit = l
	}

	matches := s.match(q.Get("term"))
	total := len(matches)
	if s.totalOverride != 0 {
		total = s.totalOverride
	}
	pages := (total + limit - 1) / limit
	if pages == 0 {
		pages = 1
	}

	results := []map[string]string{}
	from := (page - 1) * limit
	for i := from; i < from+limit && i < len(matches); i++ {
		results = append(results, map[string]string{
			"id":   matches[i].ID,
			"joke": matches[i].Text,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"current_page":  page,
		"limit":         limit,
		"next_page":     min(page+1, pages),
		"previous_page": max(page-1, 1),
		"results":       results,
		"search_term":   q.Get("term"),
		"status":        http.StatusOK,
		"total_jokes":   total,
		"total_pages":   pages,
	})
}

func (s *Server) match(term string) []joke.Record {
	term = strings.ToLower(term)
	var out []joke.Record
	for _, j := range s.jokes {
		if strings.Contains(strings.ToLower(j.Text), term) {
			out = append(out, j)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Jokes builds n records whose text contains term, with ids "id-0".."id-n-1".
func Jokes(term string, n int) []joke.Record {
	out := make([]joke.Record, n)
	for i := range out {
		id := "id-" + strconv.Itoa(i)
		out[i] = joke.Record{ID: id, Text: "joke " + id + " about " + term}
	}
	return out
}
