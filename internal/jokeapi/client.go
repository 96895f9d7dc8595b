// Package jokeapi is a client for the icanhazdadjoke search endpoint.
// It issues one GET per call and decodes the paginated JSON response into
// a joke.SearchPage. There are no retries and no caching.
package jokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/flemzord/dadjoke/internal/joke"
	"github.com/flemzord/dadjoke/internal/metrics"
)

const (
	// maxBodyBytes caps how much of a response is read.
	maxBodyBytes = 1 << 20
	// maxDiagnosticBytes caps the body kept inside a ProtocolError.
	maxDiagnosticBytes = 64 << 10
)

// apiResult is a single joke in a search response.
type apiResult struct {
	ID   string `json:"id"`
	Joke string `json:"joke"`
}

// apiResponse is the search response body.
type apiResponse struct {
	CurrentPage  int         `json:"current_page"`
	Limit        int         `json:"limit"`
	NextPage     int         `json:"next_page"`
	PreviousPage int         `json:"previous_page"`
	Results      []apiResult `json:"results"`
	SearchTerm   string      `json:"search_term"`
	Status       int         `json:"status"`
	TotalJokes   int         `json:"total_jokes"`
	TotalPages   int         `json:"total_pages"`
}

// Client fetches search pages.
type Client struct {
	config  Config
	client  *http.Client
	metrics *metrics.Metrics
	tracer  trace.Tracer
	logger  *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. The configured timeout
// is not applied to a client passed this way.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithMetrics records every request in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithTracer wraps every request in a span.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// WithLogger sets the logger used for request debug lines.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New validates cfg and builds a Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.defaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	timeout, _ := cfg.parsedTimeout()

	c := &Client{
		config: cfg,
		client: &http.Client{Timeout: timeout},
		tracer: noop.NewTracerProvider().Tracer(""),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchSearchPage requests one page of jokes matching term. page is 1-based.
func (c *Client) FetchSearchPage(ctx context.Context, term string, page int) (joke.SearchPage, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return joke.SearchPage{}, fmt.Errorf("jokeapi: search term is required: %w", joke.ErrInvalidArgument)
	}
	if page < 1 {
		return joke.SearchPage{}, fmt.Errorf("jokeapi: page must be >= 1, got %d: %w", page, joke.ErrInvalidArgument)
	}

	ctx, span := c.tracer.Start(ctx, "jokeapi.FetchSearchPage", trace.WithAttributes(
		attribute.String("joke.term", term),
		attribute.Int("joke.page", page),
	))
	defer span.End()

	start := time.Now()
	result, err := c.fetch(ctx, term, page)
	c.metrics.ObserveRequest(outcome(err), time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Debug("jokeapi: request failed", "term", term, "page", page, "error", err)
		return joke.SearchPage{}, err
	}

	span.SetAttributes(
		attribute.Int("joke.total_results", result.TotalResults),
		attribute.Int("joke.page_results", len(result.Results)),
	)
	c.logger.Debug("jokeapi: request done",
		"term", term,
		"page", page,
		"total", result.TotalResults,
		"pages", result.TotalPages,
		"results", len(result.Results),
		"elapsed", time.Since(start),
	)
	return result, nil
}

// fetch performs the request and decodes the body.
func (c *Client) fetch(ctx context.Context, term string, page int) (joke.SearchPage, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(term, page), nil)
	if err != nil {
		return joke.SearchPage{}, fmt.Errorf("jokeapi: creating request: %w: %w", joke.ErrInvalidArgument, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return joke.SearchPage{}, fmt.Errorf("jokeapi: sending request: %w: %w", joke.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return joke.SearchPage{}, mapHTTPError(resp.StatusCode, resp.Body)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return joke.SearchPage{}, fmt.Errorf("jokeapi: reading response: %w: %w", joke.ErrNetwork, err)
	}
	if len(body) > maxBodyBytes {
		return joke.SearchPage{}, &joke.ProtocolError{
			Body: body[:maxDiagnosticBytes],
			Err:  fmt.Errorf("response exceeds %d bytes", maxBodyBytes),
		}
	}

	return decodeSearchPage(body)
}

// searchURL builds <base>/search?term=...&page=...[&limit=...].
func (c *Client) searchURL(term string, page int) string {
	q := url.Values{}
	q.Set("term", term)
	q.Set("page", strconv.Itoa(page))
	if c.config.PageLimit > 0 {
		q.Set("limit", strconv.Itoa(c.config.PageLimit))
	}
	return c.config.BaseURL + "/search?" + q.Encode()
}

// decodeSearchPage parses a search response body. Malformed JSON yields a
// *joke.ProtocolError holding the raw body.
func decodeSearchPage(body []byte) (joke.SearchPage, error) {
	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		kept := body
		if len(kept) > maxDiagnosticBytes {
			kept = kept[:maxDiagnosticBytes]
		}
		return joke.SearchPage{}, &joke.ProtocolError{Body: kept, Err: err}
	}
	return convertResponse(apiResp), nil
}

// convertResponse maps the wire format onto joke.SearchPage.
func convertResponse(resp apiResponse) joke.SearchPage {
	page := joke.SearchPage{
		TotalResults: resp.TotalJokes,
		Limit:        resp.Limit,
		TotalPages:   resp.TotalPages,
		CurrentPage:  resp.CurrentPage,
		Results:      make([]joke.Record, len(resp.Results)),
	}
	for i, r := range resp.Results {
		page.Results[i] = joke.Record{ID: r.ID, Text: r.Joke}
	}
	return page
}

// outcome classifies err for the request counter.
func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, joke.ErrProtocol):
		return metrics.OutcomeProtocol
	case errors.Is(err, joke.ErrNetwork):
		return metrics.OutcomeNetwork
	default:
		return metrics.OutcomeInvalid
	}
}
