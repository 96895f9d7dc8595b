// Package sampler turns a paginated, term-filtered search into a uniform
// random pick over every match.
//
// The first page's metadata gives the total match count. A global rank is
// drawn uniformly from [0, total) and translated into a page and an index
// on that page, so each match is equally likely regardless of how the API
// splits results into pages. At most two requests are made; a rank that
// lands on the first page reuses the response already in hand.
package sampler

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/flemzord/dadjoke/internal/joke"
)

// PageFetcher fetches one 1-based page of search results.
type PageFetcher interface {
	FetchSearchPage(ctx context.Context, term string, page int) (joke.SearchPage, error)
}

// Sampler picks random jokes through a PageFetcher.
type Sampler struct {
	fetcher PageFetcher
	intN    func(n int) int
	tracer  trace.Tracer
	logger  *slog.Logger
}

// Option customizes a Sampler.
type Option func(*Sampler)

// WithIntN replaces the random source. f must return a value in [0, n).
func WithIntN(f func(n int) int) Option {
	return func(s *Sampler) { s.intN = f }
}

// WithTracer wraps each pick in a span.
func WithTracer(t trace.Tracer) Option {
	return func(s *Sampler) { s.tracer = t }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sampler) { s.logger = l }
}

// New returns a Sampler backed by f and math/rand/v2.
func New(f PageFetcher, opts ...Option) *Sampler {
	s := &Sampler{
		fetcher: f,
		intN:    rand.IntN,
		tracer:  noop.NewTracerProvider().Tracer(""),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PickRandom returns one joke chosen uniformly among all matches for term.
// It fails with joke.ErrNotFound when nothing matches and with
// joke.ErrIndexOutOfRange when the API's counts disagree with its pages.
func (s *Sampler) PickRandom(ctx context.Context, term string) (joke.Record, error) {
	ctx, span := s.tracer.Start(ctx, "sampler.PickRandom", trace.WithAttributes(
		attribute.String("joke.term", term),
	))
	defer span.End()

	rec, err := s.pick(ctx, span, term)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return joke.Record{}, err
	}
	span.SetAttributes(attribute.String("joke.id", rec.ID))
	return rec, nil
}

func (s *Sampler) pick(ctx context.Context, span trace.Span, term string) (joke.Record, error) {
	first, err := s.fetcher.FetchSearchPage(ctx, term, 1)
	if err != nil {
		return joke.Record{}, err
	}

	if first.TotalResults <= 0 {
		return joke.Record{}, fmt.Errorf("sampler: no jokes matched %q: %w", term, joke.ErrNotFound)
	}

	limit := first.Limit
	if limit <= 0 {
		limit = len(first.Results)
	}

	rank := s.intN(first.TotalResults)
	page, index, err := Locate(rank, first.TotalResults, limit, first.TotalPages)
	if err != nil {
		return joke.Record{}, err
	}

	span.SetAttributes(
		attribute.Int("joke.total_results", first.TotalResults),
		attribute.Int("joke.rank", rank),
		attribute.Int("joke.target_page", page),
	)
	s.logger.Debug("sampler: rank drawn",
		"term", term,
		"total", first.TotalResults,
		"rank", rank,
		"page", page,
		"index", index,
	)

	target := first
	if page != 1 {
		target, err = s.fetcher.FetchSearchPage(ctx, term, page)
		if err != nil {
			return joke.Record{}, err
		}
	}

	if index >= len(target.Results) {
		return joke.Record{}, fmt.Errorf(
			"sampler: index %d on page %d but the page holds %d results (total %d): %w",
			index, page, len(target.Results), first.TotalResults, joke.ErrIndexOutOfRange,
		)
	}
	return target.Results[index], nil
}

// Locate maps a 0-based global rank onto a 1-based page and a 0-based
// index within that page. A single-page result set always resolves to
// page 1, whatever the limit says.
func Locate(rank, totalResults, limit, totalPages int) (page, index int, err error) {
	if rank < 0 || rank >= totalResults {
		return 0, 0, fmt.Errorf("sampler: rank %d outside [0, %d): %w", rank, totalResults, joke.ErrIndexOutOfRange)
	}
	if totalPages <= 1 {
		return 1, rank, nil
	}
	if limit <= 0 {
		return 0, 0, fmt.Errorf("sampler: %d pages reported with a page limit of %d: %w", totalPages, limit, joke.ErrIndexOutOfRange)
	}
	return rank/limit + 1, rank % limit, nil
}
