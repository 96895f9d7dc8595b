// Package app wires configuration, logging, metrics and tracing around the
// joke flows and exposes them to the dadjoke CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/flemzord/dadjoke/internal/config"
	"github.com/flemzord/dadjoke/internal/joke"
	"github.com/flemzord/dadjoke/internal/jokeapi"
	"github.com/flemzord/dadjoke/internal/leaderboard"
	"github.com/flemzord/dadjoke/internal/metrics"
	"github.com/flemzord/dadjoke/internal/record"
	"github.com/flemzord/dadjoke/internal/sampler"
	"github.com/flemzord/dadjoke/internal/telemetry"
)

// Params configures one CLI invocation.
type Params struct {
	// ConfigPath is an explicit path to the YAML configuration file. It must
	// exist. If empty, config.ResolvePath is tried and defaults apply when
	// nothing is found.
	ConfigPath string

	// StorePath overrides the record file from config and environment.
	StorePath string

	// Verbose forces debug logging.
	Verbose bool

	// Version is injected at build time via ldflags.
	Version string

	// Stdout receives user-facing output; Stderr receives logs.
	Stdout io.Writer
	Stderr io.Writer

	// LookupEnv reads DADJOKE_* overrides. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// IntN replaces the sampler's random source.
	IntN func(n int) int
}

// App holds the components of one invocation.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	out       io.Writer
	sampler   *sampler.Sampler
	store     *record.FileStore
	metrics   *metrics.Metrics
	telemetry *telemetry.Provider
	tracer    trace.Tracer
}

// LoadConfig resolves, loads and overlays the configuration for params,
// and returns it with the path it came from ("" for built-in defaults).
func LoadConfig(params Params) (*config.Config, string, error) {
	cfgPath := params.ConfigPath
	if cfgPath == "" {
		if resolved, ok := config.ResolvePath(); ok {
			cfgPath = resolved
		}
	}

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return nil, "", err
		}
		cfg = loaded
	}

	lookup := params.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	config.ApplyEnv(cfg, lookup)

	if params.StorePath != "" {
		cfg.Store.Path = params.StorePath
	}
	if params.Verbose {
		cfg.Log.Level = "debug"
	}

	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}
	return cfg, cfgPath, nil
}

// New loads configuration and builds every component.
func New(ctx context.Context, params Params) (*App, error) {
	cfg, cfgPath, err := LoadConfig(params)
	if err != nil {
		return nil, err
	}

	stdout, stderr := params.Stdout, params.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: level,
	})).With("run_id", uuid.NewString())

	tp, err := telemetry.Setup(ctx, telemetry.Config{
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		ServiceName:    "dadjoke",
		ServiceVersion: params.Version,
	})
	if err != nil {
		return nil, err
	}
	tracer := tp.Tracer()
	m := metrics.New(cfg.Metrics.Textfile)

	client, err := jokeapi.New(jokeapi.Config{
		BaseURL:   cfg.BaseURL(),
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
		PageLimit: cfg.API.PageLimit,
	},
		jokeapi.WithMetrics(m),
		jokeapi.WithTracer(tracer),
		jokeapi.WithLogger(logger),
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	samplerOpts := []sampler.Option{
		sampler.WithTracer(tracer),
		sampler.WithLogger(logger),
	}
	if params.IntN != nil {
		samplerOpts = append(samplerOpts, sampler.WithIntN(params.IntN))
	}

	a := &App{
		cfg:       cfg,
		logger:    logger,
		out:       stdout,
		sampler:   sampler.New(client, samplerOpts...),
		store:     record.NewFileStore(cfg.StorePath()),
		metrics:   m,
		telemetry: tp,
		tracer:    tracer,
	}

	logger.Debug("app: ready",
		"config", cfgPath,
		"api", cfg.BaseURL(),
		"store", a.store.Path(),
	)
	return a, nil
}

// SearchTerm picks a random joke for term, records it, and prints it.
func (a *App) SearchTerm(ctx context.Context, term string) (err error) {
	ctx, span := a.tracer.Start(ctx, "search-term", trace.WithAttributes(
		attribute.String("joke.term", term),
	))
	defer func() { endSpan(span, err) }()

	term = strings.TrimSpace(term)
	if term == "" {
		return fmt.Errorf("app: %w: %w", ErrMissingTerm, joke.ErrInvalidArgument)
	}

	rec, err := a.sampler.PickRandom(ctx, term)
	if err != nil {
		a.logFailure("search-term", err)
		if errors.Is(err, joke.ErrNotFound) {
			return fmt.Errorf("%w: %w", ErrNoJokes, err)
		}
		return err
	}

	if err := a.appendRecord(ctx, rec); err != nil {
		return err
	}

	_, err = fmt.Fprintf(a.out, "Random joke: %s\n", rec.Text)
	return err
}

func (a *App) appendRecord(ctx context.Context, rec joke.Record) (err error) {
	_, span := a.tracer.Start(ctx, "record.Append", trace.WithAttributes(
		attribute.String("joke.id", rec.ID),
	))
	defer func() { endSpan(span, err) }()

	if err := a.store.Append(rec); err != nil {
		a.logFailure("append", err)
		return err
	}
	a.metrics.RecordAppended()
	a.logger.Debug("app: joke recorded", "id", rec.ID, "store", a.store.Path())
	return nil
}

// Leaderboard prints the most popular recorded joke. When top is above 1,
// a ranked list of up to top entries follows.
func (a *App) Leaderboard(ctx context.Context, top int) (err error) {
	_, span := a.tracer.Start(ctx, "leaderboard", trace.WithAttributes(
		attribute.Int("joke.top", top),
	))
	defer func() { endSpan(span, err) }()

	records, err := a.store.LoadAll()
	if err != nil {
		a.logFailure("leaderboard", err)
		return err
	}
	a.metrics.SetStoreRecords(len(records))
	span.SetAttributes(attribute.Int("joke.records", len(records)))

	best, err := leaderboard.MostPopular(records)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEmptyStore, err)
	}

	if _, err := fmt.Fprintf(a.out, "The most popular joke: %s\n", best.Text); err != nil {
		return err
	}
	if top <= 1 {
		return nil
	}
	for i, e := range leaderboard.Top(records, top) {
		if _, err := fmt.Fprintf(a.out, "%d. (%dx) %s\n", i+1, e.Count, e.Record.Text); err != nil {
			return err
		}
	}
	return nil
}

// StorePath returns the record file in use.
func (a *App) StorePath() string {
	return a.store.Path()
}

// Close flushes metrics and pending spans.
func (a *App) Close(ctx context.Context) error {
	return errors.Join(a.metrics.Flush(), a.telemetry.Shutdown(ctx))
}

// logFailure adds diagnostics that do not belong in the user-facing line.
func (a *App) logFailure(op string, err error) {
	var pe *joke.ProtocolError
	if errors.As(err, &pe) {
		a.logger.Debug("app: unreadable API response", "op", op, "body", pe.Snippet(512))
		return
	}
	a.logger.Debug("app: operation failed", "op", op, "error", err)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
