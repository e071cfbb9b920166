// Package engine is the linkpath runtime. It wires configuration, logging
// and telemetry around a loaded graph and executes path queries against it.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/DrSkyle/linkpath/pkg/config"
	"github.com/DrSkyle/linkpath/pkg/engine/policy"
	"github.com/DrSkyle/linkpath/pkg/graph"
	"github.com/DrSkyle/linkpath/pkg/loader"
	"github.com/DrSkyle/linkpath/pkg/pathfinder"
	"github.com/DrSkyle/linkpath/pkg/storage"
	"github.com/DrSkyle/linkpath/pkg/telemetry"
	"github.com/DrSkyle/linkpath/pkg/version"
)

// ErrNotLoaded is returned by queries issued before a graph is loaded.
var ErrNotLoaded = errors.New("engine: graph not loaded")

// ErrPanic wraps a panic recovered while executing a query.
var ErrPanic = errors.New("engine: query panicked")

// Engine is the runtime core.
type Engine struct {
	// Core components.
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics *telemetry.Instruments

	// Immutable config.
	config   config.Config
	resolver storage.Resolver
	policy   policy.Policy

	// Loaded state.
	graph  *graph.Store
	finder *pathfinder.Finder
	stats  loader.Stats

	metricsHandler http.Handler
	shutdown       []func(context.Context) error
}

// Option defines a functional configuration override.
type Option func(*Engine)

// New initializes the Engine. The graph is not loaded until Load.
func New(ctx context.Context, opts ...Option) (*Engine, error) {
	// Safe defaults.
	e := &Engine{
		Logger: NewLogger(os.Stderr, false, config.DefaultLogLevel),
		Tracer: otel.Tracer("linkpath/engine"),
		config: config.Default(),
	}

	// Apply options.
	for _, opt := range opts {
		opt(e)
	}

	pol, err := policy.New(e.config.MaxDepth, e.config.Filter)
	if err != nil {
		return nil, fmt.Errorf("invalid query policy: %w", err)
	}
	e.policy = pol
	if e.graph != nil {
		e.bind()
	}
	e.resolver = storage.Resolver{S3Endpoint: e.config.S3Endpoint, Region: e.config.Region}

	// Initialize telemetry.
	if !e.config.SkipTelemetry {
		shutdown, err := telemetry.Init(ctx, version.AppName, version.Current, e.config.OtelEndpoint)
		if err != nil {
			e.Logger.Warn("Telemetry failed", "error", err)
		} else {
			e.shutdown = append(e.shutdown, shutdown)
			e.Tracer = telemetry.Tracer("linkpath/engine")
		}

		m, err := telemetry.InitMetrics(ctx, version.AppName, version.Current, e.config.Metrics, os.Stderr)
		if err != nil {
			return nil, errors.Join(err, e.Close(context.WithoutCancel(ctx)))
		}
		e.shutdown = append(e.shutdown, m.Shutdown)
		e.metricsHandler = m.Handler
	}
	metrics, err := telemetry.NewInstruments("linkpath/engine")
	if err != nil {
		return nil, err
	}
	e.Metrics = metrics

	return e, nil
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.Logger = l
		}
	}
}

// WithConfig sets raw config.
func WithConfig(cfg config.Config) Option {
	return func(e *Engine) {
		e.config = cfg
	}
}

// WithConcurrency sets the batch worker limit.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.config.Concurrency = n
		}
	}
}

// WithGraph installs an already built graph, skipping Load. The store is
// frozen if it is not already.
func WithGraph(g *graph.Store) Option {
	return func(e *Engine) {
		e.setGraph(g, loader.Stats{Vertices: g.Len(), Edges: g.EdgeCount()})
	}
}

func (e *Engine) setGraph(g *graph.Store, stats loader.Stats) {
	g.Freeze()
	e.graph = g
	e.stats = stats
}

// bind builds the query façade for the current graph and policy.
func (e *Engine) bind() {
	e.finder = pathfinder.New(e.graph, e.policy.Options(e.graph, e.Logger)...)
}

// Config returns the engine configuration.
func (e *Engine) Config() config.Config {
	return e.config
}

// Load reads the configured node and edge files and builds the graph.
func (e *Engine) Load(ctx context.Context) (loader.Stats, error) {
	ctx, span := e.Tracer.Start(ctx, "Engine.Load")
	defer span.End()

	if e.config.Nodes == "" || e.config.Edges == "" {
		return loader.Stats{}, errors.New("engine: nodes and edges locations are required")
	}

	nodes, err := e.source(ctx, e.config.Nodes)
	if err != nil {
		return loader.Stats{}, err
	}
	edges, err := e.source(ctx, e.config.Edges)
	if err != nil {
		return loader.Stats{}, err
	}

	e.Logger.Info("Loading graph", "nodes", e.config.Nodes, "edges", e.config.Edges, "strict", e.config.Strict)
	g, stats, err := loader.Load(ctx, nodes, edges, loader.Options{
		Strict:      e.config.Strict,
		Logger:      e.Logger,
		MaxReported: e.config.MaxReported,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return stats, err
	}

	span.SetAttributes(
		attribute.Int("graph.vertices", stats.Vertices),
		attribute.Int("graph.edges", stats.Edges),
		attribute.Int("graph.skipped", stats.Skipped),
	)
	e.Logger.Info("Graph loaded", "vertices", stats.Vertices, "edges", stats.Edges, "skipped", stats.Skipped)
	e.setGraph(g, stats)
	e.bind()
	return stats, nil
}

func (e *Engine) source(ctx context.Context, loc string) (loader.Source, error) {
	store, key, err := e.resolver.Resolve(ctx, loc)
	if err != nil {
		return loader.Source{}, err
	}
	return loader.Source{Store: store, Key: key}, nil
}

// Open reads loc, a local path or s3://bucket/key, through the configured
// storage.
func (e *Engine) Open(ctx context.Context, loc string) (io.ReadCloser, error) {
	store, key, err := e.resolver.Resolve(ctx, loc)
	if err != nil {
		return nil, err
	}
	return store.Open(ctx, key)
}

// Graph returns the loaded graph, or nil.
func (e *Engine) Graph() *graph.Store {
	return e.graph
}

// Stats returns the counts from the last load.
func (e *Engine) Stats() loader.Stats {
	return e.stats
}

// Finder returns the query façade over the loaded graph with the
// configured policy applied.
func (e *Engine) Finder() (*pathfinder.Finder, error) {
	if e.finder == nil {
		return nil, ErrNotLoaded
	}
	return e.finder, nil
}

// MetricsHandler serves Prometheus metrics, or is nil when another
// exporter is configured.
func (e *Engine) MetricsHandler() http.Handler {
	return e.metricsHandler
}

// Close flushes telemetry.
func (e *Engine) Close(ctx context.Context) error {
	var errs []error
	for _, fn := range e.shutdown {
		errs = append(errs, fn(ctx))
	}
	return errors.Join(errs...)
}

// recoverPanic turns a panic into ErrPanic and records it on a span.
func (e *Engine) recoverPanic(ctx context.Context, errp *error) {
	if r := recover(); r != nil {
		// Use independent context.
		_, span := e.Tracer.Start(context.WithoutCancel(ctx), "CriticalPanic")

		stack := debug.Stack()

		span.RecordError(fmt.Errorf("%v", r), trace.WithStackTrace(true))
		span.SetStatus(codes.Error, "CRITICAL FAILURE")
		span.SetAttributes(
			attribute.String("crash.stack", string(stack)),
			attribute.String("crash.reason", fmt.Sprintf("%v", r)),
		)
		span.End()

		e.Logger.Error("CRITICAL FAILURE", "error", r, "stack", string(stack))
		*errp = fmt.Errorf("%w: %v", ErrPanic, r)
	}
}
