package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/DrSkyle/linkpath/pkg/batch"
	"github.com/DrSkyle/linkpath/pkg/display"
	"github.com/DrSkyle/linkpath/pkg/engine/report"
	"github.com/DrSkyle/linkpath/pkg/graph"
	"github.com/DrSkyle/linkpath/pkg/pathfinder"
	"github.com/DrSkyle/linkpath/pkg/sample"
	"github.com/DrSkyle/linkpath/pkg/search"
)

// Run executes one query. "No path" is a successful result with Found
// false. Errors, such as an unknown name or an expired timeout, are
// returned and also recorded in the result.
func (e *Engine) Run(ctx context.Context, q batch.Query) (res report.Result, err error) {
	ctx, span := e.Tracer.Start(ctx, "Engine.Run")
	defer span.End()

	res = report.Result{
		ID:      uuid.NewString(),
		Label:   q.Label,
		From:    q.From,
		Through: q.Through,
		To:      q.To,
		Length:  pathfinder.NoPath,
	}
	start := time.Now()
	var visited atomic.Int64

	defer func() {
		res.DurationMS = float64(time.Since(start).Microseconds()) / 1000
		res.Visited = int(visited.Load())
		if err != nil {
			res.Error = err.Error()
			span.RecordError(err)
			span.SetStatus(codes.Error, "query failed")
		}
		span.SetAttributes(
			attribute.String("query.id", res.ID),
			attribute.Bool("query.found", res.Found),
			attribute.Int("query.length", res.Length),
			attribute.Int("query.visited", res.Visited),
		)
		e.Metrics.Record(ctx, queryKind(q), res.Found, res.DurationMS, res.Visited, res.Length)
	}()
	// Crash safety.
	defer e.recoverPanic(ctx, &err)

	finder, err := e.Finder()
	if err != nil {
		return res, err
	}
	if e.config.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.QueryTimeout)
		defer cancel()
	}

	count := search.WithOnVisit(func(graph.ID, int) { visited.Add(1) })
	var (
		path []string
		ok   bool
	)
	if q.Through == "" {
		path, ok, err = finder.ShortestPath(ctx, q.From, q.To, count)
	} else {
		path, ok, err = finder.ShortestPathThrough(ctx, q.From, q.Through, q.To, count)
	}
	if err != nil {
		return res, fmt.Errorf("query %s: %w", q, err)
	}
	if ok {
		res.Found = true
		res.Length = len(path) - 1
		res.Path = path
		res.Titles = display.DecodeAll(path)
	}

	e.Logger.Debug("Query finished", "query", q.String(), "found", res.Found, "length", res.Length, "visited", visited.Load())
	return res, nil
}

func queryKind(q batch.Query) string {
	if q.Through != "" {
		return "through"
	}
	return "path"
}

// Length returns the shortest path length from n1 to n2 or -1.
func (e *Engine) Length(ctx context.Context, n1, n2 string) (int, error) {
	finder, err := e.Finder()
	if err != nil {
		return pathfinder.NoPath, err
	}
	if e.config.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.QueryTimeout)
		defer cancel()
	}
	return finder.ShortestPathLength(ctx, n1, n2), nil
}

// Batch runs queries concurrently, at most Concurrency at a time. Results
// keep the order of queries. A failing query is recorded in its result
// and does not stop the others; only cancellation of ctx aborts the batch.
func (e *Engine) Batch(ctx context.Context, queries []batch.Query) ([]report.Result, error) {
	ctx, span := e.Tracer.Start(ctx, "Engine.Batch")
	defer span.End()
	span.SetAttributes(attribute.Int("batch.size", len(queries)))

	if _, err := e.Finder(); err != nil {
		return nil, err
	}

	results := make([]report.Result, len(queries))
	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(e.config.Concurrency, 1))
	for i, q := range queries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := e.Run(gctx, q)
			results[i] = res
			if err != nil {
				failed.Add(1)
				e.Logger.Warn("Query failed", "label", q.Label, "error", err)
				if errors.Is(err, context.Canceled) && ctx.Err() != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	e.Logger.Info("Batch finished", "queries", len(queries), "failed", failed.Load())
	return results, nil
}

// Random builds a query between random vertices, optionally through a
// third. A zero Seed in the config picks a fresh sequence.
func (e *Engine) Random(through bool) (batch.Query, error) {
	if e.graph == nil {
		return batch.Query{}, ErrNotLoaded
	}
	p, err := sample.New(e.graph.Names(), e.config.Seed)
	if err != nil {
		return batch.Query{}, err
	}
	q := batch.Query{Label: "random", From: p.Pick(), To: p.Pick()}
	if through {
		q.Through = p.Pick()
	}
	return q, nil
}

// Export writes results to loc, a local path or s3://bucket/key. An empty
// format is inferred from the extension.
func (e *Engine) Export(ctx context.Context, loc string, format report.Format, results []report.Result) error {
	ctx, span := e.Tracer.Start(ctx, "Engine.Export")
	defer span.End()

	store, key, err := e.resolver.Resolve(ctx, loc)
	if err != nil {
		return err
	}
	if format == "" {
		format = report.FormatFor(key)
	}
	if err := report.Write(ctx, store, key, format, results); err != nil {
		return err
	}
	e.Logger.Info("Report written", "location", loc, "format", string(format), "results", len(results))
	return nil
}

// ReachResult summarises a reachability sweep.
type ReachResult struct {
	Roots     []string
	Reached   int
	Unreached int
	Depth     int
	Farthest  string
}

// Reach counts the vertices reachable from any of roots under the
// configured policy.
func (e *Engine) Reach(ctx context.Context, roots []string) (res ReachResult, err error) {
	ctx, span := e.Tracer.Start(ctx, "Engine.Reach")
	defer span.End()
	defer e.recoverPanic(ctx, &err)

	finder, err := e.Finder()
	if err != nil {
		return res, err
	}
	if e.config.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.QueryTimeout)
		defer cancel()
	}

	r, err := finder.Reachable(ctx, roots)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "reach failed")
		return res, fmt.Errorf("reach from %v: %w", roots, err)
	}
	farthest, err := e.graph.Name(r.Farthest)
	if err != nil {
		return res, err
	}

	res = ReachResult{
		Roots:     roots,
		Reached:   r.Count(),
		Unreached: e.graph.Len() - r.Count(),
		Depth:     r.Depth(),
		Farthest:  farthest,
	}
	span.SetAttributes(
		attribute.Int("reach.reached", res.Reached),
		attribute.Int("reach.depth", res.Depth),
	)
	return res, nil
}
