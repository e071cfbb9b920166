package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instruments are the query metrics recorded by the engine.
type Instruments struct {
	Queries  metric.Int64Counter
	Duration metric.Float64Histogram
	Visited  metric.Int64Histogram
	Length   metric.Int64Histogram
}

// NewInstruments registers the query instruments on the global meter
// provider, which is a no-op unless the host application installs one.
func NewInstruments(name string) (*Instruments, error) {
	m := otel.Meter(name)

	queries, err := m.Int64Counter("linkpath.queries",
		metric.WithDescription("Path queries executed"))
	if err != nil {
		return nil, fmt.Errorf("failed to create queries counter: %w", err)
	}
	duration, err := m.Float64Histogram("linkpath.query.duration",
		metric.WithDescription("Path query latency"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}
	visited, err := m.Int64Histogram("linkpath.query.visited",
		metric.WithDescription("Vertices dequeued per query"))
	if err != nil {
		return nil, fmt.Errorf("failed to create visited histogram: %w", err)
	}
	length, err := m.Int64Histogram("linkpath.query.length",
		metric.WithDescription("Edges on found paths"))
	if err != nil {
		return nil, fmt.Errorf("failed to create length histogram: %w", err)
	}

	return &Instruments{Queries: queries, Duration: duration, Visited: visited, Length: length}, nil
}

// Record adds one query outcome.
func (in *Instruments) Record(ctx context.Context, kind string, found bool, durationMS float64, visited, length int) {
	attrs := metric.WithAttributes(
		attribute.String("query.kind", kind),
		attribute.Bool("query.found", found),
	)
	in.Queries.Add(ctx, 1, attrs)
	in.Duration.Record(ctx, durationMS, attrs)
	in.Visited.Record(ctx, int64(visited), attrs)
	if found {
		in.Length.Record(ctx, int64(length), attrs)
	}
}
