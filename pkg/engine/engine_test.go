package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/DrSkyle/linkpath/pkg/batch"
	"github.com/DrSkyle/linkpath/pkg/config"
	"github.com/DrSkyle/linkpath/pkg/engine/report"
	"github.com/DrSkyle/linkpath/pkg/graph"
	"github.com/DrSkyle/linkpath/pkg/pathfinder"
	"github.com/DrSkyle/linkpath/pkg/telemetry"
)

func writeGraph(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	nodes := filepath.Join(dir, "nodes.txt")
	edges := filepath.Join(dir, "edges.txt")
	require.NoError(t, os.WriteFile(nodes, []byte("# vertices\nA\nB\nC\nD\nX\nY\nZ\n"), 0600))
	require.NoError(t, os.WriteFile(edges, []byte("A\tB\nB\tC\nA\tD\nD\tC\nX\tY\nY\tZ\n"), 0600))
	return nodes, edges
}

func testConfig(nodes, edges string) config.Config {
	cfg := config.Default()
	cfg.Nodes = nodes
	cfg.Edges = edges
	cfg.Strict = true
	cfg.SkipTelemetry = true
	return cfg
}

func newEngine(t *testing.T, cfg config.Config) *Engine {
	t.Helper()
	eng, err := New(context.Background(),
		WithConfig(cfg),
		WithLogger(slog.New(slog.DiscardHandler)),
	)
	require.NoError(t, err)
	return eng
}

func loadedEngine(t *testing.T) *Engine {
	t.Helper()
	eng := newEngine(t, testConfig(writeGraph(t)))
	stats, err := eng.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, stats.Vertices)
	require.Equal(t, 6, stats.Edges)
	return eng
}

func TestEngineInitialization(t *testing.T) {
	eng, err := New(context.Background(), WithConfig(config.Config{SkipTelemetry: true}))
	require.NoError(t, err)
	require.NotNil(t, eng.Logger)

	_, err = eng.Finder()
	require.ErrorIs(t, err, ErrNotLoaded)
	_, err = eng.Run(context.Background(), batch.Query{From: "A", To: "B"})
	require.ErrorIs(t, err, ErrNotLoaded)
	_, err = eng.Load(context.Background())
	require.Error(t, err)
}

func TestEngine_InvalidPolicy(t *testing.T) {
	cfg := testConfig("n", "e")
	cfg.Filter = "title +"
	_, err := New(context.Background(), WithConfig(cfg))
	require.Error(t, err)
}

func TestEngine_MetricsFailureStopsTracing(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	cfg := testConfig("n", "e")
	cfg.SkipTelemetry = false
	cfg.Metrics = "graphite"

	_, err := New(context.Background(), WithConfig(cfg), WithLogger(slog.New(slog.DiscardHandler)))
	require.ErrorIs(t, err, telemetry.ErrUnknownExporter)

	_, span := otel.Tracer("linkpath/test").Start(context.Background(), "after")
	defer span.End()
	assert.False(t, span.IsRecording(), "tracer provider left running")
}

func TestEngine_Run(t *testing.T) {
	eng := loadedEngine(t)
	ctx := context.Background()

	res, err := eng.Run(ctx, batch.Query{Label: "diamond", From: "A", To: "C"})
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, 2, res.Length)
	assert.Equal(t, []string{"A", "B", "C"}, res.Path)
	assert.NotEmpty(t, res.ID)
	assert.Positive(t, res.Visited)

	res, err = eng.Run(ctx, batch.Query{From: "C", To: "A"})
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Equal(t, pathfinder.NoPath, res.Length)
	assert.Nil(t, res.Path)

	res, err = eng.Run(ctx, batch.Query{From: "Y", Through: "X", To: "Z"})
	require.NoError(t, err)
	assert.False(t, res.Found)

	res, err = eng.Run(ctx, batch.Query{From: "A", Through: "D", To: "C"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "D", "C"}, res.Path)

	res, err = eng.Run(ctx, batch.Query{From: "A", To: "Nowhere"})
	require.ErrorIs(t, err, graph.ErrUnknownName)
	assert.Contains(t, res.Error, "Nowhere")
}

func TestEngine_Length(t *testing.T) {
	eng := loadedEngine(t)
	ctx := context.Background()

	n, err := eng.Length(ctx, "A", "C")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = eng.Length(ctx, "C", "A")
	require.NoError(t, err)
	assert.Equal(t, -1, n)

	n, err = eng.Length(ctx, "A", "Nowhere")
	require.NoError(t, err)
	assert.Equal(t, -1, n)
}

func TestEngine_Batch(t *testing.T) {
	eng := loadedEngine(t)

	queries := []batch.Query{
		{Label: "q1", From: "A", To: "C"},
		{Label: "q2", From: "C", To: "A"},
		{Label: "q3", From: "Nope", To: "A"},
		{Label: "q4", From: "X", Through: "Y", To: "Z"},
	}
	results, err := eng.Batch(context.Background(), queries)
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, q := range queries {
		assert.Equal(t, q.Label, results[i].Label)
	}
	assert.True(t, results[0].Found)
	assert.False(t, results[1].Found)
	assert.NotEmpty(t, results[2].Error)
	assert.Equal(t, []string{"X", "Y", "Z"}, results[3].Path)
}

func TestEngine_BatchCancelled(t *testing.T) {
	eng := loadedEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.Batch(ctx, []batch.Query{{From: "A", To: "C"}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestEngine_FilterPolicy(t *testing.T) {
	nodes, edges := writeGraph(t)
	cfg := testConfig(nodes, edges)
	cfg.Filter = `name != "B"`
	eng := newEngine(t, cfg)
	_, err := eng.Load(context.Background())
	require.NoError(t, err)

	res, err := eng.Run(context.Background(), batch.Query{From: "A", To: "C"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "D", "C"}, res.Path)
}

func TestEngine_WithGraph(t *testing.T) {
	s := graph.NewStore()
	a, _ := s.AddVertex("A")
	b, _ := s.AddVertex("B")
	require.NoError(t, s.AddEdge(a, b))

	eng, err := New(context.Background(), WithConfig(config.Config{SkipTelemetry: true}), WithGraph(s))
	require.NoError(t, err)
	assert.True(t, s.Frozen())

	res, err := eng.Run(context.Background(), batch.Query{From: "A", To: "B"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Length)
}

func TestEngine_Random(t *testing.T) {
	eng := loadedEngine(t)

	q, err := eng.Random(true)
	require.NoError(t, err)
	for _, n := range []string{q.From, q.Through, q.To} {
		_, err := eng.Graph().Resolve(n)
		assert.NoError(t, err)
	}

	empty := newEngine(t, testConfig("n", "e"))
	_, err = empty.Random(false)
	require.ErrorIs(t, err, ErrNotLoaded)
}

func TestEngine_RandomSeeded(t *testing.T) {
	nodes, edges := writeGraph(t)
	cfg := testConfig(nodes, edges)
	cfg.Seed = 99

	var picks [2]batch.Query
	for i := range picks {
		eng := newEngine(t, cfg)
		_, err := eng.Load(context.Background())
		require.NoError(t, err)
		picks[i], err = eng.Random(true)
		require.NoError(t, err)
	}
	assert.Equal(t, picks[0], picks[1])
}

func TestEngine_Export(t *testing.T) {
	eng := loadedEngine(t)
	res, err := eng.Run(context.Background(), batch.Query{From: "A", To: "C"})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, eng.Export(context.Background(), out, "", []report.Result{res}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var back []report.Result
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 1)
	assert.Equal(t, res.Path, back[0].Path)
}

func TestRecoverPanic(t *testing.T) {
	var buf bytes.Buffer
	eng, err := New(context.Background(),
		WithConfig(config.Config{SkipTelemetry: true}),
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
	)
	require.NoError(t, err)

	run := func() (err error) {
		defer eng.recoverPanic(context.Background(), &err)
		panic("boom")
	}
	err = run()
	require.ErrorIs(t, err, ErrPanic)
	assert.Contains(t, buf.String(), "CRITICAL FAILURE")
}

func TestNewLogger_Redacts(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, true, "debug")
	logger.Debug("connecting", "token", "hunter2", "bucket", "graphs")

	out := buf.String()
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, "[REDACTED]")
	assert.Contains(t, out, `"bucket":"graphs"`)

	buf.Reset()
	NewLogger(&buf, false, "warn").Info("hidden")
	assert.False(t, strings.Contains(buf.String(), "hidden"))
}

func TestEngine_Open(t *testing.T) {
	nodes, edges := writeGraph(t)
	eng := newEngine(t, testConfig(nodes, edges))

	rc, err := eng.Open(context.Background(), nodes)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# vertices"))
}

func TestEngine_Reach(t *testing.T) {
	eng := loadedEngine(t)
	ctx := context.Background()

	res, err := eng.Reach(ctx, []string{"A"})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Reached)
	assert.Equal(t, 3, res.Unreached)
	assert.Equal(t, 2, res.Depth)
	assert.Equal(t, "C", res.Farthest)

	res, err = eng.Reach(ctx, []string{"A", "X"})
	require.NoError(t, err)
	assert.Equal(t, 7, res.Reached)
	assert.Equal(t, 0, res.Unreached)

	_, err = eng.Reach(ctx, []string{"Nowhere"})
	require.ErrorIs(t, err, graph.ErrUnknownName)
}
