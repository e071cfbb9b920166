// Package loader builds a frozen graph.Store from a node file and an edge
// file.
//
// Node files hold one raw name per line. Edge files hold one
// "source<TAB>destination" pair per line. In both, empty lines and lines
// starting with '#' are ignored.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/DrSkyle/linkpath/pkg/graph"
	"github.com/DrSkyle/linkpath/pkg/storage"
)

// checkEvery is how many records pass between context checks.
const checkEvery = 4096

// RecordError locates a rejected record.
type RecordError struct {
	File string
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Options controls how bad records are handled.
type Options struct {
	// Strict aborts on the first bad record. Otherwise bad records are
	// skipped and counted.
	Strict bool
	// Logger receives a warning for each of the first MaxReported skipped
	// records. Nil discards them.
	Logger *slog.Logger
	// MaxReported caps per-record warnings in lenient mode.
	MaxReported int
	// SizeHint pre-sizes the store for roughly this many vertices.
	SizeHint int
}

// Stats summarises a load.
type Stats struct {
	Vertices int
	Edges    int
	Skipped  int
}

// Source names one input file in a BlobStore.
type Source struct {
	Store storage.BlobStore
	Key   string
}

// Load opens both sources and builds a frozen store from them.
func Load(ctx context.Context, nodes, edges Source, opts Options) (*graph.Store, Stats, error) {
	nr, err := nodes.Store.Open(ctx, nodes.Key)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("loader: open nodes: %w", err)
	}
	defer nr.Close()

	er, err := edges.Store.Open(ctx, edges.Key)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("loader: open edges: %w", err)
	}
	defer er.Close()

	return build(ctx, nodes.Key, nr, edges.Key, er, opts)
}

// Build reads vertices from nodes, then edges from edges, feeding them to a
// new store in order. The returned store is frozen.
func Build(ctx context.Context, nodes, edges io.Reader, opts Options) (*graph.Store, Stats, error) {
	return build(ctx, "nodes", nodes, "edges", edges, opts)
}

type builder struct {
	ctx   context.Context
	opts  Options
	log   *slog.Logger
	store *graph.Store
	stats Stats
	seen  int
}

func build(ctx context.Context, nodesName string, nodes io.Reader, edgesName string, edges io.Reader, opts Options) (*graph.Store, Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, Stats{}, err
	}
	b := &builder{
		ctx:   ctx,
		opts:  opts,
		log:   opts.Logger,
		store: graph.NewStoreSize(opts.SizeHint),
	}
	if b.log == nil {
		b.log = slog.New(slog.DiscardHandler)
	}

	err := ReadVertices(nodes, func(line int, name string) error {
		if err := b.tick(); err != nil {
			return err
		}
		if _, err := b.store.AddVertex(name); err != nil {
			return b.reject(nodesName, line, err)
		}
		b.stats.Vertices++
		return nil
	})
	if err != nil {
		return nil, b.stats, err
	}

	err = ReadEdges(edges,
		func(rec EdgeRecord) error {
			if err := b.tick(); err != nil {
				return err
			}
			if err := b.addEdge(rec); err != nil {
				return b.reject(edgesName, rec.Line, err)
			}
			b.stats.Edges++
			return nil
		},
		func(line int, err error) error {
			return b.reject(edgesName, line, err)
		},
	)
	if err != nil {
		return nil, b.stats, err
	}

	if b.stats.Skipped > b.opts.MaxReported {
		b.log.Warn("Skipped records not reported individually",
			"count", b.stats.Skipped-b.opts.MaxReported)
	}
	b.store.Freeze()
	return b.store, b.stats, nil
}

func (b *builder) addEdge(rec EdgeRecord) error {
	src, err := b.store.Resolve(rec.Src)
	if err != nil {
		return fmt.Errorf("%w: source %q", graph.ErrUnknownVertex, rec.Src)
	}
	dst, err := b.store.Resolve(rec.Dst)
	if err != nil {
		return fmt.Errorf("%w: destination %q", graph.ErrUnknownVertex, rec.Dst)
	}
	return b.store.AddEdge(src, dst)
}

// reject aborts in strict mode and otherwise counts and maybe logs.
func (b *builder) reject(file string, line int, err error) error {
	rerr := &RecordError{File: file, Line: line, Err: err}
	if b.opts.Strict || errors.Is(err, graph.ErrTooManyVertices) {
		return rerr
	}
	b.stats.Skipped++
	if b.stats.Skipped <= b.opts.MaxReported {
		b.log.Warn("Skipping record", "file", file, "line", line, "error", err)
	}
	return nil
}

func (b *builder) tick() error {
	b.seen++
	if b.seen%checkEvery == 0 {
		return b.ctx.Err()
	}
	return nil
}
