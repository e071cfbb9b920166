// Package pathfinder answers shortest-path queries in terms of vertex names.
//
// It is the only layer that speaks names: each query resolves names to
// identities, delegates to package search and translates the result back.
package pathfinder

import (
	"context"
	"fmt"

	"github.com/DrSkyle/linkpath/pkg/graph"
	"github.com/DrSkyle/linkpath/pkg/search"
)

// NoPath is the length reported when no path exists.
const NoPath = -1

// Finder runs queries against one frozen graph. It is safe for concurrent
// use as long as the graph is not mutated.
type Finder struct {
	g    graph.Reader
	opts []search.Option
}

// New returns a Finder over g. opts apply to every query, ahead of any
// per-query options.
func New(g graph.Reader, opts ...search.Option) *Finder {
	return &Finder{g: g, opts: opts}
}

// Graph returns the underlying graph.
func (f *Finder) Graph() graph.Reader {
	return f.g
}

// ShortestPathLength returns the number of edges on a shortest path from n1
// to n2, or NoPath if there is none, a name is unknown or the search fails.
func (f *Finder) ShortestPathLength(ctx context.Context, n1, n2 string, opts ...search.Option) int {
	p, ok, err := f.find(ctx, n1, n2, opts)
	if err != nil || !ok {
		return NoPath
	}
	return p.Len()
}

// ShortestPath returns the names on a shortest path from n1 to n2, both
// endpoints included. ok is false when no path exists. Unknown names are
// reported as errors wrapping graph.ErrUnknownName.
func (f *Finder) ShortestPath(ctx context.Context, n1, n2 string, opts ...search.Option) ([]string, bool, error) {
	p, ok, err := f.find(ctx, n1, n2, opts)
	if err != nil || !ok {
		return nil, false, err
	}
	return f.names(p)
}

// ShortestPathThrough returns the names on a shortest path from n1 to n2
// that visits middle. The path is shortest among those through middle,
// not necessarily the shortest from n1 to n2.
func (f *Finder) ShortestPathThrough(ctx context.Context, n1, middle, n2 string, opts ...search.Option) ([]string, bool, error) {
	ids, err := f.resolve(n1, middle, n2)
	if err != nil {
		return nil, false, err
	}
	p, ok, err := search.Through(ctx, f.g, ids[0], ids[1], ids[2], f.options(opts)...)
	if err != nil || !ok {
		return nil, false, err
	}
	return f.names(p)
}

// Reachable sweeps from every named root at once under the Finder's
// options.
func (f *Finder) Reachable(ctx context.Context, roots []string, opts ...search.Option) (search.Reach, error) {
	ids, err := f.resolve(roots...)
	if err != nil {
		return search.Reach{}, err
	}
	return search.Reachable(ctx, f.g, ids, f.options(opts)...)
}

func (f *Finder) find(ctx context.Context, n1, n2 string, opts []search.Option) (search.Path, bool, error) {
	ids, err := f.resolve(n1, n2)
	if err != nil {
		return nil, false, err
	}
	return search.ShortestPath(ctx, f.g, ids[0], ids[1], f.options(opts)...)
}

func (f *Finder) resolve(names ...string) ([]graph.ID, error) {
	if f.g == nil {
		return nil, search.ErrGraphNil
	}
	ids := make([]graph.ID, len(names))
	for i, name := range names {
		id, err := f.g.Resolve(name)
		if err != nil {
			return nil, fmt.Errorf("pathfinder: %w", err)
		}
		ids[i] = id
	}
	return ids, nil
}

func (f *Finder) names(p search.Path) ([]string, bool, error) {
	out, err := p.Names(f.g)
	if err != nil {
		return nil, false, fmt.Errorf("pathfinder: %w", err)
	}
	return out, true, nil
}

func (f *Finder) options(extra []search.Option) []search.Option {
	if len(extra) == 0 {
		return f.opts
	}
	all := make([]search.Option, 0, len(f.opts)+len(extra))
	all = append(all, f.opts...)
	return append(all, extra...)
}
