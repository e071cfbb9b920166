package search

import (
	"errors"
	"fmt"

	"github.com/DrSkyle/linkpath/pkg/graph"
)

// Sentinel errors for search execution.
var (
	// ErrGraphNil is returned if a nil graph is passed.
	ErrGraphNil = errors.New("search: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("search: invalid option supplied")
)

// Option configures a search via functional arguments. An invalid Option
// is recorded and surfaced as ErrOptionViolation when the search runs.
type Option func(*Options)

// Options holds the parameters and hooks of a single search.
type Options struct {
	// MaxDepth, if > 0, rejects paths longer than MaxDepth edges.
	// Zero disables the limit.
	MaxDepth int

	// Admit reports whether a vertex may appear on a path. The start vertex
	// is always admitted.
	Admit func(graph.ID) bool

	// OnVisit is called as each vertex is dequeued, with its distance from
	// the start. Composite searches call it from several goroutines.
	OnVisit func(id graph.ID, depth int)

	err error
}

// DefaultOptions returns Options with no depth limit, no filter and a
// no-op visit hook.
func DefaultOptions() Options {
	return Options{
		MaxDepth: 0,
		Admit:    func(graph.ID) bool { return true },
		OnVisit:  func(graph.ID, int) {},
	}
}

// WithMaxDepth bounds the length of returned paths.
//
//	d > 0: paths of at most d edges
//	d == 0: no limit
//	d < 0: ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithVertexFilter keeps vertices for which fn returns false off every path.
// Filters compose: a vertex must pass all of them.
func WithVertexFilter(fn func(graph.ID) bool) Option {
	return func(o *Options) {
		if fn == nil {
			return
		}
		prev := o.Admit
		o.Admit = func(id graph.ID) bool { return prev(id) && fn(id) }
	}
}

// WithOnVisit registers a callback run as each vertex is dequeued.
func WithOnVisit(fn func(id graph.ID, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o, o.err
}
