package policy

import (
	"fmt"
	"log/slog"

	"github.com/DrSkyle/linkpath/pkg/graph"
	"github.com/DrSkyle/linkpath/pkg/search"
)

// Policy is the set of constraints applied to every query.
type Policy struct {
	// MaxDepth bounds path length; zero means unbounded.
	MaxDepth int
	// Filter, if set, keeps rejected vertices off every path.
	Filter *Filter
}

// New compiles filterExpr (which may be empty) into a Policy.
func New(maxDepth int, filterExpr string) (Policy, error) {
	if maxDepth < 0 {
		return Policy{}, fmt.Errorf("max depth cannot be negative (%d)", maxDepth)
	}
	p := Policy{MaxDepth: maxDepth}
	if filterExpr != "" {
		f, err := Compile(filterExpr)
		if err != nil {
			return Policy{}, err
		}
		p.Filter = f
	}
	return p, nil
}

// Options translates the policy into search options bound to g.
func (p Policy) Options(g graph.Reader, logger *slog.Logger) []search.Option {
	var opts []search.Option
	if p.MaxDepth > 0 {
		opts = append(opts, search.WithMaxDepth(p.MaxDepth))
	}
	if p.Filter != nil {
		opts = append(opts, search.WithVertexFilter(p.Filter.Predicate(g, logger)))
	}
	return opts
}
