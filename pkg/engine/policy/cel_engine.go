package policy

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/DrSkyle/linkpath/pkg/display"
	"github.com/DrSkyle/linkpath/pkg/graph"
)

// Filter is a compiled CEL vertex predicate, e.g.
//
//	!title.startsWith("List of") && out_degree < 5000
//
// Expressions see name (raw), title (decoded), id and out_degree, and must
// evaluate to a bool.
type Filter struct {
	expr string
	prg  cel.Program
}

// NewEnv returns the CEL environment vertex filters compile against.
func NewEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("name", cel.StringType),
		cel.Variable("title", cel.StringType),
		cel.Variable("id", cel.IntType),
		cel.Variable("out_degree", cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL env: %w", err)
	}
	return env, nil
}

// Compile parses and type-checks expr.
func Compile(expr string) (*Filter, error) {
	env, err := NewEnv()
	if err != nil {
		return nil, err
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("filter compilation error: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("filter must evaluate to bool, got %s", ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("filter program creation error: %w", err)
	}
	return &Filter{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expr
}

// Eval evaluates the filter for one vertex of g.
func (f *Filter) Eval(g graph.Reader, id graph.ID) (bool, error) {
	name, err := g.Name(id)
	if err != nil {
		return false, err
	}
	out, _, err := f.prg.Eval(map[string]any{
		"name":       name,
		"title":      display.Decode(name),
		"id":         int64(id),
		"out_degree": int64(len(g.Neighbors(id))),
	})
	if err != nil {
		return false, err
	}
	match, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter returned %T, want bool", out.Value())
	}
	return match, nil
}

// Predicate returns a memoised, concurrency-safe admit function for g.
// Vertices whose evaluation fails are rejected and logged once.
func (f *Filter) Predicate(g graph.Reader, logger *slog.Logger) func(graph.ID) bool {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var (
		mu    sync.Mutex
		cache = make(map[graph.ID]bool)
	)
	return func(id graph.ID) bool {
		mu.Lock()
		v, ok := cache[id]
		mu.Unlock()
		if ok {
			return v
		}

		v, err := f.Eval(g, id)
		if err != nil {
			logger.Error("Filter evaluation failed", "filter", f.expr, "id", id, "error", err)
			v = false
		}

		mu.Lock()
		cache[id] = v
		mu.Unlock()
		return v
	}
}
