package search_test

import (
	"testing"

	"github.com/DrSkyle/linkpath/pkg/graph"
)

// build returns a frozen store with the given vertices and edges, added in
// order.
func build(tb testing.TB, names []string, edges [][2]string) *graph.Store {
	tb.Helper()
	s := graph.NewStore()
	for _, n := range names {
		if _, err := s.AddVertex(n); err != nil {
			tb.Fatalf("AddVertex(%q): %v", n, err)
		}
	}
	for _, e := range edges {
		if err := s.AddEdge(id(tb, s, e[0]), id(tb, s, e[1])); err != nil {
			tb.Fatalf("AddEdge(%s, %s): %v", e[0], e[1], err)
		}
	}
	s.Freeze()
	return s
}

func id(tb testing.TB, s *graph.Store, name string) graph.ID {
	tb.Helper()
	v, err := s.Resolve(name)
	if err != nil {
		tb.Fatalf("Resolve(%q): %v", name, err)
	}
	return v
}

func names(tb testing.TB, s *graph.Store, p interface {
	Names(graph.Reader) ([]string, error)
}) []string {
	tb.Helper()
	out, err := p.Names(s)
	if err != nil {
		tb.Fatalf("Names: %v", err)
	}
	return out
}

// diamond is A→B, B→C, A→D, D→C with A→B inserted first.
func diamond(tb testing.TB) *graph.Store {
	return build(tb,
		[]string{"A", "B", "C", "D"},
		[][2]string{{"A", "B"}, {"B", "C"}, {"A", "D"}, {"D", "C"}},
	)
}

// chainXYZ is X→Y, Y→Z.
func chainXYZ(tb testing.TB) *graph.Store {
	return build(tb, []string{"X", "Y", "Z"}, [][2]string{{"X", "Y"}, {"Y", "Z"}})
}
