package search_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/DrSkyle/linkpath/pkg/graph"
	"github.com/DrSkyle/linkpath/pkg/search"
)

// distances is a reference all-pairs hop count by repeated relaxation.
func distances(n int, edges [][2]int) [][]int {
	d := make([][]int, n)
	for i := range d {
		d[i] = make([]int, n)
		for j := range d[i] {
			d[i][j] = -1
		}
		d[i][i] = 0
	}
	for round := 0; round < n; round++ {
		for s := 0; s < n; s++ {
			for _, e := range edges {
				if d[s][e[0]] >= 0 && (d[s][e[1]] < 0 || d[s][e[0]]+1 < d[s][e[1]]) {
					d[s][e[1]] = d[s][e[0]] + 1
				}
			}
		}
	}
	return d
}

func FuzzShortestPath(f *testing.F) {
	f.Add([]byte{4, 0, 1, 1, 2, 0, 3, 3, 2})
	f.Add([]byte{3, 0, 1, 1, 2})
	f.Add([]byte{9, 1, 1, 2, 2, 8, 0, 0, 8, 3, 4, 4, 3})

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) < 1 {
			return
		}

		// 1st byte: vertex count, rest: edge pairs
		n := int(data[0])%16 + 1
		s := graph.NewStore()
		for i := 0; i < n; i++ {
			if _, err := s.AddVertex(fmt.Sprintf("v%d", i)); err != nil {
				t.Fatal(err)
			}
		}
		var edges [][2]int
		adj := make(map[[2]graph.ID]bool)
		rest := data[1:]
		for i := 0; i+1 < len(rest); i += 2 {
			src, dst := int(rest[i])%n, int(rest[i+1])%n
			if err := s.AddEdge(graph.ID(src), graph.ID(dst)); err != nil {
				t.Fatal(err)
			}
			edges = append(edges, [2]int{src, dst})
			adj[[2]graph.ID{graph.ID(src), graph.ID(dst)}] = true
		}
		s.Freeze()
		want := distances(n, edges)
		ctx := context.Background()

		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				p, ok, err := search.ShortestPath(ctx, s, graph.ID(a), graph.ID(b))
				if err != nil {
					t.Fatalf("%d→%d: %v", a, b, err)
				}
				if want[a][b] < 0 {
					if ok || p != nil {
						t.Fatalf("%d→%d: found %v, reference says unreachable", a, b, p)
					}
					continue
				}
				if !ok {
					t.Fatalf("%d→%d: not found, reference distance %d", a, b, want[a][b])
				}
				if p.Len() != want[a][b] {
					t.Fatalf("%d→%d: Len() = %d, want %d", a, b, p.Len(), want[a][b])
				}
				if p.Start() != graph.ID(a) || p.End() != graph.ID(b) {
					t.Fatalf("%d→%d: endpoints of %v", a, b, p)
				}
				for i := 0; i+1 < len(p); i++ {
					if !adj[[2]graph.ID{p[i], p[i+1]}] {
						t.Fatalf("%d→%d: %v uses missing edge %d→%d", a, b, p, p[i], p[i+1])
					}
				}

				// Through every middle: length adds up, or absent when a leg is.
				for m := 0; m < n; m++ {
					tp, tok, err := search.Through(ctx, s, graph.ID(a), graph.ID(m), graph.ID(b))
					if err != nil {
						t.Fatalf("%d→%d→%d: %v", a, m, b, err)
					}
					legsExist := want[a][m] >= 0 && want[m][b] >= 0
					if tok != legsExist {
						t.Fatalf("%d→%d→%d: ok=%v, legs exist=%v", a, m, b, tok, legsExist)
					}
					if tok && tp.Len() != want[a][m]+want[m][b] {
						t.Fatalf("%d→%d→%d: Len() = %d, want %d", a, m, b, tp.Len(), want[a][m]+want[m][b])
					}
				}
			}
		}
	})
}
