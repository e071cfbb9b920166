package graph

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"
)

// TestStoreChaos builds a large random graph with cycles, parallel edges
// and self-loops, then checks Freeze and the component scan finish quickly
// and leave every row intact.
func TestStoreChaos(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping chaos graph in short mode")
	}

	const nodeCount = 50000
	rng := rand.New(rand.NewPCG(1, 2))

	s := NewStoreSize(nodeCount)
	for i := 0; i < nodeCount; i++ {
		if _, err := s.AddVertex(fmt.Sprintf("node-%d", i)); err != nil {
			t.Fatal(err)
		}
	}

	want := make([][]ID, nodeCount)
	addEdge := func(src, dst ID) {
		if err := s.AddEdge(src, dst); err != nil {
			t.Fatal(err)
		}
		want[src] = append(want[src], dst)
	}
	for i := 1; i < nodeCount; i++ {
		addEdge(ID(i), ID(rng.IntN(i)))
		if i%100 == 0 {
			// old -> new -> old cycle plus a parallel edge
			addEdge(ID(i-100), ID(i))
			addEdge(ID(i), ID(i-100))
			addEdge(ID(i), ID(i-100))
		}
		if i%977 == 0 {
			addEdge(ID(i), ID(i))
		}
	}

	done := make(chan int)
	go func() {
		s.Freeze()
		done <- Components(s)
	}()

	select {
	case c := <-done:
		if c != 1 {
			t.Errorf("Components() = %d, want 1", c)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Freeze/Components did not finish on 50k nodes")
	}

	for v := 0; v < nodeCount; v++ {
		got := s.Neighbors(ID(v))
		if len(got) != len(want[v]) {
			t.Fatalf("Neighbors(%d) has %d entries, want %d", v, len(got), len(want[v]))
		}
		for i := range got {
			if got[i] != want[v][i] {
				t.Fatalf("Neighbors(%d)[%d] = %d, want %d", v, i, got[i], want[v][i])
			}
		}
	}
}
