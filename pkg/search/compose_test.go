package search_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DrSkyle/linkpath/pkg/graph"
	"github.com/DrSkyle/linkpath/pkg/search"
)

// TestThrough_JoinsLegs checks the boundary vertex appears once and the
// length is the sum of the legs.
func TestThrough_JoinsLegs(t *testing.T) {
	g := build(t,
		[]string{"A", "B", "M", "C", "Z"},
		[][2]string{{"A", "Z"}, {"A", "B"}, {"B", "M"}, {"M", "C"}, {"C", "Z"}},
	)
	a, m, z := id(t, g, "A"), id(t, g, "M"), id(t, g, "Z")
	ctx := context.Background()

	p, ok, err := search.Through(ctx, g, a, m, z)
	if err != nil || !ok {
		t.Fatalf("A→M→Z: ok=%v err=%v", ok, err)
	}
	if got, want := names(t, g, p), []string{"A", "B", "M", "C", "Z"}; !reflect.DeepEqual(got, want) {
		t.Errorf("A→M→Z = %v; want %v", got, want)
	}

	leg1, _, _ := search.ShortestPath(ctx, g, a, m)
	leg2, _, _ := search.ShortestPath(ctx, g, m, z)
	if p.Len() != leg1.Len()+leg2.Len() {
		t.Errorf("Len() = %d; want %d + %d", p.Len(), leg1.Len(), leg2.Len())
	}
	count := 0
	for _, v := range p {
		if v == m {
			count++
		}
	}
	if count != 1 || p[leg1.Len()] != m {
		t.Errorf("middle appears %d times, at boundary %d = %d", count, leg1.Len(), p[leg1.Len()])
	}

	// The direct edge is shorter; the constrained path does not claim to be global.
	direct, _, _ := search.ShortestPath(ctx, g, a, z)
	if direct.Len() != 1 {
		t.Errorf("direct A→Z Len() = %d; want 1", direct.Len())
	}
}

// TestThrough_UnreachableLeg covers Y→X→Z on X→Y→Z.
func TestThrough_UnreachableLeg(t *testing.T) {
	g := chainXYZ(t)

	p, ok, err := search.Through(context.Background(), g, id(t, g, "Y"), id(t, g, "X"), id(t, g, "Z"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || p != nil {
		t.Errorf("Y→X→Z = %v, ok=%v; want absent", p, ok)
	}

	// second leg unreachable
	if _, ok, _ := search.Through(context.Background(), g, id(t, g, "X"), id(t, g, "Z"), id(t, g, "Y")); ok {
		t.Errorf("X→Z→Y should be absent")
	}
}

// TestThrough_AbsentLegStopsSibling checks that once S→M is known to be
// absent the M→E sweep over a long chain is cancelled instead of finishing.
func TestThrough_AbsentLegStopsSibling(t *testing.T) {
	const n = 10000
	vs := []string{"S", "M", "E"}
	var es [][2]string
	prev := "M"
	for i := range n {
		c := fmt.Sprintf("c%d", i)
		vs = append(vs, c)
		es = append(es, [2]string{prev, c})
		prev = c
	}
	g := build(t, vs, es)
	s, m, e := id(t, g, "S"), id(t, g, "M"), id(t, g, "E")

	startSeen := make(chan struct{})
	var once sync.Once
	var visited atomic.Int64
	onVisit := search.WithOnVisit(func(v graph.ID, _ int) {
		visited.Add(1)
		switch v {
		case s:
			once.Do(func() { close(startSeen) })
		case m:
			// Hold the long leg until the empty one has returned.
			select {
			case <-startSeen:
			case <-time.After(time.Second):
			}
			time.Sleep(50 * time.Millisecond)
		}
	})

	p, ok, err := search.Through(context.Background(), g, s, m, e, onVisit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || p != nil {
		t.Errorf("S→M→E = %v, ok=%v; want absent", p, ok)
	}
	if got := visited.Load(); got > n/2 {
		t.Errorf("visited %d vertices; the M→E leg should stop early", got)
	}
}

// TestThrough_DegenerateMiddle allows middle to equal an endpoint.
func TestThrough_DegenerateMiddle(t *testing.T) {
	g := chainXYZ(t)
	x, y, z := id(t, g, "X"), id(t, g, "Y"), id(t, g, "Z")

	for _, m := range []struct{ name, mid string }{{"start", "X"}, {"middle", "Y"}, {"end", "Z"}} {
		p, ok, err := search.Through(context.Background(), g, x, id(t, g, m.mid), z)
		if err != nil || !ok {
			t.Fatalf("%s: ok=%v err=%v", m.name, ok, err)
		}
		if want := (search.Path{x, y, z}); !reflect.DeepEqual(p, want) {
			t.Errorf("%s: %v; want %v", m.name, p, want)
		}
	}
}

// TestThrough_PropagatesErrors surfaces option violations from the legs.
func TestThrough_PropagatesErrors(t *testing.T) {
	g := chainXYZ(t)
	_, _, err := search.Through(context.Background(), g, 0, 1, 2, search.WithMaxDepth(-3))
	if !errors.Is(err, search.ErrOptionViolation) {
		t.Errorf("want ErrOptionViolation, got %v", err)
	}
}

func TestJoin(t *testing.T) {
	got := search.Join(search.Path{1, 2, 3}, search.Path{3, 4})
	if want := (search.Path{1, 2, 3, 4}); !reflect.DeepEqual(got, want) {
		t.Errorf("Join = %v; want %v", got, want)
	}
	if got := search.Join(search.Path{5}, search.Path{5}); !reflect.DeepEqual(got, search.Path{5}) {
		t.Errorf("Join of singletons = %v; want [5]", got)
	}
}
