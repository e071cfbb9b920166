// Package search finds shortest directed paths over a graph.Reader.
//
// Searches never mutate the graph. Any number may run concurrently against
// the same frozen store.
package search

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/DrSkyle/linkpath/pkg/graph"
)

// root marks the start vertex in the discovered table. It is never a
// valid identity.
const root = graph.ID(math.MaxUint32)

// queueItem holds a vertex and its distance from the start.
type queueItem struct {
	id    graph.ID
	depth int
}

// ShortestPath returns one shortest directed path from start to end.
//
// The search runs forward along out-edges. Among equal-length paths the one
// first discovered in Neighbors order wins. When start == end the result is
// the single-vertex path. When end is unreachable ok is false and the Path
// is nil.
//
// Errors are reserved for invalid input, option violations and context
// cancellation.
func ShortestPath(ctx context.Context, g graph.Reader, start, end graph.ID, opts ...Option) (Path, bool, error) {
	if g == nil {
		return nil, false, ErrGraphNil
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, false, err
	}
	if err := checkVertex(g, start); err != nil {
		return nil, false, fmt.Errorf("search: start: %w", err)
	}
	if err := checkVertex(g, end); err != nil {
		return nil, false, fmt.Errorf("search: end: %w", err)
	}
	if start == end {
		return Path{start}, true, nil
	}
	if !o.Admit(end) {
		return nil, false, nil
	}

	// discovered doubles as the visited set and the predecessor table.
	discovered := map[graph.ID]graph.ID{start: root}
	queue := []queueItem{{id: start, depth: 0}}

	for head := 0; head < len(queue); head++ {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		item := queue[head]
		o.OnVisit(item.id, item.depth)

		if o.MaxDepth > 0 && item.depth >= o.MaxDepth {
			continue
		}
		for _, next := range g.Neighbors(item.id) {
			if _, seen := discovered[next]; seen {
				continue
			}
			if !o.Admit(next) {
				continue
			}
			discovered[next] = item.id
			if next == end {
				return reconstruct(discovered, end), true, nil
			}
			queue = append(queue, queueItem{id: next, depth: item.depth + 1})
		}
	}
	return nil, false, nil
}

// reconstruct walks predecessors back from end and returns the path in
// start-to-end order.
func reconstruct(discovered map[graph.ID]graph.ID, end graph.ID) Path {
	var p Path
	for cur := end; cur != root; cur = discovered[cur] {
		p = append(p, cur)
	}
	slices.Reverse(p)
	return p
}

func checkVertex(g graph.Reader, id graph.ID) error {
	if int64(id) >= int64(g.Len()) {
		return fmt.Errorf("%w: %d", graph.ErrUnknownIdentity, id)
	}
	return nil
}
