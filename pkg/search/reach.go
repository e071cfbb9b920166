package search

import (
	"context"
	"fmt"

	"github.com/DrSkyle/linkpath/pkg/graph"
)

// Reach is the result of a reachability sweep.
type Reach struct {
	// Dist maps every reached vertex to its distance from the nearest root.
	Dist map[graph.ID]int
	// Farthest is a vertex at the greatest distance, first discovered wins.
	Farthest graph.ID
}

// Count returns the number of reached vertices, roots included.
func (r Reach) Count() int { return len(r.Dist) }

// Depth returns the greatest distance reached.
func (r Reach) Depth() int { return r.Dist[r.Farthest] }

// Reachable runs one breadth-first sweep from all roots at once and
// records every vertex it reaches. Roots are always reached; other vertices
// must pass the vertex filter and lie within MaxDepth of some root.
func Reachable(ctx context.Context, g graph.Reader, roots []graph.ID, opts ...Option) (Reach, error) {
	if g == nil {
		return Reach{}, ErrGraphNil
	}
	if len(roots) == 0 {
		return Reach{}, fmt.Errorf("%w: no roots", ErrOptionViolation)
	}
	o, err := buildOptions(opts)
	if err != nil {
		return Reach{}, err
	}

	r := Reach{Dist: make(map[graph.ID]int), Farthest: roots[0]}
	queue := make([]queueItem, 0, len(roots))
	for _, id := range roots {
		if err := checkVertex(g, id); err != nil {
			return Reach{}, fmt.Errorf("search: root: %w", err)
		}
		if _, seen := r.Dist[id]; seen {
			continue
		}
		r.Dist[id] = 0
		queue = append(queue, queueItem{id: id})
	}

	for head := 0; head < len(queue); head++ {
		if err := ctx.Err(); err != nil {
			return Reach{}, err
		}
		item := queue[head]
		o.OnVisit(item.id, item.depth)
		if item.depth > r.Dist[r.Farthest] {
			r.Farthest = item.id
		}

		if o.MaxDepth > 0 && item.depth >= o.MaxDepth {
			continue
		}
		for _, next := range g.Neighbors(item.id) {
			if _, seen := r.Dist[next]; seen {
				continue
			}
			if !o.Admit(next) {
				continue
			}
			r.Dist[next] = item.depth + 1
			queue = append(queue, queueItem{id: next, depth: item.depth + 1})
		}
	}
	return r, nil
}
