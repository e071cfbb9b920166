package search

import (
	"fmt"

	"github.com/DrSkyle/linkpath/pkg/graph"
)

// Path is a non-empty sequence of identities in which consecutive entries
// are joined by an edge. "No path" is reported separately, never as an
// empty Path.
type Path []graph.ID

// Len returns the number of edges on the path.
func (p Path) Len() int {
	if len(p) == 0 {
		return -1
	}
	return len(p) - 1
}

// Start returns the first vertex.
func (p Path) Start() graph.ID { return p[0] }

// End returns the last vertex.
func (p Path) End() graph.ID { return p[len(p)-1] }

// Names translates the path to vertex names.
func (p Path) Names(g graph.Reader) ([]string, error) {
	out := make([]string, len(p))
	for i, id := range p {
		name, err := g.Name(id)
		if err != nil {
			return nil, fmt.Errorf("search: name of path element %d: %w", i, err)
		}
		out[i] = name
	}
	return out, nil
}
