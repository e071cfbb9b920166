// Package graph holds the directed, unweighted vertex/edge store that path
// searches run against.
//
// # Lifecycle
//
//  1. Create with NewStore.
//  2. Populate with AddVertex and AddEdge from a single goroutine.
//  3. Call Freeze.
//  4. Share the store (usually as a Reader) with any number of readers.
//
// Before Freeze the store is not safe for concurrent use. After Freeze it
// rejects writes with ErrFrozen, so concurrent reads need no locking.
package graph

import (
	"errors"
	"fmt"

	"github.com/DrSkyle/linkpath/pkg/sys/intern"
)

// ID is the dense, zero-based identity of a vertex, assigned in insertion order.
type ID uint32

// Reader is the read-only view of a populated graph.
type Reader interface {
	// Len reports the number of vertices. Valid identities are [0, Len()).
	Len() int
	// Neighbors returns the destinations of id's out-edges in insertion order.
	// The returned slice must not be modified.
	Neighbors(id ID) []ID
	// Resolve maps a vertex name to its identity.
	Resolve(name string) (ID, error)
	// Name maps an identity back to its vertex name.
	Name(id ID) (string, error)
}

// Store is the Graph Store. Names and identities live in one intern.Table
// so the name/identity bijection cannot drift.
type Store struct {
	names *intern.Table
	edges int

	// build phase: one destination list per vertex
	adj [][]ID

	// frozen phase: compressed rows, targets[offsets[v]:offsets[v+1]]
	frozen  bool
	offsets []uint32
	targets []ID
}

var _ Reader = (*Store)(nil)

// NewStore returns an empty, writable store.
func NewStore() *Store {
	return NewStoreSize(0)
}

// NewStoreSize returns an empty store with room for n vertices.
func NewStoreSize(n int) *Store {
	if n < 0 {
		n = 0
	}
	return &Store{
		names: intern.NewTable(n),
		adj:   make([][]ID, 0, n),
	}
}

// AddVertex registers name and returns its fresh identity.
func (s *Store) AddVertex(name string) (ID, error) {
	if s.frozen {
		return 0, ErrFrozen
	}
	id, err := s.names.Add(name)
	switch {
	case errors.Is(err, intern.ErrDuplicate):
		return 0, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	case errors.Is(err, intern.ErrFull):
		return 0, fmt.Errorf("%w: %q", ErrTooManyVertices, name)
	case err != nil:
		return 0, err
	}
	s.adj = append(s.adj, nil)
	return ID(id), nil
}

// AddEdge records the directed edge src→dst. Parallel edges and self-loops
// are kept as given.
func (s *Store) AddEdge(src, dst ID) error {
	if s.frozen {
		return ErrFrozen
	}
	if !s.valid(src) {
		return fmt.Errorf("%w: source %d", ErrUnknownVertex, src)
	}
	if !s.valid(dst) {
		return fmt.Errorf("%w: destination %d", ErrUnknownVertex, dst)
	}
	s.adj[src] = append(s.adj[src], dst)
	s.edges++
	return nil
}

// Freeze seals the store. Adjacency is packed into one contiguous slice;
// neighbor order is preserved. Calling Freeze twice is a no-op.
func (s *Store) Freeze() {
	if s.frozen {
		return
	}
	n := len(s.adj)
	s.offsets = make([]uint32, n+1)
	s.targets = make([]ID, 0, s.edges)
	for v, row := range s.adj {
		s.offsets[v] = uint32(len(s.targets))
		s.targets = append(s.targets, row...)
	}
	s.offsets[n] = uint32(len(s.targets))
	s.adj = nil
	s.frozen = true
}

// Frozen reports whether Freeze has been called.
func (s *Store) Frozen() bool {
	return s.frozen
}

// Len reports the number of vertices.
func (s *Store) Len() int {
	return s.names.Len()
}

// EdgeCount reports the number of edges, parallel edges included.
func (s *Store) EdgeCount() int {
	return s.edges
}

// Neighbors returns id's out-neighbors in the order the edges were added,
// or nil for an unknown identity.
func (s *Store) Neighbors(id ID) []ID {
	if !s.valid(id) {
		return nil
	}
	if !s.frozen {
		return s.adj[id]
	}
	lo, hi := s.offsets[id], s.offsets[id+1]
	return s.targets[lo:hi:hi]
}

// OutDegree reports how many out-edges id has.
func (s *Store) OutDegree(id ID) int {
	return len(s.Neighbors(id))
}

// Resolve maps name to its identity.
func (s *Store) Resolve(name string) (ID, error) {
	id, ok := s.names.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	return ID(id), nil
}

// Name maps id back to its vertex name.
func (s *Store) Name(id ID) (string, error) {
	name, ok := s.names.Name(uint32(id))
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownIdentity, id)
	}
	return name, nil
}

// Names returns every vertex name indexed by identity.
func (s *Store) Names() []string {
	return s.names.Names()
}

func (s *Store) valid(id ID) bool {
	return int64(id) < int64(s.names.Len())
}
