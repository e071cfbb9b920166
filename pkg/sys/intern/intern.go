// Package intern keeps a bijection between names and dense identities.
package intern

import (
	"errors"
	"math"
)

var (
	// ErrDuplicate is returned when a name is interned twice.
	ErrDuplicate = errors.New("intern: name already interned")

	// ErrFull is returned when the identity space is exhausted.
	ErrFull = errors.New("intern: table is full")
)

// Invalid is never handed out as an identity.
const Invalid uint32 = ^uint32(0)

// MaxLen is the largest number of names a Table will hold. The two
// highest identities are reserved so callers can use them as markers.
const MaxLen = math.MaxUint32 - 1

// Table maps names to zero-based identities in insertion order and back.
// Add updates both directions together, so every identity has exactly
// one name and every name exactly one identity.
//
// A Table is safe for concurrent reads once writes have stopped.
type Table struct {
	store   map[string]uint32
	reverse []string
}

// NewTable returns an empty table sized for roughly capacity names.
func NewTable(capacity int) *Table {
	if capacity < 0 {
		capacity = 0
	}
	return &Table{
		store:   make(map[string]uint32, capacity),
		reverse: make([]string, 0, capacity),
	}
}

// Add registers s and returns its new identity.
func (t *Table) Add(s string) (uint32, error) {
	if _, ok := t.store[s]; ok {
		return Invalid, ErrDuplicate
	}
	if uint64(len(t.reverse)) >= MaxLen {
		return Invalid, ErrFull
	}

	id := uint32(len(t.reverse))
	t.reverse = append(t.reverse, s)
	t.store[s] = id
	return id, nil
}

// Lookup returns the identity of s.
func (t *Table) Lookup(s string) (uint32, bool) {
	id, ok := t.store[s]
	return id, ok
}

// Name returns the name registered under id.
func (t *Table) Name(id uint32) (string, bool) {
	if int64(id) >= int64(len(t.reverse)) {
		return "", false
	}
	return t.reverse[id], true
}

// Len reports how many names are registered.
func (t *Table) Len() int {
	return len(t.reverse)
}

// Names returns a copy of all names, indexed by identity.
func (t *Table) Names() []string {
	out := make([]string, len(t.reverse))
	copy(out, t.reverse)
	return out
}
