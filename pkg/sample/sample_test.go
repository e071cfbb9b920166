package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Empty(t *testing.T) {
	_, err := New(nil, 1)
	require.ErrorIs(t, err, ErrEmpty)
}

func TestPick_Reproducible(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E"}

	p1, err := New(names, 42)
	require.NoError(t, err)
	p2, err := New(names, 42)
	require.NoError(t, err)

	assert.Equal(t, p1.PickN(20), p2.PickN(20))
}

func TestPick_InRange(t *testing.T) {
	names := []string{"A", "B", "C"}
	p, err := New(names, 0)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, n := range p.PickN(300) {
		assert.Contains(t, names, n)
		seen[n] = true
	}
	assert.Len(t, seen, 3)
}
