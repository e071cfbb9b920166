// Package sample picks random vertex names for demo queries.
package sample

import (
	"errors"
	"math/rand/v2"
	"time"
)

// ErrEmpty is returned when there is nothing to pick from.
var ErrEmpty = errors.New("sample: no names to pick from")

// Picker draws names uniformly at random, with replacement. It is not safe
// for concurrent use.
type Picker struct {
	names []string
	rng   *rand.Rand
}

// New returns a Picker over names. A zero seed seeds from the clock;
// any other seed makes the sequence reproducible.
func New(names []string, seed uint64) (*Picker, error) {
	if len(names) == 0 {
		return nil, ErrEmpty
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Picker{
		names: names,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}, nil
}

// Pick returns one random name.
func (p *Picker) Pick() string {
	return p.names[p.rng.IntN(len(p.names))]
}

// PickN returns n random names, possibly repeating.
func (p *Picker) PickN(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = p.Pick()
	}
	return out
}
