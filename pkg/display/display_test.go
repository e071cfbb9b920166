package display

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := map[string]string{
		"Plain":           "Plain",
		"Albert_Einstein": "Albert_Einstein",
		"%C3%85land":      "Åland",
		"Rock+and+roll":   "Rock and roll",
		"100%25":          "100%",
		"Bad%ZZescape":    DecodeError,
		"Trailing%":       DecodeError,
		"":                "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Decode(in), in)
	}
}

func TestArrow(t *testing.T) {
	assert.Equal(t, "A --> B --> C", Arrow([]string{"A", "B", "C"}, true))
	assert.Equal(t, "Solo", Arrow([]string{"Solo"}, true))
	assert.Equal(t, NoPath, Arrow(nil, false))
	assert.Equal(t, NoPath, Arrow([]string{"A"}, false))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Path from A to C, length = 2", Summary("A", "", "C", 2))
	assert.Equal(t, "Path from Y through X to Z, length = -1", Summary("Y", "X", "Z", -1))
	assert.Equal(t, "Path from São Paulo to (error), length = 3", Summary("S%C3%A3o+Paulo", "", "%G0", 3))
}

func TestRenderer_Golden(t *testing.T) {
	r := NewRenderer(true)
	g := goldie.New(t)

	out := r.Result("Cat", "", "Dog", []string{"Cat", "Mammal", "Dog"}, true) + "\n" +
		r.Result("Y", "X", "Z", nil, false) + "\n" +
		r.Result("%C3%85land", "Finland", "Sweden", []string{"%C3%85land", "Finland", "Sweden"}, true) + "\n" +
		r.Field("vertices", 4) + "\n" +
		r.Field("edges", 12) + "\n"

	g.Assert(t, "result", []byte(out))
}
