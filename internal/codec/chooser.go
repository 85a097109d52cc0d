package codec

import (
	"math/rand/v2"
)

// Chooser picks the word used for each symbol. IntN returns a value in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Chooser interface {
	IntN(n int) int
}

// pcgStream is the fixed second PCG word for seeded choosers.
const pcgStream = 0x6973686d61656c // "ishmael"

// NewChooser returns a deterministic chooser for the given seed.
// The returned chooser is not safe for concurrent use.
func NewChooser(seed uint64) Chooser {
	return rand.New(rand.NewPCG(seed, pcgStream))
}

// NewRandomChooser returns a chooser seeded from the runtime's random source.
func NewRandomChooser() Chooser {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// ChooserFunc adapts a function to the Chooser interface.
type ChooserFunc func(n int) int

// IntN calls f(n).
func (f ChooserFunc) IntN(n int) int {
	return f(n)
}
