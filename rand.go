package chrono

import (
	"math/rand"
	"time"
)

// Rand is a uniform random source over [0, 1).
// *math/rand.Rand satisfies it; tests substitute scripted sources.
type Rand interface {
	Float64() float64
}

func newDefaultRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// randomIndex returns a uniform integer in [0, n).
func randomIndex(r Rand, n int) int {
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// randomIntBetween returns a uniform integer in [lo, hi].
func randomIntBetween(r Rand, lo, hi int) int {
	return lo + randomIndex(r, hi-lo+1)
}

// coinFlip returns true with probability 1/2.
func coinFlip(r Rand) bool {
	return r.Float64() < 0.5
}

// shuffle applies a uniform Fisher-Yates permutation in place.
func shuffle[T any](r Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := randomIndex(r, i+1)
		s[i], s[j] = s[j], s[i]
	}
}
