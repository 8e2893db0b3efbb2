package random

import "math/rand"

// Source is a uniform integer source. *rand.Rand satisfies it.
type Source interface {
	// Intn returns a uniform value in [0, n). It panics when n <= 0.
	Intn(n int) int
}

// New returns a deterministic source seeded with seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Shuffle permutes items in place with a Fisher-Yates walk so every
// permutation is equally likely.
func Shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// Pick returns a uniform index into a slice of length n.
func Pick(src Source, n int) int {
	return src.Intn(n)
}
