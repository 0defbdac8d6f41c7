// Package randutil derives reproducible random sources from a single seed.
package randutil

import rand "math/rand/v2"

const goldenGamma = 0x9e3779b97f4a7c15

// New returns a PCG-backed *rand.Rand whose sequence depends only on seed.
// rand/v2 wants two 64-bit words, so both are expanded from seed with splitmix64.
func New(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(s), splitmix(s+goldenGamma)))
}

// Stream returns the i-th independent source derived from seed, for callers
// that deal from several decks at once.
func Stream(seed int64, i int) *rand.Rand {
	return New(int64(splitmix(uint64(seed) ^ uint64(i)*goldenGamma)))
}

func splitmix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
