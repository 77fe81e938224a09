package corpus

import (
	"math/rand"
	"time"
)

// historicalSeed is the constant the original loader seeded with whenever
// any seed was requested.
const historicalSeed = 666

// newSource returns the random source driving a load: time-based without a
// seed, the historical constant with one, or the seed itself in ExactSeed mode.
func newSource(cfg Config) *rand.Rand {
	switch {
	case cfg.Seed == nil:
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	case cfg.ExactSeed:
		return rand.New(rand.NewSource(*cfg.Seed))
	}
	return rand.New(rand.NewSource(historicalSeed))
}

// Partition draws a permutation of 0..n-1 and routes the first
// floor(n*validRatio) indices to validation and the rest to training.
func Partition(n int, validRatio float64, rng *rand.Rand) (valid, train []int) {
	perm := rng.Perm(n)
	nValid := int(float64(n) * validRatio)
	nValid = max(0, min(nValid, n))
	return perm[:nValid], perm[nValid:]
}
