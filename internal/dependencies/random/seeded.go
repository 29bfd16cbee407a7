package random

import (
	"math/rand/v2"
	"sync"
)

// SeededRandom implements Random with a deterministic PCG source, so games
// played with the same seed choose the same moves
type SeededRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded creates a SeededRandom from a seed
func NewSeeded(seed uint64) *SeededRandom {
	return &SeededRandom{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Intn returns a pseudo-random int in [0, n)
func (r *SeededRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}
