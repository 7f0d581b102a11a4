package brackets

import (
	"math/rand/v2"
	"sync"
	"time"
)

// RandomSource is the only source of randomness used by the engine. Tests
// substitute a scripted implementation to force deterministic pairings.
type RandomSource interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandomSource returns a goroutine-safe PCG source. A zero seed picks one
// from the clock.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// Shuffle is an in-place Fisher–Yates shuffle driven by rng.
func Shuffle[T any](items []T, rng RandomSource) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
