package brackets

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededSourceIsReproducible(t *testing.T) {
	a, b := NewRandomSource(1234), NewRandomSource(1234)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestShuffleKeepsElements(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	Shuffle(items, NewRandomSource(77))
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, items)

	var empty []string
	Shuffle(empty, NewRandomSource(1))
	assert.Empty(t, empty)
}

func TestRandomSourceConcurrentUse(t *testing.T) {
	rng := NewRandomSource(0)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				v := rng.IntN(10)
				assert.True(t, v >= 0 && v < 10)
			}
		}()
	}
	wg.Wait()
}
