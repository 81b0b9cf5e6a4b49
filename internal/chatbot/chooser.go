package chatbot

import (
	"math/rand"
	"sync"
	"time"
)

// Chooser picks one of n response variants.
type Chooser interface {
	Choose(n int) int
}

// SeededChooser picks variants from a pseudo-random sequence.
type SeededChooser struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededChooser returns a chooser seeded with seed, or with the clock when seed is 0.
func NewSeededChooser(seed int64) *SeededChooser {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SeededChooser{rng: rand.New(rand.NewSource(seed))}
}

// Choose returns an index in [0, n). It returns 0 when n <= 1.
func (c *SeededChooser) Choose(n int) int {
	if n <= 1 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Intn(n)
}

// FirstChooser always picks the first variant.
type FirstChooser struct{}

// Choose always returns 0.
func (FirstChooser) Choose(int) int { return 0 }
