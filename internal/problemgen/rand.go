package problemgen

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the randomness source used by generators. *rand.Rand satisfies it.
type Rand interface {
	// Intn returns a value in [0, n). n > 0.
	Intn(n int) int
}

// lockedRand makes a *rand.Rand safe for concurrent use.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// NewRand returns a goroutine-safe Rand seeded with seed.
func NewRand(seed int64) Rand {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

// NewTimeRand returns a goroutine-safe Rand seeded from the clock.
func NewTimeRand() Rand {
	return NewRand(time.Now().UnixNano())
}

// randInt returns an integer in [lo, hi] inclusive.
func randInt(r Rand, lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}

// choice picks one element of items uniformly.
func choice[T any](r Rand, items []T) T {
	return items[r.Intn(len(items))]
}
