package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source provides the randomness used for prompt sampling and seek offsets.
// A single Source is shared by every concurrently running game, so access to
// the underlying generator is serialized.
type Source struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the random source
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new random source
func New(cfg *Config) *Source {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Source{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a uniform value in [0, n). Non-positive n yields 0.
func (s *Source) Intn(n int) int {
	if n < 1 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.random.Intn(n)
}

// Shuffle randomizes the order of n elements via the swap function
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.random.Shuffle(n, swap)
}
