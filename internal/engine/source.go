package engine

import (
	"math/rand"
	"sync"
)

// Source provides uniform draws in [0,1). It does not need to be
// cryptographically secure. *rand.Rand satisfies it but is not safe for
// concurrent use; wrap it in a LockedSource when sharing.
type Source interface {
	Float64() float64
}

// LockedSource is a mutex-guarded math/rand generator.
type LockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewLockedSource(seed int64) *LockedSource {
	return &LockedSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *LockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Intn returns a value in [0, n). Minting uses it for stat rolls so one
// shared generator serves both battles and mystery boxes.
func (s *LockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
