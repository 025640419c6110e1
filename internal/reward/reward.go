// Package reward draws the random point value awarded by a claim.
package reward

import (
	"math/rand/v2"
	"sync"
)

const (
	MinPoints = 1
	MaxPoints = 10
)

// Source yields a point value in [MinPoints, MaxPoints].
type Source interface {
	Points() int
}

// InRange reports whether p is a value a Source may return.
func InRange(p int) bool {
	return p >= MinPoints && p <= MaxPoints
}

type globalSource struct{}

// NewSource returns a Source backed by the runtime-seeded global generator.
func NewSource() Source {
	return globalSource{}
}

func (globalSource) Points() int {
	return MinPoints + rand.IntN(MaxPoints-MinPoints+1)
}

type seededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource returns a deterministic Source. Two sources built from the
// same seed yield the same sequence.
func NewSeededSource(seed uint64) Source {
	return &seededSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededSource) Points() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return MinPoints + s.rng.IntN(MaxPoints-MinPoints+1)
}
