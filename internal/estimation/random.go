package estimation

import (
	"math/rand/v2"
	"sync"
	"time"
)

// RandomSource supplies uniform values in [0,1) for jitter. A value of 0.5
// produces no perturbation.
type RandomSource interface {
	Float64() float64
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// NewSeededSource returns a reproducible source that is safe for concurrent use.
func NewSeededSource(seed uint64) RandomSource {
	return &lockedSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewTimeSource seeds from the wall clock.
func NewTimeSource() RandomSource {
	return NewSeededSource(uint64(time.Now().UnixNano()))
}

type noJitter struct{}

func (noJitter) Float64() float64 { return 0.5 }

// NoJitter disables all random perturbation.
func NoJitter() RandomSource {
	return noJitter{}
}

// jitter maps a draw from src onto [-amplitude, +amplitude].
func jitter(src RandomSource, amplitude float64) float64 {
	return (src.Float64() - 0.5) * 2 * amplitude
}
