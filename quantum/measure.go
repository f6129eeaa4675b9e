package quantum

import (
	"fmt"
	"math/rand/v2"
)

// RandomSource supplies uniform draws in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// NewSeededSource returns a deterministic PCG source for reproducible runs.
func NewSeededSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Sampler draws measurement outcomes from a state vector and collapses it.
type Sampler struct {
	rng RandomSource
}

// NewSampler returns a sampler drawing from rng.
func NewSampler(rng RandomSource) *Sampler {
	return &Sampler{rng: rng}
}

// Measure observes qubit q and collapses the vector onto the outcome. The
// surviving amplitudes are left unscaled: the vector's total mass drops to
// the prior probability of the outcome, and the next draw renormalizes by
// recomputing the total.
func (sm *Sampler) Measure(s *StateVector, q int) (int, error) {
	probs := s.Probabilities()
	total := 0.0
	for _, p := range probs {
		total += p
	}
	if total == 0 {
		return 0, fmt.Errorf("%w: state vector has zero total probability", ErrInvalidState)
	}

	chosen := selectIndex(probs, total, sm.rng.Float64())
	result := (chosen >> q) & 1

	bit := 1 << q
	for i := range s.amplitudes {
		if (i&bit != 0) != (result == 1) {
			s.amplitudes[i] = 0
		}
	}
	return result, nil
}

// selectIndex walks the distribution probs/total in ascending index order and
// returns the first index whose cumulative mass reaches r.
func selectIndex(probs []float64, total, r float64) int {
	last := -1
	for i, p := range probs {
		if p == 0 {
			continue
		}
		p /= total
		if r <= p {
			return i
		}
		r -= p
		last = i
	}
	// Rounding left r slightly above the remaining mass.
	return last
}
