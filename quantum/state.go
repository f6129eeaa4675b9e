package quantum

import (
	"fmt"
	"strings"
)

// MaxQubits caps the register size. A dense vector of 2^24 amplitudes takes
// 256 MiB; anything past that is outside what this simulator is meant for.
const MaxQubits = 24

// MaxClassicalBits caps the classical register size.
const MaxClassicalBits = 1 << 16

// StateVector holds the 2^N amplitudes of an N-qubit register. Bit b of a
// basis index is the value of qubit b in that basis state.
type StateVector struct {
	numQubits  int
	amplitudes []Amplitude
}

// NewStateVector allocates a register of numQubits qubits in |0…0⟩.
func NewStateVector(numQubits int) (*StateVector, error) {
	if numQubits < 1 || numQubits > MaxQubits {
		return nil, fmt.Errorf("%w: qubit count %d outside [1, %d]", ErrInvalidArgument, numQubits, MaxQubits)
	}
	amps := make([]Amplitude, 1<<numQubits)
	amps[0] = 1
	return &StateVector{numQubits: numQubits, amplitudes: amps}, nil
}

// NumQubits returns N.
func (s *StateVector) NumQubits() int { return s.numQubits }

// Len returns 2^N.
func (s *StateVector) Len() int { return len(s.amplitudes) }

// At returns the amplitude of basis index i.
func (s *StateVector) At(i int) Amplitude { return s.amplitudes[i] }

// Amplitudes returns a copy of the amplitude buffer.
func (s *StateVector) Amplitudes() []Amplitude {
	out := make([]Amplitude, len(s.amplitudes))
	copy(out, s.amplitudes)
	return out
}

// Clone returns an independent copy of the state.
func (s *StateVector) Clone() *StateVector {
	return &StateVector{numQubits: s.numQubits, amplitudes: s.Amplitudes()}
}

// Probabilities returns |amplitude|² for every basis index. After a
// measurement these no longer sum to 1.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.amplitudes))
	for i, a := range s.amplitudes {
		probs[i] = a.MagnitudeSquared()
	}
	return probs
}

// TotalProbability returns the total probability mass currently held by the
// vector: 1 during unitary evolution, the product of the observed outcome
// probabilities after measurements.
func (s *StateVector) TotalProbability() float64 {
	total := 0.0
	for _, a := range s.amplitudes {
		total += a.MagnitudeSquared()
	}
	return total
}

// QubitProbability is the marginal distribution of a single qubit.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns the marginal P(0)/P(1) of every qubit,
// renormalized by the current total mass. A vector with no mass yields zeros.
func (s *StateVector) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.numQubits)
	total := 0.0
	for i, a := range s.amplitudes {
		p := a.MagnitudeSquared()
		total += p
		for q := range s.numQubits {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += p
			} else {
				probs[q].Prob0 += p
			}
		}
	}
	if total == 0 {
		return probs
	}
	for q := range probs {
		probs[q].Prob0 /= total
		probs[q].Prob1 /= total
	}
	return probs
}

// ClassicalRegister is a fixed-size bit register written by measurement.
type ClassicalRegister struct {
	values []int
}

// NewClassicalRegister returns a register of size bits, all 0.
func NewClassicalRegister(size int) (*ClassicalRegister, error) {
	if size < 0 || size > MaxClassicalBits {
		return nil, fmt.Errorf("%w: classical register size %d outside [0, %d]", ErrInvalidArgument, size, MaxClassicalBits)
	}
	return &ClassicalRegister{values: make([]int, size)}, nil
}

// Size returns the number of bits.
func (c *ClassicalRegister) Size() int { return len(c.values) }

// Bit returns the value of bit i.
func (c *ClassicalRegister) Bit(i int) int { return c.values[i] }

// Values returns a copy of the bits, lowest index first.
func (c *ClassicalRegister) Values() []int {
	out := make([]int, len(c.values))
	copy(out, c.values)
	return out
}

// String renders the bits lowest index first, e.g. "0110".
func (c *ClassicalRegister) String() string {
	var sb strings.Builder
	for _, v := range c.values {
		sb.WriteByte(byte('0' + v))
	}
	return sb.String()
}

func (c *ClassicalRegister) clone() *ClassicalRegister {
	return &ClassicalRegister{values: c.Values()}
}
