package quantum

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func assertAmplitude(t *testing.T, want, got Amplitude, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.Real(), got.Real(), tolerance, msgAndArgs...)
	assert.InDelta(t, want.Imag(), got.Imag(), tolerance, msgAndArgs...)
}

func assertBasis(t *testing.T, s *StateVector, index int, want Amplitude) {
	t.Helper()
	for i := range s.Len() {
		expected := Amplitude(0)
		if i == index {
			expected = want
		}
		assertAmplitude(t, expected, s.At(i), "index %d", i)
	}
}

func newState(t *testing.T, n int) *StateVector {
	t.Helper()
	s, err := NewStateVector(n)
	require.NoError(t, err)
	return s
}

func TestSingleQubitGates(t *testing.T) {
	tests := []struct {
		name  string
		prep  func(s *StateVector)
		gate  func(s *StateVector)
		index int
		want  Amplitude
	}{
		{"X|0>", nil, func(s *StateVector) { s.applyX(0) }, 1, 1},
		{"Y|0>", nil, func(s *StateVector) { s.applyY(0) }, 1, NewAmplitude(0, 1)},
		{"Y|1>", func(s *StateVector) { s.applyX(0) }, func(s *StateVector) { s.applyY(0) }, 0, NewAmplitude(0, -1)},
		{"Z|1>", func(s *StateVector) { s.applyX(0) }, func(s *StateVector) { s.applyPhase(0, -1) }, 1, -1},
		{"S|1>", func(s *StateVector) { s.applyX(0) }, func(s *StateVector) { s.applyPhase(0, phaseI) }, 1, NewAmplitude(0, 1)},
		{"T|1>", func(s *StateVector) { s.applyX(0) }, func(s *StateVector) { s.applyPhase(0, phaseT) }, 1, NewAmplitude(invSqrt2, invSqrt2)},
		{"Z|0>", nil, func(s *StateVector) { s.applyPhase(0, -1) }, 0, 1},
		{"RX(pi)|0>", nil, func(s *StateVector) { s.applyRX(0, math.Pi) }, 1, NewAmplitude(0, -1)},
		{"RY(pi)|0>", nil, func(s *StateVector) { s.applyRY(0, math.Pi) }, 1, -1},
		{"RZ(pi)|0>", nil, func(s *StateVector) { s.applyRZ(0, math.Pi) }, 0, NewAmplitude(0, 1)},
		{"RZ(pi)|1>", func(s *StateVector) { s.applyX(0) }, func(s *StateVector) { s.applyRZ(0, math.Pi) }, 1, NewAmplitude(0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newState(t, 1)
			if tt.prep != nil {
				tt.prep(s)
			}
			tt.gate(s)
			assertBasis(t, s, tt.index, tt.want)
		})
	}
}

func TestHadamard(t *testing.T) {
	s := newState(t, 1)
	s.applyH(0)
	assertAmplitude(t, NewAmplitude(invSqrt2, 0), s.At(0))
	assertAmplitude(t, NewAmplitude(invSqrt2, 0), s.At(1))

	s = newState(t, 1)
	s.applyX(0)
	s.applyH(0)
	assertAmplitude(t, NewAmplitude(invSqrt2, 0), s.At(0))
	assertAmplitude(t, NewAmplitude(-invSqrt2, 0), s.At(1))
}

func TestHadamardActsOnTargetQubitOnly(t *testing.T) {
	s := newState(t, 3)
	s.applyH(2)
	assertAmplitude(t, NewAmplitude(invSqrt2, 0), s.At(0b000))
	assertAmplitude(t, NewAmplitude(invSqrt2, 0), s.At(0b100))
	for _, i := range []int{0b001, 0b010, 0b011, 0b101, 0b110, 0b111} {
		assertAmplitude(t, 0, s.At(i), "index %b", i)
	}
}

func TestTwoQubitGates(t *testing.T) {
	t.Run("CX flips target when control set", func(t *testing.T) {
		s := newState(t, 2)
		s.applyX(0)
		s.applyCX(0, 1)
		assertBasis(t, s, 0b11, 1)
	})

	t.Run("CX ignores clear control", func(t *testing.T) {
		s := newState(t, 2)
		s.applyX(1)
		s.applyCX(0, 1)
		assertBasis(t, s, 0b10, 1)
	})

	t.Run("CZ negates |11>", func(t *testing.T) {
		s := newState(t, 2)
		s.applyX(0)
		s.applyX(1)
		s.applyCZ(0, 1)
		assertBasis(t, s, 0b11, -1)
	})

	t.Run("SWAP moves a single excitation", func(t *testing.T) {
		s := newState(t, 3)
		s.applyX(0)
		s.applySWAP(0, 2)
		assertBasis(t, s, 0b100, 1)
	})

	t.Run("SWAP is symmetric in its arguments", func(t *testing.T) {
		s := newState(t, 3)
		s.applyX(2)
		s.applySWAP(0, 2)
		assertBasis(t, s, 0b001, 1)
	})
}

func TestInvolutions(t *testing.T) {
	gates := map[string]func(s *StateVector){
		"X":    func(s *StateVector) { s.applyX(1) },
		"H":    func(s *StateVector) { s.applyH(1) },
		"Y":    func(s *StateVector) { s.applyY(1) },
		"Z":    func(s *StateVector) { s.applyPhase(1, -1) },
		"SWAP": func(s *StateVector) { s.applySWAP(0, 2) },
		"CX":   func(s *StateVector) { s.applyCX(0, 1) },
	}

	for name, gate := range gates {
		t.Run(name, func(t *testing.T) {
			s := newState(t, 3)
			// Spread the state out first so the check is not trivial.
			s.applyH(0)
			s.applyRY(2, 0.7)
			s.applyCX(0, 1)
			before := s.Amplitudes()

			gate(s)
			gate(s)

			for i, want := range before {
				assertAmplitude(t, want, s.At(i), "index %d", i)
			}
		})
	}
}

func TestNormPreservedByEveryGate(t *testing.T) {
	const n = 4
	p, err := NewProgram(n)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(7, 11))
	pair := func() (int, int) {
		a := rng.IntN(n)
		b := (a + 1 + rng.IntN(n-1)) % n
		return a, b
	}

	for step := range 500 {
		q := rng.IntN(n)
		theta := rng.Float64() * 2 * math.Pi
		switch rng.IntN(13) {
		case 0:
			err = p.H(q)
		case 1:
			err = p.X(q)
		case 2:
			err = p.Y(q)
		case 3:
			err = p.Z(q)
		case 4:
			err = p.S(q)
		case 5:
			err = p.T(q)
		case 6:
			err = p.I(q)
		case 7:
			err = p.RX(q, theta)
		case 8:
			err = p.RY(q, theta)
		case 9:
			err = p.RZ(q, theta)
		case 10:
			err = p.SWAP(pair())
		case 11:
			err = p.CX(pair())
		case 12:
			err = p.CZ(pair())
		}
		require.NoError(t, err)
		require.InDelta(t, 1.0, p.state.TotalProbability(), tolerance, "step %d", step)
	}
}
