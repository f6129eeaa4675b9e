package quantum

import "math"

var (
	invSqrt2 = 1 / math.Sqrt2
	phaseI   = NewAmplitude(0, 1)
	phaseT   = NewAmplitude(invSqrt2, invSqrt2)
)

// apply runs the unitary for op on the vector in place. Arguments are
// validated by the caller; measurement and barriers are not handled here.
func (s *StateVector) apply(op Operation) {
	switch op := op.(type) {
	case SingleQubitOp:
		switch op.Kind {
		case GateH:
			s.applyH(op.Qubit)
		case GateX:
			s.applyX(op.Qubit)
		case GateY:
			s.applyY(op.Qubit)
		case GateZ:
			s.applyPhase(op.Qubit, -1)
		case GateS:
			s.applyPhase(op.Qubit, phaseI)
		case GateT:
			s.applyPhase(op.Qubit, phaseT)
		case GateI:
		}
	case RotationOp:
		switch op.Kind {
		case GateRX:
			s.applyRX(op.Qubit, op.Theta)
		case GateRY:
			s.applyRY(op.Qubit, op.Theta)
		case GateRZ:
			s.applyRZ(op.Qubit, op.Theta)
		}
	case ControlledOp:
		switch op.Kind {
		case GateCX:
			s.applyCX(op.Control, op.Target)
		case GateCZ:
			s.applyCZ(op.Control, op.Target)
		}
	case SwapOp:
		s.applySWAP(op.Qubit1, op.Qubit2)
	}
}

// Single-qubit gates visit each index i with the qubit's bit set and pair it
// with j = i with that bit cleared; a is amps[i], b is amps[j].

func (s *StateVector) applyH(q int) {
	bit := 1 << q
	for i := range s.amplitudes {
		if i&bit == 0 {
			continue
		}
		j := i ^ bit
		a, b := s.amplitudes[i], s.amplitudes[j]
		s.amplitudes[i] = b.Sub(a).Scale(invSqrt2)
		s.amplitudes[j] = b.Add(a).Scale(invSqrt2)
	}
}

func (s *StateVector) applyX(q int) {
	bit := 1 << q
	for i := range s.amplitudes {
		if i&bit != 0 {
			j := i ^ bit
			s.amplitudes[i], s.amplitudes[j] = s.amplitudes[j], s.amplitudes[i]
		}
	}
}

func (s *StateVector) applyY(q int) {
	bit := 1 << q
	for i := range s.amplitudes {
		if i&bit != 0 {
			j := i ^ bit
			a, b := s.amplitudes[i], s.amplitudes[j]
			s.amplitudes[i] = b.Mul(phaseI)
			s.amplitudes[j] = a.Mul(-phaseI)
		}
	}
}

// applyPhase multiplies the |1⟩ component of q by factor (Z, S and T).
func (s *StateVector) applyPhase(q int, factor Amplitude) {
	bit := 1 << q
	for i := range s.amplitudes {
		if i&bit != 0 {
			s.amplitudes[i] = s.amplitudes[i].Mul(factor)
		}
	}
}

func (s *StateVector) applyRX(q int, theta float64) {
	bit := 1 << q
	c := math.Cos(theta / 2)
	minusISin := NewAmplitude(0, -math.Sin(theta/2))
	for i := range s.amplitudes {
		if i&bit == 0 {
			continue
		}
		j := i ^ bit
		a, b := s.amplitudes[i], s.amplitudes[j]
		s.amplitudes[i] = a.Scale(c).Add(b.Mul(minusISin))
		s.amplitudes[j] = b.Scale(c).Add(a.Mul(minusISin))
	}
}

func (s *StateVector) applyRY(q int, theta float64) {
	bit := 1 << q
	c, sn := math.Cos(theta/2), math.Sin(theta/2)
	for i := range s.amplitudes {
		if i&bit == 0 {
			continue
		}
		j := i ^ bit
		a, b := s.amplitudes[i], s.amplitudes[j]
		s.amplitudes[i] = a.Scale(c).Sub(b.Scale(sn))
		s.amplitudes[j] = b.Scale(c).Add(a.Scale(sn))
	}
}

func (s *StateVector) applyRZ(q int, theta float64) {
	bit := 1 << q
	c, sn := math.Cos(theta/2), math.Sin(theta/2)
	neg := NewAmplitude(c, -sn)
	pos := NewAmplitude(c, sn)
	for i := range s.amplitudes {
		if i&bit != 0 {
			s.amplitudes[i] = s.amplitudes[i].Mul(neg)
		} else {
			s.amplitudes[i] = s.amplitudes[i].Mul(pos)
		}
	}
}

// applySWAP exchanges each pair of indices that differ in both bits. Only the
// index with q1 set and q2 clear starts a swap, so every pair moves once.
func (s *StateVector) applySWAP(q1, q2 int) {
	bit1, bit2 := 1<<q1, 1<<q2
	for i := range s.amplitudes {
		if i&bit1 != 0 && i&bit2 == 0 {
			j := i ^ bit1 ^ bit2
			s.amplitudes[i], s.amplitudes[j] = s.amplitudes[j], s.amplitudes[i]
		}
	}
}

func (s *StateVector) applyCX(control, target int) {
	cBit, tBit := 1<<control, 1<<target
	for i := range s.amplitudes {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.amplitudes[i], s.amplitudes[j] = s.amplitudes[j], s.amplitudes[i]
		}
	}
}

func (s *StateVector) applyCZ(control, target int) {
	cBit, tBit := 1<<control, 1<<target
	for i := range s.amplitudes {
		if i&cBit != 0 && i&tBit != 0 {
			s.amplitudes[i] = -s.amplitudes[i]
		}
	}
}
