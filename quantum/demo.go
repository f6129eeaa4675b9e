package quantum

import (
	"fmt"
	"math"
)

// MinDemoQubits is the smallest program BuildDemo accepts.
const MinDemoQubits = 3

// BuildDemo appends the demo circuit to p: a GHZ chain from qubit 0, a
// measurement of every qubit into the bit of the same index, then identity,
// SWAP and rotations separated by barriers. p needs at least MinDemoQubits
// qubits and one classical bit per qubit.
func BuildDemo(p *Program) error {
	n := p.NumQubits()
	if n < MinDemoQubits {
		return fmt.Errorf("%w: demo needs %d qubits, program has %d", ErrInvalidArgument, MinDemoQubits, n)
	}
	if p.NumClassicalBits() < n {
		return fmt.Errorf("%w: demo needs %d classical bits, program has %d", ErrInvalidArgument, n, p.NumClassicalBits())
	}

	all := make([]int, n)
	for i := range all {
		all[i] = i
	}

	steps := []func() error{
		func() error { return p.H(0) },
		func() error {
			for i := range n - 1 {
				if err := p.CX(i, i+1); err != nil {
					return err
				}
			}
			return nil
		},
		func() error { return p.Measure(all, all) },
		p.Barrier,
		func() error { return p.I(0) },
		func() error { return p.SWAP(1, 2) },
		p.Barrier,
		func() error { return p.RX(0, math.Pi/4) },
		func() error { return p.RY(1, math.Pi/2) },
		func() error { return p.RZ(2, math.Pi) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
