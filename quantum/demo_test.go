package quantum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDemo(t *testing.T) {
	for seed := range uint64(20) {
		p, err := NewProgram(4, WithClassicalBits(4), WithSeed(seed))
		require.NoError(t, err)
		require.NoError(t, BuildDemo(p))

		ops := p.Operations()
		require.Len(t, ops, 15)
		assert.Equal(t, SingleQubitOp{Kind: GateH, Qubit: 0}, ops[0])
		assert.Equal(t, ControlledOp{Kind: GateCX, Control: 2, Target: 3}, ops[3])
		assert.Equal(t, MeasureOp{Qubit: 3, Bit: 3}, ops[7])
		assert.Equal(t, SwapOp{Qubit1: 1, Qubit2: 2}, ops[10])
		assert.Equal(t, GateRZ, ops[14].Gate())

		// GHZ: every measured bit agrees with the first.
		vals := p.Register().Values()
		for _, v := range vals {
			assert.Equal(t, vals[0], v, "seed %d register %v", seed, vals)
		}
	}
}

func TestBuildDemoRejectsSmallPrograms(t *testing.T) {
	small, err := NewProgram(2, WithClassicalBits(2))
	require.NoError(t, err)
	assert.ErrorIs(t, BuildDemo(small), ErrInvalidArgument)
	assert.Empty(t, small.Operations())

	noBits, err := NewProgram(3, WithClassicalBits(2))
	require.NoError(t, err)
	assert.ErrorIs(t, BuildDemo(noBits), ErrInvalidArgument)
	assert.Empty(t, noBits.Operations())
}
