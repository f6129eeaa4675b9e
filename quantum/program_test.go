package quantum

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgram(t *testing.T, qubits, bits int) *Program {
	t.Helper()
	p, err := NewProgram(qubits, WithClassicalBits(bits), WithSeed(99))
	require.NoError(t, err)
	return p
}

func TestProgramLogsEveryCallInOrder(t *testing.T) {
	p := newProgram(t, 4, 4)

	require.NoError(t, p.H(0))
	require.NoError(t, p.CX(0, 1))
	require.NoError(t, p.Barrier())
	require.NoError(t, p.I(0))
	require.NoError(t, p.SWAP(1, 2))
	require.NoError(t, p.RX(0, math.Pi/4))
	require.NoError(t, p.CZ(2, 3))
	require.NoError(t, p.Measure([]int{0, 1}, []int{1, 0}))

	want := []Operation{
		SingleQubitOp{Kind: GateH, Qubit: 0},
		ControlledOp{Kind: GateCX, Control: 0, Target: 1},
		BarrierOp{},
		SingleQubitOp{Kind: GateI, Qubit: 0},
		SwapOp{Qubit1: 1, Qubit2: 2},
		RotationOp{Kind: GateRX, Qubit: 0, Theta: math.Pi / 4},
		ControlledOp{Kind: GateCZ, Control: 2, Target: 3},
		MeasureOp{Qubit: 0, Bit: 1},
		MeasureOp{Qubit: 1, Bit: 0},
	}
	assert.Equal(t, want, p.Operations())
}

func TestOperationsSnapshotIsStable(t *testing.T) {
	p := newProgram(t, 1, 0)
	require.NoError(t, p.X(0))

	ops := p.Operations()
	ops[0] = BarrierOp{}
	require.NoError(t, p.Z(0))

	assert.Equal(t, []Operation{
		SingleQubitOp{Kind: GateX, Qubit: 0},
		SingleQubitOp{Kind: GateZ, Qubit: 0},
	}, p.Operations())
}

func TestIdentityAndBarrierLeaveStateAlone(t *testing.T) {
	p := newProgram(t, 2, 0)
	require.NoError(t, p.H(1))
	before := p.State().Amplitudes()

	require.NoError(t, p.I(1))
	require.NoError(t, p.Barrier())

	assert.Equal(t, before, p.State().Amplitudes())
	assert.Len(t, p.Operations(), 3)
}

func TestRejectedCallsLeaveProgramUntouched(t *testing.T) {
	tests := []struct {
		name string
		call func(p *Program) error
		want error
	}{
		{"self swap", func(p *Program) error { return p.SWAP(1, 1) }, ErrInvalidArgument},
		{"self cz", func(p *Program) error { return p.CZ(2, 2) }, ErrInvalidArgument},
		{"self cx", func(p *Program) error { return p.CX(0, 0) }, ErrInvalidArgument},
		{"qubit too large", func(p *Program) error { return p.H(3) }, ErrInvalidArgument},
		{"negative qubit", func(p *Program) error { return p.RZ(-1, 1) }, ErrInvalidArgument},
		{"cx target out of range", func(p *Program) error { return p.CX(0, 5) }, ErrInvalidArgument},
		{"length mismatch", func(p *Program) error { return p.Measure([]int{0, 1}, []int{0}) }, ErrLengthMismatch},
		{"classical bit out of range", func(p *Program) error { return p.Measure([]int{0, 1}, []int{0, 3}) }, ErrInvalidArgument},
		{"measured qubit out of range", func(p *Program) error { return p.Measure([]int{0, 4}, []int{0, 1}) }, ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProgram(t, 3, 2)
			require.NoError(t, p.H(0))
			require.NoError(t, p.CX(0, 1))
			stateBefore := p.State().Amplitudes()
			opsBefore := p.Operations()
			regBefore := p.Register().Values()

			err := tt.call(p)
			require.ErrorIs(t, err, tt.want)

			assert.Equal(t, stateBefore, p.State().Amplitudes())
			assert.Equal(t, opsBefore, p.Operations())
			assert.Equal(t, regBefore, p.Register().Values())
		})
	}
}

func TestMeasureWithoutRegister(t *testing.T) {
	p, err := NewProgram(1)
	require.NoError(t, err)

	assert.Nil(t, p.Register())
	assert.Equal(t, 0, p.NumClassicalBits())
	assert.ErrorIs(t, p.Measure([]int{0}, []int{0}), ErrInvalidArgument)
	assert.NoError(t, p.Measure(nil, nil))
	assert.Empty(t, p.Operations())
}

func TestRejectedCallsAreCountedAndLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p, err := NewProgram(2, WithClassicalBits(2), WithLogger(logger))
	require.NoError(t, err)

	before := testutil.ToFloat64(rejectedCalls.WithLabelValues("length_mismatch"))
	require.ErrorIs(t, p.Measure([]int{0}, nil), ErrLengthMismatch)
	assert.Equal(t, before+1, testutil.ToFloat64(rejectedCalls.WithLabelValues("length_mismatch")))

	require.NoError(t, p.X(1))
	out := buf.String()
	assert.Contains(t, out, "call rejected")
	assert.Contains(t, out, "gate applied")
	assert.Contains(t, out, p.ID().String())
}

type recordingReporter struct {
	got []int
}

func (r *recordingReporter) Report(reg *ClassicalRegister) error {
	r.got = reg.Values()
	return nil
}

type recordingRenderer struct {
	ops           []Operation
	qubits, cbits int
}

func (r *recordingRenderer) Render(ops []Operation, numQubits, numBits int) string {
	r.ops, r.qubits, r.cbits = ops, numQubits, numBits
	return "diagram"
}

func TestExecuteAndDraw(t *testing.T) {
	p := newProgram(t, 2, 2)
	require.NoError(t, p.X(1))
	require.NoError(t, p.Measure([]int{0, 1}, []int{0, 1}))

	rep := &recordingReporter{}
	require.NoError(t, p.Execute(rep))
	assert.Equal(t, []int{0, 1}, rep.got)

	r := &recordingRenderer{}
	assert.Equal(t, "diagram", p.Draw(r))
	assert.Equal(t, p.Operations(), r.ops)
	assert.Equal(t, 2, r.qubits)
	assert.Equal(t, 2, r.cbits)

	noReg, err := NewProgram(1)
	require.NoError(t, err)
	rep = &recordingReporter{}
	require.NoError(t, noReg.Execute(rep))
	assert.Nil(t, rep.got)
}

func TestGateString(t *testing.T) {
	assert.Equal(t, "SWAP", GateSWAP.String())
	assert.Equal(t, "RZ", GateRZ.String())
	assert.Equal(t, "Gate(0)", Gate(0).String())
}
