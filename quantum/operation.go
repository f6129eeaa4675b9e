package quantum

import "fmt"

// Gate identifies the kind of a logged operation.
type Gate uint8

const (
	GateH Gate = iota + 1
	GateX
	GateY
	GateZ
	GateS
	GateT
	GateI
	GateRX
	GateRY
	GateRZ
	GateSWAP
	GateCX
	GateCZ
	GateBarrier
	GateMeasure
)

var gateNames = map[Gate]string{
	GateH:       "H",
	GateX:       "X",
	GateY:       "Y",
	GateZ:       "Z",
	GateS:       "S",
	GateT:       "T",
	GateI:       "I",
	GateRX:      "RX",
	GateRY:      "RY",
	GateRZ:      "RZ",
	GateSWAP:    "SWAP",
	GateCX:      "CX",
	GateCZ:      "CZ",
	GateBarrier: "BARRIER",
	GateMeasure: "MEASURE",
}

func (g Gate) String() string {
	if name, ok := gateNames[g]; ok {
		return name
	}
	return fmt.Sprintf("Gate(%d)", uint8(g))
}

// Operation is one entry of the operation log. The concrete types are
// SingleQubitOp, RotationOp, ControlledOp, SwapOp, BarrierOp and MeasureOp;
// switch on them to read the parameters.
type Operation interface {
	Gate() Gate
	// Qubits lists the qubits the operation touches. Barriers return nil.
	Qubits() []int
	operation()
}

// SingleQubitOp records H, X, Y, Z, S, T or I.
type SingleQubitOp struct {
	Kind  Gate
	Qubit int
}

// RotationOp records RX, RY or RZ with its angle in radians.
type RotationOp struct {
	Kind  Gate
	Qubit int
	Theta float64
}

// ControlledOp records CX or CZ.
type ControlledOp struct {
	Kind    Gate
	Control int
	Target  int
}

// SwapOp records SWAP.
type SwapOp struct {
	Qubit1 int
	Qubit2 int
}

// BarrierOp records a barrier. It spans every qubit.
type BarrierOp struct{}

// MeasureOp records the measurement of one qubit into one classical bit.
type MeasureOp struct {
	Qubit int
	Bit   int
}

func (o SingleQubitOp) Gate() Gate { return o.Kind }
func (o SingleQubitOp) Qubits() []int { return []int{o.Qubit} }
func (SingleQubitOp) operation() {}

func (o RotationOp) Gate() Gate { return o.Kind }
func (o RotationOp) Qubits() []int { return []int{o.Qubit} }
func (RotationOp) operation() {}

func (o ControlledOp) Gate() Gate { return o.Kind }
func (o ControlledOp) Qubits() []int { return []int{o.Control, o.Target} }
func (ControlledOp) operation() {}

func (SwapOp) Gate() Gate { return GateSWAP }
func (o SwapOp) Qubits() []int { return []int{o.Qubit1, o.Qubit2} }
func (SwapOp) operation() {}

func (BarrierOp) Gate() Gate { return GateBarrier }
func (BarrierOp) Qubits() []int { return nil }
func (BarrierOp) operation() {}

func (MeasureOp) Gate() Gate { return GateMeasure }
func (o MeasureOp) Qubits() []int { return []int{o.Qubit} }
func (MeasureOp) operation() {}

// OperationLog is the append-only record of everything a program applied.
// Entries are never changed once appended.
type OperationLog struct {
	ops []Operation
}

// Len returns the number of recorded operations.
func (l *OperationLog) Len() int { return len(l.ops) }

// At returns the i-th operation.
func (l *OperationLog) At(i int) Operation { return l.ops[i] }

// Operations returns a copy of the log in append order.
func (l *OperationLog) Operations() []Operation {
	out := make([]Operation, len(l.ops))
	copy(out, l.ops)
	return out
}

func (l *OperationLog) append(op Operation) {
	l.ops = append(l.ops, op)
}
