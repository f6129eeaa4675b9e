package quantum

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Reporter presents the final classical register to the user.
type Reporter interface {
	Report(reg *ClassicalRegister) error
}

// Renderer draws a circuit diagram from an operation log.
type Renderer interface {
	Render(ops []Operation, numQubits, numBits int) string
}

// Program builds and simulates a circuit. Each call validates its arguments,
// applies the operation to the state vector and appends it to the log; a call
// that fails leaves state, register and log untouched.
//
// A Program is not safe for concurrent use.
type Program struct {
	id      uuid.UUID
	state   *StateVector
	creg    *ClassicalRegister
	log     OperationLog
	sampler *Sampler
	logger  *slog.Logger
}

type options struct {
	numBits int
	rng     RandomSource
	logger  *slog.Logger
}

// Option configures a Program.
type Option func(*options)

// WithClassicalBits attaches a classical register of n bits.
func WithClassicalBits(n int) Option {
	return func(o *options) { o.numBits = n }
}

// WithRandomSource sets the source of measurement draws.
func WithRandomSource(rng RandomSource) Option {
	return func(o *options) { o.rng = rng }
}

// WithSeed is shorthand for WithRandomSource(NewSeededSource(seed)).
func WithSeed(seed uint64) Option {
	return func(o *options) { o.rng = NewSeededSource(seed) }
}

// WithLogger sets the logger. Programs log nothing by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewProgram returns a program over numQubits qubits in |0…0⟩.
func NewProgram(numQubits int, opts ...Option) (*Program, error) {
	o := options{numBits: -1}
	for _, opt := range opts {
		opt(&o)
	}

	state, err := NewStateVector(numQubits)
	if err != nil {
		return nil, err
	}

	p := &Program{
		id:     uuid.New(),
		state:  state,
		logger: o.logger,
	}
	if o.numBits >= 0 {
		if p.creg, err = NewClassicalRegister(o.numBits); err != nil {
			return nil, err
		}
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	p.sampler = NewSampler(o.rng)
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	p.logger = p.logger.With("program", p.id.String())
	p.logger.Debug("program created", "qubits", numQubits, "bits", p.NumClassicalBits())
	return p, nil
}

func (p *Program) ID() uuid.UUID { return p.id }

func (p *Program) NumQubits() int { return p.state.numQubits }

// NumClassicalBits returns the register size, 0 if the program has none.
func (p *Program) NumClassicalBits() int {
	if p.creg == nil {
		return 0
	}
	return p.creg.Size()
}

// State returns a snapshot of the state vector.
func (p *Program) State() *StateVector { return p.state.Clone() }

// Register returns a snapshot of the classical register, or nil.
func (p *Program) Register() *ClassicalRegister {
	if p.creg == nil {
		return nil
	}
	return p.creg.clone()
}

// Operations returns the operation log in call order.
func (p *Program) Operations() []Operation { return p.log.Operations() }

func (p *Program) H(q int) error { return p.single(GateH, q) }
func (p *Program) X(q int) error { return p.single(GateX, q) }
func (p *Program) Y(q int) error { return p.single(GateY, q) }
func (p *Program) Z(q int) error { return p.single(GateZ, q) }
func (p *Program) S(q int) error { return p.single(GateS, q) }
func (p *Program) T(q int) error { return p.single(GateT, q) }

// I records an identity gate. The state is not touched.
func (p *Program) I(q int) error { return p.single(GateI, q) }

// RX rotates q about the X axis by theta radians.
func (p *Program) RX(q int, theta float64) error { return p.rotation(GateRX, q, theta) }

// RY rotates q about the Y axis by theta radians.
func (p *Program) RY(q int, theta float64) error { return p.rotation(GateRY, q, theta) }

// RZ rotates q about the Z axis by theta radians.
func (p *Program) RZ(q int, theta float64) error { return p.rotation(GateRZ, q, theta) }

// SWAP exchanges the states of q1 and q2.
func (p *Program) SWAP(q1, q2 int) error {
	if err := p.checkDistinct(GateSWAP, q1, q2); err != nil {
		return err
	}
	p.commit(SwapOp{Qubit1: q1, Qubit2: q2})
	return nil
}

// CX flips target when control is 1.
func (p *Program) CX(control, target int) error { return p.controlled(GateCX, control, target) }

// CZ negates the amplitudes where control and target are both 1.
func (p *Program) CZ(control, target int) error { return p.controlled(GateCZ, control, target) }

// Barrier records a scheduling boundary for renderers.
func (p *Program) Barrier() error {
	p.commit(BarrierOp{})
	return nil
}

// Measure observes qubits[k] into classical bit bits[k] for each k in order.
// Later pairs see the collapse caused by earlier ones. One MeasureOp is
// logged per pair.
func (p *Program) Measure(qubits, bits []int) error {
	if len(qubits) != len(bits) {
		return p.reject(fmt.Errorf("%w: %d qubits, %d classical bits", ErrLengthMismatch, len(qubits), len(bits)), "length_mismatch")
	}
	if len(qubits) == 0 {
		return nil
	}
	if p.creg == nil {
		return p.reject(fmt.Errorf("%w: program has no classical register", ErrInvalidArgument), "invalid_argument")
	}
	for k := range qubits {
		if err := p.checkQubit(GateMeasure, qubits[k]); err != nil {
			return err
		}
		if bits[k] < 0 || bits[k] >= p.creg.Size() {
			return p.reject(fmt.Errorf("%w: classical bit %d outside [0, %d)", ErrInvalidArgument, bits[k], p.creg.Size()), "invalid_argument")
		}
	}
	// Collapse always keeps the sampled outcome, which has non-zero mass, so
	// only the incoming vector can be empty. Checking here keeps a failed call
	// free of partial writes.
	if p.state.TotalProbability() == 0 {
		return p.reject(fmt.Errorf("%w: state vector has zero total probability", ErrInvalidState), "invalid_state")
	}

	start := time.Now()
	for k := range qubits {
		result, err := p.sampler.Measure(p.state, qubits[k])
		if err != nil {
			return p.reject(err, "invalid_state")
		}
		p.creg.values[bits[k]] = result
		p.log.append(MeasureOp{Qubit: qubits[k], Bit: bits[k]})
		measurementOutcomes.WithLabelValues(strconv.Itoa(result)).Inc()
		p.logger.Debug("qubit measured", "qubit", qubits[k], "bit", bits[k], "result", result)
	}
	measureDuration.Observe(time.Since(start).Seconds())
	return nil
}

// Execute hands the classical register to rep. Programs without a register
// report nothing.
func (p *Program) Execute(rep Reporter) error {
	if p.creg == nil {
		return nil
	}
	return rep.Report(p.creg.clone())
}

// Draw renders the operation log with r.
func (p *Program) Draw(r Renderer) string {
	return r.Render(p.log.Operations(), p.NumQubits(), p.NumClassicalBits())
}

func (p *Program) single(g Gate, q int) error {
	if err := p.checkQubit(g, q); err != nil {
		return err
	}
	p.commit(SingleQubitOp{Kind: g, Qubit: q})
	return nil
}

func (p *Program) rotation(g Gate, q int, theta float64) error {
	if err := p.checkQubit(g, q); err != nil {
		return err
	}
	p.commit(RotationOp{Kind: g, Qubit: q, Theta: theta})
	return nil
}

func (p *Program) controlled(g Gate, control, target int) error {
	if err := p.checkDistinct(g, control, target); err != nil {
		return err
	}
	p.commit(ControlledOp{Kind: g, Control: control, Target: target})
	return nil
}

func (p *Program) commit(op Operation) {
	p.state.apply(op)
	p.log.append(op)
	gatesApplied.WithLabelValues(op.Gate().String()).Inc()
	p.logger.Debug("gate applied", "gate", op.Gate().String(), "qubits", op.Qubits())
}

func (p *Program) checkQubit(g Gate, q int) error {
	if q < 0 || q >= p.state.numQubits {
		return p.reject(fmt.Errorf("%w: %s qubit %d outside [0, %d)", ErrInvalidArgument, g, q, p.state.numQubits), "invalid_argument")
	}
	return nil
}

func (p *Program) checkDistinct(g Gate, q1, q2 int) error {
	if err := p.checkQubit(g, q1); err != nil {
		return err
	}
	if err := p.checkQubit(g, q2); err != nil {
		return err
	}
	if q1 == q2 {
		return p.reject(fmt.Errorf("%w: %s needs two different qubits, got %d twice", ErrInvalidArgument, g, q1), "invalid_argument")
	}
	return nil
}

func (p *Program) reject(err error, reason string) error {
	rejectedCalls.WithLabelValues(reason).Inc()
	p.logger.Warn("call rejected", "reason", reason, "err", err)
	return err
}
