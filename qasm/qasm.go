// Package qasm reads and writes the OpenQASM 2.0 subset that a
// quantum.Program can execute.
package qasm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"microcirq/quantum"
)

// ErrSyntax is wrapped by every error Parse returns.
var ErrSyntax = errors.New("qasm syntax error")

var (
	qregRegex       = regexp.MustCompile(`^qreg\s+(\w+)\s*\[(\d+)\]\s*;?$`)
	cregRegex       = regexp.MustCompile(`^creg\s+(\w+)\s*\[(\d+)\]\s*;?$`)
	singleGateRegex = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\]\s*;?$`)
	rotationRegex   = regexp.MustCompile(`^(\w+)\s*\(\s*([^()]+?)\s*\)\s+q\[(\d+)\]\s*;?$`)
	twoQubitRegex   = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\]\s*,\s*q\[(\d+)\]\s*;?$`)
	measureRegex    = regexp.MustCompile(`^measure\s+q\[(\d+)\]\s*->\s*c\[(\d+)\]\s*;?$`)
	barrierRegex    = regexp.MustCompile(`^barrier(\s+[^;]*)?;?$`)
)

var (
	singleGates = map[string]quantum.Gate{
		"h":  quantum.GateH,
		"x":  quantum.GateX,
		"y":  quantum.GateY,
		"z":  quantum.GateZ,
		"s":  quantum.GateS,
		"t":  quantum.GateT,
		"id": quantum.GateI,
	}
	rotationGates = map[string]quantum.Gate{
		"rx": quantum.GateRX,
		"ry": quantum.GateRY,
		"rz": quantum.GateRZ,
	}
	twoQubitGates = map[string]quantum.Gate{
		"cx":   quantum.GateCX,
		"cz":   quantum.GateCZ,
		"swap": quantum.GateSWAP,
	}
)

// Export writes ops as an OpenQASM 2.0 program over q[numQubits] and, when
// numBits > 0, c[numBits].
func Export(ops []quantum.Operation, numQubits, numBits int) string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", numQubits)
	if numBits > 0 {
		fmt.Fprintf(&sb, "creg c[%d];\n", numBits)
	}
	sb.WriteByte('\n')

	for _, op := range ops {
		switch op := op.(type) {
		case quantum.SingleQubitOp:
			fmt.Fprintf(&sb, "%s q[%d];\n", gateName(op.Kind), op.Qubit)
		case quantum.RotationOp:
			fmt.Fprintf(&sb, "%s(%s) q[%d];\n", gateName(op.Kind), FormatAngle(op.Theta), op.Qubit)
		case quantum.ControlledOp:
			fmt.Fprintf(&sb, "%s q[%d], q[%d];\n", gateName(op.Kind), op.Control, op.Target)
		case quantum.SwapOp:
			fmt.Fprintf(&sb, "swap q[%d], q[%d];\n", op.Qubit1, op.Qubit2)
		case quantum.BarrierOp:
			qubits := make([]string, numQubits)
			for q := range numQubits {
				qubits[q] = fmt.Sprintf("q[%d]", q)
			}
			fmt.Fprintf(&sb, "barrier %s;\n", strings.Join(qubits, ", "))
		case quantum.MeasureOp:
			fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", op.Qubit, op.Bit)
		}
	}
	return sb.String()
}

func gateName(g quantum.Gate) string {
	if g == quantum.GateI {
		return "id"
	}
	return strings.ToLower(g.String())
}

// Script is a parsed QASM program.
type Script struct {
	NumQubits int
	NumBits   int
	Ops       []quantum.Operation

	// lines[i] is the source line of Ops[i].
	lines []int
}

// NewProgram returns an empty program sized for the script.
func (s *Script) NewProgram(opts ...quantum.Option) (*quantum.Program, error) {
	if s.NumBits > 0 {
		opts = append([]quantum.Option{quantum.WithClassicalBits(s.NumBits)}, opts...)
	}
	return quantum.NewProgram(s.NumQubits, opts...)
}

// Apply replays the script's statements through p's API in order and stops
// at the first rejected call.
func (s *Script) Apply(p *quantum.Program) error {
	for i, op := range s.Ops {
		if err := apply(p, op); err != nil {
			return fmt.Errorf("line %d: %w", s.lines[i], err)
		}
	}
	return nil
}

var singleCalls = map[quantum.Gate]func(*quantum.Program, int) error{
	quantum.GateH: (*quantum.Program).H,
	quantum.GateX: (*quantum.Program).X,
	quantum.GateY: (*quantum.Program).Y,
	quantum.GateZ: (*quantum.Program).Z,
	quantum.GateS: (*quantum.Program).S,
	quantum.GateT: (*quantum.Program).T,
	quantum.GateI: (*quantum.Program).I,
}

var rotationCalls = map[quantum.Gate]func(*quantum.Program, int, float64) error{
	quantum.GateRX: (*quantum.Program).RX,
	quantum.GateRY: (*quantum.Program).RY,
	quantum.GateRZ: (*quantum.Program).RZ,
}

func apply(p *quantum.Program, op quantum.Operation) error {
	switch op := op.(type) {
	case quantum.SingleQubitOp:
		return singleCalls[op.Kind](p, op.Qubit)
	case quantum.RotationOp:
		return rotationCalls[op.Kind](p, op.Qubit, op.Theta)
	case quantum.ControlledOp:
		if op.Kind == quantum.GateCZ {
			return p.CZ(op.Control, op.Target)
		}
		return p.CX(op.Control, op.Target)
	case quantum.SwapOp:
		return p.SWAP(op.Qubit1, op.Qubit2)
	case quantum.BarrierOp:
		return p.Barrier()
	case quantum.MeasureOp:
		return p.Measure([]int{op.Qubit}, []int{op.Bit})
	}
	return fmt.Errorf("unsupported operation %s", op.Gate())
}

// Parse reads a QASM program. Each statement sits on its own line; blank
// lines, // comments, the OPENQASM header and include lines are skipped.
// The qreg must be named q and the creg c.
func Parse(src string) (*Script, error) {
	s := &Script{}
	haveQreg, haveCreg := false, false

	for n, line := range strings.Split(src, "\n") {
		lineNo := n + 1
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") {
			continue
		}
		fail := func(format string, args ...any) (*Script, error) {
			return nil, fmt.Errorf("%w: line %d: %s", ErrSyntax, lineNo, fmt.Sprintf(format, args...))
		}

		if m := qregRegex.FindStringSubmatch(line); m != nil {
			if haveQreg {
				return fail("second qreg")
			}
			if m[1] != "q" {
				return fail("qreg must be named q, got %q", m[1])
			}
			size, err := strconv.Atoi(m[2])
			if err != nil || size < 1 || size > quantum.MaxQubits {
				return fail("qreg size %s outside [1, %d]", m[2], quantum.MaxQubits)
			}
			s.NumQubits, haveQreg = size, true
			continue
		}
		if m := cregRegex.FindStringSubmatch(line); m != nil {
			if haveCreg {
				return fail("second creg")
			}
			if m[1] != "c" {
				return fail("creg must be named c, got %q", m[1])
			}
			size, err := strconv.Atoi(m[2])
			if err != nil || size > quantum.MaxClassicalBits {
				return fail("creg size %s outside [0, %d]", m[2], quantum.MaxClassicalBits)
			}
			s.NumBits, haveCreg = size, true
			continue
		}
		if !haveQreg {
			return fail("%q before qreg", line)
		}

		qubit := func(str string) (int, bool) {
			q, err := strconv.Atoi(str)
			return q, err == nil && q < s.NumQubits
		}

		var op quantum.Operation
		switch {
		case barrierRegex.MatchString(line):
			op = quantum.BarrierOp{}

		case measureRegex.MatchString(line):
			m := measureRegex.FindStringSubmatch(line)
			q, ok := qubit(m[1])
			if !ok {
				return fail("qubit q[%s] outside q[%d]", m[1], s.NumQubits)
			}
			bit, err := strconv.Atoi(m[2])
			if err != nil || bit >= s.NumBits {
				return fail("bit c[%s] outside c[%d]", m[2], s.NumBits)
			}
			op = quantum.MeasureOp{Qubit: q, Bit: bit}

		case twoQubitRegex.MatchString(line):
			m := twoQubitRegex.FindStringSubmatch(line)
			g, known := twoQubitGates[strings.ToLower(m[1])]
			if !known {
				return fail("unknown gate %q", m[1])
			}
			q1, ok1 := qubit(m[2])
			q2, ok2 := qubit(m[3])
			if !ok1 || !ok2 {
				return fail("qubit outside q[%d]", s.NumQubits)
			}
			if g == quantum.GateSWAP {
				op = quantum.SwapOp{Qubit1: q1, Qubit2: q2}
			} else {
				op = quantum.ControlledOp{Kind: g, Control: q1, Target: q2}
			}

		case rotationRegex.MatchString(line):
			m := rotationRegex.FindStringSubmatch(line)
			g, known := rotationGates[strings.ToLower(m[1])]
			if !known {
				return fail("unknown gate %q", m[1])
			}
			theta, err := ParseAngle(m[2])
			if err != nil {
				return fail("%v", err)
			}
			q, ok := qubit(m[3])
			if !ok {
				return fail("qubit q[%s] outside q[%d]", m[3], s.NumQubits)
			}
			op = quantum.RotationOp{Kind: g, Qubit: q, Theta: theta}

		case singleGateRegex.MatchString(line):
			m := singleGateRegex.FindStringSubmatch(line)
			g, known := singleGates[strings.ToLower(m[1])]
			if !known {
				return fail("unknown gate %q", m[1])
			}
			q, ok := qubit(m[2])
			if !ok {
				return fail("qubit q[%s] outside q[%d]", m[2], s.NumQubits)
			}
			op = quantum.SingleQubitOp{Kind: g, Qubit: q}

		default:
			return fail("unrecognized statement %q", line)
		}

		s.Ops = append(s.Ops, op)
		s.lines = append(s.lines, lineNo)
	}

	if !haveQreg {
		return nil, fmt.Errorf("%w: no qreg declared", ErrSyntax)
	}
	return s, nil
}
