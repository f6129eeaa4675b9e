package render

import (
	"math"
	"strconv"

	"microcirq/quantum"
)

// column is one time step of the diagram: either a barrier or a set of
// operations whose row spans do not overlap.
type column struct {
	ops     []quantum.Operation
	barrier bool
	width   int
}

// span returns the rows an operation occupies. Rows 0..numQubits-1 are the
// qubit wires; row numQubits is the classical wire, which a measurement
// reaches through every qubit below the measured one.
func span(op quantum.Operation, numQubits int) (lo, hi int) {
	if m, ok := op.(quantum.MeasureOp); ok {
		return m.Qubit, numQubits
	}
	qs := op.Qubits()
	lo, hi = qs[0], qs[0]
	for _, q := range qs[1:] {
		lo, hi = min(lo, q), max(hi, q)
	}
	return lo, hi
}

// layout packs the log into columns in order. An operation joins the current
// column unless one of its rows is already taken; a barrier always closes the
// current column and stands alone.
func layout(ops []quantum.Operation, numQubits int) []column {
	var cols []column
	var cur column
	used := make(map[int]bool)

	flush := func() {
		if len(cur.ops) > 0 {
			cols = append(cols, cur)
		}
		cur = column{}
		used = make(map[int]bool)
	}

	for _, op := range ops {
		if _, ok := op.(quantum.BarrierOp); ok {
			flush()
			cols = append(cols, column{barrier: true, width: minCellW})
			continue
		}

		lo, hi := span(op, numQubits)
		for r := lo; r <= hi; r++ {
			if used[r] {
				flush()
				break
			}
		}
		for r := lo; r <= hi; r++ {
			used[r] = true
		}
		cur.ops = append(cur.ops, op)
	}
	flush()

	for i := range cols {
		cols[i].width = max(cols[i].width, minCellW)
		for _, op := range cols[i].ops {
			if label := boxLabel(op); label != "" {
				cols[i].width = max(cols[i].width, len(label)+boxPad)
			}
		}
	}
	return cols
}

// boxLabel is the text drawn inside a gate box, or "" for operations drawn
// with wire symbols instead (CX, CZ, SWAP).
func boxLabel(op quantum.Operation) string {
	switch op := op.(type) {
	case quantum.SingleQubitOp:
		return op.Kind.String()
	case quantum.RotationOp:
		return op.Kind.String() + "(" + formatAngle(op.Theta) + ")"
	case quantum.MeasureOp:
		return "M"
	}
	return ""
}

// formatAngle rounds to two decimals for display.
func formatAngle(theta float64) string {
	return strconv.FormatFloat(math.Round(theta*100)/100, 'f', -1, 64)
}
