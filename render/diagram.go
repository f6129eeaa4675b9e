package render

import (
	"fmt"
	"strconv"
	"strings"

	"microcirq/quantum"
)

// Diagram draws an operation log as a text circuit, three lines per qubit
// wire plus one classical wire when the program has a register.
type Diagram struct {
	// Styled colours gates and wires with lipgloss. Leave it off for logs,
	// files and tests.
	Styled bool
}

var _ quantum.Renderer = Diagram{}

type cellKind int

const (
	cellWire cellKind = iota
	cellBox
	cellSymbol
	cellCross        // single wire crossing a two-qubit connector
	cellMeasureCross // qubit wire crossed by a measurement line
	cellBarrier
)

// cell describes what occupies one (column, qubit) slot.
type cell struct {
	kind      cellKind
	text      string
	vertAbove bool
	vertBelow bool
	dblBelow  bool
}

// Render implements quantum.Renderer.
func (d Diagram) Render(ops []quantum.Operation, numQubits, numBits int) string {
	p := painter(d.Styled)
	cols := layout(ops, numQubits)

	qLabels := make([]string, numQubits)
	labelW := 0
	for q := range numQubits {
		qLabels[q] = fmt.Sprintf("q[%d]", q)
		labelW = max(labelW, len(qLabels[q]))
	}
	cLabel := fmt.Sprintf("c: %d/", numBits)
	if numBits > 0 {
		labelW = max(labelW, len(cLabel))
	}
	labelW++

	grid := make([][]cell, len(cols))
	cbits := make([]string, len(cols))
	for ci, col := range cols {
		grid[ci], cbits[ci] = buildColumn(col, numQubits)
	}

	var sb strings.Builder
	indent := strings.Repeat(" ", labelW+1)
	for q := range numQubits {
		top := indent
		mid := p.paint(qubitLabelStyle, fmt.Sprintf("%-*s", labelW, qLabels[q])) + "─"
		bot := indent
		for ci, col := range cols {
			t, m, b := renderCell(grid[ci][q], col.width, p)
			top += t
			mid += m
			bot += b
		}
		writeLine(&sb, top)
		writeLine(&sb, mid)
		writeLine(&sb, bot)
	}

	if numBits > 0 {
		line := p.paint(cbitLabelStyle, fmt.Sprintf("%-*s", labelW, cLabel)) + p.paint(cbitWireStyle, "═")
		for ci, col := range cols {
			line += renderClassical(cbits[ci], col.width, p)
		}
		writeLine(&sb, line)
	}
	return sb.String()
}

func writeLine(sb *strings.Builder, line string) {
	sb.WriteString(strings.TrimRight(line, " "))
	sb.WriteByte('\n')
}

// buildColumn fills one column's cells and returns the classical bit landing
// in it, or "".
func buildColumn(col column, numQubits int) ([]cell, string) {
	cells := make([]cell, numQubits)
	if col.barrier {
		for q := range cells {
			cells[q] = cell{kind: cellBarrier}
		}
		return cells, ""
	}

	cbit := ""
	connect := func(lo, hi int) {
		cells[lo].vertBelow = true
		cells[hi].vertAbove = true
		for r := lo + 1; r < hi; r++ {
			cells[r] = cell{kind: cellCross, vertAbove: true, vertBelow: true}
		}
	}

	for _, op := range col.ops {
		switch op := op.(type) {
		case quantum.SingleQubitOp, quantum.RotationOp:
			q := op.Qubits()[0]
			cells[q] = cell{kind: cellBox, text: boxLabel(op)}
		case quantum.ControlledOp:
			target := "⊕"
			if op.Kind == quantum.GateCZ {
				target = "●"
			}
			lo, hi := min(op.Control, op.Target), max(op.Control, op.Target)
			connect(lo, hi)
			cells[op.Control].kind, cells[op.Control].text = cellSymbol, "●"
			cells[op.Target].kind, cells[op.Target].text = cellSymbol, target
		case quantum.SwapOp:
			lo, hi := min(op.Qubit1, op.Qubit2), max(op.Qubit1, op.Qubit2)
			connect(lo, hi)
			cells[lo].kind, cells[lo].text = cellSymbol, "×"
			cells[hi].kind, cells[hi].text = cellSymbol, "×"
		case quantum.MeasureOp:
			cells[op.Qubit] = cell{kind: cellBox, text: "M", dblBelow: true}
			for r := op.Qubit + 1; r < numQubits; r++ {
				cells[r] = cell{kind: cellMeasureCross}
			}
			cbit = strconv.Itoa(op.Bit)
		}
	}
	return cells, cbit
}

// renderCell returns the top, middle and bottom line of one cell, each w
// columns wide.
func renderCell(c cell, w int, p painter) (top, mid, bot string) {
	half := w / 2
	blank := strings.Repeat(" ", w)
	centred := func(s string) string {
		return strings.Repeat(" ", half) + s + strings.Repeat(" ", w-half-1)
	}
	onWire := func(s string) string {
		return strings.Repeat("─", half) + s + strings.Repeat("─", w-half-1)
	}
	vert := centred("│")
	dbl := centred(p.paint(cbitConnectorStyle, "║"))

	switch c.kind {
	case cellBox:
		inner := len(c.text) + 2
		margin := (w - inner - 2) / 2
		right := w - margin - inner - 2
		top = strings.Repeat(" ", margin) + p.paint(gateStyle, "┌"+strings.Repeat("─", inner)+"┐") + strings.Repeat(" ", right)
		mid = strings.Repeat("─", margin) + p.paint(gateStyle, "┤ "+c.text+" ├") + strings.Repeat("─", right)
		bot = strings.Repeat(" ", margin) + p.paint(gateStyle, "└"+strings.Repeat("─", inner)+"┘") + strings.Repeat(" ", right)
		if c.dblBelow {
			bot = dbl
		}
		return top, mid, bot

	case cellSymbol, cellCross:
		sym := c.text
		if c.kind == cellCross {
			sym = "┼"
		}
		top, bot = blank, blank
		if c.vertAbove {
			top = vert
		}
		if c.vertBelow {
			bot = vert
		}
		return top, onWire(p.paint(gateStyle, sym)), bot

	case cellMeasureCross:
		return dbl, onWire(p.paint(cbitConnectorStyle, "╫")), dbl

	case cellBarrier:
		b := p.paint(barrierStyle, "░")
		return centred(b), onWire(b), centred(b)
	}

	return blank, strings.Repeat("─", w), blank
}

// renderClassical draws one column of the classical wire, marking where a
// measurement lands and which bit it writes.
func renderClassical(bit string, w int, p painter) string {
	if bit == "" {
		return p.paint(cbitWireStyle, strings.Repeat("═", w))
	}
	half := w / 2
	rest := max(w-half-1-len(bit), 0)
	return p.paint(cbitWireStyle, strings.Repeat("═", half)) +
		p.paint(cbitConnectorStyle, "╩"+bit) +
		p.paint(cbitWireStyle, strings.Repeat("═", rest))
}
