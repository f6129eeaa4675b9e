package render

import (
	"fmt"
	"io"
	"strings"

	"microcirq/quantum"
)

// TextReporter writes the classical register as
// "Classical register: [b0 b1 ...]".
type TextReporter struct {
	W      io.Writer
	Styled bool
}

var _ quantum.Reporter = TextReporter{}

// Report implements quantum.Reporter.
func (r TextReporter) Report(reg *quantum.ClassicalRegister) error {
	_, err := fmt.Fprintln(r.W, FormatRegister(reg, r.Styled))
	return err
}

// FormatRegister renders the register bits, lowest index first.
func FormatRegister(reg *quantum.ClassicalRegister, styled bool) string {
	p := painter(styled)
	bits := make([]string, reg.Size())
	for i := range bits {
		if reg.Bit(i) == 1 {
			bits[i] = p.paint(bitOneStyle, "1")
		} else {
			bits[i] = p.paint(bitZeroStyle, "0")
		}
	}
	return "Classical register: [" + strings.Join(bits, " ") + "]"
}

// FormatProbabilities draws one bar per qubit showing P(1), renormalized by
// the vector's remaining mass. width is the bar length at P(1) = 1.
func FormatProbabilities(probs []quantum.QubitProbability, width int, styled bool) string {
	p := painter(styled)
	var sb strings.Builder
	for q, pr := range probs {
		filled := int(pr.Prob1*float64(width) + 0.5)
		filled = min(max(filled, 0), width)
		bar := p.paint(probBarStyle, strings.Repeat("█", filled)) + strings.Repeat("·", width-filled)
		fmt.Fprintf(&sb, "q[%d] P(1)=%.3f %s\n", q, pr.Prob1, bar)
	}
	return sb.String()
}
