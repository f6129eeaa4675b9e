package qasm

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// angleExprRegex matches a signed multiple or fraction of pi.
var angleExprRegex = regexp.MustCompile(`^(?P<sign>[-+]?)\s*(?:(?P<coeff>\d+(?:\.\d*)?|\.\d+)\s*\*?\s*)?pi(?:\s*/\s*(?P<denom>\d+(?:\.\d*)?))?$`)

// ParseAngle parses a rotation angle in radians. It accepts plain numbers
// ("1.5707", "-0.5", "3.14e-2") and pi expressions ("pi", "pi/2", "2*pi",
// "3pi/4", "-3*pi/4"), case-insensitively.
func ParseAngle(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty angle")
	}
	if val, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, fmt.Errorf("angle %q is not finite", s)
		}
		return val, nil
	}

	m := angleExprRegex.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, fmt.Errorf("bad angle %q", s)
	}
	sign := m[angleExprRegex.SubexpIndex("sign")]
	coeffStr := m[angleExprRegex.SubexpIndex("coeff")]
	denomStr := m[angleExprRegex.SubexpIndex("denom")]

	coeff, denom := 1.0, 1.0
	if coeffStr != "" {
		var err error
		if coeff, err = strconv.ParseFloat(coeffStr, 64); err != nil {
			return 0, fmt.Errorf("bad angle coefficient %q", coeffStr)
		}
	}
	if denomStr != "" {
		var err error
		if denom, err = strconv.ParseFloat(denomStr, 64); err != nil || denom == 0 {
			return 0, fmt.Errorf("bad angle denominator %q", denomStr)
		}
	}
	val := coeff * math.Pi / denom
	if sign == "-" {
		val = -val
	}
	return val, nil
}

// piDenominators are the fractions of pi written symbolically on export, in
// ascending order so a match is always in lowest terms.
var piDenominators = []int{1, 2, 3, 4, 6, 8}

const angleTolerance = 1e-10

// FormatAngle writes an angle as k*pi/d when it is within a full turn and d
// is one of piDenominators, and as a shortest round-trip decimal otherwise.
func FormatAngle(val float64) string {
	for _, d := range piDenominators {
		k := math.Round(val * float64(d) / math.Pi)
		if k == 0 || math.Abs(k) > float64(2*d) {
			continue
		}
		if math.Abs(val-k*math.Pi/float64(d)) < angleTolerance {
			return piFraction(int(k), d)
		}
	}
	return strconv.FormatFloat(val, 'g', -1, 64)
}

func piFraction(k, d int) string {
	var sb strings.Builder
	if k < 0 {
		sb.WriteByte('-')
		k = -k
	}
	if k != 1 {
		sb.WriteString(strconv.Itoa(k) + "*")
	}
	sb.WriteString("pi")
	if d != 1 {
		sb.WriteString("/" + strconv.Itoa(d))
	}
	return sb.String()
}
