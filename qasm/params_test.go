package qasm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAngle(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		// Plain numbers
		{"1.5707", 1.5707, true},
		{"-0.5", -0.5, true},
		{"0", 0, true},
		{"3.14e-2", 0.0314, true},

		// Pi constant
		{"pi", math.Pi, true},
		{"PI", math.Pi, true},

		// Pi fractions
		{"pi/2", math.Pi / 2, true},
		{"pi/8", math.Pi / 8, true},

		// Coefficients
		{"2pi", 2 * math.Pi, true},
		{"3*pi/4", 3 * math.Pi / 4, true},
		{"2*pi/3", 2 * math.Pi / 3, true},
		{"0.5*pi", math.Pi / 2, true},

		// Negative
		{"-pi", -math.Pi, true},
		{"-3*pi/4", -3 * math.Pi / 4, true},
		{"+pi/2", math.Pi / 2, true},
		{".5pi", math.Pi / 2, true},

		// Whitespace
		{" pi / 2 ", math.Pi / 2, true},
		{" 3 * pi / 4 ", 3 * math.Pi / 4, true},

		// Invalid
		{"", 0, false},
		{"abc", 0, false},
		{"pi/0", 0, false},
		{"NaN", 0, false},
		{"inf", 0, false},
		{"pi*pi", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAngle(tt.input)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-10)
		})
	}
}

func TestFormatAngle(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{math.Pi / 4, "pi/4"},
		{3 * math.Pi / 4, "3*pi/4"},
		{-math.Pi, "-pi"},
		{-math.Pi / 2, "-pi/2"},
		{2 * math.Pi, "2*pi"},
		{5 * math.Pi / 4, "5*pi/4"},
		{-7 * math.Pi / 6, "-7*pi/6"},
		{2 * math.Pi / 8, "pi/4"},
		{3 * math.Pi, "9.42477796076938"},
		{1.5, "1.5"},
		{0, "0"},
		{0.01, "0.01"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAngle(tt.input), "FormatAngle(%g)", tt.input)
	}
}

func TestFormatAngleRoundTrips(t *testing.T) {
	for _, v := range []float64{0.3, -1.234567891234, 1e-7, 2 * math.Pi / 3, -3 * math.Pi / 2} {
		got, err := ParseAngle(FormatAngle(v))
		assert.NoError(t, err)
		assert.InDelta(t, v, got, 1e-12)
	}
}
