package quantum

import "fmt"

// Amplitude is the complex coefficient of one basis state.
// The zero value is 0+0i.
type Amplitude complex128

// NewAmplitude builds an amplitude from its real and imaginary parts.
func NewAmplitude(re, im float64) Amplitude {
	return Amplitude(complex(re, im))
}

func (a Amplitude) Real() float64 { return real(a) }
func (a Amplitude) Imag() float64 { return imag(a) }

// Add returns a + b.
func (a Amplitude) Add(b Amplitude) Amplitude { return a + b }

// Sub returns a - b.
func (a Amplitude) Sub(b Amplitude) Amplitude { return a - b }

// Mul returns the complex product a·b.
func (a Amplitude) Mul(b Amplitude) Amplitude { return a * b }

// Scale multiplies both components by a real factor.
func (a Amplitude) Scale(f float64) Amplitude {
	return Amplitude(complex(real(a)*f, imag(a)*f))
}

// MagnitudeSquared returns |a|², the probability weight of the amplitude.
func (a Amplitude) MagnitudeSquared() float64 {
	re, im := real(a), imag(a)
	return re*re + im*im
}

func (a Amplitude) String() string {
	return fmt.Sprintf("%.4f%+.4fi", real(a), imag(a))
}
