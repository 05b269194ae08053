package windowing

import "math"

// Blackman represents the generalized two-term Blackman window
//
//	w[k] = a - 0.5*cos(2*pi*k/(N-1)) + (0.5-a)*cos(4*pi*k/(N-1))
//
// where a is a free coefficient. This is not the standard 3-term
// Blackman window; a=0.42 recovers a close approximation of it.
type Blackman struct {
	size         int
	coeff        float64
	coefficients []float64
}

// NewBlackman creates a new generalized Blackman window
func NewBlackman(size int, coeff float64) *Blackman {
	b := &Blackman{size: size, coeff: coeff}
	b.generate()
	return b
}

func (b *Blackman) generate() {
	b.coefficients = make([]float64, b.size)

	a := 2 * math.Pi / float64(b.size-1)
	for i := range b.size {
		k := float64(i)
		b.coefficients[i] = b.coeff - 0.5*math.Cos(a*k) + (0.5-b.coeff)*math.Cos(2*a*k)
	}
}

// Apply applies the window to a signal (creates new array)
func (b *Blackman) Apply(signal []float64) []float64 {
	return apply(b.coefficients, signal)
}

// ApplyInPlace applies the window to a signal in-place
func (b *Blackman) ApplyInPlace(signal []float64) error {
	return applyInPlace(b.coefficients, signal, b.GetType())
}

// GetCoefficients returns a copy of the window coefficients
func (b *Blackman) GetCoefficients() []float64 {
	return copyCoefficients(b.coefficients)
}

// GetSize returns the window size
func (b *Blackman) GetSize() int {
	return b.size
}

// GetType returns the window type
func (b *Blackman) GetType() string {
	return TypeBlackman
}
