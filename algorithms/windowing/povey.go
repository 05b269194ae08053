package windowing

import "math"

// Povey represents a Hanning window raised to the power 0.85.
// Like Hanning, but tapers to zero faster at the edges.
type Povey struct {
	size         int
	coefficients []float64
}

// NewPovey creates a new Povey window
func NewPovey(size int) *Povey {
	p := &Povey{size: size}
	p.generate()
	return p
}

func (p *Povey) generate() {
	p.coefficients = make([]float64, p.size)

	denominator := float64(p.size - 1)
	for i := range p.size {
		hann := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/denominator)
		p.coefficients[i] = math.Pow(hann, 0.85)
	}
}

// Apply applies the window to a signal (creates new array)
func (p *Povey) Apply(signal []float64) []float64 {
	return apply(p.coefficients, signal)
}

// ApplyInPlace applies the window to a signal in-place
func (p *Povey) ApplyInPlace(signal []float64) error {
	return applyInPlace(p.coefficients, signal, p.GetType())
}

// GetCoefficients returns a copy of the window coefficients
func (p *Povey) GetCoefficients() []float64 {
	return copyCoefficients(p.coefficients)
}

// GetSize returns the window size
func (p *Povey) GetSize() int {
	return p.size
}

// GetType returns the window type
func (p *Povey) GetType() string {
	return TypePovey
}
