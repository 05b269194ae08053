package windowing

import "math"

// Hanning represents a symmetric raised-cosine (Hann) window
type Hanning struct {
	size         int
	coefficients []float64
}

// NewHanning creates a new Hanning window
func NewHanning(size int) *Hanning {
	h := &Hanning{size: size}
	h.generate()
	return h
}

func (h *Hanning) generate() {
	h.coefficients = make([]float64, h.size)

	denominator := float64(h.size - 1)
	for i := range h.size {
		h.coefficients[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/denominator)
	}
}

// Apply applies the window to a signal (creates new array)
func (h *Hanning) Apply(signal []float64) []float64 {
	return apply(h.coefficients, signal)
}

// ApplyInPlace applies the window to a signal in-place
func (h *Hanning) ApplyInPlace(signal []float64) error {
	return applyInPlace(h.coefficients, signal, h.GetType())
}

// GetCoefficients returns a copy of the window coefficients
func (h *Hanning) GetCoefficients() []float64 {
	return copyCoefficients(h.coefficients)
}

// GetSize returns the window size
func (h *Hanning) GetSize() int {
	return h.size
}

// GetType returns the window type
func (h *Hanning) GetType() string {
	return TypeHanning
}
