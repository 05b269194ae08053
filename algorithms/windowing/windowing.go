// Package windowing provides the window function family used by the
// frame-level feature extraction pipeline.
package windowing

import "fmt"

// Window types supported by New
const (
	TypeHamming     = "hamming"
	TypeHanning     = "hanning"
	TypePovey       = "povey"
	TypeRectangular = "rectangular"
	TypeBlackman    = "blackman"
)

// Window is a precomputed window function of a fixed size
type Window interface {
	// Apply applies the window to a signal (creates new array)
	Apply(signal []float64) []float64

	// ApplyInPlace applies the window to a signal in-place
	ApplyInPlace(signal []float64) error

	// GetCoefficients returns a copy of the window coefficients
	GetCoefficients() []float64

	// GetSize returns the window size
	GetSize() int

	// GetType returns the window type
	GetType() string
}

// IsValidType reports whether windowType names a supported window function.
func IsValidType(windowType string) bool {
	switch windowType {
	case TypeHamming, TypeHanning, TypePovey, TypeRectangular, TypeBlackman:
		return true
	}
	return false
}

// New creates a window of the given type and size. The blackmanCoeff
// parameter is only used by the generalized Blackman window.
func New(windowType string, size int, blackmanCoeff float64) (Window, error) {
	switch windowType {
	case TypeHamming:
		return NewHamming(size), nil
	case TypeHanning:
		return NewHanning(size), nil
	case TypePovey:
		return NewPovey(size), nil
	case TypeRectangular:
		return NewRectangular(size), nil
	case TypeBlackman:
		return NewBlackman(size, blackmanCoeff), nil
	default:
		return nil, fmt.Errorf("invalid window type %q", windowType)
	}
}

func applyInPlace(coefficients, signal []float64, windowType string) error {
	if len(signal) != len(coefficients) {
		return fmt.Errorf("signal length (%d) doesn't match %s window size (%d)",
			len(signal), windowType, len(coefficients))
	}

	for i := range signal {
		signal[i] *= coefficients[i]
	}

	return nil
}

func apply(coefficients, signal []float64) []float64 {
	if len(signal) != len(coefficients) {
		return nil
	}

	windowed := make([]float64, len(signal))
	for i := range signal {
		windowed[i] = signal[i] * coefficients[i]
	}

	return windowed
}

func copyCoefficients(coefficients []float64) []float64 {
	coeffs := make([]float64, len(coefficients))
	copy(coeffs, coefficients)
	return coeffs
}
