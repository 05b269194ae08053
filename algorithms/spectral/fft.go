// Package spectral wraps the FFT primitive and derives magnitude and
// power half-spectra from real-valued frames.
package spectral

import (
	"github.com/mjibson/go-dsp/fft"
)

// FFT provides Fast Fourier Transform functionality
type FFT struct {
	// No state needed for now
}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute computes the FFT of a real signal using mjibson/go-dsp.
// Takes []float64 input and returns []complex128 output of the same length.
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	// mjibson/go-dsp handles all sizes efficiently, including non-power-of-2
	return fft.FFTReal(x)
}

// ComputeHalf computes the half-spectrum of a real signal: the first
// len(x)/2+1 complex bins (DC through Nyquist).
func (f *FFT) ComputeHalf(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	full := fft.FFTReal(x)
	return full[:len(x)/2+1]
}
