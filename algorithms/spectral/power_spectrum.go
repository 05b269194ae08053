package spectral

import (
	"math/cmplx"
)

// HalfSpectrum computes per-frame magnitude or power half-spectra.
type HalfSpectrum struct {
	fft *FFT
}

// NewHalfSpectrum creates a new half-spectrum calculator
func NewHalfSpectrum() *HalfSpectrum {
	return &HalfSpectrum{fft: NewFFT()}
}

// Magnitude computes |FFT(x)| over the first len(x)/2+1 bins.
func (hs *HalfSpectrum) Magnitude(x []float64) []float64 {
	half := hs.fft.ComputeHalf(x)

	magnitude := make([]float64, len(half))
	for i, c := range half {
		magnitude[i] = cmplx.Abs(c)
	}

	return magnitude
}

// Power computes |FFT(x)|^2 over the first len(x)/2+1 bins.
func (hs *HalfSpectrum) Power(x []float64) []float64 {
	half := hs.fft.ComputeHalf(x)

	power := make([]float64, len(half))
	for i, c := range half {
		re, im := real(c), imag(c)
		power[i] = re*re + im*im
	}

	return power
}
