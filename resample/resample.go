// Package resample changes the sample rate of buffered waveforms using
// sinc interpolation, matching Kaldi's LinearResample as used by its
// offline feature pipeline. The output signal lies on linearly spaced
// instants at the new frequency; band limiting comes from a windowed
// sinc FIR approximation.
package resample

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/adefossez/audio/logging"
)

// ErrInvalidArgument indicates invalid resampling parameters.
var ErrInvalidArgument = errors.New("invalid resample arguments")

// antiAliasMargin shrinks the cutoff below the lower of the two rates.
// It is needed when upsampling too: the signal edge is equivalent to
// zero padding, which adds high-frequency artifacts without it.
const antiAliasMargin = 0.99

// kernelBank holds one FIR filter per output phase. Applying the bank
// with stride origFreq and interleaving the phase outputs produces the
// resampled signal.
type kernelBank struct {
	kernels  [][]float64
	width    int
	origFreq int
	newFreq  int
}

// newKernelBank builds the per-phase windowed-sinc filters for a
// GCD-reduced frequency pair.
//
// x(t) can be exactly reconstructed from its samples x[i] with the sinc
// interpolation formula x(t) = sum_i x[i] sinc(pi*origFreq*(i/origFreq - t)),
// and sampling x at j/newFreq makes y[j] a convolution of x with a
// phase-dependent filter. y[j+newFreq] reuses y[j]'s filter on x
// shifted by origFreq, which is why application strides by origFreq.
func newKernelBank(origFreq, newFreq, lowpassFilterWidth int) *kernelBank {
	baseFreq := antiAliasMargin * float64(min(origFreq, newFreq))
	width := int(math.Ceil(float64(lowpassFilterWidth) * float64(origFreq) / baseFreq))

	numTaps := 2*width + origFreq
	scale := baseFreq / float64(origFreq)
	lowpass := float64(lowpassFilterWidth)

	kernels := make([][]float64, newFreq)
	for p := range newFreq {
		kernel := make([]float64, numTaps)
		for j := range numTaps {
			idx := float64(j - width)
			t := (idx/float64(origFreq) - float64(p)/float64(newFreq)) * baseFreq
			t = math.Max(-lowpass, math.Min(lowpass, t))
			t *= math.Pi

			// raised-cosine window evaluated at the exact tap instants,
			// not over a regular grid
			cosHalf := math.Cos(t / lowpass / 2)
			window := cosHalf * cosHalf

			sinc := 1.0
			if t != 0 {
				sinc = math.Sin(t) / t
			}

			kernel[j] = sinc * window * scale
		}
		kernels[p] = kernel
	}

	logging.Debug("built resample kernel bank", logging.Fields{
		"orig_freq": origFreq,
		"new_freq":  newFreq,
		"width":     width,
		"taps":      numTaps,
	})

	return &kernelBank{
		kernels:  kernels,
		width:    width,
		origFreq: origFreq,
		newFreq:  newFreq,
	}
}

// apply runs the bank over one channel as a strided convolution and
// interleaves the per-phase outputs, truncated to the target length
// ceil(newFreq * len(signal) / origFreq).
func (kb *kernelBank) apply(signal []float64) []float64 {
	numTaps := len(kb.kernels[0])

	padded := make([]float64, kb.width+len(signal)+kb.width+kb.origFreq)
	copy(padded[kb.width:], signal)

	strides := (len(padded)-numTaps)/kb.origFreq + 1
	out := make([]float64, strides*kb.newFreq)
	for s := range strides {
		window := padded[s*kb.origFreq : s*kb.origFreq+numTaps]
		for p, kernel := range kb.kernels {
			out[s*kb.newFreq+p] = floats.Dot(kernel, window)
		}
	}

	targetLength := int(math.Ceil(float64(kb.newFreq) * float64(len(signal)) / float64(kb.origFreq)))
	return out[:targetLength]
}

// Waveform resamples every channel of a waveform from origFreq to
// newFreq. Both frequencies are coerced to integers and reduced by
// their GCD, so the result is identical for already-coprime pairs.
// lowpassFilterWidth controls the sharpness of the filter: more is
// sharper but less efficient, around 4 to 10 for normal use.
func Waveform(waveform [][]float64, origFreq, newFreq float64, lowpassFilterWidth int) ([][]float64, error) {
	if len(waveform) == 0 {
		return nil, fmt.Errorf("%w: empty waveform", ErrInvalidArgument)
	}
	for ch := 1; ch < len(waveform); ch++ {
		if len(waveform[ch]) != len(waveform[0]) {
			return nil, fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrInvalidArgument, ch, len(waveform[ch]), len(waveform[0]))
		}
	}
	if origFreq <= 0 || newFreq <= 0 {
		return nil, fmt.Errorf("%w: frequencies must be positive, got %v -> %v",
			ErrInvalidArgument, origFreq, newFreq)
	}
	if lowpassFilterWidth <= 0 {
		return nil, fmt.Errorf("%w: lowpass filter width must be positive, got %d",
			ErrInvalidArgument, lowpassFilterWidth)
	}

	orig := int(origFreq)
	target := int(newFreq)
	if orig == 0 || target == 0 {
		return nil, fmt.Errorf("%w: frequencies must be at least 1 Hz, got %v -> %v",
			ErrInvalidArgument, origFreq, newFreq)
	}

	g := gcd(orig, target)
	orig /= g
	target /= g

	bank := kernelBankFor(orig, target, lowpassFilterWidth)

	out := make([][]float64, len(waveform))
	for ch, signal := range waveform {
		out[ch] = bank.apply(signal)
	}

	return out, nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
