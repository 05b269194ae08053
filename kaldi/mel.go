package kaldi

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MelScale converts a frequency in Hz to the mel scale.
func MelScale(freq float64) float64 {
	return 1127.0 * math.Log(1.0+freq/700.0)
}

// InverseMelScale converts a mel-scale value back to Hz.
func InverseMelScale(melFreq float64) float64 {
	return 700.0 * (math.Exp(melFreq/1127.0) - 1.0)
}

// VTLNWarpFreq computes the piecewise-linear VTLN warp F(freq), defined
// between lowFreq and highFreq inclusive, with F(lowFreq) == lowFreq
// and F(highFreq) == highFreq. The function is continuous with two
// inflection points: l = vtlnLowCutoff * max(1, warp) and
// h = vtlnHighCutoff * min(1, warp). For l <= f <= h, F(f) = f/warp;
// below l and above h it interpolates linearly to the fixed endpoints;
// outside [lowFreq, highFreq] it is the identity.
func VTLNWarpFreq(vtlnLowCutoff, vtlnHighCutoff, lowFreq, highFreq, vtlnWarpFactor, freq float64) (float64, error) {
	if vtlnLowCutoff <= lowFreq {
		return 0, fmt.Errorf("%w: be sure to set the vtln-low option higher than low-freq (%v vs %v)",
			ErrInvalidConfig, vtlnLowCutoff, lowFreq)
	}
	if vtlnHighCutoff >= highFreq {
		return 0, fmt.Errorf("%w: be sure to set the vtln-high option lower than high-freq [or negative] (%v vs %v)",
			ErrInvalidConfig, vtlnHighCutoff, highFreq)
	}

	l := vtlnLowCutoff * math.Max(1.0, vtlnWarpFactor)
	h := vtlnHighCutoff * math.Min(1.0, vtlnWarpFactor)
	if l <= lowFreq || h >= highFreq {
		return 0, fmt.Errorf("%w: vtln inflection points (%v, %v) not bracketed by low-freq %v and high-freq %v",
			ErrInvalidConfig, l, h, lowFreq, highFreq)
	}

	scale := 1.0 / vtlnWarpFactor
	fl := scale * l // F(l)
	fh := scale * h // F(h)

	// slope of the left part of the 3-piece linear function; the
	// center part's slope is just "scale"
	scaleLeft := (fl - lowFreq) / (l - lowFreq)
	// slope of the right part
	scaleRight := (highFreq - fh) / (highFreq - h)

	// The regions below overlap; later assignments win, so the order
	// (after-h, before-h, before-l, outside) must not be reordered.
	res := freq
	if freq >= h {
		res = highFreq + scaleRight*(freq-highFreq)
	}
	if freq < h {
		res = scale * freq
	}
	if freq < l {
		res = lowFreq + scaleLeft*(freq-lowFreq)
	}
	if freq < lowFreq || freq > highFreq {
		res = freq
	}

	return res, nil
}

// VTLNWarpMelFreq applies VTLNWarpFreq to a mel-scale frequency: the
// input is converted to Hz, warped, and converted back.
func VTLNWarpMelFreq(vtlnLowCutoff, vtlnHighCutoff, lowFreq, highFreq, vtlnWarpFactor, melFreq float64) (float64, error) {
	warped, err := VTLNWarpFreq(vtlnLowCutoff, vtlnHighCutoff, lowFreq, highFreq,
		vtlnWarpFactor, InverseMelScale(melFreq))
	if err != nil {
		return 0, err
	}
	return MelScale(warped), nil
}

// MelBanks builds the (numBins, windowLengthPadded/2) triangular mel
// filter weight matrix and the per-bin center frequencies in Hz.
//
// highFreq <= 0 is interpreted as an offset from the Nyquist frequency,
// as is a negative vtlnHigh. When vtlnWarpFactor != 1 the triangle
// boundaries are warped through VTLNWarpFreq before the weights are
// computed; warping can reorder the boundaries, so the per-region
// weight rule is used instead of the min/max shortcut.
func MelBanks(numBins, windowLengthPadded int, sampleFreq, lowFreq, highFreq, vtlnLow, vtlnHigh, vtlnWarpFactor float64) (*mat.Dense, []float64, error) {
	if numBins <= 3 {
		return nil, nil, fmt.Errorf("%w: must have at least 3 mel bins, got %d", ErrInvalidConfig, numBins)
	}
	if windowLengthPadded%2 != 0 {
		return nil, nil, fmt.Errorf("%w: padded window length must be even, got %d", ErrInvalidConfig, windowLengthPadded)
	}

	numFFTBins := windowLengthPadded / 2
	nyquist := 0.5 * sampleFreq

	if highFreq <= 0.0 {
		highFreq += nyquist
	}
	if lowFreq < 0.0 || lowFreq >= nyquist || highFreq <= 0.0 || highFreq > nyquist || lowFreq >= highFreq {
		return nil, nil, fmt.Errorf("%w: bad values in options: low-freq %v and high-freq %v vs. nyquist %v",
			ErrInvalidConfig, lowFreq, highFreq, nyquist)
	}

	// fft-bin width; think of it as Nyquist-freq / half-window-length
	fftBinWidth := sampleFreq / float64(windowLengthPadded)
	melLowFreq := MelScale(lowFreq)
	melHighFreq := MelScale(highFreq)

	// divide by numBins+1 because of end-effects where the bins spread
	// out to the sides
	melFreqDelta := (melHighFreq - melLowFreq) / float64(numBins+1)

	if vtlnHigh < 0.0 {
		vtlnHigh += nyquist
	}
	if vtlnWarpFactor != 1.0 &&
		!(lowFreq < vtlnLow && vtlnLow < highFreq && 0.0 < vtlnHigh && vtlnHigh < highFreq && vtlnLow < vtlnHigh) {
		return nil, nil, fmt.Errorf("%w: bad values in options: vtln-low %v and vtln-high %v, versus low-freq %v and high-freq %v",
			ErrInvalidConfig, vtlnLow, vtlnHigh, lowFreq, highFreq)
	}

	bins := mat.NewDense(numBins, numFFTBins, nil)
	centerFreqs := make([]float64, numBins)

	for i := range numBins {
		leftMel := melLowFreq + float64(i)*melFreqDelta
		centerMel := melLowFreq + (float64(i)+1.0)*melFreqDelta
		rightMel := melLowFreq + (float64(i)+2.0)*melFreqDelta

		if vtlnWarpFactor != 1.0 {
			var err error
			if leftMel, err = VTLNWarpMelFreq(vtlnLow, vtlnHigh, lowFreq, highFreq, vtlnWarpFactor, leftMel); err != nil {
				return nil, nil, err
			}
			if centerMel, err = VTLNWarpMelFreq(vtlnLow, vtlnHigh, lowFreq, highFreq, vtlnWarpFactor, centerMel); err != nil {
				return nil, nil, err
			}
			if rightMel, err = VTLNWarpMelFreq(vtlnLow, vtlnHigh, lowFreq, highFreq, vtlnWarpFactor, rightMel); err != nil {
				return nil, nil, err
			}
		}
		centerFreqs[i] = InverseMelScale(centerMel)

		row := bins.RawRowView(i)
		for j := range numFFTBins {
			melBin := MelScale(fftBinWidth * float64(j))

			if vtlnWarpFactor == 1.0 {
				// leftMel < centerMel < rightMel, so the two slopes can
				// be combined and clamped
				upSlope := (melBin - leftMel) / (centerMel - leftMel)
				downSlope := (rightMel - melBin) / (rightMel - centerMel)
				row[j] = math.Max(0.0, math.Min(upSlope, downSlope))
			} else {
				// warping can move leftMel/centerMel/rightMel anywhere,
				// so each slope only applies inside its own region
				switch {
				case leftMel < melBin && melBin <= centerMel:
					row[j] = (melBin - leftMel) / (centerMel - leftMel)
				case centerMel < melBin && melBin < rightMel:
					row[j] = (rightMel - melBin) / (rightMel - centerMel)
				default:
					row[j] = 0.0
				}
			}
		}
	}

	return bins, centerFreqs, nil
}
