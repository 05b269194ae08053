package kaldi

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/adefossez/audio/algorithms/common"
)

// numFrames returns the number of frames produced by slicing numSamples
// samples with the given window size, shift and edge policy.
func numFrames(numSamples, windowSize, windowShift int, snipEdges bool) int {
	if snipEdges {
		if numSamples < windowSize {
			return 0
		}
		return 1 + (numSamples-windowSize)/windowShift
	}
	return (numSamples + windowShift/2) / windowShift
}

// getStrided slices a waveform into overlapping frames, one frame per
// row. Each row is an independent copy; mutating one frame never leaks
// into its neighbors even where frames overlap.
//
// With snipEdges only fully-contained frames are produced. Without it
// the waveform is extended at both ends by mirroring that duplicates
// the boundary sample: the padded sequence for [0 1 2] with pad 2 is
// [1 0 0 1 2 2 1 0], not the center-excluding [2 1 0 1 2 ...]
// reflection. The pad amount windowSize/2 - windowShift/2 may be
// negative, in which case samples are trimmed from the front before
// the mirrored tail is appended. Kaldi frames this way and downstream
// consumers depend on it sample for sample.
func getStrided(signal []float64, windowSize, windowShift int, snipEdges bool) *mat.Dense {
	m := numFrames(len(signal), windowSize, windowShift, snipEdges)
	if m <= 0 {
		return &mat.Dense{}
	}

	src := signal
	if !snipEdges {
		reversed := make([]float64, len(signal))
		for i, v := range signal {
			reversed[len(signal)-1-i] = v
		}

		pad := windowSize/2 - windowShift/2
		padded := make([]float64, 0, len(signal)*2+pad)
		if pad > 0 {
			padded = append(padded, reversed[len(reversed)-pad:]...)
			padded = append(padded, signal...)
		} else {
			// pad is negative so the waveform is trimmed at the front
			padded = append(padded, signal[-pad:]...)
		}
		padded = append(padded, reversed...)
		src = padded
	}

	frames := mat.NewDense(m, windowSize, nil)
	for i := range m {
		start := i * windowShift
		copy(frames.RawRowView(i), src[start:start+windowSize])
	}

	return frames
}

// waveformAndWindowProperties selects the configured channel and
// derives the window geometry, validating the per-call contract.
func waveformAndWindowProperties(waveform [][]float64, cfg *SpectrogramConfig) (signal []float64, windowShift, windowSize, paddedWindowSize int, err error) {
	channel := cfg.Channel
	if channel < 0 {
		if len(waveform) != 1 {
			return nil, 0, 0, 0, fmt.Errorf("%w: channel -1 expects a mono waveform, got %d channels",
				ErrInvalidConfig, len(waveform))
		}
		channel = 0
	}
	if channel >= len(waveform) {
		return nil, 0, 0, 0, fmt.Errorf("%w: invalid channel %d for size %d",
			ErrInvalidConfig, channel, len(waveform))
	}
	signal = waveform[channel]

	windowShift = int(cfg.SampleFrequency * cfg.FrameShift * millisecondsToSeconds)
	windowSize = int(cfg.SampleFrequency * cfg.FrameLength * millisecondsToSeconds)
	paddedWindowSize = windowSize
	if cfg.RoundToPowerOfTwo {
		paddedWindowSize = common.NextPowerOfTwo(windowSize)
	}

	if windowSize < 2 || windowSize > len(signal) {
		return nil, 0, 0, 0, fmt.Errorf("%w: choose a window size %d that is [2, %d]",
			ErrInvalidConfig, windowSize, len(signal))
	}
	if windowShift <= 0 {
		return nil, 0, 0, 0, fmt.Errorf("%w: window shift must be greater than 0", ErrInvalidConfig)
	}
	if paddedWindowSize%2 != 0 {
		return nil, 0, 0, 0, fmt.Errorf("%w: the padded window size must be divisible by two, got %d; use round_to_power_of_two or change frame_length",
			ErrInvalidConfig, paddedWindowSize)
	}

	return signal, windowShift, windowSize, paddedWindowSize, nil
}
