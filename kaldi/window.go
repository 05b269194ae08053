package kaldi

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/adefossez/audio/algorithms/common"
	"github.com/adefossez/audio/algorithms/windowing"
)

// processFrames runs the per-frame conditioning steps in their fixed
// order: dither, DC-offset removal, raw energy, pre-emphasis, window
// function, FFT-size padding, post-window energy. It returns the
// padded (m, paddedWindowSize) frame matrix and the per-frame signal
// log-energy.
func processFrames(frames *mat.Dense, windowSize, paddedWindowSize int, cfg *SpectrogramConfig) (*mat.Dense, []float64, error) {
	m, _ := frames.Dims()
	if m == 0 {
		return &mat.Dense{}, nil, nil
	}

	if cfg.Dither != 0.0 {
		applyDither(frames, cfg.Dither, cfg.Src)
	}

	if cfg.RemoveDCOffset {
		for i := range m {
			row := frames.RawRowView(i)
			mean := stat.Mean(row, nil)
			for j := range row {
				row[j] -= mean
			}
		}
	}

	var signalLogEnergy []float64
	if cfg.RawEnergy {
		// Energy of each frame before pre-emphasis and windowing
		signalLogEnergy = make([]float64, m)
		for i := range m {
			signalLogEnergy[i] = common.LogEnergy(frames.RawRowView(i), cfg.EnergyFloor)
		}
	}

	if cfg.PreemphasisCoefficient != 0.0 {
		for i := range m {
			row := frames.RawRowView(i)
			// Walk backwards so each x[j-1] is still the original
			// sample; x[-1] is the first sample replicated.
			for j := len(row) - 1; j >= 1; j-- {
				row[j] -= cfg.PreemphasisCoefficient * row[j-1]
			}
			row[0] -= cfg.PreemphasisCoefficient * row[0]
		}
	}

	window, err := windowing.New(cfg.WindowType, windowSize, cfg.BlackmanCoeff)
	if err != nil {
		return nil, nil, err
	}
	for i := range m {
		if err := window.ApplyInPlace(frames.RawRowView(i)); err != nil {
			return nil, nil, err
		}
	}

	padded := frames
	if paddedWindowSize != windowSize {
		padded = mat.NewDense(m, paddedWindowSize, nil)
		for i := range m {
			copy(padded.RawRowView(i)[:windowSize], frames.RawRowView(i))
		}
	}

	if !cfg.RawEnergy {
		// Energy after the window function (and zero padding)
		signalLogEnergy = make([]float64, m)
		for i := range m {
			signalLogEnergy[i] = common.LogEnergy(padded.RawRowView(i), cfg.EnergyFloor)
		}
	}

	return padded, signalLogEnergy, nil
}

// applyDither adds Box-Muller-style noise to every sample: for a fresh
// uniform x in (0,1), the perturbation is dither*sqrt(-2 ln x)*cos(2 pi x).
func applyDither(frames *mat.Dense, dither float64, src rand.Source) {
	uniform := distuv.Uniform{Min: 0, Max: 1, Src: src}

	// Frames come from mat.NewDense, so the backing slice is dense.
	data := frames.RawMatrix().Data
	for i := range data {
		x := math.Max(common.Epsilon, uniform.Rand())
		data[i] += dither * math.Sqrt(-2*math.Log(x)) * math.Cos(2*math.Pi*x)
	}
}
