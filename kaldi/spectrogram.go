package kaldi

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/adefossez/audio/algorithms/common"
	"github.com/adefossez/audio/algorithms/spectral"
	"github.com/adefossez/audio/logging"
)

// Spectrogram creates a spectrogram from a raw audio signal, matching
// the input/output of Kaldi's compute-spectrogram-feats.
//
// The result has shape (m, paddedWindowSize/2+1) where m follows the
// snip-edges framing arithmetic. The zeroth column of every row holds
// the frame's signal log-energy rather than the DC spectral energy.
func Spectrogram(waveform [][]float64, cfg SpectrogramConfig) (*mat.Dense, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	signal, windowShift, windowSize, paddedWindowSize, err := waveformAndWindowProperties(waveform, &cfg)
	if err != nil {
		return nil, err
	}

	if float64(len(signal)) < cfg.MinDuration*cfg.SampleFrequency {
		logging.Debug("signal shorter than min duration", logging.Fields{
			"samples":      len(signal),
			"min_duration": cfg.MinDuration,
		})
		return &mat.Dense{}, nil
	}

	frames := getStrided(signal, windowSize, windowShift, cfg.SnipEdges)
	windows, signalLogEnergy, err := processFrames(frames, windowSize, paddedWindowSize, &cfg)
	if err != nil {
		return nil, err
	}

	m, _ := windows.Dims()
	if m == 0 {
		return &mat.Dense{}, nil
	}

	numBins := paddedWindowSize/2 + 1
	halfSpectrum := spectral.NewHalfSpectrum()

	out := mat.NewDense(m, numBins, nil)
	for i := range m {
		power := halfSpectrum.Power(windows.RawRowView(i))
		row := out.RawRowView(i)
		for j, p := range power {
			row[j] = math.Log(math.Max(p, common.Epsilon))
		}
		// The DC bin carries the signal energy, not spectral energy
		row[0] = signalLogEnergy[i]
	}

	subtractColumnMean(out, cfg.SubtractMean)
	return out, nil
}

// subtractColumnMean subtracts the column-wise mean across frames
// (cepstral-mean-style normalization) when enabled.
func subtractColumnMean(m *mat.Dense, subtract bool) {
	if !subtract {
		return
	}

	rows, cols := m.Dims()
	if rows == 0 {
		return
	}

	col := make([]float64, rows)
	for j := range cols {
		mat.Col(col, j, m)
		mean := stat.Mean(col, nil)
		for i := range rows {
			m.Set(i, j, m.At(i, j)-mean)
		}
	}
}
