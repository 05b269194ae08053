package kaldi

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/adefossez/audio/algorithms/common"
	"github.com/adefossez/audio/algorithms/spectral"
	"github.com/adefossez/audio/logging"
)

// Fbank creates mel-filterbank features from a raw audio signal,
// matching the input/output of Kaldi's compute-fbank-feats.
//
// The result has shape (m, NumMelBins + e) where e is 1 when UseEnergy
// is set; the energy column goes first, or last with HTKCompat.
func Fbank(waveform [][]float64, cfg FbankConfig) (*mat.Dense, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	signal, windowShift, windowSize, paddedWindowSize, err := waveformAndWindowProperties(waveform, &cfg.SpectrogramConfig)
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
	windows, signalLogEnergy, err := processFrames(frames, windowSize, paddedWindowSize, &cfg.SpectrogramConfig)
	if err != nil {
		return nil, err
	}

	m, _ := windows.Dims()
	if m == 0 {
		return &mat.Dense{}, nil
	}

	numBins := paddedWindowSize/2 + 1
	halfSpectrum := spectral.NewHalfSpectrum()

	spectrum := mat.NewDense(m, numBins, nil)
	for i := range m {
		var frame []float64
		if cfg.UsePower {
			frame = halfSpectrum.Power(windows.RawRowView(i))
		} else {
			frame = halfSpectrum.Magnitude(windows.RawRowView(i))
		}
		copy(spectrum.RawRowView(i), frame)
	}

	// (NumMelBins, numBins): triangular weights with a zeroed Nyquist column
	melBank, err := paddedMelBanksFor(&cfg, paddedWindowSize)
	if err != nil {
		return nil, err
	}

	var melEnergies mat.Dense
	melEnergies.Mul(spectrum, melBank.T())

	if cfg.UseLogFbank {
		// avoid log of zero, which should be prevented anyway by dithering
		data := melEnergies.RawMatrix().Data
		for i, v := range data {
			data[i] = math.Log(math.Max(v, common.Epsilon))
		}
	}

	out := &melEnergies
	if cfg.UseEnergy {
		out = mat.NewDense(m, cfg.NumMelBins+1, nil)
		for i := range m {
			row := out.RawRowView(i)
			if cfg.HTKCompat {
				copy(row[:cfg.NumMelBins], melEnergies.RawRowView(i))
				row[cfg.NumMelBins] = signalLogEnergy[i]
			} else {
				row[0] = signalLogEnergy[i]
				copy(row[1:], melEnergies.RawRowView(i))
			}
		}
	}

	subtractColumnMean(out, cfg.SubtractMean)
	return out, nil
}
