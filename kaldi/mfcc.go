package kaldi

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// MFCC creates mel-frequency cepstral coefficients from a raw audio
// signal, matching the input/output of Kaldi's compute-mfcc-feats.
//
// The result has shape (m, NumCeps). Column 0 holds C0, or the signal
// log-energy when UseEnergy is set; HTKCompat moves that column to the
// end, rescaling a non-energy C0 by sqrt(2) to undo the shared DCT
// normalization.
func MFCC(waveform [][]float64, cfg MFCCConfig) (*mat.Dense, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// The mel energies must be log power without mean subtraction;
	// mean subtraction applies to the final cepstra only.
	fbankCfg := cfg.FbankConfig
	fbankCfg.UsePower = true
	fbankCfg.UseLogFbank = true
	fbankCfg.SubtractMean = false

	feature, err := Fbank(waveform, fbankCfg)
	if err != nil {
		return nil, err
	}

	m, _ := feature.Dims()
	if m == 0 {
		return &mat.Dense{}, nil
	}

	var signalLogEnergy []float64
	melEnergies := mat.Matrix(feature)
	if cfg.UseEnergy {
		energyCol := 0
		melOffset := 1
		if cfg.HTKCompat {
			energyCol = cfg.NumMelBins
			melOffset = 0
		}

		signalLogEnergy = make([]float64, m)
		mat.Col(signalLogEnergy, energyCol, feature)
		melEnergies = feature.Slice(0, m, melOffset, melOffset+cfg.NumMelBins)
	}

	var out mat.Dense
	out.Mul(melEnergies, dctMatrixFor(cfg.NumCeps, cfg.NumMelBins))

	if cfg.CepstralLifter != 0.0 {
		coeffs := lifterCoeffsFor(cfg.NumCeps, cfg.CepstralLifter)
		for i := range m {
			row := out.RawRowView(i)
			for k, c := range coeffs {
				row[k] *= c
			}
		}
	}

	if cfg.UseEnergy {
		for i := range m {
			out.Set(i, 0, signalLogEnergy[i])
		}
	}

	result := &out
	if cfg.HTKCompat {
		result = mat.NewDense(m, cfg.NumCeps, nil)
		for i := range m {
			src := out.RawRowView(i)
			dst := result.RawRowView(i)
			copy(dst[:cfg.NumCeps-1], src[1:])

			first := src[0]
			if !cfg.UseEnergy {
				// removing a scale previously added as part of one
				// common definition of the cosine transform
				first *= math.Sqrt2
			}
			dst[cfg.NumCeps-1] = first
		}
	}

	subtractColumnMean(result, cfg.SubtractMean)
	return result, nil
}
