package kaldi

import (
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Derived matrices are pure functions of their configuration, so they
// are memoized by configuration key and shared read-only across calls.
// Correctness never depends on a cache hit.

type melBankKey struct {
	numBins            int
	windowLengthPadded int
	sampleFreq         float64
	lowFreq            float64
	highFreq           float64
	vtlnLow            float64
	vtlnHigh           float64
	vtlnWarp           float64
}

type dctKey struct {
	numCeps    int
	numMelBins int
}

type lifterKey struct {
	numCeps int
	lifter  float64
}

var (
	melBankCache sync.Map // melBankKey -> *mat.Dense (zero-padded last column)
	dctCache     sync.Map // dctKey -> *mat.Dense
	lifterCache  sync.Map // lifterKey -> []float64
)

// paddedMelBanksFor returns the mel bank for the configuration with one
// zero column appended on the right, aligning its width with the
// paddedWindowSize/2+1 FFT bins of the spectrum.
func paddedMelBanksFor(cfg *FbankConfig, paddedWindowSize int) (*mat.Dense, error) {
	key := melBankKey{
		numBins:            cfg.NumMelBins,
		windowLengthPadded: paddedWindowSize,
		sampleFreq:         cfg.SampleFrequency,
		lowFreq:            cfg.LowFreq,
		highFreq:           cfg.HighFreq,
		vtlnLow:            cfg.VTLNLow,
		vtlnHigh:           cfg.VTLNHigh,
		vtlnWarp:           cfg.VTLNWarp,
	}

	if cached, ok := melBankCache.Load(key); ok {
		return cached.(*mat.Dense), nil
	}

	bank, _, err := MelBanks(cfg.NumMelBins, paddedWindowSize, cfg.SampleFrequency,
		cfg.LowFreq, cfg.HighFreq, cfg.VTLNLow, cfg.VTLNHigh, cfg.VTLNWarp)
	if err != nil {
		return nil, err
	}

	rows, cols := bank.Dims()
	padded := mat.NewDense(rows, cols+1, nil)
	for i := range rows {
		copy(padded.RawRowView(i)[:cols], bank.RawRowView(i))
	}

	melBankCache.Store(key, padded)
	return padded, nil
}

func dctMatrixFor(numCeps, numMelBins int) *mat.Dense {
	key := dctKey{numCeps: numCeps, numMelBins: numMelBins}

	if cached, ok := dctCache.Load(key); ok {
		return cached.(*mat.Dense)
	}

	basis := dctMatrix(numCeps, numMelBins)
	dctCache.Store(key, basis)
	return basis
}

func lifterCoeffsFor(numCeps int, cepstralLifter float64) []float64 {
	key := lifterKey{numCeps: numCeps, lifter: cepstralLifter}

	if cached, ok := lifterCache.Load(key); ok {
		return cached.([]float64)
	}

	coeffs := lifterCoeffs(numCeps, cepstralLifter)
	lifterCache.Store(key, coeffs)
	return coeffs
}
