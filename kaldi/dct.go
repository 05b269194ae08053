package kaldi

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// dctMatrix builds the orthonormal DCT-II basis of shape
// (numMelBins, numCeps), for right-multiplying a row-per-frame matrix
// of log mel energies. Column 0 is the constant sqrt(1/numMelBins),
// which is what the orthonormal normalization produces for k=0 and is
// the convention expected for C0.
func dctMatrix(numCeps, numMelBins int) *mat.Dense {
	basis := mat.NewDense(numMelBins, numCeps, nil)

	scale := math.Sqrt(2.0 / float64(numMelBins))
	c0 := math.Sqrt(1.0 / float64(numMelBins))

	for n := range numMelBins {
		row := basis.RawRowView(n)
		row[0] = c0
		for k := 1; k < numCeps; k++ {
			row[k] = scale * math.Cos(math.Pi*float64(k)*(float64(n)+0.5)/float64(numMelBins))
		}
	}

	return basis
}

// lifterCoeffs returns the per-cepstral-index liftering scale factors
// 1 + 0.5*lifter*sin(pi*i/lifter). Index 0 (C0) comes out as 1.
func lifterCoeffs(numCeps int, cepstralLifter float64) []float64 {
	coeffs := make([]float64, numCeps)
	for i := range coeffs {
		coeffs[i] = 1.0 + 0.5*cepstralLifter*math.Sin(math.Pi*float64(i)/cepstralLifter)
	}
	return coeffs
}
