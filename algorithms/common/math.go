package common

import (
	"math"
	"math/bits"

	"gonum.org/v1/gonum/stat"
)

// Epsilon is the smallest representable positive increment of a float64,
// used as the floor for logarithms of energies and spectra.
const Epsilon = 0x1p-52

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// NextPowerOfTwo returns the smallest power of 2 that is >= x.
// NextPowerOfTwo(0) == 1.
func NextPowerOfTwo(x int) int {
	if x <= 0 {
		return 1
	}
	return 1 << bits.Len(uint(x-1))
}

// LogEnergy returns log(max(sum(x_i^2), Epsilon)), optionally floored
// again at log(energyFloor) when energyFloor != 0.
func LogEnergy(signal []float64, energyFloor float64) float64 {
	sum := 0.0
	for _, v := range signal {
		sum += v * v
	}

	logEnergy := math.Log(math.Max(sum, Epsilon))
	if energyFloor == 0.0 {
		return logEnergy
	}
	return math.Max(logEnergy, math.Log(energyFloor))
}
