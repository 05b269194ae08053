package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{400, 512},
		{512, 512},
		{513, 1024},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NextPowerOfTwo(tt.in), "NextPowerOfTwo(%d)", tt.in)
	}
}

func TestEpsilon(t *testing.T) {
	// smallest x with 1+x != 1
	assert.Equal(t, math.Nextafter(1, 2)-1, Epsilon)
}

func TestLogEnergy(t *testing.T) {
	signal := []float64{1, 2, 3}

	// log(14) without flooring
	assert.InDelta(t, math.Log(14), LogEnergy(signal, 0.0), 1e-12)

	// silent frame floors at machine epsilon
	assert.InDelta(t, math.Log(Epsilon), LogEnergy([]float64{0, 0, 0}, 0.0), 1e-12)

	// energy floor wins over epsilon for silent frames
	assert.Equal(t, 0.0, LogEnergy([]float64{0, 0, 0}, 1.0))

	// but does not clip energies above it
	assert.InDelta(t, math.Log(14), LogEnergy(signal, 1.0), 1e-12)
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-12)
}
