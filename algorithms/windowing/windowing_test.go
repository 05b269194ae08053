package windowing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const windowTolerance = 1e-12

func TestNew_AllTypes(t *testing.T) {
	tests := []struct {
		windowType string
	}{
		{TypeHamming},
		{TypeHanning},
		{TypePovey},
		{TypeRectangular},
		{TypeBlackman},
	}

	for _, tt := range tests {
		t.Run(tt.windowType, func(t *testing.T) {
			window, err := New(tt.windowType, 32, 0.42)
			require.NoError(t, err)
			assert.Equal(t, tt.windowType, window.GetType())
			assert.Equal(t, 32, window.GetSize())
			assert.Len(t, window.GetCoefficients(), 32)
		})
	}
}

func TestNew_InvalidType(t *testing.T) {
	_, err := New("kaiser", 32, 0.42)
	require.Error(t, err)

	assert.False(t, IsValidType("kaiser"))
	assert.True(t, IsValidType(TypePovey))
}

func TestHanning_Coefficients(t *testing.T) {
	window := NewHanning(5)
	coeffs := window.GetCoefficients()

	expected := []float64{0.0, 0.5, 1.0, 0.5, 0.0}
	for i, want := range expected {
		assert.InDelta(t, want, coeffs[i], windowTolerance, "coefficient %d", i)
	}
}

func TestHamming_Coefficients(t *testing.T) {
	window := NewHamming(5)
	coeffs := window.GetCoefficients()

	expected := []float64{0.08, 0.54, 1.0, 0.54, 0.08}
	for i, want := range expected {
		assert.InDelta(t, want, coeffs[i], windowTolerance, "coefficient %d", i)
	}
}

func TestPovey_IsHanningToThe085(t *testing.T) {
	hanning := NewHanning(17).GetCoefficients()
	povey := NewPovey(17).GetCoefficients()

	for i := range povey {
		assert.InDelta(t, math.Pow(hanning[i], 0.85), povey[i], windowTolerance)
	}

	// tapers exactly to zero at the edges
	assert.Equal(t, 0.0, povey[0])
	assert.Equal(t, 0.0, povey[16])
}

func TestRectangular_AllOnes(t *testing.T) {
	coeffs := NewRectangular(8).GetCoefficients()
	for i, c := range coeffs {
		assert.Equal(t, 1.0, c, "coefficient %d", i)
	}
}

func TestBlackman_GeneralizedTwoTerm(t *testing.T) {
	const coeff = 0.42
	window := NewBlackman(5, coeff)
	coeffs := window.GetCoefficients()

	// w[0] = a - 0.5 + (0.5-a) = 0, w[2] = a + 0.5 + (0.5-a) = 1
	assert.InDelta(t, 0.0, coeffs[0], windowTolerance)
	assert.InDelta(t, 1.0, coeffs[2], windowTolerance)

	for i := range 5 {
		k := float64(i)
		want := coeff - 0.5*math.Cos(2*math.Pi*k/4) + (0.5-coeff)*math.Cos(4*math.Pi*k/4)
		assert.InDelta(t, want, coeffs[i], windowTolerance, "coefficient %d", i)
	}
}

func TestApplyInPlace_SizeMismatch(t *testing.T) {
	window := NewHamming(8)

	err := window.ApplyInPlace(make([]float64, 4))
	require.Error(t, err)

	assert.Nil(t, window.Apply(make([]float64, 4)))
}

func TestApply_MultipliesSamples(t *testing.T) {
	window := NewHanning(5)
	signal := []float64{2, 2, 2, 2, 2}

	windowed := window.Apply(signal)
	require.NotNil(t, windowed)
	assert.InDelta(t, 2.0, windowed[2], windowTolerance)
	assert.InDelta(t, 0.0, windowed[0], windowTolerance)

	// Apply must not mutate its input
	assert.Equal(t, 2.0, signal[0])

	require.NoError(t, window.ApplyInPlace(signal))
	assert.InDelta(t, 0.0, signal[0], windowTolerance)
	assert.InDelta(t, 2.0, signal[2], windowTolerance)
}
