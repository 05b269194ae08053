package kaldi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const melTolerance = 1e-10

func TestMelScale_RoundTrip(t *testing.T) {
	assert.Equal(t, 0.0, MelScale(0))
	assert.InDelta(t, 1127.0*math.Log(2), MelScale(700), melTolerance)

	for _, freq := range []float64{20, 100, 440, 1000, 4000, 7900} {
		assert.InDelta(t, freq, InverseMelScale(MelScale(freq)), 1e-9, "freq %v", freq)
	}
}

func TestVTLNWarpFreq(t *testing.T) {
	const (
		vtlnLow  = 100.0
		vtlnHigh = 7500.0
		lowFreq  = 20.0
		highFreq = 7800.0
	)

	t.Run("identity_warp", func(t *testing.T) {
		for _, freq := range []float64{50, 100, 1000, 7500, 7700} {
			warped, err := VTLNWarpFreq(vtlnLow, vtlnHigh, lowFreq, highFreq, 1.0, freq)
			require.NoError(t, err)
			assert.InDelta(t, freq, warped, melTolerance)
		}
	})

	t.Run("endpoints_are_fixed", func(t *testing.T) {
		for _, warp := range []float64{0.9, 1.1} {
			for _, freq := range []float64{lowFreq, highFreq} {
				warped, err := VTLNWarpFreq(vtlnLow, vtlnHigh, lowFreq, highFreq, warp, freq)
				require.NoError(t, err)
				assert.InDelta(t, freq, warped, melTolerance)
			}
		}
	})

	t.Run("center_region_scales_by_inverse_warp", func(t *testing.T) {
		const warp = 1.1
		// inflection points: l = 100*1.1 = 110, h = 7500*1.0 = 7500
		for _, freq := range []float64{110, 500, 3000, 7000} {
			warped, err := VTLNWarpFreq(vtlnLow, vtlnHigh, lowFreq, highFreq, warp, freq)
			require.NoError(t, err)
			assert.InDelta(t, freq/warp, warped, melTolerance, "freq %v", freq)
		}
	})

	t.Run("outside_range_is_identity", func(t *testing.T) {
		for _, freq := range []float64{0, 10, 7900} {
			warped, err := VTLNWarpFreq(vtlnLow, vtlnHigh, lowFreq, highFreq, 0.9, freq)
			require.NoError(t, err)
			assert.InDelta(t, freq, warped, melTolerance)
		}
	})

	t.Run("continuous_and_monotone", func(t *testing.T) {
		const warp = 0.92
		prev := math.Inf(-1)
		for freq := 0.0; freq <= 7800; freq += 2.5 {
			warped, err := VTLNWarpFreq(vtlnLow, vtlnHigh, lowFreq, highFreq, warp, freq)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, warped, prev)
			prev = warped
		}
	})

	t.Run("bad_cutoffs", func(t *testing.T) {
		_, err := VTLNWarpFreq(10, vtlnHigh, lowFreq, highFreq, 1.0, 100)
		require.ErrorIs(t, err, ErrInvalidConfig)

		_, err = VTLNWarpFreq(vtlnLow, 8000, lowFreq, highFreq, 1.0, 100)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestMelBanks_Shape(t *testing.T) {
	bank, centerFreqs, err := MelBanks(23, 512, 16000, 20, 0, 100, -500, 1.0)
	require.NoError(t, err)

	rows, cols := bank.Dims()
	assert.Equal(t, 23, rows)
	assert.Equal(t, 256, cols)
	assert.Len(t, centerFreqs, 23)
}

func TestMelBanks_TriangleProperties(t *testing.T) {
	bank, centerFreqs, err := MelBanks(23, 512, 16000, 20, 0, 100, -500, 1.0)
	require.NoError(t, err)

	rows, cols := bank.Dims()
	for i := range rows {
		row := bank.RawRowView(i)

		peak, peakIdx := 0.0, 0
		for j, v := range row {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
			if v > peak {
				peak, peakIdx = v, j
			}
		}
		require.Greater(t, peak, 0.0, "bin %d has no support", i)

		// the peak FFT bin sits next to the reported center frequency
		fftBinWidth := 16000.0 / 512.0
		assert.InDelta(t, centerFreqs[i], fftBinWidth*float64(peakIdx), fftBinWidth)

		// rises to the peak then falls
		for j := 1; j <= peakIdx; j++ {
			assert.GreaterOrEqual(t, row[j], row[j-1])
		}
		for j := peakIdx + 1; j < cols; j++ {
			assert.LessOrEqual(t, row[j], row[j-1])
		}
	}

	// center frequencies are strictly increasing
	for i := 1; i < len(centerFreqs); i++ {
		assert.Greater(t, centerFreqs[i], centerFreqs[i-1])
	}
}

func TestMelBanks_HighFreqNyquistOffset(t *testing.T) {
	// highFreq 0 means the Nyquist frequency; -100 means nyquist-100
	full, _, err := MelBanks(23, 512, 16000, 20, 0, 100, -500, 1.0)
	require.NoError(t, err)

	narrowed, _, err := MelBanks(23, 512, 16000, 20, -100, 100, -500, 1.0)
	require.NoError(t, err)

	_, cols := full.Dims()
	// the top bin of the narrowed bank must not reach bins the full one
	// only reaches at the very top
	lastFull := full.RawRowView(22)
	lastNarrow := narrowed.RawRowView(22)
	assert.Greater(t, lastFull[cols-1]+lastNarrow[cols-1], 0.0)
	assert.NotEqual(t, lastFull, lastNarrow)
}

func TestMelBanks_WarpMatchesIdentityAtWarpOne(t *testing.T) {
	// warp factor 1.0 must give identical weights through either code path
	plain, _, err := MelBanks(23, 512, 16000, 20, 0, 100, -500, 1.0)
	require.NoError(t, err)

	warped, _, err := MelBanks(23, 512, 16000, 20, 0, 100, -500, 1.0000000001)
	require.NoError(t, err)

	rows, cols := plain.Dims()
	for i := range rows {
		for j := range cols {
			assert.InDelta(t, plain.At(i, j), warped.At(i, j), 1e-5)
		}
	}
}

func TestMelBanks_WarpShiftsCenters(t *testing.T) {
	_, plainCenters, err := MelBanks(23, 512, 16000, 20, 0, 100, -500, 1.0)
	require.NoError(t, err)

	_, warpedCenters, err := MelBanks(23, 512, 16000, 20, 0, 100, -500, 1.1)
	require.NoError(t, err)

	// warp > 1 compresses the spectrum: interior centers move down
	moved := 0
	for i := range plainCenters {
		if warpedCenters[i] < plainCenters[i]-1.0 {
			moved++
		}
	}
	assert.Greater(t, moved, len(plainCenters)/2)
}

func TestMelBanks_Errors(t *testing.T) {
	t.Run("too_few_bins", func(t *testing.T) {
		_, _, err := MelBanks(3, 512, 16000, 20, 0, 100, -500, 1.0)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("odd_window_length", func(t *testing.T) {
		_, _, err := MelBanks(23, 511, 16000, 20, 0, 100, -500, 1.0)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("low_freq_above_high_freq", func(t *testing.T) {
		_, _, err := MelBanks(23, 512, 16000, 7000, 5000, 100, -500, 1.0)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("bad_vtln_cutoffs_with_warp", func(t *testing.T) {
		_, _, err := MelBanks(23, 512, 16000, 20, 0, 10, -500, 1.1)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}
