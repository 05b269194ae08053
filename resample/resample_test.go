package resample

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Windowed-sinc filters with a 0.99 cutoff deviate from unity in the
// passband, so waveform comparisons use loose tolerances and skip the
// filter-length edge region.
const (
	rmsTolerance  = 0.05
	edgeTolerance = 500
)

func sineWave(freq, sampleRate float64, numSamples int) []float64 {
	signal := make([]float64, numSamples)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}
	return signal
}

// rmsError computes the root-mean-square difference over the interior
// of two equal-length signals.
func rmsError(a, b []float64, skip int) float64 {
	sum := 0.0
	n := 0
	for i := skip; i < len(a)-skip; i++ {
		d := a[i] - b[i]
		sum += d * d
		n++
	}
	return math.Sqrt(sum / float64(n))
}

func TestWaveform_OutputLength(t *testing.T) {
	tests := []struct {
		name       string
		numSamples int
		origFreq   float64
		newFreq    float64
		want       int
	}{
		{"downsample_by_two", 16000, 16000, 8000, 8000},
		{"upsample_by_two", 8000, 8000, 16000, 16000},
		{"cd_to_dvd_rate", 44100, 44100, 48000, 48000},
		{"rounds_up", 1001, 16000, 8000, 501},
		{"identity", 1234, 16000, 16000, 1234},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			waveform := [][]float64{sineWave(440, tt.origFreq, tt.numSamples)}
			out, err := Waveform(waveform, tt.origFreq, tt.newFreq, 6)
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Len(t, out[0], tt.want)
		})
	}
}

func TestWaveform_IdentityRate(t *testing.T) {
	signal := sineWave(440, 16000, 16000)
	out, err := Waveform([][]float64{signal}, 16000, 16000, 6)
	require.NoError(t, err)

	// equal rates reduce to 1/1; the filter still applies, so this is
	// approximate rather than exact
	assert.Less(t, rmsError(signal, out[0], edgeTolerance), rmsTolerance)
}

func TestWaveform_DownUpRoundTrip(t *testing.T) {
	signal := sineWave(440, 16000, 16000)

	down, err := Waveform([][]float64{signal}, 16000, 8000, 6)
	require.NoError(t, err)
	require.Len(t, down[0], 8000)

	up, err := Waveform(down, 8000, 16000, 6)
	require.NoError(t, err)
	require.Len(t, up[0], 16000)

	// 440 Hz is far below the 4 kHz cutoff, so the tone survives the trip
	assert.Less(t, rmsError(signal, up[0], edgeTolerance), rmsTolerance)
}

func TestWaveform_DownsamplePreservesTone(t *testing.T) {
	// a 440 Hz sine resampled to 8 kHz should match the 8 kHz rendering
	// of the same sine
	in := sineWave(440, 16000, 16000)
	want := sineWave(440, 8000, 8000)

	out, err := Waveform([][]float64{in}, 16000, 8000, 6)
	require.NoError(t, err)

	assert.Less(t, rmsError(want, out[0], edgeTolerance/2), rmsTolerance)
}

func TestWaveform_GCDReduction(t *testing.T) {
	// 16000 -> 8000 must behave exactly like 2 -> 1
	signal := sineWave(440, 16000, 16000)

	fromRates, err := Waveform([][]float64{signal}, 16000, 8000, 6)
	require.NoError(t, err)

	fromRatio, err := Waveform([][]float64{signal}, 2, 1, 6)
	require.NoError(t, err)

	assert.Equal(t, fromRates[0], fromRatio[0])
}

func TestWaveform_MultiChannel(t *testing.T) {
	left := sineWave(440, 16000, 16000)
	right := sineWave(880, 16000, 16000)

	out, err := Waveform([][]float64{left, right}, 16000, 8000, 6)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Len(t, out[0], 8000)
	assert.Len(t, out[1], 8000)

	// each channel is resampled independently
	wantLeft, err := Waveform([][]float64{left}, 16000, 8000, 6)
	require.NoError(t, err)
	assert.Equal(t, wantLeft[0], out[0])
}

func TestWaveform_WiderFilterIsCloser(t *testing.T) {
	signal := sineWave(440, 16000, 16000)
	want := sineWave(440, 8000, 8000)

	narrow, err := Waveform([][]float64{signal}, 16000, 8000, 4)
	require.NoError(t, err)
	wide, err := Waveform([][]float64{signal}, 16000, 8000, 10)
	require.NoError(t, err)

	narrowErr := rmsError(want, narrow[0], edgeTolerance/2)
	wideErr := rmsError(want, wide[0], edgeTolerance/2)
	assert.Less(t, wideErr, narrowErr)
}

func TestWaveform_Errors(t *testing.T) {
	signal := sineWave(440, 16000, 1000)

	t.Run("empty_waveform", func(t *testing.T) {
		_, err := Waveform(nil, 16000, 8000, 6)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("ragged_channels", func(t *testing.T) {
		_, err := Waveform([][]float64{signal, signal[:500]}, 16000, 8000, 6)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("nonpositive_frequency", func(t *testing.T) {
		_, err := Waveform([][]float64{signal}, 0, 8000, 6)
		require.ErrorIs(t, err, ErrInvalidArgument)

		_, err = Waveform([][]float64{signal}, 16000, -1, 6)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("fractional_frequency_below_one", func(t *testing.T) {
		_, err := Waveform([][]float64{signal}, 0.5, 8000, 6)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("nonpositive_filter_width", func(t *testing.T) {
		_, err := Waveform([][]float64{signal}, 16000, 8000, 0)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestWaveform_EmptyChannel(t *testing.T) {
	out, err := Waveform([][]float64{{}}, 16000, 8000, 6)
	require.NoError(t, err)
	assert.Empty(t, out[0])
}
