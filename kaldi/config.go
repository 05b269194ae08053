package kaldi

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/adefossez/audio/algorithms/windowing"
)

// ErrInvalidConfig indicates a configuration or contract violation.
// It is never produced for merely short input; short input yields an
// empty result and a nil error.
var ErrInvalidConfig = errors.New("invalid feature configuration")

const millisecondsToSeconds = 0.001

// SpectrogramConfig configures Spectrogram and is embedded by the
// fbank and MFCC configurations.
type SpectrogramConfig struct {
	// BlackmanCoeff is the constant coefficient for the generalized
	// Blackman window.
	BlackmanCoeff float64 `json:"blackman_coeff"`

	// Channel selects the waveform channel (-1 -> expect mono,
	// 0 -> left, 1 -> right).
	Channel int `json:"channel"`

	// Dither is the dithering constant; 0.0 disables dithering. If
	// dithering is disabled the energy floor should be set, e.g. to
	// 1.0 or 0.1.
	Dither float64 `json:"dither"`

	// EnergyFloor is an absolute floor on energy. It applies only to
	// the zeroth output component (total signal energy); individual
	// spectrogram elements are floored at machine epsilon.
	EnergyFloor float64 `json:"energy_floor"`

	// FrameLength is the frame length in milliseconds.
	FrameLength float64 `json:"frame_length"`

	// FrameShift is the frame shift in milliseconds.
	FrameShift float64 `json:"frame_shift"`

	// MinDuration is the minimum duration of segments to process,
	// in seconds.
	MinDuration float64 `json:"min_duration"`

	// PreemphasisCoefficient is the signal pre-emphasis coefficient,
	// in [0, 1].
	PreemphasisCoefficient float64 `json:"preemphasis_coefficient"`

	// RawEnergy computes frame energy before pre-emphasis and windowing.
	RawEnergy bool `json:"raw_energy"`

	// RemoveDCOffset subtracts each frame's mean from its samples.
	RemoveDCOffset bool `json:"remove_dc_offset"`

	// RoundToPowerOfTwo zero-pads the FFT input to the next power of two.
	RoundToPowerOfTwo bool `json:"round_to_power_of_two"`

	// SampleFrequency is the waveform sample rate in Hz.
	SampleFrequency float64 `json:"sample_frequency"`

	// SnipEdges keeps only frames that fit entirely inside the signal.
	// When false, the signal is mirror-padded so that the frame count
	// depends only on the frame shift.
	SnipEdges bool `json:"snip_edges"`

	// SubtractMean subtracts the per-column mean across frames.
	SubtractMean bool `json:"subtract_mean"`

	// WindowType is one of hamming, hanning, povey, rectangular,
	// blackman.
	WindowType string `json:"window_type"`

	// Src is the random source consumed by dithering. A nil source
	// uses the process-global generator; inject a seeded source for
	// reproducible dither.
	Src rand.Source `json:"-"`
}

// DefaultSpectrogramConfig returns the Kaldi defaults for Spectrogram.
func DefaultSpectrogramConfig() SpectrogramConfig {
	return SpectrogramConfig{
		BlackmanCoeff:          0.42,
		Channel:                -1,
		Dither:                 0.0,
		EnergyFloor:            1.0,
		FrameLength:            25.0,
		FrameShift:             10.0,
		MinDuration:            0.0,
		PreemphasisCoefficient: 0.97,
		RawEnergy:              true,
		RemoveDCOffset:         true,
		RoundToPowerOfTwo:      true,
		SampleFrequency:        16000.0,
		SnipEdges:              true,
		SubtractMean:           false,
		WindowType:             windowing.TypePovey,
	}
}

// Validate checks the waveform-independent configuration invariants.
func (c *SpectrogramConfig) Validate() error {
	if c.SampleFrequency <= 0 {
		return fmt.Errorf("%w: sample frequency must be greater than zero, got %v",
			ErrInvalidConfig, c.SampleFrequency)
	}

	if c.FrameShift <= 0 {
		return fmt.Errorf("%w: frame shift must be greater than zero, got %v",
			ErrInvalidConfig, c.FrameShift)
	}

	if c.PreemphasisCoefficient < 0 || c.PreemphasisCoefficient > 1 {
		return fmt.Errorf("%w: preemphasis coefficient must be between [0,1], got %v",
			ErrInvalidConfig, c.PreemphasisCoefficient)
	}

	if !windowing.IsValidType(c.WindowType) {
		return fmt.Errorf("%w: invalid window type %q", ErrInvalidConfig, c.WindowType)
	}

	return nil
}

// FbankConfig configures Fbank. It is a superset of SpectrogramConfig.
type FbankConfig struct {
	SpectrogramConfig

	// HighFreq is the high cutoff for mel bins; a value <= 0 is an
	// offset from the Nyquist frequency.
	HighFreq float64 `json:"high_freq"`

	// HTKCompat puts the energy column last instead of first.
	HTKCompat bool `json:"htk_compat"`

	// LowFreq is the low cutoff frequency for mel bins.
	LowFreq float64 `json:"low_freq"`

	// NumMelBins is the number of triangular mel-frequency bins.
	NumMelBins int `json:"num_mel_bins"`

	// UseEnergy adds the per-frame signal log-energy as an extra column.
	UseEnergy bool `json:"use_energy"`

	// UseLogFbank produces log-filterbank output instead of linear.
	UseLogFbank bool `json:"use_log_fbank"`

	// UsePower uses the power spectrum instead of magnitude.
	UsePower bool `json:"use_power"`

	// VTLNHigh is the high inflection point of the piecewise-linear
	// VTLN warp; a negative value is an offset from the Nyquist
	// frequency.
	VTLNHigh float64 `json:"vtln_high"`

	// VTLNLow is the low inflection point of the VTLN warp.
	VTLNLow float64 `json:"vtln_low"`

	// VTLNWarp is the vocal-tract-length-normalization warp factor.
	VTLNWarp float64 `json:"vtln_warp"`
}

// DefaultFbankConfig returns the Kaldi defaults for Fbank.
func DefaultFbankConfig() FbankConfig {
	return FbankConfig{
		SpectrogramConfig: DefaultSpectrogramConfig(),
		HighFreq:          0.0,
		HTKCompat:         false,
		LowFreq:           20.0,
		NumMelBins:        23,
		UseEnergy:         false,
		UseLogFbank:       true,
		UsePower:          true,
		VTLNHigh:          -500.0,
		VTLNLow:           100.0,
		VTLNWarp:          1.0,
	}
}

// Validate checks the waveform-independent configuration invariants.
func (c *FbankConfig) Validate() error {
	if err := c.SpectrogramConfig.Validate(); err != nil {
		return err
	}

	if c.NumMelBins <= 3 {
		return fmt.Errorf("%w: must have at least 3 mel bins, got %d",
			ErrInvalidConfig, c.NumMelBins)
	}

	return nil
}

// MFCCConfig configures MFCC. It is a superset of FbankConfig; the
// UsePower, UseLogFbank and SubtractMean fields of the embedded
// configuration are ignored (MFCC always projects log power mel
// energies and applies mean subtraction only to the final cepstra).
type MFCCConfig struct {
	FbankConfig

	// CepstralLifter controls the scaling of the cepstral coefficients;
	// 0 disables liftering.
	CepstralLifter float64 `json:"cepstral_lifter"`

	// NumCeps is the number of cepstra to keep, including C0. Must not
	// exceed NumMelBins.
	NumCeps int `json:"num_ceps"`
}

// DefaultMFCCConfig returns the Kaldi defaults for MFCC.
func DefaultMFCCConfig() MFCCConfig {
	return MFCCConfig{
		FbankConfig:    DefaultFbankConfig(),
		CepstralLifter: 22.0,
		NumCeps:        13,
	}
}

// Validate checks the waveform-independent configuration invariants.
func (c *MFCCConfig) Validate() error {
	if err := c.FbankConfig.Validate(); err != nil {
		return err
	}

	if c.NumCeps <= 0 {
		return fmt.Errorf("%w: num ceps must be positive, got %d", ErrInvalidConfig, c.NumCeps)
	}

	if c.NumCeps > c.NumMelBins {
		return fmt.Errorf("%w: num ceps cannot be larger than num mel bins: %d vs %d",
			ErrInvalidConfig, c.NumCeps, c.NumMelBins)
	}

	return nil
}
