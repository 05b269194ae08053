package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/adefossez/audio/kaldi"
	"github.com/adefossez/audio/logging"
)

var (
	spectrogramCfg = kaldi.DefaultSpectrogramConfig()
	fbankCfg       = kaldi.DefaultFbankConfig()
	mfccCfg        = kaldi.DefaultMFCCConfig()
)

var spectrogramCmd = &cobra.Command{
	Use:   "spectrogram input.wav",
	Short: "Compute spectrogram features",
	Long: `Compute a log power spectrogram, matching Kaldi's
compute-spectrogram-feats. The zeroth column of every frame holds the
signal log-energy.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompute(args[0], &spectrogramCfg.SampleFrequency,
			func(waveform [][]float64) (*mat.Dense, error) {
				return kaldi.Spectrogram(waveform, spectrogramCfg)
			})
	},
}

var fbankCmd = &cobra.Command{
	Use:   "fbank input.wav",
	Short: "Compute mel-filterbank features",
	Long: `Compute log mel-filterbank features, matching Kaldi's
compute-fbank-feats.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompute(args[0], &fbankCfg.SampleFrequency,
			func(waveform [][]float64) (*mat.Dense, error) {
				return kaldi.Fbank(waveform, fbankCfg)
			})
	},
}

var mfccCmd = &cobra.Command{
	Use:   "mfcc input.wav",
	Short: "Compute mel-frequency cepstral coefficients",
	Long: `Compute mel-frequency cepstral coefficients, matching Kaldi's
compute-mfcc-feats.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompute(args[0], &mfccCfg.SampleFrequency,
			func(waveform [][]float64) (*mat.Dense, error) {
				return kaldi.MFCC(waveform, mfccCfg)
			})
	},
}

func init() {
	addFrameFlags(spectrogramCmd, &spectrogramCfg)

	addFrameFlags(fbankCmd, &fbankCfg.SpectrogramConfig)
	addMelFlags(fbankCmd, &fbankCfg)
	fbankCmd.Flags().BoolVar(&fbankCfg.UseLogFbank, "use-log-fbank", fbankCfg.UseLogFbank,
		"produce log-filterbank output instead of linear")
	fbankCmd.Flags().BoolVar(&fbankCfg.UsePower, "use-power", fbankCfg.UsePower,
		"use the power spectrum instead of magnitude")

	addFrameFlags(mfccCmd, &mfccCfg.SpectrogramConfig)
	addMelFlags(mfccCmd, &mfccCfg.FbankConfig)
	flags := mfccCmd.Flags()
	flags.IntVar(&mfccCfg.NumCeps, "num-ceps", mfccCfg.NumCeps,
		"number of cepstra to keep, including C0")
	flags.Float64Var(&mfccCfg.CepstralLifter, "cepstral-lifter", mfccCfg.CepstralLifter,
		"liftering constant; 0 disables liftering")

	rootCmd.AddCommand(spectrogramCmd, fbankCmd, mfccCmd)
}

// addFrameFlags registers the framing and windowing flags shared by all
// feature subcommands.
func addFrameFlags(cmd *cobra.Command, cfg *kaldi.SpectrogramConfig) {
	flags := cmd.Flags()
	flags.Float64Var(&cfg.FrameLength, "frame-length", cfg.FrameLength,
		"frame length in milliseconds")
	flags.Float64Var(&cfg.FrameShift, "frame-shift", cfg.FrameShift,
		"frame shift in milliseconds")
	flags.Float64Var(&cfg.SampleFrequency, "sample-frequency", cfg.SampleFrequency,
		"expected sample rate in Hz; 0 takes the rate from the WAV header")
	flags.IntVar(&cfg.Channel, "channel", cfg.Channel,
		"waveform channel (-1 expects mono, 0 left, 1 right)")
	flags.Float64Var(&cfg.Dither, "dither", cfg.Dither,
		"dithering constant; 0 disables dithering")
	flags.Float64Var(&cfg.EnergyFloor, "energy-floor", cfg.EnergyFloor,
		"absolute floor on the signal energy")
	flags.Float64Var(&cfg.MinDuration, "min-duration", cfg.MinDuration,
		"minimum segment duration in seconds")
	flags.Float64Var(&cfg.PreemphasisCoefficient, "preemphasis-coefficient", cfg.PreemphasisCoefficient,
		"pre-emphasis coefficient in [0,1]")
	flags.BoolVar(&cfg.RawEnergy, "raw-energy", cfg.RawEnergy,
		"compute energy before pre-emphasis and windowing")
	flags.BoolVar(&cfg.RemoveDCOffset, "remove-dc-offset", cfg.RemoveDCOffset,
		"subtract the mean from each frame")
	flags.BoolVar(&cfg.RoundToPowerOfTwo, "round-to-power-of-two", cfg.RoundToPowerOfTwo,
		"zero-pad the FFT input to the next power of two")
	flags.BoolVar(&cfg.SnipEdges, "snip-edges", cfg.SnipEdges,
		"keep only frames that fit entirely inside the signal")
	flags.BoolVar(&cfg.SubtractMean, "subtract-mean", cfg.SubtractMean,
		"subtract the per-column mean across frames")
	flags.StringVar(&cfg.WindowType, "window-type", cfg.WindowType,
		"window function (hamming, hanning, povey, rectangular, blackman)")
	flags.Float64Var(&cfg.BlackmanCoeff, "blackman-coeff", cfg.BlackmanCoeff,
		"constant coefficient for the generalized Blackman window")
}

// addMelFlags registers the mel-filterbank flags shared by fbank and
// mfcc.
func addMelFlags(cmd *cobra.Command, cfg *kaldi.FbankConfig) {
	flags := cmd.Flags()
	flags.IntVar(&cfg.NumMelBins, "num-mel-bins", cfg.NumMelBins,
		"number of triangular mel bins")
	flags.Float64Var(&cfg.LowFreq, "low-freq", cfg.LowFreq,
		"low cutoff frequency for mel bins in Hz")
	flags.Float64Var(&cfg.HighFreq, "high-freq", cfg.HighFreq,
		"high cutoff frequency in Hz; <= 0 is an offset from Nyquist")
	flags.BoolVar(&cfg.UseEnergy, "use-energy", cfg.UseEnergy,
		"add the signal log-energy as an extra column")
	flags.BoolVar(&cfg.HTKCompat, "htk-compat", cfg.HTKCompat,
		"put the energy column last, HTK style")
	flags.Float64Var(&cfg.VTLNLow, "vtln-low", cfg.VTLNLow,
		"low inflection point of the VTLN warp in Hz")
	flags.Float64Var(&cfg.VTLNHigh, "vtln-high", cfg.VTLNHigh,
		"high inflection point of the VTLN warp in Hz; negative is an offset from Nyquist")
	flags.Float64Var(&cfg.VTLNWarp, "vtln-warp", cfg.VTLNWarp,
		"vocal-tract-length-normalization warp factor")
}

// runCompute loads the input WAV, checks its rate against the
// configured sample frequency, runs the extractor and writes the
// resulting feature matrix as CSV.
func runCompute(inputPath string, sampleFrequency *float64, extract func([][]float64) (*mat.Dense, error)) error {
	waveform, rate, err := loadWAV(inputPath)
	if err != nil {
		return err
	}

	if *sampleFrequency == 0 {
		*sampleFrequency = rate
	} else if *sampleFrequency != rate {
		return fmt.Errorf("sample rate mismatch: file has %v Hz, configured %v Hz (resample first)",
			rate, *sampleFrequency)
	}

	start := time.Now()
	features, err := extract(waveform)
	if err != nil {
		return err
	}

	rows, cols := features.Dims()
	logging.Info("extracted features", logging.Fields{
		"input":   inputPath,
		"frames":  rows,
		"columns": cols,
		"elapsed": time.Since(start).String(),
	})

	return writeFeatureCSV(outputPath, features)
}
