package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/adefossez/audio/logging"
	"github.com/adefossez/audio/resample"
)

var (
	resampleRate        float64
	resampleFilterWidth int
)

var resampleCmd = &cobra.Command{
	Use:   "resample input.wav output.wav",
	Short: "Resample a WAV file to a target rate",
	Long: `Resample a WAV file to a target sample rate with a windowed-sinc
filter. Every channel is resampled independently.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResample(args[0], args[1])
	},
}

func init() {
	flags := resampleCmd.Flags()
	flags.Float64Var(&resampleRate, "rate", 16000,
		"target sample rate in Hz")
	flags.IntVar(&resampleFilterWidth, "filter-width", 6,
		"lowpass filter width; sharper but slower when larger")

	rootCmd.AddCommand(resampleCmd)
}

func runResample(inputPath, targetPath string) error {
	waveform, rate, err := loadWAV(inputPath)
	if err != nil {
		return err
	}
	if len(waveform[0]) == 0 {
		return fmt.Errorf("input %s has no samples", inputPath)
	}

	start := time.Now()
	resampled, err := resample.Waveform(waveform, rate, resampleRate, resampleFilterWidth)
	if err != nil {
		return err
	}

	logging.Info("resampled waveform", logging.Fields{
		"input":     inputPath,
		"output":    targetPath,
		"from_rate": rate,
		"to_rate":   resampleRate,
		"samples":   len(resampled[0]),
		"elapsed":   time.Since(start).String(),
	})

	return saveWAV(targetPath, resampled, int(resampleRate))
}
