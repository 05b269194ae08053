package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/adefossez/audio/logging"
)

var (
	configFile string
	logLevel   string
	outputPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kaldifeat",
	Short: "Kaldi-compatible speech feature extraction",
	Long: `Extract Kaldi-compatible speech features from WAV audio.

The spectrogram, fbank and mfcc subcommands reproduce the output of
Kaldi's compute-spectrogram-feats, compute-fbank-feats and
compute-mfcc-feats; the resample subcommand changes the sample rate
of a WAV file with a windowed-sinc filter.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(cmd, viper.GetViper()); err != nil {
			return err
		}
		level, err := parseLogLevel(viper.GetString("log-level"))
		if err != nil {
			return err
		}
		logging.SetLevel(level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is $HOME/.config/kaldifeat/kaldifeat.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "",
		"output file (default is stdout)")
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(home + "/.config/kaldifeat")
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("kaldifeat")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("KALDIFEAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logging.Debug("using config file", logging.Fields{
			"path": viper.ConfigFileUsed(),
		})
	}
}

// bindFlags binds each cobra flag to its associated viper configuration
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				lastErr = err
			}
		}

		if err := v.BindPFlag(f.Name, f); err != nil {
			lastErr = err
		}
	})

	return lastErr
}

func parseLogLevel(s string) (logging.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return logging.DebugLevel, nil
	case "info":
		return logging.InfoLevel, nil
	case "warn":
		return logging.WarnLevel, nil
	case "error":
		return logging.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
