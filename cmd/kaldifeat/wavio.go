package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"gonum.org/v1/gonum/mat"

	"github.com/adefossez/audio/logging"
)

const (
	pcmBitDepth = 16
	pcmFormat   = 1

	maxInt16 = 32767.0
	minInt16 = -32768.0
)

// loadWAV decodes a WAV file into per-channel sample slices and returns
// them with the file's sample rate. Samples keep their integer PCM
// scale, which is what the feature extractors expect.
func loadWAV(path string) ([][]float64, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read audio data: %w", err)
	}

	channels := buf.Format.NumChannels
	if channels == 0 {
		return nil, 0, fmt.Errorf("WAV file %s reports zero channels", path)
	}
	numSamples := len(buf.Data) / channels

	logging.Debug("decoded wav file", logging.Fields{
		"path":      path,
		"rate":      buf.Format.SampleRate,
		"channels":  channels,
		"samples":   numSamples,
		"bit_depth": decoder.BitDepth,
	})

	waveform := make([][]float64, channels)
	for ch := range waveform {
		waveform[ch] = make([]float64, numSamples)
	}
	for i := range numSamples {
		for ch := range channels {
			waveform[ch][i] = float64(buf.Data[i*channels+ch])
		}
	}

	return waveform, float64(buf.Format.SampleRate), nil
}

// saveWAV interleaves per-channel samples and writes them as 16-bit PCM.
func saveWAV(path string, waveform [][]float64, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	channels := len(waveform)
	numSamples := len(waveform[0])

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, numSamples*channels),
		SourceBitDepth: pcmBitDepth,
	}
	for i := range numSamples {
		for ch := range channels {
			sample := waveform[ch][i]
			if sample > maxInt16 {
				sample = maxInt16
			} else if sample < minInt16 {
				sample = minInt16
			}
			buf.Data[i*channels+ch] = int(sample)
		}
	}

	encoder := wav.NewEncoder(f, sampleRate, pcmBitDepth, channels, pcmFormat)
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	return encoder.Close()
}

// writeFeatureCSV writes one CSV row per frame to path, or to stdout
// when path is empty.
func writeFeatureCSV(path string, features *mat.Dense) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	writer := csv.NewWriter(out)
	rows, cols := features.Dims()
	record := make([]string, cols)
	for i := range rows {
		row := features.RawRowView(i)
		for j, v := range row {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write features: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
