// Command kaldifeat extracts Kaldi-compatible speech features from WAV
// files and resamples audio between sample rates.
//
// Usage:
//
//	kaldifeat spectrogram input.wav -o feats.csv
//	kaldifeat fbank --num-mel-bins 40 input.wav
//	kaldifeat mfcc --use-energy input.wav -o mfcc.csv
//	kaldifeat resample --rate 16000 input.wav output.wav
package main

func main() {
	Execute()
}
