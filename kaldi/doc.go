// Package kaldi computes frame-level acoustic features (spectrogram,
// mel filterbank, MFCC) that are numerically compatible with Kaldi's
// compute-spectrogram-feats, compute-fbank-feats and compute-mfcc-feats.
//
// All entry points take a buffered multi-channel waveform of shape
// (channels, samples) with at most two channels, and a configuration
// struct whose zero-argument Default constructor enumerates the Kaldi
// defaults. Results are dense row-per-frame matrices; a waveform too
// short to produce a single frame yields an empty matrix and a nil
// error, which callers must treat as "no features produced".
package kaldi
