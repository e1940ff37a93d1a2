// SPDX-License-Identifier: EPL-2.0

// Package wav decodes RIFF/WAVE files into an audio.Source.
//
// Chunk parsing is done by github.com/go-audio/wav, so files carrying
// LIST, fact or other extra chunks ahead of the data chunk are accepted.
// Signed integer PCM at 16, 24 and 32 bits is supported; samples are
// normalized into [-1, 1] by the full scale of their bit depth.
//
// # Usage
//
//	f, _ := os.Open("speech.wav")
//	src, err := wav.Decoder{}.Decode(f)
//
// Readers that cannot seek are buffered into memory first.
package wav
