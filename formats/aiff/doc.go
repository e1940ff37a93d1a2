// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes Audio Interchange File Format files into an
// audio.Source using github.com/go-audio/aiff.
//
// Only uncompressed AIFF is supported. AIFF stores big-endian signed
// samples at any depth, so 8-bit files are accepted here, unlike WAV.
//
// # Usage
//
//	f, _ := os.Open("loop.aiff")
//	src, err := aiff.Decoder{}.Decode(f)
//
// go-audio needs to seek, so readers without Seek are buffered into memory.
package aiff
