// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams into an audio.Source using
// github.com/jfreymuth/oggvorbis.
//
// The library decodes straight to float32, so samples pass through
// without conversion. ReadSamples only fills whole frames: a destination
// whose length is not a multiple of the channel count is truncated.
//
// # Usage
//
//	f, _ := os.Open("theme.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
package vorbis
