// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams into an audio.Source.
//
// Decoding is done by github.com/hajimehoshi/go-mp3, which always yields
// interleaved stereo 16-bit PCM at the sample rate of the stream. Mono
// files are duplicated onto both channels by the library.
//
// # Usage
//
//	f, _ := os.Open("track.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//		return err
//	}
//	buf := make([]float32, src.BufSize())
//	n, err := src.ReadSamples(buf)
//
// # Errors
//
// A stream that cannot be recognised fails Decode with ErrNotMP3File.
// Errors after the header are wrapped in ErrDecode and returned once all
// samples decoded before the failure have been delivered.
package mp3
