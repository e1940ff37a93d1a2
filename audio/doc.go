// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM plumbing kartina is built on.
//
// # Source Interface
//
// Every decoder and processor implements Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 values in [-1, 1]. A read returning
// (0, io.EOF) ends the stream.
//
// # Processing
//
// Resampler changes the sample rate with cubic interpolation, Remix changes
// the channel count and PCMReader turns a Source back into bytes for an
// output device:
//
//	res := audio.NewResampler(src, 48000)
//	stereo, _ := audio.NewRemix(res, 2)
//	player := device.Play(audio.NewPCMReader(stereo))
//
// The frame decoder uses Downmix when mono frames are requested.
//
// # Registry
//
// Registry maps format keys to decoders. Keys are case-insensitive and a
// leading dot is ignored, so filepath.Ext output can be passed as is:
//
//	reg := audio.NewRegistry()
//	reg.Register("mp3", mp3.Decoder{})
//	src, err := reg.Decode(filepath.Ext(path), f)
package audio
