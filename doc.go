// SPDX-License-Identifier: EPL-2.0

// Package kartina colors a spinning sphere with the samples of an audio
// file while the same file plays through the speakers.
//
// A Pipeline owns one encoded stream and runs two goroutines over it. The
// decode goroutine cuts the stream into fixed-size frames of offset-binary
// 16-bit values and publishes each one into a single-slot channel without
// waiting. The playback goroutine decodes the bytes again, converts them
// to the device format and plays them. The render loop, owned by the
// caller, drains the channel on every redraw: when a frame is waiting the
// sphere is recolored from it, otherwise the previous colors are drawn
// again. Only the newest frame is ever shown.
//
// # Supported Formats
//
// The stream format is sniffed from its first bytes, then taken from the
// file extension:
//   - MP3 via formats/mp3
//   - WAV (PCM 16, 24 and 32-bit) via formats/wav
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 16, 24 and 32-bit) via formats/aiff
//
// # Quick Start
//
//	rec := headless.NewRecorder()
//	p, err := kartina.Open("song.mp3", rec, kartina.WithRealtime(true))
//	if err != nil {
//		return err // errors.Is(err, kartina.ErrOpenStream)
//	}
//	defer p.Close()
//
//	if err := p.Start(ctx); err != nil {
//		return err
//	}
//	return headless.Run(ctx, p.State(), headless.Config{Ticks: 600})
//
// # Building Blocks
//
// The pieces can be used on their own:
//
//	src, _ := formats.NewRegistry().Decode("wav", r)
//	frames, _ := frame.NewPCMReader(src, frame.WithFrameSize(2304))
//	for f, err := range frame.Frames(frames) {
//		// f.Samples holds 2304 values, err marks a skipped frame
//	}
//
// mesh.Sphere builds the UV sphere, colormap.Mapper turns a frame into
// per-triangle colors and render.State ties them to a drawing backend.
// cmd/kartina wires everything to an ebiten window and an oto audio
// device.
package kartina
