// SPDX-License-Identifier: EPL-2.0

// Package frame turns decoded audio into fixed-size frames and hands the
// newest one to the renderer.
//
// # Frames
//
// A Frame holds interleaved offset-binary uint16 values: a float sample x
// in [-1, 1] becomes round(x*32768 + 32768), clamped to 65535. Frames are
// DefaultSize values long unless WithFrameSize says otherwise; the last
// frame of a stream is padded with silence (32768).
//
// # Reading
//
// PCMReader frames any audio.Source. A failed read from the source skips
// the frame being assembled and is reported as ErrCorruptFrame; more than
// eight failures in a row end the stream with ErrStreamBroken. Frames
// adapts any Reader into a range-over-func sequence:
//
//	for f, err := range frame.Frames(r) {
//		if err != nil {
//			// skipped, or the terminal error as the last item
//		}
//	}
//
// # Handoff
//
// Channel is a one-slot mailbox. Source publishes into it as fast as
// frames decode (or at playback speed with WithRealtime); the renderer
// calls TryTake once per redraw. Frames that are overwritten before being
// taken are counted as dropped.
package frame
