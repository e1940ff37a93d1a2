// SPDX-License-Identifier: EPL-2.0

package frame

import "github.com/ik5/kartina/utils"

// DefaultSize is the number of values in a frame: 1152 sample frames of
// stereo audio, the length of one MPEG-1 layer III frame.
const DefaultSize = 2304

// Frame is one block of decoded audio in offset-binary unsigned 16-bit
// form. A published frame is never modified.
type Frame struct {
	// Samples holds interleaved values; 0 is full negative, 32768 silence
	// and 65535 full positive.
	Samples []uint16

	// Seq numbers frames from 1 in decode order.
	Seq uint64

	SampleRate int
	Channels   int
}

// Len returns the number of values in the frame.
func (f *Frame) Len() int { return len(f.Samples) }

// encode converts src into dst and pads the remainder of dst with silence.
// It returns the number of values taken from src.
func encode(dst []uint16, src []float32) int {
	n := min(len(src), len(dst))
	for i, v := range src[:n] {
		dst[i] = utils.Float32ToUint16(v)
	}
	for i := n; i < len(dst); i++ {
		dst[i] = utils.SilenceU16
	}
	return n
}
