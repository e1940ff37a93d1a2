// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/kartina/utils"
)

// maxEmptyReads bounds how often a source may return (0, nil) in a row
// before it is treated as exhausted.
const maxEmptyReads = 8

// Resampler streams src at a different sample rate using Catmull-Rom
// interpolation. Channel count and interleaving are preserved.
type Resampler struct {
	src      Source
	dstRate  int
	channels int
	step     float64 // source frames advanced per output frame

	// hist holds frames t-1, t0, t+1, t+2 around the read position.
	hist   [4][]float32
	avail  int // real (non padded) frames starting at hist[1]
	pos    float64
	primed bool

	in     []float32
	inPos  int
	inLen  int
	srcEOF bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	ch := max(src.Channels(), 1)
	block := max(src.BufSize(), 1024)
	block -= block % ch

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		channels: ch,
		step:     float64(src.SampleRate()) / float64(dstRate),
		in:       make([]float32, block),
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, ch)
	}
	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return len(r.in) }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("resampler close: %w", err)
	}
	return nil
}

// pull copies the next source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) pull(dst []float32) (bool, error) {
	empty := 0
	for r.inPos >= r.inLen {
		if r.srcEOF || empty >= maxEmptyReads {
			return false, nil
		}
		n, err := r.src.ReadSamples(r.in)
		r.inLen = n - n%r.channels
		r.inPos = 0
		if err == io.EOF {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("resampler read: %w", err)
		}
		if n == 0 {
			empty++
		}
	}
	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels
	return true, nil
}

func (r *Resampler) prime() error {
	ok, err := r.pull(r.hist[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	copy(r.hist[0], r.hist[1])
	r.avail = 1
	for i := 2; i < 4; i++ {
		ok, err := r.pull(r.hist[i])
		if err != nil {
			return err
		}
		if !ok {
			copy(r.hist[i], r.hist[i-1])
			continue
		}
		r.avail++
	}
	r.primed = true
	return nil
}

// advance slides the window one source frame forward.
func (r *Resampler) advance() error {
	h := r.hist
	r.hist = [4][]float32{h[1], h[2], h[3], h[0]}
	if r.avail > 0 {
		r.avail--
	}
	ok, err := r.pull(r.hist[3])
	if err != nil {
		return err
	}
	if ok {
		r.avail++
	} else {
		copy(r.hist[3], r.hist[2])
	}
	return nil
}

// ReadSamples produces interleaved samples at the destination rate.
// len(dst) must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	ch := r.channels
	if len(dst)%ch != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	n := 0
	for n+ch <= len(dst) {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return n, err
			}
		}
		if r.avail == 0 {
			return n, io.EOF
		}

		x := float32(r.pos)
		for c := range ch {
			dst[n+c] = utils.CubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}
		n += ch
		r.pos += r.step
	}
	return n, nil
}
