// SPDX-License-Identifier: EPL-2.0

package frame

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/kartina/audio"
)

// maxConsecutiveErrors is how many failed reads in a row are tolerated
// before the stream is declared broken.
const maxConsecutiveErrors = 8

// Reader produces frames one at a time. ReadFrame returns io.EOF when the
// stream is exhausted, an error matching ErrCorruptFrame for a frame that
// is skipped, and any other error when the stream cannot continue.
type Reader interface {
	ReadFrame() (*Frame, error)
}

// PCMReader cuts a decoded audio.Source into fixed-size frames.
type PCMReader struct {
	src     audio.Source
	size    int
	scratch []float32
	pending []float32

	failures int
	empty    int
	err      error
}

type PCMOption func(*pcmConfig)

type pcmConfig struct {
	size int
	mono bool
}

// WithFrameSize sets the number of values per frame.
func WithFrameSize(n int) PCMOption {
	return func(c *pcmConfig) { c.size = n }
}

// WithMono downmixes the source to one channel before framing.
func WithMono() PCMOption {
	return func(c *pcmConfig) { c.mono = true }
}

func NewPCMReader(src audio.Source, opts ...PCMOption) (*PCMReader, error) {
	cfg := pcmConfig{size: DefaultSize}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFrameSize, cfg.size)
	}
	if cfg.mono && src.Channels() > 1 {
		src = audio.Downmix(src)
	}

	ch := max(src.Channels(), 1)
	chunk := (cfg.size + ch - 1) / ch * ch
	return &PCMReader{
		src:     src,
		size:    cfg.size,
		scratch: make([]float32, chunk),
		pending: make([]float32, 0, cfg.size+chunk),
	}, nil
}

// Size returns the number of values per frame.
func (r *PCMReader) Size() int { return r.size }

func (r *PCMReader) Close() error { return r.src.Close() }

func (r *PCMReader) ReadFrame() (*Frame, error) {
	for len(r.pending) < r.size && r.err == nil {
		n, err := r.src.ReadSamples(r.scratch)
		r.pending = append(r.pending, r.scratch[:n]...)

		switch {
		case err == nil:
			r.failures = 0
			if n > 0 {
				r.empty = 0
			} else if r.empty++; r.empty >= maxConsecutiveErrors {
				r.err = fmt.Errorf("%w: %w", ErrStreamBroken, io.ErrNoProgress)
			}
		case errors.Is(err, io.EOF):
			r.err = io.EOF
		default:
			r.failures++
			if r.failures > maxConsecutiveErrors {
				r.err = fmt.Errorf("%w after %d failures: %w", ErrStreamBroken, r.failures, err)
				break
			}
			r.pending = r.pending[:0]
			return nil, fmt.Errorf("%w: %w", ErrCorruptFrame, err)
		}
	}

	if len(r.pending) == 0 {
		return nil, r.err
	}

	f := &Frame{
		Samples:    make([]uint16, r.size),
		SampleRate: r.src.SampleRate(),
		Channels:   r.src.Channels(),
	}
	used := encode(f.Samples, r.pending)
	r.pending = append(r.pending[:0], r.pending[used:]...)
	return f, nil
}
