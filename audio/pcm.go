// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"io"
	"math"
)

// PCMReader encodes a Source as interleaved float32 little-endian bytes,
// the layout audio devices consume. It implements io.Reader; the source
// error (io.EOF included) is returned once all encoded bytes are drained.
type PCMReader struct {
	src     Source
	samples []float32
	buf     []byte
	pending []byte
	err     error
	empty   int
}

func NewPCMReader(src Source) *PCMReader {
	size := max(src.BufSize(), 1024)
	return &PCMReader{
		src:     src,
		samples: make([]float32, size),
		buf:     make([]byte, size*4),
	}
}

func (r *PCMReader) Read(p []byte) (int, error) {
	for len(r.pending) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		if r.empty >= maxEmptyReads {
			r.err = io.ErrNoProgress
			continue
		}

		ch := max(r.src.Channels(), 1)
		want := min(max(len(p)/4, ch), len(r.samples))
		want -= want % ch
		if want == 0 {
			want = ch
		}

		n, err := r.src.ReadSamples(r.samples[:want])
		for i, s := range r.samples[:n] {
			binary.LittleEndian.PutUint32(r.buf[i*4:], math.Float32bits(s))
		}
		r.pending = r.buf[:n*4]
		r.err = err
		if n == 0 {
			r.empty++
		} else {
			r.empty = 0
		}
	}

	c := copy(p, r.pending)
	r.pending = r.pending[c:]
	return c, nil
}
