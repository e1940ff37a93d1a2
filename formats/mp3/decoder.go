// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/kartina/audio"
)

// go-mp3 always produces interleaved stereo 16-bit little-endian PCM.
const (
	channels       = 2
	bytesPerSample = 2
	defaultBufSize = 4608 // two MPEG-1 layer III frames of stereo samples
)

// mp3Reader is the part of gomp3.Decoder the source needs.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	carry      []byte // a trailing half sample from the previous read
	// err is io.EOF once the stream ended, or a decode error held back
	// for one call because samples came with it.
	err error
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / bytesPerSample }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if err := s.err; err != nil {
		// Only the end of the stream is final; a decode error is reported
		// once and the next read resumes where the decoder stands.
		if err != io.EOF {
			s.err = nil
		}
		return 0, err
	}

	want := len(dst)*bytesPerSample - len(s.carry)
	if cap(s.buf) < len(dst)*bytesPerSample {
		s.buf = make([]byte, len(dst)*bytesPerSample)
	}
	buf := s.buf[:len(dst)*bytesPerSample]
	held := copy(buf, s.carry)
	s.carry = s.carry[:0]

	n, err := s.dec.Read(buf[held : held+want])
	n += held

	samples := n / bytesPerSample
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(buf[i*bytesPerSample:]))
		dst[i] = float32(v) / 32768.0
	}
	if rest := n % bytesPerSample; rest != 0 {
		s.carry = append(s.carry, buf[n-rest:n]...)
	}

	if err != nil {
		if err != io.EOF {
			err = fmt.Errorf("%w: %w", ErrDecode, err)
		}
		if samples > 0 {
			s.err = err
			return samples, nil
		}
		if err == io.EOF {
			s.err = err
		}
		return 0, err
	}
	return samples, nil
}

// Decoder reads MPEG-1/2 layer III streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}
	return newSource(dec), nil
}

func newSource(dec mp3Reader) *source {
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, defaultBufSize*bytesPerSample),
		carry:      make([]byte, 0, bytesPerSample),
	}
}
