// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/ik5/kartina/audio"
	"github.com/jfreymuth/oggvorbis"
)

const defaultBufSize = 4096

// oggReader is the part of oggvorbis.Reader the source needs.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	err        error
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return defaultBufSize - defaultBufSize%s.channels }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if err := s.err; err != nil {
		// A decode error is reported once; io.EOF stays.
		if err != io.EOF {
			s.err = nil
		}
		return 0, err
	}
	// Whole frames only.
	dst = dst[:len(dst)-len(dst)%s.channels]
	if len(dst) == 0 {
		return 0, nil
	}

	// oggvorbis reports values written, always a multiple of the channel count.
	n, err := s.dec.Read(dst)
	if err != nil {
		if err != io.EOF {
			err = fmt.Errorf("%w: %w", ErrDecode, err)
		}
		if n > 0 {
			s.err = err
			return n, nil
		}
		if err == io.EOF {
			s.err = err
		}
		return 0, err
	}
	return n, nil
}

// Decoder reads Ogg Vorbis streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}
	return newSource(dec)
}

func newSource(dec oggReader) (*source, error) {
	if dec.Channels() < 1 {
		return nil, ErrNotVorbisFile
	}
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
