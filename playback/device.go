// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
)

// Format is the PCM layout a device consumes. Samples are always float32
// little-endian, interleaved.
type Format struct {
	SampleRate int
	Channels   int
}

// DefaultFormat is 48 kHz stereo.
var DefaultFormat = Format{SampleRate: 48000, Channels: 2}

// Device is an audio output.
type Device interface {
	Format() Format
	// Play starts streaming r and returns immediately.
	Play(r io.Reader) (Handle, error)
	// Stop ends playback of h early.
	Stop(h Handle) error
}

// Handle is one stream playing on a device.
type Handle interface {
	// Wait blocks until the device finished the stream or ctx is done. It
	// returns the read error of the stream, if any, or ctx.Err().
	Wait(ctx context.Context) error
}

// stream wraps the reader handed to a device. It counts bytes, cuts the
// stream short once stopped and is the Handle of the devices in this
// package.
type stream struct {
	r       io.Reader
	read    atomic.Int64
	stopped atomic.Bool

	done chan struct{}
	once sync.Once
	err  error
}

func newStream(r io.Reader) *stream {
	return &stream{r: r, done: make(chan struct{})}
}

func (s *stream) Read(p []byte) (int, error) {
	if s.stopped.Load() {
		return 0, io.EOF
	}
	n, err := s.r.Read(p)
	s.read.Add(int64(n))
	if err != nil && !errors.Is(err, io.EOF) {
		s.finish(err)
	}
	return n, err
}

// finish marks the stream as done. Only the first call counts.
func (s *stream) finish(err error) {
	s.once.Do(func() {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		s.err = err
		close(s.done)
	})
}

func (s *stream) stop() {
	s.stopped.Store(true)
	s.finish(nil)
}

func (s *stream) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return s.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// BytesRead reports how much of the stream the device consumed.
func (s *stream) BytesRead() int64 { return s.read.Load() }
