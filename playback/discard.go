// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"
	"io"
)

// Discard is a Device that reads streams as fast as possible and throws
// the bytes away. It backs mute mode and tests.
type Discard struct {
	format Format
}

func NewDiscard(f Format) *Discard {
	return &Discard{format: f}
}

func (d *Discard) Format() Format { return d.format }

func (d *Discard) Play(r io.Reader) (Handle, error) {
	s := newStream(r)
	go func() {
		_, err := io.Copy(io.Discard, s)
		s.finish(err)
	}()
	return s, nil
}

func (d *Discard) Stop(h Handle) error {
	s, ok := h.(*stream)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnknownHandle, h)
	}
	s.stop()
	return nil
}
