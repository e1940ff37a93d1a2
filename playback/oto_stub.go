// SPDX-License-Identifier: EPL-2.0

//go:build !cgo

package playback

import "io"

// OtoDevice is unavailable without cgo; Play always fails so the caller
// falls back to silent operation.
type OtoDevice struct {
	format Format
}

func NewOtoDevice(f Format) *OtoDevice {
	return &OtoDevice{format: f}
}

func (d *OtoDevice) Format() Format { return d.format }

func (d *OtoDevice) Play(io.Reader) (Handle, error) {
	return nil, ErrNoAudioBackend
}

func (d *OtoDevice) Stop(Handle) error { return ErrNoAudioBackend }
