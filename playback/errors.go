// SPDX-License-Identifier: EPL-2.0

package playback

import "errors"

var (
	// ErrDeviceUnavailable means the output device could not start. The
	// application keeps running without sound.
	ErrDeviceUnavailable = errors.New("audio device unavailable")

	ErrDecode         = errors.New("decoding audio for playback")
	ErrInvalidFormat  = errors.New("invalid device format")
	ErrUnknownHandle  = errors.New("handle does not belong to this device")
	ErrNoAudioBackend = errors.New("audio output requires cgo (build with CGO_ENABLED=1)")
)
