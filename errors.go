// SPDX-License-Identifier: EPL-2.0

package kartina

import "errors"

var (
	// ErrOpenStream means the audio file is missing, unreadable, empty or
	// in no format a decoder accepts. Nothing has been started when it is
	// returned.
	ErrOpenStream = errors.New("cannot open audio stream")
	ErrStarted    = errors.New("pipeline already started")
	ErrClosed     = errors.New("pipeline closed")
)
