// SPDX-License-Identifier: EPL-2.0

package frame

import "errors"

var (
	// ErrCorruptFrame marks a single frame that could not be decoded.
	// Readers return it wrapped; the sequence continues after it.
	ErrCorruptFrame = errors.New("corrupt frame")

	// ErrStreamBroken ends a sequence after too many consecutive failures.
	ErrStreamBroken = errors.New("frame stream broken")

	ErrInvalidFrameSize = errors.New("frame size must be positive")
)
