// SPDX-License-Identifier: EPL-2.0

package render

import "errors"

var (
	// ErrDraw wraps a failed backend Draw. The state stays usable.
	ErrDraw = errors.New("draw failed")

	// ErrColorUpdate wraps a frame that could not be mapped or uploaded.
	// The previous colors stay on screen.
	ErrColorUpdate = errors.New("color update failed")

	ErrNotReady   = errors.New("render state not initialized")
	ErrTerminated = errors.New("render state terminated")

	ErrInvalidSize = errors.New("invalid surface size")
)
