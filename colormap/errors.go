// SPDX-License-Identifier: EPL-2.0

package colormap

import "errors"

var (
	ErrEmptyFrame    = errors.New("frame has no samples")
	ErrUnknownPolicy = errors.New("unknown color policy")
)
