// SPDX-License-Identifier: EPL-2.0

package mesh

import "errors"

var (
	ErrTooFewStacks    = errors.New("sphere needs at least 2 stacks")
	ErrTooFewSectors   = errors.New("sphere needs at least 3 sectors")
	ErrInvalidRadius   = errors.New("sphere radius must be positive and finite")
	ErrPartialTriangle = errors.New("index count is not a multiple of 3")
	ErrIndexOutOfRange = errors.New("index out of range")
)
