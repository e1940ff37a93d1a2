// SPDX-License-Identifier: EPL-2.0

package window

import "errors"

var (
	ErrNoWindow        = errors.New("window mode requires cgo (build with CGO_ENABLED=1)")
	ErrTooManyVertices = errors.New("mesh has too many vertices for 16-bit indices")
	ErrVertexCount     = errors.New("vertex count does not match the mesh")
	ErrNoSurface       = errors.New("surface size not known yet")
	ErrNoBuffers       = errors.New("buffers not created")
)
