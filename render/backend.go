// SPDX-License-Identifier: EPL-2.0

package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/ik5/kartina/mesh"
)

// Backend is the drawing surface State renders through.
type Backend interface {
	// CreateBuffers receives the mesh once, before any other call.
	CreateBuffers(m *mesh.Mesh) error
	// UpdateColorBuffer replaces the vertex data after colors changed.
	// The slice is owned by State and only valid during the call.
	UpdateColorBuffer(vertices []mesh.Vertex) error
	// Draw renders one frame.
	Draw(fc FrameContext) error
}

// FrameContext is what a backend needs to draw one frame.
type FrameContext struct {
	Tick   uint64
	Width  int
	Height int

	ViewProjection mgl32.Mat4
	Model          mgl32.Mat4

	// Clear is the RGBA background color.
	Clear [4]float32
}

// MVP returns the combined model-view-projection matrix.
func (fc FrameContext) MVP() mgl32.Mat4 {
	return fc.ViewProjection.Mul4(fc.Model)
}
