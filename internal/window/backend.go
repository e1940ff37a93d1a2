// SPDX-License-Identifier: EPL-2.0

package window

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ik5/kartina/mesh"
	"github.com/ik5/kartina/render"
)

// ScreenVertex is a vertex projected to window pixels.
type ScreenVertex struct {
	X, Y  float32
	Color [3]float32
	// Clipped is set when the vertex lies behind the camera.
	Clipped bool
}

// Backend is a render.Backend that projects the mesh on the CPU and keeps
// the front-facing triangles in window coordinates, ready for a
// DrawTriangles call. The sphere is convex, so back-face culling is enough
// to get the draw order right without a depth buffer.
//
// All methods must be called from the same goroutine.
type Backend struct {
	positions []mgl32.Vec4
	colors    [][3]float32
	triangles []uint32

	screen  []ScreenVertex
	visible []uint16
	clear   [4]float32
	tick    uint64
}

var _ render.Backend = (*Backend)(nil)

func NewBackend() *Backend {
	return &Backend{}
}

func (b *Backend) CreateBuffers(m *mesh.Mesh) error {
	if len(m.Vertices) > math.MaxUint16+1 {
		return fmt.Errorf("%w: %d", ErrTooManyVertices, len(m.Vertices))
	}
	if err := m.Validate(); err != nil {
		return err
	}
	b.positions = make([]mgl32.Vec4, len(m.Vertices))
	b.colors = make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		b.positions[i] = mgl32.Vec4{v.Position[0], v.Position[1], v.Position[2], 1}
		b.colors[i] = v.Color
	}
	b.triangles = append(b.triangles[:0], m.Indices...)
	b.screen = make([]ScreenVertex, len(m.Vertices))
	b.visible = make([]uint16, 0, len(m.Indices))
	return nil
}

func (b *Backend) UpdateColorBuffer(vertices []mesh.Vertex) error {
	if b.positions == nil {
		return ErrNoBuffers
	}
	if len(vertices) != len(b.colors) {
		return fmt.Errorf("%w: got %d, want %d", ErrVertexCount, len(vertices), len(b.colors))
	}
	for i, v := range vertices {
		b.colors[i] = v.Color
	}
	return nil
}

// Draw projects every vertex with the frame's MVP and rebuilds the list of
// visible triangles.
func (b *Backend) Draw(fc render.FrameContext) error {
	if b.positions == nil {
		return ErrNoBuffers
	}
	if fc.Width <= 0 || fc.Height <= 0 {
		return ErrNoSurface
	}

	mvp := fc.MVP()
	w, h := float32(fc.Width), float32(fc.Height)
	for i, p := range b.positions {
		clip := mvp.Mul4x1(p)
		sv := ScreenVertex{Color: b.colors[i]}
		if clip.W() <= 0 {
			sv.Clipped = true
		} else {
			sv.X = (clip.X()/clip.W() + 1) / 2 * w
			sv.Y = (1 - clip.Y()/clip.W()) / 2 * h
		}
		b.screen[i] = sv
	}

	b.visible = b.visible[:0]
	for t := 0; t+2 < len(b.triangles); t += 3 {
		i0, i1, i2 := b.triangles[t], b.triangles[t+1], b.triangles[t+2]
		v0, v1, v2 := b.screen[i0], b.screen[i1], b.screen[i2]
		if v0.Clipped || v1.Clipped || v2.Clipped {
			continue
		}
		// Window Y points down, so counter-clockwise front faces come out
		// with a negative signed area.
		area := (v1.X-v0.X)*(v2.Y-v0.Y) - (v2.X-v0.X)*(v1.Y-v0.Y)
		if area >= 0 {
			continue
		}
		b.visible = append(b.visible, uint16(i0), uint16(i1), uint16(i2))
	}

	b.clear = fc.Clear
	b.tick = fc.Tick
	return nil
}

// Vertices returns the projected vertices from the last Draw. The slice is
// reused by the next Draw.
func (b *Backend) Vertices() []ScreenVertex { return b.screen }

// Indices returns the visible triangles from the last Draw as index
// triples into Vertices.
func (b *Backend) Indices() []uint16 { return b.visible }

func (b *Backend) ClearColor() [4]float32 { return b.clear }

func (b *Backend) Tick() uint64 { return b.tick }
