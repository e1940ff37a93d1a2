// SPDX-License-Identifier: EPL-2.0

package mesh

import (
	"fmt"
	"math"
)

// Vertex is one mesh vertex. Only Color changes after the mesh is built.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
	Color    [3]float32
}

// Mesh is an indexed triangle list. Indices come in counter-clockwise
// triples.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32

	Stacks  int
	Sectors int
	Radius  float32
}

// Sphere builds a UV sphere of the given radius centred on the origin with
// its poles on the Z axis. Stack i sits at latitude π/2 - i·π/stacks and
// sector j at longitude j·2π/sectors.
//
// Each pole ring holds one vertex per sector so every vertex belongs to a
// triangle; inner rings repeat their first vertex at the seam. The result
// has 2·sectors + (stacks-1)·(sectors+1) vertices and 2·sectors·(stacks-1)
// triangles.
func Sphere(stacks, sectors int, radius float32) (*Mesh, error) {
	switch {
	case stacks < 2:
		return nil, fmt.Errorf("%w: %d", ErrTooFewStacks, stacks)
	case sectors < 3:
		return nil, fmt.Errorf("%w: %d", ErrTooFewSectors, sectors)
	case !(radius > 0) || math.IsInf(float64(radius), 0):
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}

	m := &Mesh{
		Vertices: make([]Vertex, 0, VertexCount(stacks, sectors)),
		Indices:  make([]uint32, 0, 3*TriangleCount(stacks, sectors)),
		Stacks:   stacks,
		Sectors:  sectors,
		Radius:   radius,
	}

	stackStep := math.Pi / float64(stacks)
	sectorStep := 2 * math.Pi / float64(sectors)

	vertex := func(i int, s float64) Vertex {
		phi := math.Pi/2 - float64(i)*stackStep
		theta := s * sectorStep
		x := math.Cos(phi) * math.Cos(theta)
		y := math.Cos(phi) * math.Sin(theta)
		z := math.Sin(phi)
		r := float64(radius)
		return Vertex{
			Position: [3]float32{float32(r * x), float32(r * y), float32(r * z)},
			Normal:   [3]float32{float32(x), float32(y), float32(z)},
			TexCoord: [2]float32{float32(s / float64(sectors)), float32(i) / float32(stacks)},
		}
	}

	for i := 0; i <= stacks; i++ {
		if i == 0 || i == stacks {
			for j := range sectors {
				m.Vertices = append(m.Vertices, vertex(i, float64(j)+0.5))
			}
			continue
		}
		for j := 0; j <= sectors; j++ {
			m.Vertices = append(m.Vertices, vertex(i, float64(j)))
		}
	}

	sec := uint32(sectors)
	ringStart := func(i int) uint32 {
		if i == 0 {
			return 0
		}
		return sec + uint32(i-1)*(sec+1)
	}

	// Top cap.
	first := ringStart(1)
	for j := range sec {
		m.Indices = append(m.Indices, j, first+j, first+j+1)
	}

	// Bands between inner rings.
	for i := 1; i < stacks-1; i++ {
		k1 := ringStart(i)
		k2 := ringStart(i + 1)
		for j := range sec {
			m.Indices = append(m.Indices,
				k1+j, k2+j, k1+j+1,
				k1+j+1, k2+j, k2+j+1,
			)
		}
	}

	// Bottom cap.
	last := ringStart(stacks - 1)
	pole := ringStart(stacks)
	for j := range sec {
		m.Indices = append(m.Indices, last+j, pole+j, last+j+1)
	}

	return m, nil
}

// VertexCount returns the number of vertices Sphere(stacks, sectors, r)
// produces.
func VertexCount(stacks, sectors int) int {
	return 2*sectors + (stacks-1)*(sectors+1)
}

// TriangleCount returns the number of triangles Sphere(stacks, sectors, r)
// produces.
func TriangleCount(stacks, sectors int) int {
	return 2 * sectors * (stacks - 1)
}

func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Triangle returns the vertex indices of triangle t.
func (m *Mesh) Triangle(t int) [3]uint32 {
	return [3]uint32{m.Indices[3*t], m.Indices[3*t+1], m.Indices[3*t+2]}
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	c := *m
	c.Vertices = append([]Vertex(nil), m.Vertices...)
	c.Indices = append([]uint32(nil), m.Indices...)
	return &c
}

// Flatten returns a copy where every triangle owns its three vertices, so
// a per-triangle color is never overwritten by a neighbour.
func (m *Mesh) Flatten() *Mesh {
	f := &Mesh{
		Vertices: make([]Vertex, len(m.Indices)),
		Indices:  make([]uint32, len(m.Indices)),
		Stacks:   m.Stacks,
		Sectors:  m.Sectors,
		Radius:   m.Radius,
	}
	for i, idx := range m.Indices {
		f.Vertices[i] = m.Vertices[idx]
		f.Indices[i] = uint32(i)
	}
	return f
}

// Validate checks that the index list is made of whole triangles that
// reference existing vertices.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrPartialTriangle, len(m.Indices))
	}
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d is %d, have %d vertices", ErrIndexOutOfRange, i, idx, n)
		}
	}
	return nil
}
