// SPDX-License-Identifier: EPL-2.0

package colormap

import (
	"fmt"
	"strings"

	"github.com/ik5/kartina/mesh"
	"github.com/ik5/kartina/utils"
)

// Color is an RGB triple in [0, 1].
type Color [3]float32

// Policy selects which frame values feed which triangle.
type Policy int

const (
	// Cycle gives triangle t the values at 3t, 3t+1 and 3t+2, wrapping
	// around the frame.
	Cycle Policy = iota
	// Spread starts triangle t at t·n/T so the whole frame is sampled
	// once across the mesh, then takes the next two values.
	Spread
)

func (p Policy) String() string {
	switch p {
	case Cycle:
		return "cycle"
	case Spread:
		return "spread"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy accepts the names returned by Policy.String.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cycle":
		return Cycle, nil
	case "spread":
		return Spread, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Mapper turns frame values into vertex colors. The zero value uses Cycle.
type Mapper struct {
	Policy Policy
}

// TriangleColor returns the color of triangle t out of triangles.
// samples must not be empty.
func (m Mapper) TriangleColor(samples []uint16, t, triangles int) Color {
	n := len(samples)
	base := 3 * t
	if m.Policy == Spread && triangles > 0 {
		base = int(uint64(t) * uint64(n) / uint64(triangles))
	}
	return Color{
		utils.Uint16ToUnit(samples[base%n]),
		utils.Uint16ToUnit(samples[(base+1)%n]),
		utils.Uint16ToUnit(samples[(base+2)%n]),
	}
}

// Apply colors every triangle of msh from samples. All three vertices of a
// triangle get its color; a vertex shared by several triangles keeps the
// color of the last one in index order.
func (m Mapper) Apply(samples []uint16, msh *mesh.Mesh) error {
	if len(samples) == 0 {
		return ErrEmptyFrame
	}
	triangles := msh.TriangleCount()
	for t := range triangles {
		c := m.TriangleColor(samples, t, triangles)
		for _, idx := range msh.Indices[3*t : 3*t+3] {
			msh.Vertices[idx].Color = c
		}
	}
	return nil
}
