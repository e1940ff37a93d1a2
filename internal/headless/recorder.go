// SPDX-License-Identifier: EPL-2.0

package headless

import (
	"sync"

	"github.com/ik5/kartina/mesh"
	"github.com/ik5/kartina/render"
)

// RecorderStats summarizes what a Recorder has seen.
type RecorderStats struct {
	Vertices  int
	Triangles int
	Uploads   int
	Draws     int
	LastTick  uint64
}

// Recorder is a render.Backend that keeps the latest uploaded colors and
// counts calls instead of drawing. It is safe to inspect from another
// goroutine while a loop drives it.
type Recorder struct {
	mu     sync.Mutex
	stats  RecorderStats
	colors [][3]float32
	last   render.FrameContext
}

var _ render.Backend = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) CreateBuffers(m *mesh.Mesh) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.Vertices = len(m.Vertices)
	r.stats.Triangles = m.TriangleCount()
	r.colors = make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		r.colors[i] = v.Color
	}
	return nil
}

func (r *Recorder) UpdateColorBuffer(vertices []mesh.Vertex) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.colors) != len(vertices) {
		r.colors = make([][3]float32, len(vertices))
	}
	for i, v := range vertices {
		r.colors[i] = v.Color
	}
	r.stats.Uploads++
	return nil
}

func (r *Recorder) Draw(fc render.FrameContext) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.Draws++
	r.stats.LastTick = fc.Tick
	r.last = fc
	return nil
}

func (r *Recorder) Stats() RecorderStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Colors returns a copy of the vertex colors from the latest upload.
func (r *Recorder) Colors() [][3]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([][3]float32, len(r.colors))
	copy(out, r.colors)
	return out
}

// LastFrame returns the context of the most recent Draw.
func (r *Recorder) LastFrame() render.FrameContext {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
