// SPDX-License-Identifier: EPL-2.0

package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ik5/kartina/colormap"
	"github.com/ik5/kartina/frame"
	"github.com/ik5/kartina/internal/observe"
	"github.com/ik5/kartina/mesh"
)

// DefaultRotationStep is how far the model turns about Z per redraw, in
// degrees.
const DefaultRotationStep = 2

// Phase is the lifecycle stage of a State.
type Phase int

const (
	Uninitialized Phase = iota
	Ready
	Terminated
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// White is the default clear color.
var White = [4]float32{1, 1, 1, 1}

// State owns the sphere and everything needed to draw it. Its methods must
// be called from a single goroutine, normally the one running the window
// or headless loop.
type State struct {
	mesh    *mesh.Mesh
	backend Backend
	// staged receives new colors; it replaces mesh.Vertices once the
	// backend accepted them.
	staged *mesh.Mesh
	frames *frame.Channel

	mapper colormap.Mapper
	camera Camera
	step   float32
	angle  float32
	clear  [4]float32

	log *slog.Logger
	met *observe.Metrics

	phase   Phase
	tick    uint64
	lastSeq uint64
	width   int
	height  int
}

type Option func(*State)

func WithMapper(m colormap.Mapper) Option {
	return func(s *State) { s.mapper = m }
}

func WithCamera(c Camera) Option {
	return func(s *State) { s.camera = c }
}

// WithRotationStep sets the per-redraw model rotation in degrees.
func WithRotationStep(deg float32) Option {
	return func(s *State) { s.step = deg }
}

func WithClearColor(rgba [4]float32) Option {
	return func(s *State) { s.clear = rgba }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *State) { s.log = l }
}

func WithMetrics(m *observe.Metrics) Option {
	return func(s *State) { s.met = m }
}

// New returns an uninitialized State drawing m through b and reading
// frames from ch.
func New(m *mesh.Mesh, b Backend, ch *frame.Channel, opts ...Option) *State {
	s := &State{
		mesh:    m,
		backend: b,
		frames:  ch,
		camera:  DefaultCamera(),
		step:    DefaultRotationStep,
		clear:   White,
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.met == nil {
		s.met = observe.Nop()
	}
	return s
}

// Init hands the mesh to the backend. On failure the state stays
// uninitialized.
func (s *State) Init() error {
	switch s.phase {
	case Ready:
		return nil
	case Terminated:
		return ErrTerminated
	}
	if err := s.backend.CreateBuffers(s.mesh); err != nil {
		return fmt.Errorf("creating buffers: %w", err)
	}
	s.phase = Ready
	s.log.Info("render state ready",
		"vertices", len(s.mesh.Vertices), "triangles", s.mesh.TriangleCount())
	return nil
}

// OnResize records the new surface size and updates the camera aspect.
func (s *State) OnResize(width, height int) error {
	if err := s.ready(); err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	s.width, s.height = width, height
	s.camera.Aspect = float32(width) / float32(height)
	s.log.Debug("surface resized", "width", width, "height", height)
	return nil
}

// OnRedraw takes the newest frame if one arrived, recolors and uploads the
// mesh, advances the rotation and draws. Without a new frame the previous
// colors are drawn again. Backend failures are logged and returned but do
// not change the phase. The mesh keeps its previous colors when the
// upload fails, so it always matches what the backend holds.
func (s *State) OnRedraw() error {
	if err := s.ready(); err != nil {
		return err
	}
	ctx := context.Background()
	s.tick++
	s.met.Redraws.Add(ctx, 1)

	var errs []error
	if f, ok := s.frames.TryTake(); ok {
		if err := s.recolor(ctx, f); err != nil {
			errs = append(errs, err)
		}
	}

	s.angle = float32(math.Mod(float64(s.angle+s.step), 360))
	fc := FrameContext{
		Tick:           s.tick,
		Width:          s.width,
		Height:         s.height,
		ViewProjection: s.camera.ViewProjection(),
		Model:          mgl32.HomogRotate3DZ(mgl32.DegToRad(s.angle)),
		Clear:          s.clear,
	}
	if err := s.backend.Draw(fc); err != nil {
		s.met.RecordRenderError(ctx, observe.StageDraw)
		s.log.Warn("draw failed", "tick", s.tick, "err", err)
		errs = append(errs, fmt.Errorf("%w: %w", ErrDraw, err))
	}
	return errors.Join(errs...)
}

func (s *State) recolor(ctx context.Context, f *frame.Frame) error {
	if s.staged == nil {
		s.staged = s.mesh.Clone()
	} else {
		copy(s.staged.Vertices, s.mesh.Vertices)
	}

	start := time.Now()
	if err := s.mapper.Apply(f.Samples, s.staged); err != nil {
		s.met.RecordRenderError(ctx, observe.StageMap)
		s.log.Warn("frame not mapped", "seq", f.Seq, "err", err)
		return fmt.Errorf("%w: frame %d: %w", ErrColorUpdate, f.Seq, err)
	}
	s.met.MapDuration.Record(ctx, time.Since(start).Seconds())

	if err := s.backend.UpdateColorBuffer(s.staged.Vertices); err != nil {
		s.met.RecordRenderError(ctx, observe.StageUpload)
		s.log.Warn("color upload failed", "seq", f.Seq, "err", err)
		return fmt.Errorf("%w: frame %d: %w", ErrColorUpdate, f.Seq, err)
	}
	s.mesh.Vertices, s.staged.Vertices = s.staged.Vertices, s.mesh.Vertices
	s.lastSeq = f.Seq
	s.met.ColorUpdates.Add(ctx, 1)
	s.log.Debug("colors updated", "seq", f.Seq, "tick", s.tick)
	return nil
}

// OnClose terminates the state. Further calls are rejected; closing twice
// is a no-op.
func (s *State) OnClose() {
	if s.phase == Terminated {
		return
	}
	s.phase = Terminated
	s.log.Info("render state terminated", "ticks", s.tick, "last_seq", s.lastSeq)
}

func (s *State) ready() error {
	switch s.phase {
	case Uninitialized:
		return ErrNotReady
	case Terminated:
		return ErrTerminated
	}
	return nil
}

func (s *State) Phase() Phase { return s.phase }

// Tick returns the number of redraws handled.
func (s *State) Tick() uint64 { return s.tick }

// LastSeq returns the sequence number of the frame currently shown, or 0
// before the first one.
func (s *State) LastSeq() uint64 { return s.lastSeq }

// Angle returns the current model rotation in degrees.
func (s *State) Angle() float32 { return s.angle }

func (s *State) Camera() Camera { return s.camera }

func (s *State) Mesh() *mesh.Mesh { return s.mesh }
