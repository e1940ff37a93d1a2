// SPDX-License-Identifier: EPL-2.0

package render

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ik5/kartina/colormap"
	"github.com/ik5/kartina/frame"
	"github.com/ik5/kartina/internal/observe"
	"github.com/ik5/kartina/mesh"
)

var errBackend = errors.New("backend exploded")

// fakeBackend records calls and can be told to fail.
type fakeBackend struct {
	created  int
	uploads  [][]mesh.Vertex
	draws    []FrameContext
	failInit bool
	failDraw bool
	failSync bool
}

func (b *fakeBackend) CreateBuffers(*mesh.Mesh) error {
	if b.failInit {
		return errBackend
	}
	b.created++
	return nil
}

func (b *fakeBackend) UpdateColorBuffer(v []mesh.Vertex) error {
	if b.failSync {
		return errBackend
	}
	b.uploads = append(b.uploads, append([]mesh.Vertex(nil), v...))
	return nil
}

func (b *fakeBackend) Draw(fc FrameContext) error {
	if b.failDraw {
		return errBackend
	}
	b.draws = append(b.draws, fc)
	return nil
}

func newTestState(t *testing.T, opts ...Option) (*State, *fakeBackend, *frame.Channel) {
	t.Helper()
	m, err := mesh.Sphere(18, 36, 1)
	if err != nil {
		t.Fatalf("Sphere() error = %v", err)
	}
	b := &fakeBackend{}
	ch := frame.NewChannel()
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return New(m, b, ch, opts...), b, ch
}

func filled(seq uint64, v uint16) *frame.Frame {
	f := &frame.Frame{Samples: make([]uint16, frame.DefaultSize), Seq: seq}
	for i := range f.Samples {
		f.Samples[i] = v
	}
	return f
}

func TestState_Lifecycle(t *testing.T) {
	t.Parallel()

	s, b, _ := newTestState(t)
	if s.Phase() != Uninitialized {
		t.Fatalf("Phase() = %v, want uninitialized", s.Phase())
	}
	if err := s.OnRedraw(); !errors.Is(err, ErrNotReady) {
		t.Errorf("OnRedraw() before Init = %v, want ErrNotReady", err)
	}
	if err := s.OnResize(10, 10); !errors.Is(err, ErrNotReady) {
		t.Errorf("OnResize() before Init = %v, want ErrNotReady", err)
	}

	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := s.Init(); err != nil || b.created != 1 {
		t.Errorf("second Init() = %v, buffers created %d times", err, b.created)
	}
	if s.Phase() != Ready {
		t.Fatalf("Phase() = %v, want ready", s.Phase())
	}

	s.OnClose()
	s.OnClose()
	if s.Phase() != Terminated {
		t.Fatalf("Phase() = %v, want terminated", s.Phase())
	}
	if err := s.OnRedraw(); !errors.Is(err, ErrTerminated) {
		t.Errorf("OnRedraw() after close = %v, want ErrTerminated", err)
	}
	if err := s.Init(); !errors.Is(err, ErrTerminated) {
		t.Errorf("Init() after close = %v, want ErrTerminated", err)
	}
}

func TestState_InitFailure(t *testing.T) {
	t.Parallel()

	s, b, _ := newTestState(t)
	b.failInit = true
	if err := s.Init(); !errors.Is(err, errBackend) {
		t.Fatalf("Init() error = %v, want backend error", err)
	}
	if s.Phase() != Uninitialized {
		t.Errorf("Phase() = %v, want uninitialized", s.Phase())
	}
}

func TestState_RedrawWithoutFrameKeepsColors(t *testing.T) {
	t.Parallel()

	s, b, _ := newTestState(t)
	_ = s.Init()

	for range 3 {
		if err := s.OnRedraw(); err != nil {
			t.Fatalf("OnRedraw() error = %v", err)
		}
	}
	if len(b.draws) != 3 {
		t.Errorf("draws = %d, want 3", len(b.draws))
	}
	if len(b.uploads) != 0 {
		t.Errorf("uploads = %d, want 0", len(b.uploads))
	}
	for i, v := range s.Mesh().Vertices {
		if v.Color != ([3]float32{}) {
			t.Fatalf("vertex %d color changed to %v", i, v.Color)
		}
	}
	if s.LastSeq() != 0 || s.Tick() != 3 {
		t.Errorf("LastSeq() = %d, Tick() = %d", s.LastSeq(), s.Tick())
	}
}

func TestState_TwoFramesLatestWins(t *testing.T) {
	t.Parallel()

	s, b, ch := newTestState(t)
	_ = s.Init()

	ch.Publish(filled(1, 0))
	ch.Publish(filled(2, 65535))

	if err := s.OnRedraw(); err != nil {
		t.Fatalf("OnRedraw() error = %v", err)
	}
	if s.LastSeq() != 2 {
		t.Errorf("LastSeq() = %d, want 2", s.LastSeq())
	}
	if len(b.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1", len(b.uploads))
	}
	for i, v := range b.uploads[0] {
		if v.Color != ([3]float32{1, 1, 1}) {
			t.Fatalf("uploaded vertex %d color = %v, want white from frame 2", i, v.Color)
		}
	}

	if err := s.OnRedraw(); err != nil {
		t.Fatalf("second OnRedraw() error = %v", err)
	}
	if len(b.uploads) != 1 || len(b.draws) != 2 {
		t.Errorf("after empty redraw: uploads = %d, draws = %d", len(b.uploads), len(b.draws))
	}
}

func TestState_DrawFailureIsRecoverable(t *testing.T) {
	t.Parallel()

	s, b, _ := newTestState(t)
	_ = s.Init()

	b.failDraw = true
	err := s.OnRedraw()
	if !errors.Is(err, ErrDraw) || !errors.Is(err, errBackend) {
		t.Fatalf("OnRedraw() error = %v, want ErrDraw", err)
	}
	if s.Phase() != Ready {
		t.Errorf("Phase() = %v, want ready", s.Phase())
	}

	b.failDraw = false
	if err := s.OnRedraw(); err != nil {
		t.Errorf("OnRedraw() after recovery = %v", err)
	}
}

func TestState_ColorUpdateFailures(t *testing.T) {
	t.Parallel()

	t.Run("upload", func(t *testing.T) {
		t.Parallel()

		s, b, ch := newTestState(t)
		_ = s.Init()
		b.failSync = true
		ch.Publish(filled(7, 100))

		err := s.OnRedraw()
		if !errors.Is(err, ErrColorUpdate) {
			t.Fatalf("OnRedraw() error = %v, want ErrColorUpdate", err)
		}
		if s.LastSeq() != 0 {
			t.Errorf("LastSeq() = %d, want 0", s.LastSeq())
		}
		if len(b.draws) != 1 {
			t.Errorf("draws = %d, want 1", len(b.draws))
		}
		for i, v := range s.Mesh().Vertices {
			if v.Color != [3]float32{} {
				t.Fatalf("vertex %d color = %v after a failed upload, want the previous black", i, v.Color)
			}
		}

		b.failSync = false
		ch.Publish(filled(8, 65535))
		if err := s.OnRedraw(); err != nil {
			t.Fatalf("OnRedraw() after recovery = %v", err)
		}
		if s.LastSeq() != 8 || len(b.uploads) != 1 {
			t.Fatalf("LastSeq() = %d, uploads = %d, want 8 and 1", s.LastSeq(), len(b.uploads))
		}
		for i, v := range s.Mesh().Vertices {
			if v.Color != [3]float32{1, 1, 1} || b.uploads[0][i].Color != v.Color {
				t.Fatalf("vertex %d: mesh %v, uploaded %v, want both white", i, v.Color, b.uploads[0][i].Color)
			}
		}
	})

	t.Run("empty frame", func(t *testing.T) {
		t.Parallel()

		s, _, ch := newTestState(t)
		_ = s.Init()
		ch.Publish(&frame.Frame{Seq: 1})

		if err := s.OnRedraw(); !errors.Is(err, ErrColorUpdate) || !errors.Is(err, colormap.ErrEmptyFrame) {
			t.Errorf("OnRedraw() error = %v, want ErrColorUpdate wrapping ErrEmptyFrame", err)
		}
	})

	t.Run("upload and draw", func(t *testing.T) {
		t.Parallel()

		s, b, ch := newTestState(t)
		_ = s.Init()
		b.failSync, b.failDraw = true, true
		ch.Publish(filled(1, 1))

		err := s.OnRedraw()
		if !errors.Is(err, ErrColorUpdate) || !errors.Is(err, ErrDraw) {
			t.Errorf("OnRedraw() error = %v, want both failures", err)
		}
	})
}

func TestState_Rotation(t *testing.T) {
	t.Parallel()

	s, b, _ := newTestState(t)
	_ = s.Init()

	for range 3 {
		_ = s.OnRedraw()
	}
	if s.Angle() != 6 {
		t.Errorf("Angle() = %v, want 6", s.Angle())
	}
	want := mgl32.HomogRotate3DZ(mgl32.DegToRad(6))
	if !b.draws[2].Model.ApproxEqual(want) {
		t.Errorf("Model = %v, want %v", b.draws[2].Model, want)
	}
	if b.draws[2].Tick != 3 {
		t.Errorf("Tick = %d, want 3", b.draws[2].Tick)
	}
	if b.draws[0].Clear != White {
		t.Errorf("Clear = %v, want white", b.draws[0].Clear)
	}

	for range 177 {
		_ = s.OnRedraw()
	}
	if s.Angle() != 0 {
		t.Errorf("Angle() after a full turn = %v, want 0", s.Angle())
	}
}

func TestState_Options(t *testing.T) {
	t.Parallel()

	red := [4]float32{1, 0, 0, 1}
	cam := DefaultCamera()
	cam.FovY = 60
	s, b, ch := newTestState(t,
		WithRotationStep(-5),
		WithClearColor(red),
		WithCamera(cam),
		WithMapper(colormap.Mapper{Policy: colormap.Spread}),
	)
	_ = s.Init()
	ch.Publish(&frame.Frame{Seq: 1, Samples: []uint16{0, 65535}})
	_ = s.OnRedraw()

	if s.Angle() != -5 {
		t.Errorf("Angle() = %v, want -5", s.Angle())
	}
	if b.draws[0].Clear != red {
		t.Errorf("Clear = %v, want red", b.draws[0].Clear)
	}
	if s.Camera().FovY != 60 {
		t.Errorf("FovY = %v, want 60", s.Camera().FovY)
	}
}

func TestState_Resize(t *testing.T) {
	t.Parallel()

	s, b, _ := newTestState(t)
	_ = s.Init()

	if err := s.OnResize(800, 400); err != nil {
		t.Fatalf("OnResize() error = %v", err)
	}
	if s.Camera().Aspect != 2 {
		t.Errorf("Aspect = %v, want 2", s.Camera().Aspect)
	}
	if err := s.OnResize(0, 400); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("OnResize(0, 400) = %v, want ErrInvalidSize", err)
	}

	_ = s.OnRedraw()
	if fc := b.draws[0]; fc.Width != 800 || fc.Height != 400 {
		t.Errorf("FrameContext size = %dx%d, want 800x400", fc.Width, fc.Height)
	}
}

func TestState_Metrics(t *testing.T) {
	t.Parallel()

	prov, err := observe.NewProvider()
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	ctx := context.Background()
	t.Cleanup(func() { _ = prov.Shutdown(ctx) })

	s, b, ch := newTestState(t, WithMetrics(prov.Metrics))
	_ = s.Init()
	ch.Publish(filled(1, 5))
	_ = s.OnRedraw()
	b.failDraw = true
	_ = s.OnRedraw()

	totals, err := prov.Totals(ctx)
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if totals[observe.RenderRedraws] != 2 || totals[observe.RenderColorUpdate] != 1 ||
		totals[observe.RenderErrors] != 1 || totals[observe.MapDuration] != 1 {
		t.Errorf("totals = %v", totals)
	}
}

func TestFrameContext_MVP(t *testing.T) {
	t.Parallel()

	fc := FrameContext{
		ViewProjection: DefaultCamera().ViewProjection(),
		Model:          mgl32.HomogRotate3DZ(float32(math.Pi / 2)),
	}
	want := fc.ViewProjection.Mul4(fc.Model)
	if !fc.MVP().ApproxEqual(want) {
		t.Errorf("MVP() = %v, want %v", fc.MVP(), want)
	}
}

func TestCamera_OriginProjectsToCentre(t *testing.T) {
	t.Parallel()

	cam := DefaultCamera()
	if cam.Eye != (mgl32.Vec3{0, 1, 2}) || cam.FovY != 45 || cam.ZNear != 0.1 || cam.ZFar != 100 {
		t.Errorf("DefaultCamera() = %+v", cam)
	}

	clip := cam.ViewProjection().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if clip.W() <= 0 {
		t.Fatalf("origin behind camera: %v", clip)
	}
	if x, y := clip.X()/clip.W(), clip.Y()/clip.W(); math.Abs(float64(x)) > 1e-5 || math.Abs(float64(y)) > 1e-5 {
		t.Errorf("origin at NDC (%v, %v), want centre", x, y)
	}
}
