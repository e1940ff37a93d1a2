// SPDX-License-Identifier: EPL-2.0

//go:build cgo

package window

import (
	"context"
	"errors"
	"image"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ik5/kartina/render"
)

// Run opens a resizable window and drives s from ebiten's game loop until
// the window is closed, Escape is pressed or ctx is done. b must be the
// backend s renders through. It blocks and must be called from the main
// goroutine.
func Run(ctx context.Context, s Surface, b *Backend, cfg Config) error {
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	if err := s.Init(); err != nil {
		return err
	}

	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)

	g := &game{
		ctx:   ctx,
		s:     s,
		b:     b,
		log:   log,
		white: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(cfg.TPS)

	log.Info("window opened", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height, "tps", cfg.TPS)
	err := ebiten.RunGame(g)
	s.OnClose()
	return err
}

type game struct {
	ctx   context.Context
	s     Surface
	b     *Backend
	log   *slog.Logger
	white *ebiten.Image
	verts []ebiten.Vertex

	width, height int
}

func (g *game) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || g.ctx.Err() != nil {
		g.log.Info("window close requested")
		return ebiten.Termination
	}
	if err := g.s.OnRedraw(); err != nil {
		if errors.Is(err, render.ErrDraw) || errors.Is(err, render.ErrColorUpdate) {
			return nil
		}
		return err
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	c := g.b.ClearColor()
	screen.Fill(color.NRGBA{R: unit8(c[0]), G: unit8(c[1]), B: unit8(c[2]), A: unit8(c[3])})

	idx := g.b.Indices()
	if len(idx) == 0 {
		return
	}
	src := g.b.Vertices()
	g.verts = g.verts[:0]
	for _, v := range src {
		g.verts = append(g.verts, ebiten.Vertex{
			DstX:   v.X,
			DstY:   v.Y,
			SrcX:   1,
			SrcY:   1,
			ColorR: v.Color[0],
			ColorG: v.Color[1],
			ColorB: v.Color[2],
			ColorA: 1,
		})
	}
	screen.DrawTriangles(g.verts, idx, g.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		if err := g.s.OnResize(outsideWidth, outsideHeight); err != nil {
			g.log.Warn("resize rejected", "width", outsideWidth, "height", outsideHeight, "err", err)
		} else {
			g.width, g.height = outsideWidth, outsideHeight
		}
	}
	return outsideWidth, outsideHeight
}

func unit8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
