// SPDX-License-Identifier: EPL-2.0

package headless

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ik5/kartina/render"
)

// Surface is the window-side view of render.State.
type Surface interface {
	Init() error
	OnResize(width, height int) error
	OnRedraw() error
	OnClose()
}

// Config controls the no-window runner.
type Config struct {
	// Hz is the redraw rate; 0 means 60.
	Hz int
	// Ticks stops the loop after this many redraws; 0 runs until ctx ends.
	Ticks uint64
	// Width and Height are reported once through OnResize; 0 means 800x600.
	Width, Height int
	Logger        *slog.Logger
}

// Run initializes s and redraws it on a ticker until ctx is done or the tick
// budget is spent, then closes it. Draw and color upload failures are
// skipped; any other redraw error stops the loop and is returned.
// Cancellation returns ctx.Err().
func Run(ctx context.Context, s Surface, cfg Config) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 800, 600
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	if err := s.Init(); err != nil {
		return err
	}
	defer s.OnClose()
	if err := s.OnResize(cfg.Width, cfg.Height); err != nil {
		return err
	}

	t := time.NewTicker(d)
	defer t.Stop()

	log.Info("headless loop started", "hz", cfg.Hz, "ticks", cfg.Ticks)
	var tick uint64
	for {
		select {
		case <-ctx.Done():
			log.Info("headless loop stopped", "ticks", tick)
			return ctx.Err()
		case <-t.C:
			if err := s.OnRedraw(); err != nil {
				if !errors.Is(err, render.ErrDraw) && !errors.Is(err, render.ErrColorUpdate) {
					return fmt.Errorf("redraw %d: %w", tick+1, err)
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				log.Info("headless loop finished", "ticks", tick)
				return nil
			}
		}
	}
}
