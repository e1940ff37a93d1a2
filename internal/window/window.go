// SPDX-License-Identifier: EPL-2.0

package window

import "log/slog"

// Surface is the window-side view of render.State.
type Surface interface {
	Init() error
	OnResize(width, height int) error
	OnRedraw() error
	OnClose()
}

// Config controls the desktop window.
type Config struct {
	Title         string
	Width, Height int
	// TPS is the redraw rate; 0 means 60.
	TPS    int
	Logger *slog.Logger
}
