// SPDX-License-Identifier: EPL-2.0

// Package window shows the sphere in a desktop window.
//
// Backend implements render.Backend by projecting the mesh on the CPU with
// the frame's model-view-projection matrix and culling back faces. Run
// wraps a render state in an ebiten game: Update calls OnRedraw, Layout
// reports size changes through OnResize, and Escape or the close button
// ends the loop and calls OnClose.
//
// # Build
//
// The ebiten loop needs cgo. Without it Run returns ErrNoWindow and the
// headless mode is the only way to drive a render state.
package window
