// SPDX-License-Identifier: EPL-2.0

// Package render keeps the colored sphere on screen.
//
// # Lifecycle
//
// A State starts Uninitialized. Init uploads the mesh and makes it Ready;
// OnResize and OnRedraw are only accepted while Ready; OnClose moves it to
// Terminated for good.
//
// # Redraw
//
// Every OnRedraw polls the frame channel once. A new frame recolors the
// mesh through the colormap.Mapper and is uploaded with UpdateColorBuffer;
// no frame means the previous colors are reused. The model then turns by
// the rotation step about Z and Draw is always called, so the sphere keeps
// spinning when audio stalls or ends.
//
// Backends are plain interfaces. internal/window draws with ebiten and
// internal/headless records calls for tests and batch runs.
package render
