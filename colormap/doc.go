// SPDX-License-Identifier: EPL-2.0

// Package colormap derives sphere colors from audio frames.
//
// Each triangle reads three consecutive frame values as red, green and
// blue, each normalized by 65535. Silence (32768) is therefore mid grey
// and an all-zero frame paints the sphere black. Frames shorter than
// three values per triangle wrap around, so any non-empty frame colors
// the whole mesh.
package colormap
