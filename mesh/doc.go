// SPDX-License-Identifier: EPL-2.0

// Package mesh builds the UV sphere the renderer colors.
//
// Sphere is pure: the same arguments always give an identical mesh.
// Triangles are ordered top cap, then each band from north to south, then
// bottom cap, and within each group by sector.
package mesh
