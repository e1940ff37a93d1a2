// SPDX-License-Identifier: EPL-2.0

package render

import "github.com/go-gl/mathgl/mgl32"

// Camera is a right-handed perspective camera.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3

	Aspect float32
	// FovY is the vertical field of view in degrees.
	FovY  float32
	ZNear float32
	ZFar  float32
}

// DefaultCamera looks at the origin from (0, 1, 2) with a 45 degree field
// of view. Aspect starts square and follows the window.
func DefaultCamera() Camera {
	return Camera{
		Eye:    mgl32.Vec3{0, 1, 2},
		Target: mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		Aspect: 1,
		FovY:   45,
		ZNear:  0.1,
		ZFar:   100,
	}
}

func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

func (c Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect, c.ZNear, c.ZFar)
}

// ViewProjection maps world space to clip space.
func (c Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}
