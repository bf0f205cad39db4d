package playercam

import (
	"github.com/go-gl/mathgl/mgl32"
)

func (c Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.LookAt, c.Up)
}

// ClipPlanes returns the absolute near and far distances.
func (c Camera) ClipPlanes() (near, far float32) {
	d := c.ViewDistance()
	return c.Near * d, c.Far * d
}

func (c Camera) ProjectionMatrix() mgl32.Mat4 {
	near, far := c.ClipPlanes()
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), aspect, near, far)
}
