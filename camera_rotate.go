package playercam

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Rotate turns the camera in place: pitch around the current right vector,
// then yaw around WorldUp, both in radians. Positive pitch looks up and
// positive yaw turns left. Eye stays fixed and the view distance is kept.
//
// Pitch is not clamped; rotating past the pole flips the up vector.
func (c *Camera) Rotate(pitch, yaw float32) {
	if pitch == 0 && yaw == 0 {
		return
	}

	view := c.ViewDirection()
	q := mgl32.QuatRotate(yaw, WorldUp).Mul(mgl32.QuatRotate(pitch, c.Right()))

	c.Up = q.Rotate(c.Up).Normalize()
	c.LookAt = c.Eye.Add(q.Rotate(view))
}

// DragAngles converts a pointer drag of (dx, dy) pixels into pitch and yaw.
// Dragging right turns right and dragging down looks down; speed is radians
// per inch of drag.
func DragAngles(dx, dy float64, dpi, speed float32) (pitch, yaw float32) {
	if dpi <= 0 {
		return 0, 0
	}
	yaw = -float32(dx) / dpi * speed
	pitch = -float32(dy) / dpi * speed
	return pitch, yaw
}
