package playercam

import (
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Direction is a set of held translation directions.
type Direction uint8

const (
	DirForward Direction = 1 << iota
	DirBackward
	DirLeft
	DirRight

	DirNone Direction = 0
)

// Axes returns the camera-space movement: x to the right, y forward.
// Opposite directions cancel.
func (d Direction) Axes() (x, y float32) {
	if d&DirRight != 0 {
		x++
	}
	if d&DirLeft != 0 {
		x--
	}
	if d&DirForward != 0 {
		y++
	}
	if d&DirBackward != 0 {
		y--
	}
	return x, y
}

func (d Direction) String() string {
	if d == DirNone {
		return "none"
	}
	var parts []string
	for _, p := range []struct {
		dir  Direction
		name string
	}{
		{DirForward, "forward"},
		{DirBackward, "backward"},
		{DirLeft, "left"},
		{DirRight, "right"},
	} {
		if d&p.dir != 0 {
			parts = append(parts, p.name)
		}
	}
	return strings.Join(parts, "|")
}

// Translate moves eye and look-at together along the horizontal right and
// forward axes. The step is speed viewports per second, so movement feels the
// same at any scale. A zero input or non-positive dt leaves the camera as is.
func (c *Camera) Translate(dir Direction, dt time.Duration, speed float32) {
	x, y := dir.Axes()
	if (x == 0 && y == 0) || dt <= 0 || speed == 0 {
		return
	}

	forward, right := c.horizontalAxes()
	step := speed * float32(dt.Seconds()) * c.ViewportSize()
	offset := right.Mul(x * step).Add(forward.Mul(y * step))

	c.Eye = c.Eye.Add(offset)
	c.LookAt = c.LookAt.Add(offset)
}

// horizontalAxes flattens the view direction onto the ground plane. When the
// camera looks straight up or down, the up vector stands in for it.
func (c Camera) horizontalAxes() (forward, right mgl32.Vec3) {
	view := c.ViewDirection()
	forward = flatten(view)
	if forward.Len() < degenerateEpsilon {
		if view.Dot(WorldUp) < 0 {
			forward = flatten(c.Up)
		} else {
			forward = flatten(c.Up.Mul(-1))
		}
	}
	forward = forward.Normalize()
	right = forward.Cross(WorldUp).Normalize()
	return forward, right
}

func flatten(v mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(WorldUp.Mul(v.Dot(WorldUp)))
}
