package playercam

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MatrixSink receives the view and projection matrices computed by a camera
// controller and installs them on a scene's active camera.
type MatrixSink interface {
	SetCameraMatrices(view, projection mgl32.Mat4)
}

// SceneCamera is the transform the renderer reads each frame.
type SceneCamera struct {
	View           mgl32.Mat4
	Projection     mgl32.Mat4
	ViewProjection mgl32.Mat4
}

type Scene struct {
	camera    SceneCamera
	revision  uint64
	listeners []func(SceneCamera)
}

func NewScene() *Scene {
	ident := mgl32.Ident4()
	return &Scene{
		camera: SceneCamera{View: ident, Projection: ident, ViewProjection: ident},
	}
}

func (s *Scene) SetCameraMatrices(view, projection mgl32.Mat4) {
	s.camera = SceneCamera{
		View:           view,
		Projection:     projection,
		ViewProjection: projection.Mul4(view),
	}
	s.revision++
	for _, fn := range s.listeners {
		fn(s.camera)
	}
}

func (s *Scene) ActiveCamera() SceneCamera {
	return s.camera
}

// Revision counts how many times the camera transform has been installed.
func (s *Scene) Revision() uint64 {
	return s.revision
}

// OnCameraChange registers fn to run after every matrix install.
func (s *Scene) OnCameraChange(fn func(SceneCamera)) {
	s.listeners = append(s.listeners, fn)
}

// FrustumPlanes extracts the six clip planes of the active camera in world
// space, in order: left, right, bottom, top, near, far. Each plane is
// (A, B, C, D) with Ax + By + Cz + D >= 0 on the inside.
func (c SceneCamera) FrustumPlanes() [6]mgl32.Vec4 {
	vp := c.ViewProjection
	row := func(r int) mgl32.Vec4 {
		return mgl32.Vec4{vp.At(r, 0), vp.At(r, 1), vp.At(r, 2), vp.At(r, 3)}
	}
	w := row(3)
	planes := [6]mgl32.Vec4{
		w.Add(row(0)),
		w.Sub(row(0)),
		w.Add(row(1)),
		w.Sub(row(1)),
		w.Add(row(2)),
		w.Sub(row(2)),
	}

	for i := range planes {
		p := planes[i]
		length := float32(math.Sqrt(float64(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])))
		if length > 0 {
			planes[i] = p.Mul(1.0 / length)
		}
	}
	return planes
}

// Visible reports whether the world-space point p lies inside the frustum.
func (c SceneCamera) Visible(p mgl32.Vec3) bool {
	for _, plane := range c.FrustumPlanes() {
		if plane.Vec3().Dot(p)+plane[3] < 0 {
			return false
		}
	}
	return true
}
