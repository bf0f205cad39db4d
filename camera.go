package playercam

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// WorldUp is the world's vertical axis. Translation stays in the plane
// orthogonal to it and yaw rotates around it.
var WorldUp = mgl32.Vec3{0, 0, 1}

const degenerateEpsilon = 1e-6

// Camera holds the pose and lens of a perspective camera. Near and Far are
// multiples of the view distance, so clipping follows the camera's scale.
type Camera struct {
	Eye    mgl32.Vec3
	LookAt mgl32.Vec3
	Up     mgl32.Vec3

	Fov    float32 // vertical field of view, degrees
	Near   float32
	Far    float32
	Aspect float32
}

// NewCamera returns a camera ten units from the origin on the -Y axis,
// looking at the origin with Z up.
func NewCamera() *Camera {
	return &Camera{
		Eye:    mgl32.Vec3{0, -10, 0},
		LookAt: mgl32.Vec3{0, 0, 0},
		Up:     WorldUp,
		Fov:    45,
		Near:   0.01,
		Far:    100,
		Aspect: 1,
	}
}

// ViewDirection is the unnormalised vector from the eye to the look-at point.
func (c Camera) ViewDirection() mgl32.Vec3 {
	return c.LookAt.Sub(c.Eye)
}

func (c Camera) ViewDistance() float32 {
	return c.ViewDirection().Len()
}

// Right returns the unit vector to the right of the view.
func (c Camera) Right() mgl32.Vec3 {
	return c.ViewDirection().Cross(c.Up).Normalize()
}

// ViewportSize is the height of the view frustum at the look-at distance.
func (c Camera) ViewportSize() float32 {
	halfFov := float64(mgl32.DegToRad(c.Fov)) / 2
	return 2 * c.ViewDistance() * float32(math.Tan(halfFov))
}

// SetView places the camera explicitly. up is re-orthogonalised against the
// view direction; the camera is left untouched on ErrDegenerateView.
func (c *Camera) SetView(eye, lookAt, up mgl32.Vec3) error {
	view := lookAt.Sub(eye)
	if view.Len() < degenerateEpsilon {
		return fmt.Errorf("%w: eye and look-at coincide at %v", ErrDegenerateView, eye)
	}
	orthoUp, ok := orthogonalUp(view, up)
	if !ok {
		return fmt.Errorf("%w: up %v is collinear with view direction %v", ErrDegenerateView, up, view)
	}
	c.Eye = eye
	c.LookAt = lookAt
	c.Up = orthoUp
	return nil
}

// SetSpherical places the eye on a sphere of the given radius around center,
// looking at center. phi is the azimuth in the XY plane and theta the
// elevation above it, both in radians:
//
//	eye = center + radius·(cosθcosφ, cosθsinφ, sinθ)
//
// Up is the direction of increasing theta, so it is never collinear with the
// view, including at the poles.
func (c *Camera) SetSpherical(phi, theta, radius float32, center mgl32.Vec3) error {
	if radius <= 0 {
		return fmt.Errorf("%w: radius %v must be positive", ErrDegenerateView, radius)
	}
	sinPhi, cosPhi := math.Sincos(float64(phi))
	sinTheta, cosTheta := math.Sincos(float64(theta))

	offset := mgl32.Vec3{
		float32(cosTheta * cosPhi),
		float32(cosTheta * sinPhi),
		float32(sinTheta),
	}
	c.Eye = center.Add(offset.Mul(radius))
	c.LookAt = center
	c.Up = mgl32.Vec3{
		float32(-sinTheta * cosPhi),
		float32(-sinTheta * sinPhi),
		float32(cosTheta),
	}
	return nil
}

func (c Camera) String() string {
	return fmt.Sprintf("eye=%v lookAt=%v up=%v fov=%.1f", c.Eye, c.LookAt, c.Up, c.Fov)
}

// orthogonalUp removes the view component from up and normalises the rest.
func orthogonalUp(view, up mgl32.Vec3) (mgl32.Vec3, bool) {
	v := view.Normalize()
	rest := up.Sub(v.Mul(up.Dot(v)))
	if rest.Len() < degenerateEpsilon {
		return mgl32.Vec3{}, false
	}
	return rest.Normalize(), true
}
