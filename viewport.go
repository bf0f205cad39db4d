package playercam

// Viewport is a rectangle in window coordinates, origin at the top-left.
type Viewport struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether the pointer at (x, y) lies within the viewport.
// The right and bottom edges are exclusive.
func (v Viewport) Contains(x, y float64) bool {
	return x >= v.X && x < v.X+v.Width && y >= v.Y && y < v.Y+v.Height
}

// Aspect returns width/height, or 1 for an empty viewport.
func (v Viewport) Aspect() float32 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return float32(v.Width / v.Height)
}

func (v Viewport) Resized(width, height int) Viewport {
	v.Width = float64(width)
	v.Height = float64(height)
	return v
}
