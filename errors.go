package playercam

import "errors"

var (
	// ErrDegenerateView is returned when a placement would make the eye and
	// look-at coincide or the up vector collinear with the view direction.
	ErrDegenerateView = errors.New("degenerate view")
	ErrUnknownKey     = errors.New("unknown key")
	ErrInvalidConfig  = errors.New("invalid config")
)
