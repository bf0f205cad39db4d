package playercam

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Bindings struct {
	Forward  Key `yaml:"forward"`
	Backward Key `yaml:"backward"`
	Left     Key `yaml:"left"`
	Right    Key `yaml:"right"`
	// Rotate is the mouse button that drags the view.
	Rotate Key `yaml:"rotate"`
}

// Direction maps a bound key to its translation direction.
func (b Bindings) Direction(k Key) Direction {
	switch k {
	case b.Forward:
		return DirForward
	case b.Backward:
		return DirBackward
	case b.Left:
		return DirLeft
	case b.Right:
		return DirRight
	}
	return DirNone
}

type Config struct {
	Bindings Bindings `yaml:"bindings"`

	// MoveSpeed is in viewports per second.
	MoveSpeed float32 `yaml:"move_speed"`
	// RotateSpeed is in radians per inch of mouse drag.
	RotateSpeed float32       `yaml:"rotate_speed"`
	TickDelay   time.Duration `yaml:"tick_delay"`
	DPI         float32       `yaml:"dpi"`

	Fov  float32 `yaml:"fov"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

func DefaultConfig() Config {
	return Config{
		Bindings: Bindings{
			Forward:  KeyW,
			Backward: KeyS,
			Left:     KeyA,
			Right:    KeyD,
			Rotate:   MouseButtonLeft,
		},
		MoveSpeed:   0.5,
		RotateSpeed: 1.0,
		TickDelay:   16 * time.Millisecond,
		DPI:         96,
		Fov:         45,
		Near:        0.01,
		Far:         100,
	}
}

func (cfg Config) Validate() error {
	var errs []error
	b := cfg.Bindings
	seen := make(map[Key]string)
	for _, bind := range []struct {
		name string
		key  Key
	}{
		{"forward", b.Forward},
		{"backward", b.Backward},
		{"left", b.Left},
		{"right", b.Right},
	} {
		switch {
		case bind.key == KeyUnknown:
			errs = append(errs, fmt.Errorf("binding %s is not set", bind.name))
		case bind.key.IsMouseButton():
			errs = append(errs, fmt.Errorf("binding %s must be a keyboard key, got %s", bind.name, bind.key))
		default:
			if other, dup := seen[bind.key]; dup {
				errs = append(errs, fmt.Errorf("bindings %s and %s both use %s", other, bind.name, bind.key))
			}
			seen[bind.key] = bind.name
		}
	}
	if !b.Rotate.IsMouseButton() {
		errs = append(errs, fmt.Errorf("binding rotate must be a mouse button, got %s", b.Rotate))
	}

	if cfg.MoveSpeed < 0 {
		errs = append(errs, fmt.Errorf("move_speed %v is negative", cfg.MoveSpeed))
	}
	if cfg.RotateSpeed < 0 {
		errs = append(errs, fmt.Errorf("rotate_speed %v is negative", cfg.RotateSpeed))
	}
	if cfg.TickDelay <= 0 {
		errs = append(errs, fmt.Errorf("tick_delay %v must be positive", cfg.TickDelay))
	}
	if cfg.DPI <= 0 {
		errs = append(errs, fmt.Errorf("dpi %v must be positive", cfg.DPI))
	}
	if cfg.Fov <= 0 || cfg.Fov >= 180 {
		errs = append(errs, fmt.Errorf("fov %v must be within (0, 180)", cfg.Fov))
	}
	if cfg.Near <= 0 || cfg.Far <= cfg.Near {
		errs = append(errs, fmt.Errorf("clip planes near=%v far=%v must satisfy 0 < near < far", cfg.Near, cfg.Far))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// ParseConfig decodes YAML over the defaults, so omitted fields keep their
// default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (cfg Config) Marshal() ([]byte, error) {
	return yaml.Marshal(cfg)
}
