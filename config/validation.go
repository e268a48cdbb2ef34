package config

import (
	"errors"
	"fmt"
)

var ErrInvalid = errors.New("invalid config")

// Validate reports every problem found, joined, each wrapping ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Input.CursorDistance <= 0 {
		invalid("cursor_distance must be positive, got %g", c.Input.CursorDistance)
	}
	if c.Input.CursorSegments < 3 {
		invalid("cursor_segments must be at least 3, got %d", c.Input.CursorSegments)
	}
	checkColor := func(name string, col [4]float32) {
		for _, v := range col {
			if v < 0 || v > 1 {
				invalid("%s components must be in [0, 1], got %v", name, col)
				return
			}
		}
	}
	checkColor("laser_color", c.Input.LaserColor)
	checkColor("cursor_color", c.Input.CursorColor)
	checkColor("sky_color", c.Scene.SkyColor)

	return errors.Join(errs...)
}
