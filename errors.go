package tilegrid

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the sentinel wrapped by every *ConfigurationError.
var ErrConfiguration = errors.New("tilegrid: invalid configuration")

// ErrOutOfRange is the sentinel wrapped by every *OutOfRangeError.
var ErrOutOfRange = errors.New("tilegrid: tile index out of range")

// ConfigurationError reports a non-positive size handed to the viewport, the
// grid, or the config loader. It indicates a bug in the host application and
// is not recoverable where it is raised.
type ConfigurationError struct {
	Field         string
	Width, Height float64
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("tilegrid: invalid %s %gx%g: both dimensions must be positive",
		e.Field, e.Width, e.Height)
}

// Unwrap lets errors.Is match ErrConfiguration.
func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// OutOfRangeError reports a grid access outside [0,Width) x [0,Height).
// ResolveTile never produces such an index, so seeing one means a caller
// skipped resolution.
type OutOfRangeError struct {
	X, Y          int
	Width, Height int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("tilegrid: tile (%d,%d) outside %dx%d grid", e.X, e.Y, e.Width, e.Height)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

func configError(field string, w, h float64) error {
	return &ConfigurationError{Field: field, Width: w, Height: h}
}
