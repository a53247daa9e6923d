package fdtd2d

import (
	"errors"
	"fmt"
)

// Error kinds recognised by the engine (spec §7). Callers branch on these
// with errors.Is; call sites wrap them with %w to attach offending
// cell/step context. Adapted from the sentinel-error convention in
// lvlath's builder package, at the teacher's lower comment density.

// ErrShapeMismatch: a material or recording array disagrees with (nx, ny)
// or (N_steps, nx, ny).
var ErrShapeMismatch = errors.New("fdtd2d: shape mismatch")

// ErrInvalidParameter: epsilon <= 0 somewhere, sigma < 0, empty or
// non-increasing time_stamps, dt violating CFL, or sigma_max*dt/(2*mu) > 1.
var ErrInvalidParameter = errors.New("fdtd2d: invalid parameter")

// ErrSourceOutOfBounds: a source injection index lies outside [0,nx)x[0,ny).
var ErrSourceOutOfBounds = errors.New("fdtd2d: source index out of bounds")

// ErrNumericalInstability: a non-finite value was detected in Ez, Hx, or Hy
// after a step.
var ErrNumericalInstability = errors.New("fdtd2d: numerical instability")

func wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}
