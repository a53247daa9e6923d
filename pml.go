package fdtd2d

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// BuildPMLProfile constructs the sigma_x/sigma_y conductivity maps for a
// PML band of the given width (cells) and polynomial order, enclosing the
// domain on all four sides. Grounded on the original implementation's
// PML.__post_init__ (pml.py): for a cell at distance d (in cells) into the
// band from its inner edge, sigma(d) = sigma_max * (d/width)^order, zero
// in the interior (spec.md §3).
func BuildPMLProfile(nx, ny, width int, order, sigmaMax float64) (sigmaX, sigmaY *mat.Dense, err error) {
	if width < 0 {
		return nil, nil, wrapf(ErrInvalidParameter, "pml width=%d must be non-negative", width)
	}
	if order <= 0 {
		return nil, nil, wrapf(ErrInvalidParameter, "pml order=%g must be positive", order)
	}
	if sigmaMax < 0 {
		return nil, nil, wrapf(ErrInvalidParameter, "pml sigma_max=%g must be non-negative", sigmaMax)
	}

	sigmaX = mat.NewDense(nx, ny, nil)
	sigmaY = mat.NewDense(nx, ny, nil)

	if width == 0 {
		return sigmaX, sigmaY, nil
	}

	for i := 0; i < nx; i++ {
		dx := pmlDistance(i, nx, width)
		for j := 0; j < ny; j++ {
			dy := pmlDistance(j, ny, width)
			sigmaX.Set(i, j, pmlSigma(dx, width, order, sigmaMax))
			sigmaY.Set(i, j, pmlSigma(dy, width, order, sigmaMax))
		}
	}
	return sigmaX, sigmaY, nil
}

// pmlDistance returns the distance (in cells) of index idx into the PML
// band from its inner edge, or -1 if idx lies in the interior, clamped to
// [0, width].
func pmlDistance(idx, n, width int) int {
	if idx < width {
		return width - idx
	}
	if idx >= n-width {
		return idx - (n - width - 1)
	}
	return -1
}

func pmlSigma(dist, width int, order, sigmaMax float64) float64 {
	if dist < 0 {
		return 0
	}
	if dist > width {
		dist = width
	}
	ratio := float64(dist) / float64(width)
	return sigmaMax * math.Pow(ratio, order)
}
