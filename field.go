package fdtd2d

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// FieldSet holds the working state of a run: the three Yee-staggered field
// arrays Ez, Hx, Hy, all shape (nx, ny) with the outermost padding row/
// column of Hx, Hy left at zero (spec.md §3). It corresponds to C3 in
// spec.md §2.
type FieldSet struct {
	Ez, Hx, Hy *mat.Dense
	nx, ny     int
}

// NewFieldSet allocates a zero-initialised FieldSet for an (nx, ny) grid.
func NewFieldSet(nx, ny int) *FieldSet {
	return &FieldSet{
		Ez: mat.NewDense(nx, ny, nil),
		Hx: mat.NewDense(nx, ny, nil),
		Hy: mat.NewDense(nx, ny, nil),
		nx: nx, ny: ny,
	}
}

// Zero resets Ez, Hx, Hy to 0.
func (f *FieldSet) Zero() {
	f.Ez.Zero()
	f.Hx.Zero()
	f.Hy.Zero()
}

// Finite reports ErrNumericalInstability, with the offending array and
// cell, if any of Ez, Hx, Hy holds a non-finite value (invariant I4).
//
// Each row is screened with floats.HasNaN and an infinity-norm check
// (floats.Norm(row, math.Inf(1)), the row's max absolute value) before
// falling back to an element-by-element scan to name the offending cell;
// on a healthy run every row clears the screen and the scan never runs.
func (f *FieldSet) Finite() error {
	for name, m := range map[string]*mat.Dense{"Ez": f.Ez, "Hx": f.Hx, "Hy": f.Hy} {
		for i := 0; i < f.nx; i++ {
			row := m.RawRowView(i)
			if !floats.HasNaN(row) && !math.IsInf(floats.Norm(row, math.Inf(1)), 0) {
				continue
			}
			for j, v := range row {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return wrapf(ErrNumericalInstability, "%s(%d,%d)=%v is non-finite", name, i, j, v)
				}
			}
		}
	}
	return nil
}
