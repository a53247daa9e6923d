package fdtd2d

import "gonum.org/v1/gonum/mat"

// Recorder captures Ez at the end of each step (Stepper Step H,
// spec.md §4.5). spec.md §9 sanctions subsampling and probe-only
// recording as contract-preserving extensions; Recorder lets Engine.Run
// stay agnostic to which strategy is in use.
type Recorder interface {
	// NumSteps is the number of iterations this recorder expects to be
	// called for; Engine.Run checks it against Config.NumSteps() before
	// running (spec.md §7 ShapeMismatch, scenario S6).
	NumSteps() int
	// Record stores the current Ez for the given iteration.
	Record(iteration int, ez *mat.Dense) error
}

// FullRecorder records the complete Ez grid at every step into an
// (N_steps, nx, ny) array, either allocated by NewFullRecorder or supplied
// by the caller through NewFullRecorderFrom; the default behaviour of
// spec.md §6.
type FullRecorder struct {
	Data   [][][]float64
	nx, ny int
}

// NewFullRecorder allocates a FullRecorder backed by a fresh
// (nSteps, nx, ny) array.
func NewFullRecorder(nSteps, nx, ny int) *FullRecorder {
	data := make([][][]float64, nSteps)
	for k := range data {
		rows := make([][]float64, nx)
		for i := range rows {
			rows[i] = make([]float64, ny)
		}
		data[k] = rows
	}
	return &FullRecorder{Data: data, nx: nx, ny: ny}
}

// NewFullRecorderFrom wraps a caller-provided (N_steps, nx, ny) array
// instead of allocating one, matching spec.md §6's "Ez_time is a
// caller-allocated 3-D array" contract. Its first dimension is validated
// against Config.NumSteps() by Engine.Run.
func NewFullRecorderFrom(data [][][]float64, nx, ny int) *FullRecorder {
	return &FullRecorder{Data: data, nx: nx, ny: ny}
}

func (r *FullRecorder) NumSteps() int { return len(r.Data) }

func (r *FullRecorder) Record(iteration int, ez *mat.Dense) error {
	if iteration < 0 || iteration >= len(r.Data) {
		return wrapf(ErrShapeMismatch, "recorder has %d steps, iteration %d out of range", len(r.Data), iteration)
	}
	rows, cols := ez.Dims()
	if rows != r.nx || cols != r.ny {
		return wrapf(ErrShapeMismatch, "Ez has shape (%d,%d), recorder wants (%d,%d)", rows, cols, r.nx, r.ny)
	}
	dst := r.Data[iteration]
	for i := 0; i < rows; i++ {
		copy(dst[i], ez.RawRowView(i))
	}
	return nil
}

// ProbeRecorder records Ez only at a small set of (i,j) probe cells,
// shape (N_steps, len(Probes)) — the engine-side analogue of the
// original's PointDetector (detector.py), minus its plotting methods
// which remain out of scope (spec.md §1).
type ProbeRecorder struct {
	Probes [][2]int
	Data   [][]float64
}

// NewProbeRecorder allocates a ProbeRecorder for nSteps iterations over
// the given probe cells.
func NewProbeRecorder(nSteps int, probes [][2]int) *ProbeRecorder {
	data := make([][]float64, nSteps)
	for k := range data {
		data[k] = make([]float64, len(probes))
	}
	return &ProbeRecorder{Probes: probes, Data: data}
}

func (r *ProbeRecorder) NumSteps() int { return len(r.Data) }

func (r *ProbeRecorder) Record(iteration int, ez *mat.Dense) error {
	if iteration < 0 || iteration >= len(r.Data) {
		return wrapf(ErrShapeMismatch, "recorder has %d steps, iteration %d out of range", len(r.Data), iteration)
	}
	rows, cols := ez.Dims()
	dst := r.Data[iteration]
	for k, p := range r.Probes {
		i, j := p[0], p[1]
		if i < 0 || i >= rows || j < 0 || j >= cols {
			return wrapf(ErrSourceOutOfBounds, "probe %d=(%d,%d) out of bounds (%d,%d)", k, i, j, rows, cols)
		}
		dst[k] = ez.At(i, j)
	}
	return nil
}
