package fdtd2d

import "gonum.org/v1/gonum/mat"

// Stepper is C5 in spec.md §2: one Yee time step (H-update, E-update, SHG
// nonlinearity, PML absorption, source injection, field recording, time
// advance — Steps A-I of spec.md §4.5). It is stateless between calls to
// Step other than its reusable gradient scratch buffers and worker pool
// (spec.md §9 "avoid per-step heap allocation for gradients").
type Stepper struct {
	pool      *WorkerPool
	chunkSize int

	// EnableKerr applies the source's (disabled-by-default) Kerr
	// correction Ez *= dt/(epsilon + n2*Ez^2) on the interior, between
	// Step E (SHG) and Step F (absorption). See spec.md §9 Open Question
	// 1: the formula is dimensionally suspect and commented out in the
	// reference, so it stays opt-in here too.
	EnableKerr bool

	dEzdx, dEzdy, dHydx, dHxdy *mat.Dense
}

// NewStepper allocates the gradient scratch buffers for an (nx, ny) grid
// and starts a worker pool of the given size. chunkSize bounds how many
// rows each parallel task covers; values below 1 default to 8.
func NewStepper(nx, ny, workers, chunkSize int) *Stepper {
	if chunkSize < 1 {
		chunkSize = 8
	}
	return &Stepper{
		pool:      NewWorkerPool(workers),
		chunkSize: chunkSize,
		dEzdx:     mat.NewDense(nx, ny, nil),
		dEzdy:     mat.NewDense(nx, ny, nil),
		dHydx:     mat.NewDense(nx, ny, nil),
		dHxdy:     mat.NewDense(nx, ny, nil),
	}
}

// Close releases the stepper's worker pool.
func (s *Stepper) Close() { s.pool.Close() }

// Step performs one full Yee iteration in the strict order spec.md §4.5 and
// §5 require: A (Ez gradients) -> B (H update + PML loss) -> C (H
// gradients) -> D (E update) -> E (SHG) -> [Kerr] -> F (absorption) ->
// G (source injection) -> H (record) -> I (time advance).
func (s *Stepper) Step(cfg *Config, mesh *MeshSet, fields *FieldSet, sources []Source, rec Recorder) error {
	nx, ny := cfg.Nx, cfg.Ny
	iter := cfg.Iteration()

	// Step A: Yee gradients of Ez.
	if err := s.parallelRows(0, nx-1, func(i int) {
		for j := 0; j < ny; j++ {
			s.dEzdx.Set(i, j, (fields.Ez.At(i+1, j)-fields.Ez.At(i, j))/cfg.Dx)
		}
	}); err != nil {
		return err
	}
	if err := s.parallelRows(0, nx, func(i int) {
		for j := 0; j < ny-1; j++ {
			s.dEzdy.Set(i, j, (fields.Ez.At(i, j+1)-fields.Ez.At(i, j))/cfg.Dy)
		}
	}); err != nil {
		return err
	}

	// Step B: H update with PML attenuation.
	dtOverMu := cfg.Dt / mesh.Mu
	if err := s.parallelRows(0, nx, func(i int) {
		for j := 0; j < ny-1; j++ {
			loss := 1 - mesh.SigmaY.At(i, j)*cfg.Dt/(2*mesh.Mu)
			fields.Hx.Set(i, j, fields.Hx.At(i, j)-dtOverMu*s.dEzdy.At(i, j)*loss)
		}
	}); err != nil {
		return err
	}
	if err := s.parallelRows(0, nx-1, func(i int) {
		for j := 0; j < ny; j++ {
			loss := 1 - mesh.SigmaX.At(i, j)*cfg.Dt/(2*mesh.Mu)
			fields.Hy.Set(i, j, fields.Hy.At(i, j)+dtOverMu*s.dEzdx.At(i, j)*loss)
		}
	}); err != nil {
		return err
	}

	// Step C: Yee gradients of H, strict interior only.
	if err := s.parallelRows(1, nx-1, func(i int) {
		for j := 1; j < ny-1; j++ {
			s.dHydx.Set(i, j, (fields.Hy.At(i, j)-fields.Hy.At(i-1, j))/cfg.Dx)
			s.dHxdy.Set(i, j, (fields.Hx.At(i, j)-fields.Hx.At(i, j-1))/cfg.Dy)
		}
	}); err != nil {
		return err
	}

	// Step D: Ez update, strict interior only.
	if err := s.parallelRows(1, nx-1, func(i int) {
		for j := 1; j < ny-1; j++ {
			fields.Ez.Set(i, j, fields.Ez.At(i, j)+(cfg.Dt/mesh.Epsilon.At(i, j))*(s.dHydx.At(i, j)-s.dHxdy.At(i, j)))
		}
	}); err != nil {
		return err
	}

	// Step E: SHG nonlinearity, full grid.
	if err := s.parallelRows(0, nx, func(i int) {
		for j := 0; j < ny; j++ {
			g := mesh.Gamma.At(i, j)
			if g == 0 {
				continue
			}
			ez := fields.Ez.At(i, j)
			fields.Ez.Set(i, j, ez+g*ez*ez*cfg.Dt)
		}
	}); err != nil {
		return err
	}

	if s.EnableKerr {
		if err := s.parallelRows(1, nx-1, func(i int) {
			for j := 1; j < ny-1; j++ {
				ez := fields.Ez.At(i, j)
				denom := mesh.Epsilon.At(i, j) + mesh.N2.At(i, j)*ez*ez
				fields.Ez.Set(i, j, ez*cfg.Dt/denom)
			}
		}); err != nil {
			return err
		}
	}

	// Step F: absorption, clamped to [0, 1].
	if err := s.parallelRows(0, nx, func(i int) {
		for j := 0; j < ny; j++ {
			eps := mesh.Epsilon.At(i, j)
			factor := 1 - (mesh.SigmaX.At(i, j)+mesh.SigmaY.At(i, j))*cfg.Dt/(2*eps)
			switch {
			case factor < 0:
				factor = 0
			case factor > 1:
				factor = 1
			}
			fields.Ez.Set(i, j, fields.Ez.At(i, j)*factor)
		}
	}); err != nil {
		return err
	}

	// Step G: source injection, in the order the sources were added;
	// contributions are additive and commute (spec.md §5).
	for _, src := range sources {
		if err := src.Inject(cfg, fields); err != nil {
			return err
		}
	}

	// Step H: record the post-injection Ez for this iteration.
	if err := rec.Record(iter, fields.Ez); err != nil {
		return err
	}

	// Step I: advance the clock, unless this was the last step.
	if iter < cfg.NumSteps()-1 {
		if err := cfg.Advance(); err != nil {
			return err
		}
	}

	return nil
}

// parallelRows partitions [start, end) into row chunks and runs fn over
// each row concurrently on the stepper's worker pool.
func (s *Stepper) parallelRows(start, end int, fn func(i int)) error {
	if end <= start {
		return nil
	}
	chunks := chunkRows(end-start, s.chunkSize)
	fns := make([]func() error, len(chunks))
	for k, ch := range chunks {
		lo, hi := start+ch[0], start+ch[1]
		fns[k] = func() error {
			for i := lo; i < hi; i++ {
				fn(i)
			}
			return nil
		}
	}
	return s.pool.Run(fns)
}
