package fdtd2d

import "context"

// Engine is C6 in spec.md §2: the outer run loop that owns a Config,
// MeshSet, FieldSet, Stepper, and the Sources for a scenario, and drives
// NumSteps() iterations through a Recorder.
type Engine struct {
	Config  *Config
	Mesh    *MeshSet
	Fields  *FieldSet
	Sources []Source
	Stepper *Stepper
}

// NewEngine validates that mesh, fields, and cfg agree on grid shape and
// returns a ready-to-run Engine. workers and chunkSize size the Stepper's
// worker pool (see NewStepper).
func NewEngine(cfg *Config, mesh *MeshSet, fields *FieldSet, sources []Source, workers, chunkSize int) (*Engine, error) {
	if r, c := mesh.Epsilon.Dims(); r != cfg.Nx || c != cfg.Ny {
		return nil, wrapf(ErrShapeMismatch, "mesh has shape (%d,%d), config wants (%d,%d)", r, c, cfg.Nx, cfg.Ny)
	}
	if r, c := fields.Ez.Dims(); r != cfg.Nx || c != cfg.Ny {
		return nil, wrapf(ErrShapeMismatch, "fields have shape (%d,%d), config wants (%d,%d)", r, c, cfg.Nx, cfg.Ny)
	}

	return &Engine{
		Config:  cfg,
		Mesh:    mesh,
		Fields:  fields,
		Sources: sources,
		Stepper: NewStepper(cfg.Nx, cfg.Ny, workers, chunkSize),
	}, nil
}

// Close releases the engine's worker pool.
func (e *Engine) Close() { e.Stepper.Close() }

// Run drives the simulation for Config.NumSteps() iterations, recording
// through rec and checking field finiteness after every step (invariant
// I4). It rejects a recorder whose NumSteps() disagrees with the config's
// before running a single step (spec.md §7, scenario S6), and returns
// promptly with ctx.Err() if ctx is cancelled between steps — cancellation
// is checked between iterations, never mid-step.
func (e *Engine) Run(ctx context.Context, rec Recorder) error {
	if rec.NumSteps() != e.Config.NumSteps() {
		return wrapf(ErrShapeMismatch, "recorder has %d steps, config wants %d", rec.NumSteps(), e.Config.NumSteps())
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		last := e.Config.Iteration() == e.Config.NumSteps()-1
		if err := e.Stepper.Step(e.Config, e.Mesh, e.Fields, e.Sources, rec); err != nil {
			return err
		}
		if err := e.Fields.Finite(); err != nil {
			return err
		}
		if last {
			return nil
		}
	}
}
