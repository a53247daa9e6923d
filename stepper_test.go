package fdtd2d

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func vacuumMesh(t *testing.T, cfg *Config) *MeshSet {
	t.Helper()
	epsilon := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	n2 := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	gamma := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	sigmaX := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	sigmaY := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	for i := 0; i < cfg.Nx; i++ {
		for j := 0; j < cfg.Ny; j++ {
			epsilon.Set(i, j, VacuumPermittivity)
		}
	}
	mesh, err := NewMeshSet(cfg, epsilon, n2, gamma, sigmaX, sigmaY, VacuumPermeability)
	require.NoError(t, err)
	return mesh
}

func TestStepper_QuiescentVacuumStaysZero(t *testing.T) {
	cfg := smallConfig(t)
	mesh := vacuumMesh(t, cfg)
	fields := NewFieldSet(cfg.Nx, cfg.Ny)
	rec := NewFullRecorder(cfg.NumSteps(), cfg.Nx, cfg.Ny)

	stepper := NewStepper(cfg.Nx, cfg.Ny, 2, 4)
	defer stepper.Close()

	require.NoError(t, stepper.Step(cfg, mesh, fields, nil, rec))
	require.NoError(t, fields.Finite())
	require.Equal(t, 0.0, fields.Ez.At(5, 5))
	require.Equal(t, 0.0, fields.Hx.At(5, 5))
	require.Equal(t, 0.0, fields.Hy.At(5, 5))
}

func TestStepper_InjectsSourceOnFirstStep(t *testing.T) {
	cfg := smallConfig(t)
	mesh := vacuumMesh(t, cfg)
	fields := NewFieldSet(cfg.Nx, cfg.Ny)
	rec := NewFullRecorder(cfg.NumSteps(), cfg.Nx, cfg.Ny)

	src, err := NewImpulsionSource(1, cfg.Dt*5, 0, [][2]int{{5, 5}}, cfg.Nx, cfg.Ny)
	require.NoError(t, err)

	stepper := NewStepper(cfg.Nx, cfg.Ny, 2, 4)
	defer stepper.Close()

	require.NoError(t, stepper.Step(cfg, mesh, fields, []Source{src}, rec))
	// H fields start at zero, so the curl contribution to the interior Ez
	// update on the very first step is zero; the only contribution at the
	// source cell is the injected pulse itself.
	require.Greater(t, fields.Ez.At(5, 5), 0.0)
}

func TestStepper_RecordsPostInjectionEz(t *testing.T) {
	cfg := smallConfig(t)
	mesh := vacuumMesh(t, cfg)
	fields := NewFieldSet(cfg.Nx, cfg.Ny)
	rec := NewFullRecorder(cfg.NumSteps(), cfg.Nx, cfg.Ny)

	src, err := NewImpulsionSource(1, cfg.Dt*5, 0, [][2]int{{5, 5}}, cfg.Nx, cfg.Ny)
	require.NoError(t, err)

	stepper := NewStepper(cfg.Nx, cfg.Ny, 2, 4)
	defer stepper.Close()

	require.NoError(t, stepper.Step(cfg, mesh, fields, []Source{src}, rec))

	rows, cols := fields.Ez.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			require.InDelta(t, fields.Ez.At(i, j), rec.Data[0][i][j], 1e-15)
		}
	}
}

func TestStepper_AdvancesClockExceptOnLastStep(t *testing.T) {
	dt := 0.9 * MaxStableDt(1e-7, 1e-7, VacuumPermittivity, VacuumPermeability)
	ts := NewUniformTimeStamps(dt, 3)
	cfg, err := NewConfig(1e-7, 1e-7, dt, 11, 11, ts)
	require.NoError(t, err)
	mesh := vacuumMesh(t, cfg)
	fields := NewFieldSet(cfg.Nx, cfg.Ny)
	rec := NewFullRecorder(cfg.NumSteps(), cfg.Nx, cfg.Ny)

	stepper := NewStepper(cfg.Nx, cfg.Ny, 1, 4)
	defer stepper.Close()

	require.NoError(t, stepper.Step(cfg, mesh, fields, nil, rec))
	require.Equal(t, 1, cfg.Iteration())
	require.NoError(t, stepper.Step(cfg, mesh, fields, nil, rec))
	require.Equal(t, 2, cfg.Iteration())

	// Iteration() is now the last valid index; Step must not try to
	// advance past it.
	require.NoError(t, stepper.Step(cfg, mesh, fields, nil, rec))
	require.Equal(t, cfg.NumSteps()-1, cfg.Iteration())
}

func TestStepper_SHGNoopWhenGammaZero(t *testing.T) {
	cfg := smallConfig(t)
	mesh := vacuumMesh(t, cfg)
	fields := NewFieldSet(cfg.Nx, cfg.Ny)
	fields.Ez.Set(5, 5, 0.3)
	rec := NewFullRecorder(cfg.NumSteps(), cfg.Nx, cfg.Ny)

	stepper := NewStepper(cfg.Nx, cfg.Ny, 1, 4)
	defer stepper.Close()

	require.NoError(t, stepper.Step(cfg, mesh, fields, nil, rec))
	// With gamma=0 and no PML loss, Step E is a no-op and Step F's
	// absorption factor is exactly 1, so the only change to Ez(5,5) comes
	// from the curl term, which is unaffected by SHG/Kerr machinery.
	require.NoError(t, fields.Finite())
	want := 0.3 + (cfg.Dt/mesh.Epsilon.At(5, 5))*(stepper.dHydx.At(5, 5)-stepper.dHxdy.At(5, 5))
	require.InDelta(t, want, fields.Ez.At(5, 5), 1e-15)
}
