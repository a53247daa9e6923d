package fdtd2d

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func uniformMesh(t *testing.T, cfg *Config, eps float64) *MeshSet {
	t.Helper()
	epsilon := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	n2 := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	gamma := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	sigmaX := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	sigmaY := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	for i := 0; i < cfg.Nx; i++ {
		for j := 0; j < cfg.Ny; j++ {
			epsilon.Set(i, j, eps)
		}
	}
	mesh, err := NewMeshSet(cfg, epsilon, n2, gamma, sigmaX, sigmaY, VacuumPermeability)
	require.NoError(t, err)
	return mesh
}

func smallConfig(t *testing.T) *Config {
	t.Helper()
	dx, dy := 1e-7, 1e-7
	dt := 0.9 * MaxStableDt(dx, dy, VacuumPermittivity, VacuumPermeability)
	cfg, err := NewConfig(dx, dy, dt, 11, 11, NewUniformTimeStamps(dt, 10))
	require.NoError(t, err)
	return cfg
}

func TestNewMeshSet_Valid(t *testing.T) {
	cfg := smallConfig(t)
	mesh := uniformMesh(t, cfg, VacuumPermittivity)
	require.Equal(t, VacuumPermeability, mesh.Mu)
}

func TestNewMeshSet_RejectsShapeMismatch(t *testing.T) {
	cfg := smallConfig(t)
	epsilon := mat.NewDense(cfg.Nx-1, cfg.Ny, nil)
	n2 := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	gamma := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	sigmaX := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	sigmaY := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	_, err := NewMeshSet(cfg, epsilon, n2, gamma, sigmaX, sigmaY, VacuumPermeability)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestNewMeshSet_RejectsNonPositiveEpsilon(t *testing.T) {
	cfg := smallConfig(t)
	epsilon := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	n2 := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	gamma := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	sigmaX := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	sigmaY := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	epsilon.Set(5, 5, -1)
	_, err := NewMeshSet(cfg, epsilon, n2, gamma, sigmaX, sigmaY, VacuumPermeability)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestNewMeshSet_RejectsNegativeSigma(t *testing.T) {
	cfg := smallConfig(t)
	epsilon := uniformMesh(t, cfg, VacuumPermittivity).Epsilon
	n2 := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	gamma := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	sigmaX := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	sigmaY := mat.NewDense(cfg.Nx, cfg.Ny, nil)
	sigmaX.Set(0, 0, -1)
	_, err := NewMeshSet(cfg, epsilon, n2, gamma, sigmaX, sigmaY, VacuumPermeability)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestNewMeshSet_RejectsCFLViolation(t *testing.T) {
	dx, dy := 1e-7, 1e-7
	maxDt := MaxStableDt(dx, dy, VacuumPermittivity, VacuumPermeability)
	dt := maxDt * 1.5
	cfg, err := NewConfig(dx, dy, dt, 11, 11, NewUniformTimeStamps(dt, 10))
	require.NoError(t, err)

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
	_, err = NewMeshSet(cfg, epsilon, n2, gamma, sigmaX, sigmaY, VacuumPermeability)
	require.ErrorIs(t, err, ErrInvalidParameter)
}
