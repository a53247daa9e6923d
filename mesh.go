package fdtd2d

import "gonum.org/v1/gonum/mat"

// MeshSet holds the material maps on the Ez grid: absolute
// permittivity (F/m), the Kerr and SHG nonlinear coefficients, the PML
// conductivity components, and the scalar permeability. It corresponds to
// C2 in spec.md §2. All 2-D arrays are *mat.Dense of shape (nx, ny);
// construction validates shapes and invariants I1-I2 and is immutable
// thereafter (spec.md §4.2).
type MeshSet struct {
	Epsilon *mat.Dense
	N2      *mat.Dense
	Gamma   *mat.Dense
	SigmaX  *mat.Dense
	SigmaY  *mat.Dense
	Mu      float64
}

// NewMeshSet validates the material arrays against cfg and the stability
// requirements of spec.md §3-4.5 before returning a usable MeshSet:
//
//   - shapes all equal (cfg.Nx, cfg.Ny)                         (I3)
//   - epsilon > 0 everywhere                                    (I1)
//   - sigmaX, sigmaY >= 0 everywhere                             (I2)
//   - mu > 0
//   - dt respects the CFL bound for the background speed 1/sqrt(mu*epsilon0)
//   - sigma_max*dt/(2*mu) <= 1, so the PML loss factor in Step B never
//     goes negative (spec.md §4.5 Step B)
func NewMeshSet(cfg *Config, epsilon, n2, gamma, sigmaX, sigmaY *mat.Dense, mu float64) (*MeshSet, error) {
	if mu <= 0 {
		return nil, wrapf(ErrInvalidParameter, "mu=%g must be positive", mu)
	}

	for name, m := range map[string]*mat.Dense{
		"epsilon": epsilon, "n2": n2, "gamma": gamma, "sigma_x": sigmaX, "sigma_y": sigmaY,
	} {
		r, c := m.Dims()
		if r != cfg.Nx || c != cfg.Ny {
			return nil, wrapf(ErrShapeMismatch, "%s has shape (%d,%d), want (%d,%d)", name, r, c, cfg.Nx, cfg.Ny)
		}
	}

	sigmaMax := 0.0
	for i := 0; i < cfg.Nx; i++ {
		for j := 0; j < cfg.Ny; j++ {
			if e := epsilon.At(i, j); e <= 0 {
				return nil, wrapf(ErrInvalidParameter, "epsilon(%d,%d)=%g must be positive", i, j, e)
			}
			sx, sy := sigmaX.At(i, j), sigmaY.At(i, j)
			if sx < 0 || sy < 0 {
				return nil, wrapf(ErrInvalidParameter, "sigma(%d,%d)=(%g,%g) must be non-negative", i, j, sx, sy)
			}
			if sx > sigmaMax {
				sigmaMax = sx
			}
			if sy > sigmaMax {
				sigmaMax = sy
			}
		}
	}

	if maxDt := MaxStableDt(cfg.Dx, cfg.Dy, VacuumPermittivity, mu); cfg.Dt > maxDt {
		return nil, wrapf(ErrInvalidParameter, "dt=%g violates CFL bound %g", cfg.Dt, maxDt)
	}

	if loss := sigmaMax * cfg.Dt / (2 * mu); loss > 1 {
		return nil, wrapf(ErrInvalidParameter, "sigma_max*dt/(2*mu)=%g exceeds 1", loss)
	}

	return &MeshSet{
		Epsilon: epsilon, N2: n2, Gamma: gamma,
		SigmaX: sigmaX, SigmaY: sigmaY, Mu: mu,
	}, nil
}
