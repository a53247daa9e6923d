package fdtd2d

import "math"

// Source is C4 in spec.md §2: a polymorphic injector with a single
// capability, adding a scalar contribution to Ez at the current simulated
// time. Implementations must be additive (soft sources) and commutative
// with other sources, per spec.md §4.4 and §5.
type Source interface {
	Inject(cfg *Config, fields *FieldSet) error
}

func checkIndices(indices [][2]int, nx, ny int) error {
	for k, idx := range indices {
		i, j := idx[0], idx[1]
		if i < 0 || i >= nx || j < 0 || j >= ny {
			return wrapf(ErrSourceOutOfBounds, "index %d=(%d,%d) outside [0,%d)x[0,%d)", k, i, j, nx, ny)
		}
	}
	return nil
}

// MultiWavelengthSource injects a sum of continuous cosine tones at a set
// of cells: Ez(x,y) += sum_k A[k]*cos(omega[k]*t + phi[k]). Grounded on the
// original's MultiWavelength::add_to_field (cpp/source/source.cpp).
type MultiWavelengthSource struct {
	Omega     []float64
	Amplitude []float64
	Phase     []float64
	Indices   [][2]int
}

// NewMultiWavelengthSource validates that omega, amplitude, and phase
// share a length and that every index lies within [0,nx)x[0,ny).
func NewMultiWavelengthSource(omega, amplitude, phase []float64, indices [][2]int, nx, ny int) (*MultiWavelengthSource, error) {
	if len(omega) != len(amplitude) || len(omega) != len(phase) {
		return nil, wrapf(ErrInvalidParameter, "omega/amplitude/phase lengths differ: %d/%d/%d", len(omega), len(amplitude), len(phase))
	}
	if err := checkIndices(indices, nx, ny); err != nil {
		return nil, err
	}
	return &MultiWavelengthSource{Omega: omega, Amplitude: amplitude, Phase: phase, Indices: indices}, nil
}

func (s *MultiWavelengthSource) Inject(cfg *Config, fields *FieldSet) error {
	t := cfg.Time()
	for _, idx := range s.Indices {
		i, j := idx[0], idx[1]
		sum := 0.0
		for k := range s.Omega {
			sum += s.Amplitude[k] * math.Cos(s.Omega[k]*t+s.Phase[k])
		}
		fields.Ez.Set(i, j, fields.Ez.At(i, j)+sum)
	}
	return nil
}

// ImpulsionSource injects a single Gaussian-in-time pulse:
// Ez(x,y) += A * exp(-((t-t0)/tau)^2). Grounded on the original's
// Impulsion::add_to_field (cpp/source/source.cpp).
type ImpulsionSource struct {
	Amplitude float64
	Tau       float64
	T0        float64
	Indices   [][2]int
}

// NewImpulsionSource validates tau > 0 and that every index lies within
// [0,nx)x[0,ny).
func NewImpulsionSource(amplitude, tau, t0 float64, indices [][2]int, nx, ny int) (*ImpulsionSource, error) {
	if tau <= 0 {
		return nil, wrapf(ErrInvalidParameter, "tau=%g must be positive", tau)
	}
	if err := checkIndices(indices, nx, ny); err != nil {
		return nil, err
	}
	return &ImpulsionSource{Amplitude: amplitude, Tau: tau, T0: t0, Indices: indices}, nil
}

func (s *ImpulsionSource) Inject(cfg *Config, fields *FieldSet) error {
	t := cfg.Time()
	factor := (t - s.T0) / s.Tau
	contribution := s.Amplitude * math.Exp(-(factor * factor))
	for _, idx := range s.Indices {
		i, j := idx[0], idx[1]
		fields.Ez.Set(i, j, fields.Ez.At(i, j)+contribution)
	}
	return nil
}
