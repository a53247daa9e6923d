package fdtd2d

// Config holds the immutable grid/time parameters of a run (dx, dy, dt, nx,
// ny, time_stamps) plus the mutable step counter and current simulated
// time. It corresponds to C1 in spec.md §2.
type Config struct {
	Dx, Dy, Dt float64
	Nx, Ny     int
	TimeStamps []float64

	iteration int
	time      float64
}

// NewConfig validates and constructs a Config. time_stamps must be
// non-empty and strictly increasing (InvalidParameter otherwise).
func NewConfig(dx, dy, dt float64, nx, ny int, timeStamps []float64) (*Config, error) {
	if dx <= 0 || dy <= 0 || dt <= 0 {
		return nil, wrapf(ErrInvalidParameter, "dx=%g dy=%g dt=%g must be positive", dx, dy, dt)
	}
	if nx <= 0 || ny <= 0 {
		return nil, wrapf(ErrInvalidParameter, "nx=%d ny=%d must be positive", nx, ny)
	}
	if len(timeStamps) == 0 {
		return nil, wrapf(ErrInvalidParameter, "time_stamps must be non-empty")
	}
	for k := 1; k < len(timeStamps); k++ {
		if timeStamps[k] <= timeStamps[k-1] {
			return nil, wrapf(ErrInvalidParameter, "time_stamps must be strictly increasing (index %d)", k)
		}
	}

	return &Config{
		Dx: dx, Dy: dy, Dt: dt,
		Nx: nx, Ny: ny,
		TimeStamps: timeStamps,
		iteration:  0,
		time:       timeStamps[0],
	}, nil
}

// NumSteps returns the length of time_stamps, N_steps.
func (c *Config) NumSteps() int { return len(c.TimeStamps) }

// Iteration returns the current step counter.
func (c *Config) Iteration() int { return c.iteration }

// Time returns the current simulated time.
func (c *Config) Time() float64 { return c.time }

// Advance increments the iteration counter and, if a next time stamp
// exists, sets time to it. Advancing past the last index is a fatal
// programmer error per spec.md §4.1.
func (c *Config) Advance() error {
	if c.iteration >= len(c.TimeStamps)-1 {
		return wrapf(ErrInvalidParameter, "advance past last iteration %d", c.iteration)
	}
	c.iteration++
	c.time = c.TimeStamps[c.iteration]
	return nil
}
