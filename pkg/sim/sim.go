// Package sim is a one-dimensional electrostatic particle-in-cell
// simulation of two counter-streaming electron beams over a neutralizing
// ion background with periodic boundaries.
//
// A time step deposits charge on the grid, solves Poisson's equation
// spectrally and advances the particles with a leapfrog scheme. Particle
// loops are split across goroutines.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

var ErrInvalidConfig = errors.New("sim: invalid config")

type Config struct {
	Length    float64
	Cells     int
	Particles int
	Mass      float64
	Charge    float64
	Eps0      float64
	DT        float64
	// BeamSpeed is the drift speed of each beam; odd particles move in the
	// positive direction.
	BeamSpeed float64
	// Spread is the standard deviation of the thermal velocity added to
	// every particle.
	Spread float64
	// Colors tag the positive and negative beam.
	Colors [2]uint32
	// Workers bounds the goroutines per particle loop; zero uses GOMAXPROCS.
	Workers int
}

func DefaultConfig() Config {
	return Config{
		Length:    16,
		Cells:     128,
		Particles: 100000,
		Mass:      0.005,
		Charge:    -0.01,
		Eps0:      1,
		DT:        0.0005,
		BeamSpeed: 8,
		Spread:    math.Sqrt(500 / 5.1e5),
		Colors:    [2]uint32{0xff0000, 0x0000ff},
	}
}

func (c Config) validate() error {
	switch {
	case !(c.Length > 0):
		return fmt.Errorf("%w: length %g", ErrInvalidConfig, c.Length)
	case c.Cells < 4 || c.Cells%2 != 0:
		return fmt.Errorf("%w: cells %d must be even and at least 4", ErrInvalidConfig, c.Cells)
	case c.Particles <= 0:
		return fmt.Errorf("%w: particles %d", ErrInvalidConfig, c.Particles)
	case c.Mass == 0 || c.Eps0 == 0:
		return fmt.Errorf("%w: mass and eps0 must be non-zero", ErrInvalidConfig)
	case !(c.DT > 0):
		return fmt.Errorf("%w: dt %g", ErrInvalidConfig, c.DT)
	}
	return nil
}

type Simulation struct {
	conf    Config
	dx      float64
	workers int
	steps   int

	// X and V are the particle positions and velocities, Colors the beam
	// tag of each particle. They are the point stream handed to a plot.
	X      []float64
	V      []float64
	Colors []uint32

	rho   []float64
	phi   []float64
	field []float64
	coeff []complex128
	fft   *fourier.FFT
}

// New spreads the particles evenly over the box and gives alternate
// particles opposite beam velocities plus a Gaussian spread drawn from a
// generator seeded with seed.
func New(conf Config, seed uint64) (*Simulation, error) {
	if err := conf.validate(); err != nil {
		return nil, err
	}
	workers := conf.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	n := conf.Particles
	s := &Simulation{
		conf:    conf,
		dx:      conf.Length / float64(conf.Cells),
		workers: workers,
		X:       make([]float64, n),
		V:       make([]float64, n),
		Colors:  make([]uint32, n),
		rho:     make([]float64, conf.Cells),
		phi:     make([]float64, conf.Cells),
		field:   make([]float64, conf.Cells),
		coeff:   make([]complex128, conf.Cells/2+1),
		fft:     fourier.NewFFT(conf.Cells),
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := range n {
		s.X[i] = float64(i) * conf.Length / float64(n)
		if i%2 == 1 {
			s.V[i] = conf.BeamSpeed
			s.Colors[i] = conf.Colors[0]
		} else {
			s.V[i] = -conf.BeamSpeed
			s.Colors[i] = conf.Colors[1]
		}
		s.V[i] += conf.Spread * rng.NormFloat64()
	}
	return s, nil
}

// Start solves the initial field and pushes velocities back half a step
// so they are staggered against positions.
func (s *Simulation) Start(ctx context.Context) error {
	if err := s.solve(ctx); err != nil {
		return err
	}
	return s.kick(ctx, -1)
}

// Synchronize solves the field at the current positions and brings the
// velocities forward half a step, level with the positions. The state is
// then consistent for plotting.
func (s *Simulation) Synchronize(ctx context.Context) error {
	if err := s.solve(ctx); err != nil {
		return err
	}
	return s.kick(ctx, 1)
}

// Advance finishes the step started by Synchronize: a second half kick
// and a drift with periodic wrap.
func (s *Simulation) Advance(ctx context.Context) error {
	if err := s.kick(ctx, 1); err != nil {
		return err
	}
	if err := s.drift(ctx); err != nil {
		return err
	}
	s.steps++
	return nil
}

func (s *Simulation) Steps() int {
	return s.steps
}

// Field is the electric field on the grid from the last solve. The slice
// is reused by the next solve.
func (s *Simulation) Field() []float64 {
	return s.field
}

func (s *Simulation) Density() []float64 {
	return s.rho
}

// NetCharge integrates the last deposited density over the box. The
// background keeps it at zero up to rounding.
func (s *Simulation) NetCharge() float64 {
	return floats.Sum(s.rho) * s.dx
}

func (s *Simulation) solve(ctx context.Context) error {
	if err := s.deposit(ctx); err != nil {
		return err
	}
	s.poisson()
	return nil
}

// parallel runs fn over contiguous particle ranges, one per worker.
func (s *Simulation) parallel(ctx context.Context, fn func(worker, lo, hi int)) error {
	g, ctx := errgroup.WithContext(ctx)
	n := len(s.X)
	chunk := (n + s.workers - 1) / s.workers
	for w := 0; w*chunk < n; w++ {
		lo, hi := w*chunk, min((w+1)*chunk, n)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(w, lo, hi)
			return nil
		})
	}
	return g.Wait()
}

// deposit assigns each particle's charge linearly to its two nearest grid
// points on top of the uniform background.
func (s *Simulation) deposit(ctx context.Context) error {
	cells := s.conf.Cells
	partial := make([][]float64, s.workers)
	err := s.parallel(ctx, func(worker, lo, hi int) {
		local := make([]float64, cells)
		w := s.conf.Charge / (s.dx * s.dx)
		for i := lo; i < hi; i++ {
			j := s.cell(s.X[i])
			xg := float64(j) * s.dx
			local[j] += w * (xg + s.dx - s.X[i])
			local[(j+1)%cells] += w * (s.X[i] - xg)
		}
		partial[worker] = local
	})
	if err != nil {
		return err
	}
	background := -float64(len(s.X)) * s.conf.Charge / s.conf.Length
	for j := range s.rho {
		s.rho[j] = background
	}
	for _, local := range partial {
		for j, q := range local {
			s.rho[j] += q
		}
	}
	return nil
}

// poisson solves -phi'' = rho/eps0 in Fourier space, dropping the mean
// and Nyquist modes, then differences phi to the field.
func (s *Simulation) poisson() {
	cells := s.conf.Cells
	for j, r := range s.rho {
		s.phi[j] = r / float64(cells)
	}
	s.fft.Coefficients(s.coeff, s.phi)
	s.coeff[0] = 0
	s.coeff[cells/2] = 0
	for j := 1; j < cells/2; j++ {
		k := 2 * math.Pi * float64(j) / s.conf.Length
		s.coeff[j] /= complex(k*k*s.conf.Eps0, 0)
	}
	s.fft.Sequence(s.phi, s.coeff)

	for j := range s.field {
		prev := s.phi[(j+cells-1)%cells]
		next := s.phi[(j+1)%cells]
		s.field[j] = (prev - next) / (2 * s.dx)
	}
}

// kick moves velocities half a step along the interpolated field; sign
// selects the direction.
func (s *Simulation) kick(ctx context.Context, sign float64) error {
	cells := s.conf.Cells
	factor := sign * s.conf.DT / 2 * s.conf.Charge / s.conf.Mass
	return s.parallel(ctx, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			j := s.cell(s.X[i])
			frac := s.X[i]/s.dx - float64(j)
			e1, e2 := s.field[j], s.field[(j+1)%cells]
			s.V[i] += factor * (e1 + (e2-e1)*frac)
		}
	})
}

func (s *Simulation) drift(ctx context.Context) error {
	return s.parallel(ctx, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			s.X[i] = wrap(s.X[i]+s.conf.DT*s.V[i], s.conf.Length)
		}
	})
}

func (s *Simulation) cell(x float64) int {
	j := int(x / s.dx)
	return max(0, min(j, s.conf.Cells-1))
}

// wrap maps x into [0, length).
func wrap(x, length float64) float64 {
	if x < 0 {
		x += length
	} else if x >= length {
		x -= length
	}
	if x < 0 || x >= length {
		x = math.Mod(x, length)
		if x < 0 {
			x += length
		}
		if x >= length {
			x = 0
		}
	}
	return x
}
