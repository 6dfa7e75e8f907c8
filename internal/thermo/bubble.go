package thermo

import (
	"math"

	"github.com/aretw0/vapor/pkg/domain"
)

// Config holds the bracketing and convergence settings of the bubble-point solver.
type Config struct {
	// PressureTolerance is the absolute |f(T)| threshold in bar.
	PressureTolerance float64 `yaml:"pressure_tolerance" json:"pressure_tolerance"`
	// TemperatureTolerance is the relative bracket-width threshold.
	TemperatureTolerance float64 `yaml:"temperature_tolerance" json:"temperature_tolerance"`
	// MaxIterations bounds the root-finding loop (bracketing not included).
	MaxIterations int `yaml:"max_iterations" json:"max_iterations"`
	// BracketStep is the initial widening step in K; it doubles on every expansion.
	BracketStep float64 `yaml:"bracket_step" json:"bracket_step"`
	// MaxBracketExpansions bounds the widening loop.
	MaxBracketExpansions int `yaml:"max_bracket_expansions" json:"max_bracket_expansions"`
	// MinTemperature and MaxTemperature bound the search in K.
	MinTemperature float64 `yaml:"min_temperature" json:"min_temperature"`
	MaxTemperature float64 `yaml:"max_temperature" json:"max_temperature"`
}

// DefaultConfig returns conservative solver settings.
func DefaultConfig() Config {
	return Config{
		PressureTolerance:    1e-7,
		TemperatureTolerance: 1e-10,
		MaxIterations:        200,
		BracketStep:          5,
		MaxBracketExpansions: 60,
		MinTemperature:       100,
		MaxTemperature:       2500,
	}
}

// System bundles what the solver needs for one binary mixture.
// Params must be oriented with Species1 as component 1.
type System struct {
	Species1 *domain.Species
	Species2 *domain.Species
	Params   domain.NRTLParams
}

// Solver finds bubble-point temperatures. It is stateless and safe for concurrent use.
type Solver struct {
	cfg Config
}

// NewSolver creates a solver. Zero-valued settings fall back to DefaultConfig.
func NewSolver(cfg Config) *Solver {
	def := DefaultConfig()
	if cfg.PressureTolerance <= 0 {
		cfg.PressureTolerance = def.PressureTolerance
	}
	if cfg.TemperatureTolerance <= 0 {
		cfg.TemperatureTolerance = def.TemperatureTolerance
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = def.MaxIterations
	}
	if cfg.BracketStep <= 0 {
		cfg.BracketStep = def.BracketStep
	}
	if cfg.MaxBracketExpansions <= 0 {
		cfg.MaxBracketExpansions = def.MaxBracketExpansions
	}
	if cfg.MinTemperature <= 0 {
		cfg.MinTemperature = def.MinTemperature
	}
	if cfg.MaxTemperature <= cfg.MinTemperature {
		cfg.MaxTemperature = math.Max(def.MaxTemperature, cfg.MinTemperature+def.MaxTemperature)
	}
	return &Solver{cfg: cfg}
}

// Config returns the effective settings.
func (s *Solver) Config() Config {
	return s.cfg
}

// Residual evaluates f(T) = x1*gamma1*P1sat + x2*gamma2*P2sat - P in bar.
func Residual(x1, t, pressure float64, sys System) float64 {
	g1, g2 := Gamma(x1, t, sys.Params)
	return x1*g1*sys.Species1.VaporPressure(t) + (1-x1)*g2*sys.Species2.VaporPressure(t) - pressure
}

// Solve returns the bubble point of liquid composition x1 at pressure (bar).
//
// The endpoints x1=0 and x1=1 bypass the iteration and return the pure-component
// boiling point with y1=x1. A point whose iteration bound is reached is returned
// with StatusUnconverged and the best temperature found.
func (s *Solver) Solve(x1, pressure float64, sys System) domain.EquilibriumPoint {
	x1 = clamp01(x1)

	if x1 == 0 || x1 == 1 {
		return s.pure(x1, pressure, sys)
	}

	f := func(t float64) float64 {
		return Residual(x1, t, pressure, sys)
	}

	seed := x1*sys.Species1.BoilingPoint(pressure) + (1-x1)*sys.Species2.BoilingPoint(pressure)
	seed = math.Min(math.Max(seed, s.cfg.MinTemperature), s.cfg.MaxTemperature)

	t, iterations, converged := s.root(f, seed)
	return s.point(x1, t, pressure, sys, iterations, converged)
}

func (s *Solver) pure(x1, pressure float64, sys System) domain.EquilibriumPoint {
	var t float64
	if x1 == 1 {
		t = sys.Species1.BoilingPoint(pressure)
	} else {
		t = sys.Species2.BoilingPoint(pressure)
	}
	g1, g2 := Gamma(x1, t, sys.Params)
	return domain.EquilibriumPoint{
		X1:          x1,
		Y1:          x1,
		Temperature: t,
		Status:      domain.StatusPure,
		Gamma1:      g1,
		Gamma2:      g2,
	}
}

func (s *Solver) point(x1, t, pressure float64, sys System, iterations int, converged bool) domain.EquilibriumPoint {
	g1, g2 := Gamma(x1, t, sys.Params)
	y1 := x1 * g1 * sys.Species1.VaporPressure(t) / pressure
	y2 := (1 - x1) * g2 * sys.Species2.VaporPressure(t) / pressure

	// Renormalize to absorb rounding drift and any residual in f(T).
	if sum := y1 + y2; sum > 0 && !math.IsInf(sum, 0) {
		y1 /= sum
	} else {
		y1 = x1
	}
	y1 = clamp01(y1)

	status := domain.StatusConverged
	if !converged {
		status = domain.StatusUnconverged
	}

	return domain.EquilibriumPoint{
		X1:          x1,
		Y1:          y1,
		Temperature: t,
		Status:      status,
		Iterations:  iterations,
		Residual:    math.Abs(Residual(x1, t, pressure, sys)),
		Gamma1:      g1,
		Gamma2:      g2,
	}
}

// root brackets a sign change of f around seed and refines it with the Illinois
// variant of regula falsi, falling back to bisection when the secant step leaves
// the bracket. It returns the best temperature seen when it cannot converge.
func (s *Solver) root(f func(float64) float64, seed float64) (float64, int, bool) {
	fs := f(seed)
	best, bestF := seed, math.Abs(fs)
	if bestF < s.cfg.PressureTolerance {
		return seed, 0, true
	}

	track := func(t, ft float64) {
		if a := math.Abs(ft); a < bestF {
			best, bestF = t, a
		}
	}

	// f grows with T for any physical mixture, so a positive residual means
	// the seed is too hot.
	a, fa := seed, fs
	b, fb := seed, fs
	step := s.cfg.BracketStep
	bracketed := false
	for i := 0; i < s.cfg.MaxBracketExpansions; i++ {
		if fs > 0 {
			if a <= s.cfg.MinTemperature {
				break
			}
			b, fb = a, fa
			a = math.Max(a-step, s.cfg.MinTemperature)
			fa = f(a)
			track(a, fa)
		} else {
			if b >= s.cfg.MaxTemperature {
				break
			}
			a, fa = b, fb
			b = math.Min(b+step, s.cfg.MaxTemperature)
			fb = f(b)
			track(b, fb)
		}
		if fa*fb <= 0 {
			bracketed = true
			break
		}
		step *= 2
	}

	if !bracketed {
		return best, 0, false
	}
	if fa == 0 {
		return a, 0, true
	}
	if fb == 0 {
		return b, 0, true
	}

	for iter := 1; iter <= s.cfg.MaxIterations; iter++ {
		c := (a*fb - b*fa) / (fb - fa)
		if math.IsNaN(c) || c <= math.Min(a, b) || c >= math.Max(a, b) {
			c = 0.5 * (a + b)
		}
		fc := f(c)
		track(c, fc)

		if math.Abs(fc) < s.cfg.PressureTolerance {
			return c, iter, true
		}

		if fc*fb < 0 {
			a, fa = b, fb
		} else {
			// Retained endpoint: halve its weight so it cannot stall the iteration.
			fa /= 2
		}
		b, fb = c, fc

		if math.Abs(b-a) <= s.cfg.TemperatureTolerance*math.Abs(b) {
			return best, iter, true
		}
	}

	return best, s.cfg.MaxIterations, false
}
