// Package diagram sweeps liquid compositions through the bubble-point solver
// and assembles the ordered T-x-y table.
package diagram

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/aretw0/vapor/internal/logging"
	"github.com/aretw0/vapor/internal/thermo"
	"github.com/aretw0/vapor/pkg/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultPoints is the number of compositions used when a caller does not ask for more.
const DefaultPoints = 21

// DefaultMaxPoints bounds the compositions a single request may ask for.
const DefaultMaxPoints = 1001

// SpeciesResolver maps a free-text identifier to a species.
type SpeciesResolver interface {
	Resolve(ctx context.Context, identifier string) (*domain.Species, error)
}

// PairLookup returns the interaction parameters of two species.
type PairLookup interface {
	Lookup(a, b *domain.Species) domain.BinaryPair
}

// Assembler builds phase diagrams. It holds no per-request state.
type Assembler struct {
	resolver SpeciesResolver
	pairs    PairLookup
	solver   *thermo.Solver
	workers   int
	maxPoints int
	logger    *slog.Logger
	hooks    domain.Hooks
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithSolver replaces the default bubble-point solver.
func WithSolver(s *thermo.Solver) Option {
	return func(a *Assembler) {
		a.solver = s
	}
}

// WithWorkers bounds how many points are solved concurrently. Values below 1 mean sequential.
func WithWorkers(n int) Option {
	return func(a *Assembler) {
		a.workers = n
	}
}

// WithMaxPoints sets the largest accepted point count. Values below 2 keep the default.
func WithMaxPoints(n int) Option {
	return func(a *Assembler) {
		if n >= 2 {
			a.maxPoints = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		a.logger = logger
	}
}

// WithHooks registers observability callbacks.
func WithHooks(hooks domain.Hooks) Option {
	return func(a *Assembler) {
		a.hooks = hooks
	}
}

// New creates an assembler.
func New(resolver SpeciesResolver, pairs PairLookup, opts ...Option) *Assembler {
	a := &Assembler{
		resolver:  resolver,
		pairs:     pairs,
		solver:    thermo.NewSolver(thermo.DefaultConfig()),
		workers:   1,
		maxPoints: DefaultMaxPoints,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.workers < 1 {
		a.workers = 1
	}
	return a
}

// Build computes the T-x-y diagram of speciesA (component 1) and speciesB at
// pressure (bar) over nPoints evenly spaced liquid compositions.
func (a *Assembler) Build(ctx context.Context, speciesA, speciesB string, pressure float64, nPoints int) (res *domain.PhaseDiagramResult, err error) {
	start := time.Now()
	defer func() {
		e := &domain.DiagramEvent{Species1: speciesA, Species2: speciesB, Duration: time.Since(start), Err: err}
		if res != nil {
			e.Points = len(res.Points)
		}
		a.hooks.Diagram(ctx, e)
	}()

	if math.IsNaN(pressure) || math.IsInf(pressure, 0) || pressure <= 0 {
		return nil, fmt.Errorf("%w: pressure must be positive, got %v", domain.ErrInvalidRequest, pressure)
	}
	if nPoints < 2 {
		return nil, fmt.Errorf("%w: at least 2 points are required, got %d", domain.ErrInvalidRequest, nPoints)
	}
	if nPoints > a.maxPoints {
		return nil, fmt.Errorf("%w: at most %d points are allowed, got %d", domain.ErrInvalidRequest, a.maxPoints, nPoints)
	}

	s1, err := a.resolver.Resolve(ctx, speciesA)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", speciesA, err)
	}
	s2, err := a.resolver.Resolve(ctx, speciesB)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", speciesB, err)
	}

	pair := a.pairs.Lookup(s1, s2)
	sys := thermo.System{Species1: s1, Species2: s2, Params: pair.Oriented(s1.ID)}

	points, err := a.sweep(ctx, sys, pressure, nPoints)
	if err != nil {
		return nil, err
	}

	res = &domain.PhaseDiagramResult{
		Species1: s1,
		Species2: s2,
		Pair:     pair,
		Pressure: pressure,
		Points:   points,
	}
	res.Summarize()

	if res.LowConfidence() {
		a.logger.Warn("low-confidence diagram",
			"species1", s1.ID, "species2", s2.ID,
			"estimated", res.Estimated, "default_parameters", res.DefaultParameters,
			"unconverged", res.Unconverged)
	}
	a.logger.Info("diagram built", "species1", s1.ID, "species2", s2.ID,
		"pressure", pressure, "points", len(points), "duration", time.Since(start))
	return res, nil
}

func (a *Assembler) sweep(ctx context.Context, sys thermo.System, pressure float64, n int) ([]domain.EquilibriumPoint, error) {
	points := make([]domain.EquilibriumPoint, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p := a.solver.Solve(composition(i, n), pressure, sys)
			points[i] = p
			a.hooks.Point(gctx, &domain.PointEvent{Point: p})
			if p.Status == domain.StatusUnconverged {
				a.logger.Debug("point did not converge", "x1", p.X1, "temperature", p.Temperature, "residual", p.Residual)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("diagram sweep canceled: %w", err)
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].X1 < points[j].X1 })
	return points, nil
}

// composition returns x1 for point i of n, exact at both ends.
func composition(i, n int) float64 {
	if i == n-1 {
		return 1
	}
	return float64(i) / float64(n-1)
}
