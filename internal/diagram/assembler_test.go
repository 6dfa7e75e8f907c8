package diagram

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aretw0/vapor/internal/interaction"
	"github.com/aretw0/vapor/internal/properties"
	"github.com/aretw0/vapor/pkg/domain"
	"github.com/aretw0/vapor/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offlineResolver() *properties.Resolver {
	return properties.NewResolver([]ports.PropertyProvider{
		properties.NewBuiltin(),
		properties.NewEstimator(),
	})
}

func newAssembler(opts ...Option) *Assembler {
	return New(offlineResolver(), interaction.NewStore(), opts...)
}

func TestBuild_EthanolWater(t *testing.T) {
	res, err := newAssembler().Build(context.Background(), "ethanol", "water", domain.AtmosphereBar, 41)
	require.NoError(t, err)
	require.Len(t, res.Points, 41)

	first, last := res.Points[0], res.Points[40]
	assert.Equal(t, 0.0, first.X1)
	assert.Equal(t, 1.0, last.X1)
	assert.Equal(t, domain.StatusPure, first.Status)
	assert.Equal(t, domain.StatusPure, last.Status)
	assert.InDelta(t, res.Species2.BoilingPoint(domain.AtmosphereBar), first.Temperature, 1e-9)
	assert.InDelta(t, res.Species1.BoilingPoint(domain.AtmosphereBar), last.Temperature, 1e-9)

	for i := 1; i < len(res.Points); i++ {
		assert.Greater(t, res.Points[i].X1, res.Points[i-1].X1)
	}

	assert.False(t, res.LowConfidence())
	assert.Zero(t, res.Unconverged)

	az, ok := res.Azeotrope()
	require.True(t, ok)
	assert.True(t, az.MinimumBoiling)
	assert.Greater(t, az.X1, 0.85)
	assert.Less(t, az.X1, 0.95)
}

func TestBuild_OrientationFollowsRequest(t *testing.T) {
	a := newAssembler()
	forward, err := a.Build(context.Background(), "ethanol", "water", 1.013, 11)
	require.NoError(t, err)
	reverse, err := a.Build(context.Background(), "water", "ethanol", 1.013, 11)
	require.NoError(t, err)

	assert.Equal(t, "water", reverse.Species1.ID)
	for i, p := range forward.Points {
		mirror := reverse.Points[len(reverse.Points)-1-i]
		assert.InDelta(t, p.X1, 1-mirror.X1, 1e-12)
		assert.InDelta(t, p.Temperature, mirror.Temperature, 1e-3)
		assert.InDelta(t, p.Y1, 1-mirror.Y1, 1e-4)
	}
}

func TestBuild_UnknownPairIsEstimated(t *testing.T) {
	res, err := newAssembler().Build(context.Background(), "CCCCCC", "CCCCO", 1.013, 11)
	require.NoError(t, err)

	assert.True(t, res.Estimated)
	assert.True(t, res.DefaultParameters)
	assert.True(t, res.LowConfidence())
	assert.Equal(t, domain.SourceEstimate, res.Species1.Source)
	for _, p := range res.Points {
		assert.False(t, math.IsNaN(p.Temperature))
		assert.False(t, math.IsNaN(p.Y1))
	}
}

func TestBuild_NotFound(t *testing.T) {
	_, err := newAssembler().Build(context.Background(), "ethanol", "unobtainium", 1.013, 11)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "unobtainium", nf.Identifier)
}

func TestBuild_InvalidRequest(t *testing.T) {
	tests := []struct {
		name     string
		pressure float64
		points   int
	}{
		{"zero pressure", 0, 11},
		{"negative pressure", -1, 11},
		{"nan pressure", math.NaN(), 11},
		{"single point", 1.013, 1},
		{"no points", 1.013, 0},
		{"above the bound", 1.013, DefaultMaxPoints + 1},
		{"huge count", 1.013, 1 << 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newAssembler().Build(context.Background(), "ethanol", "water", tt.pressure, tt.points)
			assert.ErrorIs(t, err, domain.ErrInvalidRequest)
		})
	}
}

func TestBuild_MaxPoints(t *testing.T) {
	a := newAssembler(WithMaxPoints(5))

	res, err := a.Build(context.Background(), "benzene", "toluene", 1.013, 5)
	require.NoError(t, err)
	assert.Len(t, res.Points, 5)

	_, err = a.Build(context.Background(), "benzene", "toluene", 1.013, 6)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestBuild_EndpointsOnly(t *testing.T) {
	res, err := newAssembler().Build(context.Background(), "benzene", "toluene", 1.013, 2)
	require.NoError(t, err)
	require.Len(t, res.Points, 2)
	for _, p := range res.Points {
		assert.Equal(t, domain.StatusPure, p.Status)
	}
	_, ok := res.Azeotrope()
	assert.False(t, ok)
}

func TestBuild_WorkersMatchSequential(t *testing.T) {
	seq, err := newAssembler().Build(context.Background(), "ethanol", "water", 1.013, 31)
	require.NoError(t, err)
	par, err := newAssembler(WithWorkers(4)).Build(context.Background(), "ethanol", "water", 1.013, 31)
	require.NoError(t, err)
	assert.Equal(t, seq.Points, par.Points)
}

type fixedPairs struct{ params domain.NRTLParams }

func (f fixedPairs) Lookup(a, b *domain.Species) domain.BinaryPair {
	first, second, _ := domain.CanonicalOrder(a.ID, b.ID)
	return domain.BinaryPair{First: first, Second: second, Params: f.params}
}

func TestBuild_PathologicalParameters(t *testing.T) {
	for _, params := range []domain.NRTLParams{
		{A12: 1e6, A21: -1e6, Alpha: 0.3},
		{Dg12: 1e9, Dg21: 1e9, Alpha: 50},
		{A12: math.Inf(1), A21: math.NaN(), Alpha: 0.3},
	} {
		a := New(offlineResolver(), fixedPairs{params: params})
		res, err := a.Build(context.Background(), "ethanol", "water", 1.013, 11)
		require.NoError(t, err)
		for _, p := range res.Points {
			assert.False(t, math.IsNaN(p.Temperature) || math.IsInf(p.Temperature, 0), "%+v", params)
			assert.False(t, math.IsNaN(p.Y1), "%+v", params)
			assert.GreaterOrEqual(t, p.Y1, 0.0)
			assert.LessOrEqual(t, p.Y1, 1.0)
		}
	}
}

func TestBuild_Hooks(t *testing.T) {
	var points atomic.Int32
	var mu sync.Mutex
	var diagrams []domain.DiagramEvent

	hooks := domain.Hooks{
		OnPoint: func(context.Context, *domain.PointEvent) { points.Add(1) },
		OnDiagram: func(_ context.Context, e *domain.DiagramEvent) {
			mu.Lock()
			defer mu.Unlock()
			diagrams = append(diagrams, *e)
		},
	}
	a := newAssembler(WithHooks(hooks), WithWorkers(3))

	_, err := a.Build(context.Background(), "acetone", "water", 1.013, 9)
	require.NoError(t, err)
	assert.Equal(t, int32(9), points.Load())

	_, err = a.Build(context.Background(), "acetone", "water", -2, 9)
	require.Error(t, err)

	require.Len(t, diagrams, 2)
	assert.Equal(t, 9, diagrams[0].Points)
	assert.NoError(t, diagrams[0].Err)
	assert.ErrorIs(t, diagrams[1].Err, domain.ErrInvalidRequest)
}

func TestBuild_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newAssembler().Build(ctx, "ethanol", "water", 1.013, 11)
	assert.ErrorIs(t, err, context.Canceled)
}
