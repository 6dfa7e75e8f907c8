package properties

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aretw0/vapor/pkg/domain"
	"github.com/aretw0/vapor/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lookupRecorder struct {
	mu     sync.Mutex
	events []domain.LookupEvent
}

func (r *lookupRecorder) hooks() domain.Hooks {
	return domain.Hooks{
		OnLookup: func(_ context.Context, e *domain.LookupEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.events = append(r.events, *e)
		},
	}
}

func newChain(db ports.PropertyDatabase, opts ...Option) *Resolver {
	return NewResolver([]ports.PropertyProvider{
		NewBuiltin(),
		NewOnline(db),
		NewEstimator(),
	}, opts...)
}

func TestResolver_BuiltinWins(t *testing.T) {
	db := &fakeDatabase{}
	rec := &lookupRecorder{}
	r := newChain(db, WithHooks(rec.hooks()))

	s, err := r.Resolve(context.Background(), "  Water ")
	require.NoError(t, err)
	assert.Equal(t, "water", s.ID)
	assert.Equal(t, domain.SourceBuiltin, s.Source)
	assert.False(t, s.IsEstimated())
	assert.Equal(t, int32(0), db.calls.Load(), "later tiers are not consulted")

	require.Len(t, rec.events, 1)
	assert.Equal(t, "builtin", rec.events[0].Provider)
	assert.Equal(t, domain.OutcomeHit, rec.events[0].Outcome)
}

func TestResolver_AliasResolvesToBuiltin(t *testing.T) {
	r := newChain(&fakeDatabase{})
	for _, name := range []string{"EtOH", "乙醇", "CCO", "ethyl alcohol"} {
		s, err := r.Resolve(context.Background(), name)
		require.NoError(t, err, name)
		assert.Equal(t, "ethanol", s.ID, name)
	}
}

func TestResolver_OnlineTier(t *testing.T) {
	db := &fakeDatabase{records: map[string]*domain.PropertyRecord{"Heptane": heptaneRecord()}}
	r := newChain(db)

	s, err := r.Resolve(context.Background(), "Heptane")
	require.NoError(t, err)
	assert.Equal(t, "heptane", s.ID)
	assert.Equal(t, domain.SourceOnline, s.Source)
	assert.True(t, s.IsEstimated())
}

func TestResolver_EstimateFromOnlineHints(t *testing.T) {
	db := &fakeDatabase{records: map[string]*domain.PropertyRecord{
		"hexane": {Name: "hexane", Formula: "C6H14", SMILES: "CCCCCC", MolecularWeight: 86.18},
	}}
	rec := &lookupRecorder{}
	r := newChain(db, WithHooks(rec.hooks()))

	s, err := r.Resolve(context.Background(), "hexane")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceEstimate, s.Source)
	assert.Equal(t, "CCCCCC", s.SMILES)
	assert.True(t, s.IsEstimated())

	require.Len(t, rec.events, 3)
	assert.Equal(t, domain.OutcomeMiss, rec.events[0].Outcome)
	assert.Equal(t, domain.OutcomeMiss, rec.events[1].Outcome)
	assert.Equal(t, domain.OutcomeHit, rec.events[2].Outcome)
	assert.Equal(t, "estimate", rec.events[2].Provider)
}

func TestResolver_NetworkFailureFallsThrough(t *testing.T) {
	r := newChain(&fakeDatabase{err: errors.New("dial tcp: i/o timeout")})

	s, err := r.Resolve(context.Background(), "CCCCO")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceEstimate, s.Source)
}

func TestResolver_NotFound(t *testing.T) {
	r := newChain(&fakeDatabase{err: errors.New("offline")})

	for _, id := range []string{"unobtainium", "", "   "} {
		_, err := r.Resolve(context.Background(), id)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound), "%q", id)

		var nf *domain.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, id, nf.Identifier)
	}
}

type failingProvider struct{}

func (failingProvider) Name() string          { return "failing" }
func (failingProvider) Source() domain.Source { return domain.SourceLibrary }
func (failingProvider) Provide(context.Context, *ports.Query) (*domain.Species, error) {
	return nil, errors.New("disk on fire")
}

func TestResolver_ProviderErrorIsRecovered(t *testing.T) {
	rec := &lookupRecorder{}
	r := NewResolver([]ports.PropertyProvider{failingProvider{}, NewBuiltin()}, WithHooks(rec.hooks()))

	s, err := r.Resolve(context.Background(), "toluene")
	require.NoError(t, err)
	assert.Equal(t, "toluene", s.ID)

	require.Len(t, rec.events, 2)
	assert.Equal(t, domain.OutcomeError, rec.events[0].Outcome)
	assert.Len(t, r.Providers(), 2)
}

func TestResolver_StructureCaseMatters(t *testing.T) {
	r := newChain(&fakeDatabase{err: errors.New("offline")})

	s, err := r.Resolve(context.Background(), "CO")
	require.NoError(t, err)
	assert.Equal(t, "methanol", s.ID)
	assert.Equal(t, domain.SourceBuiltin, s.Source)

	// Cobalt must not be taken for methanol.
	s, err = r.Resolve(context.Background(), "Co")
	if err == nil {
		assert.NotEqual(t, "methanol", s.ID)
		assert.NotEqual(t, domain.SourceBuiltin, s.Source)
	} else {
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}
}
