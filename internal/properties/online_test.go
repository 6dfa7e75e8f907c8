package properties

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/vapor/pkg/adapters/memory"
	"github.com/aretw0/vapor/pkg/domain"
	"github.com/aretw0/vapor/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDatabase answers from a fixed map; unknown names return ErrNoData.
type fakeDatabase struct {
	records map[string]*domain.PropertyRecord
	err     error
	block   bool
	calls   atomic.Int32
}

func (f *fakeDatabase) Query(ctx context.Context, name string) (*domain.PropertyRecord, error) {
	f.calls.Add(1)
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.records[name]
	if !ok {
		return nil, domain.ErrNoData
	}
	c := *r
	return &c, nil
}

func heptaneRecord() *domain.PropertyRecord {
	return &domain.PropertyRecord{
		Name:               "heptane",
		Formula:            "C7H16",
		SMILES:             "CCCCCCC",
		MolecularWeight:    100.2,
		NormalBoilingPoint: 371.6,
		Antoine:            &domain.Antoine{A: 6.89677, B: 1264.90, C: 216.544},
	}
}

func TestOnline_FullRecord(t *testing.T) {
	db := &fakeDatabase{records: map[string]*domain.PropertyRecord{"heptane": heptaneRecord()}}
	cache := memory.NewCache()
	o := NewOnline(db, WithCache(cache))

	q := &ports.Query{Identifier: "heptane", Raw: "heptane"}
	s, err := o.Provide(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceOnline, s.Source)
	assert.Equal(t, "heptane", s.ID)
	assert.InDelta(t, 371.6, s.NormalBoilingPoint, 1e-9)
	assert.True(t, s.Estimated[domain.FieldBoilingPoint])
	assert.True(t, s.Estimated[domain.FieldAntoine])
	assert.True(t, s.Estimated[domain.FieldMolecularWeight])
	assert.False(t, s.Estimated[domain.FieldCritical])
	assert.Equal(t, 1, cache.Len())

	// Second lookup is served from the cache.
	_, err = o.Provide(context.Background(), &ports.Query{Identifier: "heptane", Raw: "heptane"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), db.calls.Load())
}

func TestOnline_PartialRecordBecomesHints(t *testing.T) {
	db := &fakeDatabase{records: map[string]*domain.PropertyRecord{
		"hexane": {Name: "hexane", Formula: "C6H14", SMILES: "CCCCCC", MolecularWeight: 86.18},
	}}
	o := NewOnline(db)

	q := &ports.Query{Identifier: "hexane", Raw: "hexane"}
	_, err := o.Provide(context.Background(), q)
	assert.ErrorIs(t, err, domain.ErrNoData)
	assert.Equal(t, "C6H14", q.Hints.Formula)
	assert.Equal(t, "CCCCCC", q.Hints.SMILES)
	assert.Equal(t, 86.18, q.Hints.MolecularWeight)
}

func TestOnline_FailuresDemote(t *testing.T) {
	t.Run("network error", func(t *testing.T) {
		o := NewOnline(&fakeDatabase{err: errors.New("connection refused")})
		_, err := o.Provide(context.Background(), &ports.Query{Identifier: "x", Raw: "x"})
		assert.ErrorIs(t, err, domain.ErrNoData)
	})

	t.Run("not found", func(t *testing.T) {
		o := NewOnline(&fakeDatabase{})
		_, err := o.Provide(context.Background(), &ports.Query{Identifier: "x", Raw: "x"})
		assert.ErrorIs(t, err, domain.ErrNoData)
	})

	t.Run("timeout", func(t *testing.T) {
		o := NewOnline(&fakeDatabase{block: true}, WithTimeout(20*time.Millisecond))
		start := time.Now()
		_, err := o.Provide(context.Background(), &ports.Query{Identifier: "x", Raw: "x"})
		assert.ErrorIs(t, err, domain.ErrNoData)
		assert.Less(t, time.Since(start), 2*time.Second)
	})
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (*domain.PropertyRecord, error) {
	return nil, errors.New("cache down")
}

func (brokenCache) Set(context.Context, string, *domain.PropertyRecord) error {
	return errors.New("cache down")
}

func (brokenCache) Delete(context.Context, string) error { return nil }

func TestOnline_CacheFailureIsNotFatal(t *testing.T) {
	db := &fakeDatabase{records: map[string]*domain.PropertyRecord{"heptane": heptaneRecord()}}
	o := NewOnline(db, WithCache(brokenCache{}))

	s, err := o.Provide(context.Background(), &ports.Query{Identifier: "heptane", Raw: "heptane"})
	require.NoError(t, err)
	assert.Equal(t, "heptane", s.ID)
}
