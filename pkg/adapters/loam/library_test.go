package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/vapor/internal/testutils"
	"github.com/aretw0/vapor/pkg/domain"
	"github.com/aretw0/vapor/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var heptaneDoc = `---
name: n-heptane
aliases: [heptane, C7H16]
smiles: CCCCCCC
molecular_weight: 100.2
boiling_point: 371.6
critical_temperature: 540.2
critical_pressure: 27.4
antoine:
  a: 6.89677
  b: 1264.9
  c: 216.544
---
Straight-chain alkane used as a reference fuel.`

func newLibrary(t *testing.T, files map[string]string) *Library {
	t.Helper()
	dir, repo := testutils.SetupTestRepo(t)
	testutils.SeedFiles(t, dir, files)
	return New(loam.NewTypedRepository[RecordMetadata](repo))
}

func TestLibrary_ProvideByAlias(t *testing.T) {
	lib := newLibrary(t, map[string]string{"n-heptane.md": heptaneDoc})

	for _, id := range []string{"n-heptane", "heptane", "c7h16", "CCCCCCC"} {
		s, err := lib.Provide(context.Background(), &ports.Query{Identifier: fold(id), Raw: id})
		require.NoError(t, err, id)
		assert.Equal(t, "n-heptane", s.ID, id)
		assert.Equal(t, domain.SourceLibrary, s.Source)
		assert.InDelta(t, 371.6, s.NormalBoilingPoint, 1e-9)
		assert.InDelta(t, 1264.9, s.Antoine.B, 1e-9)
		assert.False(t, s.IsEstimated(), "curated data is not estimated")
	}
}

func TestLibrary_Miss(t *testing.T) {
	lib := newLibrary(t, map[string]string{"n-heptane.md": heptaneDoc})

	_, err := lib.Provide(context.Background(), &ports.Query{Identifier: "octane", Raw: "octane"})
	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestLibrary_PartialEntryBecomesHints(t *testing.T) {
	lib := newLibrary(t, map[string]string{
		"butanol.json": `{"id": "1-butanol", "smiles": "CCCCO", "molecular_weight": 74.12}`,
	})

	q := &ports.Query{Identifier: "1-butanol", Raw: "1-Butanol"}
	_, err := lib.Provide(context.Background(), q)
	assert.ErrorIs(t, err, domain.ErrNoData)
	assert.Equal(t, "CCCCO", q.Hints.SMILES)
	assert.InDelta(t, 74.12, q.Hints.MolecularWeight, 1e-9)
}

func TestLibrary_IDFromFilename(t *testing.T) {
	lib := newLibrary(t, map[string]string{
		"n-heptane.md": heptaneDoc,
		"glycerol.md": `---
non_volatile: true
molecular_weight: 92.09
boiling_point: 563
---`,
	})

	ids, err := lib.Substances(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"glycerol", "n-heptane"}, ids)

	s, err := lib.Provide(context.Background(), &ports.Query{Identifier: "glycerol", Raw: "glycerol"})
	require.NoError(t, err)
	assert.True(t, s.NonVolatile)
	assert.Equal(t, 0.0, s.VaporPressure(400))
}

func TestLibrary_Pairs(t *testing.T) {
	lib := newLibrary(t, map[string]string{
		"n-heptane.md": heptaneDoc,
		"water-heptane.md": `---
kind: pair
first: water
second: n-heptane
nrtl:
  a12: 1.5
  a21: 0.5
  dg12: 100
  dg21: 200
  alpha: 0.2
---`,
	})

	pairs, err := lib.Pairs(context.Background())
	require.NoError(t, err)
	require.Len(t, pairs, 1)

	p := pairs[0]
	assert.Equal(t, "n-heptane", p.First)
	assert.Equal(t, "water", p.Second)
	// Stored oriented on "water"; canonical order puts heptane first.
	assert.Equal(t, 0.5, p.Params.A12)
	assert.Equal(t, 200.0, p.Params.Dg12)
	assert.Equal(t, 1.5, p.Oriented("water").A12)
	assert.Equal(t, 0.2, p.Params.Alpha)
}

func TestLibrary_InvalidDocuments(t *testing.T) {
	t.Run("collision", func(t *testing.T) {
		lib := newLibrary(t, map[string]string{
			"a.md":   "---\nid: dup\n---",
			"b.json": `{"id": "dup"}`,
		})
		_, err := lib.Substances(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "collision detected")
	})

	t.Run("pair without params", func(t *testing.T) {
		lib := newLibrary(t, map[string]string{
			"p.md": "---\nkind: pair\nfirst: a\nsecond: b\n---",
		})
		_, err := lib.Pairs(context.Background())
		assert.ErrorContains(t, err, "no nrtl parameters")
	})

	t.Run("unknown kind", func(t *testing.T) {
		lib := newLibrary(t, map[string]string{"x.md": "---\nkind: mixture\n---"})
		_, err := lib.Pairs(context.Background())
		assert.ErrorContains(t, err, "unknown kind")
	})
}

func TestLibrary_Reload(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)
	testutils.SeedFiles(t, dir, map[string]string{"n-heptane.md": heptaneDoc})
	lib := New(loam.NewTypedRepository[RecordMetadata](repo))

	ids, err := lib.Substances(context.Background())
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	testutils.SeedFiles(t, dir, map[string]string{"toluene.md": "---\nboiling_point: 383.8\n---"})
	ids, err = lib.Substances(context.Background())
	require.NoError(t, err)
	assert.Len(t, ids, 1, "index is cached until reload")

	lib.Reload()
	ids, err = lib.Substances(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"n-heptane", "toluene"}, ids)
}

func TestOpen(t *testing.T) {
	dir, _ := testutils.SetupTestRepo(t)
	testutils.SeedFiles(t, dir, map[string]string{"n-heptane.md": heptaneDoc})

	lib, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, "library", lib.Name())

	s, err := lib.Provide(context.Background(), &ports.Query{Identifier: "heptane", Raw: "heptane"})
	require.NoError(t, err)
	assert.Equal(t, "n-heptane", s.ID)
}
