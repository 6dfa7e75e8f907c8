package properties

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/vapor/pkg/domain"
	"github.com/aretw0/vapor/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		known bool
	}{
		{"  Ethanol ", "ethanol", true},
		{"EtOH", "ethanol", true},
		{"THF", "tetrahydrofuran", true},
		{"MeOH", "methanol", true},
		{"MeCN", "acetonitrile", true},
		{"乙醇", "ethanol", true},
		{"水", "water", true},
		{"CC#N", "acetonitrile", true},
		{"Sodium   Chloride", "sodium chloride", true},
		{"c1ccccc1", "benzene", true},
		{"N-Hexane", "n-hexane", false},
		{" CCO ", "ethanol", true},
		{"CO", "methanol", true},
		{"Co", "co", false},
		{"co", "co", false},
		{"cc#n", "cc#n", false},
		{"h2o", "water", true},
		{"NaCl", "sodium chloride", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, known := Normalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestAliasesTargetBuiltins(t *testing.T) {
	for alias, key := range aliases {
		_, ok := builtinSpecies[key]
		assert.True(t, ok, "alias %q points to unknown key %q", alias, key)
		assert.Equal(t, Fold(alias), alias, "alias %q must be stored folded", alias)
	}
	for structure, key := range structures {
		_, ok := builtinSpecies[key]
		assert.True(t, ok, "structure %q points to unknown key %q", structure, key)
		assert.Equal(t, strings.TrimSpace(structure), structure)
	}
}

func TestBuiltinStructuresAreListed(t *testing.T) {
	for key, s := range builtinSpecies {
		assert.Equal(t, key, structures[s.SMILES], "SMILES of %s", key)
		assert.Equal(t, key, structures[s.Formula], "formula of %s", key)
	}
}

func TestBuiltin_Provide(t *testing.T) {
	b := NewBuiltin()

	s, err := b.Provide(context.Background(), &ports.Query{Identifier: "ethanol"})
	require.NoError(t, err)
	assert.Equal(t, "ethanol", s.ID)
	assert.Equal(t, domain.SourceBuiltin, s.Source)
	assert.False(t, s.IsEstimated())
	assert.InDelta(t, 351.44, s.NormalBoilingPoint, 1e-9)

	// Returned species are copies of the table entry.
	s.NormalBoilingPoint = 0
	again, err := b.Provide(context.Background(), &ports.Query{Identifier: "ethanol"})
	require.NoError(t, err)
	assert.InDelta(t, 351.44, again.NormalBoilingPoint, 1e-9)

	_, err = b.Provide(context.Background(), &ports.Query{Identifier: "hexane"})
	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestBuiltin_TableIsConsistent(t *testing.T) {
	keys := BuiltinKeys()
	require.Len(t, keys, 10)
	assert.IsIncreasing(t, keys)

	for _, key := range keys {
		s := builtinSpecies[key]
		if s.NonVolatile {
			assert.True(t, s.Antoine.IsZero(), key)
			continue
		}
		// The correlation should reproduce the tabulated normal boiling point.
		assert.InDelta(t, s.NormalBoilingPoint, s.BoilingPoint(domain.AtmosphereBar), 1.5, key)
	}
}
