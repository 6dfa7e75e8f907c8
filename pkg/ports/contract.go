package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/vapor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunPropertyCacheContract runs a suite of tests to verify that a PropertyCache implementation
// adheres to the defined interface contract.
func RunPropertyCacheContract(t *testing.T, cache PropertyCache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Set and Get", func(t *testing.T) {
		record := &domain.PropertyRecord{
			Name:            "ethanol",
			Formula:         "C2H6O",
			SMILES:          "CCO",
			MolecularWeight: 46.07,
			Antoine:         &domain.Antoine{A: 8.20417, B: 1642.89, C: 230.3},
		}

		err := cache.Set(ctx, key, record)
		require.NoError(t, err, "Set should not return error")

		loaded, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, "C2H6O", loaded.Formula)
		assert.Equal(t, "CCO", loaded.SMILES)
		assert.InDelta(t, 46.07, loaded.MolecularWeight, 1e-12)
		require.NotNil(t, loaded.Antoine)
		assert.InDelta(t, 1642.89, loaded.Antoine.B, 1e-12)
	})

	t.Run("Isolation", func(t *testing.T) {
		record := &domain.PropertyRecord{Name: "water", Formula: "H2O"}
		require.NoError(t, cache.Set(ctx, key+"-iso", record))
		defer func() { _ = cache.Delete(ctx, key+"-iso") }()

		// Mutating the caller's copy must not leak into the cache.
		record.Formula = "mutated"

		loaded, err := cache.Get(ctx, key+"-iso")
		require.NoError(t, err)
		assert.Equal(t, "H2O", loaded.Formula)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := cache.Get(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Delete", func(t *testing.T) {
		err := cache.Set(ctx, key, &domain.PropertyRecord{Name: "x"})
		require.NoError(t, err)

		err = cache.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss, "Get after Delete should return ErrCacheMiss")
	})
}
