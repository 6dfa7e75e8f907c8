package ports

import (
	"context"

	"github.com/aretw0/vapor/pkg/domain"
)

// PropertyCache stores records fetched from a PropertyDatabase.
type PropertyCache interface {
	// Get returns the record stored under key.
	// Returns domain.ErrCacheMiss if the key does not exist.
	Get(ctx context.Context, key string) (*domain.PropertyRecord, error)

	// Set stores the record under key.
	Set(ctx context.Context, key string, record *domain.PropertyRecord) error

	// Delete removes the record stored under key.
	Delete(ctx context.Context, key string) error
}
