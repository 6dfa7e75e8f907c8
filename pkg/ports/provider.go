package ports

import (
	"context"

	"github.com/aretw0/vapor/pkg/domain"
)

// Query is passed down the resolution chain.
// Providers may attach hints (e.g., a formula fetched online) for later tiers.
type Query struct {
	// Identifier is the normalized lookup key (canonical name when known).
	Identifier string
	// Raw is the identifier as supplied by the caller.
	Raw string
	// Hints accumulates partial data gathered by earlier tiers.
	Hints domain.PropertyRecord
}

// PropertyProvider is one tier of the property resolution chain.
type PropertyProvider interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// Source is the tier tag stamped onto produced species.
	Source() domain.Source

	// Provide returns a species for the query.
	// Returns domain.ErrNoData (possibly wrapped) to let the next tier try.
	Provide(ctx context.Context, q *Query) (*domain.Species, error)
}
