package ports

import (
	"context"

	"github.com/aretw0/vapor/pkg/domain"
)

// PropertyDatabase is a network-backed lookup-by-name service.
// Implementations must honor ctx cancellation; callers treat every error as recoverable.
type PropertyDatabase interface {
	// Query returns a partial property record for name.
	// Returns domain.ErrNoData if the service does not know the name.
	Query(ctx context.Context, name string) (*domain.PropertyRecord, error)
}
