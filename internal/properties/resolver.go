package properties

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/vapor/internal/logging"
	"github.com/aretw0/vapor/pkg/domain"
	"github.com/aretw0/vapor/pkg/ports"
)

// Resolver tries each provider in order until one produces a species.
// Providers are fixed at construction; Resolve is safe for concurrent use as
// long as the providers are.
type Resolver struct {
	providers []ports.PropertyProvider
	logger    *slog.Logger
	hooks     domain.Hooks
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger for tier transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithHooks registers observability callbacks.
func WithHooks(hooks domain.Hooks) Option {
	return func(r *Resolver) {
		r.hooks = hooks
	}
}

// NewResolver creates a resolver over providers, tried in the given order.
func NewResolver(providers []ports.PropertyProvider, opts ...Option) *Resolver {
	r := &Resolver{
		providers: providers,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Providers returns the chain in resolution order.
func (r *Resolver) Providers() []ports.PropertyProvider {
	return r.providers
}

// Resolve maps a free-text identifier to a species. The error wraps
// domain.ErrNotFound when every tier declines.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (*domain.Species, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, &domain.NotFoundError{Identifier: identifier}
	}

	key, known := Normalize(identifier)
	q := &ports.Query{Identifier: key, Raw: identifier}
	r.logger.Debug("resolving species", "identifier", identifier, "key", key, "alias", known)

	for _, p := range r.providers {
		start := time.Now()
		s, err := p.Provide(ctx, q)

		outcome := domain.OutcomeHit
		switch {
		case err == nil && s == nil:
			outcome = domain.OutcomeMiss
		case errors.Is(err, domain.ErrNoData):
			outcome = domain.OutcomeMiss
		case err != nil:
			outcome = domain.OutcomeError
		}
		r.hooks.Lookup(ctx, &domain.LookupEvent{
			Identifier: key,
			Provider:   p.Name(),
			Outcome:    outcome,
			Duration:   time.Since(start),
		})

		if outcome != domain.OutcomeHit {
			if outcome == domain.OutcomeError {
				r.logger.Warn("property provider failed", "provider", p.Name(), "identifier", key, "error", err)
			}
			continue
		}

		if s.ID == "" {
			s.ID = key
		}
		if s.Source == "" {
			s.Source = p.Source()
		}
		r.logger.Debug("species resolved", "identifier", key, "provider", p.Name(), "estimated", s.IsEstimated())
		return s, nil
	}

	return nil, &domain.NotFoundError{Identifier: identifier}
}
