package vapor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/aretw0/vapor/internal/config"
	"github.com/aretw0/vapor/internal/diagram"
	"github.com/aretw0/vapor/internal/interaction"
	"github.com/aretw0/vapor/internal/logging"
	"github.com/aretw0/vapor/internal/properties"
	"github.com/aretw0/vapor/internal/thermo"
	loamAdapter "github.com/aretw0/vapor/pkg/adapters/loam"
	"github.com/aretw0/vapor/pkg/adapters/memory"
	"github.com/aretw0/vapor/pkg/adapters/pubchem"
	redisAdapter "github.com/aretw0/vapor/pkg/adapters/redis"
	"github.com/aretw0/vapor/pkg/domain"
	"github.com/aretw0/vapor/pkg/observability"
	"github.com/aretw0/vapor/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrNoLibrary is returned by Watch when the engine has no substance library.
var ErrNoLibrary = errors.New("no substance library configured")

// Engine is the high-level entry point for the vapor library.
// It is safe for concurrent use.
type Engine struct {
	cfg      *config.Config
	logger   *slog.Logger
	hooks    domain.Hooks
	cache    ports.PropertyCache
	database ports.PropertyDatabase
	library  *loamAdapter.Library
	extra    []domain.BinaryPair
	metrics  *observability.Metrics

	resolver  *properties.Resolver
	pairs     pairTable
	assembler *diagram.Assembler
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithConfig replaces the default configuration.
func WithConfig(cfg *config.Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithMetrics records engine metrics into reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(e *Engine) {
		e.metrics = observability.NewMetrics(reg)
		e.hooks = e.hooks.Merge(e.metrics.Hooks())
	}
}

// WithCache sets the cache for online lookups, overriding the configured one.
func WithCache(cache ports.PropertyCache) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

// WithDatabase replaces the online property database (PubChem by default).
func WithDatabase(db ports.PropertyDatabase) Option {
	return func(e *Engine) {
		e.database = db
	}
}

// WithLibrary consults a curated substance library before the online tier.
func WithLibrary(lib *loamAdapter.Library) Option {
	return func(e *Engine) {
		e.library = lib
	}
}

// WithPairs adds interaction parameters; they take precedence over built-in and library pairs.
func WithPairs(pairs ...domain.BinaryPair) Option {
	return func(e *Engine) {
		e.extra = append(e.extra, pairs...)
	}
}

// WithOffline disables the online tier.
func WithOffline() Option {
	return func(e *Engine) {
		e.ensureConfig()
		e.cfg.Resolver.Offline = true
	}
}

// WithWorkers bounds how many compositions are solved concurrently.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.ensureConfig()
		if n < 1 {
			n = 1
		}
		e.cfg.Diagram.Workers = n
	}
}

func (e *Engine) ensureConfig() {
	if e.cfg == nil {
		e.cfg = config.DefaultConfig()
	}
}

// New initializes a new vapor Engine.
// Without options it resolves species through the built-in table, PubChem
// (cached in memory) and estimation.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}
	eng.ensureConfig()
	if err := eng.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	if eng.library == nil && eng.cfg.Resolver.Library != "" {
		lib, err := loamAdapter.Open(eng.cfg.Resolver.Library)
		if err != nil {
			return nil, err
		}
		eng.library = lib
	}
	if err := eng.reloadPairs(context.Background()); err != nil {
		return nil, err
	}

	providers := []ports.PropertyProvider{properties.NewBuiltin()}
	if eng.library != nil {
		providers = append(providers, eng.library)
	}
	if !eng.cfg.Resolver.Offline {
		online, err := eng.onlineProvider()
		if err != nil {
			return nil, err
		}
		providers = append(providers, online)
	}
	providers = append(providers, properties.NewEstimator())

	eng.resolver = properties.NewResolver(providers,
		properties.WithLogger(eng.logger),
		properties.WithHooks(eng.hooks),
	)
	eng.assembler = diagram.New(eng.resolver, &eng.pairs,
		diagram.WithSolver(thermo.NewSolver(eng.cfg.Solver)),
		diagram.WithWorkers(eng.cfg.Diagram.Workers),
		diagram.WithMaxPoints(eng.cfg.Diagram.MaxPoints),
		diagram.WithLogger(eng.logger),
		diagram.WithHooks(eng.hooks),
	)
	return eng, nil
}

func (e *Engine) onlineProvider() (ports.PropertyProvider, error) {
	if e.database == nil {
		e.database = pubchem.New(
			pubchem.WithBaseURL(e.cfg.Resolver.BaseURL),
			pubchem.WithUserAgent("vapor/"+Version),
		)
	}
	if e.cache == nil {
		if url := e.cfg.Cache.RedisURL; url != "" {
			c, err := redisAdapter.New(url, redisAdapter.WithTTL(e.cfg.Cache.TTL))
			if err != nil {
				return nil, fmt.Errorf("failed to connect property cache: %w", err)
			}
			e.cache = c
		} else {
			e.cache = memory.NewCache()
		}
	}
	return properties.NewOnline(e.database,
		properties.WithCache(e.cache),
		properties.WithTimeout(e.cfg.Resolver.OnlineTimeout),
		properties.WithOnlineLogger(e.logger),
	), nil
}

// reloadPairs rebuilds the interaction table from built-ins, the library and WithPairs.
func (e *Engine) reloadPairs(ctx context.Context) error {
	var entries []domain.BinaryPair
	if e.library != nil {
		libPairs, err := e.library.Pairs(ctx)
		if err != nil {
			return fmt.Errorf("failed to load library pairs: %w", err)
		}
		entries = append(entries, libPairs...)
	}
	entries = append(entries, e.extra...)
	e.pairs.store.Store(interaction.NewStore(interaction.WithEntries(entries...)))
	return nil
}

// Diagram computes the T-x-y diagram of a (component 1) and b at pressure (bar)
// over points evenly spaced liquid compositions.
func (e *Engine) Diagram(ctx context.Context, a, b string, pressure float64, points int) (*domain.PhaseDiagramResult, error) {
	return e.assembler.Build(ctx, a, b, pressure, points)
}

// Species resolves an identifier to its pure-component properties.
func (e *Engine) Species(ctx context.Context, name string) (*domain.Species, error) {
	return e.resolver.Resolve(ctx, name)
}

// Pairs lists the known interaction parameter sets in canonical order.
func (e *Engine) Pairs(ctx context.Context) ([]domain.BinaryPair, error) {
	return e.pairs.store.Load().Entries(), nil
}

// Watch follows library changes until ctx is done, refreshing the interaction
// table on every change. The channel carries changed document ids.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if e.library == nil {
		return nil, ErrNoLibrary
	}
	events, err := e.library.Watch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan string, 1)
	go func() {
		defer close(out)
		for id := range events {
			if err := e.reloadPairs(ctx); err != nil {
				e.logger.Warn("library reload failed", "document", id, "error", err)
			}
			select {
			case out <- id:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// MetricsHandler serves the metrics registered through WithMetrics, or nil.
func (e *Engine) MetricsHandler() http.Handler {
	if e.metrics == nil {
		return nil
	}
	return e.metrics.Handler()
}

// Close releases the property cache connection, if any.
func (e *Engine) Close() error {
	if c, ok := e.cache.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// pairTable lets a library reload swap the interaction table under running requests.
type pairTable struct {
	store atomic.Pointer[interaction.Store]
}

func (p *pairTable) Lookup(a, b *domain.Species) domain.BinaryPair {
	return p.store.Load().Lookup(a, b)
}
