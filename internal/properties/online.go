package properties

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/vapor/internal/logging"
	"github.com/aretw0/vapor/pkg/domain"
	"github.com/aretw0/vapor/pkg/ports"
)

// DefaultOnlineTimeout bounds one database round trip.
const DefaultOnlineTimeout = 5 * time.Second

// Online queries a network property database. Every failure is logged and
// reported as ErrNoData so the chain moves on; partial records are attached to
// the query as hints for the estimator.
type Online struct {
	db      ports.PropertyDatabase
	cache   ports.PropertyCache
	timeout time.Duration
	logger  *slog.Logger
}

// OnlineOption configures the online provider.
type OnlineOption func(*Online)

// WithCache stores fetched records in cache.
func WithCache(cache ports.PropertyCache) OnlineOption {
	return func(o *Online) {
		o.cache = cache
	}
}

// WithTimeout overrides DefaultOnlineTimeout.
func WithTimeout(d time.Duration) OnlineOption {
	return func(o *Online) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithOnlineLogger sets the logger used to report demotions.
func WithOnlineLogger(logger *slog.Logger) OnlineOption {
	return func(o *Online) {
		o.logger = logger
	}
}

// NewOnline creates the online provider over db.
func NewOnline(db ports.PropertyDatabase, opts ...OnlineOption) *Online {
	o := &Online{
		db:      db,
		timeout: DefaultOnlineTimeout,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Online) Name() string          { return "online" }
func (o *Online) Source() domain.Source { return domain.SourceOnline }

// Provide builds a species when the database supplies vapor-pressure data.
func (o *Online) Provide(ctx context.Context, q *ports.Query) (*domain.Species, error) {
	record, err := o.fetch(ctx, q)
	if err != nil {
		if errors.Is(err, domain.ErrNoData) {
			o.logger.Debug("online lookup found nothing", "identifier", q.Identifier)
		} else {
			o.logger.Warn("online lookup failed, falling back", "identifier", q.Identifier, "error", err)
		}
		return nil, fmt.Errorf("%w: online: %v", domain.ErrNoData, err)
	}

	mergeHints(&q.Hints, record)

	if !record.HasVolatility() {
		return nil, fmt.Errorf("%w: online record for %q has no vapor-pressure data", domain.ErrNoData, q.Identifier)
	}

	s := &domain.Species{
		ID:                  q.Identifier,
		Name:                record.Name,
		Formula:             record.Formula,
		SMILES:              record.SMILES,
		MolecularWeight:     record.MolecularWeight,
		NormalBoilingPoint:  record.NormalBoilingPoint,
		CriticalTemperature: record.CriticalTemperature,
		CriticalPressure:    record.CriticalPressure,
		Antoine:             *record.Antoine,
		Source:              domain.SourceOnline,
	}
	s.MarkEstimated(domain.FieldBoilingPoint, domain.FieldAntoine)
	if s.MolecularWeight > 0 {
		s.MarkEstimated(domain.FieldMolecularWeight)
	}
	if s.CriticalTemperature > 0 || s.CriticalPressure > 0 {
		s.MarkEstimated(domain.FieldCritical)
	}
	return s, nil
}

func (o *Online) fetch(ctx context.Context, q *ports.Query) (*domain.PropertyRecord, error) {
	key := q.Identifier
	if o.cache != nil {
		record, err := o.cache.Get(ctx, key)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			o.logger.Warn("property cache read failed", "key", key, "error", err)
		}
	}

	name := strings.TrimSpace(q.Raw)
	if name == "" {
		name = q.Identifier
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	record, err := o.db.Query(ctx, name)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNoData
	}

	if o.cache != nil {
		if err := o.cache.Set(ctx, key, record); err != nil {
			o.logger.Warn("property cache write failed", "key", key, "error", err)
		}
	}
	return record, nil
}

// mergeHints copies supplied record fields into hints without overwriting.
func mergeHints(h *domain.PropertyRecord, r *domain.PropertyRecord) {
	if h.Name == "" {
		h.Name = r.Name
	}
	if h.Formula == "" {
		h.Formula = r.Formula
	}
	if h.SMILES == "" {
		h.SMILES = r.SMILES
	}
	if h.MolecularWeight <= 0 {
		h.MolecularWeight = r.MolecularWeight
	}
	if h.NormalBoilingPoint <= 0 {
		h.NormalBoilingPoint = r.NormalBoilingPoint
	}
	if h.CriticalTemperature <= 0 {
		h.CriticalTemperature = r.CriticalTemperature
	}
	if h.CriticalPressure <= 0 {
		h.CriticalPressure = r.CriticalPressure
	}
	if h.Antoine == nil && r.Antoine != nil {
		a := *r.Antoine
		h.Antoine = &a
	}
}
