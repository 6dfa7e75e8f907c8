package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/aretw0/loam"
	"github.com/aretw0/vapor/pkg/domain"
	"github.com/aretw0/vapor/pkg/ports"
)

// Library adapts a Loam repository of curated substance and pair documents
// to the PropertyProvider interface.
type Library struct {
	Repo *loam.TypedRepository[RecordMetadata]

	mu    sync.Mutex
	index *index
}

type index struct {
	substances map[string]RecordMetadata // keyed by id
	names      map[string]string         // folded name/alias -> id
	pairs      []domain.BinaryPair
}

// New creates a library over an existing typed repository.
func New(repo *loam.TypedRepository[RecordMetadata]) *Library {
	return &Library{Repo: repo}
}

// Open initializes a read-only library rooted at path.
func Open(path string) (*Library, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve library path: %w", err)
	}
	repo, err := loam.Init(abs, loam.WithReadOnly(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open library at %s: %w", abs, err)
	}
	return New(loam.NewTypedRepository[RecordMetadata](repo)), nil
}

func (l *Library) Name() string          { return "library" }
func (l *Library) Source() domain.Source { return domain.SourceLibrary }

// Provide looks the query up by canonical key first, then by the raw identifier.
// Entries without a usable vapor pressure correlation only contribute hints.
func (l *Library) Provide(ctx context.Context, q *ports.Query) (*domain.Species, error) {
	idx, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	id, ok := idx.names[fold(q.Identifier)]
	if !ok {
		id, ok = idx.names[fold(q.Raw)]
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q is not in the library", domain.ErrNoData, q.Identifier)
	}
	meta := idx.substances[id]

	if !meta.volatile() && !meta.NonVolatile {
		mergeHints(&q.Hints, meta)
		return nil, fmt.Errorf("%w: library entry %q has no vapor pressure data", domain.ErrNoData, id)
	}

	s := &domain.Species{
		ID:                  id,
		Name:                meta.Name,
		Formula:             meta.Formula,
		SMILES:              meta.SMILES,
		MolecularWeight:     meta.MolecularWeight,
		NormalBoilingPoint:  meta.NormalBoilingPoint,
		CriticalTemperature: meta.CriticalTemperature,
		CriticalPressure:    meta.CriticalPressure,
		AcentricFactor:      meta.AcentricFactor,
		NonVolatile:         meta.NonVolatile,
		Source:              domain.SourceLibrary,
	}
	if meta.Antoine != nil {
		s.Antoine = *meta.Antoine
	}
	if s.Name == "" {
		s.Name = id
	}
	return s, nil
}

// Substances lists the ids of all substance entries, sorted.
func (l *Library) Substances(ctx context.Context) ([]string, error) {
	idx, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(idx.substances))
	for id := range idx.substances {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Pairs returns the curated interaction parameters in canonical orientation.
func (l *Library) Pairs(ctx context.Context) ([]domain.BinaryPair, error) {
	idx, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.BinaryPair, len(idx.pairs))
	copy(out, idx.pairs)
	return out, nil
}

// Reload drops the cached index; the next lookup re-reads the repository.
func (l *Library) Reload() {
	l.mu.Lock()
	l.index = nil
	l.mu.Unlock()
}

// Watch reloads the library whenever a document changes, until ctx is done.
// The returned channel carries the ids of changed documents.
func (l *Library) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				l.Reload()
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

func (l *Library) load(ctx context.Context) (*index, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.index != nil {
		return l.index, nil
	}

	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	idx := &index{
		substances: make(map[string]RecordMetadata),
		names:      make(map[string]string),
	}
	origin := make(map[string]string)

	for _, doc := range docs {
		meta := doc.Data
		id := fold(meta.ID)
		if id == "" {
			id = fold(trimExtension(doc.ID))
		}

		switch meta.kind() {
		case KindPair:
			pair, err := buildPair(id, meta)
			if err != nil {
				return nil, err
			}
			idx.pairs = append(idx.pairs, pair)
		case KindSubstance:
			if existing, ok := origin[id]; ok {
				return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing, doc.ID)
			}
			origin[id] = doc.ID
			idx.substances[id] = meta
			for _, name := range append([]string{id, meta.Name, meta.Formula, meta.SMILES}, meta.Aliases...) {
				if key := fold(name); key != "" {
					if _, taken := idx.names[key]; !taken || key == id {
						idx.names[key] = id
					}
				}
			}
		default:
			return nil, fmt.Errorf("document '%s' has unknown kind %q", doc.ID, meta.Kind)
		}
	}

	sort.Slice(idx.pairs, func(i, j int) bool {
		if idx.pairs[i].First != idx.pairs[j].First {
			return idx.pairs[i].First < idx.pairs[j].First
		}
		return idx.pairs[i].Second < idx.pairs[j].Second
	})

	l.index = idx
	return idx, nil
}

func buildPair(id string, meta RecordMetadata) (domain.BinaryPair, error) {
	a, b := fold(meta.First), fold(meta.Second)
	if a == "" || b == "" {
		return domain.BinaryPair{}, fmt.Errorf("pair '%s' must name both first and second", id)
	}
	if meta.NRTL == nil {
		return domain.BinaryPair{}, fmt.Errorf("pair '%s' has no nrtl parameters", id)
	}
	params := *meta.NRTL
	first, second, swapped := domain.CanonicalOrder(a, b)
	if swapped {
		params = params.Swapped()
	}
	return domain.BinaryPair{First: first, Second: second, Params: params}, nil
}

func mergeHints(h *domain.PropertyRecord, meta RecordMetadata) {
	if h.Name == "" {
		h.Name = meta.Name
	}
	if h.Formula == "" {
		h.Formula = meta.Formula
	}
	if h.SMILES == "" {
		h.SMILES = meta.SMILES
	}
	if h.MolecularWeight == 0 {
		h.MolecularWeight = meta.MolecularWeight
	}
	if h.NormalBoilingPoint == 0 {
		h.NormalBoilingPoint = meta.NormalBoilingPoint
	}
}

func fold(s string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(s), unicode.IsSpace), " ")
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
