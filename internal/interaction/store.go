package interaction

import (
	"sort"

	"github.com/aretw0/vapor/pkg/domain"
)

type key struct {
	first, second string
}

// Store maps unordered species pairs to NRTL parameters.
// It is read-only after construction and safe for concurrent use.
type Store struct {
	pairs        map[key]domain.BinaryPair
	defaultAlpha float64
}

// Option configures a Store.
type Option func(*Store)

// WithEntries adds pairs to the table, replacing built-in entries for the same pair.
// Entries may be given in either order; Params are read as oriented with First as
// component 1 and normalized on insertion.
func WithEntries(pairs ...domain.BinaryPair) Option {
	return func(s *Store) {
		for _, p := range pairs {
			s.insert(p)
		}
	}
}

// WithDefaultAlpha sets the non-randomness parameter returned for unknown pairs.
func WithDefaultAlpha(alpha float64) Option {
	return func(s *Store) {
		if alpha > 0 {
			s.defaultAlpha = alpha
		}
	}
}

// WithoutBuiltins starts from an empty table.
func WithoutBuiltins() Option {
	return func(s *Store) {
		s.pairs = make(map[key]domain.BinaryPair)
	}
}

// NewStore creates a store seeded with the built-in table.
func NewStore(opts ...Option) *Store {
	s := &Store{
		pairs:        make(map[key]domain.BinaryPair, len(builtinPairs)),
		defaultAlpha: domain.DefaultAlpha,
	}
	for _, p := range builtinPairs {
		s.insert(p)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) insert(p domain.BinaryPair) {
	first, second, swapped := domain.CanonicalOrder(p.First, p.Second)
	params := p.Params
	if swapped {
		params = params.Swapped()
	}
	s.pairs[key{first, second}] = domain.BinaryPair{
		First:  first,
		Second: second,
		Params: params,
	}
}

// Lookup returns the parameters for the unordered pair (a, b). It never fails:
// unknown pairs get neutral parameters with Default set.
func (s *Store) Lookup(a, b *domain.Species) domain.BinaryPair {
	return s.LookupIDs(a.ID, b.ID)
}

// LookupIDs is Lookup keyed by canonical species identifiers.
func (s *Store) LookupIDs(a, b string) domain.BinaryPair {
	first, second, _ := domain.CanonicalOrder(a, b)
	if p, ok := s.pairs[key{first, second}]; ok {
		return p
	}
	return domain.BinaryPair{
		First:   first,
		Second:  second,
		Params:  domain.NRTLParams{Alpha: s.defaultAlpha},
		Default: true,
	}
}

// Entries lists the table in canonical order.
func (s *Store) Entries() []domain.BinaryPair {
	out := make([]domain.BinaryPair, 0, len(s.pairs))
	for _, p := range s.pairs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].First != out[j].First {
			return out[i].First < out[j].First
		}
		return out[i].Second < out[j].Second
	})
	return out
}
