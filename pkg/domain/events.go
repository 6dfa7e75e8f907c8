package domain

import (
	"context"
	"time"
)

// Outcome is the result of one resolver tier for one identifier.
type Outcome string

const (
	OutcomeHit   Outcome = "hit"
	OutcomeMiss  Outcome = "miss"
	OutcomeError Outcome = "error"
)

// LookupEvent reports one provider attempt in the resolution chain.
type LookupEvent struct {
	Identifier string        `json:"identifier"`
	Provider   string        `json:"provider"`
	Outcome    Outcome       `json:"outcome"`
	Duration   time.Duration `json:"duration"`
}

// PointEvent reports one solved composition.
type PointEvent struct {
	Point EquilibriumPoint `json:"point"`
}

// DiagramEvent reports a finished diagram request.
type DiagramEvent struct {
	Species1 string        `json:"species1"`
	Species2 string        `json:"species2"`
	Points   int           `json:"points"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// Hooks defines callbacks for engine observability. Nil callbacks are skipped.
type Hooks struct {
	OnLookup  func(context.Context, *LookupEvent)
	OnPoint   func(context.Context, *PointEvent)
	OnDiagram func(context.Context, *DiagramEvent)
}

// Lookup invokes OnLookup when set.
func (h Hooks) Lookup(ctx context.Context, e *LookupEvent) {
	if h.OnLookup != nil {
		h.OnLookup(ctx, e)
	}
}

// Point invokes OnPoint when set.
func (h Hooks) Point(ctx context.Context, e *PointEvent) {
	if h.OnPoint != nil {
		h.OnPoint(ctx, e)
	}
}

// Diagram invokes OnDiagram when set.
func (h Hooks) Diagram(ctx context.Context, e *DiagramEvent) {
	if h.OnDiagram != nil {
		h.OnDiagram(ctx, e)
	}
}

// Merge returns hooks that call h first and then other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnLookup: func(ctx context.Context, e *LookupEvent) {
			h.Lookup(ctx, e)
			other.Lookup(ctx, e)
		},
		OnPoint: func(ctx context.Context, e *PointEvent) {
			h.Point(ctx, e)
			other.Point(ctx, e)
		},
		OnDiagram: func(ctx context.Context, e *DiagramEvent) {
			h.Diagram(ctx, e)
			other.Diagram(ctx, e)
		},
	}
}
