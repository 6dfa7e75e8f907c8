package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/vapor/pkg/domain"
)

// LogHooks returns callbacks that log engine events at Debug level,
// and failed diagrams at Warn.
func LogHooks(logger *slog.Logger) domain.Hooks {
	return domain.Hooks{
		OnLookup: func(ctx context.Context, e *domain.LookupEvent) {
			logger.DebugContext(ctx, "property_lookup",
				"identifier", e.Identifier,
				"tier", e.Provider,
				"outcome", e.Outcome,
				"duration", e.Duration,
			)
		},
		OnPoint: func(ctx context.Context, e *domain.PointEvent) {
			logger.DebugContext(ctx, "point_solved",
				"x1", e.Point.X1,
				"temperature", e.Point.Temperature,
				"status", e.Point.Status,
				"iterations", e.Point.Iterations,
			)
		},
		OnDiagram: func(ctx context.Context, e *domain.DiagramEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "diagram_failed", "species1", e.Species1, "species2", e.Species2, "error", e.Err)
				return
			}
			logger.DebugContext(ctx, "diagram_done",
				"species1", e.Species1,
				"species2", e.Species2,
				"points", e.Points,
				"duration", e.Duration,
			)
		},
	}
}
