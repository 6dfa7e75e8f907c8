package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/vapor/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the engine collectors.
type Metrics struct {
	Points     *prometheus.CounterVec
	Iterations prometheus.Histogram
	Lookups    *prometheus.CounterVec
	Diagrams   *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them with reg.
// A *prometheus.Registry is also used to serve Handler; any other Registerer
// falls back to the default gatherer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Points: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vapor_points_total",
				Help: "Total number of solved equilibrium points",
			},
			[]string{"status"},
		),
		Iterations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "vapor_solver_iterations",
				Help:    "Bubble-point iterations per interior point",
				Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128, 256},
			},
		),
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vapor_property_lookups_total",
				Help: "Property provider attempts by tier and outcome",
			},
			[]string{"tier", "outcome"},
		),
		Diagrams: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "vapor_diagram_duration_seconds",
				Help: "Duration of diagram requests",
			},
			[]string{"result"},
		),
		gatherer: prometheus.DefaultGatherer,
	}
	reg.MustRegister(m.Points, m.Iterations, m.Lookups, m.Diagrams)
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	}
	return m
}

// Hooks returns callbacks that record engine events.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnLookup: func(_ context.Context, e *domain.LookupEvent) {
			m.Lookups.WithLabelValues(e.Provider, string(e.Outcome)).Inc()
		},
		OnPoint: func(_ context.Context, e *domain.PointEvent) {
			m.Points.WithLabelValues(string(e.Point.Status)).Inc()
			if e.Point.Status != domain.StatusPure {
				m.Iterations.Observe(float64(e.Point.Iterations))
			}
		},
		OnDiagram: func(_ context.Context, e *domain.DiagramEvent) {
			result := "ok"
			if e.Err != nil {
				result = "error"
			}
			m.Diagrams.WithLabelValues(result).Observe(e.Duration.Seconds())
		},
	}
}

// Handler serves the registered metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
